package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/logger"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/metrics"
)

// Config는 Redis 연결 설정입니다
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CacheRepository는 Redis 기반 캐시 저장소입니다
type CacheRepository struct {
	client  *redis.Client
	metrics *metrics.Metrics
}

// NewClient는 Redis 클라이언트를 생성하고 연결을 확인합니다
func NewClient(cfg *Config) (*redis.Client, error) {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 100
	}
	if cfg.MinIdleConns <= 0 {
		cfg.MinIdleConns = 10
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 3 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 3 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   3,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// 연결 확인
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// NewCacheRepository는 새로운 Redis 캐시 저장소를 생성합니다
func NewCacheRepository(client *redis.Client) repository.CacheRepository {
	return &CacheRepository{
		client:  client,
		metrics: metrics.GetMetrics(),
	}
}

// Get은 캐시에서 값을 가져와 dest로 역직렬화합니다
func (r *CacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()

	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		r.metrics.RecordCacheMiss("redis")
		logger.LogCacheOperation(ctx, "get", key, false, nil)
		return repository.ErrCacheMiss
	} else if err != nil {
		logger.LogCacheOperation(ctx, "get", key, false, err)
		return fmt.Errorf("failed to get value: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	r.metrics.RecordCacheHit("redis")
	logger.Debug(ctx, "cache get operation",
		logger.CacheKey(key),
		logger.CacheHit(true),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}

// Set은 값을 JSON으로 직렬화하여 TTL과 함께 저장합니다
func (r *CacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.LogCacheOperation(ctx, "set", key, false, err)
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete는 캐시에서 값을 삭제합니다
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		logger.LogCacheOperation(ctx, "delete", key, false, err)
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}

// Close는 Redis 연결을 종료합니다
func (r *CacheRepository) Close() error {
	return r.client.Close()
}
