package repository

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss는 캐시에 키가 없을 때 발생합니다
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository는 캐시 저장소 인터페이스입니다
type CacheRepository interface {
	// Get은 키에 해당하는 값을 dest로 역직렬화합니다
	Get(ctx context.Context, key string, dest interface{}) error

	// Set은 값을 직렬화하여 TTL과 함께 저장합니다
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete는 키를 삭제합니다
	Delete(ctx context.Context, key string) error

	// Close는 캐시 연결을 종료합니다
	Close() error
}
