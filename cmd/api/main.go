package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/YouSangSon/ecommerce-service/internal/application/usecase"
	"github.com/YouSangSon/ecommerce-service/internal/config"
	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	"github.com/YouSangSon/ecommerce-service/internal/infrastructure/cache"
	"github.com/YouSangSon/ecommerce-service/internal/infrastructure/messaging/kafka"
	"github.com/YouSangSon/ecommerce-service/internal/infrastructure/persistence/elasticsearch"
	"github.com/YouSangSon/ecommerce-service/internal/infrastructure/persistence/mongodb"
	redisrepo "github.com/YouSangSon/ecommerce-service/internal/infrastructure/persistence/redis"
	"github.com/YouSangSon/ecommerce-service/internal/interfaces/http/handler"
	"github.com/YouSangSon/ecommerce-service/internal/interfaces/http/router"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/logger"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/metrics"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/pagination"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/serialization"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/token"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/tracing"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/vault"
)

// @title E-Commerce Service API
// @version 1.0
// @description E-commerce backend with user accounts, product catalog, search, and domain events

// @host localhost:8080
// @BasePath /api/v1

func main() {
	configPath := flag.String("config-path", "./configs", "directory containing the config file")
	configName := flag.String("config-name", "config", "config file name without extension")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath, *configName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Observability.Logging.Level,
		Environment: cfg.App.Environment,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	logger.Info(ctx, "starting ecommerce service",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("go_version", runtime.Version()),
	)

	metrics.Init(cfg.App.Name)

	// Tracing (선택적)
	if cfg.Observability.Tracing.Enabled {
		tracingShutdown, err := tracing.Init(&tracing.Config{
			ServiceName:    cfg.App.Name,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			JaegerEndpoint: cfg.Observability.Tracing.JaegerEndpoint,
			SamplingRate:   cfg.Observability.Tracing.SamplingRate,
			Enabled:        true,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracingShutdown(shutdownCtx); err != nil {
				logger.Error(ctx, "failed to shutdown tracing", zap.Error(err))
			}
		}()
		logger.Info(ctx, "tracing initialized",
			zap.String("jaeger_endpoint", cfg.Observability.Tracing.JaegerEndpoint))
	}

	// Vault (선택적)
	var vaultClient *vault.Client
	if cfg.Vault.Enabled {
		vaultClient, err = vault.NewClient(&vault.Config{
			Address:    cfg.Vault.Address,
			Token:      cfg.Vault.Token,
			AuthMethod: cfg.Vault.AuthMethod,
			RoleID:     cfg.Vault.RoleID,
			SecretID:   cfg.Vault.SecretID,
			Namespace:  cfg.Vault.Namespace,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to initialize vault client", zap.Error(err))
		}
		defer vaultClient.Close()

		if err := vaultClient.HealthCheck(ctx); err != nil {
			logger.Warn(ctx, "vault health check failed", zap.Error(err))
		} else {
			logger.Info(ctx, "vault client initialized")
		}
	}

	// MongoDB
	mongoURI := cfg.MongoDB.URI
	if cfg.MongoDB.UseVault && vaultClient != nil {
		mongoURI, err = vaultClient.GetSecretString(ctx, cfg.MongoDB.VaultPath, "uri")
		if err != nil {
			logger.Fatal(ctx, "failed to get mongodb uri from vault", zap.Error(err))
		}
		logger.Info(ctx, "using vault-managed mongodb credentials")
	}

	mongoClient, mongoDatabase, err := mongodb.Connect(&mongodb.Config{
		URI:            mongoURI,
		Database:       cfg.MongoDB.Database,
		MaxPoolSize:    cfg.MongoDB.MaxPoolSize,
		MinPoolSize:    cfg.MongoDB.MinPoolSize,
		ConnectTimeout: cfg.MongoDB.ConnectTimeout,
		Timeout:        cfg.MongoDB.Timeout,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to connect to mongodb", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error(ctx, "failed to close mongodb connection", zap.Error(err))
		}
	}()
	logger.Info(ctx, "mongodb connected", zap.String("database", cfg.MongoDB.Database))

	userRepo := mongodb.NewUserRepository(mongoClient, mongoDatabase)
	productRepo := mongodb.NewProductRepository(mongoDatabase)

	if ur, ok := userRepo.(interface{ EnsureIndexes(context.Context) error }); ok {
		if err := ur.EnsureIndexes(ctx); err != nil {
			logger.Fatal(ctx, "failed to ensure mongodb indexes", zap.Error(err))
		}
	}

	// Redis
	redisClient, err := redisrepo.NewClient(&redisrepo.Config{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	cacheRepo := redisrepo.NewCacheRepository(redisClient)
	rateLimiter := cache.NewRateLimiter(redisClient, cfg.App.Name)
	logger.Info(ctx, "redis connected", zap.String("addr", cfg.Redis.Addr))

	// Elasticsearch (선택적)
	var searchRepo repository.SearchRepository
	if cfg.Elasticsearch.Enabled {
		esClient, err := elasticsearch.NewClient(ctx, &elasticsearch.Config{
			Addresses:  cfg.Elasticsearch.Addresses,
			Username:   cfg.Elasticsearch.Username,
			Password:   cfg.Elasticsearch.Password,
			APIKey:     cfg.Elasticsearch.APIKey,
			MaxRetries: cfg.Elasticsearch.MaxRetries,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to initialize elasticsearch client", zap.Error(err))
		}

		productSearch := elasticsearch.NewProductSearchRepository(esClient, cfg.Elasticsearch.ProductIndex)
		if es, ok := productSearch.(interface{ EnsureIndex(context.Context) error }); ok {
			if err := es.EnsureIndex(ctx); err != nil {
				logger.Warn(ctx, "failed to ensure elasticsearch index", zap.Error(err))
			}
		}
		searchRepo = productSearch
		logger.Info(ctx, "elasticsearch connected", zap.String("index", cfg.Elasticsearch.ProductIndex))
	}

	// Kafka (선택적)
	var publisher repository.EventPublisher
	if cfg.Kafka.Enabled {
		publisher, err = kafka.NewProducer(&kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			ClientID:     cfg.Kafka.ClientID,
			MaxRetries:   3,
			RetryBackoff: 100 * time.Millisecond,
		})
		if err != nil {
			logger.Warn(ctx, "failed to initialize kafka producer", zap.Error(err))
			publisher = nil
		} else {
			defer publisher.Close()
			logger.Info(ctx, "kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	}

	// 공유 구성요소
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTokenTTL)
	normalizer := serialization.NewNormalizer()
	paginator := pagination.New(cfg.Pagination.MaxPageSize)

	// 유스케이스
	authUC := usecase.NewAuthUsecase(userRepo, publisher, tokens, cfg.Kafka.Topics.UserRegistered, cfg.Auth.AccessTokenTTL)
	userUC := usecase.NewUserUsecase(userRepo, normalizer, paginator)
	productUC := usecase.NewProductUsecase(
		productRepo,
		cacheRepo,
		searchRepo,
		publisher,
		normalizer,
		paginator,
		usecase.ProductTopics{
			Created: cfg.Kafka.Topics.ProductCreated,
			Updated: cfg.Kafka.Topics.ProductUpdated,
			Deleted: cfg.Kafka.Topics.ProductDeleted,
		},
		cfg.Redis.DefaultTTL,
	)

	// 라우터
	engine := router.Setup(cfg, router.Handlers{
		Auth:    handler.NewAuthHandler(authUC),
		User:    handler.NewUserHandler(userUC),
		Product: handler.NewProductHandler(productUC),
		Health:  handler.NewHealthHandler(mongoClient, cacheRepo, vaultClient, cfg.App.Version),
	}, tokens, rateLimiter)

	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    120 * time.Second,
	}

	go func() {
		logger.Info(ctx, "starting HTTP server",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.App.Environment),
			zap.Bool("elasticsearch", cfg.Elasticsearch.Enabled),
			zap.Bool("kafka", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server forced to shutdown", zap.Error(err))
	}

	logger.Info(ctx, "server exited")
}
