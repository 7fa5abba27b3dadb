package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config는 애플리케이션 전체 설정입니다
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	MongoDB       MongoDBConfig       `mapstructure:"mongodb"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Pagination    PaginationConfig    `mapstructure:"pagination"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AppConfig는 애플리케이션 기본 설정입니다
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig는 HTTP 서버 설정입니다
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// MongoDBConfig는 MongoDB 설정입니다
type MongoDBConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
	MinPoolSize    uint64        `mapstructure:"min_pool_size"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	Timeout        time.Duration `mapstructure:"timeout"`
	UseVault       bool          `mapstructure:"use_vault"`
	VaultPath      string        `mapstructure:"vault_path"`
}

// RedisConfig는 Redis 설정입니다
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	UseVault     bool          `mapstructure:"use_vault"`
	VaultPath    string        `mapstructure:"vault_path"`
}

// ElasticsearchConfig는 Elasticsearch 설정입니다
type ElasticsearchConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Addresses    []string `mapstructure:"addresses"`
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	APIKey       string   `mapstructure:"api_key"`
	MaxRetries   int      `mapstructure:"max_retries"`
	ProductIndex string   `mapstructure:"product_index"`
}

// KafkaConfig는 Kafka 설정입니다
type KafkaConfig struct {
	Enabled  bool        `mapstructure:"enabled"`
	Brokers  []string    `mapstructure:"brokers"`
	ClientID string      `mapstructure:"client_id"`
	Topics   TopicConfig `mapstructure:"topics"`
}

// TopicConfig는 도메인 이벤트 토픽 설정입니다
type TopicConfig struct {
	ProductCreated string `mapstructure:"product_created"`
	ProductUpdated string `mapstructure:"product_updated"`
	ProductDeleted string `mapstructure:"product_deleted"`
	UserRegistered string `mapstructure:"user_registered"`
}

// AuthConfig는 인증 설정입니다
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	Issuer         string        `mapstructure:"issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// PaginationConfig는 페이지네이션 설정입니다
type PaginationConfig struct {
	MaxPageSize     int `mapstructure:"max_page_size"`
	DefaultPageSize int `mapstructure:"default_page_size"`
}

// RateLimitConfig는 속도 제한 설정입니다
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int64         `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// VaultConfig는 Vault 설정입니다
type VaultConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Address    string `mapstructure:"address"`
	Token      string `mapstructure:"token"`
	AuthMethod string `mapstructure:"auth_method"`
	RoleID     string `mapstructure:"role_id"`
	SecretID   string `mapstructure:"secret_id"`
	Namespace  string `mapstructure:"namespace"`
}

// ObservabilityConfig는 관찰성 설정입니다
type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig는 로깅 설정입니다
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TracingConfig는 분산 추적 설정입니다
type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
}

// MetricsConfig는 메트릭 설정입니다
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoadConfig는 설정 파일을 로드합니다
func LoadConfig(configPath string, configName string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if configName != "" {
		v.SetConfigName(configName)
	} else {
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	// 환경변수 바인딩
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 환경변수로 민감한 값 오버라이드
	overrideFromEnv(&config)

	return &config, nil
}

// setDefaults는 기본값을 설정합니다
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("mongodb.max_pool_size", 100)
	v.SetDefault("mongodb.min_pool_size", 10)
	v.SetDefault("mongodb.connect_timeout", "10s")
	v.SetDefault("mongodb.timeout", "30s")
	v.SetDefault("redis.default_ttl", "1h")
	v.SetDefault("elasticsearch.product_index", "products")
	v.SetDefault("auth.issuer", "ecommerce-service")
	v.SetDefault("auth.access_token_ttl", "30m")
	v.SetDefault("pagination.max_page_size", 100)
	v.SetDefault("pagination.default_page_size", 20)
	v.SetDefault("rate_limit.limit", 1000)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("observability.logging.level", "info")
}

// overrideFromEnv는 환경변수로 민감한 설정을 오버라이드합니다
func overrideFromEnv(config *Config) {
	if val := viper.GetString("MONGODB_URI"); val != "" {
		config.MongoDB.URI = val
	}
	if val := viper.GetString("MONGODB_DATABASE"); val != "" {
		config.MongoDB.Database = val
	}
	if val := viper.GetString("REDIS_ADDR"); val != "" {
		config.Redis.Addr = val
	}
	if val := viper.GetString("REDIS_PASSWORD"); val != "" {
		config.Redis.Password = val
	}
	if val := viper.GetString("ELASTICSEARCH_ADDRESSES"); val != "" {
		config.Elasticsearch.Addresses = strings.Split(val, ",")
	}
	if val := viper.GetString("ELASTICSEARCH_API_KEY"); val != "" {
		config.Elasticsearch.APIKey = val
	}
	if val := viper.GetString("KAFKA_BROKERS"); val != "" {
		config.Kafka.Brokers = strings.Split(val, ",")
	}
	if val := viper.GetString("JWT_SECRET"); val != "" {
		config.Auth.JWTSecret = val
	}
	if val := viper.GetString("VAULT_TOKEN"); val != "" {
		config.Vault.Token = val
	}
	if val := viper.GetString("VAULT_ADDRESS"); val != "" {
		config.Vault.Address = val
	}
	if val := viper.GetString("VAULT_ROLE_ID"); val != "" {
		config.Vault.RoleID = val
	}
	if val := viper.GetString("VAULT_SECRET_ID"); val != "" {
		config.Vault.SecretID = val
	}
	if val := viper.GetString("APP_ENVIRONMENT"); val != "" {
		config.App.Environment = val
	}
	if val := viper.GetString("JAEGER_ENDPOINT"); val != "" {
		config.Observability.Tracing.JaegerEndpoint = val
	}
	if val := viper.GetString("LOG_LEVEL"); val != "" {
		config.Observability.Logging.Level = val
	}
}

// Validate는 설정을 검증합니다
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}

	if !c.MongoDB.UseVault && c.MongoDB.URI == "" {
		return fmt.Errorf("mongodb.uri is required when vault is not used")
	}

	if c.MongoDB.Database == "" {
		return fmt.Errorf("mongodb.database is required")
	}

	if c.Redis.Addr == "" && !c.Redis.UseVault {
		return fmt.Errorf("redis.addr is required when vault is not used")
	}

	if c.Elasticsearch.Enabled && len(c.Elasticsearch.Addresses) == 0 {
		return fmt.Errorf("elasticsearch.addresses is required")
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.Pagination.MaxPageSize <= 0 {
		return fmt.Errorf("pagination.max_page_size must be positive")
	}

	if c.Pagination.DefaultPageSize <= 0 || c.Pagination.DefaultPageSize > c.Pagination.MaxPageSize {
		return fmt.Errorf("pagination.default_page_size must be in [1, max_page_size]")
	}

	if c.Vault.Enabled {
		if c.Vault.Address == "" {
			return fmt.Errorf("vault.address is required")
		}
		if c.Vault.AuthMethod == "token" && c.Vault.Token == "" {
			return fmt.Errorf("vault.token is required for token auth")
		}
	}

	return nil
}
