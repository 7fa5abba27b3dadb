package elasticsearch

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// Config는 Elasticsearch 연결 설정입니다
type Config struct {
	Addresses []string
	Username  string
	Password  string
	APIKey    string

	InsecureSkipVerify bool

	MaxRetries    int
	RetryOnStatus []int
	Timeout       time.Duration
}

// NewClient는 Elasticsearch 클라이언트를 생성합니다
func NewClient(ctx context.Context, config *Config) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	// 인증: API Key 우선, 없으면 basic auth
	if config.APIKey != "" {
		cfg.APIKey = config.APIKey
	} else if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	if config.InsecureSkipVerify {
		cfg.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	if config.MaxRetries > 0 {
		cfg.MaxRetries = config.MaxRetries
	} else {
		cfg.MaxRetries = 3
	}

	if len(config.RetryOnStatus) > 0 {
		cfg.RetryOnStatus = config.RetryOnStatus
	}

	if config.Timeout > 0 {
		if cfg.Transport == nil {
			cfg.Transport = &http.Transport{}
		}
		if transport, ok := cfg.Transport.(*http.Transport); ok {
			transport.ResponseHeaderTimeout = config.Timeout
		}
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	// 연결 확인
	res, err := client.Ping(client.Ping.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("Elasticsearch ping failed: %s", res.String())
	}

	return client, nil
}
