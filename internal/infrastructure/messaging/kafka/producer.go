package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/logger"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/metrics"
)

// Producer는 Kafka 동기 프로듀서 기반 이벤트 발행자입니다
type Producer struct {
	producer sarama.SyncProducer
	metrics  *metrics.Metrics
}

// ProducerConfig는 프로듀서 설정입니다
type ProducerConfig struct {
	Brokers      []string
	ClientID     string
	MaxRetries   int
	RetryBackoff time.Duration
}

// NewProducer는 새로운 Kafka 프로듀서를 생성합니다
func NewProducer(cfg *ProducerConfig) (repository.EventPublisher, error) {
	config := sarama.NewConfig()
	config.ClientID = cfg.ClientID
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Retry.Max = cfg.MaxRetries
	config.Producer.Retry.Backoff = cfg.RetryBackoff
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	config.Version = sarama.V3_6_0_0

	producer, err := sarama.NewSyncProducer(cfg.Brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}

	logger.Info(context.Background(), "kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("client_id", cfg.ClientID),
	)

	return &Producer{
		producer: producer,
		metrics:  metrics.GetMetrics(),
	}, nil
}

// Publish는 토픽에 이벤트를 발행합니다
func (p *Producer) Publish(ctx context.Context, topic, key string, event interface{}) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		logger.Error(ctx, "failed to marshal event",
			logger.Topic(topic),
			zap.Error(err),
		)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(eventJSON),
		Timestamp: time.Now(),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_time"),
				Value: []byte(time.Now().Format(time.RFC3339)),
			},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.metrics.RecordEventPublished(topic, "error")
		logger.LogEventPublish(ctx, topic, key, err)
		return fmt.Errorf("failed to send event: %w", err)
	}

	p.metrics.RecordEventPublished(topic, "success")
	logger.Debug(ctx, "event published",
		logger.Topic(topic),
		zap.String("key", key),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)

	return nil
}

// Close는 프로듀서를 종료합니다
func (p *Producer) Close() error {
	return p.producer.Close()
}
