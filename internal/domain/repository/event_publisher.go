package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventPublisher는 도메인 변경 이벤트 발행 인터페이스입니다
type EventPublisher interface {
	// Publish는 토픽에 이벤트를 발행합니다 (key는 파티셔닝 기준)
	Publish(ctx context.Context, topic, key string, event interface{}) error

	// Close는 발행자 연결을 종료합니다
	Close() error
}

// Event는 도메인 이벤트 공통 구조입니다
type Event struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductEvent는 상품 이벤트입니다
type ProductEvent struct {
	Event
	ProductID string                 `json:"product_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// UserEvent는 사용자 이벤트입니다
type UserEvent struct {
	Event
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// NewProductEvent는 상품 이벤트를 생성합니다
func NewProductEvent(eventType, productID string, data map[string]interface{}) ProductEvent {
	return ProductEvent{
		Event: Event{
			EventID:   uuid.NewString(),
			EventType: eventType,
			Timestamp: time.Now().UTC(),
		},
		ProductID: productID,
		Data:      data,
	}
}

// NewUserEvent는 사용자 이벤트를 생성합니다
func NewUserEvent(eventType, userID, email string) UserEvent {
	return UserEvent{
		Event: Event{
			EventID:   uuid.NewString(),
			EventType: eventType,
			Timestamp: time.Now().UTC(),
		},
		UserID: userID,
		Email:  email,
	}
}
