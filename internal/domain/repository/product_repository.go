package repository

import (
	"context"

	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductFilter는 상품 목록 조회 조건입니다
type ProductFilter struct {
	CategoryID   string
	ShopID       string
	OnlySellable bool
}

// ProductRepository는 상품 저장소 인터페이스입니다
type ProductRepository interface {
	// Create는 상품을 저장하고 생성된 ID의 hex 문자열을 반환합니다
	Create(ctx context.Context, product *entity.Product) (string, error)

	// FindByID는 ID로 상품 원본 문서를 조회합니다 (soft delete 제외)
	FindByID(ctx context.Context, id primitive.ObjectID) (entity.Record, error)

	// List는 filter와 directive에 따라 상품 목록과 전체 개수를 반환합니다
	List(ctx context.Context, filter ProductFilter, directive pagination.Directive) ([]entity.Record, int64, error)

	// Update는 상품 문서의 일부 필드를 갱신합니다
	Update(ctx context.Context, id primitive.ObjectID, update entity.Record) error

	// SoftDelete는 상품에 삭제 시각을 기록합니다
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}
