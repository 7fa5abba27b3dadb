package repository

import (
	"context"

	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/pagination"
)

// SearchRepository는 전문 검색 엔진 인터페이스입니다
type SearchRepository interface {
	// IndexProduct는 상품 문서를 검색 인덱스에 저장합니다
	IndexProduct(ctx context.Context, id string, doc entity.Record) error

	// DeleteProduct는 상품 문서를 검색 인덱스에서 제거합니다
	DeleteProduct(ctx context.Context, id string) error

	// SearchProducts는 질의어로 상품을 검색하고 결과와 전체 일치 수를 반환합니다
	SearchProducts(ctx context.Context, query string, directive pagination.Directive) ([]entity.Record, int64, error)
}
