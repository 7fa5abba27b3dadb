package pagination

import (
	"fmt"

	apperrors "github.com/YouSangSon/ecommerce-service/internal/pkg/errors"
)

const (
	// DefaultMaxSize는 설정이 없을 때의 최대 페이지 크기입니다
	DefaultMaxSize = 100

	// DefaultSize는 클라이언트가 크기를 지정하지 않았을 때의 기본값입니다
	DefaultSize = 20
)

// Request는 클라이언트의 페이지 요청입니다
type Request struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Directive는 저장소 쿼리에 적용할 skip/limit 쌍입니다
type Directive struct {
	Skip  int64
	Limit int64
}

// Result는 페이지네이션 응답 envelope입니다
type Result[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int64 `json:"total_pages"`
}

// Paginator는 페이지 요청을 쿼리 directive로 변환합니다.
// 최대 페이지 크기는 생성 시점에 주입되며 이후 변경되지 않습니다.
type Paginator struct {
	maxSize int
}

// New는 주어진 최대 페이지 크기로 Paginator를 생성합니다
func New(maxSize int) *Paginator {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Paginator{maxSize: maxSize}
}

// MaxSize는 허용되는 최대 페이지 크기를 반환합니다
func (p *Paginator) MaxSize() int {
	return p.maxSize
}

// Directive는 페이지 요청을 검증하고 skip/limit 쌍으로 변환합니다.
// 범위를 벗어난 요청은 INVALID_PAGE로 실패하며, 조용히 보정하지 않습니다.
func (p *Paginator) Directive(req Request) (Directive, error) {
	if req.Page < 1 {
		return Directive{}, apperrors.Newf(apperrors.ErrCodeInvalidPage,
			"page must be >= 1, got %d", req.Page)
	}
	if req.Size < 1 {
		return Directive{}, apperrors.Newf(apperrors.ErrCodeInvalidPage,
			"size must be >= 1, got %d", req.Size)
	}
	if req.Size > p.maxSize {
		return Directive{}, apperrors.Newf(apperrors.ErrCodeInvalidPage,
			"size must be <= %d, got %d", p.maxSize, req.Size)
	}

	return Directive{
		Skip:  int64(req.Page-1) * int64(req.Size),
		Limit: int64(req.Size),
	}, nil
}

// Wrap은 결과 배치와 전체 개수를 페이지네이션 envelope로 감쌉니다.
// 순수 함수이며 I/O를 수행하지 않습니다. 범위를 벗어난 페이지는 빈 Items로
// 표현되고, Total/TotalPages는 항상 전체 데이터셋 기준입니다.
func Wrap[T any](items []T, total int64, req Request) Result[T] {
	if len(items) > req.Size {
		// 저장소가 limit보다 많은 행을 반환한 경우 - 호출 측 버그
		panic(fmt.Sprintf("pagination: %d items exceed requested size %d", len(items), req.Size))
	}

	if items == nil {
		items = []T{}
	}

	var totalPages int64
	if total > 0 {
		totalPages = (total + int64(req.Size) - 1) / int64(req.Size)
	}

	return Result[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		Size:       req.Size,
		TotalPages: totalPages,
	}
}
