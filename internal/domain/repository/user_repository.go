package repository

import (
	"context"

	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository는 사용자 저장소 인터페이스입니다.
// 조회 계열은 내부 식별자가 붙은 원본 Record를 반환하며,
// 직렬화는 호출 측(usecase)의 책임입니다.
type UserRepository interface {
	// Create는 사용자를 저장하고 생성된 ID의 hex 문자열을 반환합니다
	Create(ctx context.Context, user *entity.User) (string, error)

	// FindByID는 ID로 사용자 원본 문서를 조회합니다
	FindByID(ctx context.Context, id primitive.ObjectID) (entity.Record, error)

	// FindByEmail은 인증용으로 사용자를 타입된 형태로 조회합니다
	FindByEmail(ctx context.Context, email string) (*entity.User, primitive.ObjectID, error)

	// List는 directive에 따라 사용자 목록과 전체 개수를 반환합니다
	List(ctx context.Context, directive pagination.Directive) ([]entity.Record, int64, error)

	// Update는 사용자 문서의 일부 필드를 갱신합니다
	Update(ctx context.Context, id primitive.ObjectID, update entity.Record) error

	// Delete는 사용자를 삭제합니다
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Close는 저장소 연결을 종료합니다
	Close(ctx context.Context) error
}
