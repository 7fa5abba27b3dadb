package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YouSangSon/ecommerce-service/internal/application/dto"
	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	apperrors "github.com/YouSangSon/ecommerce-service/internal/pkg/errors"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/token"
)

func newAuthUsecase(repo *MockUserRepository, publisher *MockEventPublisher) *AuthUsecase {
	tokens := token.NewManager("test-secret", "ecommerce-service", 30*time.Minute)
	if publisher == nil {
		return NewAuthUsecase(repo, nil, tokens, "user.registered", 30*time.Minute)
	}
	return NewAuthUsecase(repo, publisher, tokens, "user.registered", 30*time.Minute)
}

func TestAuthUsecase_Register(t *testing.T) {
	repo := new(MockUserRepository)
	publisher := new(MockEventPublisher)
	uc := newAuthUsecase(repo, publisher)

	oid := primitive.NewObjectID()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "new@example.com" && u.HashedPassword != "password123"
	})).Return(oid.Hex(), nil)
	publisher.On("Publish", mock.Anything, "user.registered", oid.Hex(), mock.MatchedBy(func(event interface{}) bool {
		e, ok := event.(repository.UserEvent)
		return ok && e.UserID == oid.Hex() && e.Email == "new@example.com" && e.EventID != ""
	})).Return(nil)

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "new@example.com",
		UserName: "newbie",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, oid.Hex(), resp.ID)
	assert.Equal(t, "new@example.com", resp.Email)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAuthUsecase_Register_WeakPassword(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newAuthUsecase(repo, nil)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "new@example.com",
		UserName: "newbie",
		Password: "short",
	})

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.GetCode(err))
	repo.AssertNotCalled(t, "Create")
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newAuthUsecase(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return("", entity.ErrEmailAlreadyExists)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "dup@example.com",
		UserName: "dup",
		Password: "password123",
	})

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.GetCode(err))
}

func TestAuthUsecase_Login(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newAuthUsecase(repo, nil)

	user, err := entity.NewUser("login@example.com", "logger", "password123")
	assert.NoError(t, err)

	oid := primitive.NewObjectID()
	repo.On("FindByEmail", mock.Anything, "login@example.com").Return(user, oid, nil)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, int64(1800), resp.ExpiresIn)

	// 발급된 토큰이 검증 가능해야 함
	tokens := token.NewManager("test-secret", "ecommerce-service", 30*time.Minute)
	claims, err := tokens.Verify(resp.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, oid.Hex(), claims.Subject)
	assert.Equal(t, "USER", claims.Role)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newAuthUsecase(repo, nil)

	user, _ := entity.NewUser("login@example.com", "logger", "password123")
	repo.On("FindByEmail", mock.Anything, "login@example.com").Return(user, primitive.NewObjectID(), nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newAuthUsecase(repo, nil)

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, primitive.NilObjectID, entity.ErrUserNotFound)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
}

func TestAuthUsecase_Login_DeactivatedAccount(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newAuthUsecase(repo, nil)

	user, _ := entity.NewUser("off@example.com", "off", "password123")
	user.IsActive = false
	repo.On("FindByEmail", mock.Anything, "off@example.com").Return(user, primitive.NewObjectID(), nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "off@example.com",
		Password: "password123",
	})

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err))
}
