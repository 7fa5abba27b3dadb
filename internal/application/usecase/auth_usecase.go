package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/YouSangSon/ecommerce-service/internal/application/dto"
	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	apperrors "github.com/YouSangSon/ecommerce-service/internal/pkg/errors"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/logger"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/retry"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/token"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/tracing"
)

// AuthUsecase는 인증 관련 유스케이스입니다
type AuthUsecase struct {
	userRepo            repository.UserRepository
	publisher           repository.EventPublisher
	tokens              *token.Manager
	topicUserRegistered string
	tokenTTL            time.Duration
	retryCfg            retry.Config
}

// NewAuthUsecase는 새로운 인증 유스케이스를 생성합니다
func NewAuthUsecase(
	userRepo repository.UserRepository,
	publisher repository.EventPublisher,
	tokens *token.Manager,
	topicUserRegistered string,
	tokenTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:            userRepo,
		publisher:           publisher,
		tokens:              tokens,
		topicUserRegistered: topicUserRegistered,
		tokenTTL:            tokenTTL,
		retryCfg:            retry.DefaultConfig(),
	}
}

// Register는 새로운 사용자를 등록합니다
func (u *AuthUsecase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "AuthUsecase.Register")
	defer span.End()

	user, err := entity.NewUser(req.Email, req.UserName, req.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, err.Error())
	}
	user.PhoneNumber = req.PhoneNumber

	id, err := retry.DoWithValue(ctx, u.retryCfg, func(ctx context.Context) (string, error) {
		return u.userRepo.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeConflict, "email already registered")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to create user")
	}

	// 가입 이벤트는 실패해도 가입 자체를 되돌리지 않음
	if u.publisher != nil {
		event := repository.NewUserEvent(u.topicUserRegistered, id, user.Email)
		if pubErr := u.publisher.Publish(ctx, u.topicUserRegistered, id, event); pubErr != nil {
			logger.Warn(ctx, "failed to publish user registered event",
				logger.UserID(id),
				zap.Error(pubErr),
			)
		}
	}

	logger.Info(ctx, "user registered",
		logger.UserID(id),
		logger.Email(user.Email),
	)

	return &dto.RegisterResponse{ID: id, Email: user.Email}, nil
}

// Login은 이메일과 비밀번호를 검증하고 액세스 토큰을 발급합니다
func (u *AuthUsecase) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "AuthUsecase.Login")
	defer span.End()

	user, id, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			// 존재하지 않는 계정도 동일한 에러로 응답
			return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "invalid email or password")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to find user")
	}

	if !user.IsActive {
		return nil, apperrors.New(apperrors.ErrCodeForbidden, "account is deactivated")
	}

	if !user.CheckPassword(req.Password) {
		logger.Warn(ctx, "login failed: wrong password",
			logger.Email(req.Email),
		)
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "invalid email or password")
	}

	accessToken, err := u.tokens.Generate(id.Hex(), string(user.Role))
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in",
		logger.UserID(id.Hex()),
	)

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(u.tokenTTL.Seconds()),
	}, nil
}
