package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/YouSangSon/ecommerce-service/internal/application/dto"
	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	apperrors "github.com/YouSangSon/ecommerce-service/internal/pkg/errors"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/logger"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/pagination"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/retry"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/serialization"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/tracing"
)

// csvHeader는 사용자 내보내기 CSV의 컬럼 순서입니다
var csvHeader = []string{"id", "email", "userName", "type_role", "member_type", "is_active", "createdAt"}

// UserUsecase는 사용자 관련 유스케이스입니다
type UserUsecase struct {
	userRepo   repository.UserRepository
	normalizer *serialization.Normalizer
	paginator  *pagination.Paginator
	retryCfg   retry.Config
}

// NewUserUsecase는 새로운 사용자 유스케이스를 생성합니다
func NewUserUsecase(
	userRepo repository.UserRepository,
	normalizer *serialization.Normalizer,
	paginator *pagination.Paginator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		normalizer: normalizer,
		paginator:  paginator,
		retryCfg:   retry.DefaultConfig(),
	}
}

// GetByID는 사용자를 조회하여 직렬화된 형태로 반환합니다
func (u *UserUsecase) GetByID(ctx context.Context, id string) (entity.Record, error) {
	ctx, span := tracing.StartSpan(ctx, "UserUsecase.GetByID")
	defer span.End()

	oid, err := serialization.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	doc, err := retry.DoWithValue(ctx, u.retryCfg, func(ctx context.Context) (entity.Record, error) {
		return u.userRepo.FindByID(ctx, oid)
	})
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "user not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to find user")
	}

	normalized, err := u.normalizer.Normalize(doc)
	if err != nil {
		return nil, err
	}

	record, ok := normalized.(map[string]interface{})
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeSerialization, "unexpected document shape")
	}

	// 해시된 비밀번호는 응답에서 제거
	delete(record, "hashed_password")

	return record, nil
}

// List는 페이지 단위로 사용자 목록을 반환합니다
func (u *UserUsecase) List(ctx context.Context, query dto.PageQuery) (*pagination.Result[entity.Record], error) {
	ctx, span := tracing.StartSpan(ctx, "UserUsecase.List")
	defer span.End()

	req := pagination.Request{Page: query.Page, Size: query.Size}
	directive, err := u.paginator.Directive(req)
	if err != nil {
		return nil, err
	}

	docs, total, err := u.userRepo.List(ctx, directive)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to list users")
	}

	records, err := u.normalizeAll(docs)
	if err != nil {
		return nil, err
	}

	result := pagination.Wrap(records, total, req)
	return &result, nil
}

// Update는 사용자 정보를 수정하고 수정된 문서를 반환합니다
func (u *UserUsecase) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (entity.Record, error) {
	ctx, span := tracing.StartSpan(ctx, "UserUsecase.Update")
	defer span.End()

	oid, err := serialization.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := entity.Record{}
	if req.UserName != nil {
		update["userName"] = *req.UserName
	}
	if req.Avatar != nil {
		update["avatar"] = *req.Avatar
	}
	if req.PhoneNumber != nil {
		update["phoneNumber"] = *req.PhoneNumber
	}
	if req.MemberType != nil {
		if !entity.MemberType(*req.MemberType).IsValid() {
			return nil, apperrors.Newf(apperrors.ErrCodeInvalidInput, "invalid member_type: %s", *req.MemberType)
		}
		update["member_type"] = *req.MemberType
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}

	if len(update) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "no fields to update")
	}

	if err := u.userRepo.Update(ctx, oid, update); err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "user not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to update user")
	}

	logger.Info(ctx, "user updated",
		logger.UserID(id),
		logger.Count(len(update)),
	)

	return u.GetByID(ctx, id)
}

// Delete는 사용자를 삭제합니다
func (u *UserUsecase) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "UserUsecase.Delete")
	defer span.End()

	oid, err := serialization.ParseObjectID(id)
	if err != nil {
		return err
	}

	if err := u.userRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "user not found")
		}
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to delete user")
	}

	logger.Info(ctx, "user deleted",
		logger.UserID(id),
	)

	return nil
}

// ExportCSV는 전체 사용자를 CSV로 내보냅니다.
// 페이지 단위로 순회하며 w에 스트리밍합니다.
func (u *UserUsecase) ExportCSV(ctx context.Context, w io.Writer) error {
	ctx, span := tracing.StartSpan(ctx, "UserUsecase.ExportCSV")
	defer span.End()

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to write csv header")
	}

	const exportPageSize = 500
	for page := 1; ; page++ {
		directive := pagination.Directive{
			Skip:  int64(page-1) * exportPageSize,
			Limit: exportPageSize,
		}

		docs, _, err := u.userRepo.List(ctx, directive)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to list users for export")
		}
		if len(docs) == 0 {
			break
		}

		for _, doc := range docs {
			normalized, err := u.normalizer.Normalize(doc)
			if err != nil {
				return err
			}
			record, ok := normalized.(map[string]interface{})
			if !ok {
				continue
			}

			row := make([]string, 0, len(csvHeader))
			for _, col := range csvHeader {
				row = append(row, toCSVField(record[col]))
			}
			if err := writer.Write(row); err != nil {
				return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to write csv row")
			}
		}

		if len(docs) < exportPageSize {
			break
		}
	}

	writer.Flush()
	return writer.Error()
}

// normalizeAll은 문서 목록 전체를 직렬화합니다
func (u *UserUsecase) normalizeAll(docs []entity.Record) ([]entity.Record, error) {
	records := make([]entity.Record, 0, len(docs))
	for _, doc := range docs {
		normalized, err := u.normalizer.Normalize(doc)
		if err != nil {
			return nil, err
		}
		record, ok := normalized.(map[string]interface{})
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeSerialization, "unexpected document shape")
		}
		delete(record, "hashed_password")
		records = append(records, record)
	}
	return records, nil
}

// toCSVField는 임의의 값을 CSV 필드 문자열로 변환합니다
func toCSVField(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}
