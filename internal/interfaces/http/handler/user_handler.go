package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YouSangSon/ecommerce-service/internal/application/dto"
	"github.com/YouSangSon/ecommerce-service/internal/application/usecase"
	"github.com/YouSangSon/ecommerce-service/internal/interfaces/http/middleware"
	apperrors "github.com/YouSangSon/ecommerce-service/internal/pkg/errors"
)

// UserHandler는 사용자 HTTP 핸들러입니다
type UserHandler struct {
	userUsecase *usecase.UserUsecase
}

// NewUserHandler는 새로운 UserHandler를 생성합니다
func NewUserHandler(userUsecase *usecase.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// GetMe는 인증된 사용자 본인의 정보를 반환합니다
func (h *UserHandler) GetMe(c *gin.Context) {
	record, err := h.userUsecase.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetByID godoc
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "user id (24-char hex)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	// 본인 또는 관리자만 조회 가능
	if !middleware.IsAdmin(c) && middleware.GetUserID(c) != id {
		respondError(c, apperrors.New(apperrors.ErrCodeForbidden, "cannot access another user"))
		return
	}

	record, err := h.userUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// List godoc
// @Summary      List users with pagination
// @Tags         users
// @Produce      json
// @Param        page  query     int  false  "page number (1-based)"
// @Param        size  query     int  false  "page size"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.userUsecase.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Update는 사용자 정보를 수정합니다.
// 일반 사용자는 본인 계정만, 등급과 활성화 여부는 관리자만 변경할 수 있습니다.
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id := c.Param("id")

	if !middleware.IsAdmin(c) {
		if middleware.GetUserID(c) != id {
			respondError(c, apperrors.New(apperrors.ErrCodeForbidden, "cannot modify another user"))
			return
		}
		if req.MemberType != nil || req.IsActive != nil {
			respondError(c, apperrors.New(apperrors.ErrCodeForbidden, "admin privileges required to change member_type or is_active"))
			return
		}
	}

	record, err := h.userUsecase.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// Delete는 사용자를 삭제합니다
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userUsecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export는 전체 사용자를 CSV 파일로 내려줍니다 (관리자 전용)
func (h *UserHandler) Export(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="users.csv"`)

	if err := h.userUsecase.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		// 스트리밍 도중의 실패는 헤더가 이미 전송되었을 수 있음
		_ = c.Error(err)
		return
	}
}
