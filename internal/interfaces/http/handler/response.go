package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/YouSangSon/ecommerce-service/internal/pkg/errors"
)

// respondError는 에러를 표준 형식으로 응답합니다
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := apperrors.GetHTTPStatus(err)
	code := apperrors.GetCode(err)

	message := "internal server error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
		"request_id": c.GetString("request_id"),
	})
}

// respondBindError는 요청 바인딩 실패를 응답합니다
func respondBindError(c *gin.Context, err error) {
	respondError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid request body"))
}
