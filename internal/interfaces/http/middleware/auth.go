package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/logger"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/token"
)

const (
	// UserIDKey는 context에서 인증된 사용자 ID를 저장하는 키입니다
	UserIDKey = "user_id"

	// UserRoleKey는 context에서 사용자 역할을 저장하는 키입니다
	UserRoleKey = "user_role"
)

// Auth는 Bearer 토큰을 검증하는 인증 미들웨어입니다
func Auth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(UserRoleKey, claims.Role)

		ctx := logger.WithFields(c.Request.Context(),
			logger.UserID(claims.Subject),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin은 관리자 권한을 요구하는 미들웨어입니다 (Auth 이후 사용)
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(UserRoleKey)
		if role != string(entity.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "admin privileges required",
				},
				"request_id": c.GetString(RequestIDKey),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID는 context에서 인증된 사용자 ID를 반환합니다
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// IsAdmin은 인증된 사용자가 관리자인지 확인합니다
func IsAdmin(c *gin.Context) bool {
	return c.GetString(UserRoleKey) == string(entity.RoleAdmin)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
		"request_id": c.GetString(RequestIDKey),
	})
	c.Abort()
}
