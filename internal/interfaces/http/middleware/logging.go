package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/YouSangSon/ecommerce-service/internal/pkg/logger"
)

// Logging은 HTTP 요청/응답을 로깅하는 미들웨어입니다
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			logger.HTTPMethod(c.Request.Method),
			logger.HTTPPath(path),
			logger.HTTPStatus(statusCode),
			logger.RemoteAddr(c.ClientIP()),
			logger.DurationMs(duration),
			zap.Int("response_size", c.Writer.Size()),
		}

		ctx := c.Request.Context()
		switch {
		case len(c.Errors) > 0:
			logger.Error(ctx, "request completed with errors",
				append(fields, zap.Strings("errors", c.Errors.Errors()))...)
		case statusCode >= 500:
			logger.Error(ctx, "request completed", fields...)
		case statusCode >= 400:
			logger.Warn(ctx, "request completed", fields...)
		default:
			logger.Info(ctx, "request completed", fields...)
		}
	}
}
