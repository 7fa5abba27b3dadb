package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/YouSangSon/ecommerce-service/internal/pkg/metrics"
)

// Metrics는 Prometheus 메트릭을 수집하는 미들웨어입니다
func Metrics() gin.HandlerFunc {
	m := metrics.GetMetrics()

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// 라우트 패턴 기준으로 기록 (cardinality 제한)
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		m.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
