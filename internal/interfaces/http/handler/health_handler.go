package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/vault"
)

// HealthHandler는 헬스체크 핸들러입니다
type HealthHandler struct {
	mongoClient *mongo.Client
	cache       repository.CacheRepository
	vaultClient *vault.Client
	version     string
}

// NewHealthHandler는 새로운 HealthHandler를 생성합니다
func NewHealthHandler(mongoClient *mongo.Client, cache repository.CacheRepository, vaultClient *vault.Client, version string) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		cache:       cache,
		vaultClient: vaultClient,
		version:     version,
	}
}

// HealthResponse는 헬스체크 응답입니다
type HealthResponse struct {
	Status    string                 `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Checks    map[string]HealthCheck `json:"checks"`
}

// HealthCheck는 개별 의존성 체크 결과입니다
type HealthCheck struct {
	Status   string  `json:"status"`
	Message  string  `json:"message,omitempty"`
	Duration float64 `json:"duration_ms"`
}

// Health godoc
// @Summary      Health check
// @Description  Check the health status of the service and its dependencies
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   h.version,
		Checks:    make(map[string]HealthCheck),
	}

	// MongoDB
	mongoStart := time.Now()
	if err := h.checkMongoDB(ctx); err != nil {
		response.Checks["mongodb"] = HealthCheck{
			Status:   "unhealthy",
			Message:  err.Error(),
			Duration: float64(time.Since(mongoStart).Milliseconds()),
		}
		response.Status = "unhealthy"
	} else {
		response.Checks["mongodb"] = HealthCheck{
			Status:   "healthy",
			Duration: float64(time.Since(mongoStart).Milliseconds()),
		}
	}

	// Redis (장애 시 degraded)
	if h.cache != nil {
		redisStart := time.Now()
		if err := h.checkRedis(ctx); err != nil {
			response.Checks["redis"] = HealthCheck{
				Status:   "unhealthy",
				Message:  err.Error(),
				Duration: float64(time.Since(redisStart).Milliseconds()),
			}
			if response.Status == "healthy" {
				response.Status = "degraded"
			}
		} else {
			response.Checks["redis"] = HealthCheck{
				Status:   "healthy",
				Duration: float64(time.Since(redisStart).Milliseconds()),
			}
		}
	}

	// Vault (선택적)
	if h.vaultClient != nil {
		vaultStart := time.Now()
		if err := h.vaultClient.HealthCheck(ctx); err != nil {
			response.Checks["vault"] = HealthCheck{
				Status:   "unhealthy",
				Message:  err.Error(),
				Duration: float64(time.Since(vaultStart).Milliseconds()),
			}
			if response.Status == "healthy" {
				response.Status = "degraded"
			}
		} else {
			response.Checks["vault"] = HealthCheck{
				Status:   "healthy",
				Duration: float64(time.Since(vaultStart).Milliseconds()),
			}
		}
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Ready는 readiness probe 엔드포인트입니다
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.checkMongoDB(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "mongodb connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}

func (h *HealthHandler) checkMongoDB(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return h.mongoClient.Ping(ctx, readpref.Primary())
}

func (h *HealthHandler) checkRedis(ctx context.Context) error {
	testKey := "__health_check__"

	if err := h.cache.Set(ctx, testKey, "ok", 10*time.Second); err != nil {
		return err
	}

	var result string
	if err := h.cache.Get(ctx, testKey, &result); err != nil {
		return err
	}

	_ = h.cache.Delete(ctx, testKey)
	return nil
}
