package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/YouSangSon/ecommerce-service/internal/config"
	"github.com/YouSangSon/ecommerce-service/internal/infrastructure/cache"
	"github.com/YouSangSon/ecommerce-service/internal/interfaces/http/handler"
	"github.com/YouSangSon/ecommerce-service/internal/interfaces/http/middleware"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/token"
)

// Handlers는 라우터에 연결할 핸들러 집합입니다
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Product *handler.ProductHandler
	Health  *handler.HealthHandler
}

// Setup은 미들웨어와 전체 라우트를 구성합니다
func Setup(cfg *config.Config, handlers Handlers, tokens *token.Manager, limiter *cache.RateLimiter) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	if cfg.Observability.Metrics.Enabled {
		router.Use(middleware.Metrics())
	}
	if cfg.Observability.Tracing.Enabled {
		router.Use(middleware.Tracing())
	}

	// Health & Metrics (rate limit 미적용)
	router.GET("/health", handlers.Health.Health)
	router.GET("/ready", handlers.Health.Ready)
	if cfg.Observability.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	if cfg.RateLimit.Enabled && limiter != nil {
		v1.Use(middleware.RateLimit(limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window))
	}

	// 인증 불필요
	auth := v1.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	// 공개 상품 조회
	products := v1.Group("/products")
	{
		products.GET("", handlers.Product.List)
		products.GET("/search", handlers.Product.Search)
		products.GET("/:id", handlers.Product.GetByID)
	}

	// 인증 필요
	authed := v1.Group("")
	authed.Use(middleware.Auth(tokens))
	{
		users := authed.Group("/users")
		{
			users.GET("/me", handlers.User.GetMe)
			users.GET("/:id", handlers.User.GetByID)
			users.PUT("/:id", handlers.User.Update)

			admin := users.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("", handlers.User.List)
				admin.GET("/export", handlers.User.Export)
				admin.DELETE("/:id", handlers.User.Delete)
			}
		}

		// 상품 변경은 관리자 전용
		productAdmin := authed.Group("/products")
		productAdmin.Use(middleware.RequireAdmin())
		{
			productAdmin.POST("", handlers.Product.Create)
			productAdmin.PUT("/:id", handlers.Product.Update)
			productAdmin.DELETE("/:id", handlers.Product.Delete)
		}
	}

	return router
}
