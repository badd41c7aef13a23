package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/comitanigiacomo/kanso-food-diary/docs"
	"github.com/comitanigiacomo/kanso-food-diary/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/services"
)

type RouterDependencies struct {
	DiaryHandler    *DiaryHandler
	SummaryHandler  *SummaryHandler
	SettingsHandler *SettingsHandler
	ProductHandler  *ProductHandler
	HistoryHandler  *HistoryHandler
	AuthHandler     *AuthHandler
	AuthService     *services.AuthService

	StoragePing func(ctx context.Context) error
	Redis       *redis.Client
	RateLimit   int
	Logger      *zap.Logger
	StartTime   time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.Default()
	router.Use(middleware.ErrorLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiter(deps.Redis, deps.RateLimit, time.Minute, logger))
	}

	router.GET("/health", func(c *gin.Context) {
		storageStatus := "connected"
		if deps.StoragePing != nil {
			if err := deps.StoragePing(c.Request.Context()); err != nil {
				storageStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := http.StatusOK
		status := "ok"
		if storageStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
			status = "error"
		}

		c.JSON(statusCode, gin.H{
			"status":  status,
			"storage": storageStatus,
			"redis":   redisStatus,
			"uptime":  time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(apiV1)
	}

	protected := apiV1.Group("")
	if deps.AuthService != nil && deps.AuthService.Enabled() {
		protected.Use(middleware.AuthMiddleware(deps.AuthService))
	}
	{
		deps.DiaryHandler.RegisterRoutes(protected)
		deps.SummaryHandler.RegisterRoutes(protected)
		deps.SettingsHandler.RegisterRoutes(protected)
		deps.ProductHandler.RegisterRoutes(protected)
		deps.HistoryHandler.RegisterRoutes(protected)
	}

	return router
}
