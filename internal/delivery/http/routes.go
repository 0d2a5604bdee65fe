package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mosipdecode/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if cfg.Server.MaxUploadMB > 0 {
		router.MaxMultipartMemory = cfg.Server.MaxUploadBytes()
	}

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		v1.POST("/extract", handler.Extract)
		v1.POST("/extract/fragments", handler.ExtractFragments)
		v1.POST("/detect", handler.Detect)

		verify := v1.Group("/verify")
		{
			verify.POST("", handler.Verify)
			verify.POST("/fragments", handler.VerifyFragments)
			verify.POST("/quick", handler.QuickVerify)
			verify.POST("/multipage", handler.VerifyMultipage)
		}
	}

	return router
}
