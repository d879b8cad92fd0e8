package http

import (
	"github.com/gin-gonic/gin"

	"github.com/fragancia/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		sync := v1.Group("/sync")
		{
			// POST for the dashboard; GET so cron-style schedulers that
			// can only issue plain GETs can trigger a run too.
			sync.POST("/run", handler.RunSync)
			sync.GET("/run", handler.RunSync)
			sync.GET("/status", handler.SyncStatus)
			sync.GET("/matches", handler.ListMatches)
			sync.GET("/orphans", handler.ListOrphans)
		}
	}

	return router
}
