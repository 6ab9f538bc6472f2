package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/servly-inc/servly/internal/interfaces/http/handlers"
)

// LifecycleRouteConfig holds dependencies for record lifecycle routes.
type LifecycleRouteConfig struct {
	LifecycleHandler *handlers.LifecycleHandler
}

// SetupLifecycleRoutes configures administrative record lifecycle routes.
func SetupLifecycleRoutes(engine *gin.Engine, cfg *LifecycleRouteConfig) {
	records := engine.Group("/admin/records/:kind/:id")
	{
		records.DELETE("", cfg.LifecycleHandler.SoftDelete)
		records.POST("/restore", cfg.LifecycleHandler.Restore)
		records.DELETE("/purge", cfg.LifecycleHandler.HardDelete)
	}
}
