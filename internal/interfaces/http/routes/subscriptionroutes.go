package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/servly-inc/servly/internal/interfaces/http/handlers"
)

// SubscriptionRouteConfig holds dependencies for subscription and plan routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	PlanHandler         *handlers.PlanHandler
}

// SetupSubscriptionRoutes configures subscription and plan routes.
func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	subscriptions := engine.Group("/subscriptions")
	{
		subscriptions.POST("", cfg.SubscriptionHandler.CreateSubscription)
		subscriptions.POST("/cancel", cfg.SubscriptionHandler.CancelSubscription)
		subscriptions.POST("/plan", cfg.SubscriptionHandler.ChangePlan)
		subscriptions.GET("/:id/usage", cfg.SubscriptionHandler.GetUsage)
	}

	admin := engine.Group("/admin")
	{
		admin.POST("/plans", cfg.PlanHandler.CreatePlan)
		admin.POST("/subscriptions/:id/suspend", cfg.SubscriptionHandler.SuspendSubscription)
		admin.POST("/subscriptions/:id/reactivate", cfg.SubscriptionHandler.ReactivateSubscription)
	}
}
