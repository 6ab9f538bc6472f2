package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/servly-inc/servly/internal/interfaces/http/handlers"
)

// MarketplaceRouteConfig holds dependencies for order and proposal routes.
type MarketplaceRouteConfig struct {
	OrderHandler    *handlers.OrderHandler
	ProposalHandler *handlers.ProposalHandler
}

// SetupMarketplaceRoutes configures order and proposal routes.
func SetupMarketplaceRoutes(engine *gin.Engine, cfg *MarketplaceRouteConfig) {
	orders := engine.Group("/orders")
	{
		orders.POST("", cfg.OrderHandler.CreateOrder)
		orders.POST("/:id/cancel", cfg.OrderHandler.CancelOrder)
		orders.POST("/:id/start", cfg.OrderHandler.StartOrder)
		orders.POST("/:id/complete", cfg.OrderHandler.CompleteOrder)
		orders.POST("/:id/proposals", cfg.ProposalHandler.CreateProposal)
	}

	proposals := engine.Group("/proposals")
	{
		proposals.POST("/:id/accept", cfg.ProposalHandler.AcceptProposal)
		proposals.POST("/:id/decline", cfg.ProposalHandler.DeclineProposal)
	}
}
