package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	marketplaceUC "github.com/servly-inc/servly/internal/application/marketplace/usecases"
	"github.com/servly-inc/servly/internal/application/quota"
	subscriptionUC "github.com/servly-inc/servly/internal/application/subscription/usecases"
	"github.com/servly-inc/servly/internal/domain/shared/events"
	"github.com/servly-inc/servly/internal/infrastructure/config"
	"github.com/servly-inc/servly/internal/infrastructure/pubsub"
	"github.com/servly-inc/servly/internal/infrastructure/repository"
	"github.com/servly-inc/servly/internal/interfaces/http/handlers"
	"github.com/servly-inc/servly/internal/interfaces/http/middleware"
	"github.com/servly-inc/servly/internal/interfaces/http/routes"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// Router wires repositories, use cases and handlers into a gin engine.
type Router struct {
	engine              *gin.Engine
	cfg                 *config.Config
	log                 logger.Interface
	orderHandler        *handlers.OrderHandler
	proposalHandler     *handlers.ProposalHandler
	planHandler         *handlers.PlanHandler
	subscriptionHandler *handlers.SubscriptionHandler
	lifecycleHandler    *handlers.LifecycleHandler
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(gdb *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	txMgr := db.NewTxManager(gdb)

	orderRepo := repository.NewOrderRepository(gdb)
	proposalRepo := repository.NewProposalRepository(gdb)
	planRepo := repository.NewPlanRepository(gdb)
	subscriptionRepo := repository.NewSubscriptionRepository(gdb)
	usageRepo := repository.NewUsageRepository(gdb)
	lifecycleStore := repository.NewSoftDeleteStore(gdb, txMgr, log)

	var publisher events.Publisher = pubsub.NewRedisEventBus(redisClient, log)

	tracker := quota.NewTracker(subscriptionRepo, planRepo, usageRepo, proposalRepo, log)

	orderHandler := handlers.NewOrderHandler(
		marketplaceUC.NewCreateOrderUseCase(orderRepo, tracker, txMgr, publisher, log),
		marketplaceUC.NewCancelOrderUseCase(orderRepo, proposalRepo, txMgr, publisher, log),
		marketplaceUC.NewStartOrderUseCase(orderRepo, txMgr, log),
		marketplaceUC.NewCompleteOrderUseCase(orderRepo, txMgr, log),
	)

	proposalHandler := handlers.NewProposalHandler(
		marketplaceUC.NewCreateProposalUseCase(orderRepo, proposalRepo, tracker, txMgr, publisher, log),
		marketplaceUC.NewAcceptProposalUseCase(orderRepo, proposalRepo, txMgr, publisher, log),
		marketplaceUC.NewDeclineProposalUseCase(orderRepo, proposalRepo, txMgr, publisher, log),
	)

	planHandler := handlers.NewPlanHandler(
		subscriptionUC.NewCreatePlanUseCase(planRepo, txMgr, log),
	)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		subscriptionUC.NewCreateSubscriptionUseCase(subscriptionRepo, planRepo, usageRepo, txMgr, publisher, log),
		subscriptionUC.NewCancelSubscriptionUseCase(subscriptionRepo, publisher, log),
		subscriptionUC.NewSuspendSubscriptionUseCase(subscriptionRepo, publisher, log),
		subscriptionUC.NewReactivateSubscriptionUseCase(subscriptionRepo, publisher, log),
		subscriptionUC.NewChangePlanUseCase(subscriptionRepo, planRepo, txMgr, publisher, log),
		subscriptionUC.NewGetUsageUseCase(tracker, log),
	)

	lifecycleHandler := handlers.NewLifecycleHandler(
		marketplaceUC.NewSoftDeleteRecordUseCase(lifecycleStore, log),
		marketplaceUC.NewRestoreRecordUseCase(lifecycleStore, log),
		marketplaceUC.NewHardDeleteRecordUseCase(lifecycleStore, log),
	)

	return &Router{
		engine:              engine,
		cfg:                 cfg,
		log:                 log,
		orderHandler:        orderHandler,
		proposalHandler:     proposalHandler,
		planHandler:         planHandler,
		subscriptionHandler: subscriptionHandler,
		lifecycleHandler:    lifecycleHandler,
	}
}

// SetupRoutes registers middleware and all route groups.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.Identity())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.SetupMarketplaceRoutes(r.engine, &routes.MarketplaceRouteConfig{
		OrderHandler:    r.orderHandler,
		ProposalHandler: r.proposalHandler,
	})

	routes.SetupSubscriptionRoutes(r.engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: r.subscriptionHandler,
		PlanHandler:         r.planHandler,
	})

	routes.SetupLifecycleRoutes(r.engine, &routes.LifecycleRouteConfig{
		LifecycleHandler: r.lifecycleHandler,
	})
}

// GetEngine returns the underlying gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
