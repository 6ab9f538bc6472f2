package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	marketplaceUC "github.com/servly-inc/servly/internal/application/marketplace/usecases"
	subscriptionUC "github.com/servly-inc/servly/internal/application/subscription/usecases"
	"github.com/servly-inc/servly/internal/domain/shared/events"
	"github.com/servly-inc/servly/internal/infrastructure/config"
	"github.com/servly-inc/servly/internal/infrastructure/database"
	"github.com/servly-inc/servly/internal/infrastructure/pubsub"
	"github.com/servly-inc/servly/internal/infrastructure/repository"
	"github.com/servly-inc/servly/internal/shared/biztime"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/logger"
)

var (
	env      string
	interval time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Start the background sweep worker",
		Long:  `Run periodic sweeps that expire stale proposals and lapsed subscriptions.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Sweep interval")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Business.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	log := logger.NewLogger().Named("worker")

	gdb := database.Get()
	txMgr := db.NewTxManager(gdb)
	proposalRepo := repository.NewProposalRepository(gdb)
	subscriptionRepo := repository.NewSubscriptionRepository(gdb)

	var publisher events.Publisher = pubsub.NewRedisEventBus(redisClient, log)

	expireProposals := marketplaceUC.NewExpireProposalsUseCase(proposalRepo, txMgr, log)
	expireSubscriptions := subscriptionUC.NewExpireSubscriptionsUseCase(subscriptionRepo, publisher, log)

	log.Infow("worker starting", "environment", env, "interval", interval.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sweep(ctx, log, expireProposals, expireSubscriptions)

	for {
		select {
		case <-ticker.C:
			sweep(ctx, log, expireProposals, expireSubscriptions)
		case sig := <-quit:
			log.Infow("worker shutting down", "signal", sig.String())
			return nil
		}
	}
}

func sweep(
	ctx context.Context,
	log logger.Interface,
	expireProposals *marketplaceUC.ExpireProposalsUseCase,
	expireSubscriptions *subscriptionUC.ExpireSubscriptionsUseCase,
) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if n, err := expireProposals.Execute(sweepCtx); err != nil {
		log.Errorw("proposal expiry sweep failed", "error", err)
	} else if n > 0 {
		log.Infow("expired stale proposals", "count", n)
	}

	if n, err := expireSubscriptions.Execute(sweepCtx); err != nil {
		log.Errorw("subscription expiry sweep failed", "error", err)
	} else if n > 0 {
		log.Infow("expired lapsed subscriptions", "count", n)
	}
}
