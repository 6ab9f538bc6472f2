package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/servly-inc/servly/internal/domain/shared/events"
	"github.com/servly-inc/servly/internal/domain/subscription"
	"github.com/servly-inc/servly/internal/shared/biztime"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// CreateSubscriptionUseCase bootstraps the mandatory subscription record for
// a new user account on the default plan. It runs inside the same atomic
// unit as account creation: callers pass the account-creation transaction
// through the context.
type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	usageRepo        subscription.UsageRepository
	txMgr            db.TxManager
	publisher        events.Publisher
	logger           logger.Interface
	now              func() time.Time
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	usageRepo subscription.UsageRepository,
	txMgr db.TxManager,
	publisher events.Publisher,
	log logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		usageRepo:        usageRepo,
		txMgr:            txMgr,
		publisher:        publisher,
		logger:           log,
		now:              biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *CreateSubscriptionUseCase) WithNow(now func() time.Time) *CreateSubscriptionUseCase {
	uc.now = now
	return uc
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	var sub *subscription.Subscription
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.subscriptionRepo.GetByUserID(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to check existing subscription: %w", err)
		}
		if existing != nil {
			return subscription.ErrActiveSubscriptionExists
		}

		plan, err := uc.planRepo.GetDefault(txCtx)
		if err != nil {
			return fmt.Errorf("failed to resolve default plan: %w", err)
		}
		if plan == nil {
			return subscription.ErrNoDefaultPlan
		}

		sub, err = subscription.NewSubscription(userID, plan.ID(), uc.now(), true)
		if err != nil {
			return err
		}
		if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		counter, err := subscription.NewUsageCounter(sub.ID(), sub.PeriodStart())
		if err != nil {
			return err
		}
		if err := uc.usageRepo.Create(txCtx, counter); err != nil {
			return fmt.Errorf("failed to create usage counter: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to bootstrap subscription", "error", err, "user_id", userID)
		return nil, err
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"user_id", userID,
		"plan_id", sub.PlanID(),
	)
	publishAfterCommit(ctx, uc.logger, uc.publisher,
		subscription.NewSubscriptionCreatedEvent(sub.ID(), userID, sub.PlanID(), sub.PeriodStart(), sub.PeriodEnd()))
	return sub, nil
}
