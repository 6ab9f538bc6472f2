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

// ChangePlanUseCase swaps the user's plan. The current period's counters are
// re-evaluated against the new plan's limits on the next quota check: being
// over the new limit just denies creation going forward, existing resources
// are untouched.
type ChangePlanUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	txMgr            db.TxManager
	publisher        events.Publisher
	logger           logger.Interface
	now              func() time.Time
}

func NewChangePlanUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	txMgr db.TxManager,
	publisher events.Publisher,
	log logger.Interface,
) *ChangePlanUseCase {
	return &ChangePlanUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		txMgr:            txMgr,
		publisher:        publisher,
		logger:           log,
		now:              biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *ChangePlanUseCase) WithNow(now func() time.Time) *ChangePlanUseCase {
	uc.now = now
	return uc
}

func (uc *ChangePlanUseCase) Execute(ctx context.Context, userID, newPlanID uint) (*subscription.Subscription, error) {
	var (
		sub       *subscription.Subscription
		oldPlanID uint
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.subscriptionRepo.GetByUserID(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if existing == nil {
			uc.logger.Errorw("integrity defect: user has no subscription record", "user_id", userID)
			return subscription.ErrSubscriptionMissing
		}

		// Re-read under lock so concurrent plan changes serialize.
		sub, err = uc.subscriptionRepo.GetByIDForUpdate(txCtx, existing.ID())
		if err != nil {
			return fmt.Errorf("failed to lock subscription: %w", err)
		}

		plan, err := uc.planRepo.GetByID(txCtx, newPlanID)
		if err != nil {
			return fmt.Errorf("failed to get plan: %w", err)
		}
		if plan == nil {
			return subscription.ErrPlanNotFound
		}
		if !plan.IsActive() {
			return subscription.ErrPlanInactive
		}

		oldPlanID = sub.PlanID()
		if err := sub.ChangePlan(newPlanID, uc.now()); err != nil {
			return err
		}
		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to persist plan change: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to change plan", "error", err, "user_id", userID, "new_plan_id", newPlanID)
		return nil, err
	}

	if oldPlanID != newPlanID {
		uc.logger.Infow("subscription plan changed",
			"subscription_id", sub.ID(),
			"old_plan_id", oldPlanID,
			"new_plan_id", newPlanID,
		)
		publishAfterCommit(ctx, uc.logger, uc.publisher,
			subscription.NewSubscriptionPlanChangedEvent(sub.ID(), userID, oldPlanID, newPlanID))
	}
	return sub, nil
}
