package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/servly-inc/servly/internal/domain/shared/events"
	"github.com/servly-inc/servly/internal/domain/subscription"
	"github.com/servly-inc/servly/internal/shared/biztime"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// CancelSubscriptionUseCase handles user-initiated cancellation. The
// subscription keeps honoring quotas until the period ends, then expires.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	publisher        events.Publisher
	logger           logger.Interface
	now              func() time.Time
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	publisher events.Publisher,
	log logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		publisher:        publisher,
		logger:           log,
		now:              biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *CancelSubscriptionUseCase) WithNow(now func() time.Time) *CancelSubscriptionUseCase {
	uc.now = now
	return uc
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		uc.logger.Errorw("integrity defect: user has no subscription record", "user_id", userID)
		return nil, subscription.ErrSubscriptionMissing
	}

	if err := sub.Cancel(uc.now()); err != nil {
		return nil, err
	}
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist cancellation", "error", err, "subscription_id", sub.ID())
		return nil, fmt.Errorf("failed to persist cancellation: %w", err)
	}

	uc.logger.Infow("subscription cancelled", "subscription_id", sub.ID(), "user_id", userID)
	publishAfterCommit(ctx, uc.logger, uc.publisher,
		subscription.NewSubscriptionCancelledEvent(sub.ID(), userID, sub.PlanID(), *sub.CancelledAt()))
	return sub, nil
}
