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

// ReactivateSubscriptionUseCase lifts an administrative suspension.
type ReactivateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	publisher        events.Publisher
	logger           logger.Interface
	now              func() time.Time
}

func NewReactivateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	publisher events.Publisher,
	log logger.Interface,
) *ReactivateSubscriptionUseCase {
	return &ReactivateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		publisher:        publisher,
		logger:           log,
		now:              biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *ReactivateSubscriptionUseCase) WithNow(now func() time.Time) *ReactivateSubscriptionUseCase {
	uc.now = now
	return uc
}

func (uc *ReactivateSubscriptionUseCase) Execute(ctx context.Context, subscriptionID uint) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, subscription.ErrSubscriptionNotFound
	}

	if err := sub.Reactivate(uc.now()); err != nil {
		return nil, err
	}
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist reactivation", "error", err, "subscription_id", subscriptionID)
		return nil, fmt.Errorf("failed to persist reactivation: %w", err)
	}

	uc.logger.Infow("subscription reactivated", "subscription_id", subscriptionID)
	publishAfterCommit(ctx, uc.logger, uc.publisher,
		subscription.NewSubscriptionReactivatedEvent(sub.ID(), sub.UserID()))
	return sub, nil
}
