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

// SuspendSubscriptionUseCase is the administrative block: a suspended
// subscription cannot create anything regardless of remaining quota.
type SuspendSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	publisher        events.Publisher
	logger           logger.Interface
	now              func() time.Time
}

func NewSuspendSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	publisher events.Publisher,
	log logger.Interface,
) *SuspendSubscriptionUseCase {
	return &SuspendSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		publisher:        publisher,
		logger:           log,
		now:              biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *SuspendSubscriptionUseCase) WithNow(now func() time.Time) *SuspendSubscriptionUseCase {
	uc.now = now
	return uc
}

func (uc *SuspendSubscriptionUseCase) Execute(ctx context.Context, subscriptionID uint) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, subscription.ErrSubscriptionNotFound
	}

	if err := sub.Suspend(uc.now()); err != nil {
		return nil, err
	}
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist suspension", "error", err, "subscription_id", subscriptionID)
		return nil, fmt.Errorf("failed to persist suspension: %w", err)
	}

	uc.logger.Infow("subscription suspended", "subscription_id", subscriptionID)
	publishAfterCommit(ctx, uc.logger, uc.publisher,
		subscription.NewSubscriptionSuspendedEvent(sub.ID(), sub.UserID()))
	return sub, nil
}
