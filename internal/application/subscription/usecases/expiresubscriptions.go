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

const expireBatchSize = 200

// ExpireSubscriptionsUseCase is the scheduler entry point that moves
// ACTIVE/CANCELLED subscriptions whose period ended without renewal to
// EXPIRED. The engine only exposes the decision; an external scheduler
// drives the cadence.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	publisher        events.Publisher
	logger           logger.Interface
	now              func() time.Time
}

func NewExpireSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	publisher events.Publisher,
	log logger.Interface,
) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		publisher:        publisher,
		logger:           log,
		now:              biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *ExpireSubscriptionsUseCase) WithNow(now func() time.Time) *ExpireSubscriptionsUseCase {
	uc.now = now
	return uc
}

// Execute expires every due subscription and returns how many transitioned.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.now()
	due, err := uc.subscriptionRepo.ListExpiryDue(ctx, now, expireBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list expiring subscriptions: %w", err)
	}

	expired := 0
	for _, sub := range due {
		if !sub.ExpiryDue(now) {
			continue
		}
		if err := sub.MarkExpired(now); err != nil {
			uc.logger.Warnw("skipping subscription that cannot expire",
				"subscription_id", sub.ID(),
				"status", sub.Status(),
				"error", err,
			)
			continue
		}
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			uc.logger.Errorw("failed to persist expiry", "error", err, "subscription_id", sub.ID())
			continue
		}
		expired++
		publishAfterCommit(ctx, uc.logger, uc.publisher,
			subscription.NewSubscriptionExpiredEvent(sub.ID(), sub.UserID()))
	}

	if expired > 0 {
		uc.logger.Infow("expired subscriptions", "count", expired)
	}
	return expired, nil
}
