package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servly-inc/servly/internal/application/testutil"
	"github.com/servly-inc/servly/internal/domain/subscription"
	vo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"
	"github.com/servly-inc/servly/internal/shared/logger"
)

func seedSubscription(t *testing.T, subRepo *testutil.SubscriptionRepo, userID uint, start time.Time, autoRenew bool) *subscription.Subscription {
	t.Helper()
	sub, err := subscription.NewSubscription(userID, 1, start, autoRenew)
	require.NoError(t, err)
	require.NoError(t, subRepo.Create(context.Background(), sub))
	return sub
}

func TestCancelSubscription_EntersGracePeriod(t *testing.T) {
	subRepo := testutil.NewSubscriptionRepo()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	sub := seedSubscription(t, subRepo, 42, now, true)

	publisher := testutil.NewCapturePublisher()
	uc := NewCancelSubscriptionUseCase(subRepo, publisher, logger.NewNop()).
		WithNow(func() time.Time { return now })

	got, err := uc.Execute(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCancelled, got.Status())
	assert.False(t, got.AutoRenew())
	require.NotNil(t, got.CancelledAt())
	assert.True(t, got.CanCreateResources(now))
	assert.False(t, got.CanCreateResources(sub.PeriodEnd().Add(time.Minute)))
	require.True(t, publisher.Wait(1, time.Second))
}

func TestCancelSubscription_MissingRecord(t *testing.T) {
	uc := NewCancelSubscriptionUseCase(testutil.NewSubscriptionRepo(), nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), 42)
	assert.ErrorIs(t, err, subscription.ErrSubscriptionMissing)
}

func TestSuspendAndReactivateSubscription(t *testing.T) {
	subRepo := testutil.NewSubscriptionRepo()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	sub := seedSubscription(t, subRepo, 42, now, true)
	clock := func() time.Time { return now }

	suspend := NewSuspendSubscriptionUseCase(subRepo, nil, logger.NewNop()).WithNow(clock)
	_, err := suspend.Execute(context.Background(), sub.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusSuspended, sub.Status())

	// Suspending twice is an invalid transition.
	_, err = suspend.Execute(context.Background(), sub.ID())
	assert.Error(t, err)

	reactivate := NewReactivateSubscriptionUseCase(subRepo, nil, logger.NewNop()).WithNow(clock)
	_, err = reactivate.Execute(context.Background(), sub.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
}

func TestExpireSubscriptions_SweepsDueOnes(t *testing.T) {
	subRepo := testutil.NewSubscriptionRepo()
	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	// Auto-renewing subscription rolls over instead of expiring.
	renewing := seedSubscription(t, subRepo, 1, start, true)

	// Non-renewing and cancelled ones expire once the period passed.
	lapsed := seedSubscription(t, subRepo, 2, start, false)
	cancelled := seedSubscription(t, subRepo, 3, start, true)
	require.NoError(t, cancelled.Cancel(start.Add(time.Hour)))

	later := lapsed.PeriodEnd().Add(24 * time.Hour)
	uc := NewExpireSubscriptionsUseCase(subRepo, testutil.NewCapturePublisher(), logger.NewNop()).
		WithNow(func() time.Time { return later })

	count, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, vo.StatusExpired, lapsed.Status())
	assert.Equal(t, vo.StatusExpired, cancelled.Status())
	assert.Equal(t, vo.StatusActive, renewing.Status())

	// Idempotent: a second sweep finds nothing due.
	count, err = uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
