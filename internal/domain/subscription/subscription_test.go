package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"
	"github.com/servly-inc/servly/internal/shared/biztime"
)

func init() {
	biztime.MustInit("UTC")
}

func reconstructedSubscription(t *testing.T, status vo.SubscriptionStatus, periodStart time.Time, autoRenew bool) *Subscription {
	t.Helper()
	now := time.Now().UTC()
	s, err := ReconstructSubscription(SubscriptionReconstructParams{
		ID:          3,
		UserID:      1,
		PlanID:      2,
		Status:      status,
		PeriodStart: periodStart,
		PeriodEnd:   biztime.AddMonths(periodStart, 1),
		AutoRenew:   autoRenew,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return s
}

func TestNewSubscription(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	s, err := NewSubscription(1, 2, start, true)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusActive, s.Status())
	assert.Equal(t, start, s.PeriodStart())
	assert.Equal(t, biztime.AddMonths(start, 1), s.PeriodEnd())
	assert.True(t, s.AutoRenew())

	_, err = NewSubscription(0, 2, start, true)
	assert.Error(t, err)

	_, err = NewSubscription(1, 0, start, true)
	assert.Error(t, err)

	_, err = NewSubscription(1, 2, time.Time{}, true)
	assert.Error(t, err)
}

func TestSubscription_Cancel(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(-24 * time.Hour)

	s := reconstructedSubscription(t, vo.StatusActive, start, true)
	require.NoError(t, s.Cancel(now))
	assert.Equal(t, vo.StatusCancelled, s.Status())
	assert.False(t, s.AutoRenew())
	require.NotNil(t, s.CancelledAt())
	assert.Equal(t, now, *s.CancelledAt())

	// cancelling twice is a no-op
	require.NoError(t, s.Cancel(now.Add(time.Hour)))
	assert.Equal(t, now, *s.CancelledAt())

	expired := reconstructedSubscription(t, vo.StatusExpired, start, true)
	assert.ErrorIs(t, expired.Cancel(now), ErrInvalidStatusTransition)
}

func TestSubscription_SuspendReactivate(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(-24 * time.Hour)

	s := reconstructedSubscription(t, vo.StatusActive, start, true)
	require.NoError(t, s.Suspend(now))
	assert.Equal(t, vo.StatusSuspended, s.Status())
	assert.False(t, s.CanCreateResources(now))

	require.NoError(t, s.Reactivate(now))
	assert.Equal(t, vo.StatusActive, s.Status())

	cancelled := reconstructedSubscription(t, vo.StatusCancelled, start, false)
	assert.ErrorIs(t, cancelled.Suspend(now), ErrInvalidStatusTransition)
	assert.ErrorIs(t, cancelled.Reactivate(now), ErrInvalidStatusTransition)
}

func TestSubscription_ChangePlan(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(-24 * time.Hour)

	s := reconstructedSubscription(t, vo.StatusActive, start, true)
	require.NoError(t, s.ChangePlan(9, now))
	assert.Equal(t, uint(9), s.PlanID())

	// same plan is a no-op
	v := s.Version()
	require.NoError(t, s.ChangePlan(9, now))
	assert.Equal(t, v, s.Version())

	assert.Error(t, s.ChangePlan(0, now))

	suspended := reconstructedSubscription(t, vo.StatusSuspended, start, true)
	assert.ErrorIs(t, suspended.ChangePlan(9, now), ErrSubscriptionInactive)
}

func TestSubscription_AdvancePeriod(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := reconstructedSubscription(t, vo.StatusActive, start, true)

	inside := start.Add(10 * 24 * time.Hour)
	assert.False(t, s.RolloverDue(inside))
	require.NoError(t, s.AdvancePeriod(inside))
	assert.Equal(t, start, s.PeriodStart())

	// crossing one boundary advances one month
	feb := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	assert.True(t, s.RolloverDue(feb))
	require.NoError(t, s.AdvancePeriod(feb))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), s.PeriodStart())
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), s.PeriodEnd())

	// crossing several boundaries advances in one step
	s2 := reconstructedSubscription(t, vo.StatusActive, start, true)
	may := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s2.AdvancePeriod(may))
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), s2.PeriodStart())
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), s2.PeriodEnd())

	// exact boundary instant belongs to the new period
	s3 := reconstructedSubscription(t, vo.StatusActive, start, true)
	boundary := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, s3.RolloverDue(boundary))
	require.NoError(t, s3.AdvancePeriod(boundary))
	assert.Equal(t, boundary, s3.PeriodStart())
}

func TestSubscription_ExpiryDue(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	afterEnd := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	beforeEnd := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	// auto-renewing active subscription rolls over instead of expiring
	assert.False(t, reconstructedSubscription(t, vo.StatusActive, start, true).ExpiryDue(afterEnd))

	// non-renewing active subscription expires once the period ends
	assert.True(t, reconstructedSubscription(t, vo.StatusActive, start, false).ExpiryDue(afterEnd))
	assert.False(t, reconstructedSubscription(t, vo.StatusActive, start, false).ExpiryDue(beforeEnd))

	// cancelled subscriptions expire at period end regardless of renewal
	cancelled := reconstructedSubscription(t, vo.StatusCancelled, start, true)
	assert.True(t, cancelled.ExpiryDue(afterEnd))
	assert.False(t, cancelled.ExpiryDue(beforeEnd))

	assert.False(t, reconstructedSubscription(t, vo.StatusSuspended, start, false).ExpiryDue(afterEnd))
	assert.False(t, reconstructedSubscription(t, vo.StatusExpired, start, false).ExpiryDue(afterEnd))
}

func TestSubscription_MarkExpired(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(-40 * 24 * time.Hour)

	s := reconstructedSubscription(t, vo.StatusCancelled, start, false)
	require.NoError(t, s.MarkExpired(now))
	assert.Equal(t, vo.StatusExpired, s.Status())

	// idempotent
	require.NoError(t, s.MarkExpired(now))

	suspended := reconstructedSubscription(t, vo.StatusSuspended, start, false)
	assert.ErrorIs(t, suspended.MarkExpired(now), ErrInvalidStatusTransition)
}

func TestSubscription_CanCreateResources(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	inside := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	after := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	assert.True(t, reconstructedSubscription(t, vo.StatusActive, start, true).CanCreateResources(inside))

	// cancelled keeps quota through the grace period, loses it after
	cancelled := reconstructedSubscription(t, vo.StatusCancelled, start, false)
	assert.True(t, cancelled.CanCreateResources(inside))
	assert.False(t, cancelled.CanCreateResources(after))

	assert.False(t, reconstructedSubscription(t, vo.StatusSuspended, start, true).CanCreateResources(inside))
	assert.False(t, reconstructedSubscription(t, vo.StatusExpired, start, true).CanCreateResources(inside))
}
