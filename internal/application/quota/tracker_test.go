package quota

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servly-inc/servly/internal/application/testutil"
	"github.com/servly-inc/servly/internal/domain/marketplace"
	"github.com/servly-inc/servly/internal/domain/subscription"
	vo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"
	"github.com/servly-inc/servly/internal/shared/logger"
)

type trackerFixture struct {
	tracker      *Tracker
	subRepo      *testutil.SubscriptionRepo
	planRepo     *testutil.PlanRepo
	usageRepo    *testutil.UsageRepo
	proposalRepo *testutil.ProposalRepo
	sub          *subscription.Subscription
	clock        *time.Time
}

func newTrackerFixture(t *testing.T, maxOrders, maxProposals uint, start time.Time) *trackerFixture {
	t.Helper()

	subRepo := testutil.NewSubscriptionRepo()
	planRepo := testutil.NewPlanRepo()
	usageRepo := testutil.NewUsageRepo()
	proposalRepo := testutil.NewProposalRepo()

	plan, err := subscription.NewPlan("Basic", "basic", "", 0, 0,
		vo.LimitFromStored(maxOrders), vo.LimitFromStored(maxProposals))
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(context.Background(), plan))

	sub, err := subscription.NewSubscription(7, plan.ID(), start, true)
	require.NoError(t, err)
	require.NoError(t, subRepo.Create(context.Background(), sub))

	clock := start
	tracker := NewTracker(subRepo, planRepo, usageRepo, proposalRepo, logger.NewNop()).
		WithNow(func() time.Time { return clock })

	return &trackerFixture{
		tracker:      tracker,
		subRepo:      subRepo,
		planRepo:     planRepo,
		usageRepo:    usageRepo,
		proposalRepo: proposalRepo,
		sub:          sub,
		clock:        &clock,
	}
}

func TestTracker_CheckAndReserve_DeniesAtOrderLimit(t *testing.T) {
	start := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	f := newTrackerFixture(t, 5, 0, start)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assert.NoError(t, f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceOrder, 0))
	}

	err := f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceOrder, 0)
	require.Error(t, err)
	assert.True(t, IsExceeded(err))

	var exceeded *ExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, ResourceOrder, exceeded.Kind)
	assert.Equal(t, uint(5), exceeded.Current)
	assert.Equal(t, uint(5), exceeded.Limit)
}

func TestTracker_CheckAndReserve_UnlimitedOrders(t *testing.T) {
	start := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	f := newTrackerFixture(t, 0, 0, start)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		assert.NoError(t, f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceOrder, 0))
	}
}

func TestTracker_CheckAndReserve_RolloverResetsCounterOnce(t *testing.T) {
	start := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	f := newTrackerFixture(t, 5, 0, start)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceOrder, 0))
	}
	counter, err := f.usageRepo.GetBySubscriptionID(ctx, f.sub.ID())
	require.NoError(t, err)
	assert.Equal(t, uint(3), counter.OrdersCreated())

	// Cross the period boundary: the next reservation rolls the window
	// forward and the usage restarts at one, not four.
	*f.clock = start.AddDate(0, 1, 10)
	require.NoError(t, f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceOrder, 0))

	counter, err = f.usageRepo.GetBySubscriptionID(ctx, f.sub.ID())
	require.NoError(t, err)
	assert.Equal(t, uint(1), counter.OrdersCreated())
	assert.True(t, counter.PeriodStart().Equal(f.sub.PeriodStart()))
	assert.False(t, f.sub.RolloverDue(*f.clock))

	// A second reservation in the new period must not reset again.
	require.NoError(t, f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceOrder, 0))
	counter, err = f.usageRepo.GetBySubscriptionID(ctx, f.sub.ID())
	require.NoError(t, err)
	assert.Equal(t, uint(2), counter.OrdersCreated())
}

func TestTracker_CheckAndReserve_SuspendedBlocks(t *testing.T) {
	start := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	f := newTrackerFixture(t, 5, 0, start)
	ctx := context.Background()

	require.NoError(t, f.sub.Suspend(start))

	err := f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceOrder, 0)
	assert.ErrorIs(t, err, subscription.ErrSubscriptionSuspended)
}

func TestTracker_CheckAndReserve_CancelledGraceUntilPeriodEnd(t *testing.T) {
	start := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	f := newTrackerFixture(t, 5, 0, start)
	ctx := context.Background()

	require.NoError(t, f.sub.Cancel(start))

	// Cancelled keeps its quota until the period ends.
	assert.NoError(t, f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceOrder, 0))

	*f.clock = f.sub.PeriodEnd().Add(time.Hour)
	err := f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceOrder, 0)
	assert.ErrorIs(t, err, subscription.ErrSubscriptionExpired)
}

func TestTracker_CheckAndReserve_ProposalCapPerOrder(t *testing.T) {
	start := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	f := newTrackerFixture(t, 0, 2, start)
	ctx := context.Background()

	const orderID = 9
	for i := 0; i < 2; i++ {
		p, err := marketplace.NewProposal(orderID, uint(100+i), "bid", 5000, 3, start.Add(72*time.Hour), start)
		require.NoError(t, err)
		require.NoError(t, f.proposalRepo.Create(ctx, p))
	}

	err := f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceProposal, orderID)
	require.Error(t, err)

	var exceeded *ExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, ResourceProposal, exceeded.Kind)
	assert.Equal(t, uint(2), exceeded.Current)
	assert.Equal(t, uint(2), exceeded.Limit)

	// A different order is unaffected by this order's count.
	assert.NoError(t, f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceProposal, orderID+1))
}

func TestTracker_SubscriptionIDForUser_MissingRecordFails(t *testing.T) {
	start := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	f := newTrackerFixture(t, 5, 0, start)

	_, err := f.tracker.SubscriptionIDForUser(context.Background(), 9999)
	assert.ErrorIs(t, err, subscription.ErrSubscriptionMissing)
}

func TestTracker_GetUsage_ReportsZeroWhenRolloverDue(t *testing.T) {
	start := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	f := newTrackerFixture(t, 5, 0, start)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, f.tracker.CheckAndReserve(ctx, f.sub.ID(), ResourceOrder, 0))
	}

	usage, err := f.tracker.GetUsage(ctx, f.sub.ID())
	require.NoError(t, err)
	assert.Equal(t, uint(2), usage.OrdersUsed)
	assert.Equal(t, uint(5), usage.OrdersLimit)
	assert.False(t, usage.OrdersUnlimited)

	// Reading past the boundary reports a fresh period without mutating it.
	*f.clock = start.AddDate(0, 2, 0)
	usage, err = f.tracker.GetUsage(ctx, f.sub.ID())
	require.NoError(t, err)
	assert.Equal(t, uint(0), usage.OrdersUsed)
}
