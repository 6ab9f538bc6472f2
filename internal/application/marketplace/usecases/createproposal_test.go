package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servly-inc/servly/internal/application/quota"
	"github.com/servly-inc/servly/internal/application/testutil"
	"github.com/servly-inc/servly/internal/domain/marketplace"
	"github.com/servly-inc/servly/internal/domain/subscription"
	svo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"
	"github.com/servly-inc/servly/internal/shared/logger"
)

type createProposalFixture struct {
	uc           *CreateProposalUseCase
	orderRepo    *testutil.OrderRepo
	proposalRepo *testutil.ProposalRepo
	order        *marketplace.Order
	now          time.Time
}

func newCreateProposalFixture(t *testing.T, maxProposals uint) *createProposalFixture {
	t.Helper()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	orderRepo := testutil.NewOrderRepo()
	proposalRepo := testutil.NewProposalRepo()
	subRepo := testutil.NewSubscriptionRepo()
	planRepo := testutil.NewPlanRepo()
	usageRepo := testutil.NewUsageRepo()

	plan, err := subscription.NewPlan("Pro", "pro", "", 0, 0,
		svo.UnboundedLimit(), svo.LimitFromStored(maxProposals))
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(context.Background(), plan))

	sub, err := subscription.NewSubscription(testProviderID, plan.ID(), now, true)
	require.NoError(t, err)
	require.NoError(t, subRepo.Create(context.Background(), sub))

	order, err := marketplace.NewOrder(testClientID, testServiceID,
		"Assemble furniture", "", 5000, 9000, now.AddDate(0, 0, 7), now)
	require.NoError(t, err)
	require.NoError(t, orderRepo.Create(context.Background(), order))

	clock := func() time.Time { return now }
	tracker := quota.NewTracker(subRepo, planRepo, usageRepo, proposalRepo, logger.NewNop()).WithNow(clock)
	uc := NewCreateProposalUseCase(orderRepo, proposalRepo, tracker, testutil.TxManager{}, testutil.NewCapturePublisher(), logger.NewNop()).WithNow(clock)

	return &createProposalFixture{
		uc:           uc,
		orderRepo:    orderRepo,
		proposalRepo: proposalRepo,
		order:        order,
		now:          now,
	}
}

func (f *createProposalFixture) command() CreateProposalCommand {
	return CreateProposalCommand{
		OrderID:       f.order.ID(),
		ProviderID:    testProviderID,
		Message:       "available next week",
		Price:         7500,
		EstimatedDays: 4,
		ExpiresAt:     f.now.Add(72 * time.Hour),
	}
}

func TestCreateProposal_Success(t *testing.T) {
	f := newCreateProposalFixture(t, 3)

	proposal, err := f.uc.Execute(context.Background(), f.command())
	require.NoError(t, err)
	require.NotNil(t, proposal)
	assert.NotZero(t, proposal.ID())
}

func TestCreateProposal_PerOrderCapDenied(t *testing.T) {
	f := newCreateProposalFixture(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.uc.Execute(ctx, f.command())
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(ctx, f.command())
	require.Error(t, err)
	assert.True(t, quota.IsExceeded(err))

	count, err := f.proposalRepo.CountActiveByOrderID(ctx, f.order.ID())
	require.NoError(t, err)
	assert.Equal(t, uint(2), count)
}

func TestCreateProposal_LocksOrderForCapCheck(t *testing.T) {
	f := newCreateProposalFixture(t, 3)

	_, err := f.uc.Execute(context.Background(), f.command())
	require.NoError(t, err)

	// The cap is per order, so the count-then-insert must run under the
	// order's row lock rather than a plain read.
	assert.Equal(t, 1, f.orderRepo.LockCalls)
}

func TestCreateProposal_DecidedOrderRejected(t *testing.T) {
	f := newCreateProposalFixture(t, 0)

	require.NoError(t, f.order.Accept(f.now))

	_, err := f.uc.Execute(context.Background(), f.command())
	assert.ErrorIs(t, err, marketplace.ErrOrderAlreadyDecided)
}

func TestCreateProposal_UnknownOrder(t *testing.T) {
	f := newCreateProposalFixture(t, 0)

	cmd := f.command()
	cmd.OrderID = 404

	_, err := f.uc.Execute(context.Background(), cmd)
	assert.ErrorIs(t, err, marketplace.ErrOrderNotFound)
}
