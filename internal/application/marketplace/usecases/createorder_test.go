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
	sharederrors "github.com/servly-inc/servly/internal/shared/errors"
	"github.com/servly-inc/servly/internal/shared/logger"
)

type createOrderFixture struct {
	uc        *CreateOrderUseCase
	orderRepo *testutil.OrderRepo
	usageRepo *testutil.UsageRepo
	subRepo   *testutil.SubscriptionRepo
	publisher *testutil.CapturePublisher
	sub       *subscription.Subscription
	now       time.Time
}

func newCreateOrderFixture(t *testing.T, maxOrders uint) *createOrderFixture {
	t.Helper()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	orderRepo := testutil.NewOrderRepo()
	proposalRepo := testutil.NewProposalRepo()
	subRepo := testutil.NewSubscriptionRepo()
	planRepo := testutil.NewPlanRepo()
	usageRepo := testutil.NewUsageRepo()
	publisher := testutil.NewCapturePublisher()

	plan, err := subscription.NewPlan("Basic", "basic", "", 0, 0,
		svo.LimitFromStored(maxOrders), svo.UnboundedLimit())
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(context.Background(), plan))

	sub, err := subscription.NewSubscription(testClientID, plan.ID(), now, true)
	require.NoError(t, err)
	require.NoError(t, subRepo.Create(context.Background(), sub))

	clock := func() time.Time { return now }
	tracker := quota.NewTracker(subRepo, planRepo, usageRepo, proposalRepo, logger.NewNop()).WithNow(clock)
	uc := NewCreateOrderUseCase(orderRepo, tracker, testutil.TxManager{}, publisher, logger.NewNop()).WithNow(clock)

	return &createOrderFixture{
		uc:        uc,
		orderRepo: orderRepo,
		usageRepo: usageRepo,
		subRepo:   subRepo,
		publisher: publisher,
		sub:       sub,
		now:       now,
	}
}

func (f *createOrderFixture) command() CreateOrderCommand {
	return CreateOrderCommand{
		ClientID:    testClientID,
		ServiceID:   testServiceID,
		Title:       "Paint the fence",
		Description: "two coats, white",
		BudgetMin:   5000,
		BudgetMax:   12000,
		Deadline:    f.now.AddDate(0, 0, 21),
	}
}

func TestCreateOrder_Success(t *testing.T) {
	f := newCreateOrderFixture(t, 5)

	order, err := f.uc.Execute(context.Background(), f.command())
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotZero(t, order.ID())

	counter, err := f.usageRepo.GetBySubscriptionID(context.Background(), f.sub.ID())
	require.NoError(t, err)
	assert.Equal(t, uint(1), counter.OrdersCreated())

	require.True(t, f.publisher.Wait(1, time.Second))
	ev, ok := f.publisher.Events()[0].(*marketplace.OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, order.ID(), ev.OrderID)
}

func TestCreateOrder_PastDeadlineFailsBeforeQuota(t *testing.T) {
	f := newCreateOrderFixture(t, 5)

	cmd := f.command()
	cmd.Deadline = f.now.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), cmd)
	require.Error(t, err)

	var appErr *sharederrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, sharederrors.ErrorTypeValidation, appErr.Type)

	// Validation failed before anything was reserved.
	counter, err := f.usageRepo.GetBySubscriptionID(context.Background(), f.sub.ID())
	require.NoError(t, err)
	assert.Nil(t, counter)
}

func TestCreateOrder_QuotaDenied(t *testing.T) {
	f := newCreateOrderFixture(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.uc.Execute(ctx, f.command())
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(ctx, f.command())
	require.Error(t, err)
	assert.True(t, quota.IsExceeded(err))

	orders, err := f.orderRepo.ListByClientID(ctx, testClientID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestCreateOrder_InvertedBudgetRejected(t *testing.T) {
	f := newCreateOrderFixture(t, 5)

	cmd := f.command()
	cmd.BudgetMin = 20000
	cmd.BudgetMax = 10000

	_, err := f.uc.Execute(context.Background(), cmd)
	require.Error(t, err)

	var appErr *sharederrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, sharederrors.ErrorTypeValidation, appErr.Type)
}

func TestCreateOrder_MissingSubscriptionIsIntegrityFailure(t *testing.T) {
	f := newCreateOrderFixture(t, 5)

	cmd := f.command()
	cmd.ClientID = 999

	_, err := f.uc.Execute(context.Background(), cmd)
	assert.ErrorIs(t, err, subscription.ErrSubscriptionMissing)
}
