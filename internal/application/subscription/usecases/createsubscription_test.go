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

func newDefaultPlan(t *testing.T, planRepo *testutil.PlanRepo) *subscription.Plan {
	t.Helper()
	plan, err := subscription.NewPlan("Free", "free", "", 0, 0,
		vo.NewBoundedLimit(5), vo.NewBoundedLimit(3))
	require.NoError(t, err)
	plan.MarkDefault()
	require.NoError(t, planRepo.Create(context.Background(), plan))
	return plan
}

func TestCreateSubscription_BootstrapsOnDefaultPlan(t *testing.T) {
	subRepo := testutil.NewSubscriptionRepo()
	planRepo := testutil.NewPlanRepo()
	usageRepo := testutil.NewUsageRepo()
	publisher := testutil.NewCapturePublisher()
	plan := newDefaultPlan(t, planRepo)

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	uc := NewCreateSubscriptionUseCase(subRepo, planRepo, usageRepo, testutil.TxManager{}, publisher, logger.NewNop()).
		WithNow(func() time.Time { return now })

	sub, err := uc.Execute(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, plan.ID(), sub.PlanID())
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.True(t, sub.PeriodStart().Equal(now))

	counter, err := usageRepo.GetBySubscriptionID(context.Background(), sub.ID())
	require.NoError(t, err)
	require.NotNil(t, counter)
	assert.Equal(t, uint(0), counter.OrdersCreated())

	require.True(t, publisher.Wait(1, time.Second))
}

func TestCreateSubscription_NoDefaultPlan(t *testing.T) {
	uc := NewCreateSubscriptionUseCase(
		testutil.NewSubscriptionRepo(), testutil.NewPlanRepo(), testutil.NewUsageRepo(),
		testutil.TxManager{}, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), 42)
	assert.ErrorIs(t, err, subscription.ErrNoDefaultPlan)
}

func TestCreateSubscription_DuplicateUserRejected(t *testing.T) {
	subRepo := testutil.NewSubscriptionRepo()
	planRepo := testutil.NewPlanRepo()
	newDefaultPlan(t, planRepo)

	uc := NewCreateSubscriptionUseCase(subRepo, planRepo, testutil.NewUsageRepo(),
		testutil.TxManager{}, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), 42)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), 42)
	assert.ErrorIs(t, err, subscription.ErrActiveSubscriptionExists)
}
