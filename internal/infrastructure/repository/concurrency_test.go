package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/servly-inc/servly/internal/application/marketplace/usecases"
	"github.com/servly-inc/servly/internal/application/quota"
	"github.com/servly-inc/servly/internal/application/testutil"
	"github.com/servly-inc/servly/internal/domain/marketplace"
	"github.com/servly-inc/servly/internal/domain/subscription"
	svo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/models"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// newConcurrencyDB opens an in-memory database safe for parallel goroutines.
// Every in-memory sqlite connection is its own database, so the pool is
// pinned to a single connection; concurrent transactions queue on it.
func newConcurrencyDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.UsageCounterModel{},
		&models.OrderModel{},
		&models.ProposalModel{},
	))
	return gdb
}

func TestAcceptProposal_ConcurrentAcceptsSingleWinner(t *testing.T) {
	gdb := newConcurrencyDB(t)
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	orderRepo := NewOrderRepository(gdb)
	proposalRepo := NewProposalRepository(gdb)
	txMgr := db.NewTxManager(gdb)

	const clientID, serviceID = uint(1), uint(2)
	order, err := marketplace.NewOrder(clientID, serviceID,
		"Paint the fence", "", 5000, 9000, now.AddDate(0, 0, 7), now)
	require.NoError(t, err)
	require.NoError(t, orderRepo.Create(ctx, order))

	const attempts = 8
	proposalIDs := make([]uint, 0, attempts)
	for i := 0; i < attempts; i++ {
		p, err := marketplace.NewProposal(order.ID(), uint(10+i),
			"can start monday", 7500, 4, now.Add(72*time.Hour), now)
		require.NoError(t, err)
		require.NoError(t, proposalRepo.Create(ctx, p))
		proposalIDs = append(proposalIDs, p.ID())
	}

	uc := usecases.NewAcceptProposalUseCase(
		orderRepo, proposalRepo, txMgr, testutil.NewCapturePublisher(), logger.NewNop(),
	).WithNow(clock)

	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = uc.Execute(ctx, clientID, proposalIDs[i])
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, marketplace.ErrOrderAlreadyDecided)
		}
	}
	assert.Equal(t, 1, wins)

	var accepted, declined int64
	require.NoError(t, gdb.Model(&models.ProposalModel{}).
		Where("order_id = ? AND status = ?", order.ID(), "ACCEPTED").
		Count(&accepted).Error)
	require.NoError(t, gdb.Model(&models.ProposalModel{}).
		Where("order_id = ? AND status = ?", order.ID(), "DECLINED").
		Count(&declined).Error)
	assert.Equal(t, int64(1), accepted)
	assert.Equal(t, int64(attempts-1), declined)

	var orderModel models.OrderModel
	require.NoError(t, gdb.First(&orderModel, order.ID()).Error)
	assert.Equal(t, "ACCEPTED", orderModel.Status)
}

func TestCreateProposal_ConcurrentCreationsHoldCap(t *testing.T) {
	gdb := newConcurrencyDB(t)
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	orderRepo := NewOrderRepository(gdb)
	proposalRepo := NewProposalRepository(gdb)
	planRepo := NewPlanRepository(gdb)
	subRepo := NewSubscriptionRepository(gdb)
	usageRepo := NewUsageRepository(gdb)
	txMgr := db.NewTxManager(gdb)

	const proposalCap = 3
	plan, err := subscription.NewPlan("Pro", "pro", "", 0, 0,
		svo.UnboundedLimit(), svo.LimitFromStored(proposalCap))
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(ctx, plan))

	const clientID, serviceID = uint(1), uint(2)
	order, err := marketplace.NewOrder(clientID, serviceID,
		"Move a piano", "", 5000, 9000, now.AddDate(0, 0, 7), now)
	require.NoError(t, err)
	require.NoError(t, orderRepo.Create(ctx, order))

	// Two seeded proposals put the order one short of the cap.
	for i := 0; i < proposalCap-1; i++ {
		p, err := marketplace.NewProposal(order.ID(), uint(100+i),
			"seeded", 6000, 3, now.Add(72*time.Hour), now)
		require.NoError(t, err)
		require.NoError(t, proposalRepo.Create(ctx, p))
	}

	const attempts = 6
	providers := make([]uint, 0, attempts)
	for i := 0; i < attempts; i++ {
		providerID := uint(10 + i)
		sub, err := subscription.NewSubscription(providerID, plan.ID(), now, true)
		require.NoError(t, err)
		require.NoError(t, subRepo.Create(ctx, sub))
		providers = append(providers, providerID)
	}

	tracker := quota.NewTracker(subRepo, planRepo, usageRepo, proposalRepo, logger.NewNop()).WithNow(clock)
	uc := usecases.NewCreateProposalUseCase(
		orderRepo, proposalRepo, tracker, txMgr, testutil.NewCapturePublisher(), logger.NewNop(),
	).WithNow(clock)

	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i, providerID := range providers {
		wg.Add(1)
		go func(i int, providerID uint) {
			defer wg.Done()
			_, errs[i] = uc.Execute(ctx, usecases.CreateProposalCommand{
				OrderID:       order.ID(),
				ProviderID:    providerID,
				Message:       "available next week",
				Price:         7500,
				EstimatedDays: 4,
				ExpiresAt:     now.Add(72 * time.Hour),
			})
		}(i, providerID)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.True(t, quota.IsExceeded(err), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)

	count, err := proposalRepo.CountActiveByOrderID(ctx, order.ID())
	require.NoError(t, err)
	assert.Equal(t, uint(proposalCap), count)
}
