package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servly-inc/servly/internal/application/testutil"
	"github.com/servly-inc/servly/internal/domain/marketplace"
	vo "github.com/servly-inc/servly/internal/domain/marketplace/valueobjects"
	"github.com/servly-inc/servly/internal/shared/logger"
)

const (
	testClientID   = 1
	testProviderID = 50
	testServiceID  = 3
)

type acceptFixture struct {
	uc           *AcceptProposalUseCase
	orderRepo    *testutil.OrderRepo
	proposalRepo *testutil.ProposalRepo
	publisher    *testutil.CapturePublisher
	now          time.Time
	order        *marketplace.Order
}

func newAcceptFixture(t *testing.T) *acceptFixture {
	t.Helper()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	orderRepo := testutil.NewOrderRepo()
	proposalRepo := testutil.NewProposalRepo()
	publisher := testutil.NewCapturePublisher()

	order, err := marketplace.NewOrder(testClientID, testServiceID,
		"Fix kitchen sink", "leaking pipe", 10000, 20000, now.AddDate(0, 0, 14), now)
	require.NoError(t, err)
	require.NoError(t, orderRepo.Create(context.Background(), order))

	f := &acceptFixture{
		orderRepo:    orderRepo,
		proposalRepo: proposalRepo,
		publisher:    publisher,
		now:          now,
		order:        order,
	}
	f.uc = NewAcceptProposalUseCase(orderRepo, proposalRepo, testutil.TxManager{}, publisher, logger.NewNop()).
		WithNow(func() time.Time { return f.now })
	return f
}

func (f *acceptFixture) addProposal(t *testing.T, providerID uint, expiresAt time.Time) *marketplace.Proposal {
	t.Helper()
	p, err := marketplace.NewProposal(f.order.ID(), providerID, "I can do it", 15000, 5, expiresAt, f.now)
	require.NoError(t, err)
	require.NoError(t, f.proposalRepo.Create(context.Background(), p))
	return p
}

func TestAcceptProposal_DeclinesSiblingsAndDecidesOrder(t *testing.T) {
	f := newAcceptFixture(t)
	expiry := f.now.Add(72 * time.Hour)
	p1 := f.addProposal(t, testProviderID, expiry)
	p2 := f.addProposal(t, testProviderID+1, expiry)
	p3 := f.addProposal(t, testProviderID+2, expiry)

	require.NoError(t, f.uc.Execute(context.Background(), testClientID, p2.ID()))

	assert.Equal(t, vo.OrderStatusAccepted, f.order.Status())
	assert.Equal(t, vo.ProposalStatusAccepted, p2.Status())
	assert.Equal(t, vo.ProposalStatusDeclined, p1.Status())
	assert.Equal(t, vo.ProposalStatusDeclined, p3.Status())

	require.True(t, f.publisher.Wait(1, time.Second))
	evs := f.publisher.Events()
	require.Len(t, evs, 1)
	accepted, ok := evs[0].(*marketplace.ProposalAcceptedEvent)
	require.True(t, ok)
	assert.Equal(t, f.order.ID(), accepted.OrderID)
	assert.Equal(t, p2.ID(), accepted.ProposalID)
}

func TestAcceptProposal_SecondAcceptFindsOrderDecided(t *testing.T) {
	f := newAcceptFixture(t)
	expiry := f.now.Add(72 * time.Hour)
	p1 := f.addProposal(t, testProviderID, expiry)
	p2 := f.addProposal(t, testProviderID+1, expiry)

	require.NoError(t, f.uc.Execute(context.Background(), testClientID, p1.ID()))

	// Once the order is decided, every further accept reports the order's
	// state, whether it targets the declined loser or the winner itself.
	err := f.uc.Execute(context.Background(), testClientID, p2.ID())
	assert.ErrorIs(t, err, marketplace.ErrOrderAlreadyDecided)

	err = f.uc.Execute(context.Background(), testClientID, p1.ID())
	assert.ErrorIs(t, err, marketplace.ErrOrderAlreadyDecided)
}

func TestAcceptProposal_ExpiredProposalRejectedAndMarked(t *testing.T) {
	f := newAcceptFixture(t)
	stale := f.addProposal(t, testProviderID, f.now.Add(time.Hour))
	f.now = f.now.Add(2 * time.Hour)

	err := f.uc.Execute(context.Background(), testClientID, stale.ID())
	assert.ErrorIs(t, err, marketplace.ErrProposalNotAcceptable)

	// Lazy expiry stamps the stored status on the way out.
	assert.Equal(t, vo.ProposalStatusExpired, stale.Status())
	assert.Equal(t, vo.OrderStatusPending, f.order.Status())
}

func TestAcceptProposal_WrongClientRejected(t *testing.T) {
	f := newAcceptFixture(t)
	p := f.addProposal(t, testProviderID, f.now.Add(72*time.Hour))

	err := f.uc.Execute(context.Background(), testClientID+1, p.ID())
	assert.ErrorIs(t, err, marketplace.ErrNotOrderClient)
	assert.Equal(t, vo.OrderStatusPending, f.order.Status())
	assert.Equal(t, vo.ProposalStatusPending, p.Status())
}

func TestAcceptProposal_UnknownProposal(t *testing.T) {
	f := newAcceptFixture(t)

	err := f.uc.Execute(context.Background(), testClientID, 404)
	assert.ErrorIs(t, err, marketplace.ErrProposalNotFound)
}
