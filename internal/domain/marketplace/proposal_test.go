package marketplace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/servly-inc/servly/internal/domain/marketplace/valueobjects"
)

func reconstructedProposal(t *testing.T, status vo.ProposalStatus, expiresAt time.Time) *Proposal {
	t.Helper()
	now := time.Now().UTC()
	p, err := ReconstructProposal(ProposalReconstructParams{
		ID:            5,
		OrderID:       7,
		ProviderID:    2,
		Message:       "I can deliver this",
		Price:         80000,
		EstimatedDays: 10,
		ExpiresAt:     expiresAt,
		Status:        status,
		Version:       2,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	require.NoError(t, err)
	return p
}

func TestNewProposal_ValidInput(t *testing.T) {
	now := time.Now().UTC()

	p, err := NewProposal(7, 2, "Portfolio attached", 80000, 10, now.Add(72*time.Hour), now)
	require.NoError(t, err)

	assert.Equal(t, uint(7), p.OrderID())
	assert.Equal(t, uint(2), p.ProviderID())
	assert.Equal(t, vo.ProposalStatusPending, p.Status())
	assert.Equal(t, 1, p.Version())
}

func TestNewProposal_InvalidInput(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(time.Hour)

	tests := []struct {
		name       string
		orderID    uint
		providerID uint
		price      int64
		days       uint
		expiresAt  time.Time
	}{
		{"zero order", 0, 2, 100, 5, future},
		{"zero provider", 7, 0, 100, 5, future},
		{"zero price", 7, 2, 0, 5, future},
		{"negative price", 7, 2, -100, 5, future},
		{"zero estimated days", 7, 2, 100, 0, future},
		{"expiry in the past", 7, 2, 100, 5, now.Add(-time.Minute)},
		{"expiry equals now", 7, 2, 100, 5, now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProposal(tt.orderID, tt.providerID, "", tt.price, tt.days, tt.expiresAt, now)
			assert.Error(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestProposal_CanBeAccepted(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.True(t, reconstructedProposal(t, vo.ProposalStatusPending, future).CanBeAccepted(now))
	assert.False(t, reconstructedProposal(t, vo.ProposalStatusPending, past).CanBeAccepted(now))
	assert.False(t, reconstructedProposal(t, vo.ProposalStatusAccepted, future).CanBeAccepted(now))
	assert.False(t, reconstructedProposal(t, vo.ProposalStatusDeclined, future).CanBeAccepted(now))
	assert.False(t, reconstructedProposal(t, vo.ProposalStatusExpired, future).CanBeAccepted(now))
}

func TestProposal_Accept(t *testing.T) {
	now := time.Now().UTC()

	p := reconstructedProposal(t, vo.ProposalStatusPending, now.Add(time.Hour))
	require.NoError(t, p.Accept(now))
	assert.Equal(t, vo.ProposalStatusAccepted, p.Status())
	assert.Equal(t, 3, p.Version())

	// accepting a stale proposal fails even though the row still says PENDING
	stale := reconstructedProposal(t, vo.ProposalStatusPending, now.Add(-time.Minute))
	assert.ErrorIs(t, stale.Accept(now), ErrProposalNotAcceptable)

	declined := reconstructedProposal(t, vo.ProposalStatusDeclined, now.Add(time.Hour))
	assert.ErrorIs(t, declined.Accept(now), ErrProposalNotAcceptable)
}

func TestProposal_Decline(t *testing.T) {
	now := time.Now().UTC()

	p := reconstructedProposal(t, vo.ProposalStatusPending, now.Add(time.Hour))
	require.NoError(t, p.Decline(now))
	assert.Equal(t, vo.ProposalStatusDeclined, p.Status())

	for _, status := range []vo.ProposalStatus{
		vo.ProposalStatusAccepted,
		vo.ProposalStatusDeclined,
		vo.ProposalStatusExpired,
	} {
		t.Run(string(status), func(t *testing.T) {
			p := reconstructedProposal(t, status, now.Add(time.Hour))
			assert.ErrorIs(t, p.Decline(now), ErrInvalidStatusTransition)
		})
	}
}

func TestProposal_Expire(t *testing.T) {
	now := time.Now().UTC()

	p := reconstructedProposal(t, vo.ProposalStatusPending, now.Add(-time.Minute))
	changed, err := p.Expire(now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, vo.ProposalStatusExpired, p.Status())

	// second sweep is a no-op
	changed, err = p.Expire(now)
	require.NoError(t, err)
	assert.False(t, changed)

	// non-pending proposals are skipped silently
	accepted := reconstructedProposal(t, vo.ProposalStatusAccepted, now.Add(-time.Minute))
	changed, err = accepted.Expire(now)
	require.NoError(t, err)
	assert.False(t, changed)

	// still-live proposals must not expire
	live := reconstructedProposal(t, vo.ProposalStatusPending, now.Add(time.Hour))
	changed, err = live.Expire(now)
	assert.Error(t, err)
	assert.False(t, changed)
}

func TestProposal_ExpireIfDue(t *testing.T) {
	now := time.Now().UTC()

	due := reconstructedProposal(t, vo.ProposalStatusPending, now.Add(-time.Minute))
	assert.True(t, due.ExpireIfDue(now))
	assert.Equal(t, vo.ProposalStatusExpired, due.Status())
	assert.False(t, due.ExpireIfDue(now))

	// a live proposal is an expected no-op, not an error condition
	live := reconstructedProposal(t, vo.ProposalStatusPending, now.Add(time.Hour))
	assert.False(t, live.ExpireIfDue(now))
	assert.Equal(t, vo.ProposalStatusPending, live.Status())

	accepted := reconstructedProposal(t, vo.ProposalStatusAccepted, now.Add(-time.Minute))
	assert.False(t, accepted.ExpireIfDue(now))
	assert.Equal(t, vo.ProposalStatusAccepted, accepted.Status())
}

func TestProposal_CanSoftDelete(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(time.Hour)

	assert.True(t, reconstructedProposal(t, vo.ProposalStatusPending, future).CanSoftDelete())
	assert.False(t, reconstructedProposal(t, vo.ProposalStatusAccepted, future).CanSoftDelete())
	assert.False(t, reconstructedProposal(t, vo.ProposalStatusDeclined, future).CanSoftDelete())
}

func TestReconstructProposal_Invalid(t *testing.T) {
	_, err := ReconstructProposal(ProposalReconstructParams{OrderID: 7, Status: vo.ProposalStatusPending})
	assert.Error(t, err)

	_, err = ReconstructProposal(ProposalReconstructParams{ID: 1, Status: vo.ProposalStatusPending})
	assert.Error(t, err)

	_, err = ReconstructProposal(ProposalReconstructParams{ID: 1, OrderID: 7, Status: vo.ProposalStatus("BOGUS")})
	assert.Error(t, err)
}
