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

func TestExpireProposals_SweepsOnlyPastDuePending(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	proposalRepo := testutil.NewProposalRepo()
	ctx := context.Background()

	stale, err := marketplace.NewProposal(1, testProviderID, "stale", 5000, 3, now.Add(time.Hour), now)
	require.NoError(t, err)
	require.NoError(t, proposalRepo.Create(ctx, stale))

	fresh, err := marketplace.NewProposal(1, testProviderID+1, "fresh", 5000, 3, now.Add(96*time.Hour), now)
	require.NoError(t, err)
	require.NoError(t, proposalRepo.Create(ctx, fresh))

	declined, err := marketplace.NewProposal(1, testProviderID+2, "declined", 5000, 3, now.Add(time.Hour), now)
	require.NoError(t, err)
	require.NoError(t, declined.Decline(now))
	require.NoError(t, proposalRepo.Create(ctx, declined))

	later := now.Add(2 * time.Hour)
	uc := NewExpireProposalsUseCase(proposalRepo, testutil.TxManager{}, logger.NewNop()).
		WithNow(func() time.Time { return later })

	count, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, vo.ProposalStatusExpired, stale.Status())
	assert.Equal(t, vo.ProposalStatusPending, fresh.Status())
	assert.Equal(t, vo.ProposalStatusDeclined, declined.Status())

	// A second sweep finds nothing left to expire.
	count, err = uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
