package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/servly-inc/servly/internal/domain/marketplace"
	"github.com/servly-inc/servly/internal/shared/biztime"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/logger"
)

const expiryBatchSize = 200

// ExpireProposalsUseCase is the scheduler entry that sweeps past-due PENDING
// proposals to EXPIRED. Lazy expiry at accept time makes the sweep a cleanup,
// not a correctness requirement, so each proposal is settled in its own
// transaction and one failure does not abort the batch.
type ExpireProposalsUseCase struct {
	proposalRepo marketplace.ProposalRepository
	txMgr        db.TxManager
	logger       logger.Interface
	now          func() time.Time
}

func NewExpireProposalsUseCase(proposalRepo marketplace.ProposalRepository, txMgr db.TxManager, log logger.Interface) *ExpireProposalsUseCase {
	return &ExpireProposalsUseCase{
		proposalRepo: proposalRepo,
		txMgr:        txMgr,
		logger:       log,
		now:          biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *ExpireProposalsUseCase) WithNow(now func() time.Time) *ExpireProposalsUseCase {
	uc.now = now
	return uc
}

// Execute returns the number of proposals expired in this sweep.
func (uc *ExpireProposalsUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.now()

	due, err := uc.proposalRepo.ListExpiryDue(ctx, now, expiryBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list expiry-due proposals: %w", err)
	}

	expired := 0
	for _, proposal := range due {
		p := proposal
		var changed bool
		err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			changed, err = p.Expire(now)
			if err != nil {
				return err
			}
			if !changed {
				return nil
			}
			return uc.proposalRepo.Update(txCtx, p)
		})
		if err != nil {
			uc.logger.Warnw("failed to expire proposal", "error", err, "proposal_id", p.ID())
			continue
		}
		if changed {
			expired++
		}
	}

	if expired > 0 {
		uc.logger.Infow("expired proposals", "count", expired, "scanned", len(due))
	}
	return expired, nil
}
