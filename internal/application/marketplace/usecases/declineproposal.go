package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/servly-inc/servly/internal/domain/marketplace"
	"github.com/servly-inc/servly/internal/domain/shared/events"
	"github.com/servly-inc/servly/internal/shared/biztime"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// DeclineProposalUseCase lets the order's client turn down a single PENDING
// proposal without deciding the order.
type DeclineProposalUseCase struct {
	orderRepo    marketplace.OrderRepository
	proposalRepo marketplace.ProposalRepository
	txMgr        db.TxManager
	publisher    events.Publisher
	logger       logger.Interface
	now          func() time.Time
}

func NewDeclineProposalUseCase(
	orderRepo marketplace.OrderRepository,
	proposalRepo marketplace.ProposalRepository,
	txMgr db.TxManager,
	publisher events.Publisher,
	log logger.Interface,
) *DeclineProposalUseCase {
	return &DeclineProposalUseCase{
		orderRepo:    orderRepo,
		proposalRepo: proposalRepo,
		txMgr:        txMgr,
		publisher:    publisher,
		logger:       log,
		now:          biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *DeclineProposalUseCase) WithNow(now func() time.Time) *DeclineProposalUseCase {
	uc.now = now
	return uc
}

func (uc *DeclineProposalUseCase) Execute(ctx context.Context, clientID, proposalID uint) error {
	now := uc.now()

	var proposal *marketplace.Proposal
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		proposal, err = uc.proposalRepo.GetByID(txCtx, proposalID)
		if err != nil {
			return fmt.Errorf("failed to load proposal %d: %w", proposalID, err)
		}
		if proposal == nil {
			return marketplace.ErrProposalNotFound
		}

		order, err := uc.orderRepo.GetByID(txCtx, proposal.OrderID())
		if err != nil {
			return fmt.Errorf("failed to load order %d: %w", proposal.OrderID(), err)
		}
		if order == nil {
			return marketplace.ErrOrderNotFound
		}
		if order.ClientID() != clientID {
			return marketplace.ErrNotOrderClient
		}

		if err := proposal.Decline(now); err != nil {
			return err
		}
		if err := uc.proposalRepo.Update(txCtx, proposal); err != nil {
			return fmt.Errorf("failed to update proposal: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("proposal decline rejected",
			"error", err,
			"proposal_id", proposalID,
			"client_id", clientID,
		)
		return err
	}

	uc.logger.Infow("proposal declined", "proposal_id", proposalID, "order_id", proposal.OrderID())
	publishAfterCommit(ctx, uc.logger, uc.publisher,
		marketplace.NewProposalDeclinedEvent(proposalID, proposal.OrderID()))
	return nil
}
