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

// AcceptProposalUseCase settles an order on one proposal. The whole decision
// runs in a single transaction serialized on the order row lock: the target
// proposal moves to ACCEPTED, every PENDING sibling to DECLINED and the order
// to ACCEPTED, or nothing changes. Two concurrent accepts on the same order
// queue on the lock; the loser finds the order already decided.
type AcceptProposalUseCase struct {
	orderRepo    marketplace.OrderRepository
	proposalRepo marketplace.ProposalRepository
	txMgr        db.TxManager
	publisher    events.Publisher
	logger       logger.Interface
	now          func() time.Time
}

func NewAcceptProposalUseCase(
	orderRepo marketplace.OrderRepository,
	proposalRepo marketplace.ProposalRepository,
	txMgr db.TxManager,
	publisher events.Publisher,
	log logger.Interface,
) *AcceptProposalUseCase {
	return &AcceptProposalUseCase{
		orderRepo:    orderRepo,
		proposalRepo: proposalRepo,
		txMgr:        txMgr,
		publisher:    publisher,
		logger:       log,
		now:          biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *AcceptProposalUseCase) WithNow(now func() time.Time) *AcceptProposalUseCase {
	uc.now = now
	return uc
}

// Execute accepts the proposal on behalf of the order's client. clientID must
// match the order's owner.
func (uc *AcceptProposalUseCase) Execute(ctx context.Context, clientID, proposalID uint) error {
	now := uc.now()

	var (
		order    *marketplace.Order
		proposal *marketplace.Proposal
		declined []uint
	)
	err := db.WithRetry(ctx, func(ctx context.Context) error {
		return uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			proposal, err = uc.proposalRepo.GetByID(txCtx, proposalID)
			if err != nil {
				return fmt.Errorf("failed to load proposal %d: %w", proposalID, err)
			}
			if proposal == nil {
				return marketplace.ErrProposalNotFound
			}

			// Lock the order row first; everything below is serialized on it.
			order, err = uc.orderRepo.GetByIDForUpdate(txCtx, proposal.OrderID())
			if err != nil {
				return fmt.Errorf("failed to lock order %d: %w", proposal.OrderID(), err)
			}
			if order == nil {
				return marketplace.ErrOrderNotFound
			}
			if order.ClientID() != clientID {
				return marketplace.ErrNotOrderClient
			}

			// Once a sibling is accepted every proposal has left PENDING;
			// report the order's state, not the proposal's.
			if !order.IsPending() {
				return marketplace.ErrOrderAlreadyDecided
			}

			// Lazily expire a past-due proposal before judging acceptability,
			// so the stored status matches the answer the caller gets.
			if proposal.ExpireIfDue(now) {
				if err := uc.proposalRepo.Update(txCtx, proposal); err != nil {
					return fmt.Errorf("failed to persist proposal expiry: %w", err)
				}
			}
			if !proposal.CanBeAccepted(now) {
				return marketplace.ErrProposalNotAcceptable
			}

			if err := order.Accept(now); err != nil {
				return err
			}
			if err := proposal.Accept(now); err != nil {
				return err
			}

			declined, err = uc.proposalRepo.DeclinePendingByOrderID(txCtx, order.ID(), proposal.ID(), now)
			if err != nil {
				return fmt.Errorf("failed to decline sibling proposals: %w", err)
			}
			if err := uc.proposalRepo.Update(txCtx, proposal); err != nil {
				return fmt.Errorf("failed to update proposal: %w", err)
			}
			if err := uc.orderRepo.Update(txCtx, order); err != nil {
				return fmt.Errorf("failed to update order: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		uc.logger.Warnw("proposal accept rejected",
			"error", err,
			"proposal_id", proposalID,
			"client_id", clientID,
		)
		return err
	}

	uc.logger.Infow("proposal accepted",
		"order_id", order.ID(),
		"proposal_id", proposal.ID(),
		"provider_id", proposal.ProviderID(),
		"declined_count", len(declined),
	)
	publishAfterCommit(ctx, uc.logger, uc.publisher,
		marketplace.NewProposalAcceptedEvent(order.ID(), proposal.ID(), proposal.ProviderID(), order.ClientID()))
	return nil
}
