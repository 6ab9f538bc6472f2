package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/servly-inc/servly/internal/application/quota"
	"github.com/servly-inc/servly/internal/domain/marketplace"
	"github.com/servly-inc/servly/internal/domain/shared/events"
	"github.com/servly-inc/servly/internal/shared/biztime"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/errors"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// CreateProposalCommand carries a provider's bid on an order. Price is in
// cents.
type CreateProposalCommand struct {
	OrderID       uint
	ProviderID    uint
	Message       string
	Price         int64
	EstimatedDays uint
	ExpiresAt     time.Time
}

// CreateProposalUseCase submits a proposal against a PENDING order, gated by
// the provider plan's per-order proposal cap.
type CreateProposalUseCase struct {
	orderRepo    marketplace.OrderRepository
	proposalRepo marketplace.ProposalRepository
	tracker      *quota.Tracker
	txMgr        db.TxManager
	publisher    events.Publisher
	logger       logger.Interface
	now          func() time.Time
}

func NewCreateProposalUseCase(
	orderRepo marketplace.OrderRepository,
	proposalRepo marketplace.ProposalRepository,
	tracker *quota.Tracker,
	txMgr db.TxManager,
	publisher events.Publisher,
	log logger.Interface,
) *CreateProposalUseCase {
	return &CreateProposalUseCase{
		orderRepo:    orderRepo,
		proposalRepo: proposalRepo,
		tracker:      tracker,
		txMgr:        txMgr,
		publisher:    publisher,
		logger:       log,
		now:          biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *CreateProposalUseCase) WithNow(now func() time.Time) *CreateProposalUseCase {
	uc.now = now
	return uc
}

func (uc *CreateProposalUseCase) Execute(ctx context.Context, cmd CreateProposalCommand) (*marketplace.Proposal, error) {
	proposal, err := marketplace.NewProposal(
		cmd.OrderID, cmd.ProviderID,
		cmd.Message, cmd.Price, cmd.EstimatedDays,
		cmd.ExpiresAt, uc.now(),
	)
	if err != nil {
		return nil, errors.NewValidationError("invalid proposal", err.Error())
	}

	subscriptionID, err := uc.tracker.SubscriptionIDForUser(ctx, cmd.ProviderID)
	if err != nil {
		return nil, err
	}

	err = db.WithRetry(ctx, func(ctx context.Context) error {
		return uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			// Lock the order row; the per-order cap check below counts
			// proposals from all providers, so it must serialize on the
			// order, not on the caller's subscription.
			order, err := uc.orderRepo.GetByIDForUpdate(txCtx, cmd.OrderID)
			if err != nil {
				return fmt.Errorf("failed to load order %d: %w", cmd.OrderID, err)
			}
			if order == nil {
				return marketplace.ErrOrderNotFound
			}
			if !order.IsPending() {
				return marketplace.ErrOrderAlreadyDecided
			}

			if err := uc.tracker.CheckAndReserve(txCtx, subscriptionID, quota.ResourceProposal, cmd.OrderID); err != nil {
				return err
			}
			if err := uc.proposalRepo.Create(txCtx, proposal); err != nil {
				return fmt.Errorf("failed to create proposal: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		uc.logger.Warnw("proposal creation rejected",
			"error", err,
			"order_id", cmd.OrderID,
			"provider_id", cmd.ProviderID,
		)
		return nil, err
	}

	uc.logger.Infow("proposal created",
		"proposal_id", proposal.ID(),
		"order_id", cmd.OrderID,
		"provider_id", cmd.ProviderID,
	)
	publishAfterCommit(ctx, uc.logger, uc.publisher,
		marketplace.NewProposalCreatedEvent(proposal.ID(), cmd.OrderID, cmd.ProviderID))
	return proposal, nil
}
