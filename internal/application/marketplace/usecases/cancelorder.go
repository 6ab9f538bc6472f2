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

// CancelOrderUseCase cancels an order on the client's behalf. Cancellation
// is terminal and allowed from any state except COMPLETED and CANCELLED.
// PENDING proposals under the order are declined in the same transaction.
type CancelOrderUseCase struct {
	orderRepo    marketplace.OrderRepository
	proposalRepo marketplace.ProposalRepository
	txMgr        db.TxManager
	publisher    events.Publisher
	logger       logger.Interface
	now          func() time.Time
}

func NewCancelOrderUseCase(
	orderRepo marketplace.OrderRepository,
	proposalRepo marketplace.ProposalRepository,
	txMgr db.TxManager,
	publisher events.Publisher,
	log logger.Interface,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orderRepo:    orderRepo,
		proposalRepo: proposalRepo,
		txMgr:        txMgr,
		publisher:    publisher,
		logger:       log,
		now:          biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *CancelOrderUseCase) WithNow(now func() time.Time) *CancelOrderUseCase {
	uc.now = now
	return uc
}

func (uc *CancelOrderUseCase) Execute(ctx context.Context, clientID, orderID uint) error {
	now := uc.now()

	err := db.WithRetry(ctx, func(ctx context.Context) error {
		return uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			order, err := uc.orderRepo.GetByIDForUpdate(txCtx, orderID)
			if err != nil {
				return fmt.Errorf("failed to lock order %d: %w", orderID, err)
			}
			if order == nil {
				return marketplace.ErrOrderNotFound
			}
			if order.ClientID() != clientID {
				return marketplace.ErrNotOrderClient
			}

			if err := order.Cancel(now); err != nil {
				return err
			}
			if _, err := uc.proposalRepo.DeclinePendingByOrderID(txCtx, orderID, 0, now); err != nil {
				return fmt.Errorf("failed to decline pending proposals: %w", err)
			}
			if err := uc.orderRepo.Update(txCtx, order); err != nil {
				return fmt.Errorf("failed to update order: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		uc.logger.Warnw("order cancel rejected", "error", err, "order_id", orderID, "client_id", clientID)
		return err
	}

	uc.logger.Infow("order cancelled", "order_id", orderID, "client_id", clientID)
	publishAfterCommit(ctx, uc.logger, uc.publisher,
		marketplace.NewOrderCancelledEvent(orderID, clientID))
	return nil
}
