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

// CompleteOrderUseCase closes an IN_PROGRESS order when the client confirms
// delivery.
type CompleteOrderUseCase struct {
	orderRepo marketplace.OrderRepository
	txMgr     db.TxManager
	logger    logger.Interface
	now       func() time.Time
}

func NewCompleteOrderUseCase(orderRepo marketplace.OrderRepository, txMgr db.TxManager, log logger.Interface) *CompleteOrderUseCase {
	return &CompleteOrderUseCase{
		orderRepo: orderRepo,
		txMgr:     txMgr,
		logger:    log,
		now:       biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *CompleteOrderUseCase) WithNow(now func() time.Time) *CompleteOrderUseCase {
	uc.now = now
	return uc
}

func (uc *CompleteOrderUseCase) Execute(ctx context.Context, clientID, orderID uint) error {
	now := uc.now()

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
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

		if err := order.Complete(now); err != nil {
			return err
		}
		if err := uc.orderRepo.Update(txCtx, order); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("order complete rejected", "error", err, "order_id", orderID)
		return err
	}

	uc.logger.Infow("order completed", "order_id", orderID)
	return nil
}
