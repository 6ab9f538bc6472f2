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

// StartOrderUseCase moves an ACCEPTED order into IN_PROGRESS once work
// begins.
type StartOrderUseCase struct {
	orderRepo marketplace.OrderRepository
	txMgr     db.TxManager
	logger    logger.Interface
	now       func() time.Time
}

func NewStartOrderUseCase(orderRepo marketplace.OrderRepository, txMgr db.TxManager, log logger.Interface) *StartOrderUseCase {
	return &StartOrderUseCase{
		orderRepo: orderRepo,
		txMgr:     txMgr,
		logger:    log,
		now:       biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *StartOrderUseCase) WithNow(now func() time.Time) *StartOrderUseCase {
	uc.now = now
	return uc
}

func (uc *StartOrderUseCase) Execute(ctx context.Context, clientID, orderID uint) error {
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

		if err := order.Start(now); err != nil {
			return err
		}
		if err := uc.orderRepo.Update(txCtx, order); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("order start rejected", "error", err, "order_id", orderID)
		return err
	}

	uc.logger.Infow("order started", "order_id", orderID)
	return nil
}
