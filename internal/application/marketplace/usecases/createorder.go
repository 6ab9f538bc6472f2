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

// CreateOrderCommand carries a client's service request. Budgets are in
// cents.
type CreateOrderCommand struct {
	ClientID    uint
	ServiceID   uint
	Title       string
	Description string
	BudgetMin   int64
	BudgetMax   int64
	Deadline    time.Time
}

// CreateOrderUseCase validates the order, reserves a monthly quota slot and
// persists the order in one transaction. Validation runs before the quota is
// touched: an invalid order never consumes a slot.
type CreateOrderUseCase struct {
	orderRepo marketplace.OrderRepository
	tracker   *quota.Tracker
	txMgr     db.TxManager
	publisher events.Publisher
	logger    logger.Interface
	now       func() time.Time
}

func NewCreateOrderUseCase(
	orderRepo marketplace.OrderRepository,
	tracker *quota.Tracker,
	txMgr db.TxManager,
	publisher events.Publisher,
	log logger.Interface,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		tracker:   tracker,
		txMgr:     txMgr,
		publisher: publisher,
		logger:    log,
		now:       biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (uc *CreateOrderUseCase) WithNow(now func() time.Time) *CreateOrderUseCase {
	uc.now = now
	return uc
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderCommand) (*marketplace.Order, error) {
	order, err := marketplace.NewOrder(
		cmd.ClientID, cmd.ServiceID,
		cmd.Title, cmd.Description,
		cmd.BudgetMin, cmd.BudgetMax,
		cmd.Deadline, uc.now(),
	)
	if err != nil {
		return nil, errors.NewValidationError("invalid order", err.Error())
	}

	subscriptionID, err := uc.tracker.SubscriptionIDForUser(ctx, cmd.ClientID)
	if err != nil {
		return nil, err
	}

	err = db.WithRetry(ctx, func(ctx context.Context) error {
		return uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := uc.tracker.CheckAndReserve(txCtx, subscriptionID, quota.ResourceOrder, 0); err != nil {
				return err
			}
			if err := uc.orderRepo.Create(txCtx, order); err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		uc.logger.Warnw("order creation rejected",
			"error", err,
			"client_id", cmd.ClientID,
			"subscription_id", subscriptionID,
		)
		return nil, err
	}

	uc.logger.Infow("order created",
		"order_id", order.ID(),
		"client_id", cmd.ClientID,
		"service_id", cmd.ServiceID,
	)
	publishAfterCommit(ctx, uc.logger, uc.publisher,
		marketplace.NewOrderCreatedEvent(order.ID(), cmd.ClientID, cmd.ServiceID))
	return order, nil
}
