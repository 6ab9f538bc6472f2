package marketplace

import (
	"context"
	"time"

	vo "github.com/servly-inc/servly/internal/domain/marketplace/valueobjects"
)

// OrderRepository persists Order aggregates. Implementations must honor a
// transaction carried in the context.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	// GetByIDForUpdate locks the order row for the remainder of the
	// surrounding transaction. The accept transaction serializes on this
	// lock, which is what lets exactly one of two concurrent accepts win.
	GetByIDForUpdate(ctx context.Context, id uint) (*Order, error)
	Update(ctx context.Context, order *Order) error
	ListByClientID(ctx context.Context, clientID uint) ([]*Order, error)
}

// ProposalRepository persists Proposal aggregates.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *Proposal) error
	GetByID(ctx context.Context, id uint) (*Proposal, error)
	Update(ctx context.Context, proposal *Proposal) error
	ListByOrderID(ctx context.Context, orderID uint) ([]*Proposal, error)
	// CountActiveByOrderID counts non-deleted proposals attached to the
	// order, the figure the per-order proposal quota is measured against.
	CountActiveByOrderID(ctx context.Context, orderID uint) (uint, error)
	// DeclinePendingByOrderID bulk-declines every PENDING proposal under the
	// order except the given one. Runs in the caller's transaction; returns
	// the IDs that were declined.
	DeclinePendingByOrderID(ctx context.Context, orderID, exceptProposalID uint, now time.Time) ([]uint, error)
	// ListExpiryDue returns PENDING proposals whose expiry passed at or
	// before the cutoff.
	ListExpiryDue(ctx context.Context, cutoff time.Time, limit int) ([]*Proposal, error)
	ListByStatus(ctx context.Context, orderID uint, status vo.ProposalStatus) ([]*Proposal, error)
}
