package marketplace

import (
	"fmt"
	"time"

	vo "github.com/servly-inc/servly/internal/domain/marketplace/valueobjects"
)

// Order is a client's request for a service. It owns its proposals: a hard
// delete cascades to them, while a soft delete leaves them untouched.
type Order struct {
	id          uint
	clientID    uint
	serviceID   uint
	title       string
	description string
	budgetMin   int64
	budgetMax   int64
	deadline    time.Time
	status      vo.OrderStatus
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewOrder validates and builds a PENDING order. Amounts are in cents.
// Validation failures happen before any persistence or quota reservation.
func NewOrder(clientID, serviceID uint, title, description string, budgetMin, budgetMax int64, deadline, now time.Time) (*Order, error) {
	if clientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}
	if serviceID == 0 {
		return nil, fmt.Errorf("service ID is required")
	}
	if title == "" {
		return nil, fmt.Errorf("order title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("order title too long (max 200 characters)")
	}
	if budgetMin < 0 {
		return nil, fmt.Errorf("minimum budget cannot be negative")
	}
	if budgetMin > budgetMax {
		return nil, fmt.Errorf("minimum budget cannot exceed maximum budget")
	}
	if !deadline.After(now) {
		return nil, fmt.Errorf("deadline must be in the future")
	}

	return &Order{
		clientID:    clientID,
		serviceID:   serviceID,
		title:       title,
		description: description,
		budgetMin:   budgetMin,
		budgetMax:   budgetMax,
		deadline:    deadline,
		status:      vo.OrderStatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// OrderReconstructParams carries persisted state back into the aggregate.
type OrderReconstructParams struct {
	ID          uint
	ClientID    uint
	ServiceID   uint
	Title       string
	Description string
	BudgetMin   int64
	BudgetMax   int64
	Deadline    time.Time
	Status      vo.OrderStatus
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ReconstructOrder(p OrderReconstructParams) (*Order, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("order ID cannot be zero")
	}
	if p.ClientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}
	if !vo.ValidOrderStatuses[p.Status] {
		return nil, fmt.Errorf("invalid order status: %s", p.Status)
	}

	return &Order{
		id:          p.ID,
		clientID:    p.ClientID,
		serviceID:   p.ServiceID,
		title:       p.Title,
		description: p.Description,
		budgetMin:   p.BudgetMin,
		budgetMax:   p.BudgetMax,
		deadline:    p.Deadline,
		status:      p.Status,
		version:     p.Version,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}, nil
}

func (o *Order) ID() uint               { return o.id }
func (o *Order) ClientID() uint         { return o.clientID }
func (o *Order) ServiceID() uint        { return o.serviceID }
func (o *Order) Title() string          { return o.title }
func (o *Order) Description() string    { return o.description }
func (o *Order) BudgetMin() int64       { return o.budgetMin }
func (o *Order) BudgetMax() int64       { return o.budgetMax }
func (o *Order) Deadline() time.Time    { return o.deadline }
func (o *Order) Status() vo.OrderStatus { return o.status }
func (o *Order) Version() int           { return o.version }
func (o *Order) CreatedAt() time.Time   { return o.createdAt }
func (o *Order) UpdatedAt() time.Time   { return o.updatedAt }

// SetID sets the order ID (only for persistence layer use)
func (o *Order) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("order ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("order ID cannot be zero")
	}
	o.id = id
	return nil
}

func (o *Order) IsPending() bool {
	return o.status == vo.OrderStatusPending
}

// Accept moves PENDING to ACCEPTED. Only the proposal-accept transaction is
// a sanctioned caller; nothing else drives this transition.
func (o *Order) Accept(now time.Time) error {
	if o.status != vo.OrderStatusPending {
		return ErrOrderAlreadyDecided
	}
	return o.transition(vo.OrderStatusAccepted, now)
}

// Start moves ACCEPTED to IN_PROGRESS.
func (o *Order) Start(now time.Time) error {
	return o.transition(vo.OrderStatusInProgress, now)
}

// Complete moves IN_PROGRESS to COMPLETED.
func (o *Order) Complete(now time.Time) error {
	return o.transition(vo.OrderStatusCompleted, now)
}

// Cancel is allowed from PENDING, ACCEPTED and IN_PROGRESS.
func (o *Order) Cancel(now time.Time) error {
	return o.transition(vo.OrderStatusCancelled, now)
}

func (o *Order) transition(target vo.OrderStatus, now time.Time) error {
	if !o.status.CanTransitionTo(target) {
		return ErrInvalidTransition(o.status.String(), target.String())
	}
	o.status = target
	o.updatedAt = now
	o.version++
	return nil
}

// CanSoftDelete reports whether logical deletion is allowed. Only PENDING
// orders may disappear from default views.
func (o *Order) CanSoftDelete() bool {
	return o.status == vo.OrderStatusPending
}
