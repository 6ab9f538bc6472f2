package marketplace

import "time"

// OrderCreatedEvent represents a freshly persisted order.
type OrderCreatedEvent struct {
	OrderID   uint
	ClientID  uint
	ServiceID uint
	Timestamp time.Time
}

func NewOrderCreatedEvent(orderID, clientID, serviceID uint) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		OrderID:   orderID,
		ClientID:  clientID,
		ServiceID: serviceID,
		Timestamp: time.Now(),
	}
}

func (e *OrderCreatedEvent) GetEventType() string    { return "order.created" }
func (e *OrderCreatedEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e *OrderCreatedEvent) GetAggregateID() uint    { return e.OrderID }

// OrderCancelledEvent represents order cancellation.
type OrderCancelledEvent struct {
	OrderID   uint
	ClientID  uint
	Timestamp time.Time
}

func NewOrderCancelledEvent(orderID, clientID uint) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		OrderID:   orderID,
		ClientID:  clientID,
		Timestamp: time.Now(),
	}
}

func (e *OrderCancelledEvent) GetEventType() string    { return "order.cancelled" }
func (e *OrderCancelledEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e *OrderCancelledEvent) GetAggregateID() uint    { return e.OrderID }

// ProposalCreatedEvent represents a freshly persisted proposal.
type ProposalCreatedEvent struct {
	ProposalID uint
	OrderID    uint
	ProviderID uint
	Timestamp  time.Time
}

func NewProposalCreatedEvent(proposalID, orderID, providerID uint) *ProposalCreatedEvent {
	return &ProposalCreatedEvent{
		ProposalID: proposalID,
		OrderID:    orderID,
		ProviderID: providerID,
		Timestamp:  time.Now(),
	}
}

func (e *ProposalCreatedEvent) GetEventType() string    { return "proposal.created" }
func (e *ProposalCreatedEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e *ProposalCreatedEvent) GetAggregateID() uint    { return e.ProposalID }

// ProposalAcceptedEvent is the single event emitted by the accept
// transaction. External collaborators (payment initiation, chat-room
// creation) consume it; the engine performs none of those side effects.
type ProposalAcceptedEvent struct {
	OrderID    uint
	ProposalID uint
	ProviderID uint
	ClientID   uint
	Timestamp  time.Time
}

func NewProposalAcceptedEvent(orderID, proposalID, providerID, clientID uint) *ProposalAcceptedEvent {
	return &ProposalAcceptedEvent{
		OrderID:    orderID,
		ProposalID: proposalID,
		ProviderID: providerID,
		ClientID:   clientID,
		Timestamp:  time.Now(),
	}
}

func (e *ProposalAcceptedEvent) GetEventType() string    { return "proposal.accepted" }
func (e *ProposalAcceptedEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e *ProposalAcceptedEvent) GetAggregateID() uint    { return e.ProposalID }

// ProposalDeclinedEvent represents a client declining a proposal.
type ProposalDeclinedEvent struct {
	ProposalID uint
	OrderID    uint
	Timestamp  time.Time
}

func NewProposalDeclinedEvent(proposalID, orderID uint) *ProposalDeclinedEvent {
	return &ProposalDeclinedEvent{
		ProposalID: proposalID,
		OrderID:    orderID,
		Timestamp:  time.Now(),
	}
}

func (e *ProposalDeclinedEvent) GetEventType() string    { return "proposal.declined" }
func (e *ProposalDeclinedEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e *ProposalDeclinedEvent) GetAggregateID() uint    { return e.ProposalID }
