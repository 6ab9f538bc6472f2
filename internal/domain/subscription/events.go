package subscription

import "time"

// SubscriptionCreatedEvent represents subscription creation
type SubscriptionCreatedEvent struct {
	SubscriptionID uint
	UserID         uint
	PlanID         uint
	PeriodStart    time.Time
	PeriodEnd      time.Time
	Timestamp      time.Time
}

func NewSubscriptionCreatedEvent(subscriptionID, userID, planID uint, periodStart, periodEnd time.Time) *SubscriptionCreatedEvent {
	return &SubscriptionCreatedEvent{
		SubscriptionID: subscriptionID,
		UserID:         userID,
		PlanID:         planID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Timestamp:      time.Now(),
	}
}

func (e *SubscriptionCreatedEvent) GetEventType() string    { return "subscription.created" }
func (e *SubscriptionCreatedEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e *SubscriptionCreatedEvent) GetAggregateID() uint    { return e.SubscriptionID }

// SubscriptionCancelledEvent represents user-initiated cancellation
type SubscriptionCancelledEvent struct {
	SubscriptionID uint
	UserID         uint
	PlanID         uint
	CancelledAt    time.Time
	Timestamp      time.Time
}

func NewSubscriptionCancelledEvent(subscriptionID, userID, planID uint, cancelledAt time.Time) *SubscriptionCancelledEvent {
	return &SubscriptionCancelledEvent{
		SubscriptionID: subscriptionID,
		UserID:         userID,
		PlanID:         planID,
		CancelledAt:    cancelledAt,
		Timestamp:      time.Now(),
	}
}

func (e *SubscriptionCancelledEvent) GetEventType() string    { return "subscription.cancelled" }
func (e *SubscriptionCancelledEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e *SubscriptionCancelledEvent) GetAggregateID() uint    { return e.SubscriptionID }

// SubscriptionSuspendedEvent represents administrative suspension
type SubscriptionSuspendedEvent struct {
	SubscriptionID uint
	UserID         uint
	Timestamp      time.Time
}

func NewSubscriptionSuspendedEvent(subscriptionID, userID uint) *SubscriptionSuspendedEvent {
	return &SubscriptionSuspendedEvent{
		SubscriptionID: subscriptionID,
		UserID:         userID,
		Timestamp:      time.Now(),
	}
}

func (e *SubscriptionSuspendedEvent) GetEventType() string    { return "subscription.suspended" }
func (e *SubscriptionSuspendedEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e *SubscriptionSuspendedEvent) GetAggregateID() uint    { return e.SubscriptionID }

// SubscriptionReactivatedEvent represents administrative reactivation
type SubscriptionReactivatedEvent struct {
	SubscriptionID uint
	UserID         uint
	Timestamp      time.Time
}

func NewSubscriptionReactivatedEvent(subscriptionID, userID uint) *SubscriptionReactivatedEvent {
	return &SubscriptionReactivatedEvent{
		SubscriptionID: subscriptionID,
		UserID:         userID,
		Timestamp:      time.Now(),
	}
}

func (e *SubscriptionReactivatedEvent) GetEventType() string    { return "subscription.reactivated" }
func (e *SubscriptionReactivatedEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e *SubscriptionReactivatedEvent) GetAggregateID() uint    { return e.SubscriptionID }

// SubscriptionPlanChangedEvent represents a plan upgrade or downgrade
type SubscriptionPlanChangedEvent struct {
	SubscriptionID uint
	UserID         uint
	OldPlanID      uint
	NewPlanID      uint
	Timestamp      time.Time
}

func NewSubscriptionPlanChangedEvent(subscriptionID, userID, oldPlanID, newPlanID uint) *SubscriptionPlanChangedEvent {
	return &SubscriptionPlanChangedEvent{
		SubscriptionID: subscriptionID,
		UserID:         userID,
		OldPlanID:      oldPlanID,
		NewPlanID:      newPlanID,
		Timestamp:      time.Now(),
	}
}

func (e *SubscriptionPlanChangedEvent) GetEventType() string    { return "subscription.plan_changed" }
func (e *SubscriptionPlanChangedEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e *SubscriptionPlanChangedEvent) GetAggregateID() uint    { return e.SubscriptionID }

// SubscriptionExpiredEvent represents the transition to EXPIRED
type SubscriptionExpiredEvent struct {
	SubscriptionID uint
	UserID         uint
	Timestamp      time.Time
}

func NewSubscriptionExpiredEvent(subscriptionID, userID uint) *SubscriptionExpiredEvent {
	return &SubscriptionExpiredEvent{
		SubscriptionID: subscriptionID,
		UserID:         userID,
		Timestamp:      time.Now(),
	}
}

func (e *SubscriptionExpiredEvent) GetEventType() string    { return "subscription.expired" }
func (e *SubscriptionExpiredEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e *SubscriptionExpiredEvent) GetAggregateID() uint    { return e.SubscriptionID }
