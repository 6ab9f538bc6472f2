// Package events defines the domain event contract. Events are collected
// while an operation's transaction is open and dispatched only after it
// commits; the engine never blocks on their delivery.
package events

import (
	"context"
	"time"
)

// DomainEvent represents a domain event
type DomainEvent interface {
	// GetEventType returns the type/name of the event
	GetEventType() string

	// GetTimestamp returns when the event occurred
	GetTimestamp() time.Time

	// GetAggregateID returns the ID of the aggregate that generated the event
	GetAggregateID() uint
}

// Publisher delivers domain events to external collaborators. Implementations
// must be safe for concurrent use and must not be called before the owning
// transaction commits.
type Publisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}
