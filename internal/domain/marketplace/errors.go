package marketplace

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrProposalNotFound = errors.New("proposal not found")

	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrOrderNotDeletable guards soft deletion: only PENDING orders may be
	// logically deleted.
	ErrOrderNotDeletable = errors.New("order can only be deleted while pending")

	// ErrProposalNotDeletable guards soft deletion of proposals.
	ErrProposalNotDeletable = errors.New("proposal can only be deleted while pending")

	// ErrProposalNotAcceptable is returned when the proposal is no longer
	// PENDING or its expiry has passed.
	ErrProposalNotAcceptable = errors.New("proposal is not acceptable")

	// ErrOrderAlreadyDecided is returned when the parent order already left
	// PENDING, e.g. a competing proposal won the race.
	ErrOrderAlreadyDecided = errors.New("order has already been decided")

	// ErrNotOrderClient guards client-only operations such as declining a
	// proposal on the order.
	ErrNotOrderClient = errors.New("acting user is not the order's client")

	// ErrNotOrderOwner guards owner-only operations such as cancelling.
	ErrNotOrderOwner = errors.New("acting user does not own the order")
)

func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}
