package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound     = errors.New("subscription not found")
	ErrSubscriptionExpired      = errors.New("subscription expired")
	ErrSubscriptionSuspended    = errors.New("subscription suspended")
	ErrSubscriptionInactive     = errors.New("subscription inactive")
	ErrInvalidStatusTransition  = errors.New("invalid status transition")
	ErrPlanNotFound             = errors.New("subscription plan not found")
	ErrPlanInactive             = errors.New("subscription plan inactive")
	ErrNoDefaultPlan            = errors.New("no default subscription plan configured")
	ErrActiveSubscriptionExists = errors.New("user already has an active subscription")

	// ErrSubscriptionMissing flags the integrity defect of an existing user
	// without a subscription record. Never auto-repaired; the whole operation
	// fails.
	ErrSubscriptionMissing = errors.New("data integrity violation: user has no subscription record")
)

func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}
