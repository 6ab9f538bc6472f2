package subscription

import (
	"fmt"
	"time"

	vo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"

	"github.com/servly-inc/servly/internal/shared/biztime"
)

// Subscription is the aggregate root tying a user to a plan and the monthly
// period window its usage is metered against. Every user owns exactly one
// subscription record, created together with the account; at most one may be
// ACTIVE at a time.
type Subscription struct {
	id          uint
	userID      uint
	planID      uint
	status      vo.SubscriptionStatus
	periodStart time.Time
	periodEnd   time.Time
	autoRenew   bool
	cancelledAt *time.Time
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewSubscription creates a subscription starting a fresh monthly period at
// periodStart.
func NewSubscription(userID, planID uint, periodStart time.Time, autoRenew bool) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if periodStart.IsZero() {
		return nil, fmt.Errorf("period start is required")
	}

	now := time.Now()
	return &Subscription{
		userID:      userID,
		planID:      planID,
		status:      vo.StatusActive,
		periodStart: periodStart,
		periodEnd:   biztime.AddMonths(periodStart, 1),
		autoRenew:   autoRenew,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// SubscriptionReconstructParams carries persisted state back into the aggregate.
type SubscriptionReconstructParams struct {
	ID          uint
	UserID      uint
	PlanID      uint
	Status      vo.SubscriptionStatus
	PeriodStart time.Time
	PeriodEnd   time.Time
	AutoRenew   bool
	CancelledAt *time.Time
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ReconstructSubscription(p SubscriptionReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if p.PlanID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}

	return &Subscription{
		id:          p.ID,
		userID:      p.UserID,
		planID:      p.PlanID,
		status:      p.Status,
		periodStart: p.PeriodStart,
		periodEnd:   p.PeriodEnd,
		autoRenew:   p.AutoRenew,
		cancelledAt: p.CancelledAt,
		version:     p.Version,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                      { return s.id }
func (s *Subscription) UserID() uint                  { return s.userID }
func (s *Subscription) PlanID() uint                  { return s.planID }
func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }
func (s *Subscription) PeriodStart() time.Time        { return s.periodStart }
func (s *Subscription) PeriodEnd() time.Time          { return s.periodEnd }
func (s *Subscription) AutoRenew() bool               { return s.autoRenew }
func (s *Subscription) CancelledAt() *time.Time       { return s.cancelledAt }
func (s *Subscription) Version() int                  { return s.version }
func (s *Subscription) CreatedAt() time.Time          { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time          { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// Cancel marks the subscription cancelled by the user. Quota keeps being
// honored until the period ends, then the subscription expires.
func (s *Subscription) Cancel(now time.Time) error {
	if s.status == vo.StatusCancelled {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return ErrInvalidTransition(s.status.String(), vo.StatusCancelled.String())
	}

	s.status = vo.StatusCancelled
	s.cancelledAt = &now
	s.autoRenew = false
	s.updatedAt = now
	s.version++
	return nil
}

// Suspend blocks all resource creation regardless of quota. Administrative.
func (s *Subscription) Suspend(now time.Time) error {
	if !s.status.CanTransitionTo(vo.StatusSuspended) {
		return ErrInvalidTransition(s.status.String(), vo.StatusSuspended.String())
	}

	s.status = vo.StatusSuspended
	s.updatedAt = now
	s.version++
	return nil
}

// Reactivate returns a suspended subscription to ACTIVE. Administrative.
func (s *Subscription) Reactivate(now time.Time) error {
	if !s.status.CanTransitionTo(vo.StatusActive) {
		return ErrInvalidTransition(s.status.String(), vo.StatusActive.String())
	}

	s.status = vo.StatusActive
	s.updatedAt = now
	s.version++
	return nil
}

// MarkExpired transitions to EXPIRED once the period has passed without
// renewal. Idempotent when already expired.
func (s *Subscription) MarkExpired(now time.Time) error {
	if s.status == vo.StatusExpired {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusExpired) {
		return ErrInvalidTransition(s.status.String(), vo.StatusExpired.String())
	}

	s.status = vo.StatusExpired
	s.updatedAt = now
	s.version++
	return nil
}

// ChangePlan swaps the plan reference. Current period counters are kept: a
// downgrade below current usage only denies creation going forward, it never
// retroactively removes resources.
func (s *Subscription) ChangePlan(newPlanID uint, now time.Time) error {
	if newPlanID == 0 {
		return fmt.Errorf("new plan ID is required")
	}
	if newPlanID == s.planID {
		return nil
	}
	if s.status != vo.StatusActive {
		return fmt.Errorf("%w: cannot change plan with status %s", ErrSubscriptionInactive, s.status)
	}

	s.planID = newPlanID
	s.updatedAt = now
	s.version++
	return nil
}

// RolloverDue reports whether now has crossed the period boundary.
func (s *Subscription) RolloverDue(now time.Time) bool {
	return !now.Before(s.periodEnd)
}

// AdvancePeriod moves the window forward to the monthly period containing
// now. Crossing several boundaries without activity advances in one step, so
// the caller's counter reset happens exactly once per rollover observation.
func (s *Subscription) AdvancePeriod(now time.Time) error {
	if !s.RolloverDue(now) {
		return nil
	}

	for !now.Before(s.periodEnd) {
		s.periodStart = s.periodEnd
		s.periodEnd = biztime.AddMonths(s.periodEnd, 1)
	}
	s.updatedAt = now
	s.version++
	return nil
}

// ExpiryDue reports whether the subscription should expire at now: the period
// ended and either renewal is off or the user already cancelled.
func (s *Subscription) ExpiryDue(now time.Time) bool {
	if s.status != vo.StatusActive && s.status != vo.StatusCancelled {
		return false
	}
	if now.Before(s.periodEnd) {
		return false
	}
	return !s.autoRenew || s.status == vo.StatusCancelled
}

// CanCreateResources reports whether new orders/proposals may be created at
// now. Cancelled subscriptions keep their quota until the period ends.
func (s *Subscription) CanCreateResources(now time.Time) bool {
	if !s.status.CanCreateResources() {
		return false
	}
	if s.status == vo.StatusCancelled && !now.Before(s.periodEnd) {
		return false
	}
	return true
}
