package subscription

import (
	"errors"
	"time"
)

// UsageCounter tracks how many orders a subscription created within one
// monthly period. The counter only grows inside a period; crossing the period
// boundary resets it to zero exactly once.
type UsageCounter struct {
	id            uint
	subscription  uint
	periodStart   time.Time
	ordersCreated uint
	updatedAt     time.Time
}

func NewUsageCounter(subscriptionID uint, periodStart time.Time) (*UsageCounter, error) {
	if subscriptionID == 0 {
		return nil, errors.New("subscription ID cannot be zero")
	}
	if periodStart.IsZero() {
		return nil, errors.New("period start cannot be zero")
	}

	return &UsageCounter{
		subscription: subscriptionID,
		periodStart:  periodStart,
		updatedAt:    time.Now(),
	}, nil
}

func ReconstructUsageCounter(id, subscriptionID uint, periodStart time.Time, ordersCreated uint, updatedAt time.Time) (*UsageCounter, error) {
	if id == 0 {
		return nil, errors.New("usage counter ID cannot be zero")
	}
	if subscriptionID == 0 {
		return nil, errors.New("subscription ID cannot be zero")
	}
	if periodStart.IsZero() {
		return nil, errors.New("period start cannot be zero")
	}

	return &UsageCounter{
		id:            id,
		subscription:  subscriptionID,
		periodStart:   periodStart,
		ordersCreated: ordersCreated,
		updatedAt:     updatedAt,
	}, nil
}

func (u *UsageCounter) ID() uint               { return u.id }
func (u *UsageCounter) SubscriptionID() uint   { return u.subscription }
func (u *UsageCounter) PeriodStart() time.Time { return u.periodStart }
func (u *UsageCounter) OrdersCreated() uint    { return u.ordersCreated }
func (u *UsageCounter) UpdatedAt() time.Time   { return u.updatedAt }

// SetID sets the counter ID (only for persistence layer use)
func (u *UsageCounter) SetID(id uint) error {
	if u.id != 0 {
		return errors.New("usage counter ID is already set")
	}
	if id == 0 {
		return errors.New("usage counter ID cannot be zero")
	}
	u.id = id
	return nil
}

// IncrementOrders records one more order created this period.
func (u *UsageCounter) IncrementOrders(now time.Time) {
	u.ordersCreated++
	u.updatedAt = now
}

// ResetForPeriod zeroes the counter for a new period window. Idempotent:
// resetting for the period the counter already tracks is a no-op, so two
// concurrent rollover observers cannot stack resets.
func (u *UsageCounter) ResetForPeriod(periodStart, now time.Time) bool {
	if u.periodStart.Equal(periodStart) {
		return false
	}
	u.periodStart = periodStart
	u.ordersCreated = 0
	u.updatedAt = now
	return true
}
