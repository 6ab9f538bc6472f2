package subscription

import (
	"context"
	"time"
)

// SubscriptionRepository persists Subscription aggregates. Implementations
// must honor a transaction carried in the context.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	// GetByIDForUpdate locks the subscription row for the remainder of the
	// surrounding transaction. Quota checks and period rollovers serialize on
	// this lock.
	GetByIDForUpdate(ctx context.Context, id uint) (*Subscription, error)
	// GetByUserID returns the user's subscription record, nil when absent.
	GetByUserID(ctx context.Context, userID uint) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	// ListExpiryDue returns ACTIVE or CANCELLED subscriptions whose period
	// ended at or before the cutoff and which will not auto-renew.
	ListExpiryDue(ctx context.Context, cutoff time.Time, limit int) ([]*Subscription, error)
}

// PlanRepository persists subscription plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetBySlug(ctx context.Context, slug string) (*Plan, error)
	// GetDefault returns the plan flagged as default, nil when none exists.
	GetDefault(ctx context.Context) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	List(ctx context.Context, activeOnly bool) ([]*Plan, error)
}

// UsageRepository persists per-period usage counters.
type UsageRepository interface {
	Create(ctx context.Context, counter *UsageCounter) error
	// GetBySubscriptionIDForUpdate locks the counter row so concurrent
	// check-then-increment sequences cannot lose updates. Returns nil when no
	// counter exists yet.
	GetBySubscriptionIDForUpdate(ctx context.Context, subscriptionID uint) (*UsageCounter, error)
	GetBySubscriptionID(ctx context.Context, subscriptionID uint) (*UsageCounter, error)
	Update(ctx context.Context, counter *UsageCounter) error
}
