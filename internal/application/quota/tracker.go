// Package quota meters resource creation against the subscription plan's
// monthly ceilings. All checks run inside the caller's transaction so a
// reservation commits or rolls back together with the entity it reserves for.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/servly-inc/servly/internal/domain/marketplace"
	"github.com/servly-inc/servly/internal/domain/subscription"
	subvo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"
	"github.com/servly-inc/servly/internal/shared/biztime"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// Tracker resolves a subscription's current plan and period usage and gates
// resource creation against it.
type Tracker struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	usageRepo        subscription.UsageRepository
	proposalRepo     marketplace.ProposalRepository
	logger           logger.Interface
	now              func() time.Time
}

func NewTracker(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	usageRepo subscription.UsageRepository,
	proposalRepo marketplace.ProposalRepository,
	log logger.Interface,
) *Tracker {
	return &Tracker{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		usageRepo:        usageRepo,
		proposalRepo:     proposalRepo,
		logger:           log,
		now:              biztime.NowUTC,
	}
}

// WithNow overrides the clock source. For tests.
func (t *Tracker) WithNow(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// SubscriptionIDForUser resolves the user's subscription record. Every user
// owns one from account creation; absence is a data-integrity defect and
// fails the whole operation.
func (t *Tracker) SubscriptionIDForUser(ctx context.Context, userID uint) (uint, error) {
	sub, err := t.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve subscription for user %d: %w", userID, err)
	}
	if sub == nil {
		t.logger.Errorw("integrity defect: user has no subscription record",
			"user_id", userID,
		)
		return 0, subscription.ErrSubscriptionMissing
	}
	return sub.ID(), nil
}

// CheckAndReserve gates creation of one resource of the given kind. Must run
// inside a transaction: it locks the subscription row (and, for orders, the
// usage counter row), performs the idempotent period rollover when due, and
// reserves the slot. The reservation is undone automatically if the caller's
// transaction rolls back.
//
// scopeID is the target order for PROPOSAL checks and ignored for ORDER.
func (t *Tracker) CheckAndReserve(ctx context.Context, subscriptionID uint, kind ResourceKind, scopeID uint) error {
	now := t.now()

	sub, err := t.subscriptionRepo.GetByIDForUpdate(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to lock subscription %d: %w", subscriptionID, err)
	}
	if sub == nil {
		return subscription.ErrSubscriptionNotFound
	}

	if err := t.gateStatus(sub, now); err != nil {
		return err
	}

	if sub.RolloverDue(now) {
		if err := t.rollover(ctx, sub, now); err != nil {
			return err
		}
	}

	plan, err := t.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		return fmt.Errorf("failed to load plan %d: %w", sub.PlanID(), err)
	}
	if plan == nil {
		return subscription.ErrPlanNotFound
	}

	switch kind {
	case ResourceOrder:
		return t.reserveOrder(ctx, sub, plan, now)
	case ResourceProposal:
		return t.checkProposal(ctx, plan, scopeID)
	default:
		return fmt.Errorf("unknown resource kind: %s", kind)
	}
}

// Usage reports the current period's consumption against the plan's limits.
type Usage struct {
	OrdersUsed             uint
	OrdersLimit            uint
	OrdersUnlimited        bool
	ProposalsPerOrderLimit uint
	ProposalsUnlimited     bool
	PeriodStart            time.Time
	PeriodEnd              time.Time
}

// GetUsage returns the subscription's usage snapshot. Read-only: it does not
// perform the rollover reset, it reports zero used when one is due.
func (t *Tracker) GetUsage(ctx context.Context, subscriptionID uint) (*Usage, error) {
	sub, err := t.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription %d: %w", subscriptionID, err)
	}
	if sub == nil {
		return nil, subscription.ErrSubscriptionNotFound
	}

	plan, err := t.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %d: %w", sub.PlanID(), err)
	}
	if plan == nil {
		return nil, subscription.ErrPlanNotFound
	}

	var used uint
	if !sub.RolloverDue(t.now()) {
		counter, err := t.usageRepo.GetBySubscriptionID(ctx, subscriptionID)
		if err != nil {
			return nil, fmt.Errorf("failed to get usage counter: %w", err)
		}
		if counter != nil && counter.PeriodStart().Equal(sub.PeriodStart()) {
			used = counter.OrdersCreated()
		}
	}

	orders := plan.MaxOrdersPerMonth()
	proposals := plan.MaxProposalsPerOrder()
	return &Usage{
		OrdersUsed:             used,
		OrdersLimit:            orders.Value(),
		OrdersUnlimited:        orders.IsUnbounded(),
		ProposalsPerOrderLimit: proposals.Value(),
		ProposalsUnlimited:     proposals.IsUnbounded(),
		PeriodStart:            sub.PeriodStart(),
		PeriodEnd:              sub.PeriodEnd(),
	}, nil
}

func (t *Tracker) gateStatus(sub *subscription.Subscription, now time.Time) error {
	if sub.ExpiryDue(now) {
		return subscription.ErrSubscriptionExpired
	}
	if sub.CanCreateResources(now) {
		return nil
	}
	switch sub.Status() {
	case subvo.StatusSuspended:
		return subscription.ErrSubscriptionSuspended
	case subvo.StatusExpired:
		return subscription.ErrSubscriptionExpired
	default:
		return subscription.ErrSubscriptionInactive
	}
}

// rollover advances the period window and resets the locked counter. The
// subscription row lock serializes concurrent first-accesses after the
// boundary: one caller resets, the rest observe the post-reset state.
func (t *Tracker) rollover(ctx context.Context, sub *subscription.Subscription, now time.Time) error {
	if err := sub.AdvancePeriod(now); err != nil {
		return fmt.Errorf("failed to advance period: %w", err)
	}
	if err := t.subscriptionRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to persist period rollover: %w", err)
	}

	counter, err := t.usageRepo.GetBySubscriptionIDForUpdate(ctx, sub.ID())
	if err != nil {
		return fmt.Errorf("failed to lock usage counter: %w", err)
	}
	if counter == nil {
		return nil
	}
	if counter.ResetForPeriod(sub.PeriodStart(), now) {
		if err := t.usageRepo.Update(ctx, counter); err != nil {
			return fmt.Errorf("failed to persist counter reset: %w", err)
		}
		t.logger.Infow("usage counter reset for new period",
			"subscription_id", sub.ID(),
			"period_start", sub.PeriodStart(),
		)
	}
	return nil
}

func (t *Tracker) reserveOrder(ctx context.Context, sub *subscription.Subscription, plan *subscription.Plan, now time.Time) error {
	counter, err := t.usageRepo.GetBySubscriptionIDForUpdate(ctx, sub.ID())
	if err != nil {
		return fmt.Errorf("failed to lock usage counter: %w", err)
	}
	if counter == nil {
		counter, err = subscription.NewUsageCounter(sub.ID(), sub.PeriodStart())
		if err != nil {
			return fmt.Errorf("failed to build usage counter: %w", err)
		}
		if err := t.usageRepo.Create(ctx, counter); err != nil {
			return fmt.Errorf("failed to create usage counter: %w", err)
		}
	} else {
		counter.ResetForPeriod(sub.PeriodStart(), now)
	}

	limit := plan.MaxOrdersPerMonth()
	if !limit.Allows(counter.OrdersCreated()) {
		return NewExceededError(ResourceOrder, counter.OrdersCreated(), limit.Value())
	}

	counter.IncrementOrders(now)
	if err := t.usageRepo.Update(ctx, counter); err != nil {
		return fmt.Errorf("failed to reserve order slot: %w", err)
	}
	return nil
}

func (t *Tracker) checkProposal(ctx context.Context, plan *subscription.Plan, orderID uint) error {
	if orderID == 0 {
		return fmt.Errorf("proposal quota check requires a target order")
	}

	limit := plan.MaxProposalsPerOrder()
	if limit.IsUnbounded() {
		return nil
	}

	count, err := t.proposalRepo.CountActiveByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to count proposals for order %d: %w", orderID, err)
	}
	if !limit.Allows(count) {
		return NewExceededError(ResourceProposal, count, limit.Value())
	}
	return nil
}
