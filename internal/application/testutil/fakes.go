// Package testutil provides in-memory collaborator fakes for application
// layer tests. The fakes keep aggregates in maps and apply the same
// observable semantics as the GORM repositories, minus persistence.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/servly-inc/servly/internal/domain/marketplace"
	mvo "github.com/servly-inc/servly/internal/domain/marketplace/valueobjects"
	"github.com/servly-inc/servly/internal/domain/shared/events"
	"github.com/servly-inc/servly/internal/domain/subscription"
)

// TxManager satisfies db.TxManager by running the function directly. Fakes
// have no rollback, so tests assert on error paths rather than stored state
// after a failed transaction.
type TxManager struct{}

func (TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// CapturePublisher records published events for assertion. Publication is
// asynchronous in production code paths, so reads go through Wait.
type CapturePublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func NewCapturePublisher() *CapturePublisher {
	return &CapturePublisher{}
}

func (p *CapturePublisher) Publish(_ context.Context, event events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a snapshot of everything published so far.
func (p *CapturePublisher) Events() []events.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.DomainEvent, len(p.events))
	copy(out, p.events)
	return out
}

// Wait blocks until at least n events arrived or the timeout passes, and
// reports whether the count was reached.
func (p *CapturePublisher) Wait(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		got := len(p.events)
		p.mu.Unlock()
		if got >= n {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

// OrderRepo is an in-memory marketplace.OrderRepository.
type OrderRepo struct {
	mu     sync.Mutex
	nextID uint
	orders map[uint]*marketplace.Order

	CreateErr error
	UpdateErr error

	// LockCalls counts GetByIDForUpdate invocations.
	LockCalls int
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{nextID: 1, orders: make(map[uint]*marketplace.Order)}
}

func (r *OrderRepo) Create(_ context.Context, order *marketplace.Order) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID() == 0 {
		_ = order.SetID(r.nextID)
		r.nextID++
	}
	r.orders[order.ID()] = order
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id uint) (*marketplace.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id], nil
}

func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id uint) (*marketplace.Order, error) {
	r.mu.Lock()
	r.LockCalls++
	r.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) Update(_ context.Context, order *marketplace.Order) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID()] = order
	return nil
}

func (r *OrderRepo) ListByClientID(_ context.Context, clientID uint) ([]*marketplace.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*marketplace.Order
	for _, o := range r.orders {
		if o.ClientID() == clientID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// ProposalRepo is an in-memory marketplace.ProposalRepository.
type ProposalRepo struct {
	mu        sync.Mutex
	nextID    uint
	proposals map[uint]*marketplace.Proposal

	CountErr  error
	UpdateErr error
}

func NewProposalRepo() *ProposalRepo {
	return &ProposalRepo{nextID: 1, proposals: make(map[uint]*marketplace.Proposal)}
}

func (r *ProposalRepo) Create(_ context.Context, proposal *marketplace.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if proposal.ID() == 0 {
		_ = proposal.SetID(r.nextID)
		r.nextID++
	}
	r.proposals[proposal.ID()] = proposal
	return nil
}

func (r *ProposalRepo) GetByID(_ context.Context, id uint) (*marketplace.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.proposals[id], nil
}

func (r *ProposalRepo) Update(_ context.Context, proposal *marketplace.Proposal) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.proposals[proposal.ID()] = proposal
	return nil
}

func (r *ProposalRepo) ListByOrderID(_ context.Context, orderID uint) ([]*marketplace.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byOrderLocked(orderID), nil
}

func (r *ProposalRepo) CountActiveByOrderID(_ context.Context, orderID uint) (uint, error) {
	if r.CountErr != nil {
		return 0, r.CountErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint(len(r.byOrderLocked(orderID))), nil
}

func (r *ProposalRepo) DeclinePendingByOrderID(_ context.Context, orderID, exceptProposalID uint, now time.Time) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var declined []uint
	for _, p := range r.byOrderLocked(orderID) {
		if p.ID() == exceptProposalID || p.Status() != mvo.ProposalStatusPending {
			continue
		}
		if err := p.Decline(now); err != nil {
			return nil, err
		}
		declined = append(declined, p.ID())
	}
	return declined, nil
}

func (r *ProposalRepo) ListExpiryDue(_ context.Context, cutoff time.Time, limit int) ([]*marketplace.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*marketplace.Proposal
	for _, p := range r.proposals {
		if p.Status() == mvo.ProposalStatusPending && !p.ExpiresAt().After(cutoff) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ProposalRepo) ListByStatus(_ context.Context, orderID uint, status mvo.ProposalStatus) ([]*marketplace.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*marketplace.Proposal
	for _, p := range r.byOrderLocked(orderID) {
		if p.Status() == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProposalRepo) byOrderLocked(orderID uint) []*marketplace.Proposal {
	var out []*marketplace.Proposal
	for _, p := range r.proposals {
		if p.OrderID() == orderID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// SubscriptionRepo is an in-memory subscription.SubscriptionRepository.
type SubscriptionRepo struct {
	mu     sync.Mutex
	nextID uint
	subs   map[uint]*subscription.Subscription

	UpdateErr error
}

func NewSubscriptionRepo() *SubscriptionRepo {
	return &SubscriptionRepo{nextID: 1, subs: make(map[uint]*subscription.Subscription)}
}

func (r *SubscriptionRepo) Create(_ context.Context, sub *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub.ID() == 0 {
		_ = sub.SetID(r.nextID)
		r.nextID++
	}
	r.subs[sub.ID()] = sub
	return nil
}

func (r *SubscriptionRepo) GetByID(_ context.Context, id uint) (*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subs[id], nil
}

func (r *SubscriptionRepo) GetByIDForUpdate(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return r.GetByID(ctx, id)
}

func (r *SubscriptionRepo) GetByUserID(_ context.Context, userID uint) (*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.UserID() == userID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *SubscriptionRepo) Update(_ context.Context, sub *subscription.Subscription) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub.ID()] = sub
	return nil
}

func (r *SubscriptionRepo) ListExpiryDue(_ context.Context, cutoff time.Time, limit int) ([]*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*subscription.Subscription
	for _, s := range r.subs {
		if s.ExpiryDue(cutoff) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PlanRepo is an in-memory subscription.PlanRepository.
type PlanRepo struct {
	mu     sync.Mutex
	nextID uint
	plans  map[uint]*subscription.Plan
}

func NewPlanRepo() *PlanRepo {
	return &PlanRepo{nextID: 1, plans: make(map[uint]*subscription.Plan)}
}

func (r *PlanRepo) Create(_ context.Context, plan *subscription.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if plan.ID() == 0 {
		_ = plan.SetID(r.nextID)
		r.nextID++
	}
	r.plans[plan.ID()] = plan
	return nil
}

func (r *PlanRepo) GetByID(_ context.Context, id uint) (*subscription.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.plans[id], nil
}

func (r *PlanRepo) GetBySlug(_ context.Context, slug string) (*subscription.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.Slug() == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (r *PlanRepo) GetDefault(_ context.Context) (*subscription.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.IsDefault() {
			return p, nil
		}
	}
	return nil, nil
}

func (r *PlanRepo) Update(_ context.Context, plan *subscription.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID()] = plan
	return nil
}

func (r *PlanRepo) List(_ context.Context, activeOnly bool) ([]*subscription.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*subscription.Plan
	for _, p := range r.plans {
		if activeOnly && !p.IsActive() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// UsageRepo is an in-memory subscription.UsageRepository keyed by
// subscription ID.
type UsageRepo struct {
	mu       sync.Mutex
	nextID   uint
	counters map[uint]*subscription.UsageCounter

	UpdateErr error
}

func NewUsageRepo() *UsageRepo {
	return &UsageRepo{nextID: 1, counters: make(map[uint]*subscription.UsageCounter)}
}

func (r *UsageRepo) Create(_ context.Context, counter *subscription.UsageCounter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if counter.ID() == 0 {
		_ = counter.SetID(r.nextID)
		r.nextID++
	}
	r.counters[counter.SubscriptionID()] = counter
	return nil
}

func (r *UsageRepo) GetBySubscriptionIDForUpdate(ctx context.Context, subscriptionID uint) (*subscription.UsageCounter, error) {
	return r.GetBySubscriptionID(ctx, subscriptionID)
}

func (r *UsageRepo) GetBySubscriptionID(_ context.Context, subscriptionID uint) (*subscription.UsageCounter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters[subscriptionID], nil
}

func (r *UsageRepo) Update(_ context.Context, counter *subscription.UsageCounter) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[counter.SubscriptionID()] = counter
	return nil
}
