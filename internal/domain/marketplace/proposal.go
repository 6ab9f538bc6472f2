package marketplace

import (
	"fmt"
	"time"

	vo "github.com/servly-inc/servly/internal/domain/marketplace/valueobjects"
)

// Proposal is a provider's bid against an order. At most one proposal per
// order ever reaches ACCEPTED; the accept transaction declines all PENDING
// siblings in the same atomic unit.
type Proposal struct {
	id            uint
	orderID       uint
	providerID    uint
	message       string
	price         int64
	estimatedDays uint
	expiresAt     time.Time
	status        vo.ProposalStatus
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewProposal validates and builds a PENDING proposal. Price is in cents.
func NewProposal(orderID, providerID uint, message string, price int64, estimatedDays uint, expiresAt, now time.Time) (*Proposal, error) {
	if orderID == 0 {
		return nil, fmt.Errorf("order ID is required")
	}
	if providerID == 0 {
		return nil, fmt.Errorf("provider ID is required")
	}
	if price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}
	if estimatedDays == 0 {
		return nil, fmt.Errorf("estimated days must be positive")
	}
	if !expiresAt.After(now) {
		return nil, fmt.Errorf("expiry must be in the future")
	}

	return &Proposal{
		orderID:       orderID,
		providerID:    providerID,
		message:       message,
		price:         price,
		estimatedDays: estimatedDays,
		expiresAt:     expiresAt,
		status:        vo.ProposalStatusPending,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ProposalReconstructParams carries persisted state back into the aggregate.
type ProposalReconstructParams struct {
	ID            uint
	OrderID       uint
	ProviderID    uint
	Message       string
	Price         int64
	EstimatedDays uint
	ExpiresAt     time.Time
	Status        vo.ProposalStatus
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ReconstructProposal(p ProposalReconstructParams) (*Proposal, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("proposal ID cannot be zero")
	}
	if p.OrderID == 0 {
		return nil, fmt.Errorf("order ID is required")
	}
	if !vo.ValidProposalStatuses[p.Status] {
		return nil, fmt.Errorf("invalid proposal status: %s", p.Status)
	}

	return &Proposal{
		id:            p.ID,
		orderID:       p.OrderID,
		providerID:    p.ProviderID,
		message:       p.Message,
		price:         p.Price,
		estimatedDays: p.EstimatedDays,
		expiresAt:     p.ExpiresAt,
		status:        p.Status,
		version:       p.Version,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}, nil
}

func (p *Proposal) ID() uint                  { return p.id }
func (p *Proposal) OrderID() uint             { return p.orderID }
func (p *Proposal) ProviderID() uint          { return p.providerID }
func (p *Proposal) Message() string           { return p.message }
func (p *Proposal) Price() int64              { return p.price }
func (p *Proposal) EstimatedDays() uint       { return p.estimatedDays }
func (p *Proposal) ExpiresAt() time.Time      { return p.expiresAt }
func (p *Proposal) Status() vo.ProposalStatus { return p.status }
func (p *Proposal) Version() int              { return p.version }
func (p *Proposal) CreatedAt() time.Time      { return p.createdAt }
func (p *Proposal) UpdatedAt() time.Time      { return p.updatedAt }

// SetID sets the proposal ID (only for persistence layer use)
func (p *Proposal) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("proposal ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("proposal ID cannot be zero")
	}
	p.id = id
	return nil
}

// IsExpired reports whether the expiry timestamp has passed, regardless of
// the stored status.
func (p *Proposal) IsExpired(now time.Time) bool {
	return now.After(p.expiresAt)
}

// CanBeAccepted is the pure acceptability decision: PENDING and not past
// expiry.
func (p *Proposal) CanBeAccepted(now time.Time) bool {
	return p.status == vo.ProposalStatusPending && !p.IsExpired(now)
}

// Accept transitions PENDING to ACCEPTED. Callers must have already locked
// the parent order; the aggregate enforces only the local rules.
func (p *Proposal) Accept(now time.Time) error {
	if !p.CanBeAccepted(now) {
		return ErrProposalNotAcceptable
	}
	p.status = vo.ProposalStatusAccepted
	p.updatedAt = now
	p.version++
	return nil
}

// Decline transitions PENDING to DECLINED.
func (p *Proposal) Decline(now time.Time) error {
	if !p.status.CanTransitionTo(vo.ProposalStatusDeclined) {
		return ErrInvalidTransition(p.status.String(), vo.ProposalStatusDeclined.String())
	}
	p.status = vo.ProposalStatusDeclined
	p.updatedAt = now
	p.version++
	return nil
}

// Expire transitions PENDING to EXPIRED once the expiry passed. Idempotent:
// a proposal that already left PENDING is a no-op, not an error.
func (p *Proposal) Expire(now time.Time) (bool, error) {
	if p.status != vo.ProposalStatusPending {
		return false, nil
	}
	if !p.IsExpired(now) {
		return false, fmt.Errorf("proposal has not reached its expiry")
	}
	p.status = vo.ProposalStatusExpired
	p.updatedAt = now
	p.version++
	return true, nil
}

// ExpireIfDue expires the proposal when it is PENDING and past its expiry,
// and reports whether anything changed. Unlike Expire, a proposal that is
// not yet due is an expected no-op rather than an error.
func (p *Proposal) ExpireIfDue(now time.Time) bool {
	if p.status != vo.ProposalStatusPending || !p.IsExpired(now) {
		return false
	}
	p.status = vo.ProposalStatusExpired
	p.updatedAt = now
	p.version++
	return true
}

// CanSoftDelete reports whether logical deletion is allowed. Only PENDING
// proposals may disappear from default views.
func (p *Proposal) CanSoftDelete() bool {
	return p.status == vo.ProposalStatusPending
}
