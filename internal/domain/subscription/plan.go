package subscription

import (
	"fmt"
	"time"

	vo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

// Plan defines the quota ceilings and pricing of a subscription tier. Plans
// referenced by an active subscription are immutable except for deactivation.
type Plan struct {
	id                   uint
	name                 string
	slug                 string
	description          string
	priceMonthly         uint64
	priceYearly          uint64
	features             map[string]interface{}
	maxOrdersPerMonth    vo.Limit
	maxProposalsPerOrder vo.Limit
	status               PlanStatus
	isDefault            bool
	version              int
	createdAt            time.Time
	updatedAt            time.Time
}

func NewPlan(name, slug, description string, priceMonthly, priceYearly uint64,
	maxOrdersPerMonth, maxProposalsPerOrder vo.Limit) (*Plan, error) {

	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if slug == "" {
		return nil, fmt.Errorf("plan slug is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("plan name too long (max 100 characters)")
	}
	if len(slug) > 100 {
		return nil, fmt.Errorf("plan slug too long (max 100 characters)")
	}

	now := time.Now()
	return &Plan{
		name:                 name,
		slug:                 slug,
		description:          description,
		priceMonthly:         priceMonthly,
		priceYearly:          priceYearly,
		features:             make(map[string]interface{}),
		maxOrdersPerMonth:    maxOrdersPerMonth,
		maxProposalsPerOrder: maxProposalsPerOrder,
		status:               PlanStatusActive,
		version:              1,
		createdAt:            now,
		updatedAt:            now,
	}, nil
}

// PlanReconstructParams carries persisted state back into the aggregate.
type PlanReconstructParams struct {
	ID                   uint
	Name                 string
	Slug                 string
	Description          string
	PriceMonthly         uint64
	PriceYearly          uint64
	Features             map[string]interface{}
	MaxOrdersPerMonth    vo.Limit
	MaxProposalsPerOrder vo.Limit
	Status               string
	IsDefault            bool
	Version              int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func ReconstructPlan(p PlanReconstructParams) (*Plan, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}

	planStatus := PlanStatus(p.Status)
	if planStatus != PlanStatusActive && planStatus != PlanStatusInactive {
		return nil, fmt.Errorf("invalid plan status: %s", p.Status)
	}

	features := p.Features
	if features == nil {
		features = make(map[string]interface{})
	}

	return &Plan{
		id:                   p.ID,
		name:                 p.Name,
		slug:                 p.Slug,
		description:          p.Description,
		priceMonthly:         p.PriceMonthly,
		priceYearly:          p.PriceYearly,
		features:             features,
		maxOrdersPerMonth:    p.MaxOrdersPerMonth,
		maxProposalsPerOrder: p.MaxProposalsPerOrder,
		status:               planStatus,
		isDefault:            p.IsDefault,
		version:              p.Version,
		createdAt:            p.CreatedAt,
		updatedAt:            p.UpdatedAt,
	}, nil
}

func (p *Plan) ID() uint                         { return p.id }
func (p *Plan) Name() string                     { return p.name }
func (p *Plan) Slug() string                     { return p.slug }
func (p *Plan) Description() string              { return p.description }
func (p *Plan) PriceMonthly() uint64             { return p.priceMonthly }
func (p *Plan) PriceYearly() uint64              { return p.priceYearly }
func (p *Plan) Features() map[string]interface{} { return p.features }
func (p *Plan) MaxOrdersPerMonth() vo.Limit      { return p.maxOrdersPerMonth }
func (p *Plan) MaxProposalsPerOrder() vo.Limit   { return p.maxProposalsPerOrder }
func (p *Plan) Status() PlanStatus               { return p.status }
func (p *Plan) IsDefault() bool                  { return p.isDefault }
func (p *Plan) Version() int                     { return p.version }
func (p *Plan) CreatedAt() time.Time             { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time             { return p.updatedAt }

// SetID sets the plan ID (only for persistence layer use)
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Plan) IsActive() bool {
	return p.status == PlanStatusActive
}

// MarkDefault flags the plan as the one assigned to new accounts. The
// repository is responsible for keeping at most one default plan.
func (p *Plan) MarkDefault() {
	if p.isDefault {
		return
	}
	p.isDefault = true
	p.updatedAt = time.Now()
	p.version++
}

func (p *Plan) UnmarkDefault() {
	if !p.isDefault {
		return
	}
	p.isDefault = false
	p.updatedAt = time.Now()
	p.version++
}

// Deactivate withdraws the plan from new subscriptions. Existing
// subscriptions keep their reference.
func (p *Plan) Deactivate() error {
	if p.status == PlanStatusInactive {
		return ErrPlanInactive
	}
	if p.isDefault {
		return fmt.Errorf("cannot deactivate the default plan")
	}
	p.status = PlanStatusInactive
	p.updatedAt = time.Now()
	p.version++
	return nil
}

func (p *Plan) Activate() error {
	if p.status == PlanStatusActive {
		return nil
	}
	p.status = PlanStatusActive
	p.updatedAt = time.Now()
	p.version++
	return nil
}
