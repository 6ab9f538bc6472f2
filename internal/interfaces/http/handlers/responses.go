package handlers

import (
	"time"

	"github.com/servly-inc/servly/internal/application/quota"
	"github.com/servly-inc/servly/internal/domain/marketplace"
	"github.com/servly-inc/servly/internal/domain/subscription"
)

type OrderResponse struct {
	ID          uint      `json:"id"`
	ClientID    uint      `json:"client_id"`
	ServiceID   uint      `json:"service_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	BudgetMin   int64     `json:"budget_min"`
	BudgetMax   int64     `json:"budget_max"`
	Deadline    time.Time `json:"deadline"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func orderToResponse(o *marketplace.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID(),
		ClientID:    o.ClientID(),
		ServiceID:   o.ServiceID(),
		Title:       o.Title(),
		Description: o.Description(),
		BudgetMin:   o.BudgetMin(),
		BudgetMax:   o.BudgetMax(),
		Deadline:    o.Deadline(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

type ProposalResponse struct {
	ID            uint      `json:"id"`
	OrderID       uint      `json:"order_id"`
	ProviderID    uint      `json:"provider_id"`
	Message       string    `json:"message,omitempty"`
	Price         int64     `json:"price"`
	EstimatedDays uint      `json:"estimated_days"`
	ExpiresAt     time.Time `json:"expires_at"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func proposalToResponse(p *marketplace.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:            p.ID(),
		OrderID:       p.OrderID(),
		ProviderID:    p.ProviderID(),
		Message:       p.Message(),
		Price:         p.Price(),
		EstimatedDays: p.EstimatedDays(),
		ExpiresAt:     p.ExpiresAt(),
		Status:        p.Status().String(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

type PlanResponse struct {
	ID                   uint                   `json:"id"`
	Name                 string                 `json:"name"`
	Slug                 string                 `json:"slug"`
	Description          string                 `json:"description,omitempty"`
	PriceMonthly         uint64                 `json:"price_monthly"`
	PriceYearly          uint64                 `json:"price_yearly"`
	Features             map[string]interface{} `json:"features,omitempty"`
	MaxOrdersPerMonth    uint                   `json:"max_orders_per_month"`
	MaxProposalsPerOrder uint                   `json:"max_proposals_per_order"`
	Status               string                 `json:"status"`
	IsDefault            bool                   `json:"is_default"`
	CreatedAt            time.Time              `json:"created_at"`
}

func planToResponse(p *subscription.Plan) PlanResponse {
	return PlanResponse{
		ID:                   p.ID(),
		Name:                 p.Name(),
		Slug:                 p.Slug(),
		Description:          p.Description(),
		PriceMonthly:         p.PriceMonthly(),
		PriceYearly:          p.PriceYearly(),
		Features:             p.Features(),
		MaxOrdersPerMonth:    p.MaxOrdersPerMonth().Stored(),
		MaxProposalsPerOrder: p.MaxProposalsPerOrder().Stored(),
		Status:               string(p.Status()),
		IsDefault:            p.IsDefault(),
		CreatedAt:            p.CreatedAt(),
	}
}

type SubscriptionResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	PlanID      uint       `json:"plan_id"`
	Status      string     `json:"status"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
	AutoRenew   bool       `json:"auto_renew"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

func subscriptionToResponse(s *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:          s.ID(),
		UserID:      s.UserID(),
		PlanID:      s.PlanID(),
		Status:      s.Status().String(),
		PeriodStart: s.PeriodStart(),
		PeriodEnd:   s.PeriodEnd(),
		AutoRenew:   s.AutoRenew(),
		CancelledAt: s.CancelledAt(),
	}
}

type UsageResponse struct {
	OrdersUsed             uint      `json:"orders_used"`
	OrdersLimit            uint      `json:"orders_limit"`
	OrdersUnlimited        bool      `json:"orders_unlimited"`
	ProposalsPerOrderLimit uint      `json:"proposals_per_order_limit"`
	ProposalsUnlimited     bool      `json:"proposals_unlimited"`
	PeriodStart            time.Time `json:"period_start"`
	PeriodEnd              time.Time `json:"period_end"`
}

func usageToResponse(u *quota.Usage) UsageResponse {
	return UsageResponse{
		OrdersUsed:             u.OrdersUsed,
		OrdersLimit:            u.OrdersLimit,
		OrdersUnlimited:        u.OrdersUnlimited,
		ProposalsPerOrderLimit: u.ProposalsPerOrderLimit,
		ProposalsUnlimited:     u.ProposalsUnlimited,
		PeriodStart:            u.PeriodStart,
		PeriodEnd:              u.PeriodEnd,
	}
}
