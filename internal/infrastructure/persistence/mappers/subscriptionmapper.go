package mappers

import (
	"fmt"

	"github.com/servly-inc/servly/internal/domain/subscription"
	vo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/models"
)

func SubscriptionToModel(s *subscription.Subscription) *models.SubscriptionModel {
	if s == nil {
		return nil
	}
	return &models.SubscriptionModel{
		ID:          s.ID(),
		UserID:      s.UserID(),
		PlanID:      s.PlanID(),
		Status:      s.Status().String(),
		PeriodStart: s.PeriodStart(),
		PeriodEnd:   s.PeriodEnd(),
		AutoRenew:   s.AutoRenew(),
		CancelledAt: s.CancelledAt(),
		Version:     s.Version(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func SubscriptionToDomain(m *models.SubscriptionModel) (*subscription.Subscription, error) {
	if m == nil {
		return nil, nil
	}
	sub, err := subscription.ReconstructSubscription(subscription.SubscriptionReconstructParams{
		ID:          m.ID,
		UserID:      m.UserID,
		PlanID:      m.PlanID,
		Status:      vo.SubscriptionStatus(m.Status),
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		AutoRenew:   m.AutoRenew,
		CancelledAt: m.CancelledAt,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription: %w", err)
	}
	return sub, nil
}

func UsageCounterToModel(c *subscription.UsageCounter) *models.UsageCounterModel {
	if c == nil {
		return nil
	}
	return &models.UsageCounterModel{
		ID:             c.ID(),
		SubscriptionID: c.SubscriptionID(),
		PeriodStart:    c.PeriodStart(),
		OrdersCreated:  c.OrdersCreated(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

func UsageCounterToDomain(m *models.UsageCounterModel) (*subscription.UsageCounter, error) {
	if m == nil {
		return nil, nil
	}
	counter, err := subscription.ReconstructUsageCounter(m.ID, m.SubscriptionID, m.PeriodStart, m.OrdersCreated, m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct usage counter: %w", err)
	}
	return counter, nil
}
