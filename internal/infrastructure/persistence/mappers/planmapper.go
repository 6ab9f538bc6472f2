// Package mappers converts between domain aggregates and persistence models.
// Domain objects never leak GORM concerns; models never leak invariants.
package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/servly-inc/servly/internal/domain/subscription"
	vo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/models"
)

func PlanToModel(p *subscription.Plan) (*models.PlanModel, error) {
	if p == nil {
		return nil, nil
	}

	features, err := json.Marshal(p.Features())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan features: %w", err)
	}

	return &models.PlanModel{
		ID:                   p.ID(),
		Name:                 p.Name(),
		Slug:                 p.Slug(),
		Description:          p.Description(),
		PriceMonthly:         p.PriceMonthly(),
		PriceYearly:          p.PriceYearly(),
		Features:             features,
		MaxOrdersPerMonth:    p.MaxOrdersPerMonth().Stored(),
		MaxProposalsPerOrder: p.MaxProposalsPerOrder().Stored(),
		Status:               string(p.Status()),
		IsDefault:            p.IsDefault(),
		Version:              p.Version(),
		CreatedAt:            p.CreatedAt(),
		UpdatedAt:            p.UpdatedAt(),
	}, nil
}

func PlanToDomain(m *models.PlanModel) (*subscription.Plan, error) {
	if m == nil {
		return nil, nil
	}

	var features map[string]interface{}
	if len(m.Features) > 0 {
		if err := json.Unmarshal(m.Features, &features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan features: %w", err)
		}
	}

	plan, err := subscription.ReconstructPlan(subscription.PlanReconstructParams{
		ID:                   m.ID,
		Name:                 m.Name,
		Slug:                 m.Slug,
		Description:          m.Description,
		PriceMonthly:         m.PriceMonthly,
		PriceYearly:          m.PriceYearly,
		Features:             features,
		MaxOrdersPerMonth:    vo.LimitFromStored(m.MaxOrdersPerMonth),
		MaxProposalsPerOrder: vo.LimitFromStored(m.MaxProposalsPerOrder),
		Status:               m.Status,
		IsDefault:            m.IsDefault,
		Version:              m.Version,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan: %w", err)
	}
	return plan, nil
}
