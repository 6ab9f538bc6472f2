package mappers

import (
	"fmt"

	"github.com/servly-inc/servly/internal/domain/marketplace"
	vo "github.com/servly-inc/servly/internal/domain/marketplace/valueobjects"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/models"
)

func OrderToModel(o *marketplace.Order) *models.OrderModel {
	if o == nil {
		return nil
	}
	return &models.OrderModel{
		ID:          o.ID(),
		ClientID:    o.ClientID(),
		ServiceID:   o.ServiceID(),
		Title:       o.Title(),
		Description: o.Description(),
		BudgetMin:   o.BudgetMin(),
		BudgetMax:   o.BudgetMax(),
		Deadline:    o.Deadline(),
		Status:      string(o.Status()),
		Version:     o.Version(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

func OrderToDomain(m *models.OrderModel) (*marketplace.Order, error) {
	if m == nil {
		return nil, nil
	}
	order, err := marketplace.ReconstructOrder(marketplace.OrderReconstructParams{
		ID:          m.ID,
		ClientID:    m.ClientID,
		ServiceID:   m.ServiceID,
		Title:       m.Title,
		Description: m.Description,
		BudgetMin:   m.BudgetMin,
		BudgetMax:   m.BudgetMax,
		Deadline:    m.Deadline,
		Status:      vo.OrderStatus(m.Status),
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct order: %w", err)
	}
	return order, nil
}

func ProposalToModel(p *marketplace.Proposal) *models.ProposalModel {
	if p == nil {
		return nil
	}
	return &models.ProposalModel{
		ID:            p.ID(),
		OrderID:       p.OrderID(),
		ProviderID:    p.ProviderID(),
		Message:       p.Message(),
		Price:         p.Price(),
		EstimatedDays: p.EstimatedDays(),
		ExpiresAt:     p.ExpiresAt(),
		Status:        string(p.Status()),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func ProposalToDomain(m *models.ProposalModel) (*marketplace.Proposal, error) {
	if m == nil {
		return nil, nil
	}
	proposal, err := marketplace.ReconstructProposal(marketplace.ProposalReconstructParams{
		ID:            m.ID,
		OrderID:       m.OrderID,
		ProviderID:    m.ProviderID,
		Message:       m.Message,
		Price:         m.Price,
		EstimatedDays: m.EstimatedDays,
		ExpiresAt:     m.ExpiresAt,
		Status:        vo.ProposalStatus(m.Status),
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct proposal: %w", err)
	}
	return proposal, nil
}
