// Package repository provides the GORM-backed implementations of the domain
// repository interfaces. All reads and writes go through the transaction in
// the context when one is present.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/servly-inc/servly/internal/domain/subscription"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/mappers"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/models"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/mapper"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(gdb *gorm.DB) subscription.PlanRepository {
	return &PlanRepository{db: gdb}
}

func (r *PlanRepository) Create(ctx context.Context, plan *subscription.Plan) error {
	model, err := mappers.PlanToModel(plan)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if plan.ID() == 0 {
		if err := plan.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set plan ID: %w", err)
		}
	}
	return nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return mappers.PlanToDomain(&model)
}

func (r *PlanRepository) GetBySlug(ctx context.Context, slug string) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("slug = ?", slug).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan by slug: %w", err)
	}
	return mappers.PlanToDomain(&model)
}

func (r *PlanRepository) GetDefault(ctx context.Context) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("is_default = ?", true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get default plan: %w", err)
	}
	return mappers.PlanToDomain(&model)
}

func (r *PlanRepository) Update(ctx context.Context, plan *subscription.Plan) error {
	model, err := mappers.PlanToModel(plan)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PlanModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":                    model.Name,
			"description":             model.Description,
			"price_monthly":           model.PriceMonthly,
			"price_yearly":            model.PriceYearly,
			"features":                model.Features,
			"max_orders_per_month":    model.MaxOrdersPerMonth,
			"max_proposals_per_order": model.MaxProposalsPerOrder,
			"status":                  model.Status,
			"is_default":              model.IsDefault,
			"version":                 model.Version,
			"updated_at":              model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}
	return nil
}

func (r *PlanRepository) List(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModel{})
	if activeOnly {
		query = query.Where("status = ?", "active")
	}

	var planModels []*models.PlanModel
	if err := query.Order("id").Find(&planModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return mapper.MapSliceWithError(planModels, mappers.PlanToDomain)
}
