package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/servly-inc/servly/internal/domain/marketplace"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/mappers"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/models"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/mapper"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(gdb *gorm.DB) marketplace.OrderRepository {
	return &OrderRepository{db: gdb}
}

func (r *OrderRepository) Create(ctx context.Context, order *marketplace.Order) error {
	model := mappers.OrderToModel(order)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if order.ID() == 0 {
		if err := order.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set order ID: %w", err)
		}
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*marketplace.Order, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate locks the order row. The proposal accept transaction
// serializes on this lock.
func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, id uint) (*marketplace.Order, error) {
	return r.getByID(ctx, id, true)
}

func (r *OrderRepository) getByID(ctx context.Context, id uint, forUpdate bool) (*marketplace.Order, error) {
	query := db.GetTxFromContext(ctx, r.db)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.OrderModel
	if err := query.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return mappers.OrderToDomain(&model)
}

func (r *OrderRepository) Update(ctx context.Context, order *marketplace.Order) error {
	model := mappers.OrderToModel(order)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":       model.Title,
			"description": model.Description,
			"budget_min":  model.BudgetMin,
			"budget_max":  model.BudgetMax,
			"deadline":    model.Deadline,
			"status":      model.Status,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}
	return nil
}

func (r *OrderRepository) ListByClientID(ctx context.Context, clientID uint) ([]*marketplace.Order, error) {
	var orderModels []*models.OrderModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("id").
		Find(&orderModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return mapper.MapSliceWithError(orderModels, mappers.OrderToDomain)
}
