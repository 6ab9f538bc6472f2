package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/servly-inc/servly/internal/domain/subscription"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/mappers"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/models"
	"github.com/servly-inc/servly/internal/shared/db"
)

type UsageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(gdb *gorm.DB) subscription.UsageRepository {
	return &UsageRepository{db: gdb}
}

func (r *UsageRepository) Create(ctx context.Context, counter *subscription.UsageCounter) error {
	model := mappers.UsageCounterToModel(counter)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create usage counter: %w", err)
	}

	if counter.ID() == 0 {
		if err := counter.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set usage counter ID: %w", err)
		}
	}
	return nil
}

// GetBySubscriptionIDForUpdate takes a row lock so check-then-increment
// sequences cannot interleave.
func (r *UsageRepository) GetBySubscriptionIDForUpdate(ctx context.Context, subscriptionID uint) (*subscription.UsageCounter, error) {
	return r.get(ctx, subscriptionID, true)
}

func (r *UsageRepository) GetBySubscriptionID(ctx context.Context, subscriptionID uint) (*subscription.UsageCounter, error) {
	return r.get(ctx, subscriptionID, false)
}

func (r *UsageRepository) get(ctx context.Context, subscriptionID uint, forUpdate bool) (*subscription.UsageCounter, error) {
	query := db.GetTxFromContext(ctx, r.db)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.UsageCounterModel
	if err := query.Where("subscription_id = ?", subscriptionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get usage counter: %w", err)
	}
	return mappers.UsageCounterToDomain(&model)
}

func (r *UsageRepository) Update(ctx context.Context, counter *subscription.UsageCounter) error {
	model := mappers.UsageCounterToModel(counter)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UsageCounterModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"period_start":   model.PeriodStart,
			"orders_created": model.OrdersCreated,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update usage counter: %w", result.Error)
	}
	return nil
}
