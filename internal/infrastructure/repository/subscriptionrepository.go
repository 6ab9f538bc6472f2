package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/servly-inc/servly/internal/domain/subscription"
	vo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/mappers"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/models"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/mapper"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(gdb *gorm.DB) subscription.SubscriptionRepository {
	return &SubscriptionRepository{db: gdb}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	model := mappers.SubscriptionToModel(sub)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if sub.ID() == 0 {
		if err := sub.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set subscription ID: %w", err)
		}
	}
	return nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate takes a SELECT ... FOR UPDATE row lock. Quota checks and
// period rollovers serialize on it.
func (r *SubscriptionRepository) GetByIDForUpdate(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return r.getByID(ctx, id, true)
}

func (r *SubscriptionRepository) getByID(ctx context.Context, id uint, forUpdate bool) (*subscription.Subscription, error) {
	query := db.GetTxFromContext(ctx, r.db)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.SubscriptionModel
	if err := query.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return mappers.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription by user: %w", err)
	}
	return mappers.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	model := mappers.SubscriptionToModel(sub)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"plan_id":      model.PlanID,
			"status":       model.Status,
			"period_start": model.PeriodStart,
			"period_end":   model.PeriodEnd,
			"auto_renew":   model.AutoRenew,
			"cancelled_at": model.CancelledAt,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	return nil
}

func (r *SubscriptionRepository) ListExpiryDue(ctx context.Context, cutoff time.Time, limit int) ([]*subscription.Subscription, error) {
	var subModels []*models.SubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("period_end <= ?", cutoff).
		Where("(status = ? AND auto_renew = ?) OR status = ?",
			vo.StatusActive.String(), false, vo.StatusCancelled.String()).
		Order("period_end").
		Limit(limit).
		Find(&subModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring subscriptions: %w", err)
	}
	return mapper.MapSliceWithError(subModels, mappers.SubscriptionToDomain)
}
