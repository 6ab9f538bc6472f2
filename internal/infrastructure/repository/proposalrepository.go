package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/servly-inc/servly/internal/domain/marketplace"
	vo "github.com/servly-inc/servly/internal/domain/marketplace/valueobjects"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/mappers"
	"github.com/servly-inc/servly/internal/infrastructure/persistence/models"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/mapper"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(gdb *gorm.DB) marketplace.ProposalRepository {
	return &ProposalRepository{db: gdb}
}

func (r *ProposalRepository) Create(ctx context.Context, proposal *marketplace.Proposal) error {
	model := mappers.ProposalToModel(proposal)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}

	if proposal.ID() == 0 {
		if err := proposal.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set proposal ID: %w", err)
		}
	}
	return nil
}

func (r *ProposalRepository) GetByID(ctx context.Context, id uint) (*marketplace.Proposal, error) {
	var model models.ProposalModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	return mappers.ProposalToDomain(&model)
}

func (r *ProposalRepository) Update(ctx context.Context, proposal *marketplace.Proposal) error {
	model := mappers.ProposalToModel(proposal)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProposalModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"message":        model.Message,
			"price":          model.Price,
			"estimated_days": model.EstimatedDays,
			"expires_at":     model.ExpiresAt,
			"status":         model.Status,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update proposal: %w", result.Error)
	}
	return nil
}

func (r *ProposalRepository) ListByOrderID(ctx context.Context, orderID uint) ([]*marketplace.Proposal, error) {
	var proposalModels []*models.ProposalModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&proposalModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return mapper.MapSliceWithError(proposalModels, mappers.ProposalToDomain)
}

// CountActiveByOrderID counts non-deleted proposals under the order. The
// default GORM scope already excludes soft-deleted rows.
func (r *ProposalRepository) CountActiveByOrderID(ctx context.Context, orderID uint) (uint, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProposalModel{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count proposals: %w", err)
	}
	return uint(count), nil
}

// DeclinePendingByOrderID bulk-declines PENDING siblings inside the caller's
// transaction. IDs are selected first so the caller knows exactly which rows
// flipped; the order row lock held by the accept transaction keeps the set
// stable between the two statements.
func (r *ProposalRepository) DeclinePendingByOrderID(ctx context.Context, orderID, exceptProposalID uint, now time.Time) ([]uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var ids []uint
	err := tx.Model(&models.ProposalModel{}).
		Where("order_id = ? AND status = ? AND id <> ?",
			orderID, vo.ProposalStatusPending.String(), exceptProposalID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to select pending proposals: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	result := tx.Model(&models.ProposalModel{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     vo.ProposalStatusDeclined.String(),
			"updated_at": now,
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to decline proposals: %w", result.Error)
	}
	return ids, nil
}

func (r *ProposalRepository) ListExpiryDue(ctx context.Context, cutoff time.Time, limit int) ([]*marketplace.Proposal, error) {
	var proposalModels []*models.ProposalModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND expires_at <= ?", vo.ProposalStatusPending.String(), cutoff).
		Order("expires_at").
		Limit(limit).
		Find(&proposalModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring proposals: %w", err)
	}
	return mapper.MapSliceWithError(proposalModels, mappers.ProposalToDomain)
}

func (r *ProposalRepository) ListByStatus(ctx context.Context, orderID uint, status vo.ProposalStatus) ([]*marketplace.Proposal, error) {
	var proposalModels []*models.ProposalModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("order_id = ? AND status = ?", orderID, status.String()).
		Order("id").
		Find(&proposalModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals by status: %w", err)
	}
	return mapper.MapSliceWithError(proposalModels, mappers.ProposalToDomain)
}
