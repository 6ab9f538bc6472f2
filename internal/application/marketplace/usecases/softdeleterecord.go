package usecases

import (
	"context"

	"github.com/servly-inc/servly/internal/domain/shared/lifecycle"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// SoftDeleteRecordUseCase hides a record from the active views. The row and
// its relations stay untouched; state rules (a non-PENDING order, for one)
// can still forbid the delete.
type SoftDeleteRecordUseCase struct {
	store  lifecycle.Store
	logger logger.Interface
}

func NewSoftDeleteRecordUseCase(store lifecycle.Store, log logger.Interface) *SoftDeleteRecordUseCase {
	return &SoftDeleteRecordUseCase{store: store, logger: log}
}

func (uc *SoftDeleteRecordUseCase) Execute(ctx context.Context, kind string, id uint) error {
	k, err := lifecycle.ParseKind(kind)
	if err != nil {
		return err
	}
	if err := uc.store.SoftDelete(ctx, k, id); err != nil {
		uc.logger.Warnw("soft delete rejected", "error", err, "kind", k, "id", id)
		return err
	}
	uc.logger.Infow("record soft-deleted", "kind", k, "id", id)
	return nil
}
