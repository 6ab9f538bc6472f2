package usecases

import (
	"context"

	"github.com/servly-inc/servly/internal/domain/shared/lifecycle"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// RestoreRecordUseCase brings a soft-deleted record back into the active
// views.
type RestoreRecordUseCase struct {
	store  lifecycle.Store
	logger logger.Interface
}

func NewRestoreRecordUseCase(store lifecycle.Store, log logger.Interface) *RestoreRecordUseCase {
	return &RestoreRecordUseCase{store: store, logger: log}
}

func (uc *RestoreRecordUseCase) Execute(ctx context.Context, kind string, id uint) error {
	k, err := lifecycle.ParseKind(kind)
	if err != nil {
		return err
	}
	if err := uc.store.Restore(ctx, k, id); err != nil {
		uc.logger.Warnw("restore rejected", "error", err, "kind", k, "id", id)
		return err
	}
	uc.logger.Infow("record restored", "kind", k, "id", id)
	return nil
}
