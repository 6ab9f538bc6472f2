package usecases

import (
	"context"

	"github.com/servly-inc/servly/internal/domain/shared/lifecycle"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// HardDeleteRecordUseCase physically removes a record, cascading into
// dependents or aborting on protected ones per the store's relation policy.
// Immutable kinds (payments, audit logs) are rejected outright.
type HardDeleteRecordUseCase struct {
	store  lifecycle.Store
	logger logger.Interface
}

func NewHardDeleteRecordUseCase(store lifecycle.Store, log logger.Interface) *HardDeleteRecordUseCase {
	return &HardDeleteRecordUseCase{store: store, logger: log}
}

func (uc *HardDeleteRecordUseCase) Execute(ctx context.Context, kind string, id uint) error {
	k, err := lifecycle.ParseKind(kind)
	if err != nil {
		return err
	}
	if err := uc.store.HardDelete(ctx, k, id); err != nil {
		uc.logger.Warnw("hard delete rejected", "error", err, "kind", k, "id", id)
		return err
	}
	uc.logger.Infow("record hard-deleted", "kind", k, "id", id)
	return nil
}
