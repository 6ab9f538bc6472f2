package usecases

import (
	"context"
	"fmt"

	"github.com/servly-inc/servly/internal/application/quota"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// GetUsageUseCase reports the subscription's consumption against its plan
// limits per resource kind.
type GetUsageUseCase struct {
	tracker *quota.Tracker
	logger  logger.Interface
}

func NewGetUsageUseCase(tracker *quota.Tracker, log logger.Interface) *GetUsageUseCase {
	return &GetUsageUseCase{tracker: tracker, logger: log}
}

func (uc *GetUsageUseCase) Execute(ctx context.Context, subscriptionID uint) (*quota.Usage, error) {
	usage, err := uc.tracker.GetUsage(ctx, subscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get usage", "error", err, "subscription_id", subscriptionID)
		return nil, fmt.Errorf("failed to get usage: %w", err)
	}
	return usage, nil
}
