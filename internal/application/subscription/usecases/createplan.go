package usecases

import (
	"context"
	"fmt"

	"github.com/servly-inc/servly/internal/domain/subscription"
	vo "github.com/servly-inc/servly/internal/domain/subscription/valueobjects"
	"github.com/servly-inc/servly/internal/shared/db"
	"github.com/servly-inc/servly/internal/shared/errors"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// CreatePlanCommand carries the plan definition. Zero on a limit field means
// unlimited, mirroring the stored representation.
type CreatePlanCommand struct {
	Name                 string
	Slug                 string
	Description          string
	PriceMonthly         uint64
	PriceYearly          uint64
	MaxOrdersPerMonth    uint
	MaxProposalsPerOrder uint
	IsDefault            bool
}

// CreatePlanUseCase registers a new subscription plan. At most one plan may
// be flagged default; flagging a new default unflags the previous one in the
// same transaction.
type CreatePlanUseCase struct {
	planRepo subscription.PlanRepository
	txMgr    db.TxManager
	logger   logger.Interface
}

func NewCreatePlanUseCase(planRepo subscription.PlanRepository, txMgr db.TxManager, log logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{planRepo: planRepo, txMgr: txMgr, logger: log}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*subscription.Plan, error) {
	plan, err := subscription.NewPlan(
		cmd.Name,
		cmd.Slug,
		cmd.Description,
		cmd.PriceMonthly,
		cmd.PriceYearly,
		vo.LimitFromStored(cmd.MaxOrdersPerMonth),
		vo.LimitFromStored(cmd.MaxProposalsPerOrder),
	)
	if err != nil {
		return nil, errors.NewValidationError("invalid plan definition", err.Error())
	}
	if cmd.IsDefault {
		plan.MarkDefault()
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.planRepo.GetBySlug(txCtx, cmd.Slug)
		if err != nil {
			return fmt.Errorf("failed to check plan slug: %w", err)
		}
		if existing != nil {
			return errors.NewConflictError("plan slug already exists", cmd.Slug)
		}

		if cmd.IsDefault {
			current, err := uc.planRepo.GetDefault(txCtx)
			if err != nil {
				return fmt.Errorf("failed to resolve current default plan: %w", err)
			}
			if current != nil {
				current.UnmarkDefault()
				if err := uc.planRepo.Update(txCtx, current); err != nil {
					return fmt.Errorf("failed to unflag previous default plan: %w", err)
				}
			}
		}

		if err := uc.planRepo.Create(txCtx, plan); err != nil {
			return fmt.Errorf("failed to create plan: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create plan", "error", err, "slug", cmd.Slug)
		return nil, err
	}

	uc.logger.Infow("plan created", "plan_id", plan.ID(), "slug", plan.Slug(), "is_default", plan.IsDefault())
	return plan, nil
}
