package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/servly-inc/servly/internal/application/quota"
	"github.com/servly-inc/servly/internal/domain/marketplace"
	"github.com/servly-inc/servly/internal/domain/shared/lifecycle"
	"github.com/servly-inc/servly/internal/domain/subscription"
	apperrors "github.com/servly-inc/servly/internal/shared/errors"
	"github.com/servly-inc/servly/internal/shared/utils"
)

// respondError translates domain sentinel errors into the transport-facing
// error taxonomy before delegating to the shared response helpers. Unmapped
// errors fall through as internal errors.
func respondError(c *gin.Context, err error) {
	utils.ErrorResponseWithError(c, translateDomainError(err))
}

func translateDomainError(err error) error {
	if apperrors.IsAppError(err) {
		return err
	}

	var exceeded *quota.ExceededError
	if errors.As(err, &exceeded) {
		return apperrors.NewQuotaExceededError("quota exceeded", exceeded.Error())
	}

	var protected *lifecycle.ProtectedReferenceError
	if errors.As(err, &protected) {
		return apperrors.NewConflictError("record is referenced by protected relations", protected.Error())
	}

	switch {
	case errors.Is(err, marketplace.ErrOrderNotFound),
		errors.Is(err, marketplace.ErrProposalNotFound),
		errors.Is(err, subscription.ErrSubscriptionNotFound),
		errors.Is(err, subscription.ErrPlanNotFound),
		errors.Is(err, lifecycle.ErrRecordNotFound):
		return apperrors.NewNotFoundError(err.Error())

	case errors.Is(err, marketplace.ErrNotOrderClient),
		errors.Is(err, marketplace.ErrNotOrderOwner):
		return apperrors.NewForbiddenError(err.Error())

	case errors.Is(err, subscription.ErrSubscriptionExpired),
		errors.Is(err, subscription.ErrSubscriptionSuspended),
		errors.Is(err, subscription.ErrSubscriptionInactive):
		return apperrors.NewForbiddenError(err.Error())

	case errors.Is(err, marketplace.ErrOrderAlreadyDecided),
		errors.Is(err, marketplace.ErrProposalNotAcceptable),
		errors.Is(err, marketplace.ErrInvalidStatusTransition),
		errors.Is(err, marketplace.ErrOrderNotDeletable),
		errors.Is(err, marketplace.ErrProposalNotDeletable),
		errors.Is(err, subscription.ErrInvalidStatusTransition),
		errors.Is(err, subscription.ErrActiveSubscriptionExists),
		errors.Is(err, subscription.ErrPlanInactive),
		errors.Is(err, subscription.ErrNoDefaultPlan),
		errors.Is(err, lifecycle.ErrAlreadyDeleted),
		errors.Is(err, lifecycle.ErrNotDeleted),
		errors.Is(err, lifecycle.ErrImmutableRecord):
		return apperrors.NewConflictError(err.Error())
	}

	return err
}
