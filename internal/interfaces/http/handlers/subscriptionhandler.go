package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servly-inc/servly/internal/application/subscription/usecases"
	"github.com/servly-inc/servly/internal/shared/errors"
	"github.com/servly-inc/servly/internal/shared/logger"
	"github.com/servly-inc/servly/internal/shared/utils"
)

type SubscriptionHandler struct {
	createSubscriptionUC     *usecases.CreateSubscriptionUseCase
	cancelSubscriptionUC     *usecases.CancelSubscriptionUseCase
	suspendSubscriptionUC    *usecases.SuspendSubscriptionUseCase
	reactivateSubscriptionUC *usecases.ReactivateSubscriptionUseCase
	changePlanUC             *usecases.ChangePlanUseCase
	getUsageUC               *usecases.GetUsageUseCase
	logger                   logger.Interface
}

func NewSubscriptionHandler(
	createSubscriptionUC *usecases.CreateSubscriptionUseCase,
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase,
	suspendSubscriptionUC *usecases.SuspendSubscriptionUseCase,
	reactivateSubscriptionUC *usecases.ReactivateSubscriptionUseCase,
	changePlanUC *usecases.ChangePlanUseCase,
	getUsageUC *usecases.GetUsageUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createSubscriptionUC:     createSubscriptionUC,
		cancelSubscriptionUC:     cancelSubscriptionUC,
		suspendSubscriptionUC:    suspendSubscriptionUC,
		reactivateSubscriptionUC: reactivateSubscriptionUC,
		changePlanUC:             changePlanUC,
		getUsageUC:               getUsageUC,
		logger:                   logger.NewLogger(),
	}
}

// CreateSubscription bootstraps the acting user onto the default plan.
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, err := actorID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.createSubscriptionUC.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, subscriptionToResponse(sub), "Subscription created successfully")
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	userID, err := actorID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.cancelSubscriptionUC.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled successfully", subscriptionToResponse(sub))
}

type ChangePlanRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

func (h *SubscriptionHandler) ChangePlan(c *gin.Context) {
	userID, err := actorID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change plan", "error", err)
		respondError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	sub, err := h.changePlanUC.Execute(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan changed successfully", subscriptionToResponse(sub))
}

// SuspendSubscription is an administrative action keyed by subscription ID.
func (h *SubscriptionHandler) SuspendSubscription(c *gin.Context) {
	subscriptionID, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.suspendSubscriptionUC.Execute(c.Request.Context(), subscriptionID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription suspended successfully", subscriptionToResponse(sub))
}

// ReactivateSubscription is an administrative action keyed by subscription ID.
func (h *SubscriptionHandler) ReactivateSubscription(c *gin.Context) {
	subscriptionID, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.reactivateSubscriptionUC.Execute(c.Request.Context(), subscriptionID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription reactivated successfully", subscriptionToResponse(sub))
}

// GetUsage reports the current period's consumption for a subscription.
func (h *SubscriptionHandler) GetUsage(c *gin.Context) {
	subscriptionID, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	usage, err := h.getUsageUC.Execute(c.Request.Context(), subscriptionID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", usageToResponse(usage))
}
