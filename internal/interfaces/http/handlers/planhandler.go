package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/servly-inc/servly/internal/application/subscription/usecases"
	"github.com/servly-inc/servly/internal/shared/errors"
	"github.com/servly-inc/servly/internal/shared/logger"
	"github.com/servly-inc/servly/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC *usecases.CreatePlanUseCase
	logger       logger.Interface
}

func NewPlanHandler(createPlanUC *usecases.CreatePlanUseCase) *PlanHandler {
	return &PlanHandler{
		createPlanUC: createPlanUC,
		logger:       logger.NewLogger(),
	}
}

type CreatePlanRequest struct {
	Name                 string `json:"name" binding:"required,max=100"`
	Slug                 string `json:"slug" binding:"required,max=100,slug"`
	Description          string `json:"description,omitempty"`
	PriceMonthly         uint64 `json:"price_monthly"`
	PriceYearly          uint64 `json:"price_yearly"`
	MaxOrdersPerMonth    uint   `json:"max_orders_per_month"`
	MaxProposalsPerOrder uint   `json:"max_proposals_per_order"`
	IsDefault            bool   `json:"is_default"`
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		respondError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	cmd := usecases.CreatePlanCommand{
		Name:                 req.Name,
		Slug:                 req.Slug,
		Description:          req.Description,
		PriceMonthly:         req.PriceMonthly,
		PriceYearly:          req.PriceYearly,
		MaxOrdersPerMonth:    req.MaxOrdersPerMonth,
		MaxProposalsPerOrder: req.MaxProposalsPerOrder,
		IsDefault:            req.IsDefault,
	}

	plan, err := h.createPlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, planToResponse(plan), "Plan created successfully")
}
