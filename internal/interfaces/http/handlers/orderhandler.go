package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/servly-inc/servly/internal/application/marketplace/usecases"
	"github.com/servly-inc/servly/internal/shared/errors"
	"github.com/servly-inc/servly/internal/shared/logger"
	"github.com/servly-inc/servly/internal/shared/utils"
)

type OrderHandler struct {
	createOrderUC   *usecases.CreateOrderUseCase
	cancelOrderUC   *usecases.CancelOrderUseCase
	startOrderUC    *usecases.StartOrderUseCase
	completeOrderUC *usecases.CompleteOrderUseCase
	logger          logger.Interface
}

func NewOrderHandler(
	createOrderUC *usecases.CreateOrderUseCase,
	cancelOrderUC *usecases.CancelOrderUseCase,
	startOrderUC *usecases.StartOrderUseCase,
	completeOrderUC *usecases.CompleteOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUC:   createOrderUC,
		cancelOrderUC:   cancelOrderUC,
		startOrderUC:    startOrderUC,
		completeOrderUC: completeOrderUC,
		logger:          logger.NewLogger(),
	}
}

type CreateOrderRequest struct {
	ServiceID   uint      `json:"service_id" binding:"required"`
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description"`
	BudgetMin   int64     `json:"budget_min" binding:"required,min=1"`
	BudgetMax   int64     `json:"budget_max" binding:"required,min=1"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	clientID, err := actorID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create order", "error", err)
		respondError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	cmd := usecases.CreateOrderCommand{
		ClientID:    clientID,
		ServiceID:   req.ServiceID,
		Title:       req.Title,
		Description: req.Description,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Deadline:    req.Deadline,
	}

	order, err := h.createOrderUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, orderToResponse(order), "Order created successfully")
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	clientID, orderID, err := actorAndID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.cancelOrderUC.Execute(c.Request.Context(), clientID, orderID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Order cancelled successfully", nil)
}

func (h *OrderHandler) StartOrder(c *gin.Context) {
	clientID, orderID, err := actorAndID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.startOrderUC.Execute(c.Request.Context(), clientID, orderID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Order started successfully", nil)
}

func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	clientID, orderID, err := actorAndID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.completeOrderUC.Execute(c.Request.Context(), clientID, orderID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Order completed successfully", nil)
}

// actorID reads the authenticated user identity set by upstream middleware.
func actorID(c *gin.Context) (uint, error) {
	id := c.GetUint("user_id")
	if id == 0 {
		return 0, errors.NewForbiddenError("user identity is required")
	}
	return id, nil
}

// actorAndID combines actor resolution with the :id path parameter.
func actorAndID(c *gin.Context) (uint, uint, error) {
	actor, err := actorID(c)
	if err != nil {
		return 0, 0, err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return 0, 0, err
	}
	return actor, id, nil
}

func parseIDParam(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	if idStr == "" {
		return 0, errors.NewValidationError("ID is required")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid ID format")
	}

	return uint(id), nil
}
