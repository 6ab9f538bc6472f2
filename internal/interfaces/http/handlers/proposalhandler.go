package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/servly-inc/servly/internal/application/marketplace/usecases"
	"github.com/servly-inc/servly/internal/shared/errors"
	"github.com/servly-inc/servly/internal/shared/logger"
	"github.com/servly-inc/servly/internal/shared/utils"
)

type ProposalHandler struct {
	createProposalUC  *usecases.CreateProposalUseCase
	acceptProposalUC  *usecases.AcceptProposalUseCase
	declineProposalUC *usecases.DeclineProposalUseCase
	logger            logger.Interface
}

func NewProposalHandler(
	createProposalUC *usecases.CreateProposalUseCase,
	acceptProposalUC *usecases.AcceptProposalUseCase,
	declineProposalUC *usecases.DeclineProposalUseCase,
) *ProposalHandler {
	return &ProposalHandler{
		createProposalUC:  createProposalUC,
		acceptProposalUC:  acceptProposalUC,
		declineProposalUC: declineProposalUC,
		logger:            logger.NewLogger(),
	}
}

type CreateProposalRequest struct {
	Message       string    `json:"message"`
	Price         int64     `json:"price" binding:"required,min=1"`
	EstimatedDays uint      `json:"estimated_days" binding:"required,min=1"`
	ExpiresAt     time.Time `json:"expires_at" binding:"required"`
}

// CreateProposal submits a proposal on the order named by the :id parameter.
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	providerID, orderID, err := actorAndID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create proposal", "order_id", orderID, "error", err)
		respondError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	cmd := usecases.CreateProposalCommand{
		OrderID:       orderID,
		ProviderID:    providerID,
		Message:       req.Message,
		Price:         req.Price,
		EstimatedDays: req.EstimatedDays,
		ExpiresAt:     req.ExpiresAt,
	}

	proposal, err := h.createProposalUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, proposalToResponse(proposal), "Proposal created successfully")
}

// AcceptProposal settles the parent order on the proposal named by :id.
func (h *ProposalHandler) AcceptProposal(c *gin.Context) {
	clientID, proposalID, err := actorAndID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.acceptProposalUC.Execute(c.Request.Context(), clientID, proposalID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Proposal accepted successfully", nil)
}

func (h *ProposalHandler) DeclineProposal(c *gin.Context) {
	clientID, proposalID, err := actorAndID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.declineProposalUC.Execute(c.Request.Context(), clientID, proposalID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Proposal declined successfully", nil)
}
