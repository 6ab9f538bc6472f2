package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servly-inc/servly/internal/application/marketplace/usecases"
	"github.com/servly-inc/servly/internal/domain/shared/lifecycle"
	"github.com/servly-inc/servly/internal/shared/errors"
	"github.com/servly-inc/servly/internal/shared/logger"
	"github.com/servly-inc/servly/internal/shared/utils"
)

// LifecycleHandler exposes administrative soft-delete, restore and purge
// operations over every registered entity kind.
type LifecycleHandler struct {
	softDeleteUC *usecases.SoftDeleteRecordUseCase
	restoreUC    *usecases.RestoreRecordUseCase
	hardDeleteUC *usecases.HardDeleteRecordUseCase
	logger       logger.Interface
}

func NewLifecycleHandler(
	softDeleteUC *usecases.SoftDeleteRecordUseCase,
	restoreUC *usecases.RestoreRecordUseCase,
	hardDeleteUC *usecases.HardDeleteRecordUseCase,
) *LifecycleHandler {
	return &LifecycleHandler{
		softDeleteUC: softDeleteUC,
		restoreUC:    restoreUC,
		hardDeleteUC: hardDeleteUC,
		logger:       logger.NewLogger(),
	}
}

func (h *LifecycleHandler) SoftDelete(c *gin.Context) {
	kind, id, err := parseKindAndID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.softDeleteUC.Execute(c.Request.Context(), kind, id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Record deleted successfully", nil)
}

func (h *LifecycleHandler) Restore(c *gin.Context) {
	kind, id, err := parseKindAndID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.restoreUC.Execute(c.Request.Context(), kind, id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Record restored successfully", nil)
}

func (h *LifecycleHandler) HardDelete(c *gin.Context) {
	kind, id, err := parseKindAndID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.hardDeleteUC.Execute(c.Request.Context(), kind, id); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func parseKindAndID(c *gin.Context) (string, uint, error) {
	kindStr := c.Param("kind")
	if _, err := lifecycle.ParseKind(kindStr); err != nil {
		return "", 0, errors.NewValidationError("unknown entity kind", kindStr)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return "", 0, err
	}
	return kindStr, id, nil
}
