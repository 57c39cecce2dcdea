package handler

import (
	"branch-cash-ledger/internal/adapter/http/dto"
	"branch-cash-ledger/internal/adapter/http/middleware"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/pkg/apperror"
	"branch-cash-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReconciliationHandler handles supervisor sign-off on flagged reconciliations.
type ReconciliationHandler struct {
	engine ports.ReconciliationEngine
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(engine ports.ReconciliationEngine) *ReconciliationHandler {
	return &ReconciliationHandler{engine: engine}
}

// ApproveVariance handles POST /api/v1/reconciliations/:id/approve.
func (h *ReconciliationHandler) ApproveVariance(c *gin.Context) {
	supervisorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ApproveVarianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	record, err := h.engine.ApproveVariance(c.Request.Context(), recordID, supervisorID, req.PIN, req.OverrideReason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toReconciliationResponse(record))
}
