package handler

import (
	"branch-cash-ledger/internal/adapter/http/dto"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuditHandler exposes the read side of the audit trail.
type AuditHandler struct {
	trail ports.AuditTrail
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(trail ports.AuditTrail) *AuditHandler {
	return &AuditHandler{trail: trail}
}

// Query handles GET /api/v1/audit/:entityID.
func (h *AuditHandler) Query(c *gin.Context) {
	entityID, ok := pathID(c, "entityID")
	if !ok {
		return
	}

	entries, err := h.trail.Query(c.Request.Context(), entityID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toAuditEntryResponse(&entries[i]))
	}
	response.OK(c, out)
}
