package handler

import (
	"strconv"

	"branch-cash-ledger/internal/adapter/http/dto"
	"branch-cash-ledger/internal/adapter/http/middleware"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/pkg/apperror"
	"branch-cash-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// AlertHandler handles security alert endpoints.
type AlertHandler struct {
	monitor ports.SecurityAlertMonitor
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(monitor ports.SecurityAlertMonitor) *AlertHandler {
	return &AlertHandler{monitor: monitor}
}

// List handles GET /api/v1/alerts?resolved=true|false.
func (h *AlertHandler) List(c *gin.Context) {
	var resolved *bool
	if s := c.Query("resolved"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			response.Error(c, apperror.Validation("invalid resolved filter"))
			return
		}
		resolved = &v
	}

	alerts, err := h.monitor.List(c.Request.Context(), resolved)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		out = append(out, toAlertResponse(&alerts[i]))
	}
	response.OK(c, out)
}

// Resolve handles POST /api/v1/alerts/:id/resolve.
func (h *AlertHandler) Resolve(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	alertID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ResolveAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	alert, err := h.monitor.Resolve(c.Request.Context(), alertID, actorID, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAlertResponse(alert))
}
