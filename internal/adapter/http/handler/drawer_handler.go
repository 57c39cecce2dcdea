package handler

import (
	"branch-cash-ledger/internal/adapter/http/dto"
	"branch-cash-ledger/internal/adapter/http/middleware"
	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/pkg/apperror"
	"branch-cash-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DrawerHandler handles teller drawer endpoints.
type DrawerHandler struct {
	drawerLedger ports.TellerDrawerLedger
}

// NewDrawerHandler creates a new DrawerHandler.
func NewDrawerHandler(drawerLedger ports.TellerDrawerLedger) *DrawerHandler {
	return &DrawerHandler{drawerLedger: drawerLedger}
}

// Open handles POST /api/v1/drawers.
func (h *DrawerHandler) Open(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.OpenDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	opening, ok := parseMoney(c, req.OpeningBalance)
	if !ok {
		return
	}
	tellerID, err := uuid.Parse(req.TellerID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid teller id"))
		return
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid branch id"))
		return
	}
	allocationID, err := uuid.Parse(req.AllocationID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid allocation id"))
		return
	}

	drawer, err := h.drawerLedger.Open(c.Request.Context(), ports.OpenDrawerParams{
		TellerID:       tellerID,
		BranchID:       branchID,
		AllocationID:   allocationID,
		OpeningBalance: opening,
		ActorID:        actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toDrawerResponse(drawer))
}

// Get handles GET /api/v1/drawers/:id.
func (h *DrawerHandler) Get(c *gin.Context) {
	drawerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	drawer, err := h.drawerLedger.GetDrawer(c.Request.Context(), drawerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if drawer == nil {
		response.Error(c, apperror.ErrNotFound("drawer"))
		return
	}

	response.OK(c, toDrawerResponse(drawer))
}

// Record handles POST /api/v1/drawers/:id/transactions.
func (h *DrawerHandler) Record(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	drawerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.DrawerTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, ok := parseMoney(c, req.Amount)
	if !ok {
		return
	}

	txn, err := h.drawerLedger.Record(c.Request.Context(), ports.RecordDrawerParams{
		DrawerID:    drawerID,
		Type:        domain.DrawerTransactionType(req.Type),
		Amount:      amount,
		CustomerRef: req.CustomerRef,
		ActorID:     actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toDrawerTransactionResponse(txn))
}

// Close handles POST /api/v1/drawers/:id/close. The counted balance may be
// zero, so it bypasses the positive-amount money rule.
func (h *DrawerHandler) Close(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	drawerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CloseDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	counted, err := decimal.NewFromString(req.ActualCounted)
	if err != nil || counted.IsNegative() || counted.Exponent() < -2 {
		response.Error(c, apperror.Validation("invalid counted balance"))
		return
	}

	record, err := h.drawerLedger.Close(c.Request.Context(), ports.CloseDrawerParams{
		DrawerID:      drawerID,
		ActualCounted: counted,
		Notes:         req.Notes,
		ActorID:       actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toReconciliationResponse(record))
}
