package handler

import (
	"branch-cash-ledger/internal/adapter/http/dto"
	"branch-cash-ledger/internal/adapter/http/middleware"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/pkg/apperror"
	"branch-cash-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AllocationHandler handles float allocation endpoints.
type AllocationHandler struct {
	allocMgr ports.FloatAllocationManager
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocMgr ports.FloatAllocationManager) *AllocationHandler {
	return &AllocationHandler{allocMgr: allocMgr}
}

// Allocate handles POST /api/v1/allocations.
func (h *AllocationHandler) Allocate(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, ok := parseMoney(c, req.Amount)
	if !ok {
		return
	}
	sourceID, err := uuid.Parse(req.SourceWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid source wallet id"))
		return
	}
	tellerID, err := uuid.Parse(req.TargetTellerID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid target teller id"))
		return
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid branch id"))
		return
	}

	alloc, err := h.allocMgr.Allocate(c.Request.Context(), ports.AllocateParams{
		SourceWalletID: sourceID,
		TargetTellerID: tellerID,
		BranchID:       branchID,
		Amount:         amount,
		Purpose:        req.Purpose,
		RequestedBy:    actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAllocationResponse(alloc))
}

// Get handles GET /api/v1/allocations/:id.
func (h *AllocationHandler) Get(c *gin.Context) {
	allocationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	alloc, err := h.allocMgr.GetAllocation(c.Request.Context(), allocationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if alloc == nil {
		response.Error(c, apperror.ErrAllocationNotFound())
		return
	}

	response.OK(c, toAllocationResponse(alloc))
}

// Approve handles POST /api/v1/allocations/:id/approve.
func (h *AllocationHandler) Approve(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	allocationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	alloc, err := h.allocMgr.Approve(c.Request.Context(), allocationID, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAllocationResponse(alloc))
}

// Reject handles POST /api/v1/allocations/:id/reject.
func (h *AllocationHandler) Reject(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	allocationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	alloc, err := h.allocMgr.Reject(c.Request.Context(), allocationID, actorID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAllocationResponse(alloc))
}

// Recall handles POST /api/v1/allocations/:id/recall.
func (h *AllocationHandler) Recall(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	allocationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.RecallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	alloc, err := h.allocMgr.Recall(c.Request.Context(), allocationID, actorID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAllocationResponse(alloc))
}
