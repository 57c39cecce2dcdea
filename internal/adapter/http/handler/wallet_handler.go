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

// WalletHandler handles master wallet and wallet transaction endpoints.
type WalletHandler struct {
	ledger ports.WalletLedger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledger ports.WalletLedger) *WalletHandler {
	return &WalletHandler{ledger: ledger}
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	opening, ok := parseMoney(c, req.OpeningBalance)
	if !ok {
		return
	}
	maxSingle, ok := parseMoney(c, req.MaxSingleTransaction)
	if !ok {
		return
	}
	daily, ok := parseMoney(c, req.DailyLimit)
	if !ok {
		return
	}
	monthly, ok := parseMoney(c, req.MonthlyLimit)
	if !ok {
		return
	}
	reserve := decimal.Zero
	if req.ReserveBalance != nil {
		if reserve, ok = parseMoney(c, *req.ReserveBalance); !ok {
			return
		}
	}

	actors := make([]uuid.UUID, 0, len(req.AuthorizedActors))
	for _, s := range req.AuthorizedActors {
		id, err := uuid.Parse(s)
		if err != nil {
			response.Error(c, apperror.Validation("invalid authorized actor id"))
			return
		}
		actors = append(actors, id)
	}

	wallet, err := h.ledger.CreateWallet(c.Request.Context(), ports.CreateWalletParams{
		Name:                 req.Name,
		Purpose:              domain.WalletPurpose(req.Purpose),
		Currency:             req.Currency,
		OpeningBalance:       opening,
		ReserveBalance:       reserve,
		SecurityLevel:        domain.SecurityLevel(req.SecurityLevel),
		MaxSingleTransaction: maxSingle,
		DailyLimit:           daily,
		MonthlyLimit:         monthly,
		AuthorizedActors:     actors,
		ActorID:              actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWalletResponse(wallet))
}

// Get handles GET /api/v1/wallets/:id.
func (h *WalletHandler) Get(c *gin.Context) {
	walletID, ok := pathID(c, "id")
	if !ok {
		return
	}

	wallet, err := h.ledger.GetWallet(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if wallet == nil {
		response.Error(c, apperror.ErrNotFound("wallet"))
		return
	}

	response.OK(c, toWalletResponse(wallet))
}

// Balances handles GET /api/v1/wallets/:id/balances.
func (h *WalletHandler) Balances(c *gin.Context) {
	walletID, ok := pathID(c, "id")
	if !ok {
		return
	}

	balances, err := h.ledger.Balances(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toBalancesResponse(balances))
}

// Close handles POST /api/v1/wallets/:id/close.
func (h *WalletHandler) Close(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	walletID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.ledger.CloseWallet(c.Request.Context(), walletID, actorID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"status": "CLOSED"})
}

// Apply handles POST /api/v1/wallets/:id/transactions.
func (h *WalletHandler) Apply(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	walletID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ApplyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, ok := parseMoney(c, req.Amount)
	if !ok {
		return
	}

	var counterparty *uuid.UUID
	if req.CounterpartyWalletID != nil {
		id, err := uuid.Parse(*req.CounterpartyWalletID)
		if err != nil {
			response.Error(c, apperror.Validation("invalid counterparty wallet id"))
			return
		}
		counterparty = &id
	}

	txn, err := h.ledger.Apply(c.Request.Context(), ports.ApplyParams{
		WalletID:             walletID,
		Type:                 domain.WalletTransactionType(req.Type),
		Amount:               amount,
		CounterpartyWalletID: counterparty,
		Description:          req.Description,
		Reference:            req.Reference,
		ActorID:              actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// Approve handles POST /api/v1/wallet-transactions/:id/approve.
func (h *WalletHandler) Approve(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	txnID, ok := pathID(c, "id")
	if !ok {
		return
	}

	txn, err := h.ledger.Approve(c.Request.Context(), txnID, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTransactionResponse(txn))
}

// Reject handles POST /api/v1/wallet-transactions/:id/reject.
func (h *WalletHandler) Reject(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	txnID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	txn, err := h.ledger.Reject(c.Request.Context(), txnID, actorID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTransactionResponse(txn))
}

// RequestReversal handles POST /api/v1/wallet-transactions/:id/reversals.
func (h *WalletHandler) RequestReversal(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	txnID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ReversalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	reversal, err := h.ledger.RequestReversal(c.Request.Context(), txnID, actorID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toReversalResponse(reversal))
}

// ApproveReversal handles POST /api/v1/reversals/:id/approve.
func (h *WalletHandler) ApproveReversal(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	reversalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reversal, err := h.ledger.ApproveReversal(c.Request.Context(), reversalID, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toReversalResponse(reversal))
}

// RejectReversal handles POST /api/v1/reversals/:id/reject.
func (h *WalletHandler) RejectReversal(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	reversalID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	reversal, err := h.ledger.RejectReversal(c.Request.Context(), reversalID, actorID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toReversalResponse(reversal))
}
