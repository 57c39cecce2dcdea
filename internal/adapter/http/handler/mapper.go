package handler

import (
	"time"

	"branch-cash-ledger/internal/adapter/http/dto"
	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/pkg/apperror"
	"branch-cash-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// pathID parses a UUID path parameter; on failure it writes the error
// response and returns false.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// parseMoney converts a request amount already vetted by the "money" binding.
func parseMoney(c *gin.Context, s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		response.Error(c, apperror.Validation("invalid amount"))
		return decimal.Zero, false
	}
	return d, true
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optMoney(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func optTS(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := ts(*t)
	return &s
}

func optUUID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toWalletResponse(w *domain.MasterWallet) dto.WalletResponse {
	actors := make([]string, 0, len(w.AuthorizedActors))
	for _, a := range w.AuthorizedActors {
		actors = append(actors, a.String())
	}
	return dto.WalletResponse{
		ID:                   w.ID.String(),
		Name:                 w.Name,
		Purpose:              string(w.Purpose),
		Currency:             w.Currency,
		SecurityLevel:        string(w.SecurityLevel),
		Status:               string(w.Status),
		MaxSingleTransaction: money(w.MaxSingleTransaction),
		DailyLimit:           money(w.DailyLimit),
		MonthlyLimit:         money(w.MonthlyLimit),
		AuthorizedActors:     actors,
		CreatedAt:            ts(w.CreatedAt),
	}
}

func toBalancesResponse(b *domain.WalletBalances) dto.BalancesResponse {
	return dto.BalancesResponse{
		Balance:   money(b.Balance),
		Available: money(b.Available),
		Reserve:   money(b.Reserve),
	}
}

func toTransactionResponse(t *domain.WalletTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                   t.ID.String(),
		WalletID:             t.WalletID.String(),
		Type:                 string(t.Type),
		Amount:               money(t.Amount),
		BalanceBefore:        optMoney(t.BalanceBefore),
		BalanceAfter:         optMoney(t.BalanceAfter),
		CounterpartyWalletID: optUUID(t.CounterpartyWalletID),
		Status:               string(t.Status),
		RiskScore:            t.RiskScore,
		ApprovalRequired:     t.ApprovalRequired,
		Description:          t.Description,
		Reference:            t.Reference,
		CreatedAt:            ts(t.CreatedAt),
		ProcessedAt:          optTS(t.ProcessedAt),
	}
}

func toReversalResponse(r *domain.TransactionReversal) dto.ReversalResponse {
	return dto.ReversalResponse{
		ID:                r.ID.String(),
		TransactionID:     r.TransactionID.String(),
		WalletID:          r.WalletID.String(),
		Amount:            money(r.Amount),
		Reason:            r.Reason,
		Status:            string(r.Status),
		HoldUntil:         optTS(r.HoldUntil),
		CompensatingTxnID: optUUID(r.CompensatingTxnID),
		CreatedAt:         ts(r.CreatedAt),
	}
}

func toAllocationResponse(a *domain.FloatAllocation) dto.AllocationResponse {
	return dto.AllocationResponse{
		ID:              a.ID.String(),
		SourceWalletID:  a.SourceWalletID.String(),
		TargetTellerID:  a.TargetTellerID.String(),
		BranchID:        a.BranchID.String(),
		Amount:          money(a.Amount),
		RemainingAmount: money(a.RemainingAmount),
		ActualUsage:     money(a.ActualUsage),
		Purpose:         a.Purpose,
		Status:          string(a.Status),
		ExpiresAt:       ts(a.ExpiresAt),
		CreatedAt:       ts(a.CreatedAt),
	}
}

func toDrawerResponse(d *domain.TellerDrawer) dto.DrawerResponse {
	return dto.DrawerResponse{
		ID:                   d.ID.String(),
		TellerID:             d.TellerID.String(),
		BranchID:             d.BranchID.String(),
		AllocationID:         d.AllocationID.String(),
		OpeningBalance:       money(d.OpeningBalance),
		CurrentBalance:       money(d.CurrentBalance),
		TotalCashIn:          money(d.TotalCashIn),
		TotalCashOut:         money(d.TotalCashOut),
		Status:               string(d.Status),
		LastReconciliationID: optUUID(d.LastReconciliationID),
		OpenedAt:             ts(d.OpenedAt),
		ClosedAt:             optTS(d.ClosedAt),
	}
}

func toDrawerTransactionResponse(t *domain.DrawerTransaction) dto.DrawerTransactionResponse {
	return dto.DrawerTransactionResponse{
		ID:            t.ID.String(),
		DrawerID:      t.DrawerID.String(),
		Type:          string(t.Type),
		Amount:        money(t.Amount),
		BalanceBefore: money(t.BalanceBefore),
		BalanceAfter:  money(t.BalanceAfter),
		CustomerRef:   t.CustomerRef,
		CreatedAt:     ts(t.CreatedAt),
	}
}

func toReconciliationResponse(r *domain.ReconciliationRecord) dto.ReconciliationResponse {
	return dto.ReconciliationResponse{
		ID:                         r.ID.String(),
		SubjectType:                string(r.SubjectType),
		SubjectID:                  r.SubjectID.String(),
		ExpectedBalance:            money(r.ExpectedBalance),
		ActualBalance:              money(r.ActualBalance),
		Difference:                 money(r.Difference),
		Classification:             string(r.Classification),
		Notes:                      r.Notes,
		RequiresSupervisorApproval: r.RequiresSupervisorApproval,
		ApprovedBy:                 optUUID(r.ApprovedBy),
		CreatedAt:                  ts(r.CreatedAt),
	}
}

func toAlertResponse(a *domain.SecurityAlert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:              a.ID.String(),
		Type:            string(a.Type),
		Severity:        string(a.Severity),
		EntityType:      a.EntityType,
		EntityID:        a.EntityID.String(),
		Details:         a.Details,
		RiskScore:       a.RiskScore,
		EscalationLevel: a.EscalationLevel,
		Resolved:        a.Resolved,
		ResolutionNotes: a.ResolutionNotes,
		CreatedAt:       ts(a.CreatedAt),
	}
}

func toAuditEntryResponse(e *domain.AuditEntry) dto.AuditEntryResponse {
	return dto.AuditEntryResponse{
		ID:         e.ID.String(),
		ActorID:    e.ActorID.String(),
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID.String(),
		OldValue:   e.OldValue,
		NewValue:   e.NewValue,
		EntryHash:  e.EntryHash,
		CreatedAt:  ts(e.CreatedAt),
	}
}
