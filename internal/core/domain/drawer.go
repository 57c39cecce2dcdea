package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DrawerStatus represents the lifecycle state of a teller drawer.
type DrawerStatus string

const (
	DrawerStatusActive DrawerStatus = "ACTIVE"
	DrawerStatusClosed DrawerStatus = "CLOSED"
)

// TellerDrawer is a teller's working cash ledger for one shift. Invariant:
// CurrentBalance == OpeningBalance + sum(inflows) - sum(outflows) over its
// transaction log. Closing produces exactly one ReconciliationRecord.
type TellerDrawer struct {
	ID                   uuid.UUID       `json:"id"`
	TellerID             uuid.UUID       `json:"teller_id"`
	BranchID             uuid.UUID       `json:"branch_id"`
	AllocationID         uuid.UUID       `json:"allocation_id"`
	OpeningBalance       decimal.Decimal `json:"opening_balance"`
	CurrentBalance       decimal.Decimal `json:"current_balance"`
	FloatAmount          decimal.Decimal `json:"float_amount"`
	TotalCashIn          decimal.Decimal `json:"total_cash_in"`
	TotalCashOut         decimal.Decimal `json:"total_cash_out"`
	Status               DrawerStatus    `json:"status"`
	LastReconciliationID *uuid.UUID      `json:"last_reconciliation_id,omitempty"`
	OpenedAt             time.Time       `json:"opened_at"`
	ClosedAt             *time.Time      `json:"closed_at,omitempty"`
}

// IsOpen returns true while the drawer accepts transactions.
func (d *TellerDrawer) IsOpen() bool {
	return d.Status == DrawerStatusActive
}

// DrawerTransactionType represents the kind of teller cash movement.
type DrawerTransactionType string

const (
	DrawerTransactionTypeCashIn         DrawerTransactionType = "CASH_IN"
	DrawerTransactionTypeCashOut        DrawerTransactionType = "CASH_OUT"
	DrawerTransactionTypeDeposit        DrawerTransactionType = "DEPOSIT"
	DrawerTransactionTypeWithdrawal     DrawerTransactionType = "WITHDRAWAL"
	DrawerTransactionTypeReconciliation DrawerTransactionType = "RECONCILIATION"
)

// IsOutflow reports whether the type reduces the drawer balance.
// CASH_OUT additionally consumes the teller's float allocation.
func (t DrawerTransactionType) IsOutflow() bool {
	return t == DrawerTransactionTypeCashOut || t == DrawerTransactionTypeWithdrawal
}

// IsInflow reports whether the type increases the drawer balance.
func (t DrawerTransactionType) IsInflow() bool {
	return t == DrawerTransactionTypeCashIn || t == DrawerTransactionTypeDeposit
}

// DrawerTransaction is an immutable entry in a drawer's cash log.
type DrawerTransaction struct {
	ID            uuid.UUID             `json:"id"`
	DrawerID      uuid.UUID             `json:"drawer_id"`
	Type          DrawerTransactionType `json:"type"`
	Amount        decimal.Decimal       `json:"amount"`
	BalanceBefore decimal.Decimal       `json:"balance_before"`
	BalanceAfter  decimal.Decimal       `json:"balance_after"`
	CustomerRef   *string               `json:"customer_ref,omitempty"`
	PerformedBy   uuid.UUID             `json:"performed_by"`
	CreatedAt     time.Time             `json:"created_at"`
}

// SignedAmount returns the amount with the sign of its balance effect.
// RECONCILIATION entries are neutral markers and contribute zero.
func (t *DrawerTransaction) SignedAmount() decimal.Decimal {
	switch {
	case t.Type.IsOutflow():
		return t.Amount.Neg()
	case t.Type.IsInflow():
		return t.Amount
	default:
		return decimal.Zero
	}
}
