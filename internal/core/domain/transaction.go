package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletTransactionType represents the kind of pool-level money movement.
type WalletTransactionType string

const (
	WalletTransactionTypeCredit   WalletTransactionType = "CREDIT"
	WalletTransactionTypeDebit    WalletTransactionType = "DEBIT"
	WalletTransactionTypeTransfer WalletTransactionType = "TRANSFER"
)

// IsOutflow reports whether the type moves funds out of the wallet.
func (t WalletTransactionType) IsOutflow() bool {
	return t == WalletTransactionTypeDebit || t == WalletTransactionTypeTransfer
}

// WalletTransactionStatus represents the lifecycle state of a wallet transaction.
type WalletTransactionStatus string

const (
	WalletTransactionStatusPending   WalletTransactionStatus = "PENDING"
	WalletTransactionStatusCompleted WalletTransactionStatus = "COMPLETED"
	WalletTransactionStatusFailed    WalletTransactionStatus = "FAILED"
	WalletTransactionStatusReversed  WalletTransactionStatus = "REVERSED"
)

// WalletTransaction is an immutable ledger entry for a master-wallet movement.
// BalanceBefore/BalanceAfter are written only when the balance actually moves:
// a PENDING transaction awaiting approval carries null balances, and the row is
// always persisted in the same database transaction as the wallet balance update.
type WalletTransaction struct {
	ID                   uuid.UUID               `json:"id"`
	WalletID             uuid.UUID               `json:"wallet_id"`
	Type                 WalletTransactionType   `json:"type"`
	Amount               decimal.Decimal         `json:"amount"`
	BalanceBefore        decimal.NullDecimal     `json:"balance_before,omitempty"`
	BalanceAfter         decimal.NullDecimal     `json:"balance_after,omitempty"`
	CounterpartyWalletID *uuid.UUID              `json:"counterparty_wallet_id,omitempty"`
	Status               WalletTransactionStatus `json:"status"`
	RiskScore            int                     `json:"risk_score"`
	ApprovalRequired     bool                    `json:"approval_required"`
	ApprovedBy           *uuid.UUID              `json:"approved_by,omitempty"`
	ApprovedAt           *time.Time              `json:"approved_at,omitempty"`
	Description          string                  `json:"description,omitempty"`
	Reference            string                  `json:"reference"`
	OriginalID           *uuid.UUID              `json:"original_id,omitempty"` // set on compensating entries
	PerformedBy          uuid.UUID               `json:"performed_by"`
	CreatedAt            time.Time               `json:"created_at"`
	ProcessedAt          *time.Time              `json:"processed_at,omitempty"`
}

// IsTerminal returns true if the transaction is in a final state.
func (t *WalletTransaction) IsTerminal() bool {
	return t.Status == WalletTransactionStatusCompleted ||
		t.Status == WalletTransactionStatusFailed ||
		t.Status == WalletTransactionStatusReversed
}

// IsReversible returns true if a compensating reversal may be requested.
func (t *WalletTransaction) IsReversible() bool {
	return t.Status == WalletTransactionStatusCompleted && t.OriginalID == nil
}

// SignedAmount returns the amount with the sign of its balance effect.
func (t *WalletTransaction) SignedAmount() decimal.Decimal {
	if t.Type.IsOutflow() {
		return t.Amount.Neg()
	}
	return t.Amount
}
