package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReversalStatus follows the reversal state machine:
// PENDING -> APPROVED | REJECTED; APPROVED -> COMPLETED once the fraud
// cooling-off hold elapses. REJECTED is terminal.
type ReversalStatus string

const (
	ReversalStatusPending   ReversalStatus = "PENDING"
	ReversalStatusApproved  ReversalStatus = "APPROVED"
	ReversalStatusRejected  ReversalStatus = "REJECTED"
	ReversalStatusCompleted ReversalStatus = "COMPLETED"
)

// TransactionReversal models post-commit cancellation of a wallet transaction.
// The original row is never edited; completion posts a new compensating
// WalletTransaction referencing it.
type TransactionReversal struct {
	ID                uuid.UUID       `json:"id"`
	TransactionID     uuid.UUID       `json:"transaction_id"`
	WalletID          uuid.UUID       `json:"wallet_id"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason"`
	Status            ReversalStatus  `json:"status"`
	RequestedBy       uuid.UUID       `json:"requested_by"`
	DecidedBy         *uuid.UUID      `json:"decided_by,omitempty"`
	DecidedAt         *time.Time      `json:"decided_at,omitempty"`
	HoldUntil         *time.Time      `json:"hold_until,omitempty"` // set on approval
	CompensatingTxnID *uuid.UUID      `json:"compensating_txn_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
}

// CanDecide returns true while the reversal still awaits approval or rejection.
func (r *TransactionReversal) CanDecide() bool {
	return r.Status == ReversalStatusPending
}

// DueForCompletion reports whether the approved reversal's hold has elapsed.
func (r *TransactionReversal) DueForCompletion(now time.Time) bool {
	return r.Status == ReversalStatusApproved && r.HoldUntil != nil && !now.Before(*r.HoldUntil)
}
