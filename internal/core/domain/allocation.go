package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationStatus represents the lifecycle state of a float allocation.
type AllocationStatus string

const (
	AllocationStatusPendingApproval AllocationStatus = "PENDING_APPROVAL"
	AllocationStatusActive          AllocationStatus = "ACTIVE"
	AllocationStatusExpired         AllocationStatus = "EXPIRED"
	AllocationStatusRecalled        AllocationStatus = "RECALLED"
	AllocationStatusDepleted        AllocationStatus = "DEPLETED"
	AllocationStatusRejected        AllocationStatus = "REJECTED"
)

// FloatAllocation is a bounded, expiring slice of a master wallet's funds
// assigned to a teller. Invariant at all times:
// RemainingAmount + ActualUsage == Amount, RemainingAmount >= 0.
type FloatAllocation struct {
	ID              uuid.UUID        `json:"id"`
	SourceWalletID  uuid.UUID        `json:"source_wallet_id"`
	TargetTellerID  uuid.UUID        `json:"target_teller_id"`
	BranchID        uuid.UUID        `json:"branch_id"`
	Amount          decimal.Decimal  `json:"amount"`
	RemainingAmount decimal.Decimal  `json:"remaining_amount"`
	ActualUsage     decimal.Decimal  `json:"actual_usage"`
	Purpose         string           `json:"purpose"`
	Status          AllocationStatus `json:"status"`
	ExpiresAt       time.Time        `json:"expires_at"`
	RequestedBy     uuid.UUID        `json:"requested_by"`
	DecidedBy       *uuid.UUID       `json:"decided_by,omitempty"`
	DecidedAt       *time.Time       `json:"decided_at,omitempty"`
	DebitTxnID      *uuid.UUID       `json:"debit_txn_id,omitempty"`  // wallet DEBIT that funded it
	RefundTxnID     *uuid.UUID       `json:"refund_txn_id,omitempty"` // wallet CREDIT posted on recall/expiry
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Consumable reports whether the allocation can fund a cash-out at the given time.
func (a *FloatAllocation) Consumable(now time.Time) bool {
	return a.Status == AllocationStatusActive && now.Before(a.ExpiresAt)
}

// Terminal returns true once no further consumption or refund can occur.
func (a *FloatAllocation) Terminal() bool {
	switch a.Status {
	case AllocationStatusExpired, AllocationStatusRecalled, AllocationStatusDepleted, AllocationStatusRejected:
		return true
	}
	return false
}
