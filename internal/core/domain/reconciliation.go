package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationSubjectType identifies what a reconciliation run covers.
type ReconciliationSubjectType string

const (
	ReconciliationSubjectWallet ReconciliationSubjectType = "WALLET"
	ReconciliationSubjectDrawer ReconciliationSubjectType = "DRAWER"
)

// VarianceClassification is the signed-difference verdict of a reconciliation.
type VarianceClassification string

const (
	VarianceBalanced VarianceClassification = "BALANCED"
	VarianceOver     VarianceClassification = "OVER"
	VarianceShort    VarianceClassification = "SHORT"
)

// ClassifyVariance maps difference = actual - expected onto a classification.
func ClassifyVariance(difference decimal.Decimal) VarianceClassification {
	switch difference.Sign() {
	case 1:
		return VarianceOver
	case -1:
		return VarianceShort
	default:
		return VarianceBalanced
	}
}

// ReconciliationRecord compares a log-derived expected balance against a
// physically counted actual balance for one period. ExpectedBalance is always
// recomputed from the immutable transaction log, never from cached counters,
// so re-running a reconciliation yields the same record.
type ReconciliationRecord struct {
	ID                         uuid.UUID                 `json:"id"`
	SubjectType                ReconciliationSubjectType `json:"subject_type"`
	SubjectID                  uuid.UUID                 `json:"subject_id"`
	PeriodStart                time.Time                 `json:"period_start"`
	PeriodEnd                  time.Time                 `json:"period_end"`
	ExpectedBalance            decimal.Decimal           `json:"expected_balance"`
	ActualBalance              decimal.Decimal           `json:"actual_balance"`
	Difference                 decimal.Decimal           `json:"difference"` // actual - expected
	Classification             VarianceClassification    `json:"classification"`
	Notes                      string                    `json:"notes,omitempty"`
	PerformedBy                uuid.UUID                 `json:"performed_by"`
	RequiresSupervisorApproval bool                      `json:"requires_supervisor_approval"`
	ApprovedBy                 *uuid.UUID                `json:"approved_by,omitempty"`
	ApprovedAt                 *time.Time                `json:"approved_at,omitempty"`
	OverrideReason             *string                   `json:"override_reason,omitempty"`
	CreatedAt                  time.Time                 `json:"created_at"`
}

// Blocking reports whether the record still blocks its subject from a fresh
// open/active state.
func (r *ReconciliationRecord) Blocking() bool {
	return r.RequiresSupervisorApproval && r.ApprovedBy == nil
}
