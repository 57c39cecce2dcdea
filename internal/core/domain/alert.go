package domain

import (
	"time"

	"github.com/google/uuid"
)

// AlertType categorizes a security alert.
type AlertType string

const (
	AlertTypeHighRiskTransaction    AlertType = "HIGH_RISK_TRANSACTION"
	AlertTypeReconciliationVariance AlertType = "RECONCILIATION_VARIANCE"
	AlertTypeLimitBreach            AlertType = "LIMIT_BREACH"
	AlertTypeAllocationAnomaly      AlertType = "ALLOCATION_ANOMALY"
)

// AlertSeverity orders alerts by urgency.
type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "LOW"
	AlertSeverityMedium   AlertSeverity = "MEDIUM"
	AlertSeverityHigh     AlertSeverity = "HIGH"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

// SecurityAlert records a risk-threshold breach raised by the ledger components.
// Alerts are best-effort side effects: raising one never rolls back the ledger
// mutation that triggered it.
type SecurityAlert struct {
	ID              uuid.UUID     `json:"id"`
	Type            AlertType     `json:"type"`
	Severity        AlertSeverity `json:"severity"`
	EntityType      string        `json:"entity_type"`
	EntityID        uuid.UUID     `json:"entity_id"`
	Details         string        `json:"details,omitempty"`
	RiskScore       int           `json:"risk_score"`
	EscalationLevel int           `json:"escalation_level"`
	Resolved        bool          `json:"resolved"`
	ResolvedBy      *uuid.UUID    `json:"resolved_by,omitempty"`
	ResolvedAt      *time.Time    `json:"resolved_at,omitempty"`
	ResolutionNotes *string       `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}
