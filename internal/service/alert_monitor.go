package service

import (
	"context"
	"fmt"
	"time"

	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/internal/observability"
	"branch-cash-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AlertMonitorService implements ports.SecurityAlertMonitor. Raising an alert
// is a side effect of some ledger mutation and must never roll it back, so
// every failure path here degrades to a log line.
type AlertMonitorService struct {
	alertRepo ports.AlertRepository
	notifier  ports.NotificationDispatcher
	metrics   *observability.Metrics
	log       zerolog.Logger
}

// NewAlertMonitorService creates a new AlertMonitorService.
func NewAlertMonitorService(
	alertRepo ports.AlertRepository,
	notifier ports.NotificationDispatcher,
	metrics *observability.Metrics,
	log zerolog.Logger,
) ports.SecurityAlertMonitor {
	return &AlertMonitorService{
		alertRepo: alertRepo,
		notifier:  notifier,
		metrics:   metrics,
		log:       log,
	}
}

// Raise persists a new alert and forwards it to the notification dispatcher.
// Dispatch runs detached so a slow webhook never blocks the caller.
func (s *AlertMonitorService) Raise(ctx context.Context, p ports.RaiseAlertParams) (*domain.SecurityAlert, error) {
	alert := &domain.SecurityAlert{
		ID:              uuid.New(),
		Type:            p.Type,
		Severity:        p.Severity,
		EntityType:      p.EntityType,
		EntityID:        p.EntityID,
		Details:         p.Details,
		RiskScore:       p.RiskScore,
		EscalationLevel: escalationLevel(p.Severity),
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create security alert: %w", err))
	}

	s.metrics.AlertsTotal.WithLabelValues(string(alert.Type), string(alert.Severity)).Inc()
	s.log.Warn().
		Str("alert_id", alert.ID.String()).
		Str("type", string(alert.Type)).
		Str("severity", string(alert.Severity)).
		Str("entity_id", alert.EntityID.String()).
		Int("risk_score", alert.RiskScore).
		Msg("security alert raised")

	if s.notifier != nil {
		go func(a domain.SecurityAlert) {
			// Delivery failures are already logged by the dispatcher.
			_ = s.notifier.Dispatch(context.Background(), &a)
		}(*alert)
	}

	return alert, nil
}

// Resolve marks an alert handled.
func (s *AlertMonitorService) Resolve(ctx context.Context, alertID, actorID uuid.UUID, notes string) (*domain.SecurityAlert, error) {
	alert, err := s.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get alert: %w", err))
	}
	if alert == nil {
		return nil, apperror.ErrNotFound("Security alert")
	}
	if alert.Resolved {
		return alert, nil
	}

	now := time.Now().UTC()
	alert.Resolved = true
	alert.ResolvedBy = &actorID
	alert.ResolvedAt = &now
	if notes != "" {
		alert.ResolutionNotes = &notes
	}

	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("resolve alert: %w", err))
	}

	s.log.Info().
		Str("alert_id", alert.ID.String()).
		Str("resolved_by", actorID.String()).
		Msg("security alert resolved")
	return alert, nil
}

// List returns alerts, optionally filtered by resolution state.
func (s *AlertMonitorService) List(ctx context.Context, resolved *bool) ([]domain.SecurityAlert, error) {
	alerts, err := s.alertRepo.List(ctx, resolved)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list alerts: %w", err))
	}
	return alerts, nil
}

// ScoreTransaction rates an amount against the wallet's historical average,
// clamped to [0, 100]. A wallet with no history scores on a flat baseline;
// elevated security levels shift the whole scale upward.
func (s *AlertMonitorService) ScoreTransaction(amount, historicalAvg decimal.Decimal, level domain.SecurityLevel) int {
	var score int
	if historicalAvg.IsZero() {
		score = 30
	} else {
		// 1x the average scores 20, 5x scores 100.
		ratio, _ := amount.Div(historicalAvg).Float64()
		score = int(ratio * 20)
	}

	switch level {
	case domain.SecurityLevelHigh:
		score += 10
	case domain.SecurityLevelCritical:
		score += 25
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func escalationLevel(sev domain.AlertSeverity) int {
	switch sev {
	case domain.AlertSeverityCritical:
		return 4
	case domain.AlertSeverityHigh:
		return 3
	case domain.AlertSeverityMedium:
		return 2
	default:
		return 1
	}
}

// SeverityForScore maps a 0-100 risk score to an alert severity band.
func SeverityForScore(score int) domain.AlertSeverity {
	switch {
	case score >= 90:
		return domain.AlertSeverityCritical
	case score >= 75:
		return domain.AlertSeverityHigh
	case score >= 50:
		return domain.AlertSeverityMedium
	default:
		return domain.AlertSeverityLow
	}
}
