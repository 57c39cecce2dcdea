package postgres

import (
	"context"
	"errors"
	"fmt"

	"branch-cash-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const alertColumns = `id, type, severity, entity_type, entity_id, details, risk_score, escalation_level,
	resolved, resolved_by, resolved_at, resolution_notes, created_at`

// AlertRepo implements ports.AlertRepository.
type AlertRepo struct {
	pool Pool
}

// NewAlertRepo creates a new AlertRepo.
func NewAlertRepo(pool Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

// Create inserts a new security alert.
func (r *AlertRepo) Create(ctx context.Context, alert *domain.SecurityAlert) error {
	query := `INSERT INTO security_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		alert.ID, alert.Type, alert.Severity, alert.EntityType, alert.EntityID,
		alert.Details, alert.RiskScore, alert.EscalationLevel,
		alert.Resolved, alert.ResolvedBy, alert.ResolvedAt, alert.ResolutionNotes,
		alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// GetByID fetches an alert by ID.
func (r *AlertRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SecurityAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM security_alerts WHERE id = $1`

	a := &domain.SecurityAlert{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Type, &a.Severity, &a.EntityType, &a.EntityID,
		&a.Details, &a.RiskScore, &a.EscalationLevel,
		&a.Resolved, &a.ResolvedBy, &a.ResolvedAt, &a.ResolutionNotes,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert by id: %w", err)
	}
	return a, nil
}

// Update persists resolution fields.
func (r *AlertRepo) Update(ctx context.Context, alert *domain.SecurityAlert) error {
	query := `UPDATE security_alerts
		SET resolved = $1, resolved_by = $2, resolved_at = $3, resolution_notes = $4
		WHERE id = $5`

	tag, err := r.pool.Exec(ctx, query,
		alert.Resolved, alert.ResolvedBy, alert.ResolvedAt, alert.ResolutionNotes, alert.ID,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("alert not found: %s", alert.ID)
	}
	return nil
}

// List returns alerts newest first, optionally filtered by resolution state.
func (r *AlertRepo) List(ctx context.Context, resolved *bool) ([]domain.SecurityAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM security_alerts`
	args := []any{}
	if resolved != nil {
		query += ` WHERE resolved = $1`
		args = append(args, *resolved)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var out []domain.SecurityAlert
	for rows.Next() {
		var a domain.SecurityAlert
		if err := rows.Scan(
			&a.ID, &a.Type, &a.Severity, &a.EntityType, &a.EntityID,
			&a.Details, &a.RiskScore, &a.EscalationLevel,
			&a.Resolved, &a.ResolvedBy, &a.ResolvedAt, &a.ResolutionNotes,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
