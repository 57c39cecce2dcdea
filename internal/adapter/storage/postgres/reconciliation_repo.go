package postgres

import (
	"context"
	"errors"
	"fmt"

	"branch-cash-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reconciliationColumns = `id, subject_type, subject_id, period_start, period_end, expected_balance,
	actual_balance, difference, classification, notes, performed_by, requires_supervisor_approval,
	approved_by, approved_at, override_reason, created_at`

// ReconciliationRepo implements ports.ReconciliationRepository.
type ReconciliationRepo struct {
	pool Pool
}

// NewReconciliationRepo creates a new ReconciliationRepo.
func NewReconciliationRepo(pool Pool) *ReconciliationRepo {
	return &ReconciliationRepo{pool: pool}
}

// Create inserts a reconciliation record within a database transaction.
func (r *ReconciliationRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.ReconciliationRecord) error {
	query := `INSERT INTO reconciliation_records (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := tx.Exec(ctx, query,
		rec.ID, rec.SubjectType, rec.SubjectID, rec.PeriodStart, rec.PeriodEnd,
		rec.ExpectedBalance, rec.ActualBalance, rec.Difference, rec.Classification,
		rec.Notes, rec.PerformedBy, rec.RequiresSupervisorApproval,
		rec.ApprovedBy, rec.ApprovedAt, rec.OverrideReason, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reconciliation record: %w", err)
	}
	return nil
}

// GetByID fetches a reconciliation record by ID.
func (r *ReconciliationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRecord, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliation_records WHERE id = $1`
	return scanReconciliation(r.pool.QueryRow(ctx, query, id), "get reconciliation by id")
}

// Update persists supervisor sign-off fields.
func (r *ReconciliationRepo) Update(ctx context.Context, rec *domain.ReconciliationRecord) error {
	query := `UPDATE reconciliation_records
		SET approved_by = $1, approved_at = $2, override_reason = $3
		WHERE id = $4`

	tag, err := r.pool.Exec(ctx, query, rec.ApprovedBy, rec.ApprovedAt, rec.OverrideReason, rec.ID)
	if err != nil {
		return fmt.Errorf("update reconciliation record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reconciliation record not found: %s", rec.ID)
	}
	return nil
}

// GetLatestForSubject fetches the subject's most recent record, or nil.
func (r *ReconciliationRepo) GetLatestForSubject(ctx context.Context, subjectID uuid.UUID) (*domain.ReconciliationRecord, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliation_records
		WHERE subject_id = $1 ORDER BY created_at DESC LIMIT 1`
	return scanReconciliation(r.pool.QueryRow(ctx, query, subjectID), "get latest reconciliation")
}

func scanReconciliation(row pgx.Row, op string) (*domain.ReconciliationRecord, error) {
	rec := &domain.ReconciliationRecord{}
	err := row.Scan(
		&rec.ID, &rec.SubjectType, &rec.SubjectID, &rec.PeriodStart, &rec.PeriodEnd,
		&rec.ExpectedBalance, &rec.ActualBalance, &rec.Difference, &rec.Classification,
		&rec.Notes, &rec.PerformedBy, &rec.RequiresSupervisorApproval,
		&rec.ApprovedBy, &rec.ApprovedAt, &rec.OverrideReason, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}
