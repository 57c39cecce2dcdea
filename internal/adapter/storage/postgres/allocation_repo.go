package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"branch-cash-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const allocationColumns = `id, source_wallet_id, target_teller_id, branch_id, amount, remaining_amount,
	actual_usage, purpose, status, expires_at, requested_by, decided_by, decided_at,
	debit_txn_id, refund_txn_id, created_at, updated_at`

// AllocationRepo implements ports.AllocationRepository.
type AllocationRepo struct {
	pool Pool
}

// NewAllocationRepo creates a new AllocationRepo.
func NewAllocationRepo(pool Pool) *AllocationRepo {
	return &AllocationRepo{pool: pool}
}

// Create inserts an allocation row within a database transaction.
func (r *AllocationRepo) Create(ctx context.Context, tx pgx.Tx, alloc *domain.FloatAllocation) error {
	query := `INSERT INTO float_allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := tx.Exec(ctx, query,
		alloc.ID, alloc.SourceWalletID, alloc.TargetTellerID, alloc.BranchID,
		alloc.Amount, alloc.RemainingAmount, alloc.ActualUsage,
		alloc.Purpose, alloc.Status, alloc.ExpiresAt,
		alloc.RequestedBy, alloc.DecidedBy, alloc.DecidedAt,
		alloc.DebitTxnID, alloc.RefundTxnID, alloc.CreatedAt, alloc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert allocation: %w", err)
	}
	return nil
}

// GetByID fetches an allocation by ID (non-locking read).
func (r *AllocationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FloatAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM float_allocations WHERE id = $1`
	return scanAllocation(r.pool.QueryRow(ctx, query, id), "get allocation by id")
}

// GetByIDForUpdate fetches an allocation by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *AllocationRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.FloatAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM float_allocations WHERE id = $1 FOR UPDATE`
	return scanAllocation(tx.QueryRow(ctx, query, id), "get allocation for update")
}

// Update persists the allocation's mutable state within a database transaction.
func (r *AllocationRepo) Update(ctx context.Context, tx pgx.Tx, alloc *domain.FloatAllocation) error {
	query := `UPDATE float_allocations
		SET remaining_amount = $1, actual_usage = $2, status = $3, expires_at = $4,
			decided_by = $5, decided_at = $6, debit_txn_id = $7, refund_txn_id = $8, updated_at = $9
		WHERE id = $10`

	tag, err := tx.Exec(ctx, query,
		alloc.RemainingAmount, alloc.ActualUsage, alloc.Status, alloc.ExpiresAt,
		alloc.DecidedBy, alloc.DecidedAt, alloc.DebitTxnID, alloc.RefundTxnID,
		alloc.UpdatedAt, alloc.ID,
	)
	if err != nil {
		return fmt.Errorf("update allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("allocation not found: %s", alloc.ID)
	}
	return nil
}

// ListExpired returns ACTIVE allocations whose expiry passed before now.
func (r *AllocationRepo) ListExpired(ctx context.Context, now time.Time) ([]domain.FloatAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM float_allocations
		WHERE status = 'ACTIVE' AND expires_at <= $1
		ORDER BY expires_at`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list expired allocations: %w", err)
	}
	defer rows.Close()

	var out []domain.FloatAllocation
	for rows.Next() {
		alloc, err := scanAllocation(rows, "scan expired allocation")
		if err != nil {
			return nil, err
		}
		out = append(out, *alloc)
	}
	return out, rows.Err()
}

func scanAllocation(row pgx.Row, op string) (*domain.FloatAllocation, error) {
	a := &domain.FloatAllocation{}
	err := row.Scan(
		&a.ID, &a.SourceWalletID, &a.TargetTellerID, &a.BranchID,
		&a.Amount, &a.RemainingAmount, &a.ActualUsage,
		&a.Purpose, &a.Status, &a.ExpiresAt,
		&a.RequestedBy, &a.DecidedBy, &a.DecidedAt,
		&a.DebitTxnID, &a.RefundTxnID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}
