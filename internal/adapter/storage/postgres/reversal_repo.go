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

const reversalColumns = `id, transaction_id, wallet_id, amount, reason, status, requested_by,
	decided_by, decided_at, hold_until, compensating_txn_id, created_at, completed_at`

// ReversalRepo implements ports.ReversalRepository.
type ReversalRepo struct {
	pool Pool
}

// NewReversalRepo creates a new ReversalRepo.
func NewReversalRepo(pool Pool) *ReversalRepo {
	return &ReversalRepo{pool: pool}
}

// Create inserts a new reversal request.
func (r *ReversalRepo) Create(ctx context.Context, rev *domain.TransactionReversal) error {
	query := `INSERT INTO transaction_reversals (` + reversalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		rev.ID, rev.TransactionID, rev.WalletID, rev.Amount, rev.Reason, rev.Status,
		rev.RequestedBy, rev.DecidedBy, rev.DecidedAt, rev.HoldUntil,
		rev.CompensatingTxnID, rev.CreatedAt, rev.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reversal: %w", err)
	}
	return nil
}

// GetByID fetches a reversal by ID (non-locking read).
func (r *ReversalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TransactionReversal, error) {
	query := `SELECT ` + reversalColumns + ` FROM transaction_reversals WHERE id = $1`
	return scanReversal(r.pool.QueryRow(ctx, query, id), "get reversal by id")
}

// GetByIDForUpdate fetches a reversal by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *ReversalRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TransactionReversal, error) {
	query := `SELECT ` + reversalColumns + ` FROM transaction_reversals WHERE id = $1 FOR UPDATE`
	return scanReversal(tx.QueryRow(ctx, query, id), "get reversal for update")
}

// Update persists the reversal's mutable state within a database transaction.
func (r *ReversalRepo) Update(ctx context.Context, tx pgx.Tx, rev *domain.TransactionReversal) error {
	query := `UPDATE transaction_reversals
		SET status = $1, decided_by = $2, decided_at = $3, hold_until = $4,
			compensating_txn_id = $5, completed_at = $6
		WHERE id = $7`

	tag, err := tx.Exec(ctx, query,
		rev.Status, rev.DecidedBy, rev.DecidedAt, rev.HoldUntil,
		rev.CompensatingTxnID, rev.CompletedAt, rev.ID,
	)
	if err != nil {
		return fmt.Errorf("update reversal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reversal not found: %s", rev.ID)
	}
	return nil
}

// ListDue returns APPROVED reversals whose hold elapsed before now.
func (r *ReversalRepo) ListDue(ctx context.Context, now time.Time) ([]domain.TransactionReversal, error) {
	query := `SELECT ` + reversalColumns + ` FROM transaction_reversals
		WHERE status = 'APPROVED' AND hold_until <= $1
		ORDER BY hold_until`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list due reversals: %w", err)
	}
	defer rows.Close()

	var out []domain.TransactionReversal
	for rows.Next() {
		rev, err := scanReversal(rows, "scan due reversal")
		if err != nil {
			return nil, err
		}
		out = append(out, *rev)
	}
	return out, rows.Err()
}

func scanReversal(row pgx.Row, op string) (*domain.TransactionReversal, error) {
	rev := &domain.TransactionReversal{}
	err := row.Scan(
		&rev.ID, &rev.TransactionID, &rev.WalletID, &rev.Amount, &rev.Reason, &rev.Status,
		&rev.RequestedBy, &rev.DecidedBy, &rev.DecidedAt, &rev.HoldUntil,
		&rev.CompensatingTxnID, &rev.CreatedAt, &rev.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rev, nil
}
