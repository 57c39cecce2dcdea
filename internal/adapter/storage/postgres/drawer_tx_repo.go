package postgres

import (
	"context"
	"fmt"

	"branch-cash-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DrawerTxRepo implements ports.DrawerTransactionRepository. The log is
// strictly append-only; there is no update path at all.
type DrawerTxRepo struct {
	pool Pool
}

// NewDrawerTxRepo creates a new DrawerTxRepo.
func NewDrawerTxRepo(pool Pool) *DrawerTxRepo {
	return &DrawerTxRepo{pool: pool}
}

// Create inserts a drawer transaction within a database transaction.
func (r *DrawerTxRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.DrawerTransaction) error {
	query := `INSERT INTO drawer_transactions
		(id, drawer_id, type, amount, balance_before, balance_after, customer_ref, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		txn.ID, txn.DrawerID, txn.Type, txn.Amount,
		txn.BalanceBefore, txn.BalanceAfter,
		txn.CustomerRef, txn.PerformedBy, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert drawer transaction: %w", err)
	}
	return nil
}

// ListByDrawer returns the drawer's transactions in commit order.
func (r *DrawerTxRepo) ListByDrawer(ctx context.Context, drawerID uuid.UUID) ([]domain.DrawerTransaction, error) {
	query := `SELECT id, drawer_id, type, amount, balance_before, balance_after, customer_ref, performed_by, created_at
		FROM drawer_transactions WHERE drawer_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, drawerID)
	if err != nil {
		return nil, fmt.Errorf("list drawer transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.DrawerTransaction
	for rows.Next() {
		var t domain.DrawerTransaction
		if err := rows.Scan(
			&t.ID, &t.DrawerID, &t.Type, &t.Amount,
			&t.BalanceBefore, &t.BalanceAfter,
			&t.CustomerRef, &t.PerformedBy, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan drawer transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
