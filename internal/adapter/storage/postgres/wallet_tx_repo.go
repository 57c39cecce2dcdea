package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"branch-cash-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const walletTxColumns = `id, wallet_id, type, amount, balance_before, balance_after, counterparty_wallet_id,
	status, risk_score, approval_required, approved_by, approved_at, description, reference, original_id,
	performed_by, created_at, processed_at`

// WalletTxRepo implements ports.WalletTransactionRepository. Rows are
// append-only: only status and the approval/processing columns of a PENDING
// row may change, and only once.
type WalletTxRepo struct {
	pool Pool
}

// NewWalletTxRepo creates a new WalletTxRepo.
func NewWalletTxRepo(pool Pool) *WalletTxRepo {
	return &WalletTxRepo{pool: pool}
}

// Create inserts a transaction row within a database transaction.
func (r *WalletTxRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.WalletTransaction) error {
	query := `INSERT INTO wallet_transactions (` + walletTxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := tx.Exec(ctx, query,
		txn.ID, txn.WalletID, txn.Type, txn.Amount,
		txn.BalanceBefore, txn.BalanceAfter, txn.CounterpartyWalletID,
		txn.Status, txn.RiskScore, txn.ApprovalRequired, txn.ApprovedBy, txn.ApprovedAt,
		txn.Description, txn.Reference, txn.OriginalID,
		txn.PerformedBy, txn.CreatedAt, txn.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by ID (non-locking read).
func (r *WalletTxRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WalletTransaction, error) {
	query := `SELECT ` + walletTxColumns + ` FROM wallet_transactions WHERE id = $1`
	return scanWalletTx(r.pool.QueryRow(ctx, query, id), "get transaction by id")
}

// GetByIDForUpdate fetches a transaction by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletTxRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletTransaction, error) {
	query := `SELECT ` + walletTxColumns + ` FROM wallet_transactions WHERE id = $1 FOR UPDATE`
	return scanWalletTx(tx.QueryRow(ctx, query, id), "get transaction for update")
}

// GetByReference fetches a transaction by its wallet-scoped reference.
func (r *WalletTxRepo) GetByReference(ctx context.Context, walletID uuid.UUID, reference string) (*domain.WalletTransaction, error) {
	query := `SELECT ` + walletTxColumns + ` FROM wallet_transactions WHERE wallet_id = $1 AND reference = $2`
	return scanWalletTx(r.pool.QueryRow(ctx, query, walletID, reference), "get transaction by reference")
}

// Complete persists the terminal outcome of a pending transaction.
func (r *WalletTxRepo) Complete(ctx context.Context, tx pgx.Tx, txn *domain.WalletTransaction) error {
	query := `UPDATE wallet_transactions
		SET status = $1, balance_before = $2, balance_after = $3,
			approved_by = $4, approved_at = $5, processed_at = $6
		WHERE id = $7`

	tag, err := tx.Exec(ctx, query,
		txn.Status, txn.BalanceBefore, txn.BalanceAfter,
		txn.ApprovedBy, txn.ApprovedAt, txn.ProcessedAt, txn.ID,
	)
	if err != nil {
		return fmt.Errorf("complete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s", txn.ID)
	}
	return nil
}

// UpdateStatus transitions a transaction's status within a database transaction.
func (r *WalletTxRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.WalletTransactionStatus) error {
	query := `UPDATE wallet_transactions SET status = $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s", id)
	}
	return nil
}

// SumAmounts totals outflow amounts in the given statuses over [from, to).
func (r *WalletTxRepo) SumAmounts(ctx context.Context, walletID uuid.UUID, statuses []domain.WalletTransactionStatus, from, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM wallet_transactions
		WHERE wallet_id = $1 AND type IN ('DEBIT', 'TRANSFER') AND status = ANY($2)
		AND created_at >= $3 AND created_at < $4`

	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}

	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, walletID, strs, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum wallet outflows: %w", err)
	}
	return sum, nil
}

// ListCompleted returns completed transactions in commit order over [from, to).
func (r *WalletTxRepo) ListCompleted(ctx context.Context, walletID uuid.UUID, from, to time.Time) ([]domain.WalletTransaction, error) {
	query := `SELECT ` + walletTxColumns + ` FROM wallet_transactions
		WHERE wallet_id = $1 AND status = 'COMPLETED' AND processed_at >= $2 AND processed_at < $3
		ORDER BY processed_at, created_at`

	rows, err := r.pool.Query(ctx, query, walletID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list completed transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.WalletTransaction
	for rows.Next() {
		txn, err := scanWalletTx(rows, "scan completed transaction")
		if err != nil {
			return nil, err
		}
		out = append(out, *txn)
	}
	return out, rows.Err()
}

// CompletedStats returns count and average amount of completed transactions.
func (r *WalletTxRepo) CompletedStats(ctx context.Context, walletID uuid.UUID) (int64, decimal.Decimal, error) {
	query := `SELECT COUNT(*), COALESCE(AVG(amount), 0) FROM wallet_transactions
		WHERE wallet_id = $1 AND status = 'COMPLETED'`

	var count int64
	var avg decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, walletID).Scan(&count, &avg); err != nil {
		return 0, decimal.Zero, fmt.Errorf("completed transaction stats: %w", err)
	}
	return count, avg, nil
}

func scanWalletTx(row pgx.Row, op string) (*domain.WalletTransaction, error) {
	t := &domain.WalletTransaction{}
	err := row.Scan(
		&t.ID, &t.WalletID, &t.Type, &t.Amount,
		&t.BalanceBefore, &t.BalanceAfter, &t.CounterpartyWalletID,
		&t.Status, &t.RiskScore, &t.ApprovalRequired, &t.ApprovedBy, &t.ApprovedAt,
		&t.Description, &t.Reference, &t.OriginalID,
		&t.PerformedBy, &t.CreatedAt, &t.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}
