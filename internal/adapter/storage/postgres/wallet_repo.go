package postgres

import (
	"context"
	"errors"
	"fmt"

	"branch-cash-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const walletColumns = `id, name, purpose, currency, encrypted_balance, encrypted_available, encrypted_reserve,
	security_level, status, max_single_transaction, daily_limit, monthly_limit, authorized_actors, key_ref,
	created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new master wallet.
func (r *WalletRepo) Create(ctx context.Context, w *domain.MasterWallet) error {
	query := `INSERT INTO master_wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.Name, w.Purpose, w.Currency,
		w.EncryptedBalance, w.EncryptedAvailable, w.EncryptedReserve,
		w.SecurityLevel, w.Status,
		w.MaxSingleTransaction, w.DailyLimit, w.MonthlyLimit,
		w.AuthorizedActors, w.KeyRef, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by ID (non-locking read).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MasterWallet, error) {
	query := `SELECT ` + walletColumns + ` FROM master_wallets WHERE id = $1`
	return scanWallet(r.pool.QueryRow(ctx, query, id), "get wallet by id")
}

// GetByIDForUpdate fetches a wallet by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.MasterWallet, error) {
	query := `SELECT ` + walletColumns + ` FROM master_wallets WHERE id = $1 FOR UPDATE`
	return scanWallet(tx.QueryRow(ctx, query, id), "get wallet for update")
}

// UpdateBalances writes the encrypted balance triple within a transaction.
func (r *WalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, encBalance, encAvailable, encReserve string) error {
	query := `UPDATE master_wallets
		SET encrypted_balance = $1, encrypted_available = $2, encrypted_reserve = $3, updated_at = NOW()
		WHERE id = $4`

	tag, err := tx.Exec(ctx, query, encBalance, encAvailable, encReserve, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balances: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

// UpdateStatus transitions a wallet's lifecycle state.
func (r *WalletRepo) UpdateStatus(ctx context.Context, walletID uuid.UUID, status domain.WalletStatus) error {
	query := `UPDATE master_wallets SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, status, walletID)
	if err != nil {
		return fmt.Errorf("update wallet status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

func scanWallet(row pgx.Row, op string) (*domain.MasterWallet, error) {
	w := &domain.MasterWallet{}
	err := row.Scan(
		&w.ID, &w.Name, &w.Purpose, &w.Currency,
		&w.EncryptedBalance, &w.EncryptedAvailable, &w.EncryptedReserve,
		&w.SecurityLevel, &w.Status,
		&w.MaxSingleTransaction, &w.DailyLimit, &w.MonthlyLimit,
		&w.AuthorizedActors, &w.KeyRef, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}
