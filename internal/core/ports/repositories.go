package ports

import (
	"context"
	"time"

	"branch-cash-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository defines persistence operations for master wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic
// per-entity locking.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.MasterWallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MasterWallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.MasterWallet, error)
	// UpdateBalances writes the encrypted balance triple within a transaction.
	UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, encBalance, encAvailable, encReserve string) error
	UpdateStatus(ctx context.Context, walletID uuid.UUID, status domain.WalletStatus) error
}

// WalletTransactionRepository defines persistence for the immutable
// pool-level transaction log.
type WalletTransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, txn *domain.WalletTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WalletTransaction, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletTransaction, error)
	GetByReference(ctx context.Context, walletID uuid.UUID, reference string) (*domain.WalletTransaction, error)
	// Complete persists the terminal outcome of a pending transaction:
	// status, balances, approval fields and processed_at, within a transaction.
	Complete(ctx context.Context, tx pgx.Tx, txn *domain.WalletTransaction) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.WalletTransactionStatus) error
	// SumAmounts totals amounts of the wallet's outflow transactions in the
	// given statuses over [from, to). Used for daily/monthly limit checks.
	SumAmounts(ctx context.Context, walletID uuid.UUID, statuses []domain.WalletTransactionStatus, from, to time.Time) (decimal.Decimal, error)
	// ListCompleted returns the wallet's completed transactions in commit
	// order over [from, to). Reconciliation derives expected balances from it.
	ListCompleted(ctx context.Context, walletID uuid.UUID, from, to time.Time) ([]domain.WalletTransaction, error)
	// CompletedStats returns count and average amount of completed
	// transactions, feeding risk scoring.
	CompletedStats(ctx context.Context, walletID uuid.UUID) (int64, decimal.Decimal, error)
}

// ReversalRepository defines persistence for the reversal state machine.
type ReversalRepository interface {
	Create(ctx context.Context, rev *domain.TransactionReversal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TransactionReversal, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TransactionReversal, error)
	Update(ctx context.Context, tx pgx.Tx, rev *domain.TransactionReversal) error
	// ListDue returns APPROVED reversals whose hold elapsed before now.
	ListDue(ctx context.Context, now time.Time) ([]domain.TransactionReversal, error)
}

// AllocationRepository defines persistence operations for float allocations.
type AllocationRepository interface {
	Create(ctx context.Context, tx pgx.Tx, alloc *domain.FloatAllocation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FloatAllocation, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.FloatAllocation, error)
	Update(ctx context.Context, tx pgx.Tx, alloc *domain.FloatAllocation) error
	// ListExpired returns ACTIVE allocations whose expiry passed before now.
	ListExpired(ctx context.Context, now time.Time) ([]domain.FloatAllocation, error)
}

// DrawerRepository defines persistence operations for teller drawers.
type DrawerRepository interface {
	Create(ctx context.Context, tx pgx.Tx, drawer *domain.TellerDrawer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TellerDrawer, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TellerDrawer, error)
	GetActiveByTeller(ctx context.Context, tellerID uuid.UUID) (*domain.TellerDrawer, error)
	// GetLastByTeller returns the teller's most recently opened drawer
	// regardless of status, or nil.
	GetLastByTeller(ctx context.Context, tellerID uuid.UUID) (*domain.TellerDrawer, error)
	Update(ctx context.Context, tx pgx.Tx, drawer *domain.TellerDrawer) error
}

// DrawerTransactionRepository defines persistence for drawer cash logs.
type DrawerTransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, txn *domain.DrawerTransaction) error
	// ListByDrawer returns the drawer's transactions in commit order.
	ListByDrawer(ctx context.Context, drawerID uuid.UUID) ([]domain.DrawerTransaction, error)
}

// ReconciliationRepository defines persistence for reconciliation records.
type ReconciliationRepository interface {
	Create(ctx context.Context, tx pgx.Tx, rec *domain.ReconciliationRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRecord, error)
	Update(ctx context.Context, rec *domain.ReconciliationRecord) error
	GetLatestForSubject(ctx context.Context, subjectID uuid.UUID) (*domain.ReconciliationRecord, error)
}

// AlertRepository defines persistence for security alerts.
type AlertRepository interface {
	Create(ctx context.Context, alert *domain.SecurityAlert) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SecurityAlert, error)
	Update(ctx context.Context, alert *domain.SecurityAlert) error
	List(ctx context.Context, resolved *bool) ([]domain.SecurityAlert, error)
}

// AuditRepository defines persistence for the append-only audit trail.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]domain.AuditEntry, error)
	// LatestHash returns the EntryHash of the newest entry, or "" when empty.
	// Seeds the in-memory hash chain at startup.
	LatestHash(ctx context.Context) (string, error)
}

// DBTransactor provides database transaction management. It is the scoped
// transaction boundary: callers defer Rollback on every path and Commit last.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
