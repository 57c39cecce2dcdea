package postgres

import (
	"context"
	"errors"
	"fmt"

	"branch-cash-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const drawerColumns = `id, teller_id, branch_id, allocation_id, opening_balance, current_balance,
	float_amount, total_cash_in, total_cash_out, status, last_reconciliation_id, opened_at, closed_at`

// DrawerRepo implements ports.DrawerRepository.
type DrawerRepo struct {
	pool Pool
}

// NewDrawerRepo creates a new DrawerRepo.
func NewDrawerRepo(pool Pool) *DrawerRepo {
	return &DrawerRepo{pool: pool}
}

// Create inserts a drawer row within a database transaction.
func (r *DrawerRepo) Create(ctx context.Context, tx pgx.Tx, d *domain.TellerDrawer) error {
	query := `INSERT INTO teller_drawers (` + drawerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := tx.Exec(ctx, query,
		d.ID, d.TellerID, d.BranchID, d.AllocationID,
		d.OpeningBalance, d.CurrentBalance, d.FloatAmount,
		d.TotalCashIn, d.TotalCashOut, d.Status,
		d.LastReconciliationID, d.OpenedAt, d.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("insert drawer: %w", err)
	}
	return nil
}

// GetByID fetches a drawer by ID (non-locking read).
func (r *DrawerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TellerDrawer, error) {
	query := `SELECT ` + drawerColumns + ` FROM teller_drawers WHERE id = $1`
	return scanDrawer(r.pool.QueryRow(ctx, query, id), "get drawer by id")
}

// GetByIDForUpdate fetches a drawer by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *DrawerRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TellerDrawer, error) {
	query := `SELECT ` + drawerColumns + ` FROM teller_drawers WHERE id = $1 FOR UPDATE`
	return scanDrawer(tx.QueryRow(ctx, query, id), "get drawer for update")
}

// GetActiveByTeller fetches the teller's ACTIVE drawer, or nil.
func (r *DrawerRepo) GetActiveByTeller(ctx context.Context, tellerID uuid.UUID) (*domain.TellerDrawer, error) {
	query := `SELECT ` + drawerColumns + ` FROM teller_drawers
		WHERE teller_id = $1 AND status = 'ACTIVE'`
	return scanDrawer(r.pool.QueryRow(ctx, query, tellerID), "get active drawer")
}

// GetLastByTeller fetches the teller's most recently opened drawer, or nil.
func (r *DrawerRepo) GetLastByTeller(ctx context.Context, tellerID uuid.UUID) (*domain.TellerDrawer, error) {
	query := `SELECT ` + drawerColumns + ` FROM teller_drawers
		WHERE teller_id = $1 ORDER BY opened_at DESC LIMIT 1`
	return scanDrawer(r.pool.QueryRow(ctx, query, tellerID), "get last drawer")
}

// Update persists the drawer's mutable state within a database transaction.
func (r *DrawerRepo) Update(ctx context.Context, tx pgx.Tx, d *domain.TellerDrawer) error {
	query := `UPDATE teller_drawers
		SET current_balance = $1, total_cash_in = $2, total_cash_out = $3, status = $4,
			last_reconciliation_id = $5, closed_at = $6
		WHERE id = $7`

	tag, err := tx.Exec(ctx, query,
		d.CurrentBalance, d.TotalCashIn, d.TotalCashOut, d.Status,
		d.LastReconciliationID, d.ClosedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update drawer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("drawer not found: %s", d.ID)
	}
	return nil
}

func scanDrawer(row pgx.Row, op string) (*domain.TellerDrawer, error) {
	d := &domain.TellerDrawer{}
	err := row.Scan(
		&d.ID, &d.TellerID, &d.BranchID, &d.AllocationID,
		&d.OpeningBalance, &d.CurrentBalance, &d.FloatAmount,
		&d.TotalCashIn, &d.TotalCashOut, &d.Status,
		&d.LastReconciliationID, &d.OpenedAt, &d.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}
