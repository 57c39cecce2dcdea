package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"branch-cash-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// In-memory repositories backing the integration stack. A single mutex in the
// transactor serializes database transactions the way row locks would, so the
// concurrency tests exercise the services' real locking discipline.

// --- Master wallets ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.MasterWallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.MasterWallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.MasterWallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MasterWallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.MasterWallet, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryWalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, encBalance, encAvailable, encReserve string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.EncryptedBalance = encBalance
	w.EncryptedAvailable = encAvailable
	w.EncryptedReserve = encReserve
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryWalletRepo) UpdateStatus(ctx context.Context, walletID uuid.UUID, status domain.WalletStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Status = status
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// --- Wallet transactions ---

type inMemoryWalletTxRepo struct {
	mu   sync.RWMutex
	txns []*domain.WalletTransaction
	byID map[uuid.UUID]*domain.WalletTransaction
}

func newInMemoryWalletTxRepo() *inMemoryWalletTxRepo {
	return &inMemoryWalletTxRepo{byID: make(map[uuid.UUID]*domain.WalletTransaction)}
}

func (r *inMemoryWalletTxRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.txns {
		if existing.WalletID == txn.WalletID && existing.Reference == txn.Reference {
			return fmt.Errorf("duplicate reference %q", txn.Reference)
		}
	}
	cp := *txn
	r.txns = append(r.txns, &cp)
	r.byID[cp.ID] = &cp
	return nil
}

func (r *inMemoryWalletTxRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WalletTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryWalletTxRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletTransaction, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryWalletTxRepo) GetByReference(ctx context.Context, walletID uuid.UUID, reference string) (*domain.WalletTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.txns {
		if t.WalletID == walletID && t.Reference == reference {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletTxRepo) Complete(ctx context.Context, tx pgx.Tx, txn *domain.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[txn.ID]
	if !ok {
		return fmt.Errorf("transaction not found")
	}
	*stored = *txn
	return nil
}

func (r *inMemoryWalletTxRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.WalletTransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("transaction not found")
	}
	t.Status = status
	return nil
}

func (r *inMemoryWalletTxRepo) SumAmounts(ctx context.Context, walletID uuid.UUID, statuses []domain.WalletTransactionStatus, from, to time.Time) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := decimal.Zero
	for _, t := range r.txns {
		if t.WalletID != walletID || !t.Type.IsOutflow() {
			continue
		}
		if t.CreatedAt.Before(from) || !t.CreatedAt.Before(to) {
			continue
		}
		for _, s := range statuses {
			if t.Status == s {
				total = total.Add(t.Amount)
				break
			}
		}
	}
	return total, nil
}

func (r *inMemoryWalletTxRepo) ListCompleted(ctx context.Context, walletID uuid.UUID, from, to time.Time) ([]domain.WalletTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.WalletTransaction
	for _, t := range r.txns {
		if t.WalletID != walletID || t.Status != domain.WalletTransactionStatusCompleted {
			continue
		}
		if t.CreatedAt.Before(from) || !t.CreatedAt.Before(to) {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (r *inMemoryWalletTxRepo) CompletedStats(ctx context.Context, walletID uuid.UUID) (int64, decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	total := decimal.Zero
	for _, t := range r.txns {
		if t.WalletID == walletID && t.Status == domain.WalletTransactionStatusCompleted {
			count++
			total = total.Add(t.Amount)
		}
	}
	if count == 0 {
		return 0, decimal.Zero, nil
	}
	return count, total.Div(decimal.NewFromInt(count)), nil
}

// --- Transaction reversals ---

type inMemoryReversalRepo struct {
	mu        sync.RWMutex
	reversals map[uuid.UUID]*domain.TransactionReversal
}

func newInMemoryReversalRepo() *inMemoryReversalRepo {
	return &inMemoryReversalRepo{reversals: make(map[uuid.UUID]*domain.TransactionReversal)}
}

func (r *inMemoryReversalRepo) Create(ctx context.Context, rev *domain.TransactionReversal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rev
	r.reversals[rev.ID] = &cp
	return nil
}

func (r *inMemoryReversalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TransactionReversal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rev, ok := r.reversals[id]
	if !ok {
		return nil, nil
	}
	cp := *rev
	return &cp, nil
}

func (r *inMemoryReversalRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TransactionReversal, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryReversalRepo) Update(ctx context.Context, tx pgx.Tx, rev *domain.TransactionReversal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.reversals[rev.ID]
	if !ok {
		return fmt.Errorf("reversal not found")
	}
	*stored = *rev
	return nil
}

func (r *inMemoryReversalRepo) ListDue(ctx context.Context, now time.Time) ([]domain.TransactionReversal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []domain.TransactionReversal
	for _, rev := range r.reversals {
		if rev.DueForCompletion(now) {
			due = append(due, *rev)
		}
	}
	return due, nil
}

// --- Float allocations ---

type inMemoryAllocationRepo struct {
	mu          sync.RWMutex
	allocations map[uuid.UUID]*domain.FloatAllocation
}

func newInMemoryAllocationRepo() *inMemoryAllocationRepo {
	return &inMemoryAllocationRepo{allocations: make(map[uuid.UUID]*domain.FloatAllocation)}
}

func (r *inMemoryAllocationRepo) Create(ctx context.Context, tx pgx.Tx, alloc *domain.FloatAllocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *alloc
	r.allocations[alloc.ID] = &cp
	return nil
}

func (r *inMemoryAllocationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FloatAllocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.allocations[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAllocationRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.FloatAllocation, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryAllocationRepo) Update(ctx context.Context, tx pgx.Tx, alloc *domain.FloatAllocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.allocations[alloc.ID]
	if !ok {
		return fmt.Errorf("allocation not found")
	}
	*stored = *alloc
	return nil
}

func (r *inMemoryAllocationRepo) ListExpired(ctx context.Context, now time.Time) ([]domain.FloatAllocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var expired []domain.FloatAllocation
	for _, a := range r.allocations {
		if a.Status == domain.AllocationStatusActive && !now.Before(a.ExpiresAt) {
			expired = append(expired, *a)
		}
	}
	return expired, nil
}

// --- Teller drawers ---

type inMemoryDrawerRepo struct {
	mu      sync.RWMutex
	drawers map[uuid.UUID]*domain.TellerDrawer
}

func newInMemoryDrawerRepo() *inMemoryDrawerRepo {
	return &inMemoryDrawerRepo{drawers: make(map[uuid.UUID]*domain.TellerDrawer)}
}

func (r *inMemoryDrawerRepo) Create(ctx context.Context, tx pgx.Tx, drawer *domain.TellerDrawer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *drawer
	r.drawers[drawer.ID] = &cp
	return nil
}

func (r *inMemoryDrawerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TellerDrawer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drawers[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *inMemoryDrawerRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TellerDrawer, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryDrawerRepo) GetActiveByTeller(ctx context.Context, tellerID uuid.UUID) (*domain.TellerDrawer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.drawers {
		if d.TellerID == tellerID && d.Status == domain.DrawerStatusActive {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryDrawerRepo) GetLastByTeller(ctx context.Context, tellerID uuid.UUID) (*domain.TellerDrawer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var last *domain.TellerDrawer
	for _, d := range r.drawers {
		if d.TellerID != tellerID {
			continue
		}
		if last == nil || d.OpenedAt.After(last.OpenedAt) {
			last = d
		}
	}
	if last == nil {
		return nil, nil
	}
	cp := *last
	return &cp, nil
}

func (r *inMemoryDrawerRepo) Update(ctx context.Context, tx pgx.Tx, drawer *domain.TellerDrawer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.drawers[drawer.ID]
	if !ok {
		return fmt.Errorf("drawer not found")
	}
	*stored = *drawer
	return nil
}

// --- Drawer transactions ---

type inMemoryDrawerTxRepo struct {
	mu   sync.RWMutex
	txns []*domain.DrawerTransaction
}

func newInMemoryDrawerTxRepo() *inMemoryDrawerTxRepo {
	return &inMemoryDrawerTxRepo{}
}

func (r *inMemoryDrawerTxRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.DrawerTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *txn
	r.txns = append(r.txns, &cp)
	return nil
}

func (r *inMemoryDrawerTxRepo) ListByDrawer(ctx context.Context, drawerID uuid.UUID) ([]domain.DrawerTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.DrawerTransaction
	for _, t := range r.txns {
		if t.DrawerID == drawerID {
			result = append(result, *t)
		}
	}
	return result, nil
}

// --- Reconciliation records ---

type inMemoryReconciliationRepo struct {
	mu      sync.RWMutex
	records []*domain.ReconciliationRecord
	byID    map[uuid.UUID]*domain.ReconciliationRecord
}

func newInMemoryReconciliationRepo() *inMemoryReconciliationRepo {
	return &inMemoryReconciliationRepo{byID: make(map[uuid.UUID]*domain.ReconciliationRecord)}
}

func (r *inMemoryReconciliationRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.ReconciliationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.records = append(r.records, &cp)
	r.byID[cp.ID] = &cp
	return nil
}

func (r *inMemoryReconciliationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *inMemoryReconciliationRepo) Update(ctx context.Context, rec *domain.ReconciliationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[rec.ID]
	if !ok {
		return fmt.Errorf("reconciliation record not found")
	}
	*stored = *rec
	return nil
}

func (r *inMemoryReconciliationRepo) GetLatestForSubject(ctx context.Context, subjectID uuid.UUID) (*domain.ReconciliationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].SubjectID == subjectID {
			cp := *r.records[i]
			return &cp, nil
		}
	}
	return nil, nil
}

// --- Security alerts ---

type inMemoryAlertRepo struct {
	mu     sync.RWMutex
	alerts []*domain.SecurityAlert
	byID   map[uuid.UUID]*domain.SecurityAlert
}

func newInMemoryAlertRepo() *inMemoryAlertRepo {
	return &inMemoryAlertRepo{byID: make(map[uuid.UUID]*domain.SecurityAlert)}
}

func (r *inMemoryAlertRepo) Create(ctx context.Context, alert *domain.SecurityAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *alert
	r.alerts = append(r.alerts, &cp)
	r.byID[cp.ID] = &cp
	return nil
}

func (r *inMemoryAlertRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SecurityAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAlertRepo) Update(ctx context.Context, alert *domain.SecurityAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[alert.ID]
	if !ok {
		return fmt.Errorf("alert not found")
	}
	*stored = *alert
	return nil
}

func (r *inMemoryAlertRepo) List(ctx context.Context, resolved *bool) ([]domain.SecurityAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.SecurityAlert
	for _, a := range r.alerts {
		if resolved != nil && a.Resolved != *resolved {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

// --- Audit log ---

type inMemoryAuditRepo struct {
	mu      sync.RWMutex
	entries []*domain.AuditEntry
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *inMemoryAuditRepo) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]domain.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.AuditEntry
	for _, e := range r.entries {
		if e.EntityID == entityID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *inMemoryAuditRepo) LatestHash(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.entries) == 0 {
		return "", nil
	}
	return r.entries[len(r.entries)-1].EntryHash, nil
}

// --- Transactor ---

// lockingTransactor serializes transactions with one mutex, standing in for
// the row locks SELECT ... FOR UPDATE takes in Postgres.
type lockingTransactor struct {
	mu sync.Mutex
}

func newLockingTransactor() *lockingTransactor {
	return &lockingTransactor{}
}

func (t *lockingTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &lockedTx{release: &t.mu}, nil
}

// lockedTx holds the transactor mutex until Commit or the first Rollback.
type lockedTx struct {
	release *sync.Mutex
	once    sync.Once
}

func (t *lockedTx) done() {
	t.once.Do(func() { t.release.Unlock() })
}

func (t *lockedTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *lockedTx) Commit(ctx context.Context) error          { t.done(); return nil }
func (t *lockedTx) Rollback(ctx context.Context) error        { t.done(); return nil }
func (t *lockedTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *lockedTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *lockedTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *lockedTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *lockedTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *lockedTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *lockedTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *lockedTx) Conn() *pgx.Conn { return nil }
