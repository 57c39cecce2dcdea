package service

import (
	"context"
	"fmt"
	"time"

	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/internal/observability"
	"branch-cash-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DrawerLedgerService implements ports.TellerDrawerLedger. A drawer is the
// teller-facing running cash balance for one shift: opened against a float
// allocation, mutated only through immutable drawer transactions, and closed
// by exactly one reconciliation run.
type DrawerLedgerService struct {
	drawerRepo   ports.DrawerRepository
	drawerTxRepo ports.DrawerTransactionRepository
	allocRepo    ports.AllocationRepository
	recRepo      ports.ReconciliationRepository
	recon        ports.ReconciliationEngine
	transactor   ports.DBTransactor
	audit        ports.AuditTrail
	metrics      *observability.Metrics
	log          zerolog.Logger
}

// NewDrawerLedgerService creates a new DrawerLedgerService.
func NewDrawerLedgerService(
	drawerRepo ports.DrawerRepository,
	drawerTxRepo ports.DrawerTransactionRepository,
	allocRepo ports.AllocationRepository,
	recRepo ports.ReconciliationRepository,
	recon ports.ReconciliationEngine,
	transactor ports.DBTransactor,
	audit ports.AuditTrail,
	metrics *observability.Metrics,
	log zerolog.Logger,
) *DrawerLedgerService {
	return &DrawerLedgerService{
		drawerRepo:   drawerRepo,
		drawerTxRepo: drawerTxRepo,
		allocRepo:    allocRepo,
		recRepo:      recRepo,
		recon:        recon,
		transactor:   transactor,
		audit:        audit,
		metrics:      metrics,
		log:          log,
	}
}

// Open starts a teller's shift drawer against the teller's float allocation.
// The opening cash is staged from the float but not consumed; consumption
// tracks cash actually paid out. One active drawer per teller, and an
// unresolved reconciliation variance on the previous drawer blocks reopening.
func (s *DrawerLedgerService) Open(ctx context.Context, p ports.OpenDrawerParams) (*domain.TellerDrawer, error) {
	if !domain.ValidAmount(p.OpeningBalance) {
		return nil, apperror.ErrInvalidAmount()
	}

	active, err := s.drawerRepo.GetActiveByTeller(ctx, p.TellerID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("check active drawer: %w", err))
	}
	if active != nil {
		return nil, apperror.ErrDrawerAlreadyOpen()
	}

	if err := s.checkReopenBlock(ctx, p.TellerID); err != nil {
		return nil, err
	}

	var drawer *domain.TellerDrawer
	err = withSerializationRetry(ctx, func(ctx context.Context) error {
		d, err := s.openOnce(ctx, p)
		if err != nil {
			return err
		}
		drawer = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    p.ActorID,
		Action:     "DRAWER_OPENED",
		EntityType: "teller_drawer",
		EntityID:   drawer.ID,
		NewValue:   drawer,
	})
	s.log.Info().
		Str("drawer_id", drawer.ID.String()).
		Str("teller_id", drawer.TellerID.String()).
		Str("opening_balance", drawer.OpeningBalance.StringFixed(2)).
		Msg("teller drawer opened")
	return drawer, nil
}

func (s *DrawerLedgerService) openOnce(ctx context.Context, p ports.OpenDrawerParams) (*domain.TellerDrawer, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	alloc, err := s.allocRepo.GetByIDForUpdate(ctx, dbTx, p.AllocationID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock allocation: %w", err))
	}
	if alloc == nil {
		return nil, apperror.ErrAllocationNotFound()
	}
	if alloc.TargetTellerID != p.TellerID {
		return nil, apperror.ErrActorNotAuthorized()
	}

	now := time.Now().UTC()
	// The float stays intact at open: usage is consumed cash-out by cash-out,
	// so the allocation only needs to be live and large enough to stage from.
	if alloc.Status == domain.AllocationStatusPendingApproval {
		return nil, apperror.ErrApprovalRequired()
	}
	if !alloc.Consumable(now) {
		return nil, apperror.ErrAllocationExpired()
	}
	if p.OpeningBalance.GreaterThan(alloc.RemainingAmount) {
		return nil, apperror.ErrAllocationDepleted()
	}

	drawer := &domain.TellerDrawer{
		ID:             uuid.New(),
		TellerID:       p.TellerID,
		BranchID:       p.BranchID,
		AllocationID:   alloc.ID,
		OpeningBalance: p.OpeningBalance,
		CurrentBalance: p.OpeningBalance,
		FloatAmount:    p.OpeningBalance,
		Status:         domain.DrawerStatusActive,
		OpenedAt:       now,
	}

	if err := s.drawerRepo.Create(ctx, dbTx, drawer); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create drawer: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return drawer, nil
}

// GetDrawer returns the drawer by ID.
func (s *DrawerLedgerService) GetDrawer(ctx context.Context, drawerID uuid.UUID) (*domain.TellerDrawer, error) {
	drawer, err := s.drawerRepo.GetByID(ctx, drawerID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get drawer: %w", err))
	}
	if drawer == nil {
		return nil, apperror.ErrNotFound("Drawer")
	}
	return drawer, nil
}

// Record posts a cash movement against the drawer. CASH_OUT additionally
// consumes the backing float allocation in the same database transaction.
func (s *DrawerLedgerService) Record(ctx context.Context, p ports.RecordDrawerParams) (*domain.DrawerTransaction, error) {
	if !domain.ValidAmount(p.Amount) {
		return nil, apperror.ErrInvalidAmount()
	}
	if p.Type == domain.DrawerTransactionTypeReconciliation {
		return nil, apperror.Validation("reconciliation entries are posted by drawer close only")
	}

	var txn *domain.DrawerTransaction
	err := withSerializationRetry(ctx, func(ctx context.Context) error {
		t, err := s.recordOnce(ctx, p)
		if err != nil {
			return err
		}
		txn = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.DrawerTransactions.WithLabelValues(string(txn.Type)).Inc()
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    p.ActorID,
		Action:     "DRAWER_TX_RECORDED",
		EntityType: "drawer_transaction",
		EntityID:   txn.ID,
		NewValue:   txn,
	})
	return txn, nil
}

func (s *DrawerLedgerService) recordOnce(ctx context.Context, p ports.RecordDrawerParams) (*domain.DrawerTransaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	drawer, err := s.drawerRepo.GetByIDForUpdate(ctx, dbTx, p.DrawerID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock drawer: %w", err))
	}
	if drawer == nil {
		return nil, apperror.ErrNotFound("Drawer")
	}
	if !drawer.IsOpen() {
		return nil, apperror.ErrDrawerNotOpen()
	}
	if p.ActorID != drawer.TellerID {
		return nil, apperror.ErrActorNotAuthorized()
	}

	now := time.Now().UTC()
	if p.Type.IsOutflow() && p.Amount.GreaterThan(drawer.CurrentBalance) {
		return nil, apperror.ErrInsufficientFunds()
	}

	if p.Type == domain.DrawerTransactionTypeCashOut {
		alloc, err := s.allocRepo.GetByIDForUpdate(ctx, dbTx, drawer.AllocationID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("lock allocation: %w", err))
		}
		if alloc == nil {
			return nil, apperror.ErrAllocationNotFound()
		}
		if err := applyConsumption(alloc, p.Amount, now); err != nil {
			return nil, err
		}
		if err := s.allocRepo.Update(ctx, dbTx, alloc); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("update allocation: %w", err))
		}
	}

	txn := &domain.DrawerTransaction{
		ID:            uuid.New(),
		DrawerID:      drawer.ID,
		Type:          p.Type,
		Amount:        p.Amount,
		BalanceBefore: drawer.CurrentBalance,
		CustomerRef:   p.CustomerRef,
		PerformedBy:   p.ActorID,
		CreatedAt:     now,
	}
	drawer.CurrentBalance = drawer.CurrentBalance.Add(txn.SignedAmount())
	txn.BalanceAfter = drawer.CurrentBalance
	if p.Type.IsInflow() {
		drawer.TotalCashIn = drawer.TotalCashIn.Add(p.Amount)
	} else {
		drawer.TotalCashOut = drawer.TotalCashOut.Add(p.Amount)
	}

	if err := s.drawerRepo.Update(ctx, dbTx, drawer); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update drawer: %w", err))
	}
	if err := s.drawerTxRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create drawer transaction: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return txn, nil
}

// Close seals the drawer and reconciles it against the counted balance.
// The drawer is closed first so no transaction can land between the expected
// balance computation and the verdict.
func (s *DrawerLedgerService) Close(ctx context.Context, p ports.CloseDrawerParams) (*domain.ReconciliationRecord, error) {
	if p.ActualCounted.IsNegative() {
		return nil, apperror.ErrInvalidAmount()
	}

	var drawer *domain.TellerDrawer
	err := withSerializationRetry(ctx, func(ctx context.Context) error {
		d, err := s.sealDrawer(ctx, p)
		if err != nil {
			return err
		}
		drawer = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	rec, err := s.recon.Reconcile(ctx, ports.ReconcileParams{
		SubjectType:   domain.ReconciliationSubjectDrawer,
		SubjectID:     drawer.ID,
		PeriodStart:   drawer.OpenedAt,
		PeriodEnd:     *drawer.ClosedAt,
		ActualBalance: p.ActualCounted,
		Notes:         p.Notes,
		PerformedBy:   p.ActorID,
	})
	if err != nil {
		// Drawer is sealed but unreconciled; the record must be produced by a
		// direct reconciliation run before the teller can reopen.
		s.log.Error().Err(err).Str("drawer_id", drawer.ID.String()).Msg("drawer sealed but reconciliation failed")
		return nil, err
	}

	if err := s.attachReconciliation(ctx, drawer.ID, rec); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    p.ActorID,
		Action:     "DRAWER_CLOSED",
		EntityType: "teller_drawer",
		EntityID:   drawer.ID,
		NewValue:   rec,
	})
	return rec, nil
}

func (s *DrawerLedgerService) sealDrawer(ctx context.Context, p ports.CloseDrawerParams) (*domain.TellerDrawer, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	drawer, err := s.drawerRepo.GetByIDForUpdate(ctx, dbTx, p.DrawerID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock drawer: %w", err))
	}
	if drawer == nil {
		return nil, apperror.ErrNotFound("Drawer")
	}
	if !drawer.IsOpen() {
		return nil, apperror.ErrDrawerNotOpen()
	}
	if p.ActorID != drawer.TellerID {
		return nil, apperror.ErrActorNotAuthorized()
	}

	now := time.Now().UTC()
	drawer.Status = domain.DrawerStatusClosed
	drawer.ClosedAt = &now
	if err := s.drawerRepo.Update(ctx, dbTx, drawer); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("close drawer: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return drawer, nil
}

// attachReconciliation links the verdict to the drawer and posts the neutral
// RECONCILIATION marker entry onto the cash log.
func (s *DrawerLedgerService) attachReconciliation(ctx context.Context, drawerID uuid.UUID, rec *domain.ReconciliationRecord) error {
	return withSerializationRetry(ctx, func(ctx context.Context) error {
		dbTx, err := s.transactor.Begin(ctx)
		if err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
		}
		defer dbTx.Rollback(ctx) //nolint:errcheck

		drawer, err := s.drawerRepo.GetByIDForUpdate(ctx, dbTx, drawerID)
		if err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("lock drawer: %w", err))
		}
		if drawer == nil {
			return apperror.ErrNotFound("Drawer")
		}

		now := time.Now().UTC()
		marker := &domain.DrawerTransaction{
			ID:            uuid.New(),
			DrawerID:      drawer.ID,
			Type:          domain.DrawerTransactionTypeReconciliation,
			Amount:        rec.Difference.Abs(),
			BalanceBefore: drawer.CurrentBalance,
			BalanceAfter:  drawer.CurrentBalance,
			PerformedBy:   rec.PerformedBy,
			CreatedAt:     now,
		}
		if err := s.drawerTxRepo.Create(ctx, dbTx, marker); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("create reconciliation marker: %w", err))
		}

		drawer.LastReconciliationID = &rec.ID
		if err := s.drawerRepo.Update(ctx, dbTx, drawer); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("update drawer: %w", err))
		}
		if err := dbTx.Commit(ctx); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
		}

		s.metrics.DrawerTransactions.WithLabelValues(string(marker.Type)).Inc()
		return nil
	})
}

// checkReopenBlock refuses a new drawer while the teller's previous one has
// an unresolved reconciliation variance.
func (s *DrawerLedgerService) checkReopenBlock(ctx context.Context, tellerID uuid.UUID) error {
	last, err := s.drawerRepo.GetLastByTeller(ctx, tellerID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get last drawer: %w", err))
	}
	if last == nil || last.LastReconciliationID == nil {
		return nil
	}
	rec, err := s.recRepo.GetByID(ctx, *last.LastReconciliationID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get reconciliation record: %w", err))
	}
	if rec != nil && rec.Blocking() {
		return apperror.ErrDrawerBlocked()
	}
	return nil
}
