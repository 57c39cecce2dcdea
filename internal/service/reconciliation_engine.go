package service

import (
	"context"
	"fmt"
	"time"

	"branch-cash-ledger/config"
	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/internal/observability"
	"branch-cash-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ReconciliationEngineService implements ports.ReconciliationEngine.
// Expected balances are always recomputed from the immutable transaction
// logs, never from cached counters, so a re-run yields the same verdict.
type ReconciliationEngineService struct {
	recRepo      ports.ReconciliationRepository
	walletTxRepo ports.WalletTransactionRepository
	drawerRepo   ports.DrawerRepository
	drawerTxRepo ports.DrawerTransactionRepository
	hashSvc      ports.HashService
	transactor   ports.DBTransactor
	audit        ports.AuditTrail
	monitor      ports.SecurityAlertMonitor
	metrics      *observability.Metrics
	tolerance    decimal.Decimal
	pinHash      string
	log          zerolog.Logger
}

// NewReconciliationEngineService creates a new ReconciliationEngineService.
// An unparseable tolerance fails closed: every variance then needs approval.
func NewReconciliationEngineService(
	recRepo ports.ReconciliationRepository,
	walletTxRepo ports.WalletTransactionRepository,
	drawerRepo ports.DrawerRepository,
	drawerTxRepo ports.DrawerTransactionRepository,
	hashSvc ports.HashService,
	transactor ports.DBTransactor,
	audit ports.AuditTrail,
	monitor ports.SecurityAlertMonitor,
	metrics *observability.Metrics,
	cfg config.ReconciliationConfig,
	log zerolog.Logger,
) *ReconciliationEngineService {
	tolerance, err := decimal.NewFromString(cfg.Tolerance)
	if err != nil {
		log.Warn().
			Str("value", cfg.Tolerance).
			Msg("invalid reconciliation tolerance, every variance will require approval")
		tolerance = decimal.Zero
	}
	return &ReconciliationEngineService{
		recRepo:      recRepo,
		walletTxRepo: walletTxRepo,
		drawerRepo:   drawerRepo,
		drawerTxRepo: drawerTxRepo,
		hashSvc:      hashSvc,
		transactor:   transactor,
		audit:        audit,
		monitor:      monitor,
		metrics:      metrics,
		tolerance:    tolerance,
		pinHash:      cfg.OverridePINHash,
		log:          log,
	}
}

// Reconcile compares a counted balance against the log-derived expectation
// and persists the verdict. Variances beyond tolerance flag the record for
// supervisor approval, which blocks the subject until signed off.
func (s *ReconciliationEngineService) Reconcile(ctx context.Context, p ports.ReconcileParams) (*domain.ReconciliationRecord, error) {
	if p.ActualBalance.IsNegative() {
		return nil, apperror.ErrInvalidAmount()
	}

	expected, err := s.expectedBalance(ctx, p)
	if err != nil {
		return nil, err
	}

	difference := p.ActualBalance.Sub(expected)
	rec := &domain.ReconciliationRecord{
		ID:                         uuid.New(),
		SubjectType:                p.SubjectType,
		SubjectID:                  p.SubjectID,
		PeriodStart:                p.PeriodStart,
		PeriodEnd:                  p.PeriodEnd,
		ExpectedBalance:            expected,
		ActualBalance:              p.ActualBalance,
		Difference:                 difference,
		Classification:             domain.ClassifyVariance(difference),
		Notes:                      p.Notes,
		PerformedBy:                p.PerformedBy,
		RequiresSupervisorApproval: difference.Abs().GreaterThan(s.tolerance),
		CreatedAt:                  time.Now().UTC(),
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck
	if err := s.recRepo.Create(ctx, dbTx, rec); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create reconciliation record: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.ReconciliationsTotal.WithLabelValues(string(rec.Classification)).Inc()
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    p.PerformedBy,
		Action:     "RECONCILIATION_RUN",
		EntityType: "reconciliation_record",
		EntityID:   rec.ID,
		NewValue:   rec,
	})
	s.log.Info().
		Str("record_id", rec.ID.String()).
		Str("subject_id", rec.SubjectID.String()).
		Str("classification", string(rec.Classification)).
		Str("difference", rec.Difference.StringFixed(2)).
		Bool("needs_approval", rec.RequiresSupervisorApproval).
		Msg("reconciliation completed")

	if rec.Classification != domain.VarianceBalanced {
		severity := domain.AlertSeverityLow
		if rec.RequiresSupervisorApproval {
			severity = domain.AlertSeverityHigh
		}
		_, err := s.monitor.Raise(ctx, ports.RaiseAlertParams{
			Type:       domain.AlertTypeReconciliationVariance,
			Severity:   severity,
			EntityType: "reconciliation_record",
			EntityID:   rec.ID,
			Details: fmt.Sprintf("%s reconciliation %s by %s",
				rec.SubjectType, rec.Classification, rec.Difference.Abs().StringFixed(2)),
		})
		if err != nil {
			s.log.Warn().Err(err).Str("record_id", rec.ID.String()).Msg("failed to raise variance alert")
		}
	}

	return rec, nil
}

// ApproveVariance attaches a supervisor sign-off to a flagged record after
// verifying the override PIN, unblocking the subject.
func (s *ReconciliationEngineService) ApproveVariance(ctx context.Context, recordID, supervisorID uuid.UUID, pin, overrideReason string) (*domain.ReconciliationRecord, error) {
	if overrideReason == "" {
		return nil, apperror.Validation("override reason is required")
	}

	rec, err := s.recRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get reconciliation record: %w", err))
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("Reconciliation record")
	}
	if !rec.RequiresSupervisorApproval || rec.ApprovedBy != nil {
		return nil, apperror.ErrReconciliationNotFlagged()
	}
	if supervisorID == rec.PerformedBy {
		// Whoever counted cannot sign off their own variance.
		return nil, apperror.ErrActorNotAuthorized()
	}

	ok, err := s.hashSvc.Verify(pin, s.pinHash)
	if err != nil || !ok {
		s.log.Warn().
			Str("record_id", rec.ID.String()).
			Str("supervisor_id", supervisorID.String()).
			Msg("supervisor PIN verification failed")
		return nil, apperror.ErrInvalidSupervisorPIN()
	}

	now := time.Now().UTC()
	rec.ApprovedBy = &supervisorID
	rec.ApprovedAt = &now
	rec.OverrideReason = &overrideReason
	if err := s.recRepo.Update(ctx, rec); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update reconciliation record: %w", err))
	}

	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    supervisorID,
		Action:     "RECONCILIATION_VARIANCE_APPROVED",
		EntityType: "reconciliation_record",
		EntityID:   rec.ID,
		NewValue:   rec,
	})
	return rec, nil
}

// expectedBalance derives the subject's expected balance from its immutable
// transaction log.
func (s *ReconciliationEngineService) expectedBalance(ctx context.Context, p ports.ReconcileParams) (decimal.Decimal, error) {
	switch p.SubjectType {
	case domain.ReconciliationSubjectWallet:
		// Balance after the last completed transaction up to the period end.
		txs, err := s.walletTxRepo.ListCompleted(ctx, p.SubjectID, time.Time{}, p.PeriodEnd)
		if err != nil {
			return decimal.Zero, apperror.ErrDatabaseError(fmt.Errorf("list wallet transactions: %w", err))
		}
		for i := len(txs) - 1; i >= 0; i-- {
			if txs[i].BalanceAfter.Valid {
				return txs[i].BalanceAfter.Decimal, nil
			}
		}
		return decimal.Zero, nil

	case domain.ReconciliationSubjectDrawer:
		drawer, err := s.drawerRepo.GetByID(ctx, p.SubjectID)
		if err != nil {
			return decimal.Zero, apperror.ErrDatabaseError(fmt.Errorf("get drawer: %w", err))
		}
		if drawer == nil {
			return decimal.Zero, apperror.ErrNotFound("Drawer")
		}
		txs, err := s.drawerTxRepo.ListByDrawer(ctx, drawer.ID)
		if err != nil {
			return decimal.Zero, apperror.ErrDatabaseError(fmt.Errorf("list drawer transactions: %w", err))
		}
		expected := drawer.OpeningBalance
		for i := range txs {
			expected = expected.Add(txs[i].SignedAmount())
		}
		return expected, nil

	default:
		return decimal.Zero, apperror.Validation("unknown reconciliation subject type")
	}
}
