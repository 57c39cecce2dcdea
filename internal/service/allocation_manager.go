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
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AllocationManagerService implements ports.FloatAllocationManager. An
// allocation is funded by debiting the source wallet; the debit, the wallet
// transaction row and the allocation row commit atomically. Allocations at or
// above the approval threshold start PENDING_APPROVAL with the debit deferred
// until an approver signs off.
type AllocationManagerService struct {
	allocRepo  ports.AllocationRepository
	walletRepo ports.WalletRepository
	txRepo     ports.WalletTransactionRepository
	encSvc     ports.EncryptionService
	transactor ports.DBTransactor
	audit      ports.AuditTrail
	monitor    ports.SecurityAlertMonitor
	metrics    *observability.Metrics
	ttl        time.Duration
	threshold  decimal.Decimal
	log        zerolog.Logger
}

// NewAllocationManagerService creates a new AllocationManagerService.
// An unparseable approval threshold fails closed: every allocation then
// requires approval.
func NewAllocationManagerService(
	allocRepo ports.AllocationRepository,
	walletRepo ports.WalletRepository,
	txRepo ports.WalletTransactionRepository,
	encSvc ports.EncryptionService,
	transactor ports.DBTransactor,
	audit ports.AuditTrail,
	monitor ports.SecurityAlertMonitor,
	metrics *observability.Metrics,
	cfg config.LedgerConfig,
	log zerolog.Logger,
) *AllocationManagerService {
	threshold, err := decimal.NewFromString(cfg.AllocationApprovalThreshold)
	if err != nil {
		log.Warn().
			Str("value", cfg.AllocationApprovalThreshold).
			Msg("invalid allocation approval threshold, all allocations will require approval")
		threshold = decimal.Zero
	}
	return &AllocationManagerService{
		allocRepo:  allocRepo,
		walletRepo: walletRepo,
		txRepo:     txRepo,
		encSvc:     encSvc,
		transactor: transactor,
		audit:      audit,
		monitor:    monitor,
		metrics:    metrics,
		ttl:        cfg.AllocationTTL,
		threshold:  threshold,
		log:        log,
	}
}

// Allocate carves a float slice for a teller out of the source wallet.
func (s *AllocationManagerService) Allocate(ctx context.Context, p ports.AllocateParams) (*domain.FloatAllocation, error) {
	if !domain.ValidAmount(p.Amount) {
		return nil, apperror.ErrInvalidAmount()
	}

	var alloc *domain.FloatAllocation
	err := withSerializationRetry(ctx, func(ctx context.Context) error {
		a, err := s.allocateOnce(ctx, p)
		if err != nil {
			return err
		}
		alloc = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AllocationsTotal.WithLabelValues(string(alloc.Status)).Inc()
	action := "ALLOCATION_ACTIVATED"
	if alloc.Status == domain.AllocationStatusPendingApproval {
		action = "ALLOCATION_REQUESTED"
	}
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    p.RequestedBy,
		Action:     action,
		EntityType: "float_allocation",
		EntityID:   alloc.ID,
		NewValue:   alloc,
	})
	s.log.Info().
		Str("allocation_id", alloc.ID.String()).
		Str("wallet_id", p.SourceWalletID.String()).
		Str("teller_id", p.TargetTellerID.String()).
		Str("amount", alloc.Amount.StringFixed(2)).
		Str("status", string(alloc.Status)).
		Msg("float allocation created")
	return alloc, nil
}

func (s *AllocationManagerService) allocateOnce(ctx context.Context, p ports.AllocateParams) (*domain.FloatAllocation, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, p.SourceWalletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}
	if !wallet.IsActive() {
		return nil, apperror.ErrWalletNotActive()
	}
	if !wallet.IsAuthorized(p.RequestedBy) {
		return nil, apperror.ErrActorNotAuthorized()
	}

	now := time.Now().UTC()
	alloc := &domain.FloatAllocation{
		ID:              uuid.New(),
		SourceWalletID:  p.SourceWalletID,
		TargetTellerID:  p.TargetTellerID,
		BranchID:        p.BranchID,
		Amount:          p.Amount,
		RemainingAmount: p.Amount,
		ActualUsage:     decimal.Zero,
		Purpose:         p.Purpose,
		ExpiresAt:       now.Add(s.ttl),
		RequestedBy:     p.RequestedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if p.Amount.GreaterThanOrEqual(s.threshold) {
		// Above threshold: hold for approval, wallet untouched.
		alloc.Status = domain.AllocationStatusPendingApproval
		if err := s.allocRepo.Create(ctx, dbTx, alloc); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("create allocation: %w", err))
		}
		if err := dbTx.Commit(ctx); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
		}
		return alloc, nil
	}

	alloc.Status = domain.AllocationStatusActive
	if err := s.fundUnderLock(ctx, dbTx, wallet, alloc, now); err != nil {
		return nil, err
	}
	if err := s.allocRepo.Create(ctx, dbTx, alloc); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create allocation: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return alloc, nil
}

// Approve activates a held allocation and debits the source wallet. The
// expiry clock starts at activation, not at request time.
func (s *AllocationManagerService) Approve(ctx context.Context, allocationID, actorID uuid.UUID) (*domain.FloatAllocation, error) {
	var alloc *domain.FloatAllocation
	err := withSerializationRetry(ctx, func(ctx context.Context) error {
		dbTx, err := s.transactor.Begin(ctx)
		if err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
		}
		defer dbTx.Rollback(ctx) //nolint:errcheck

		a, err := s.allocRepo.GetByIDForUpdate(ctx, dbTx, allocationID)
		if err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("lock allocation: %w", err))
		}
		if a == nil {
			return apperror.ErrAllocationNotFound()
		}
		if a.Status != domain.AllocationStatusPendingApproval {
			return apperror.ErrAllocationNotPending()
		}
		if actorID == a.RequestedBy {
			// Requester cannot approve their own allocation.
			return apperror.ErrActorNotAuthorized()
		}

		wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, a.SourceWalletID)
		if err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("lock wallet: %w", err))
		}
		if wallet == nil {
			return apperror.ErrNotFound("Wallet")
		}
		if !wallet.IsActive() {
			return apperror.ErrWalletNotActive()
		}
		if !wallet.IsAuthorized(actorID) {
			return apperror.ErrActorNotAuthorized()
		}

		now := time.Now().UTC()
		if err := s.fundUnderLock(ctx, dbTx, wallet, a, now); err != nil {
			return err
		}

		a.Status = domain.AllocationStatusActive
		a.DecidedBy = &actorID
		a.DecidedAt = &now
		a.ExpiresAt = now.Add(s.ttl)
		a.UpdatedAt = now
		if err := s.allocRepo.Update(ctx, dbTx, a); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("update allocation: %w", err))
		}
		if err := dbTx.Commit(ctx); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
		}
		alloc = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AllocationsTotal.WithLabelValues(string(alloc.Status)).Inc()
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    actorID,
		Action:     "ALLOCATION_APPROVED",
		EntityType: "float_allocation",
		EntityID:   alloc.ID,
		NewValue:   alloc,
	})
	return alloc, nil
}

// Reject declines a held allocation. No funds ever moved.
func (s *AllocationManagerService) Reject(ctx context.Context, allocationID, actorID uuid.UUID, reason string) (*domain.FloatAllocation, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	alloc, err := s.allocRepo.GetByIDForUpdate(ctx, dbTx, allocationID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock allocation: %w", err))
	}
	if alloc == nil {
		return nil, apperror.ErrAllocationNotFound()
	}
	if alloc.Status != domain.AllocationStatusPendingApproval {
		return nil, apperror.ErrAllocationNotPending()
	}
	if actorID == alloc.RequestedBy {
		return nil, apperror.ErrActorNotAuthorized()
	}

	now := time.Now().UTC()
	alloc.Status = domain.AllocationStatusRejected
	alloc.DecidedBy = &actorID
	alloc.DecidedAt = &now
	alloc.UpdatedAt = now
	if err := s.allocRepo.Update(ctx, dbTx, alloc); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update allocation: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.AllocationsTotal.WithLabelValues(string(alloc.Status)).Inc()
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    actorID,
		Action:     "ALLOCATION_REJECTED",
		EntityType: "float_allocation",
		EntityID:   alloc.ID,
		NewValue:   map[string]string{"reason": reason},
	})
	return alloc, nil
}

// GetAllocation returns the allocation by ID.
func (s *AllocationManagerService) GetAllocation(ctx context.Context, allocationID uuid.UUID) (*domain.FloatAllocation, error) {
	alloc, err := s.allocRepo.GetByID(ctx, allocationID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get allocation: %w", err))
	}
	if alloc == nil {
		return nil, apperror.ErrAllocationNotFound()
	}
	return alloc, nil
}

// Consume atomically moves amount from remaining to actual usage.
func (s *AllocationManagerService) Consume(ctx context.Context, allocationID uuid.UUID, amount decimal.Decimal) error {
	if !domain.ValidAmount(amount) {
		return apperror.ErrInvalidAmount()
	}

	return withSerializationRetry(ctx, func(ctx context.Context) error {
		dbTx, err := s.transactor.Begin(ctx)
		if err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
		}
		defer dbTx.Rollback(ctx) //nolint:errcheck

		alloc, err := s.allocRepo.GetByIDForUpdate(ctx, dbTx, allocationID)
		if err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("lock allocation: %w", err))
		}
		if alloc == nil {
			return apperror.ErrAllocationNotFound()
		}
		if err := applyConsumption(alloc, amount, time.Now().UTC()); err != nil {
			return err
		}
		if err := s.allocRepo.Update(ctx, dbTx, alloc); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("update allocation: %w", err))
		}
		if err := dbTx.Commit(ctx); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
		}

		if alloc.Status == domain.AllocationStatusDepleted {
			s.metrics.AllocationsTotal.WithLabelValues(string(alloc.Status)).Inc()
		}
		return nil
	})
}

// Recall pulls an allocation back. The refund is exactly the remaining amount
// read under the row lock; consumed usage is never clawed back. Recalling a
// held allocation just cancels it.
func (s *AllocationManagerService) Recall(ctx context.Context, allocationID, actorID uuid.UUID, reason string) (*domain.FloatAllocation, error) {
	var alloc *domain.FloatAllocation
	err := withSerializationRetry(ctx, func(ctx context.Context) error {
		a, err := s.closeOut(ctx, allocationID, domain.AllocationStatusRecalled, &actorID)
		if err != nil {
			return err
		}
		alloc = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AllocationsTotal.WithLabelValues(string(alloc.Status)).Inc()
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    actorID,
		Action:     "ALLOCATION_RECALLED",
		EntityType: "float_allocation",
		EntityID:   alloc.ID,
		NewValue:   map[string]string{"reason": reason, "refunded": alloc.RemainingAmount.StringFixed(2)},
	})
	return alloc, nil
}

// ExpireDue recalls every active allocation past its expiry. Returns how many
// were expired; individual failures are retried by the next sweep.
func (s *AllocationManagerService) ExpireDue(ctx context.Context) (int, error) {
	due, err := s.allocRepo.ListExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, apperror.ErrDatabaseError(fmt.Errorf("list expired allocations: %w", err))
	}

	expired := 0
	for i := range due {
		allocID := due[i].ID
		var alloc *domain.FloatAllocation
		err := withSerializationRetry(ctx, func(ctx context.Context) error {
			a, err := s.closeOut(ctx, allocID, domain.AllocationStatusExpired, nil)
			if err != nil {
				return err
			}
			alloc = a
			return nil
		})
		if err != nil {
			s.log.Error().Err(err).Str("allocation_id", allocID.String()).Msg("allocation expiry failed")
			continue
		}
		expired++

		s.metrics.AllocationsTotal.WithLabelValues(string(alloc.Status)).Inc()
		s.audit.Record(ctx, ports.RecordEntryParams{
			ActorID:    alloc.RequestedBy,
			Action:     "ALLOCATION_EXPIRED",
			EntityType: "float_allocation",
			EntityID:   alloc.ID,
			NewValue:   alloc,
		})

		if alloc.RemainingAmount.IsPositive() {
			_, err := s.monitor.Raise(ctx, ports.RaiseAlertParams{
				Type:       domain.AlertTypeAllocationAnomaly,
				Severity:   domain.AlertSeverityMedium,
				EntityType: "float_allocation",
				EntityID:   alloc.ID,
				Details: fmt.Sprintf("allocation expired with %s unconsumed for teller %s",
					alloc.RemainingAmount.StringFixed(2), alloc.TargetTellerID),
			})
			if err != nil {
				s.log.Warn().Err(err).Str("allocation_id", alloc.ID.String()).Msg("failed to raise expiry alert")
			}
		}
	}
	return expired, nil
}

// closeOut transitions an allocation to RECALLED or EXPIRED, refunding the
// lock-captured remaining amount to the source wallet.
func (s *AllocationManagerService) closeOut(ctx context.Context, allocationID uuid.UUID, terminal domain.AllocationStatus, decidedBy *uuid.UUID) (*domain.FloatAllocation, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	alloc, err := s.allocRepo.GetByIDForUpdate(ctx, dbTx, allocationID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock allocation: %w", err))
	}
	if alloc == nil {
		return nil, apperror.ErrAllocationNotFound()
	}
	if alloc.Terminal() {
		return nil, apperror.ErrAllocationExpired()
	}

	now := time.Now().UTC()
	funded := alloc.Status == domain.AllocationStatusActive

	alloc.Status = terminal
	if decidedBy != nil {
		alloc.DecidedBy = decidedBy
		alloc.DecidedAt = &now
	}
	alloc.UpdatedAt = now

	if funded && alloc.RemainingAmount.IsPositive() {
		if err := s.refundUnderLock(ctx, dbTx, alloc, now); err != nil {
			return nil, err
		}
	}

	if err := s.allocRepo.Update(ctx, dbTx, alloc); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update allocation: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return alloc, nil
}

// fundUnderLock debits the locked wallet by the allocation amount and records
// the funding transaction.
func (s *AllocationManagerService) fundUnderLock(ctx context.Context, dbTx pgx.Tx, wallet *domain.MasterWallet, alloc *domain.FloatAllocation, now time.Time) error {
	balances, err := decryptWalletBalances(s.encSvc, wallet)
	if err != nil {
		return err
	}
	if alloc.Amount.GreaterThan(balances.Available) {
		return apperror.ErrInsufficientFunds()
	}

	txn := &domain.WalletTransaction{
		ID:          uuid.New(),
		WalletID:    wallet.ID,
		Type:        domain.WalletTransactionTypeDebit,
		Amount:      alloc.Amount,
		Status:      domain.WalletTransactionStatusCompleted,
		Description: fmt.Sprintf("Float allocation to teller %s", alloc.TargetTellerID),
		Reference:   "alloc:" + alloc.ID.String(),
		PerformedBy: alloc.RequestedBy,
		CreatedAt:   now,
		ProcessedAt: &now,
	}
	applyMovement(balances, txn)

	encBal, encAvail, encRes, err := encryptWalletBalances(s.encSvc, balances)
	if err != nil {
		return err
	}
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet.ID, encBal, encAvail, encRes); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update balances: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("create funding transaction: %w", err))
	}

	alloc.DebitTxnID = &txn.ID
	return nil
}

// refundUnderLock credits the remaining amount back to the source wallet and
// records the refund transaction.
func (s *AllocationManagerService) refundUnderLock(ctx context.Context, dbTx pgx.Tx, alloc *domain.FloatAllocation, now time.Time) error {
	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, alloc.SourceWalletID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return apperror.ErrNotFound("Wallet")
	}

	balances, err := decryptWalletBalances(s.encSvc, wallet)
	if err != nil {
		return err
	}

	txn := &domain.WalletTransaction{
		ID:          uuid.New(),
		WalletID:    wallet.ID,
		Type:        domain.WalletTransactionTypeCredit,
		Amount:      alloc.RemainingAmount,
		Status:      domain.WalletTransactionStatusCompleted,
		Description: fmt.Sprintf("Float refund from teller %s", alloc.TargetTellerID),
		Reference:   "alloc:" + alloc.ID.String() + ":refund",
		PerformedBy: alloc.RequestedBy,
		CreatedAt:   now,
		ProcessedAt: &now,
	}
	applyMovement(balances, txn)

	encBal, encAvail, encRes, err := encryptWalletBalances(s.encSvc, balances)
	if err != nil {
		return err
	}
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet.ID, encBal, encAvail, encRes); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update balances: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("create refund transaction: %w", err))
	}

	alloc.RefundTxnID = &txn.ID
	return nil
}

// applyConsumption moves amount from remaining to actual usage, keeping
// RemainingAmount + ActualUsage == Amount.
func applyConsumption(alloc *domain.FloatAllocation, amount decimal.Decimal, now time.Time) error {
	if alloc.Status == domain.AllocationStatusPendingApproval {
		return apperror.ErrApprovalRequired()
	}
	if !alloc.Consumable(now) {
		return apperror.ErrAllocationExpired()
	}
	if amount.GreaterThan(alloc.RemainingAmount) {
		return apperror.ErrAllocationDepleted()
	}
	alloc.RemainingAmount = alloc.RemainingAmount.Sub(amount)
	alloc.ActualUsage = alloc.ActualUsage.Add(amount)
	if alloc.RemainingAmount.IsZero() {
		alloc.Status = domain.AllocationStatusDepleted
	}
	alloc.UpdatedAt = now
	return nil
}
