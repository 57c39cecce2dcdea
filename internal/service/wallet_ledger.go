package service

import (
	"context"
	"encoding/json"
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

const idempotencyTTL = 24 * time.Hour

// WalletLedgerService implements ports.WalletLedger. Every balance mutation
// follows the same shape: begin a database transaction, lock the wallet row,
// decrypt the balance triple, compute with fixed-point decimals, re-encrypt,
// and persist the new balances together with an immutable transaction row.
type WalletLedgerService struct {
	walletRepo ports.WalletRepository
	txRepo     ports.WalletTransactionRepository
	revRepo    ports.ReversalRepository
	idempCache ports.IdempotencyCache
	encSvc     ports.EncryptionService
	transactor ports.DBTransactor
	audit      ports.AuditTrail
	monitor    ports.SecurityAlertMonitor
	metrics    *observability.Metrics
	cfg        config.LedgerConfig
	log        zerolog.Logger
}

// NewWalletLedgerService creates a new WalletLedgerService.
func NewWalletLedgerService(
	walletRepo ports.WalletRepository,
	txRepo ports.WalletTransactionRepository,
	revRepo ports.ReversalRepository,
	idempCache ports.IdempotencyCache,
	encSvc ports.EncryptionService,
	transactor ports.DBTransactor,
	audit ports.AuditTrail,
	monitor ports.SecurityAlertMonitor,
	metrics *observability.Metrics,
	cfg config.LedgerConfig,
	log zerolog.Logger,
) *WalletLedgerService {
	return &WalletLedgerService{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		revRepo:    revRepo,
		idempCache: idempCache,
		encSvc:     encSvc,
		transactor: transactor,
		audit:      audit,
		monitor:    monitor,
		metrics:    metrics,
		cfg:        cfg,
		log:        log,
	}
}

// CreateWallet bootstraps a master wallet with an encrypted balance triple.
func (s *WalletLedgerService) CreateWallet(ctx context.Context, p ports.CreateWalletParams) (*domain.MasterWallet, error) {
	if p.Name == "" {
		return nil, apperror.Validation("wallet name is required")
	}
	if len(p.Currency) != 3 {
		return nil, apperror.Validation("currency must be a 3-letter ISO code")
	}
	if p.OpeningBalance.IsNegative() || !p.OpeningBalance.Equal(p.OpeningBalance.Round(2)) {
		return nil, apperror.ErrInvalidAmount()
	}
	if p.ReserveBalance.IsNegative() || p.ReserveBalance.GreaterThan(p.OpeningBalance) {
		return nil, apperror.Validation("reserve balance must be between zero and the opening balance")
	}

	balances := &domain.WalletBalances{
		Balance:   p.OpeningBalance,
		Available: p.OpeningBalance.Sub(p.ReserveBalance),
		Reserve:   p.ReserveBalance,
	}
	encBal, encAvail, encRes, err := encryptWalletBalances(s.encSvc, balances)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wallet := &domain.MasterWallet{
		ID:                   uuid.New(),
		Name:                 p.Name,
		Purpose:              p.Purpose,
		Currency:             p.Currency,
		EncryptedBalance:     encBal,
		EncryptedAvailable:   encAvail,
		EncryptedReserve:     encRes,
		SecurityLevel:        p.SecurityLevel,
		Status:               domain.WalletStatusActive,
		MaxSingleTransaction: p.MaxSingleTransaction,
		DailyLimit:           p.DailyLimit,
		MonthlyLimit:         p.MonthlyLimit,
		AuthorizedActors:     p.AuthorizedActors,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create wallet: %w", err))
	}

	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    p.ActorID,
		Action:     "WALLET_CREATED",
		EntityType: "master_wallet",
		EntityID:   wallet.ID,
		NewValue:   wallet,
	})
	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("purpose", string(wallet.Purpose)).
		Msg("master wallet created")

	return wallet, nil
}

// GetWallet returns the wallet by ID.
func (s *WalletLedgerService) GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.MasterWallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}
	return wallet, nil
}

// Balances decrypts and returns the wallet's balance triple.
func (s *WalletLedgerService) Balances(ctx context.Context, walletID uuid.UUID) (*domain.WalletBalances, error) {
	wallet, err := s.GetWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}
	return decryptWalletBalances(s.encSvc, wallet)
}

// CloseWallet retires a wallet. Closure requires a zero balance so no funds
// are stranded behind a closed wallet.
func (s *WalletLedgerService) CloseWallet(ctx context.Context, walletID, actorID uuid.UUID) error {
	wallet, err := s.GetWallet(ctx, walletID)
	if err != nil {
		return err
	}
	if wallet.Status == domain.WalletStatusClosed {
		return nil
	}
	if !wallet.IsAuthorized(actorID) {
		return apperror.ErrActorNotAuthorized()
	}

	balances, err := decryptWalletBalances(s.encSvc, wallet)
	if err != nil {
		return err
	}
	if !balances.Balance.IsZero() {
		return apperror.Validation("wallet balance must be zero before closing")
	}

	if err := s.walletRepo.UpdateStatus(ctx, walletID, domain.WalletStatusClosed); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("close wallet: %w", err))
	}

	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    actorID,
		Action:     "WALLET_CLOSED",
		EntityType: "master_wallet",
		EntityID:   walletID,
		OldValue:   wallet.Status,
		NewValue:   domain.WalletStatusClosed,
	})
	return nil
}

// Apply validates and posts a pool-level movement. Replays of the same
// wallet+reference return the original transaction. A cumulative-limit breach
// creates a PENDING transaction with no balance effect; the hard
// single-transaction cap fails outright.
func (s *WalletLedgerService) Apply(ctx context.Context, p ports.ApplyParams) (*domain.WalletTransaction, error) {
	if !domain.ValidAmount(p.Amount) {
		return nil, apperror.ErrInvalidAmount()
	}
	if p.Reference == "" {
		return nil, apperror.Validation("reference is required")
	}
	if p.Type == domain.WalletTransactionTypeTransfer && p.CounterpartyWalletID == nil {
		return nil, apperror.Validation("transfer requires a counterparty wallet")
	}

	idempKey := idempotencyKey(p.WalletID, p.Reference)

	// Layer 1: Redis idempotency check
	cached, err := s.idempCache.Get(ctx, idempKey)
	if err != nil {
		s.log.Warn().Err(err).Str("key", idempKey).Msg("redis idempotency check failed, falling through to DB")
	}
	if cached != nil {
		return unmarshalCachedTransaction(cached)
	}

	// Layer 2: DB idempotency check (reference is unique per wallet)
	prior, err := s.txRepo.GetByReference(ctx, p.WalletID, p.Reference)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("reference lookup: %w", err))
	}
	if prior != nil {
		return prior, nil
	}

	// Historical stats feed risk scoring; read before taking any locks.
	_, histAvg, err := s.txRepo.CompletedStats(ctx, p.WalletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("completed stats: %w", err))
	}

	var txn *domain.WalletTransaction
	err = withSerializationRetry(ctx, func(ctx context.Context) error {
		t, err := s.applyOnce(ctx, p, histAvg)
		if err != nil {
			return err
		}
		txn = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.postCommit(ctx, txn, p.ActorID, idempKey)
	return txn, nil
}

func (s *WalletLedgerService) applyOnce(ctx context.Context, p ports.ApplyParams, histAvg decimal.Decimal) (*domain.WalletTransaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, counterparty, err := s.lockWallets(ctx, dbTx, p.WalletID, p.CounterpartyWalletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}
	if !wallet.IsActive() {
		return nil, apperror.ErrWalletNotActive()
	}
	if !wallet.IsAuthorized(p.ActorID) {
		return nil, apperror.ErrActorNotAuthorized()
	}
	if p.Type == domain.WalletTransactionTypeTransfer {
		if counterparty == nil {
			return nil, apperror.ErrNotFound("Counterparty wallet")
		}
		if !counterparty.IsActive() {
			return nil, apperror.ErrWalletNotActive()
		}
	}

	balances, err := decryptWalletBalances(s.encSvc, wallet)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := &domain.WalletTransaction{
		ID:                   uuid.New(),
		WalletID:             wallet.ID,
		Type:                 p.Type,
		Amount:               p.Amount,
		CounterpartyWalletID: p.CounterpartyWalletID,
		RiskScore:            s.monitor.ScoreTransaction(p.Amount, histAvg, wallet.SecurityLevel),
		Description:          p.Description,
		Reference:            p.Reference,
		PerformedBy:          p.ActorID,
		CreatedAt:            now,
	}

	if p.Type.IsOutflow() {
		if wallet.MaxSingleTransaction.IsPositive() && p.Amount.GreaterThan(wallet.MaxSingleTransaction) {
			return nil, apperror.ErrLimitExceeded("single")
		}
		if p.Amount.GreaterThan(balances.Available) {
			return nil, apperror.ErrInsufficientFunds()
		}

		breached, window, err := s.cumulativeBreach(ctx, wallet, p.Amount, now)
		if err != nil {
			return nil, err
		}
		if breached {
			// Balance untouched until an approver signs off.
			txn.Status = domain.WalletTransactionStatusPending
			txn.ApprovalRequired = true
			if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
				return nil, apperror.ErrDatabaseError(fmt.Errorf("create pending transaction: %w", err))
			}
			if err := dbTx.Commit(ctx); err != nil {
				return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
			}
			s.log.Info().
				Str("tx_id", txn.ID.String()).
				Str("wallet_id", wallet.ID.String()).
				Str("window", window).
				Msg("cumulative limit reached, transaction held for approval")
			return txn, nil
		}
	}

	applyMovement(balances, txn)
	txn.Status = domain.WalletTransactionStatusCompleted
	txn.ProcessedAt = &now

	encBal, encAvail, encRes, err := encryptWalletBalances(s.encSvc, balances)
	if err != nil {
		return nil, err
	}
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet.ID, encBal, encAvail, encRes); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update balances: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create transaction: %w", err))
	}

	if p.Type == domain.WalletTransactionTypeTransfer {
		if err := s.creditCounterparty(ctx, dbTx, counterparty, txn, now); err != nil {
			return nil, err
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return txn, nil
}

// Approve releases a held transaction. A transaction held because of
// cumulative limits moves funds at approval time, re-checked against the
// current balance: if funds ran out in the meantime it fails instead.
func (s *WalletLedgerService) Approve(ctx context.Context, transactionID, actorID uuid.UUID) (*domain.WalletTransaction, error) {
	var txn *domain.WalletTransaction
	err := withSerializationRetry(ctx, func(ctx context.Context) error {
		t, err := s.approveOnce(ctx, transactionID, actorID)
		if err != nil {
			return err
		}
		txn = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := "WALLET_TX_APPROVED"
	if txn.Status == domain.WalletTransactionStatusFailed {
		action = "WALLET_TX_APPROVAL_FAILED"
	}
	s.metrics.WalletTransactions.WithLabelValues(string(txn.Type), string(txn.Status)).Inc()
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    actorID,
		Action:     action,
		EntityType: "wallet_transaction",
		EntityID:   txn.ID,
		NewValue:   txn,
	})
	return txn, nil
}

func (s *WalletLedgerService) approveOnce(ctx context.Context, transactionID, actorID uuid.UUID) (*domain.WalletTransaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	txn, err := s.txRepo.GetByIDForUpdate(ctx, dbTx, transactionID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("Transaction")
	}
	if txn.Status != domain.WalletTransactionStatusPending {
		return nil, apperror.ErrTransactionNotPending()
	}
	if actorID == txn.PerformedBy {
		// Requester cannot approve their own transaction.
		return nil, apperror.ErrActorNotAuthorized()
	}

	wallet, counterparty, err := s.lockWallets(ctx, dbTx, txn.WalletID, txn.CounterpartyWalletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}
	if !wallet.IsActive() {
		return nil, apperror.ErrWalletNotActive()
	}
	if !wallet.IsAuthorized(actorID) {
		return nil, apperror.ErrActorNotAuthorized()
	}

	balances, err := decryptWalletBalances(s.encSvc, wallet)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn.ApprovedBy = &actorID
	txn.ApprovedAt = &now
	txn.ProcessedAt = &now

	if txn.Type.IsOutflow() && txn.Amount.GreaterThan(balances.Available) {
		// Funds moved while the approval was pending.
		txn.Status = domain.WalletTransactionStatusFailed
		if err := s.txRepo.Complete(ctx, dbTx, txn); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("fail transaction: %w", err))
		}
		if err := dbTx.Commit(ctx); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
		}
		s.log.Warn().
			Str("tx_id", txn.ID.String()).
			Str("wallet_id", wallet.ID.String()).
			Msg("approval failed, balance no longer sufficient")
		return txn, nil
	}

	applyMovement(balances, txn)
	txn.Status = domain.WalletTransactionStatusCompleted

	encBal, encAvail, encRes, err := encryptWalletBalances(s.encSvc, balances)
	if err != nil {
		return nil, err
	}
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet.ID, encBal, encAvail, encRes); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update balances: %w", err))
	}
	if err := s.txRepo.Complete(ctx, dbTx, txn); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("complete transaction: %w", err))
	}

	if txn.Type == domain.WalletTransactionTypeTransfer && counterparty != nil {
		if err := s.creditCounterparty(ctx, dbTx, counterparty, txn, now); err != nil {
			return nil, err
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return txn, nil
}

// Reject declines a held transaction. No funds ever moved, so the row just
// transitions to FAILED.
func (s *WalletLedgerService) Reject(ctx context.Context, transactionID, actorID uuid.UUID, reason string) (*domain.WalletTransaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	txn, err := s.txRepo.GetByIDForUpdate(ctx, dbTx, transactionID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("Transaction")
	}
	if txn.Status != domain.WalletTransactionStatusPending {
		return nil, apperror.ErrTransactionNotPending()
	}

	wallet, err := s.walletRepo.GetByID(ctx, txn.WalletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet != nil && !wallet.IsAuthorized(actorID) {
		return nil, apperror.ErrActorNotAuthorized()
	}

	if err := s.txRepo.UpdateStatus(ctx, dbTx, txn.ID, domain.WalletTransactionStatusFailed); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("reject transaction: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	txn.Status = domain.WalletTransactionStatusFailed
	s.metrics.WalletTransactions.WithLabelValues(string(txn.Type), string(txn.Status)).Inc()
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    actorID,
		Action:     "WALLET_TX_REJECTED",
		EntityType: "wallet_transaction",
		EntityID:   txn.ID,
		NewValue:   map[string]string{"reason": reason},
	})
	return txn, nil
}

// RequestReversal opens a reversal case against a completed transaction.
// The original row stays untouched; money moves only after approval and the
// cooling-off hold.
func (s *WalletLedgerService) RequestReversal(ctx context.Context, transactionID, actorID uuid.UUID, reason string) (*domain.TransactionReversal, error) {
	if reason == "" {
		return nil, apperror.Validation("reversal reason is required")
	}

	txn, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("Transaction")
	}
	if !txn.IsReversible() {
		return nil, apperror.ErrReversalNotEligible()
	}

	rev := &domain.TransactionReversal{
		ID:            uuid.New(),
		TransactionID: txn.ID,
		WalletID:      txn.WalletID,
		Amount:        txn.Amount,
		Reason:        reason,
		Status:        domain.ReversalStatusPending,
		RequestedBy:   actorID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.revRepo.Create(ctx, rev); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create reversal: %w", err))
	}

	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    actorID,
		Action:     "REVERSAL_REQUESTED",
		EntityType: "transaction_reversal",
		EntityID:   rev.ID,
		NewValue:   rev,
	})
	return rev, nil
}

// ApproveReversal accepts a pending reversal and starts the cooling-off hold.
func (s *WalletLedgerService) ApproveReversal(ctx context.Context, reversalID, actorID uuid.UUID) (*domain.TransactionReversal, error) {
	rev, err := s.decideReversal(ctx, reversalID, actorID, domain.ReversalStatusApproved)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    actorID,
		Action:     "REVERSAL_APPROVED",
		EntityType: "transaction_reversal",
		EntityID:   rev.ID,
		NewValue:   rev,
	})
	return rev, nil
}

// RejectReversal declines a pending reversal. Terminal.
func (s *WalletLedgerService) RejectReversal(ctx context.Context, reversalID, actorID uuid.UUID, reason string) (*domain.TransactionReversal, error) {
	rev, err := s.decideReversal(ctx, reversalID, actorID, domain.ReversalStatusRejected)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    actorID,
		Action:     "REVERSAL_REJECTED",
		EntityType: "transaction_reversal",
		EntityID:   rev.ID,
		NewValue:   map[string]string{"reason": reason},
	})
	return rev, nil
}

func (s *WalletLedgerService) decideReversal(ctx context.Context, reversalID, actorID uuid.UUID, decision domain.ReversalStatus) (*domain.TransactionReversal, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	rev, err := s.revRepo.GetByIDForUpdate(ctx, dbTx, reversalID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock reversal: %w", err))
	}
	if rev == nil {
		return nil, apperror.ErrNotFound("Reversal")
	}
	if !rev.CanDecide() {
		return nil, apperror.ErrReversalNotEligible()
	}
	if actorID == rev.RequestedBy {
		// Requester cannot decide their own reversal.
		return nil, apperror.ErrActorNotAuthorized()
	}

	now := time.Now().UTC()
	rev.Status = decision
	rev.DecidedBy = &actorID
	rev.DecidedAt = &now
	if decision == domain.ReversalStatusApproved {
		hold := now.Add(s.cfg.ReversalHold)
		rev.HoldUntil = &hold
	}

	if err := s.revRepo.Update(ctx, dbTx, rev); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update reversal: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return rev, nil
}

// CompleteDueReversals posts compensating transactions for approved reversals
// whose hold elapsed. Failures are logged and retried by the next sweep.
func (s *WalletLedgerService) CompleteDueReversals(ctx context.Context) (int, error) {
	due, err := s.revRepo.ListDue(ctx, time.Now().UTC())
	if err != nil {
		return 0, apperror.ErrDatabaseError(fmt.Errorf("list due reversals: %w", err))
	}

	completed := 0
	for i := range due {
		revID := due[i].ID
		err := withSerializationRetry(ctx, func(ctx context.Context) error {
			return s.completeReversal(ctx, revID)
		})
		if err != nil {
			s.log.Error().Err(err).Str("reversal_id", revID.String()).Msg("reversal completion failed")
			continue
		}
		completed++
	}
	return completed, nil
}

func (s *WalletLedgerService) completeReversal(ctx context.Context, reversalID uuid.UUID) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	rev, err := s.revRepo.GetByIDForUpdate(ctx, dbTx, reversalID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("lock reversal: %w", err))
	}
	if rev == nil || !rev.DueForCompletion(now) {
		// Raced with another sweep.
		return nil
	}

	orig, err := s.txRepo.GetByIDForUpdate(ctx, dbTx, rev.TransactionID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("lock original transaction: %w", err))
	}
	if orig == nil || orig.Status != domain.WalletTransactionStatusCompleted {
		return nil
	}

	wallet, counterparty, err := s.lockWallets(ctx, dbTx, rev.WalletID, orig.CounterpartyWalletID)
	if err != nil {
		return err
	}
	if wallet == nil {
		return apperror.ErrNotFound("Wallet")
	}

	balances, err := decryptWalletBalances(s.encSvc, wallet)
	if err != nil {
		return err
	}

	// A transfer reversal claws the receiving leg back from the counterparty,
	// so that wallet must still cover the amount before anything moves.
	var cpBalances *domain.WalletBalances
	if orig.Type == domain.WalletTransactionTypeTransfer {
		if counterparty == nil {
			return apperror.ErrNotFound("Counterparty wallet")
		}
		cpBalances, err = decryptWalletBalances(s.encSvc, counterparty)
		if err != nil {
			return err
		}
		if rev.Amount.GreaterThan(cpBalances.Available) {
			return apperror.ErrInsufficientFunds()
		}
	}

	compType := domain.WalletTransactionTypeDebit
	if orig.Type.IsOutflow() {
		compType = domain.WalletTransactionTypeCredit
	}
	if compType == domain.WalletTransactionTypeDebit && rev.Amount.GreaterThan(balances.Available) {
		return apperror.ErrInsufficientFunds()
	}

	performer := rev.RequestedBy
	if rev.DecidedBy != nil {
		performer = *rev.DecidedBy
	}
	comp := &domain.WalletTransaction{
		ID:          uuid.New(),
		WalletID:    rev.WalletID,
		Type:        compType,
		Amount:      rev.Amount,
		Status:      domain.WalletTransactionStatusCompleted,
		Description: "Reversal of " + orig.ID.String(),
		Reference:   orig.Reference + ":rev",
		OriginalID:  &orig.ID,
		PerformedBy: performer,
		CreatedAt:   now,
		ProcessedAt: &now,
	}
	applyMovement(balances, comp)

	encBal, encAvail, encRes, err := encryptWalletBalances(s.encSvc, balances)
	if err != nil {
		return err
	}
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet.ID, encBal, encAvail, encRes); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update balances: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, comp); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("create compensating transaction: %w", err))
	}
	if err := s.txRepo.UpdateStatus(ctx, dbTx, orig.ID, domain.WalletTransactionStatusReversed); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("mark original reversed: %w", err))
	}

	if orig.Type == domain.WalletTransactionTypeTransfer {
		if err := s.reverseCounterparty(ctx, dbTx, counterparty, cpBalances, orig, rev, performer, now); err != nil {
			return err
		}
	}

	rev.Status = domain.ReversalStatusCompleted
	rev.CompensatingTxnID = &comp.ID
	rev.CompletedAt = &now
	if err := s.revRepo.Update(ctx, dbTx, rev); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update reversal: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.WalletTransactions.WithLabelValues(string(comp.Type), string(comp.Status)).Inc()
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    performer,
		Action:     "REVERSAL_COMPLETED",
		EntityType: "transaction_reversal",
		EntityID:   rev.ID,
		NewValue:   rev,
	})
	s.log.Info().
		Str("reversal_id", rev.ID.String()).
		Str("compensating_tx_id", comp.ID.String()).
		Msg("reversal completed")
	return nil
}

// --- internals ---

// lockWallets locks one or two wallet rows in a stable order so concurrent
// transfers between the same pair cannot deadlock.
func (s *WalletLedgerService) lockWallets(ctx context.Context, dbTx pgx.Tx, primaryID uuid.UUID, secondaryID *uuid.UUID) (*domain.MasterWallet, *domain.MasterWallet, error) {
	if secondaryID == nil || *secondaryID == primaryID {
		w, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, primaryID)
		if err != nil {
			return nil, nil, apperror.ErrDatabaseError(fmt.Errorf("lock wallet: %w", err))
		}
		return w, nil, nil
	}

	first, second := primaryID, *secondaryID
	if second.String() < first.String() {
		first, second = second, first
	}
	a, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, first)
	if err != nil {
		return nil, nil, apperror.ErrDatabaseError(fmt.Errorf("lock wallet: %w", err))
	}
	b, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, second)
	if err != nil {
		return nil, nil, apperror.ErrDatabaseError(fmt.Errorf("lock wallet: %w", err))
	}

	if a != nil && a.ID == primaryID {
		return a, b, nil
	}
	return b, a, nil
}

// creditCounterparty posts the receiving leg of a transfer inside the same
// database transaction as the sending leg.
func (s *WalletLedgerService) creditCounterparty(ctx context.Context, dbTx pgx.Tx, cp *domain.MasterWallet, src *domain.WalletTransaction, now time.Time) error {
	balances, err := decryptWalletBalances(s.encSvc, cp)
	if err != nil {
		return err
	}

	mirror := &domain.WalletTransaction{
		ID:                   uuid.New(),
		WalletID:             cp.ID,
		Type:                 domain.WalletTransactionTypeCredit,
		Amount:               src.Amount,
		CounterpartyWalletID: &src.WalletID,
		Status:               domain.WalletTransactionStatusCompleted,
		Description:          src.Description,
		Reference:            src.Reference,
		PerformedBy:          src.PerformedBy,
		CreatedAt:            now,
		ProcessedAt:          &now,
	}
	applyMovement(balances, mirror)

	encBal, encAvail, encRes, err := encryptWalletBalances(s.encSvc, balances)
	if err != nil {
		return err
	}
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, cp.ID, encBal, encAvail, encRes); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update counterparty balances: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, mirror); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("create counterparty transaction: %w", err))
	}
	return nil
}

// reverseCounterparty posts the claw-back leg of a transfer reversal: the
// counterparty is debited by the reversed amount and its mirror credit is
// marked REVERSED, all inside the same database transaction as the source
// wallet's compensating credit.
func (s *WalletLedgerService) reverseCounterparty(ctx context.Context, dbTx pgx.Tx, cp *domain.MasterWallet, balances *domain.WalletBalances, orig *domain.WalletTransaction, rev *domain.TransactionReversal, performer uuid.UUID, now time.Time) error {
	comp := &domain.WalletTransaction{
		ID:                   uuid.New(),
		WalletID:             cp.ID,
		Type:                 domain.WalletTransactionTypeDebit,
		Amount:               rev.Amount,
		CounterpartyWalletID: &rev.WalletID,
		Status:               domain.WalletTransactionStatusCompleted,
		Description:          "Reversal of " + orig.ID.String(),
		Reference:            orig.Reference + ":rev",
		PerformedBy:          performer,
		CreatedAt:            now,
		ProcessedAt:          &now,
	}

	mirror, err := s.txRepo.GetByReference(ctx, cp.ID, orig.Reference)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("find mirror credit: %w", err))
	}
	if mirror != nil {
		comp.OriginalID = &mirror.ID
	}
	applyMovement(balances, comp)

	encBal, encAvail, encRes, err := encryptWalletBalances(s.encSvc, balances)
	if err != nil {
		return err
	}
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, cp.ID, encBal, encAvail, encRes); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update counterparty balances: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, comp); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("create counterparty reversal: %w", err))
	}
	if mirror != nil {
		if err := s.txRepo.UpdateStatus(ctx, dbTx, mirror.ID, domain.WalletTransactionStatusReversed); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("mark mirror reversed: %w", err))
		}
	}
	return nil
}

// cumulativeBreach checks whether amount would push the wallet's outflows
// past its daily or monthly limit. Pending outflows count so stacked
// requests cannot bypass the window.
func (s *WalletLedgerService) cumulativeBreach(ctx context.Context, wallet *domain.MasterWallet, amount decimal.Decimal, now time.Time) (bool, string, error) {
	statuses := []domain.WalletTransactionStatus{
		domain.WalletTransactionStatusPending,
		domain.WalletTransactionStatusCompleted,
	}

	if wallet.DailyLimit.IsPositive() {
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		sum, err := s.txRepo.SumAmounts(ctx, wallet.ID, statuses, dayStart, dayStart.Add(24*time.Hour))
		if err != nil {
			return false, "", apperror.ErrDatabaseError(fmt.Errorf("sum daily outflows: %w", err))
		}
		if sum.Add(amount).GreaterThan(wallet.DailyLimit) {
			return true, "daily", nil
		}
	}

	if wallet.MonthlyLimit.IsPositive() {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		sum, err := s.txRepo.SumAmounts(ctx, wallet.ID, statuses, monthStart, monthStart.AddDate(0, 1, 0))
		if err != nil {
			return false, "", apperror.ErrDatabaseError(fmt.Errorf("sum monthly outflows: %w", err))
		}
		if sum.Add(amount).GreaterThan(wallet.MonthlyLimit) {
			return true, "monthly", nil
		}
	}

	return false, "", nil
}

func (s *WalletLedgerService) postCommit(ctx context.Context, txn *domain.WalletTransaction, actorID uuid.UUID, idempKey string) {
	if respJSON, err := json.Marshal(txn); err == nil {
		if err := s.idempCache.Set(ctx, idempKey, respJSON, idempotencyTTL); err != nil {
			s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache idempotency in redis")
		}
	}

	s.metrics.WalletTransactions.WithLabelValues(string(txn.Type), string(txn.Status)).Inc()

	action := "WALLET_TX_COMPLETED"
	if txn.Status == domain.WalletTransactionStatusPending {
		action = "WALLET_TX_HELD"
	}
	s.audit.Record(ctx, ports.RecordEntryParams{
		ActorID:    actorID,
		Action:     action,
		EntityType: "wallet_transaction",
		EntityID:   txn.ID,
		NewValue:   txn,
	})

	if txn.RiskScore >= s.cfg.RiskAlertThreshold {
		_, err := s.monitor.Raise(ctx, ports.RaiseAlertParams{
			Type:       domain.AlertTypeHighRiskTransaction,
			Severity:   SeverityForScore(txn.RiskScore),
			EntityType: "wallet_transaction",
			EntityID:   txn.ID,
			Details:    fmt.Sprintf("transaction %s scored %d against wallet history", txn.ID, txn.RiskScore),
			RiskScore:  txn.RiskScore,
		})
		if err != nil {
			s.log.Warn().Err(err).Str("tx_id", txn.ID.String()).Msg("failed to raise high-risk alert")
		}
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("wallet_id", txn.WalletID.String()).
		Str("type", string(txn.Type)).
		Str("status", string(txn.Status)).
		Str("amount", txn.Amount.StringFixed(2)).
		Msg("wallet transaction recorded")
}

// applyMovement mutates the balance triple by the transaction's signed amount
// and records the before/after balance on the row.
func applyMovement(b *domain.WalletBalances, txn *domain.WalletTransaction) {
	before := b.Balance
	delta := txn.SignedAmount()
	b.Balance = b.Balance.Add(delta)
	b.Available = b.Available.Add(delta)
	txn.BalanceBefore = decimal.NewNullDecimal(before)
	txn.BalanceAfter = decimal.NewNullDecimal(b.Balance)
}

func unmarshalCachedTransaction(data []byte) (*domain.WalletTransaction, error) {
	var txn domain.WalletTransaction
	if err := json.Unmarshal(data, &txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached transaction: %w", err))
	}
	return &txn, nil
}

func idempotencyKey(walletID uuid.UUID, reference string) string {
	return fmt.Sprintf("wtx:%s:%s", walletID, reference)
}
