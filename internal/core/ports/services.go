package ports

import (
	"context"
	"time"

	"branch-cash-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EncryptionService handles AES-256-GCM encryption of balances at rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// HashService handles supervisor PIN hashing (Argon2id).
type HashService interface {
	Hash(pin string) (string, error)
	Verify(pin string, hash string) (bool, error)
}

// TokenService handles JWT actor token operations for the API layer.
type TokenService interface {
	Generate(actorID uuid.UUID, role string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims. The actor id is trusted as-is;
// identity proofing is the excluded identity provider's job.
type TokenClaims struct {
	ActorID uuid.UUID
	Role    string
}

// --- Core Ledger Ports ---

// CreateWalletParams holds validated input for wallet bootstrap.
type CreateWalletParams struct {
	Name                 string
	Purpose              domain.WalletPurpose
	Currency             string
	OpeningBalance       decimal.Decimal
	ReserveBalance       decimal.Decimal
	SecurityLevel        domain.SecurityLevel
	MaxSingleTransaction decimal.Decimal
	DailyLimit           decimal.Decimal
	MonthlyLimit         decimal.Decimal
	AuthorizedActors     []uuid.UUID
	ActorID              uuid.UUID
}

// ApplyParams holds validated input for a pool-level movement.
type ApplyParams struct {
	WalletID             uuid.UUID
	Type                 domain.WalletTransactionType
	Amount               decimal.Decimal
	CounterpartyWalletID *uuid.UUID
	Description          string
	Reference            string
	ActorID              uuid.UUID
}

// WalletLedger owns master-wallet balances and their transaction history.
type WalletLedger interface {
	CreateWallet(ctx context.Context, p CreateWalletParams) (*domain.MasterWallet, error)
	GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.MasterWallet, error)
	// Balances decrypts and returns the wallet's balance triple.
	Balances(ctx context.Context, walletID uuid.UUID) (*domain.WalletBalances, error)
	CloseWallet(ctx context.Context, walletID, actorID uuid.UUID) error

	// Apply validates and posts a movement. Cumulative-limit breaches come
	// back as a PENDING transaction with no balance effect; the hard
	// single-transaction cap fails outright.
	Apply(ctx context.Context, p ApplyParams) (*domain.WalletTransaction, error)
	Approve(ctx context.Context, transactionID, actorID uuid.UUID) (*domain.WalletTransaction, error)
	Reject(ctx context.Context, transactionID, actorID uuid.UUID, reason string) (*domain.WalletTransaction, error)

	RequestReversal(ctx context.Context, transactionID, actorID uuid.UUID, reason string) (*domain.TransactionReversal, error)
	ApproveReversal(ctx context.Context, reversalID, actorID uuid.UUID) (*domain.TransactionReversal, error)
	RejectReversal(ctx context.Context, reversalID, actorID uuid.UUID, reason string) (*domain.TransactionReversal, error)
	// CompleteDueReversals posts compensating transactions for APPROVED
	// reversals whose hold elapsed. Returns how many completed.
	CompleteDueReversals(ctx context.Context) (int, error)
}

// AllocateParams holds validated input for carving a float allocation.
type AllocateParams struct {
	SourceWalletID uuid.UUID
	TargetTellerID uuid.UUID
	BranchID       uuid.UUID
	Amount         decimal.Decimal
	Purpose        string
	RequestedBy    uuid.UUID
}

// FloatAllocationManager carves bounded, expiring slices of a master wallet's
// funds for tellers.
type FloatAllocationManager interface {
	Allocate(ctx context.Context, p AllocateParams) (*domain.FloatAllocation, error)
	Approve(ctx context.Context, allocationID, actorID uuid.UUID) (*domain.FloatAllocation, error)
	Reject(ctx context.Context, allocationID, actorID uuid.UUID, reason string) (*domain.FloatAllocation, error)
	GetAllocation(ctx context.Context, allocationID uuid.UUID) (*domain.FloatAllocation, error)
	// Consume atomically moves amount from remaining to actual usage.
	Consume(ctx context.Context, allocationID uuid.UUID, amount decimal.Decimal) error
	// Recall refunds the remaining amount captured under lock; consumed usage
	// is never clawed back.
	Recall(ctx context.Context, allocationID, actorID uuid.UUID, reason string) (*domain.FloatAllocation, error)
	// ExpireDue recalls every ACTIVE allocation past expiry. Returns how many.
	ExpireDue(ctx context.Context) (int, error)
}

// OpenDrawerParams holds validated input for opening a teller drawer.
type OpenDrawerParams struct {
	TellerID       uuid.UUID
	BranchID       uuid.UUID
	AllocationID   uuid.UUID
	OpeningBalance decimal.Decimal
	ActorID        uuid.UUID
}

// RecordDrawerParams holds validated input for a teller cash movement.
type RecordDrawerParams struct {
	DrawerID    uuid.UUID
	Type        domain.DrawerTransactionType
	Amount      decimal.Decimal
	CustomerRef *string
	ActorID     uuid.UUID
}

// CloseDrawerParams holds validated input for closing a drawer.
type CloseDrawerParams struct {
	DrawerID      uuid.UUID
	ActualCounted decimal.Decimal
	Notes         string
	ActorID       uuid.UUID
}

// TellerDrawerLedger is the teller-facing running cash balance.
type TellerDrawerLedger interface {
	Open(ctx context.Context, p OpenDrawerParams) (*domain.TellerDrawer, error)
	GetDrawer(ctx context.Context, drawerID uuid.UUID) (*domain.TellerDrawer, error)
	Record(ctx context.Context, p RecordDrawerParams) (*domain.DrawerTransaction, error)
	// Close reconciles against the counted balance and closes the drawer.
	Close(ctx context.Context, p CloseDrawerParams) (*domain.ReconciliationRecord, error)
}

// ReconcileParams holds input for one reconciliation run.
type ReconcileParams struct {
	SubjectType   domain.ReconciliationSubjectType
	SubjectID     uuid.UUID
	PeriodStart   time.Time
	PeriodEnd     time.Time
	ActualBalance decimal.Decimal
	Notes         string
	PerformedBy   uuid.UUID
}

// ReconciliationEngine recomputes expected balances from immutable logs and
// classifies variance.
type ReconciliationEngine interface {
	Reconcile(ctx context.Context, p ReconcileParams) (*domain.ReconciliationRecord, error)
	// ApproveVariance attaches a supervisor sign-off, unblocking the subject.
	// The supervisor's override PIN is verified against its Argon2id hash.
	ApproveVariance(ctx context.Context, recordID, supervisorID uuid.UUID, pin, overrideReason string) (*domain.ReconciliationRecord, error)
}

// RaiseAlertParams holds input for raising a security alert.
type RaiseAlertParams struct {
	Type       domain.AlertType
	Severity   domain.AlertSeverity
	EntityType string
	EntityID   uuid.UUID
	Details    string
	RiskScore  int
}

// SecurityAlertMonitor evaluates risk thresholds and raises/resolves alerts.
// All methods are best-effort from the ledger's point of view: failures are
// logged and never roll back the mutation that triggered them.
type SecurityAlertMonitor interface {
	Raise(ctx context.Context, p RaiseAlertParams) (*domain.SecurityAlert, error)
	Resolve(ctx context.Context, alertID, actorID uuid.UUID, notes string) (*domain.SecurityAlert, error)
	List(ctx context.Context, resolved *bool) ([]domain.SecurityAlert, error)
	// ScoreTransaction rates an amount against the wallet's historical
	// volume, returning a 0-100 risk score.
	ScoreTransaction(amount, historicalAvg decimal.Decimal, level domain.SecurityLevel) int
}

// RecordEntryParams holds input for one audit trail entry.
type RecordEntryParams struct {
	ActorID    uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	OldValue   any
	NewValue   any
}

// AuditTrail is the append-only log of every mutating call.
type AuditTrail interface {
	// Record appends an entry asynchronously (fire-and-forget).
	Record(ctx context.Context, p RecordEntryParams)
	Query(ctx context.Context, entityID uuid.UUID) ([]domain.AuditEntry, error)
}

// NotificationDispatcher forwards security alerts for human follow-up.
// Delivery failure must never affect ledger state.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, alert *domain.SecurityAlert) error
}
