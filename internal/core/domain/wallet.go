package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletPurpose tags what a master wallet's pooled funds are for.
type WalletPurpose string

const (
	WalletPurposeOperating  WalletPurpose = "OPERATING"
	WalletPurposeReserve    WalletPurpose = "RESERVE"
	WalletPurposeProfit     WalletPurpose = "PROFIT"
	WalletPurposeSettlement WalletPurpose = "SETTLEMENT"
)

// WalletStatus represents the lifecycle state of a master wallet.
type WalletStatus string

const (
	WalletStatusActive    WalletStatus = "ACTIVE"
	WalletStatusSuspended WalletStatus = "SUSPENDED"
	WalletStatusClosed    WalletStatus = "CLOSED"
)

// SecurityLevel controls how aggressively the alert monitor scores a wallet.
type SecurityLevel string

const (
	SecurityLevelStandard SecurityLevel = "STANDARD"
	SecurityLevelHigh     SecurityLevel = "HIGH"
	SecurityLevelCritical SecurityLevel = "CRITICAL"
)

// MasterWallet is a top-level pooled account of bank funds. Balances are
// AES-256 encrypted at rest; the ledger decrypts, computes with fixed-point
// decimals, and re-encrypts inside the same database transaction.
type MasterWallet struct {
	ID                   uuid.UUID       `json:"id"`
	Name                 string          `json:"name"`
	Purpose              WalletPurpose   `json:"purpose"`
	Currency             string          `json:"currency"`
	EncryptedBalance     string          `json:"-"`
	EncryptedAvailable   string          `json:"-"`
	EncryptedReserve     string          `json:"-"`
	SecurityLevel        SecurityLevel   `json:"security_level"`
	Status               WalletStatus    `json:"status"`
	MaxSingleTransaction decimal.Decimal `json:"max_single_transaction"`
	DailyLimit           decimal.Decimal `json:"daily_limit"`
	MonthlyLimit         decimal.Decimal `json:"monthly_limit"`
	AuthorizedActors     []uuid.UUID     `json:"authorized_actors,omitempty"`
	KeyRef               string          `json:"-"` // Encryption key reference
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// IsActive returns true when the wallet accepts mutations.
func (w *MasterWallet) IsActive() bool {
	return w.Status == WalletStatusActive
}

// IsAuthorized reports whether actor may pass this wallet's approval gates.
// An empty set means no per-wallet restriction.
func (w *MasterWallet) IsAuthorized(actor uuid.UUID) bool {
	if len(w.AuthorizedActors) == 0 {
		return true
	}
	for _, a := range w.AuthorizedActors {
		if a == actor {
			return true
		}
	}
	return false
}

// WalletBalances is the decrypted balance triple of a master wallet.
// Invariant maintained by the ledger: Available = Balance - Reserve
// (float allocations debit Balance and Available together; unconsumed
// remainders are credited back on recall or expiry).
type WalletBalances struct {
	Balance   decimal.Decimal
	Available decimal.Decimal
	Reserve   decimal.Decimal
}
