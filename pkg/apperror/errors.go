package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet Ledger (LED) ----

func ErrInsufficientFunds() *AppError {
	return New("LED_001", "Insufficient available balance", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("LED_002", "Invalid amount", http.StatusBadRequest)
}

// ErrLimitExceeded covers the hard single-transaction cap. Never auto-approved.
func ErrLimitExceeded(limit string) *AppError {
	return New("LED_003", fmt.Sprintf("Amount exceeds %s transaction limit", limit), http.StatusUnprocessableEntity)
}

func ErrApprovalRequired() *AppError {
	return New("LED_004", "Transaction requires approval before funds move", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("LED_005", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrWalletNotActive() *AppError {
	return New("LED_006", "Wallet is not active", http.StatusForbidden)
}

func ErrTransactionNotPending() *AppError {
	return New("LED_007", "Transaction is not pending approval", http.StatusConflict)
}

func ErrReversalNotEligible() *AppError {
	return New("LED_008", "Transaction is not eligible for reversal", http.StatusBadRequest)
}

func ErrReversalHoldActive() *AppError {
	return New("LED_009", "Reversal hold period has not elapsed", http.StatusConflict)
}

// ---- Float Allocations (FLT) ----

func ErrAllocationNotFound() *AppError {
	return New("FLT_001", "Float allocation not found", http.StatusNotFound)
}

func ErrAllocationExpired() *AppError {
	return New("FLT_002", "Float allocation is expired or no longer active", http.StatusConflict)
}

func ErrAllocationDepleted() *AppError {
	return New("FLT_003", "Float allocation has insufficient remaining amount", http.StatusPaymentRequired)
}

func ErrAllocationNotPending() *AppError {
	return New("FLT_004", "Float allocation is not pending approval", http.StatusConflict)
}

// ---- Teller Drawers (DRW) ----

func ErrDrawerNotOpen() *AppError {
	return New("DRW_001", "Teller drawer is not open", http.StatusConflict)
}

func ErrDrawerAlreadyOpen() *AppError {
	return New("DRW_002", "Teller already has an active drawer", http.StatusConflict)
}

func ErrDrawerBlocked() *AppError {
	return New("DRW_003", "Previous reconciliation variance awaits supervisor approval", http.StatusConflict)
}

// ---- Reconciliation (REC) ----

func ErrReconciliationVarianceExceeded() *AppError {
	return New("REC_001", "Reconciliation variance exceeds tolerance", http.StatusConflict)
}

func ErrReconciliationNotFlagged() *AppError {
	return New("REC_002", "Reconciliation record does not require supervisor approval", http.StatusConflict)
}

func ErrInvalidSupervisorPIN() *AppError {
	return New("REC_003", "Supervisor PIN verification failed", http.StatusForbidden)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrActorNotAuthorized() *AppError {
	return New("AUTH_002", "Actor is not authorized for this wallet", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrConcurrentModification(err error) *AppError {
	return Wrap("SYS_002", "Concurrent modification, retries exhausted", http.StatusConflict, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// ErrAuditWriteFailure is non-fatal: callers log it and carry on.
func ErrAuditWriteFailure(err error) *AppError {
	return Wrap("SYS_004", "Audit trail write failed", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a LED_002-style validation error.
func Validation(message string) *AppError {
	return New("LED_002", message, http.StatusBadRequest)
}
