package dto

// Monetary amounts travel as decimal strings ("1500.00") and are validated by
// the "money" binding: positive, at most 2 fractional digits.

// CreateWalletRequest is the request body for master wallet bootstrap.
type CreateWalletRequest struct {
	Name                 string   `json:"name" binding:"required,min=1,max=100"`
	Purpose              string   `json:"purpose" binding:"required,oneof=OPERATING RESERVE PROFIT SETTLEMENT"`
	Currency             string   `json:"currency" binding:"required,len=3"`
	OpeningBalance       string   `json:"opening_balance" binding:"required,money"`
	ReserveBalance       *string  `json:"reserve_balance,omitempty" binding:"omitempty,money"`
	SecurityLevel        string   `json:"security_level" binding:"required,oneof=STANDARD HIGH CRITICAL"`
	MaxSingleTransaction string   `json:"max_single_transaction" binding:"required,money"`
	DailyLimit           string   `json:"daily_limit" binding:"required,money"`
	MonthlyLimit         string   `json:"monthly_limit" binding:"required,money"`
	AuthorizedActors     []string `json:"authorized_actors,omitempty" binding:"omitempty,dive,uuid"`
}

// ApplyTransactionRequest is the request body for a pool-level movement.
type ApplyTransactionRequest struct {
	Type                 string  `json:"type" binding:"required,oneof=CREDIT DEBIT TRANSFER"`
	Amount               string  `json:"amount" binding:"required,money"`
	CounterpartyWalletID *string `json:"counterparty_wallet_id,omitempty" binding:"omitempty,uuid"`
	Description          string  `json:"description,omitempty" binding:"max=255"`
	Reference            string  `json:"reference" binding:"required,max=100,safe_id"`
}

// RejectRequest carries the reason for rejecting a pending item.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=255"`
}

// ReversalRequest is the request body for requesting a transaction reversal.
type ReversalRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=255"`
}

// AllocateRequest is the request body for carving a float allocation.
type AllocateRequest struct {
	SourceWalletID string `json:"source_wallet_id" binding:"required,uuid"`
	TargetTellerID string `json:"target_teller_id" binding:"required,uuid"`
	BranchID       string `json:"branch_id" binding:"required,uuid"`
	Amount         string `json:"amount" binding:"required,money"`
	Purpose        string `json:"purpose" binding:"required,min=1,max=255"`
}

// RecallRequest is the request body for recalling an active allocation.
type RecallRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=255"`
}

// OpenDrawerRequest is the request body for opening a teller drawer.
type OpenDrawerRequest struct {
	TellerID       string `json:"teller_id" binding:"required,uuid"`
	BranchID       string `json:"branch_id" binding:"required,uuid"`
	AllocationID   string `json:"allocation_id" binding:"required,uuid"`
	OpeningBalance string `json:"opening_balance" binding:"required,money"`
}

// DrawerTransactionRequest is the request body for a teller cash movement.
type DrawerTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=CASH_IN CASH_OUT DEPOSIT WITHDRAWAL"`
	Amount      string  `json:"amount" binding:"required,money"`
	CustomerRef *string `json:"customer_ref,omitempty" binding:"omitempty,max=100,safe_id"`
}

// CloseDrawerRequest is the request body for closing a drawer.
type CloseDrawerRequest struct {
	ActualCounted string `json:"actual_counted" binding:"required"`
	Notes         string `json:"notes,omitempty" binding:"max=500"`
}

// ApproveVarianceRequest is the supervisor sign-off on a flagged reconciliation.
type ApproveVarianceRequest struct {
	PIN            string `json:"pin" binding:"required,min=4,max=64"`
	OverrideReason string `json:"override_reason" binding:"required,min=1,max=500"`
}

// ResolveAlertRequest is the request body for resolving a security alert.
type ResolveAlertRequest struct {
	Notes string `json:"notes" binding:"required,min=1,max=500"`
}

// WalletResponse is the API view of a master wallet.
type WalletResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Purpose              string   `json:"purpose"`
	Currency             string   `json:"currency"`
	SecurityLevel        string   `json:"security_level"`
	Status               string   `json:"status"`
	MaxSingleTransaction string   `json:"max_single_transaction"`
	DailyLimit           string   `json:"daily_limit"`
	MonthlyLimit         string   `json:"monthly_limit"`
	AuthorizedActors     []string `json:"authorized_actors,omitempty"`
	CreatedAt            string   `json:"created_at"`
}

// BalancesResponse is the decrypted balance triple of a wallet.
type BalancesResponse struct {
	Balance   string `json:"balance"`
	Available string `json:"available"`
	Reserve   string `json:"reserve"`
}

// TransactionResponse is the API view of a wallet transaction.
type TransactionResponse struct {
	ID                   string  `json:"id"`
	WalletID             string  `json:"wallet_id"`
	Type                 string  `json:"type"`
	Amount               string  `json:"amount"`
	BalanceBefore        *string `json:"balance_before,omitempty"`
	BalanceAfter         *string `json:"balance_after,omitempty"`
	CounterpartyWalletID *string `json:"counterparty_wallet_id,omitempty"`
	Status               string  `json:"status"`
	RiskScore            int     `json:"risk_score"`
	ApprovalRequired     bool    `json:"approval_required"`
	Description          string  `json:"description,omitempty"`
	Reference            string  `json:"reference"`
	CreatedAt            string  `json:"created_at"`
	ProcessedAt          *string `json:"processed_at,omitempty"`
}

// ReversalResponse is the API view of a transaction reversal.
type ReversalResponse struct {
	ID                string  `json:"id"`
	TransactionID     string  `json:"transaction_id"`
	WalletID          string  `json:"wallet_id"`
	Amount            string  `json:"amount"`
	Reason            string  `json:"reason"`
	Status            string  `json:"status"`
	HoldUntil         *string `json:"hold_until,omitempty"`
	CompensatingTxnID *string `json:"compensating_txn_id,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

// AllocationResponse is the API view of a float allocation.
type AllocationResponse struct {
	ID              string `json:"id"`
	SourceWalletID  string `json:"source_wallet_id"`
	TargetTellerID  string `json:"target_teller_id"`
	BranchID        string `json:"branch_id"`
	Amount          string `json:"amount"`
	RemainingAmount string `json:"remaining_amount"`
	ActualUsage     string `json:"actual_usage"`
	Purpose         string `json:"purpose"`
	Status          string `json:"status"`
	ExpiresAt       string `json:"expires_at"`
	CreatedAt       string `json:"created_at"`
}

// DrawerResponse is the API view of a teller drawer.
type DrawerResponse struct {
	ID                   string  `json:"id"`
	TellerID             string  `json:"teller_id"`
	BranchID             string  `json:"branch_id"`
	AllocationID         string  `json:"allocation_id"`
	OpeningBalance       string  `json:"opening_balance"`
	CurrentBalance       string  `json:"current_balance"`
	TotalCashIn          string  `json:"total_cash_in"`
	TotalCashOut         string  `json:"total_cash_out"`
	Status               string  `json:"status"`
	LastReconciliationID *string `json:"last_reconciliation_id,omitempty"`
	OpenedAt             string  `json:"opened_at"`
	ClosedAt             *string `json:"closed_at,omitempty"`
}

// DrawerTransactionResponse is the API view of a drawer cash movement.
type DrawerTransactionResponse struct {
	ID            string  `json:"id"`
	DrawerID      string  `json:"drawer_id"`
	Type          string  `json:"type"`
	Amount        string  `json:"amount"`
	BalanceBefore string  `json:"balance_before"`
	BalanceAfter  string  `json:"balance_after"`
	CustomerRef   *string `json:"customer_ref,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// ReconciliationResponse is the API view of a reconciliation record.
type ReconciliationResponse struct {
	ID                         string  `json:"id"`
	SubjectType                string  `json:"subject_type"`
	SubjectID                  string  `json:"subject_id"`
	ExpectedBalance            string  `json:"expected_balance"`
	ActualBalance              string  `json:"actual_balance"`
	Difference                 string  `json:"difference"`
	Classification             string  `json:"classification"`
	Notes                      string  `json:"notes,omitempty"`
	RequiresSupervisorApproval bool    `json:"requires_supervisor_approval"`
	ApprovedBy                 *string `json:"approved_by,omitempty"`
	CreatedAt                  string  `json:"created_at"`
}

// AlertResponse is the API view of a security alert.
type AlertResponse struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Severity        string  `json:"severity"`
	EntityType      string  `json:"entity_type"`
	EntityID        string  `json:"entity_id"`
	Details         string  `json:"details,omitempty"`
	RiskScore       int     `json:"risk_score"`
	EscalationLevel int     `json:"escalation_level"`
	Resolved        bool    `json:"resolved"`
	ResolutionNotes *string `json:"resolution_notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// AuditEntryResponse is the API view of one audit trail entry.
type AuditEntryResponse struct {
	ID         string  `json:"id"`
	ActorID    string  `json:"actor_id"`
	Action     string  `json:"action"`
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	OldValue   *string `json:"old_value,omitempty"`
	NewValue   *string `json:"new_value,omitempty"`
	EntryHash  string  `json:"entry_hash"`
	CreatedAt  string  `json:"created_at"`
}
