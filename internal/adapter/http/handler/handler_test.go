package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"branch-cash-ledger/internal/adapter/http/dto"
	"branch-cash-ledger/internal/adapter/http/middleware"
	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/internal/core/ports/mocks"
	"branch-cash-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T, method, path string, body any, actorID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if actorID != uuid.Nil {
		c.Set(middleware.CtxActorID, actorID)
	}
	return c, w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

// --- Wallet Handler ---

func TestCreateWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockWalletLedger(ctrl)
	h := NewWalletHandler(ledger)

	actorID := uuid.New()
	walletID := uuid.New()
	ledger.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.CreateWalletParams) (*domain.MasterWallet, error) {
			assert.Equal(t, "Branch Operating Pool", p.Name)
			assert.Equal(t, domain.WalletPurposeOperating, p.Purpose)
			assert.True(t, p.OpeningBalance.Equal(decimal.RequireFromString("50000.00")))
			assert.Equal(t, actorID, p.ActorID)
			return &domain.MasterWallet{
				ID:                   walletID,
				Name:                 p.Name,
				Purpose:              p.Purpose,
				Currency:             p.Currency,
				SecurityLevel:        p.SecurityLevel,
				Status:               domain.WalletStatusActive,
				MaxSingleTransaction: p.MaxSingleTransaction,
				DailyLimit:           p.DailyLimit,
				MonthlyLimit:         p.MonthlyLimit,
				CreatedAt:            time.Now(),
			}, nil
		})

	c, w := testContext(t, http.MethodPost, "/api/v1/wallets", dto.CreateWalletRequest{
		Name:                 "Branch Operating Pool",
		Purpose:              "OPERATING",
		Currency:             "KES",
		OpeningBalance:       "50000.00",
		SecurityLevel:        "HIGH",
		MaxSingleTransaction: "10000.00",
		DailyLimit:           "100000.00",
		MonthlyLimit:         "2000000.00",
	}, actorID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w)
	assert.Equal(t, walletID.String(), data["id"])
	assert.Equal(t, "ACTIVE", data["status"])
	assert.Equal(t, "10000.00", data["max_single_transaction"])
}

func TestCreateWallet_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWalletHandler(mocks.NewMockWalletLedger(ctrl))

	c, w := testContext(t, http.MethodPost, "/api/v1/wallets", map[string]string{
		"name": "Pool",
	}, uuid.New())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateWallet_RejectsBadMoney(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWalletHandler(mocks.NewMockWalletLedger(ctrl))

	c, w := testContext(t, http.MethodPost, "/api/v1/wallets", map[string]string{
		"name":                   "Pool",
		"purpose":                "OPERATING",
		"currency":               "KES",
		"opening_balance":        "50000.123", // 3 decimal places
		"security_level":         "HIGH",
		"max_single_transaction": "10000.00",
		"daily_limit":            "100000.00",
		"monthly_limit":          "2000000.00",
	}, uuid.New())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyTransaction_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockWalletLedger(ctrl)
	h := NewWalletHandler(ledger)

	actorID := uuid.New()
	walletID := uuid.New()
	txnID := uuid.New()

	ledger.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.ApplyParams) (*domain.WalletTransaction, error) {
			assert.Equal(t, walletID, p.WalletID)
			assert.Equal(t, domain.WalletTransactionTypeDebit, p.Type)
			assert.True(t, p.Amount.Equal(decimal.RequireFromString("1500.00")))
			assert.Equal(t, "PAYROLL-2026-08", p.Reference)
			return &domain.WalletTransaction{
				ID:          txnID,
				WalletID:    walletID,
				Type:        p.Type,
				Amount:      p.Amount,
				Status:      domain.WalletTransactionStatusCompleted,
				Reference:   p.Reference,
				PerformedBy: actorID,
				CreatedAt:   time.Now(),
			}, nil
		})

	c, w := testContext(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/transactions", dto.ApplyTransactionRequest{
		Type:      "DEBIT",
		Amount:    "1500.00",
		Reference: "PAYROLL-2026-08",
	}, actorID)
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}

	h.Apply(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w)
	assert.Equal(t, txnID.String(), data["id"])
	assert.Equal(t, "COMPLETED", data["status"])
}

func TestApplyTransaction_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockWalletLedger(ctrl)
	h := NewWalletHandler(ledger)

	walletID := uuid.New()
	ledger.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrInsufficientFunds())

	c, w := testContext(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/transactions", dto.ApplyTransactionRequest{
		Type:      "DEBIT",
		Amount:    "999999.00",
		Reference: "BIG-ONE",
	}, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}

	h.Apply(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "LED_001")
}

func TestApplyTransaction_NoActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWalletHandler(mocks.NewMockWalletLedger(ctrl))

	walletID := uuid.New()
	c, w := testContext(t, http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/transactions", dto.ApplyTransactionRequest{
		Type:      "CREDIT",
		Amount:    "100.00",
		Reference: "REF-1",
	}, uuid.Nil)
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}

	h.Apply(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApproveTransaction_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockWalletLedger(ctrl)
	h := NewWalletHandler(ledger)

	actorID := uuid.New()
	txnID := uuid.New()
	ledger.EXPECT().Approve(gomock.Any(), txnID, actorID).Return(&domain.WalletTransaction{
		ID:        txnID,
		WalletID:  uuid.New(),
		Type:      domain.WalletTransactionTypeDebit,
		Amount:    decimal.RequireFromString("5000.00"),
		Status:    domain.WalletTransactionStatusCompleted,
		Reference: "FLOAT-REQ",
		CreatedAt: time.Now(),
	}, nil)

	c, w := testContext(t, http.MethodPost, "/api/v1/wallet-transactions/"+txnID.String()+"/approve", nil, actorID)
	c.Params = gin.Params{{Key: "id", Value: txnID.String()}}

	h.Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "COMPLETED", data["status"])
}

func TestRequestReversal_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockWalletLedger(ctrl)
	h := NewWalletHandler(ledger)

	actorID := uuid.New()
	txnID := uuid.New()
	reversalID := uuid.New()

	ledger.EXPECT().RequestReversal(gomock.Any(), txnID, actorID, "duplicate posting").Return(&domain.TransactionReversal{
		ID:            reversalID,
		TransactionID: txnID,
		WalletID:      uuid.New(),
		Amount:        decimal.RequireFromString("250.00"),
		Reason:        "duplicate posting",
		Status:        domain.ReversalStatusPending,
		CreatedAt:     time.Now(),
	}, nil)

	c, w := testContext(t, http.MethodPost, "/api/v1/wallet-transactions/"+txnID.String()+"/reversals", dto.ReversalRequest{
		Reason: "duplicate posting",
	}, actorID)
	c.Params = gin.Params{{Key: "id", Value: txnID.String()}}

	h.RequestReversal(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w)
	assert.Equal(t, reversalID.String(), data["id"])
	assert.Equal(t, "PENDING", data["status"])
}

func TestGetWallet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockWalletLedger(ctrl)
	h := NewWalletHandler(ledger)

	walletID := uuid.New()
	ledger.EXPECT().GetWallet(gomock.Any(), walletID).Return(nil, nil)

	c, w := testContext(t, http.MethodGet, "/api/v1/wallets/"+walletID.String(), nil, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBalances_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockWalletLedger(ctrl)
	h := NewWalletHandler(ledger)

	walletID := uuid.New()
	ledger.EXPECT().Balances(gomock.Any(), walletID).Return(&domain.WalletBalances{
		Balance:   decimal.RequireFromString("50000.00"),
		Available: decimal.RequireFromString("45000.00"),
		Reserve:   decimal.RequireFromString("5000.00"),
	}, nil)

	c, w := testContext(t, http.MethodGet, "/api/v1/wallets/"+walletID.String()+"/balances", nil, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}

	h.Balances(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "50000.00", data["balance"])
	assert.Equal(t, "45000.00", data["available"])
	assert.Equal(t, "5000.00", data["reserve"])
}

// --- Allocation Handler ---

func TestAllocate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	allocMgr := mocks.NewMockFloatAllocationManager(ctrl)
	h := NewAllocationHandler(allocMgr)

	actorID := uuid.New()
	sourceID := uuid.New()
	tellerID := uuid.New()
	branchID := uuid.New()
	allocationID := uuid.New()

	allocMgr.EXPECT().Allocate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.AllocateParams) (*domain.FloatAllocation, error) {
			assert.Equal(t, sourceID, p.SourceWalletID)
			assert.Equal(t, tellerID, p.TargetTellerID)
			assert.Equal(t, actorID, p.RequestedBy)
			return &domain.FloatAllocation{
				ID:              allocationID,
				SourceWalletID:  sourceID,
				TargetTellerID:  tellerID,
				BranchID:        branchID,
				Amount:          p.Amount,
				RemainingAmount: p.Amount,
				ActualUsage:     decimal.Zero,
				Purpose:         p.Purpose,
				Status:          domain.AllocationStatusPendingApproval,
				ExpiresAt:       time.Now().Add(8 * time.Hour),
				CreatedAt:       time.Now(),
			}, nil
		})

	c, w := testContext(t, http.MethodPost, "/api/v1/allocations", dto.AllocateRequest{
		SourceWalletID: sourceID.String(),
		TargetTellerID: tellerID.String(),
		BranchID:       branchID.String(),
		Amount:         "2000.00",
		Purpose:        "morning shift float",
	}, actorID)

	h.Allocate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w)
	assert.Equal(t, allocationID.String(), data["id"])
	assert.Equal(t, "PENDING_APPROVAL", data["status"])
	assert.Equal(t, "2000.00", data["remaining_amount"])
}

func TestRecallAllocation_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	allocMgr := mocks.NewMockFloatAllocationManager(ctrl)
	h := NewAllocationHandler(allocMgr)

	actorID := uuid.New()
	allocationID := uuid.New()
	allocMgr.EXPECT().Recall(gomock.Any(), allocationID, actorID, "end of shift").Return(&domain.FloatAllocation{
		ID:              allocationID,
		SourceWalletID:  uuid.New(),
		TargetTellerID:  uuid.New(),
		BranchID:        uuid.New(),
		Amount:          decimal.RequireFromString("2000.00"),
		RemainingAmount: decimal.Zero,
		ActualUsage:     decimal.RequireFromString("1400.00"),
		Status:          domain.AllocationStatusRecalled,
		ExpiresAt:       time.Now(),
		CreatedAt:       time.Now(),
	}, nil)

	c, w := testContext(t, http.MethodPost, "/api/v1/allocations/"+allocationID.String()+"/recall", dto.RecallRequest{
		Reason: "end of shift",
	}, actorID)
	c.Params = gin.Params{{Key: "id", Value: allocationID.String()}}

	h.Recall(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "RECALLED", data["status"])
	assert.Equal(t, "0.00", data["remaining_amount"])
}

// --- Drawer Handler ---

func TestOpenDrawer_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	drawerLedger := mocks.NewMockTellerDrawerLedger(ctrl)
	h := NewDrawerHandler(drawerLedger)

	actorID := uuid.New()
	drawerID := uuid.New()
	tellerID := uuid.New()
	branchID := uuid.New()
	allocationID := uuid.New()

	drawerLedger.EXPECT().Open(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.OpenDrawerParams) (*domain.TellerDrawer, error) {
			assert.Equal(t, tellerID, p.TellerID)
			assert.Equal(t, allocationID, p.AllocationID)
			return &domain.TellerDrawer{
				ID:             drawerID,
				TellerID:       tellerID,
				BranchID:       branchID,
				AllocationID:   allocationID,
				OpeningBalance: p.OpeningBalance,
				CurrentBalance: p.OpeningBalance,
				Status:         domain.DrawerStatusActive,
				OpenedAt:       time.Now(),
			}, nil
		})

	c, w := testContext(t, http.MethodPost, "/api/v1/drawers", dto.OpenDrawerRequest{
		TellerID:       tellerID.String(),
		BranchID:       branchID.String(),
		AllocationID:   allocationID.String(),
		OpeningBalance: "2000.00",
	}, actorID)

	h.Open(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w)
	assert.Equal(t, drawerID.String(), data["id"])
	assert.Equal(t, "ACTIVE", data["status"])
	assert.Equal(t, "2000.00", data["current_balance"])
}

func TestRecordDrawerTransaction_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	drawerLedger := mocks.NewMockTellerDrawerLedger(ctrl)
	h := NewDrawerHandler(drawerLedger)

	actorID := uuid.New()
	drawerID := uuid.New()
	customerRef := "ACC-7781"

	drawerLedger.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.RecordDrawerParams) (*domain.DrawerTransaction, error) {
			assert.Equal(t, drawerID, p.DrawerID)
			assert.Equal(t, domain.DrawerTransactionTypeCashOut, p.Type)
			require.NotNil(t, p.CustomerRef)
			assert.Equal(t, customerRef, *p.CustomerRef)
			return &domain.DrawerTransaction{
				ID:            uuid.New(),
				DrawerID:      drawerID,
				Type:          p.Type,
				Amount:        p.Amount,
				BalanceBefore: decimal.RequireFromString("2000.00"),
				BalanceAfter:  decimal.RequireFromString("1700.00"),
				CustomerRef:   p.CustomerRef,
				PerformedBy:   actorID,
				CreatedAt:     time.Now(),
			}, nil
		})

	c, w := testContext(t, http.MethodPost, "/api/v1/drawers/"+drawerID.String()+"/transactions", dto.DrawerTransactionRequest{
		Type:        "CASH_OUT",
		Amount:      "300.00",
		CustomerRef: &customerRef,
	}, actorID)
	c.Params = gin.Params{{Key: "id", Value: drawerID.String()}}

	h.Record(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "1700.00", data["balance_after"])
}

func TestCloseDrawer_ReturnsReconciliation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	drawerLedger := mocks.NewMockTellerDrawerLedger(ctrl)
	h := NewDrawerHandler(drawerLedger)

	actorID := uuid.New()
	drawerID := uuid.New()
	recordID := uuid.New()

	drawerLedger.EXPECT().Close(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.CloseDrawerParams) (*domain.ReconciliationRecord, error) {
			assert.Equal(t, drawerID, p.DrawerID)
			assert.True(t, p.ActualCounted.Equal(decimal.RequireFromString("1695.00")))
			return &domain.ReconciliationRecord{
				ID:                         recordID,
				SubjectType:                domain.ReconciliationSubjectDrawer,
				SubjectID:                  drawerID,
				ExpectedBalance:            decimal.RequireFromString("1700.00"),
				ActualBalance:              p.ActualCounted,
				Difference:                 decimal.RequireFromString("-5.00"),
				Classification:             domain.VarianceShort,
				RequiresSupervisorApproval: true,
				CreatedAt:                  time.Now(),
			}, nil
		})

	c, w := testContext(t, http.MethodPost, "/api/v1/drawers/"+drawerID.String()+"/close", dto.CloseDrawerRequest{
		ActualCounted: "1695.00",
		Notes:         "short after count",
	}, actorID)
	c.Params = gin.Params{{Key: "id", Value: drawerID.String()}}

	h.Close(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "SHORT", data["classification"])
	assert.Equal(t, "-5.00", data["difference"])
	assert.Equal(t, true, data["requires_supervisor_approval"])
}

func TestCloseDrawer_AllowsZeroCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	drawerLedger := mocks.NewMockTellerDrawerLedger(ctrl)
	h := NewDrawerHandler(drawerLedger)

	drawerID := uuid.New()
	drawerLedger.EXPECT().Close(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.CloseDrawerParams) (*domain.ReconciliationRecord, error) {
			assert.True(t, p.ActualCounted.IsZero())
			return &domain.ReconciliationRecord{
				ID:             uuid.New(),
				SubjectType:    domain.ReconciliationSubjectDrawer,
				SubjectID:      drawerID,
				Classification: domain.VarianceShort,
				CreatedAt:      time.Now(),
			}, nil
		})

	c, w := testContext(t, http.MethodPost, "/api/v1/drawers/"+drawerID.String()+"/close", dto.CloseDrawerRequest{
		ActualCounted: "0.00",
	}, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: drawerID.String()}}

	h.Close(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Reconciliation Handler ---

func TestApproveVariance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockReconciliationEngine(ctrl)
	h := NewReconciliationHandler(engine)

	supervisorID := uuid.New()
	recordID := uuid.New()

	engine.EXPECT().ApproveVariance(gomock.Any(), recordID, supervisorID, "1234", "till counted twice").Return(&domain.ReconciliationRecord{
		ID:                         recordID,
		SubjectType:                domain.ReconciliationSubjectDrawer,
		SubjectID:                  uuid.New(),
		Classification:             domain.VarianceShort,
		RequiresSupervisorApproval: true,
		ApprovedBy:                 &supervisorID,
		CreatedAt:                  time.Now(),
	}, nil)

	c, w := testContext(t, http.MethodPost, "/api/v1/reconciliations/"+recordID.String()+"/approve", dto.ApproveVarianceRequest{
		PIN:            "1234",
		OverrideReason: "till counted twice",
	}, supervisorID)
	c.Params = gin.Params{{Key: "id", Value: recordID.String()}}

	h.ApproveVariance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, supervisorID.String(), data["approved_by"])
}

func TestApproveVariance_InvalidPIN(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockReconciliationEngine(ctrl)
	h := NewReconciliationHandler(engine)

	recordID := uuid.New()
	engine.EXPECT().ApproveVariance(gomock.Any(), recordID, gomock.Any(), "0000", gomock.Any()).
		Return(nil, apperror.ErrInvalidSupervisorPIN())

	c, w := testContext(t, http.MethodPost, "/api/v1/reconciliations/"+recordID.String()+"/approve", dto.ApproveVarianceRequest{
		PIN:            "0000",
		OverrideReason: "attempted override",
	}, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: recordID.String()}}

	h.ApproveVariance(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "REC_003")
}

// --- Alert Handler ---

func TestListAlerts_FiltersResolved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	monitor := mocks.NewMockSecurityAlertMonitor(ctrl)
	h := NewAlertHandler(monitor)

	monitor.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, resolved *bool) ([]domain.SecurityAlert, error) {
			require.NotNil(t, resolved)
			assert.False(t, *resolved)
			return []domain.SecurityAlert{{
				ID:        uuid.New(),
				Type:      domain.AlertTypeHighRiskTransaction,
				Severity:  domain.AlertSeverityHigh,
				RiskScore: 85,
				CreatedAt: time.Now(),
			}}, nil
		})

	c, w := testContext(t, http.MethodGet, "/api/v1/alerts?resolved=false", nil, uuid.New())

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "HIGH_RISK_TRANSACTION")
}

func TestListAlerts_BadFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewAlertHandler(mocks.NewMockSecurityAlertMonitor(ctrl))

	c, w := testContext(t, http.MethodGet, "/api/v1/alerts?resolved=maybe", nil, uuid.New())

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveAlert_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	monitor := mocks.NewMockSecurityAlertMonitor(ctrl)
	h := NewAlertHandler(monitor)

	actorID := uuid.New()
	alertID := uuid.New()
	notes := "verified with branch manager"

	monitor.EXPECT().Resolve(gomock.Any(), alertID, actorID, notes).Return(&domain.SecurityAlert{
		ID:              alertID,
		Type:            domain.AlertTypeReconciliationVariance,
		Severity:        domain.AlertSeverityMedium,
		Resolved:        true,
		ResolutionNotes: &notes,
		CreatedAt:       time.Now(),
	}, nil)

	c, w := testContext(t, http.MethodPost, "/api/v1/alerts/"+alertID.String()+"/resolve", dto.ResolveAlertRequest{
		Notes: notes,
	}, actorID)
	c.Params = gin.Params{{Key: "id", Value: alertID.String()}}

	h.Resolve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, true, data["resolved"])
}

// --- Audit Handler ---

func TestAuditQuery_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trail := mocks.NewMockAuditTrail(ctrl)
	h := NewAuditHandler(trail)

	entityID := uuid.New()
	trail.EXPECT().Query(gomock.Any(), entityID).Return([]domain.AuditEntry{{
		ID:         uuid.New(),
		ActorID:    uuid.New(),
		Action:     "WALLET_TRANSACTION_APPLIED",
		EntityType: "wallet",
		EntityID:   entityID,
		EntryHash:  "abc123",
		CreatedAt:  time.Now(),
	}}, nil)

	c, w := testContext(t, http.MethodGet, "/api/v1/audit/"+entityID.String(), nil, uuid.New())
	c.Params = gin.Params{{Key: "entityID", Value: entityID.String()}}

	h.Query(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "WALLET_TRANSACTION_APPLIED")
	assert.Contains(t, w.Body.String(), "abc123")
}

// --- Health Handler ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck_AllHealthy(t *testing.T) {
	router := gin.New()
	router.GET("/health", HealthCheck(stubChecker{name: "postgres"}, stubChecker{name: "redis"}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestHealthCheck_Degraded(t *testing.T) {
	router := gin.New()
	router.GET("/health", HealthCheck(
		stubChecker{name: "postgres"},
		stubChecker{name: "redis", err: errors.New("connection refused")},
	))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
	assert.Contains(t, w.Body.String(), "connection refused")
}
