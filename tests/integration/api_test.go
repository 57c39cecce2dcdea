package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"branch-cash-ledger/config"
	httpHandler "branch-cash-ledger/internal/adapter/http/handler"
	redisStorage "branch-cash-ledger/internal/adapter/storage/redis"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/internal/observability"
	"branch-cash-ledger/internal/service"
	"branch-cash-ledger/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires the full stack end-to-end: real HTTP layer, middleware,
// handlers, services, real AES/JWT/Argon2 crypto and Redis stores backed by
// miniredis, with in-memory repositories standing in for Postgres.

const supervisorPIN = "246810"

type testApp struct {
	server       *httptest.Server
	redis        *miniredis.Miniredis
	tokenSvc     *service.JWTTokenService
	walletLedger ports.WalletLedger
	allocMgr     ports.FloatAllocationManager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	encSvc, err := service.NewAESEncryptionService("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	sigSvc := service.NewHMACSignatureService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 24*time.Hour, "test-issuer")

	pinHash, err := hashSvc.Hash(supervisorPIN)
	require.NoError(t, err)

	walletRepo := newInMemoryWalletRepo()
	walletTxRepo := newInMemoryWalletTxRepo()
	reversalRepo := newInMemoryReversalRepo()
	allocRepo := newInMemoryAllocationRepo()
	drawerRepo := newInMemoryDrawerRepo()
	drawerTxRepo := newInMemoryDrawerTxRepo()
	recRepo := newInMemoryReconciliationRepo()
	alertRepo := newInMemoryAlertRepo()
	auditRepo := newInMemoryAuditRepo()
	transactor := newLockingTransactor()

	log := logger.New("error", false)
	metrics := observability.NewMetrics()

	auditTrail := service.NewAuditTrailService(auditRepo, sigSvc, "audit-secret", log)
	alertMonitor := service.NewAlertMonitorService(alertRepo, nil, metrics, log)

	ledgerCfg := config.LedgerConfig{
		AllocationApprovalThreshold: "50000.00",
		AllocationTTL:               8 * time.Hour,
		ReversalHold:                0, // approved reversals complete on the next sweep
		RiskAlertThreshold:          75,
	}

	walletLedger := service.NewWalletLedgerService(
		walletRepo, walletTxRepo, reversalRepo, idempotencyCache,
		encSvc, transactor, auditTrail, alertMonitor, metrics, ledgerCfg, log,
	)
	allocationMgr := service.NewAllocationManagerService(
		allocRepo, walletRepo, walletTxRepo,
		encSvc, transactor, auditTrail, alertMonitor, metrics, ledgerCfg, log,
	)
	reconEngine := service.NewReconciliationEngineService(
		recRepo, walletTxRepo, drawerRepo, drawerTxRepo, hashSvc,
		transactor, auditTrail, alertMonitor, metrics,
		config.ReconciliationConfig{Tolerance: "10.00", OverridePINHash: pinHash}, log,
	)
	drawerLedger := service.NewDrawerLedgerService(
		drawerRepo, drawerTxRepo, allocRepo, recRepo, reconEngine,
		transactor, auditTrail, metrics, log,
	)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletLedger:   walletLedger,
		AllocationMgr:  allocationMgr,
		DrawerLedger:   drawerLedger,
		ReconEngine:    reconEngine,
		AlertMonitor:   alertMonitor,
		AuditTrail:     auditTrail,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		Metrics:        metrics,
		Logger:         log,
	})

	return &testApp{
		server:       httptest.NewServer(router),
		redis:        mr,
		tokenSvc:     tokenSvc,
		walletLedger: walletLedger,
		allocMgr:     allocationMgr,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

func (a *testApp) token(t *testing.T, actorID uuid.UUID, role string) string {
	t.Helper()
	token, _, err := a.tokenSvc.Generate(actorID, role)
	require.NoError(t, err)
	return token
}

// do issues an authenticated JSON request and decodes the envelope.
func (a *testApp) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", string(raw))
	}
	return resp.StatusCode, envelope
}

func data(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	d, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "missing data field: %v", envelope)
	return d
}

func (a *testApp) createWallet(t *testing.T, token, opening string) string {
	t.Helper()
	status, body := a.do(t, http.MethodPost, "/api/v1/wallets", token, map[string]any{
		"name":                   "Branch Operating Pool",
		"purpose":                "OPERATING",
		"currency":               "KES",
		"opening_balance":        opening,
		"security_level":         "STANDARD",
		"max_single_transaction": "50000.00",
		"daily_limit":            "500000.00",
		"monthly_limit":          "5000000.00",
	})
	require.Equal(t, http.StatusCreated, status, "create wallet: %v", body)
	return data(t, body)["id"].(string)
}

func (a *testApp) balances(t *testing.T, token, walletID string) map[string]any {
	t.Helper()
	status, body := a.do(t, http.MethodGet, "/api/v1/wallets/"+walletID+"/balances", token, nil)
	require.Equal(t, http.StatusOK, status)
	return data(t, body)
}

// --- Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_Unauthenticated(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	status, _ := app.do(t, http.MethodGet, "/api/v1/alerts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestIntegration_WalletLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	manager := app.token(t, uuid.New(), "MANAGER")
	walletID := app.createWallet(t, manager, "100000.00")

	bal := app.balances(t, manager, walletID)
	assert.Equal(t, "100000.00", bal["balance"])
	assert.Equal(t, "100000.00", bal["available"])
	assert.Equal(t, "0.00", bal["reserve"])

	// Debit moves the balance and logs an immutable entry.
	status, body := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/transactions", manager, map[string]any{
		"type":      "DEBIT",
		"amount":    "1000.00",
		"reference": "CASH-OUT-001",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	txn := data(t, body)
	assert.Equal(t, "COMPLETED", txn["status"])
	assert.Equal(t, "99000.00", *strPtr(txn["balance_after"]))

	bal = app.balances(t, manager, walletID)
	assert.Equal(t, "99000.00", bal["balance"])

	// Close is refused while funds remain.
	status, _ = app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/close", manager, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestIntegration_IdempotentReplay(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	manager := app.token(t, uuid.New(), "MANAGER")
	walletID := app.createWallet(t, manager, "10000.00")

	payload := map[string]any{
		"type":      "DEBIT",
		"amount":    "400.00",
		"reference": "REPLAY-001",
	}
	status, first := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/transactions", manager, payload)
	require.Equal(t, http.StatusCreated, status)

	status, second := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/transactions", manager, payload)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, data(t, first)["id"], data(t, second)["id"])

	bal := app.balances(t, manager, walletID)
	assert.Equal(t, "9600.00", bal["balance"], "replay must not debit twice")
}

func TestIntegration_InsufficientFunds(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	manager := app.token(t, uuid.New(), "MANAGER")
	walletID := app.createWallet(t, manager, "500.00")

	status, body := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/transactions", manager, map[string]any{
		"type":      "DEBIT",
		"amount":    "500.01",
		"reference": "OVERDRAW-001",
	})
	assert.Equal(t, http.StatusPaymentRequired, status)
	assert.Equal(t, "LED_001", body["error_code"])
}

func TestIntegration_ReversalFlow(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	managerID := uuid.New()
	supervisorID := uuid.New()
	manager := app.token(t, managerID, "MANAGER")
	supervisor := app.token(t, supervisorID, "SUPERVISOR")

	walletID := app.createWallet(t, manager, "10000.00")

	status, body := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/transactions", manager, map[string]any{
		"type":      "DEBIT",
		"amount":    "2500.00",
		"reference": "MISPOST-001",
	})
	require.Equal(t, http.StatusCreated, status)
	txnID := data(t, body)["id"].(string)

	// Request by the manager, decided by the supervisor.
	status, body = app.do(t, http.MethodPost, "/api/v1/wallet-transactions/"+txnID+"/reversals", manager, map[string]any{
		"reason": "posted against the wrong wallet",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	revID := data(t, body)["id"].(string)

	// The requester cannot decide their own reversal.
	status, _ = app.do(t, http.MethodPost, "/api/v1/reversals/"+revID+"/approve", manager, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = app.do(t, http.MethodPost, "/api/v1/reversals/"+revID+"/approve", supervisor, nil)
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, "APPROVED", data(t, body)["status"])

	// Hold is zero in this stack, so the sweep completes it immediately.
	n, err := app.walletLedger.CompleteDueReversals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	bal := app.balances(t, manager, walletID)
	assert.Equal(t, "10000.00", bal["balance"], "compensation restores the original balance")
}

func TestIntegration_TellerShiftEndToEnd(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	managerID := uuid.New()
	tellerID := uuid.New()
	manager := app.token(t, managerID, "MANAGER")
	teller := app.token(t, tellerID, "TELLER")

	walletID := app.createWallet(t, manager, "100000.00")

	// Allocate float below the approval threshold: activates immediately.
	status, body := app.do(t, http.MethodPost, "/api/v1/allocations", manager, map[string]any{
		"source_wallet_id": walletID,
		"target_teller_id": tellerID.String(),
		"branch_id":        uuid.New().String(),
		"amount":           "20000.00",
		"purpose":          "morning shift float",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	alloc := data(t, body)
	require.Equal(t, "ACTIVE", alloc["status"])
	allocID := alloc["id"].(string)

	bal := app.balances(t, manager, walletID)
	assert.Equal(t, "80000.00", bal["balance"], "float debits the source wallet")

	// Open the drawer against the allocation.
	status, body = app.do(t, http.MethodPost, "/api/v1/drawers", teller, map[string]any{
		"teller_id":       tellerID.String(),
		"branch_id":       uuid.New().String(),
		"allocation_id":   allocID,
		"opening_balance": "15000.00",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	drawerID := data(t, body)["id"].(string)

	// Shift activity: customer deposits 500, teller pays out 2000.
	status, _ = app.do(t, http.MethodPost, "/api/v1/drawers/"+drawerID+"/transactions", teller, map[string]any{
		"type":   "CASH_IN",
		"amount": "500.00",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = app.do(t, http.MethodPost, "/api/v1/drawers/"+drawerID+"/transactions", teller, map[string]any{
		"type":   "CASH_OUT",
		"amount": "2000.00",
	})
	require.Equal(t, http.StatusCreated, status)

	// Opening the drawer stages cash without consuming the float; only the
	// cash-out counts as usage. Remaining: 20000 - 2000.
	status, body = app.do(t, http.MethodGet, "/api/v1/allocations/"+allocID, teller, nil)
	require.Equal(t, http.StatusOK, status)
	alloc = data(t, body)
	assert.Equal(t, "18000.00", alloc["remaining_amount"])
	assert.Equal(t, "2000.00", alloc["actual_usage"])

	// Close with an exact count: 15000 + 500 - 2000.
	status, body = app.do(t, http.MethodPost, "/api/v1/drawers/"+drawerID+"/close", teller, map[string]any{
		"actual_counted": "13500.00",
	})
	require.Equal(t, http.StatusOK, status, "%v", body)
	rec := data(t, body)
	assert.Equal(t, "BALANCED", rec["classification"])
	assert.Equal(t, false, rec["requires_supervisor_approval"])

	// Recall the unconsumed remainder back into the pool.
	status, body = app.do(t, http.MethodPost, "/api/v1/allocations/"+allocID+"/recall", manager, map[string]any{
		"reason": "end of shift",
	})
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, "RECALLED", data(t, body)["status"])

	bal = app.balances(t, manager, walletID)
	assert.Equal(t, "98000.00", bal["balance"], "recall refunds only the unconsumed float")
}

func TestIntegration_RepeatedCashOutsTrackUsage(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	managerID := uuid.New()
	tellerID := uuid.New()
	manager := app.token(t, managerID, "MANAGER")
	teller := app.token(t, tellerID, "TELLER")

	walletID := app.createWallet(t, manager, "100000.00")

	status, body := app.do(t, http.MethodPost, "/api/v1/allocations", manager, map[string]any{
		"source_wallet_id": walletID,
		"target_teller_id": tellerID.String(),
		"branch_id":        uuid.New().String(),
		"amount":           "20000.00",
		"purpose":          "payout window",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	allocID := data(t, body)["id"].(string)

	status, body = app.do(t, http.MethodPost, "/api/v1/drawers", teller, map[string]any{
		"teller_id":       tellerID.String(),
		"branch_id":       uuid.New().String(),
		"allocation_id":   allocID,
		"opening_balance": "15000.00",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	drawerID := data(t, body)["id"].(string)

	for i := 0; i < 10; i++ {
		status, body = app.do(t, http.MethodPost, "/api/v1/drawers/"+drawerID+"/transactions", teller, map[string]any{
			"type":   "CASH_OUT",
			"amount": "1000.00",
		})
		require.Equal(t, http.StatusCreated, status, "cash out %d: %v", i, body)
	}

	// Usage equals cash actually paid out, never the staged opening balance.
	status, body = app.do(t, http.MethodGet, "/api/v1/allocations/"+allocID, teller, nil)
	require.Equal(t, http.StatusOK, status)
	alloc := data(t, body)
	assert.Equal(t, "10000.00", alloc["actual_usage"])
	assert.Equal(t, "10000.00", alloc["remaining_amount"])

	status, body = app.do(t, http.MethodGet, "/api/v1/drawers/"+drawerID, teller, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "5000.00", data(t, body)["current_balance"])

	status, body = app.do(t, http.MethodPost, "/api/v1/drawers/"+drawerID+"/close", teller, map[string]any{
		"actual_counted": "5000.00",
	})
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, "BALANCED", data(t, body)["classification"])
}

func TestIntegration_ShortDrawerNeedsSupervisor(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	managerID := uuid.New()
	tellerID := uuid.New()
	supervisorID := uuid.New()
	manager := app.token(t, managerID, "MANAGER")
	teller := app.token(t, tellerID, "TELLER")
	supervisor := app.token(t, supervisorID, "SUPERVISOR")

	walletID := app.createWallet(t, manager, "100000.00")

	status, body := app.do(t, http.MethodPost, "/api/v1/allocations", manager, map[string]any{
		"source_wallet_id": walletID,
		"target_teller_id": tellerID.String(),
		"branch_id":        uuid.New().String(),
		"amount":           "10000.00",
		"purpose":          "shift float",
	})
	require.Equal(t, http.StatusCreated, status)
	allocID := data(t, body)["id"].(string)

	status, body = app.do(t, http.MethodPost, "/api/v1/drawers", teller, map[string]any{
		"teller_id":       tellerID.String(),
		"branch_id":       uuid.New().String(),
		"allocation_id":   allocID,
		"opening_balance": "5000.00",
	})
	require.Equal(t, http.StatusCreated, status)
	drawerID := data(t, body)["id"].(string)

	// Count 100.00 short: beyond the 10.00 tolerance.
	status, body = app.do(t, http.MethodPost, "/api/v1/drawers/"+drawerID+"/close", teller, map[string]any{
		"actual_counted": "4900.00",
	})
	require.Equal(t, http.StatusOK, status)
	rec := data(t, body)
	assert.Equal(t, "SHORT", rec["classification"])
	require.Equal(t, true, rec["requires_supervisor_approval"])
	recID := rec["id"].(string)

	// The variance alert fires.
	status, body = app.do(t, http.MethodGet, "/api/v1/alerts?resolved=false", manager, nil)
	require.Equal(t, http.StatusOK, status)
	alerts := body["data"].([]any)
	require.NotEmpty(t, alerts)

	// Teller cannot reopen until the variance is signed off.
	status, body = app.do(t, http.MethodPost, "/api/v1/drawers", teller, map[string]any{
		"teller_id":       tellerID.String(),
		"branch_id":       uuid.New().String(),
		"allocation_id":   allocID,
		"opening_balance": "1000.00",
	})
	assert.Equal(t, http.StatusConflict, status, "%v", body)

	// Wrong PIN fails.
	status, _ = app.do(t, http.MethodPost, "/api/v1/reconciliations/"+recID+"/approve", supervisor, map[string]any{
		"pin":             "000000",
		"override_reason": "confirmed till miscount",
	})
	assert.Equal(t, http.StatusForbidden, status)

	// Right PIN unblocks the teller.
	status, body = app.do(t, http.MethodPost, "/api/v1/reconciliations/"+recID+"/approve", supervisor, map[string]any{
		"pin":             supervisorPIN,
		"override_reason": "confirmed till miscount",
	})
	require.Equal(t, http.StatusOK, status, "%v", body)

	status, _ = app.do(t, http.MethodPost, "/api/v1/drawers", teller, map[string]any{
		"teller_id":       tellerID.String(),
		"branch_id":       uuid.New().String(),
		"allocation_id":   allocID,
		"opening_balance": "1000.00",
	})
	assert.Equal(t, http.StatusCreated, status)
}

func TestIntegration_LargeAllocationNeedsApproval(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	managerID := uuid.New()
	approverID := uuid.New()
	manager := app.token(t, managerID, "MANAGER")
	approver := app.token(t, approverID, "MANAGER")

	walletID := app.createWallet(t, manager, "200000.00")

	status, body := app.do(t, http.MethodPost, "/api/v1/allocations", manager, map[string]any{
		"source_wallet_id": walletID,
		"target_teller_id": uuid.New().String(),
		"branch_id":        uuid.New().String(),
		"amount":           "50000.00", // at the threshold
		"purpose":          "vault replenishment",
	})
	require.Equal(t, http.StatusCreated, status)
	alloc := data(t, body)
	require.Equal(t, "PENDING_APPROVAL", alloc["status"])
	allocID := alloc["id"].(string)

	bal := app.balances(t, manager, walletID)
	assert.Equal(t, "200000.00", bal["balance"], "held allocation must not move funds")

	// Requester cannot approve their own request.
	status, _ = app.do(t, http.MethodPost, "/api/v1/allocations/"+allocID+"/approve", manager, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = app.do(t, http.MethodPost, "/api/v1/allocations/"+allocID+"/approve", approver, nil)
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, "ACTIVE", data(t, body)["status"])

	bal = app.balances(t, manager, walletID)
	assert.Equal(t, "150000.00", bal["balance"])
}

func TestIntegration_AuditTrailGrows(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	manager := app.token(t, uuid.New(), "MANAGER")
	walletID := app.createWallet(t, manager, "5000.00")

	status, _ := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/transactions", manager, map[string]any{
		"type":      "CREDIT",
		"amount":    "100.00",
		"reference": "AUDIT-REF-001",
	})
	require.Equal(t, http.StatusCreated, status)

	// Audit writes are fire-and-forget; give them a moment to land.
	var entries []any
	require.Eventually(t, func() bool {
		s, body := app.do(t, http.MethodGet, "/api/v1/audit/"+walletID, manager, nil)
		if s != http.StatusOK {
			return false
		}
		entries, _ = body["data"].([]any)
		return len(entries) >= 1
	}, 2*time.Second, 50*time.Millisecond)

	first := entries[0].(map[string]any)
	assert.NotEmpty(t, first["entry_hash"])
	assert.NotEmpty(t, first["action"])
}

func TestIntegration_TransferBetweenWallets(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	manager := app.token(t, uuid.New(), "MANAGER")
	srcID := app.createWallet(t, manager, "50000.00")
	dstID := app.createWallet(t, manager, "10000.00")

	status, body := app.do(t, http.MethodPost, "/api/v1/wallets/"+srcID+"/transactions", manager, map[string]any{
		"type":                   "TRANSFER",
		"amount":                 "7500.00",
		"counterparty_wallet_id": dstID,
		"reference":              fmt.Sprintf("XFER-%s", dstID[:8]),
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)

	assert.Equal(t, "42500.00", app.balances(t, manager, srcID)["balance"])
	assert.Equal(t, "17500.00", app.balances(t, manager, dstID)["balance"])
}

func strPtr(v any) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}
