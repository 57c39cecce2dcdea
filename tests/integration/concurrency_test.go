package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postTxn issues a debit without test assertions so it is safe to call from
// worker goroutines. Failures are reported through the returned status code.
func (a *testApp) postTxn(token, walletID, amount, reference string) (int, string) {
	payload, err := json.Marshal(map[string]any{
		"type":        "DEBIT",
		"amount":      amount,
		"reference":   reference,
		"description": "concurrent drawdown",
	})
	if err != nil {
		return 0, err.Error()
	}
	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/api/v1/wallets/"+walletID+"/transactions", bytes.NewReader(payload))
	if err != nil {
		return 0, err.Error()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err.Error()
	}
	defer resp.Body.Close()

	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return resp.StatusCode, ""
	}
	code, _ := envelope["error_code"].(string)
	return resp.StatusCode, code
}

// Two debits race for a balance that can only cover one of them. Row locking
// must let exactly one through and fail the other with insufficient funds.
func TestIntegration_ConcurrentDebitsRaceForBalance(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	manager := app.token(t, uuid.New(), "manager")
	walletID := app.createWallet(t, manager, "1000.00")

	type result struct {
		status    int
		errorCode string
	}
	results := make([]result, 2)
	amounts := []string{"700.00", "600.00"}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range amounts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			status, code := app.postTxn(manager, walletID, amounts[i], fmt.Sprintf("RACE-%d", i))
			results[i] = result{status: status, errorCode: code}
		}(i)
	}
	close(start)
	wg.Wait()

	var succeeded, insufficient int
	var wonAmount string
	for i, r := range results {
		switch r.status {
		case http.StatusCreated:
			succeeded++
			wonAmount = amounts[i]
		case http.StatusPaymentRequired:
			insufficient++
			assert.Equal(t, "LED_001", r.errorCode)
		default:
			t.Fatalf("unexpected status %d (code %s)", r.status, r.errorCode)
		}
	}
	require.Equal(t, 1, succeeded, "exactly one debit must win")
	require.Equal(t, 1, insufficient, "the loser must fail with insufficient funds")

	want := "300.00"
	if wonAmount == "600.00" {
		want = "400.00"
	}
	balances := app.balances(t, manager, walletID)
	assert.Equal(t, want, balances["available"])
	assert.Equal(t, want, balances["balance"])
}

// Twenty tellers draw down the same pool at once. The pool covers exactly
// half of them; the final balance must be zero with no lost or double debits.
func TestIntegration_ConcurrentDebitsExhaustBalanceExactly(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	manager := app.token(t, uuid.New(), "manager")
	walletID := app.createWallet(t, manager, "1000.00")

	const workers = 20

	var succeeded, rejected, unexpected atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			status, code := app.postTxn(manager, walletID, "100.00", fmt.Sprintf("DRAW-%03d", i))
			switch {
			case status == http.StatusCreated:
				succeeded.Add(1)
			case status == http.StatusPaymentRequired && code == "LED_001":
				rejected.Add(1)
			default:
				unexpected.Add(1)
				t.Logf("worker %d: status %d code %s", i, status, code)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 0, unexpected.Load())
	assert.EqualValues(t, 10, succeeded.Load())
	assert.EqualValues(t, 10, rejected.Load())

	balances := app.balances(t, manager, walletID)
	assert.Equal(t, "0.00", balances["available"])
	assert.Equal(t, "0.00", balances["balance"])
}
