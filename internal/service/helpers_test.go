package service

import (
	"context"
	"testing"

	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// testAESKey is a 32-byte hex key for the real encryption service; tests
// round-trip balances through actual AES-GCM rather than mocking the cipher.
const testAESKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func newTestEncSvc(t *testing.T) *AESEncryptionService {
	t.Helper()
	encSvc, err := NewAESEncryptionService(testAESKey)
	require.NoError(t, err)
	return encSvc
}

func encryptTriple(t *testing.T, encSvc ports.EncryptionService, balance, available, reserve string) (string, string, string) {
	t.Helper()
	b := &domain.WalletBalances{
		Balance:   decimal.RequireFromString(balance),
		Available: decimal.RequireFromString(available),
		Reserve:   decimal.RequireFromString(reserve),
	}
	encBal, encAvail, encRes, err := encryptWalletBalances(encSvc, b)
	require.NoError(t, err)
	return encBal, encAvail, encRes
}

func decryptTriple(t *testing.T, encSvc ports.EncryptionService, encBal, encAvail, encRes string) *domain.WalletBalances {
	t.Helper()
	b, err := decryptWalletBalances(encSvc, &domain.MasterWallet{
		EncryptedBalance:   encBal,
		EncryptedAvailable: encAvail,
		EncryptedReserve:   encRes,
	})
	require.NoError(t, err)
	return b
}

// fakeTx satisfies pgx.Tx for services under test; repos are mocked so no
// method beyond Commit/Rollback is ever exercised.
type fakeTx struct{}

func (fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }
func (fakeTx) Commit(ctx context.Context) error          { return nil }
func (fakeTx) Rollback(ctx context.Context) error        { return nil }
func (fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (fakeTx) Conn() *pgx.Conn                                               { return nil }
