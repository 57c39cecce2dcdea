package service

import (
	"context"
	"errors"
	"time"

	"branch-cash-ledger/pkg/apperror"

	"github.com/LerianStudio/lib-uncommons/v2/uncommons/backoff"
	"github.com/jackc/pgx/v5/pgconn"
)

const maxTxRetries = 3

// withSerializationRetry runs fn and retries it when Postgres aborts the
// transaction with a serialization or deadlock failure (SQLSTATE 40001,
// 40P01). Other errors return immediately. After maxTxRetries the last
// failure surfaces as a concurrent-modification conflict.
func withSerializationRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		if attempt > 0 {
			delay := backoff.ExponentialWithJitter(50*time.Millisecond, attempt)
			if err := backoff.WaitContext(ctx, delay); err != nil {
				return err
			}
		}
		lastErr = fn(ctx)
		if lastErr == nil || !isSerializationFailure(lastErr) {
			return lastErr
		}
	}
	return apperror.ErrConcurrentModification(lastErr)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
