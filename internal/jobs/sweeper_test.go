package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"branch-cash-ledger/config"
	"branch-cash-ledger/internal/core/ports/mocks"
	"branch-cash-ledger/internal/observability"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testJobsConfig() config.JobsConfig {
	return config.JobsConfig{
		ReversalSweepCron:    "*/15 * * * *",
		AllocationExpiryCron: "*/5 * * * *",
	}
}

func TestNewSweeper_RejectsInvalidReversalCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testJobsConfig()
	cfg.ReversalSweepCron = "not a cron"

	_, err := NewSweeper(cfg,
		mocks.NewMockWalletLedger(ctrl),
		mocks.NewMockFloatAllocationManager(ctrl),
		observability.NewMetrics(),
		zerolog.Nop(),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reversal sweep")
}

func TestNewSweeper_RejectsInvalidExpiryCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testJobsConfig()
	cfg.AllocationExpiryCron = "61 * * * *"

	_, err := NewSweeper(cfg,
		mocks.NewMockWalletLedger(ctrl),
		mocks.NewMockFloatAllocationManager(ctrl),
		observability.NewMetrics(),
		zerolog.Nop(),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allocation expiry")
}

func TestSweeperRun_StopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sweeper, err := NewSweeper(testJobsConfig(),
		mocks.NewMockWalletLedger(ctrl),
		mocks.NewMockFloatAllocationManager(ctrl),
		observability.NewMetrics(),
		zerolog.Nop(),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
