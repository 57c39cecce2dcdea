package jobs

import (
	"context"
	"fmt"
	"time"

	"branch-cash-ledger/config"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/internal/observability"

	"github.com/LerianStudio/lib-uncommons/v2/uncommons/cron"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Sweeper runs the scheduled background jobs: completing approved reversals
// whose hold elapsed, and expiring overdue float allocations. Both sweeps are
// idempotent, so a run that overlaps another instance is harmless.
type Sweeper struct {
	ledger  ports.WalletLedger
	allocs  ports.FloatAllocationManager
	metrics *observability.Metrics
	log     zerolog.Logger

	reversalSched cron.Schedule
	expirySched   cron.Schedule
}

// NewSweeper parses the configured cron expressions and builds the sweeper.
func NewSweeper(
	cfg config.JobsConfig,
	ledger ports.WalletLedger,
	allocs ports.FloatAllocationManager,
	metrics *observability.Metrics,
	log zerolog.Logger,
) (*Sweeper, error) {
	reversalSched, err := cron.Parse(cfg.ReversalSweepCron)
	if err != nil {
		return nil, fmt.Errorf("parse reversal sweep schedule %q: %w", cfg.ReversalSweepCron, err)
	}
	expirySched, err := cron.Parse(cfg.AllocationExpiryCron)
	if err != nil {
		return nil, fmt.Errorf("parse allocation expiry schedule %q: %w", cfg.AllocationExpiryCron, err)
	}
	return &Sweeper{
		ledger:        ledger,
		allocs:        allocs,
		metrics:       metrics,
		log:           log,
		reversalSched: reversalSched,
		expirySched:   expirySched,
	}, nil
}

// Run blocks until ctx is cancelled, driving both sweep loops.
func (s *Sweeper) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.loop(ctx, "reversal_sweep", s.reversalSched, func(ctx context.Context) (int, error) {
			return s.ledger.CompleteDueReversals(ctx)
		})
	})
	g.Go(func() error {
		return s.loop(ctx, "allocation_expiry", s.expirySched, func(ctx context.Context) (int, error) {
			return s.allocs.ExpireDue(ctx)
		})
	})
	return g.Wait()
}

func (s *Sweeper) loop(ctx context.Context, name string, sched cron.Schedule, fn func(context.Context) (int, error)) error {
	for {
		next, err := sched.Next(time.Now().UTC())
		if err != nil {
			return fmt.Errorf("%s: compute next run: %w", name, err)
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		n, err := fn(ctx)
		if err != nil {
			s.metrics.SweepRuns.WithLabelValues(name, "error").Inc()
			s.log.Error().Err(err).Str("job", name).Msg("sweep run failed")
			continue
		}
		s.metrics.SweepRuns.WithLabelValues(name, "ok").Inc()
		if n > 0 {
			s.log.Info().Str("job", name).Int("processed", n).Msg("sweep run completed")
		}
	}
}
