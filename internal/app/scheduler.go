package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ecobin/rewards-backend/internal/config"
	"github.com/ecobin/rewards-backend/internal/domain"
)

type reconciler interface {
	Reconcile(ctx context.Context) (*domain.ReconcileReport, error)
}

// Scheduler runs the ledger reconciliation on a cron schedule. Overlapping
// runs are skipped.
type Scheduler struct {
	log        *slog.Logger
	reconciler reconciler
	schedule   string
	timeout    time.Duration
}

// NewScheduler creates a Scheduler for cfg.Schedule.
func NewScheduler(logger *slog.Logger, r reconciler, cfg config.ReconcileConfig) *Scheduler {
	return &Scheduler{
		log:        logger.With("component", "scheduler"),
		reconciler: r,
		schedule:   cfg.Schedule,
		timeout:    30 * time.Minute,
	}
}

// Run starts the cron loop and blocks until ctx is cancelled, then waits for
// a running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))

	if _, err := c.AddFunc(s.schedule, func() { s.runReconcile(ctx) }); err != nil {
		return fmt.Errorf("schedule reconcile %q: %w", s.schedule, err)
	}

	s.log.InfoContext(ctx, "scheduled reconcile job", slog.String("schedule", s.schedule))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	s.log.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) runReconcile(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report, err := s.reconciler.Reconcile(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "scheduled reconcile failed", slog.String("error", err.Error()))
		return
	}
	s.log.InfoContext(ctx, "scheduled reconcile finished",
		slog.Int("accounts_checked", report.AccountsChecked),
		slog.Int("mismatches", len(report.Mismatches)),
	)
}
