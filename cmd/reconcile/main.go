// Command reconcile compares every account's wallet, XP and level with the
// sums of its deposit ledger and reports mismatches. It never repairs data.
// It is intended to be invoked by an external cron job when the in-process
// schedule is disabled.
//
// Exit codes: 0 = ledger consistent, 1 = error, 2 = mismatches found.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ecobin/rewards-backend/internal/adapter/postgres"
	"github.com/ecobin/rewards-backend/internal/adapter/postgres/account"
	"github.com/ecobin/rewards-backend/internal/adapter/postgres/bin"
	"github.com/ecobin/rewards-backend/internal/adapter/postgres/deposit"
	"github.com/ecobin/rewards-backend/internal/adapter/postgres/outbox"
	"github.com/ecobin/rewards-backend/internal/app"
	"github.com/ecobin/rewards-backend/internal/config"
	"github.com/ecobin/rewards-backend/internal/metrics"
	"github.com/ecobin/rewards-backend/internal/service/ledger"
	"github.com/ecobin/rewards-backend/internal/service/ledger/leveling"
	"github.com/ecobin/rewards-backend/internal/service/ledger/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	prices, err := pricing.New(cfg.Rewards)
	if err != nil {
		logger.Error("pricing table", slog.String("error", err.Error()))
		os.Exit(1)
	}
	levels, err := leveling.New(cfg.Leveling)
	if err != nil {
		logger.Error("leveling policy", slog.String("error", err.Error()))
		os.Exit(1)
	}

	txm := postgres.NewTxManager(pool, cfg.Store, logger)
	svc := ledger.NewService(logger, txm,
		bin.New(pool), account.New(pool), deposit.New(pool), outbox.New(pool),
		prices, levels, metrics.New(), cfg.Reconcile.BatchSize,
	)

	report, err := svc.Reconcile(ctx)
	if err != nil {
		logger.Error("reconcile failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, m := range report.Mismatches {
		logger.Warn("ledger mismatch",
			slog.String("account_id", m.AccountID.String()),
			slog.String("wallet_balance", m.WalletBalance.String()),
			slog.String("ledger_reward", m.LedgerReward.String()),
			slog.Int64("xp_points", m.XPPoints),
			slog.Int64("ledger_xp", m.LedgerXP),
			slog.String("eco_level", m.EcoLevel),
			slog.String("expected_level", m.ExpectedLevel),
		)
	}

	logger.Info("reconcile completed",
		slog.Int("accounts_checked", report.AccountsChecked),
		slog.Int("mismatches", len(report.Mismatches)),
		slog.Duration("took", report.FinishedAt.Sub(report.StartedAt)),
	)

	if len(report.Mismatches) > 0 {
		os.Exit(2)
	}
}
