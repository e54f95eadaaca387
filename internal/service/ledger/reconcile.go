package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// Reconcile compares every account's stored wallet, XP and level with the
// values derived from its deposits. It only reports; nothing is modified.
func (s *Service) Reconcile(ctx context.Context) (*domain.ReconcileReport, error) {
	report := &domain.ReconcileReport{StartedAt: time.Now().UTC()}

	err := s.reconcile(ctx, report)
	report.FinishedAt = time.Now().UTC()

	if s.metrics != nil {
		s.metrics.ObserveReconcile(len(report.Mismatches), err)
	}
	if err != nil {
		return nil, fmt.Errorf("ledger.Reconcile: %w", err)
	}

	s.log.InfoContext(ctx, "reconciliation finished",
		slog.Int("accounts", report.AccountsChecked),
		slog.Int("mismatches", len(report.Mismatches)),
		slog.Duration("took", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report, nil
}

func (s *Service) reconcile(ctx context.Context, report *domain.ReconcileReport) error {
	after := uuid.Nil
	for {
		var page []domain.LedgerBalance
		err := s.tx.Read(ctx, func(ctx context.Context) error {
			var err error
			page, err = s.deposits.LedgerBalances(ctx, after, s.reconcileBatch)
			return err
		})
		if err != nil {
			return err
		}

		for _, b := range page {
			report.AccountsChecked++
			if m, ok := s.check(b); !ok {
				report.Mismatches = append(report.Mismatches, m)
				s.log.WarnContext(ctx, "ledger mismatch",
					slog.String("account_id", b.AccountID.String()),
					slog.String("wallet_balance", b.WalletBalance.String()),
					slog.String("ledger_reward", b.SumReward.String()),
					slog.Int64("xp_points", b.XPPoints),
					slog.Int64("ledger_xp", b.SumXP),
					slog.String("eco_level", b.EcoLevel),
					slog.String("expected_level", m.ExpectedLevel),
				)
			}
		}

		if len(page) < s.reconcileBatch {
			return nil
		}
		after = page[len(page)-1].AccountID
	}
}

func (s *Service) check(b domain.LedgerBalance) (domain.ReconcileMismatch, bool) {
	expected := s.levels.LevelFor(b.XPPoints).Label
	ok := b.WalletBalance.Equal(b.SumReward) && b.XPPoints == b.SumXP && b.EcoLevel == expected
	return domain.ReconcileMismatch{
		AccountID:     b.AccountID,
		WalletBalance: b.WalletBalance,
		LedgerReward:  b.SumReward,
		XPPoints:      b.XPPoints,
		LedgerXP:      b.SumXP,
		EcoLevel:      b.EcoLevel,
		ExpectedLevel: expected,
	}, ok
}
