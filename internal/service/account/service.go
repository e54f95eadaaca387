// Package account serves the depositor's dashboard view of their aggregate.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/internal/service/ledger/leveling"
)

type accountRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}

type depositRepo interface {
	TotalsByAccount(ctx context.Context, accountID uuid.UUID) (domain.AccountTotals, error)
}

type txManager interface {
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

// Profile is an account together with its ledger totals and level progress.
type Profile struct {
	Account domain.Account
	Totals  domain.AccountTotals
	Level   leveling.Level
	// NextLevel is nil at the top level.
	NextLevel *leveling.Level
	XPToNext  int64
}

// Service provides account reads.
type Service struct {
	log      *slog.Logger
	accounts accountRepo
	deposits depositRepo
	levels   *leveling.Policy
	tx       txManager
}

// NewService creates a new account service.
func NewService(logger *slog.Logger, accounts accountRepo, deposits depositRepo, levels *leveling.Policy, tx txManager) *Service {
	return &Service{
		log:      logger.With("service", "account"),
		accounts: accounts,
		deposits: deposits,
		levels:   levels,
		tx:       tx,
	}
}

// GetProfile returns the caller's account and deposit totals. The level shown
// is the stored one; progress is computed from stored XP.
func (s *Service) GetProfile(ctx context.Context, accountID uuid.UUID) (*Profile, error) {
	if accountID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	var (
		acc    *domain.Account
		totals domain.AccountTotals
	)
	err := s.tx.Read(ctx, func(ctx context.Context) error {
		var err error
		acc, err = s.accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		totals, err = s.deposits.TotalsByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("account.GetProfile: %w", err)
	}

	p := &Profile{
		Account: *acc,
		Totals:  totals,
		Level:   s.levels.LevelFor(acc.XPPoints),
	}
	if next, ok := s.levels.Next(acc.XPPoints); ok {
		p.NextLevel = &next
		p.XPToNext = next.MinXP - acc.XPPoints
	}

	if p.Level.Label != acc.EcoLevel {
		s.log.WarnContext(ctx, "stored level disagrees with xp",
			slog.String("account_id", acc.ID.String()),
			slog.String("eco_level", acc.EcoLevel),
			slog.String("expected_level", p.Level.Label),
		)
	}

	return p, nil
}
