// Package leaderboard projects accounts into a ranking by XP. It never
// mutates accounts.
package leaderboard

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/ecobin/rewards-backend/internal/config"
	"github.com/ecobin/rewards-backend/internal/domain"
)

type accountRepo interface {
	TopByXP(ctx context.Context, after *domain.RankCursor, limit int) ([]domain.Account, error)
}

type txManager interface {
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

// cache holds recent top-N projections. Entries may be stale by a few writes.
type cache interface {
	Get(ctx context.Context, n int) ([]domain.LeaderboardEntry, bool, error)
	Set(ctx context.Context, n int, entries []domain.LeaderboardEntry) error
}

const defaultPageSize = 50

// Service provides ranked reads over accounts.
type Service struct {
	log      *slog.Logger
	accounts accountRepo
	tx       txManager
	cache    cache

	defaultN int
	maxN     int
	pageSize int
}

// NewService creates a new leaderboard service. cache may be nil.
func NewService(logger *slog.Logger, accounts accountRepo, tx txManager, c cache, cfg config.LeaderboardConfig) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	return &Service{
		log:      logger.With("service", "leaderboard"),
		accounts: accounts,
		tx:       tx,
		cache:    c,
		defaultN: cfg.DefaultN,
		maxN:     cfg.MaxN,
		pageSize: cfg.PageSize,
	}
}

// TopN yields at most n entries ordered by XP descending, ties broken by
// account id ascending. Accounts are fetched lazily one page at a time, and
// ranging over the sequence again starts a fresh read. Iteration stops after
// the first error.
//
// Each page is its own read, not one snapshot. An account whose XP climbs
// past the cursor between two pages is missed by that iteration and one that
// drops below it may appear twice; both are stale-by-one-write results.
func (s *Service) TopN(ctx context.Context, n int) iter.Seq2[domain.LeaderboardEntry, error] {
	return func(yield func(domain.LeaderboardEntry, error) bool) {
		var (
			after *domain.RankCursor
			rank  int
		)
		for rank < n {
			limit := min(s.pageSize, n-rank)

			var page []domain.Account
			err := s.tx.Read(ctx, func(ctx context.Context) error {
				var err error
				page, err = s.accounts.TopByXP(ctx, after, limit)
				return err
			})
			if err != nil {
				yield(domain.LeaderboardEntry{}, fmt.Errorf("leaderboard.TopN: %w", err))
				return
			}

			for _, acc := range page {
				rank++
				if !yield(toEntry(rank, acc), nil) {
					return
				}
			}

			if len(page) < limit {
				return
			}
			last := page[len(page)-1]
			after = &domain.RankCursor{XPPoints: last.XPPoints, ID: last.ID}
		}
	}
}

// Top returns the first n entries, served from the cache when possible. n=0
// means the configured default. Cache failures fall back to the store.
func (s *Service) Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	if n == 0 {
		n = s.defaultN
	}
	if n < 0 || n > s.maxN {
		return nil, domain.NewValidationError("n", fmt.Sprintf("must be between 1 and %d", s.maxN))
	}

	if s.cache != nil {
		entries, ok, err := s.cache.Get(ctx, n)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "leaderboard cache read failed", slog.String("error", err.Error()))
		case ok:
			return entries, nil
		}
	}

	entries := make([]domain.LeaderboardEntry, 0, n)
	for e, err := range s.TopN(ctx, n) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, n, entries); err != nil {
			s.log.WarnContext(ctx, "leaderboard cache write failed", slog.String("error", err.Error()))
		}
	}

	return entries, nil
}

func toEntry(rank int, acc domain.Account) domain.LeaderboardEntry {
	return domain.LeaderboardEntry{
		Rank:          rank,
		AccountID:     acc.ID,
		DisplayName:   acc.DisplayName,
		XPPoints:      acc.XPPoints,
		EcoLevel:      acc.EcoLevel,
		WalletBalance: acc.WalletBalance,
	}
}
