package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// LeaderboardCache stores top-N projections as JSON under one key per N.
type LeaderboardCache struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewLeaderboardCache creates a cache. An empty prefix defaults to "ecobin".
func NewLeaderboardCache(client goredis.UniversalClient, prefix string, ttl time.Duration) *LeaderboardCache {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "ecobin"
	}
	return &LeaderboardCache{client: client, prefix: prefix, ttl: ttl}
}

type cachedEntry struct {
	Rank          int       `json:"rank"`
	AccountID     uuid.UUID `json:"account_id"`
	DisplayName   string    `json:"display_name"`
	XPPoints      int64     `json:"xp_points"`
	EcoLevel      string    `json:"eco_level"`
	WalletBalance string    `json:"wallet_balance"`
}

// Ping reports whether the cache server is reachable.
func (c *LeaderboardCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns the cached projection for n. ok is false on a miss.
func (c *LeaderboardCache) Get(ctx context.Context, n int) ([]domain.LeaderboardEntry, bool, error) {
	raw, err := c.client.Get(ctx, c.key(n)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get leaderboard: %w", err)
	}

	entries, err := decodeEntries(raw)
	if err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// Set stores the projection for n with the configured TTL.
func (c *LeaderboardCache) Set(ctx context.Context, n int, entries []domain.LeaderboardEntry) error {
	raw, err := encodeEntries(entries)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(n), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set leaderboard: %w", err)
	}
	return nil
}

func (c *LeaderboardCache) key(n int) string {
	return fmt.Sprintf("%s:leaderboard:top:%d", c.prefix, n)
}

func encodeEntries(entries []domain.LeaderboardEntry) ([]byte, error) {
	out := make([]cachedEntry, len(entries))
	for i, e := range entries {
		out[i] = cachedEntry{
			Rank:          e.Rank,
			AccountID:     e.AccountID,
			DisplayName:   e.DisplayName,
			XPPoints:      e.XPPoints,
			EcoLevel:      e.EcoLevel,
			WalletBalance: e.WalletBalance.String(),
		}
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("redis: encode leaderboard: %w", err)
	}
	return raw, nil
}

func decodeEntries(raw []byte) ([]domain.LeaderboardEntry, error) {
	var cached []cachedEntry
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("redis: decode leaderboard: %w", err)
	}

	out := make([]domain.LeaderboardEntry, len(cached))
	for i, e := range cached {
		wallet, err := decimal.NewFromString(e.WalletBalance)
		if err != nil {
			return nil, fmt.Errorf("redis: decode wallet %q: %w", e.WalletBalance, err)
		}
		out[i] = domain.LeaderboardEntry{
			Rank:          e.Rank,
			AccountID:     e.AccountID,
			DisplayName:   e.DisplayName,
			XPPoints:      e.XPPoints,
			EcoLevel:      e.EcoLevel,
			WalletBalance: wallet,
		}
	}
	return out, nil
}
