package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Store.QueryTimeout <= 0 {
		return fmt.Errorf("store.query_timeout must be > 0 (got %v)", c.Store.QueryTimeout)
	}
	if c.Store.MaxRetries < 0 {
		return fmt.Errorf("store.max_retries must be >= 0 (got %d)", c.Store.MaxRetries)
	}

	if err := c.Rewards.validate(); err != nil {
		return fmt.Errorf("rewards: %w", err)
	}

	if err := c.Leveling.validate(); err != nil {
		return fmt.Errorf("leveling: %w", err)
	}

	if err := c.Leaderboard.validate(); err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}

	if c.Outbox.BatchSize <= 0 {
		return fmt.Errorf("outbox.batch_size must be > 0 (got %d)", c.Outbox.BatchSize)
	}

	if c.Reconcile.Enabled {
		if _, err := cron.ParseStandard(c.Reconcile.Schedule); err != nil {
			return fmt.Errorf("reconcile.schedule %q: %w", c.Reconcile.Schedule, err)
		}
	}
	if c.Reconcile.BatchSize <= 0 {
		return fmt.Errorf("reconcile.batch_size must be > 0 (got %d)", c.Reconcile.BatchSize)
	}

	return nil
}

func (r *RewardsConfig) validate() error {
	if r.CurrencyPrecision < 0 || r.CurrencyPrecision > 8 {
		return fmt.Errorf("currency_precision must be in [0, 8] (got %d)", r.CurrencyPrecision)
	}
	if math.IsNaN(r.MaxWeightKg) || math.IsInf(r.MaxWeightKg, 0) || r.MaxWeightKg <= 0 {
		return fmt.Errorf("max_weight_kg must be a positive number (got %v)", r.MaxWeightKg)
	}

	rates, err := ParseRates(r.RatesRaw)
	if err != nil {
		return fmt.Errorf("rates: %w", err)
	}

	seen := make(map[string]bool, len(rates))
	for _, rate := range rates {
		if !domain.Material(rate.Material).IsValid() {
			return fmt.Errorf("rates: unknown material %q", rate.Material)
		}
		seen[rate.Material] = true
	}
	for _, m := range domain.Materials {
		if !seen[string(m)] {
			return fmt.Errorf("rates: missing material %q", m)
		}
	}

	r.Rates = rates
	return nil
}

func (l *LevelingConfig) validate() error {
	thresholds, err := ParseThresholds(l.ThresholdsRaw)
	if err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	l.Thresholds = thresholds
	return nil
}

func (l *LeaderboardConfig) validate() error {
	if l.DefaultN <= 0 {
		return fmt.Errorf("default_n must be > 0 (got %d)", l.DefaultN)
	}
	if l.MaxN < l.DefaultN {
		return fmt.Errorf("max_n must be >= default_n (got %d < %d)", l.MaxN, l.DefaultN)
	}
	if l.PageSize <= 0 {
		return fmt.Errorf("page_size must be > 0 (got %d)", l.PageSize)
	}
	return nil
}

// ParseRates parses a comma-separated list of "material:rate/xpPerKg/carbonPerKg"
// entries (e.g. "metal:0.80/15/3.0"). Materials may not repeat and every
// number must be non-negative.
func ParseRates(raw string) ([]MaterialRate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty rate table")
	}

	parts := strings.Split(raw, ",")
	rates := make([]MaterialRate, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		name, values, ok := strings.Cut(p, ":")
		if !ok {
			return nil, fmt.Errorf("entry %q: expected material:rate/xp/carbon", p)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if seen[name] {
			return nil, fmt.Errorf("entry %q: duplicate material", p)
		}
		seen[name] = true

		fields := strings.Split(values, "/")
		if len(fields) != 3 {
			return nil, fmt.Errorf("entry %q: expected 3 values, got %d", p, len(fields))
		}

		nums := make([]decimal.Decimal, 3)
		for i, f := range fields {
			d, err := decimal.NewFromString(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("entry %q: invalid number %q: %w", p, f, err)
			}
			if d.IsNegative() {
				return nil, fmt.Errorf("entry %q: negative value %s", p, d)
			}
			nums[i] = d
		}

		rates = append(rates, MaterialRate{
			Material:    name,
			RatePerKg:   nums[0],
			XPPerKg:     nums[1],
			CarbonPerKg: nums[2],
		})
	}

	return rates, nil
}

// ParseThresholds parses a comma-separated list of "Label:minXP" entries.
// The first threshold must be 0 and thresholds must strictly increase, so
// every non-negative XP value maps to exactly one level.
func ParseThresholds(raw string) ([]LevelThreshold, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty threshold table")
	}

	parts := strings.Split(raw, ",")
	out := make([]LevelThreshold, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		// Labels may contain spaces but not colons; split on the last colon.
		idx := strings.LastIndex(p, ":")
		if idx <= 0 {
			return nil, fmt.Errorf("entry %q: expected label:minXP", p)
		}
		label := strings.TrimSpace(p[:idx])
		minXP, err := strconv.ParseInt(strings.TrimSpace(p[idx+1:]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("entry %q: invalid xp: %w", p, err)
		}
		if label == "" {
			return nil, fmt.Errorf("entry %q: empty label", p)
		}

		if len(out) == 0 && minXP != 0 {
			return nil, fmt.Errorf("first level %q must start at 0 (got %d)", label, minXP)
		}
		if len(out) > 0 && minXP <= out[len(out)-1].MinXP {
			return nil, fmt.Errorf("level %q: threshold %d must exceed %d", label, minXP, out[len(out)-1].MinXP)
		}

		out = append(out, LevelThreshold{Label: label, MinXP: minXP})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("empty threshold table")
	}
	return out, nil
}
