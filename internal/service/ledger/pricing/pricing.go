// Package pricing converts a weighed deposit into a cash reward, XP and a
// carbon-offset figure.
//
//	reward = round(weightKg * rate, precision)
//	xp     = floor(weightKg * xpPerKg)
//	carbon = weightKg * carbonPerKg
//
// Weights above the configured maximum are rejected, and XP is guaranteed to
// fit in an int64.
//
// All arithmetic is decimal, performed on the shortest decimal representation
// of the weight, so 0.1 kg is exactly one tenth of a kilogram.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/ecobin/rewards-backend/internal/config"
	"github.com/ecobin/rewards-backend/internal/domain"
)

// Rate is the per-kilogram pricing of one material.
type Rate struct {
	RatePerKg   decimal.Decimal
	XPPerKg     decimal.Decimal
	CarbonPerKg decimal.Decimal
}

// DefaultMaxWeightKg applies when the configuration leaves the cap unset.
const DefaultMaxWeightKg = 1000

var maxXP = decimal.NewFromInt(math.MaxInt64)

// Table is an immutable pricing table. Safe for concurrent use.
type Table struct {
	rates     map[domain.Material]Rate
	precision int32
	maxWeight decimal.Decimal
}

// New builds a Table from the rewards configuration. Every known material
// must have a rate.
func New(cfg config.RewardsConfig) (*Table, error) {
	rates := cfg.Rates
	if len(rates) == 0 {
		parsed, err := config.ParseRates(cfg.RatesRaw)
		if err != nil {
			return nil, fmt.Errorf("pricing: %w", err)
		}
		rates = parsed
	}

	maxWeight := cfg.MaxWeightKg
	if maxWeight == 0 {
		maxWeight = DefaultMaxWeightKg
	}
	if math.IsNaN(maxWeight) || math.IsInf(maxWeight, 0) || maxWeight < 0 {
		return nil, fmt.Errorf("pricing: invalid max weight %v", cfg.MaxWeightKg)
	}

	t := &Table{
		rates:     make(map[domain.Material]Rate, len(rates)),
		precision: cfg.CurrencyPrecision,
		maxWeight: decimal.NewFromFloat(maxWeight),
	}
	for _, r := range rates {
		m := domain.Material(r.Material)
		if !m.IsValid() {
			return nil, fmt.Errorf("pricing: unknown material %q in rate table", r.Material)
		}
		t.rates[m] = Rate{RatePerKg: r.RatePerKg, XPPerKg: r.XPPerKg, CarbonPerKg: r.CarbonPerKg}
	}
	for _, m := range domain.Materials {
		if _, ok := t.rates[m]; !ok {
			return nil, fmt.Errorf("pricing: no rate for material %q", m)
		}
	}

	return t, nil
}

// Price returns the reward, XP and carbon offset for weightKg of material.
// Fails with domain.ErrUnknownMaterial or domain.ErrInvalidWeight.
func (t *Table) Price(material domain.Material, weightKg float64) (domain.Quote, error) {
	if math.IsNaN(weightKg) || math.IsInf(weightKg, 0) || weightKg <= 0 {
		return domain.Quote{}, fmt.Errorf("pricing: weight %v: %w", weightKg, domain.ErrInvalidWeight)
	}
	return t.PriceDecimal(material, decimal.NewFromFloat(weightKg))
}

// PriceDecimal is Price for a weight that is already decimal.
func (t *Table) PriceDecimal(material domain.Material, weightKg decimal.Decimal) (domain.Quote, error) {
	rate, ok := t.rates[material]
	if !ok {
		return domain.Quote{}, fmt.Errorf("pricing: material %q: %w", material, domain.ErrUnknownMaterial)
	}
	if !weightKg.IsPositive() {
		return domain.Quote{}, fmt.Errorf("pricing: weight %s: %w", weightKg, domain.ErrInvalidWeight)
	}
	if weightKg.GreaterThan(t.maxWeight) {
		return domain.Quote{}, fmt.Errorf("pricing: weight %s exceeds %s kg: %w", weightKg, t.maxWeight, domain.ErrInvalidWeight)
	}

	xp := weightKg.Mul(rate.XPPerKg).Floor()
	if xp.GreaterThan(maxXP) {
		return domain.Quote{}, fmt.Errorf("pricing: xp for %s kg of %s: %w", weightKg, material, domain.ErrXPOverflow)
	}

	return domain.Quote{
		Material:       material,
		WeightKg:       weightKg,
		Reward:         weightKg.Mul(rate.RatePerKg).Round(t.precision),
		XP:             xp.IntPart(),
		CarbonOffsetKg: weightKg.Mul(rate.CarbonPerKg),
	}, nil
}

// Rate returns the configured rate for material.
func (t *Table) Rate(material domain.Material) (Rate, bool) {
	r, ok := t.rates[material]
	return r, ok
}

// MaxWeightKg is the heaviest single deposit accepted.
func (t *Table) MaxWeightKg() decimal.Decimal { return t.maxWeight }

// Precision is the number of decimal places kept in currency amounts.
func (t *Table) Precision() int32 { return t.precision }
