// Package leveling maps cumulative XP to an eco level.
package leveling

import (
	"fmt"
	"sort"

	"github.com/ecobin/rewards-backend/internal/config"
)

// Level is one tier of the policy. Rank orders levels: a higher rank is a
// higher level.
type Level struct {
	Rank  int
	Label string
	MinXP int64
}

// Policy is an immutable XP threshold table. Safe for concurrent use.
type Policy struct {
	levels []Level
}

// New builds a Policy from configuration. Thresholds must start at 0 and
// strictly increase.
func New(cfg config.LevelingConfig) (*Policy, error) {
	thresholds := cfg.Thresholds
	if len(thresholds) == 0 {
		parsed, err := config.ParseThresholds(cfg.ThresholdsRaw)
		if err != nil {
			return nil, fmt.Errorf("leveling: %w", err)
		}
		thresholds = parsed
	}

	if len(thresholds) == 0 || thresholds[0].MinXP != 0 {
		return nil, fmt.Errorf("leveling: first threshold must be 0")
	}

	levels := make([]Level, len(thresholds))
	for i, t := range thresholds {
		if i > 0 && t.MinXP <= thresholds[i-1].MinXP {
			return nil, fmt.Errorf("leveling: threshold %q (%d) must exceed %d", t.Label, t.MinXP, thresholds[i-1].MinXP)
		}
		levels[i] = Level{Rank: i, Label: t.Label, MinXP: t.MinXP}
	}

	return &Policy{levels: levels}, nil
}

// LevelFor returns the highest level whose threshold is <= xp.
// Negative XP is treated as 0.
func (p *Policy) LevelFor(xp int64) Level {
	// First index whose threshold exceeds xp; the level is the one before it.
	i := sort.Search(len(p.levels), func(i int) bool { return p.levels[i].MinXP > xp })
	if i == 0 {
		return p.levels[0]
	}
	return p.levels[i-1]
}

// Next returns the level after the one xp maps to, and false at the top level.
func (p *Policy) Next(xp int64) (Level, bool) {
	cur := p.LevelFor(xp)
	if cur.Rank+1 >= len(p.levels) {
		return Level{}, false
	}
	return p.levels[cur.Rank+1], true
}

// Rank returns the rank of label, or -1 when the label is unknown.
func (p *Policy) Rank(label string) int {
	for _, l := range p.levels {
		if l.Label == label {
			return l.Rank
		}
	}
	return -1
}

// Levels returns a copy of all levels in ascending order.
func (p *Policy) Levels() []Level {
	out := make([]Level, len(p.levels))
	copy(out, p.levels)
	return out
}
