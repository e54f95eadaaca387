package seeder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// allPhases defines the canonical execution order.
var allPhases = []string{"bins", "accounts", "tokens"}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Written  int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline loads fixtures phase by phase. A bad fixture is counted and
// logged; it does not stop the phase.
type Pipeline struct {
	log          *slog.Logger
	bins         BinRepo
	accounts     AccountRepo
	tokens       TokenIssuer
	out          io.Writer
	initialLevel string
	cfg          Config
	results      map[string]PhaseResult
}

// NewPipeline creates a new Pipeline. Issued tokens are written to out, one
// tab-separated line per account. tokens may be nil when cfg.IssueTokens is false.
func NewPipeline(
	log *slog.Logger,
	bins BinRepo,
	accounts AccountRepo,
	tokens TokenIssuer,
	out io.Writer,
	initialLevel string,
	cfg Config,
) *Pipeline {
	return &Pipeline{
		log:          log,
		bins:         bins,
		accounts:     accounts,
		tokens:       tokens,
		out:          out,
		initialLevel: initialLevel,
		cfg:          cfg,
		results:      make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases run.
func (p *Pipeline) Run(ctx context.Context, fx *Fixtures, phases []string) error {
	if fx == nil {
		return fmt.Errorf("seeder: no fixtures")
	}

	toRun := allPhases
	if len(phases) > 0 {
		filter := make(map[string]bool, len(phases))
		for _, ph := range phases {
			filter[ph] = true
		}
		var filtered []string
		for _, ph := range allPhases {
			if filter[ph] {
				filtered = append(filtered, ph)
			}
		}
		toRun = filtered
	}

	for _, phase := range toRun {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case "bins":
			result = p.runBins(ctx, fx.Bins)
		case "accounts":
			result = p.runAccounts(ctx, fx.Accounts)
		case "tokens":
			result = p.runTokens(fx.Accounts)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("written", result.Written),
				slog.Int("skipped", result.Skipped),
				slog.Int("errors", result.Errors),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	return nil
}

func (p *Pipeline) runBins(ctx context.Context, fixtures []BinFixture) PhaseResult {
	var res PhaseResult
	for _, f := range fixtures {
		b, err := f.toBin()
		if err != nil {
			res.Errors++
			p.log.Warn("skip bin fixture", slog.String("error", err.Error()))
			continue
		}
		if p.cfg.DryRun {
			res.Skipped++
			continue
		}
		if _, err := p.bins.Upsert(ctx, b); err != nil {
			if ctx.Err() != nil {
				res.Err = err
				return res
			}
			res.Errors++
			p.log.Warn("upsert bin", slog.String("code", b.Code), slog.String("error", err.Error()))
			continue
		}
		res.Written++
	}
	return res
}

// runAccounts creates missing accounts. Existing accounts are left untouched
// so their wallet and XP survive a re-seed.
func (p *Pipeline) runAccounts(ctx context.Context, fixtures []AccountFixture) PhaseResult {
	var res PhaseResult
	for _, f := range fixtures {
		acc, err := f.toAccount(p.initialLevel)
		if err != nil {
			res.Errors++
			p.log.Warn("skip account fixture", slog.String("error", err.Error()))
			continue
		}
		if p.cfg.DryRun {
			res.Skipped++
			continue
		}

		_, err = p.accounts.GetByID(ctx, acc.ID)
		switch {
		case err == nil:
			res.Skipped++
			continue
		case !errors.Is(err, domain.ErrAccountNotFound):
			if ctx.Err() != nil {
				res.Err = err
				return res
			}
			res.Errors++
			p.log.Warn("lookup account", slog.String("account_id", acc.ID.String()), slog.String("error", err.Error()))
			continue
		}

		if _, err := p.accounts.Create(ctx, acc); err != nil {
			res.Errors++
			p.log.Warn("create account", slog.String("account_id", acc.ID.String()), slog.String("error", err.Error()))
			continue
		}
		res.Written++
	}
	return res
}

func (p *Pipeline) runTokens(fixtures []AccountFixture) PhaseResult {
	var res PhaseResult
	if !p.cfg.IssueTokens || p.tokens == nil {
		res.Skipped = len(fixtures)
		return res
	}

	for _, f := range fixtures {
		acc, err := f.toAccount(p.initialLevel)
		if err != nil {
			res.Errors++
			continue
		}
		token, err := p.tokens.GenerateAccessToken(acc.ID, f.role())
		if err != nil {
			res.Errors++
			p.log.Warn("issue token", slog.String("account_id", acc.ID.String()), slog.String("error", err.Error()))
			continue
		}
		if _, err := fmt.Fprintf(p.out, "%s\t%s\t%s\t%s\n", acc.DisplayName, acc.ID, f.role(), token); err != nil {
			res.Err = fmt.Errorf("write token: %w", err)
			return res
		}
		res.Written++
	}
	return res
}
