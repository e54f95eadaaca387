package seeder

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds seeder settings. A YAML file, when given, is read first and
// SEEDER_* variables override it.
type Config struct {
	FixturesPath string        `yaml:"fixtures_path" env:"SEEDER_FIXTURES_PATH" env-default:"./fixtures.yaml"`
	IssueTokens  bool          `yaml:"issue_tokens"  env:"SEEDER_ISSUE_TOKENS"  env-default:"true"`
	DryRun       bool          `yaml:"dry_run"       env:"SEEDER_DRY_RUN"`
	Phases       []string      `yaml:"phases"        env:"SEEDER_PHASES"        env-separator:","`
	Timeout      time.Duration `yaml:"timeout"       env:"SEEDER_TIMEOUT"       env-default:"5m"`
}

// LoadConfig reads the seeder configuration. An empty path means env only.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("seeder config: %w", err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}

	cfg.Phases = ParsePhases(strings.Join(cfg.Phases, ","))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("seeder config: %w", err)
	}
	return &cfg, nil
}

// ParsePhases splits a comma-separated phase list, dropping blanks.
func ParsePhases(s string) []string {
	var phases []string
	for _, ph := range strings.Split(s, ",") {
		if ph = strings.ToLower(strings.TrimSpace(ph)); ph != "" {
			phases = append(phases, ph)
		}
	}
	return phases
}

// Validate rejects unknown phases and a non-positive timeout.
func (c Config) Validate() error {
	var errs []error
	for _, ph := range c.Phases {
		if !slices.Contains(allPhases, ph) {
			errs = append(errs, fmt.Errorf("unknown phase %q (want one of %s)", ph, strings.Join(allPhases, ", ")))
		}
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if strings.TrimSpace(c.FixturesPath) == "" {
		errs = append(errs, errors.New("fixtures_path is required"))
	}
	return errors.Join(errs...)
}
