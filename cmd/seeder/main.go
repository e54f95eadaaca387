// Command seeder loads development fixtures (bins and accounts) from a YAML
// file and prints access tokens for the seeded accounts. It is intended to
// be run against local and staging databases, not as part of the main server.
//
// Flags:
//
//	--phase          comma-separated list of phases to run (default: all)
//	--dry-run        validate fixtures without writing to DB
//	--fixtures       path to the fixtures YAML file
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/ecobin/rewards-backend/internal/adapter/postgres"
	"github.com/ecobin/rewards-backend/internal/adapter/postgres/account"
	"github.com/ecobin/rewards-backend/internal/adapter/postgres/bin"
	"github.com/ecobin/rewards-backend/internal/app"
	"github.com/ecobin/rewards-backend/internal/app/seeder"
	"github.com/ecobin/rewards-backend/internal/auth"
	"github.com/ecobin/rewards-backend/internal/config"
	"github.com/ecobin/rewards-backend/internal/service/ledger/leveling"
)

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "validate fixtures without writing to DB")
	fixturesFlag := flag.String("fixtures", "", "path to the fixtures YAML file")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if *fixturesFlag != "" {
		seederCfg.FixturesPath = *fixturesFlag
	}

	if *phaseFlag != "" {
		seederCfg.Phases = seeder.ParsePhases(*phaseFlag)
		if err := seederCfg.Validate(); err != nil {
			logger.Error("invalid --phase", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	fx, err := seeder.LoadFixtures(seederCfg.FixturesPath)
	if err != nil {
		logger.Error("load fixtures", slog.String("error", err.Error()))
		os.Exit(1)
	}

	levels, err := leveling.New(appCfg.Leveling)
	if err != nil {
		logger.Error("leveling policy", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), seederCfg.Timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	tokens := auth.NewJWTManager(appCfg.Auth.JWTSecret, appCfg.Auth.JWTIssuer, appCfg.Auth.AccessTokenTTL)

	pipeline := seeder.NewPipeline(logger, bin.New(pool), account.New(pool), tokens, os.Stdout,
		levels.LevelFor(0).Label, *seederCfg)
	if err := pipeline.Run(ctx, fx, seederCfg.Phases); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}
