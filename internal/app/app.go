package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/ecobin/rewards-backend/internal/adapter/postgres"
	accountrepo "github.com/ecobin/rewards-backend/internal/adapter/postgres/account"
	"github.com/ecobin/rewards-backend/internal/adapter/postgres/audit"
	binrepo "github.com/ecobin/rewards-backend/internal/adapter/postgres/bin"
	collectorrepo "github.com/ecobin/rewards-backend/internal/adapter/postgres/collector"
	"github.com/ecobin/rewards-backend/internal/adapter/postgres/deposit"
	outboxrepo "github.com/ecobin/rewards-backend/internal/adapter/postgres/outbox"
	"github.com/ecobin/rewards-backend/internal/adapter/rabbitmq"
	"github.com/ecobin/rewards-backend/internal/adapter/redis"
	"github.com/ecobin/rewards-backend/internal/auth"
	"github.com/ecobin/rewards-backend/internal/config"
	"github.com/ecobin/rewards-backend/internal/metrics"
	"github.com/ecobin/rewards-backend/internal/service/account"
	"github.com/ecobin/rewards-backend/internal/service/bin"
	"github.com/ecobin/rewards-backend/internal/service/collector"
	"github.com/ecobin/rewards-backend/internal/service/leaderboard"
	"github.com/ecobin/rewards-backend/internal/service/ledger"
	"github.com/ecobin/rewards-backend/internal/service/ledger/leveling"
	"github.com/ecobin/rewards-backend/internal/service/ledger/pricing"
	"github.com/ecobin/rewards-backend/internal/service/outbox"
	"github.com/ecobin/rewards-backend/internal/transport/middleware"
	"github.com/ecobin/rewards-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the store, wires services and serves HTTP until ctx is cancelled. The outbox
// relay and the reconcile schedule run alongside the server when configured.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.InfoContext(ctx, "starting application",
		slog.String("build", ReadBuildInfo().String()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return err
		}
	}

	prices, err := pricing.New(cfg.Rewards)
	if err != nil {
		return fmt.Errorf("pricing table: %w", err)
	}
	levels, err := leveling.New(cfg.Leveling)
	if err != nil {
		return fmt.Errorf("leveling policy: %w", err)
	}

	m := metrics.New()
	txm := postgres.NewTxManager(pool, cfg.Store, logger)

	accounts := accountrepo.New(pool)
	bins := binrepo.New(pool)
	deposits := deposit.New(pool)
	applications := collectorrepo.New(pool)
	audits := audit.New(pool)
	events := outboxrepo.New(pool)

	ledgerSvc := ledger.NewService(logger, txm, bins, accounts, deposits, events, prices, levels, m, cfg.Reconcile.BatchSize)
	accountSvc := account.NewService(logger, accounts, deposits, levels, txm)
	binSvc := bin.NewService(logger, bins, txm)
	collectorSvc := collector.NewService(logger, accounts, applications, audits, events, txm)

	health := []rest.Dependency{{Name: "database", Check: pool, Required: true}}

	boardSvc, cache, closeCache := newLeaderboard(ctx, logger, cfg, accounts, txm)
	defer closeCache()
	if cache != nil {
		health = append(health, rest.Dependency{Name: "cache", Check: cache})
	}

	var relay *outbox.Relay
	if cfg.RabbitMQ.PublisherEnabled() {
		pub, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger)
		if err != nil {
			return fmt.Errorf("rabbitmq publisher: %w", err)
		}
		defer pub.Close()
		health = append(health, rest.Dependency{Name: "broker", Check: pub})
		relay = outbox.NewRelay(logger, events, pub, txm, m, cfg.Outbox)
	} else {
		logger.InfoContext(ctx, "outbox relay disabled: rabbitmq url not configured")
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit)
		defer limiter.Stop()
	}

	deps := rest.RouterDeps{
		Handlers: rest.Handlers{
			Health:      rest.NewHealthHandler(Version, health...),
			Deposit:     rest.NewDepositHandler(ledgerSvc, prices.Precision(), logger),
			Account:     rest.NewAccountHandler(accountSvc, prices.Precision(), logger),
			Leaderboard: rest.NewLeaderboardHandler(boardSvc, prices.Precision(), logger),
			Bin:         rest.NewBinHandler(binSvc, logger),
			Collector:   rest.NewCollectorHandler(collectorSvc, logger),
		},
		Tokens:      auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		Logger:      logger,
		CORS:        cfg.CORS,
		RateLimiter: limiter,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = m
		deps.MetricsPath = cfg.Metrics.Path
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rest.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})

	if relay != nil {
		g.Go(func() error { return relay.Run(gctx) })
	}

	if cfg.Reconcile.Enabled {
		sched := NewScheduler(logger, ledgerSvc, cfg.Reconcile)
		g.Go(func() error { return sched.Run(gctx) })
	}

	err = g.Wait()
	logger.Info("application stopped")
	return err
}

// newLeaderboard wires the optional Redis cache. A cache that cannot be
// reached at startup is skipped; the leaderboard then reads the store only.
func newLeaderboard(
	ctx context.Context,
	logger *slog.Logger,
	cfg *config.Config,
	accounts *accountrepo.Repo,
	txm *postgres.TxManager,
) (*leaderboard.Service, *redis.LeaderboardCache, func()) {
	noop := func() {}
	if !cfg.Redis.CacheEnabled() {
		return leaderboard.NewService(logger, accounts, txm, nil, cfg.Leaderboard), nil, noop
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.WarnContext(ctx, "leaderboard cache disabled", slog.String("error", err.Error()))
		return leaderboard.NewService(logger, accounts, txm, nil, cfg.Leaderboard), nil, noop
	}

	c := redis.NewLeaderboardCache(client, cfg.Redis.KeyPrefix, cfg.Leaderboard.CacheTTL)
	return leaderboard.NewService(logger, accounts, txm, c, cfg.Leaderboard), c, func() { _ = client.Close() }
}
