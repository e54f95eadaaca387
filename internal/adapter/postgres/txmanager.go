package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ecobin/rewards-backend/internal/config"
	"github.com/ecobin/rewards-backend/internal/domain"
)

// TxManager runs units of work against the database using the context
// pattern. Every unit of work is bounded by the store timeout, and failures
// known to have rolled back are retried with exponential backoff.
//
// Nested RunInTx calls are NOT supported: calling RunInTx inside a RunInTx
// callback opens a second independent transaction. Read inside RunInTx reuses
// the outer transaction.
type TxManager struct {
	db              DB
	log             *slog.Logger
	timeout         time.Duration
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// NewTxManager creates a new TxManager.
func NewTxManager(db DB, cfg config.StoreConfig, logger *slog.Logger) *TxManager {
	return &TxManager{
		db:              db,
		log:             logger.With("component", "txmanager"),
		timeout:         cfg.QueryTimeout,
		maxRetries:      cfg.MaxRetries,
		initialInterval: cfg.RetryInitialInterval,
		maxInterval:     cfg.RetryMaxInterval,
	}
}

// RunInTx executes fn within a database transaction.
// Isolation level: Read Committed (PostgreSQL default); callers take row locks
// where they need mutual exclusion.
// On success: commits.
// On error from fn: rolls back and returns the error.
// On panic from fn: rolls back and re-panics.
// fn may run more than once when an attempt fails transiently, so it must
// have no side effects outside the transaction.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.retry(ctx, "tx", func(ctx context.Context) error {
		return m.runOnce(ctx, fn)
	})
}

// Read executes fn outside an explicit transaction with the same timeout and
// retry policy as RunInTx. It is meant for naturally idempotent reads.
func (m *TxManager) Read(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}
	return m.retry(ctx, "read", func(ctx context.Context) error {
		ctx, cancel := m.withTimeout(ctx)
		defer cancel()
		return fn(ctx)
	})
}

func (m *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	// Rollback must reach the server even when the caller has gone away.
	rollback := func() error {
		rbCtx, rbCancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer rbCancel()
		return tx.Rollback(rbCtx)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = rollback()
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return &commitError{err: err}
	}

	return nil
}

func (m *TxManager) retry(ctx context.Context, kind string, op func(ctx context.Context) error) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		m.log.WarnContext(ctx, "transient store failure, retrying",
			slog.String("kind", kind),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()),
		)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(m.newBackOff(), ctx), notify)
	return m.classify(ctx, err)
}

func (m *TxManager) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if m.initialInterval > 0 {
		b.InitialInterval = m.initialInterval
	}
	if m.maxInterval > 0 {
		b.MaxInterval = m.maxInterval
	}
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, uint64(max(m.maxRetries, 0)))
}

// classify turns store-level failures into domain.ErrUnavailable. A caller's
// own cancellation is returned untouched.
func (m *TxManager) classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, domain.ErrUnavailable) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || IsTransient(err) || isConnectivity(err) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return err
}

func (m *TxManager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}
