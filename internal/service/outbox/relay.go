// Package outbox relays events committed with ledger and onboarding changes
// to the message broker. Delivery is at least once; consumers deduplicate on
// the message id.
package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/config"
	"github.com/ecobin/rewards-backend/internal/domain"
)

type outboxRepo interface {
	ClaimPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, nextAttemptAt time.Time) error
	CountPending(ctx context.Context) (int64, error)
	Lease(ctx context.Context, ids []uuid.UUID, until time.Time) error
}

type publisher interface {
	Publish(ctx context.Context, topic, messageID string, body []byte) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

type observer interface {
	ObservePublish(topic string, err error)
	SetOutboxPending(n int64)
}

const (
	maxRetryDelay = 5 * time.Minute
	parkDelay     = 24 * time.Hour
	defaultLease  = time.Minute
	settleTimeout = 5 * time.Second
)

// Relay polls the outbox and publishes due events.
type Relay struct {
	log       *slog.Logger
	repo      outboxRepo
	pub       publisher
	tx        txManager
	metrics   observer
	interval  time.Duration
	batchSize int
	maxTries  int
	lease     time.Duration
	now       func() time.Time
}

// NewRelay creates a relay. metrics may be nil.
func NewRelay(logger *slog.Logger, repo outboxRepo, pub publisher, tx txManager, metrics observer, cfg config.OutboxConfig) *Relay {
	lease := cfg.Lease
	if lease <= 0 {
		lease = defaultLease
	}
	return &Relay{
		log:       logger.With("component", "outbox_relay"),
		repo:      repo,
		pub:       pub,
		tx:        tx,
		metrics:   metrics,
		interval:  cfg.PollInterval,
		batchSize: cfg.BatchSize,
		maxTries:  cfg.MaxAttempts,
		lease:     lease,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run flushes the outbox every poll interval until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	r.log.InfoContext(ctx, "outbox relay started", slog.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.InfoContext(ctx, "outbox relay stopped")
			return nil
		case <-ticker.C:
			if _, err := r.FlushOnce(ctx); err != nil && ctx.Err() == nil {
				r.log.ErrorContext(ctx, "outbox flush failed", slog.String("error", err.Error()))
			}
		}
	}
}

// FlushOnce publishes one batch of due events and returns how many went out.
//
// Claiming and recording outcomes are two short transactions with the
// publishes in between, outside any transaction. Claimed events are leased
// while in flight; if the outcome is never recorded they are published again
// once the lease runs out.
func (r *Relay) FlushOnce(ctx context.Context) (int, error) {
	due, err := r.claim(ctx)
	if err != nil {
		return 0, fmt.Errorf("outbox.FlushOnce: %w", err)
	}

	var (
		published []uuid.UUID
		failed    []failure
	)
	for _, evt := range due {
		if ctx.Err() != nil {
			break
		}
		pubErr := r.pub.Publish(ctx, evt.Topic, evt.ID.String(), evt.Payload)
		if r.metrics != nil {
			r.metrics.ObservePublish(evt.Topic, pubErr)
		}
		if pubErr != nil {
			r.log.WarnContext(ctx, "outbox publish failed",
				slog.String("event_id", evt.ID.String()),
				slog.String("topic", evt.Topic),
				slog.Int("attempt", evt.Attempts+1),
				slog.String("error", pubErr.Error()),
			)
			failed = append(failed, failure{
				id:     evt.ID,
				reason: pubErr.Error(),
				next:   r.now().Add(RetryDelay(evt.Attempts + 1)),
			})
			continue
		}
		published = append(published, evt.ID)
	}

	if err := r.settle(ctx, published, failed); err != nil {
		return 0, fmt.Errorf("outbox.FlushOnce: %w", err)
	}

	if r.metrics != nil {
		r.reportPending(ctx)
	}
	return len(published), nil
}

type failure struct {
	id     uuid.UUID
	reason string
	next   time.Time
}

// claim locks a batch, parks exhausted events and leases the rest.
func (r *Relay) claim(ctx context.Context) ([]domain.OutboxEvent, error) {
	var due []domain.OutboxEvent
	err := r.tx.RunInTx(ctx, func(txCtx context.Context) error {
		due = due[:0]

		events, err := r.repo.ClaimPending(txCtx, r.batchSize)
		if err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(events))
		for _, evt := range events {
			if r.maxTries > 0 && evt.Attempts >= r.maxTries {
				r.log.ErrorContext(ctx, "outbox event parked after repeated failures",
					slog.String("event_id", evt.ID.String()),
					slog.String("topic", evt.Topic),
					slog.Int("attempts", evt.Attempts),
				)
				if err := r.repo.MarkFailed(txCtx, evt.ID, "parked: max attempts reached", r.now().Add(parkDelay)); err != nil {
					return err
				}
				continue
			}
			due = append(due, evt)
			ids = append(ids, evt.ID)
		}

		return r.repo.Lease(txCtx, ids, r.now().Add(r.lease))
	})
	return due, err
}

// settle records publish outcomes. It outlives a cancelled ctx for a short
// while so a shutdown mid-batch does not leave delivered events leased.
func (r *Relay) settle(ctx context.Context, published []uuid.UUID, failed []failure) error {
	if len(published) == 0 && len(failed) == 0 {
		return nil
	}

	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer cancel()

	return r.tx.RunInTx(settleCtx, func(txCtx context.Context) error {
		for _, f := range failed {
			if err := r.repo.MarkFailed(txCtx, f.id, f.reason, f.next); err != nil {
				return err
			}
		}
		return r.repo.MarkPublished(txCtx, published)
	})
}

func (r *Relay) reportPending(ctx context.Context) {
	var n int64
	err := r.tx.Read(ctx, func(ctx context.Context) error {
		var err error
		n, err = r.repo.CountPending(ctx)
		return err
	})
	if err != nil {
		r.log.WarnContext(ctx, "count pending outbox events", slog.String("error", err.Error()))
		return
	}
	r.metrics.SetOutboxPending(n)
}

// RetryDelay is the wait before the given attempt: 1s doubling per attempt,
// capped at five minutes. It replays a jitter-free exponential schedule up to
// the attempt, since the attempt count is all that survives between polls.
func RetryDelay(attempt int) time.Duration {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = maxRetryDelay
	b.MaxElapsedTime = 0
	b.Reset()

	d := b.NextBackOff()
	for i := 1; i < attempt && d < maxRetryDelay; i++ {
		d = b.NextBackOff()
	}
	return d
}
