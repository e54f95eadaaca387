// Package outbox implements the transactional outbox using PostgreSQL.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/adapter/postgres"
	"github.com/ecobin/rewards-backend/internal/domain"
)

const table = "outbox_events"

var columns = []string{"id", "topic", "aggregate_id", "payload", "attempts", "last_error", "created_at", "published_at"}

// Repo provides outbox persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new outbox repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID          uuid.UUID  `db:"id"`
	Topic       string     `db:"topic"`
	AggregateID uuid.UUID  `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Attempts    int        `db:"attempts"`
	LastError   *string    `db:"last_error"`
	CreatedAt   time.Time  `db:"created_at"`
	PublishedAt *time.Time `db:"published_at"`
}

// Enqueue stores an event. It must run in the transaction of the state change
// the event describes.
func (r *Repo) Enqueue(ctx context.Context, evt domain.OutboxEvent) error {
	sql, args, err := postgres.Builder.Insert(table).
		Columns("id", "topic", "aggregate_id", "payload").
		Values(evt.ID, evt.Topic, evt.AggregateID, []byte(evt.Payload)).
		ToSql()
	if err != nil {
		return fmt.Errorf("outbox: build insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "outbox event", evt.ID)
	}
	return nil
}

// ClaimPending locks up to limit unpublished events that are due, oldest
// first. Rows locked by another relay are skipped. Must run inside a
// transaction; the locks are held until it ends.
func (r *Repo) ClaimPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	sql, args, err := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"published_at": nil}).
		Where("next_attempt_at <= now()").
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("outbox: build claim query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "outbox event", "claim")
	}

	out := make([]domain.OutboxEvent, len(rows))
	for i, rw := range rows {
		out[i] = domain.OutboxEvent{
			ID:          rw.ID,
			Topic:       rw.Topic,
			AggregateID: rw.AggregateID,
			Payload:     json.RawMessage(rw.Payload),
			Attempts:    rw.Attempts,
			LastError:   rw.LastError,
			CreatedAt:   rw.CreatedAt,
			PublishedAt: rw.PublishedAt,
		}
	}
	return out, nil
}

// Lease moves next_attempt_at of the given events to until without counting
// an attempt, so other relays skip them until the lease runs out.
func (r *Repo) Lease(ctx context.Context, ids []uuid.UUID, until time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	sql, args, err := postgres.Builder.Update(table).
		Set("next_attempt_at", until).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("outbox: build lease: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "outbox events", len(ids))
	}
	return nil
}

// MarkPublished stamps published_at on the given events.
func (r *Repo) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	sql, args, err := postgres.Builder.Update(table).
		Set("published_at", sq.Expr("now()")).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("outbox: build update: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "outbox events", len(ids))
	}
	return nil
}

// MarkFailed records a failed publish attempt and schedules the next one.
func (r *Repo) MarkFailed(ctx context.Context, id uuid.UUID, reason string, nextAttemptAt time.Time) error {
	sql, args, err := postgres.Builder.Update(table).
		Set("attempts", sq.Expr("attempts + 1")).
		Set("last_error", reason).
		Set("next_attempt_at", nextAttemptAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("outbox: build update: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "outbox event", id)
	}
	return nil
}

// CountPending returns the number of unpublished events.
func (r *Repo) CountPending(ctx context.Context) (int64, error) {
	sql, args, err := postgres.Builder.Select("count(*)").From(table).Where(sq.Eq{"published_at": nil}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("outbox: build count query: %w", err)
	}

	var n int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "outbox event", "count")
	}
	return n, nil
}
