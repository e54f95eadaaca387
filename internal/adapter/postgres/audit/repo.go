// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/adapter/postgres"
	"github.com/ecobin/rewards-backend/internal/domain"
)

const table = "audit_log"

var columns = []string{"id", "actor_id", "entity_type", "entity_id", "action", "changes", "created_at"}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID         uuid.UUID  `db:"id"`
	ActorID    uuid.UUID  `db:"actor_id"`
	EntityType string     `db:"entity_type"`
	EntityID   *uuid.UUID `db:"entity_id"`
	Action     string     `db:"action"`
	Changes    []byte     `db:"changes"`
	CreatedAt  time.Time  `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit record and returns the persisted domain.AuditRecord.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	var changesJSON []byte
	if record.Changes != nil {
		var err error
		changesJSON, err = json.Marshal(record.Changes)
		if err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record marshal changes: %w", err)
		}
	}

	sql, args, err := postgres.Builder.Insert(table).
		Columns("id", "actor_id", "entity_type", "entity_id", "action", "changes").
		Values(record.ID, record.ActorID, string(record.EntityType), record.EntityID, string(record.Action), changesJSON).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record: build insert: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID)
	}

	return toDomainAuditRecord(rw)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByEntity returns the change history for a specific entity, ordered by
// created_at DESC, limited to `limit` records.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	sql, args, err := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"entity_type": string(entityType), "entity_id": entityID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("audit_record: build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get audit_records by entity: %w", err)
	}

	records := make([]domain.AuditRecord, len(rows))
	for i, rw := range rows {
		rec, err := toDomainAuditRecord(rw)
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}

	return records, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

// toDomainAuditRecord converts an audit_log row into a domain.AuditRecord.
func toDomainAuditRecord(rw row) (domain.AuditRecord, error) {
	record := domain.AuditRecord{
		ID:         rw.ID,
		ActorID:    rw.ActorID,
		EntityType: domain.EntityType(rw.EntityType),
		EntityID:   rw.EntityID,
		Action:     domain.AuditAction(rw.Action),
		CreatedAt:  rw.CreatedAt,
	}

	// changes: JSONB -> map[string]any
	if len(rw.Changes) > 0 {
		changes := make(map[string]any)
		if err := json.Unmarshal(rw.Changes, &changes); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal changes: %w", rw.ID, err)
		}
		record.Changes = changes
	}

	return record, nil
}
