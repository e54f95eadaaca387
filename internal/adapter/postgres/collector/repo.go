// Package collector implements collector application persistence using
// PostgreSQL.
package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/adapter/postgres"
	"github.com/ecobin/rewards-backend/internal/domain"
)

const table = "collector_applications"

var columns = []string{
	"id", "account_id", "id_document", "address", "schedule", "collector_type",
	"status", "created_at", "approved_at", "decided_at", "decided_by",
}

// Repo provides collector application persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new collector application repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID            uuid.UUID  `db:"id"`
	AccountID     uuid.UUID  `db:"account_id"`
	IDDocument    string     `db:"id_document"`
	Address       string     `db:"address"`
	Schedule      *string    `db:"schedule"`
	CollectorType string     `db:"collector_type"`
	Status        string     `db:"status"`
	CreatedAt     time.Time  `db:"created_at"`
	ApprovedAt    *time.Time `db:"approved_at"`
	DecidedAt     *time.Time `db:"decided_at"`
	DecidedBy     *uuid.UUID `db:"decided_by"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateIfNoActive inserts a pending application unless the account already
// has a pending or approved one. The check and the insert are one statement
// arbitrated by the partial unique index, so concurrent submissions for the
// same account produce exactly one row.
func (r *Repo) CreateIfNoActive(ctx context.Context, app domain.CollectorApplication) (*domain.CollectorApplication, error) {
	sql, args, err := postgres.Builder.Insert(table).
		Columns("id", "account_id", "id_document", "address", "schedule", "collector_type", "status").
		Values(app.ID, app.AccountID, app.IDDocument, app.Address, app.Schedule,
			string(app.CollectorType), string(domain.ApplicationStatusPending)).
		Suffix("ON CONFLICT (account_id) WHERE status IN ('pending', 'approved') DO NOTHING " +
			"RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("collector: build insert: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("account %s: %w", app.AccountID, domain.ErrDuplicateApplication)
		}
		return nil, postgres.MapError(err, "collector application", app.ID)
	}

	out := toDomain(rw)
	return &out, nil
}

// Decide moves an application out of pending. approvedAt is set only for
// approvals. The row must have been locked with GetForUpdate.
func (r *Repo) Decide(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, decidedBy uuid.UUID, decidedAt time.Time) (*domain.CollectorApplication, error) {
	query := postgres.Builder.Update(table).
		Set("status", string(status)).
		Set("decided_at", decidedAt).
		Set("decided_by", decidedBy).
		Where(sq.Eq{"id": id, "status": string(domain.ApplicationStatusPending)}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if status == domain.ApplicationStatusApproved {
		query = query.Set("approved_at", decidedAt)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("collector: build update: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("collector application %s: %w", id, domain.ErrInvalidTransition)
		}
		return nil, postgres.MapError(err, "collector application", id)
	}

	out := toDomain(rw)
	return &out, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetForUpdate returns an application and locks its row.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.CollectorApplication, error) {
	sql, args, err := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("collector: build query: %w", err)
	}
	return r.getOne(ctx, sql, args, id)
}

// GetByID returns an application by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CollectorApplication, error) {
	sql, args, err := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("collector: build query: %w", err)
	}
	return r.getOne(ctx, sql, args, id)
}

// GetLatestByAccount returns the most recent application of an account.
func (r *Repo) GetLatestByAccount(ctx context.Context, accountID uuid.UUID) (*domain.CollectorApplication, error) {
	sql, args, err := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("collector: build query: %w", err)
	}
	return r.getOne(ctx, sql, args, accountID)
}

// List returns applications oldest first, optionally narrowed to one status.
func (r *Repo) List(ctx context.Context, status *domain.ApplicationStatus, limit, offset int) ([]domain.CollectorApplication, error) {
	query := postgres.Builder.Select(columns...).From(table).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if status != nil {
		query = query.Where(sq.Eq{"status": string(*status)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("collector: build list query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "collector application", "list")
	}

	out := make([]domain.CollectorApplication, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, sql string, args []any, key any) (*domain.CollectorApplication, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("collector application %v: %w", key, domain.ErrApplicationNotFound)
		}
		return nil, postgres.MapError(err, "collector application", key)
	}
	out := toDomain(rw)
	return &out, nil
}

func toDomain(rw row) domain.CollectorApplication {
	return domain.CollectorApplication{
		ID:            rw.ID,
		AccountID:     rw.AccountID,
		IDDocument:    rw.IDDocument,
		Address:       rw.Address,
		Schedule:      rw.Schedule,
		CollectorType: domain.CollectorType(rw.CollectorType),
		Status:        domain.ApplicationStatus(rw.Status),
		CreatedAt:     rw.CreatedAt,
		ApprovedAt:    rw.ApprovedAt,
		DecidedAt:     rw.DecidedAt,
		DecidedBy:     rw.DecidedBy,
	}
}
