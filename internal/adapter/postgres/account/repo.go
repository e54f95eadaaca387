// Package account implements the Account store using PostgreSQL.
package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecobin/rewards-backend/internal/adapter/postgres"
	"github.com/ecobin/rewards-backend/internal/domain"
)

const table = "accounts"

var columns = []string{
	"id", "display_name", "wallet_balance", "xp_points", "eco_level",
	"is_collector", "municipality_id", "created_at", "updated_at",
}

// Repo provides account persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new account repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID             uuid.UUID       `db:"id"`
	DisplayName    string          `db:"display_name"`
	WalletBalance  decimal.Decimal `db:"wallet_balance"`
	XPPoints       int64           `db:"xp_points"`
	EcoLevel       string          `db:"eco_level"`
	IsCollector    bool            `db:"is_collector"`
	MunicipalityID *uuid.UUID      `db:"municipality_id"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an account by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id})
	return r.getOne(ctx, query, id)
}

// GetForUpdate returns an account and locks its row until the surrounding
// transaction ends. Concurrent callers for the same account serialize here;
// different accounts never contend.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id}).Suffix("FOR UPDATE")
	return r.getOne(ctx, query, id)
}

// TopByXP returns up to limit accounts ordered by xp_points DESC, id ASC,
// starting strictly after the cursor when one is given.
func (r *Repo) TopByXP(ctx context.Context, after *domain.RankCursor, limit int) ([]domain.Account, error) {
	query := postgres.Builder.Select(columns...).From(table).
		OrderBy("xp_points DESC", "id ASC").
		Limit(uint64(limit))

	if after != nil {
		query = query.Where(sq.Or{
			sq.Lt{"xp_points": after.XPPoints},
			sq.And{sq.Eq{"xp_points": after.XPPoints}, sq.Gt{"id": after.ID}},
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("account: build top query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "account", "leaderboard")
	}

	out := make([]domain.Account, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new account. Accounts are normally provisioned by the
// profile collaborator; this is used by the seeder and tests.
func (r *Repo) Create(ctx context.Context, acc domain.Account) (*domain.Account, error) {
	query := postgres.Builder.Insert(table).
		Columns("id", "display_name", "wallet_balance", "xp_points", "eco_level", "is_collector", "municipality_id").
		Values(acc.ID, acc.DisplayName, acc.WalletBalance, acc.XPPoints, acc.EcoLevel, acc.IsCollector, acc.MunicipalityID).
		Suffix("RETURNING " + joinColumns())

	return r.getOne(ctx, query, acc.ID)
}

// ApplyCredit stores the new wallet balance, XP and level of an account.
// Callers must hold the row lock from GetForUpdate.
func (r *Repo) ApplyCredit(ctx context.Context, id uuid.UUID, wallet decimal.Decimal, xp int64, level string) (*domain.Account, error) {
	query := postgres.Builder.Update(table).
		Set("wallet_balance", wallet).
		Set("xp_points", xp).
		Set("eco_level", level).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns())

	return r.getOne(ctx, query, id)
}

// SetCollector sets the collector flag of an account.
func (r *Repo) SetCollector(ctx context.Context, id uuid.UUID, isCollector bool) error {
	sql, args, err := postgres.Builder.Update(table).
		Set("is_collector", isCollector).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("account: build update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "account", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, domain.ErrAccountNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type sqlizer interface {
	ToSql() (string, []any, error)
}

func (r *Repo) getOne(ctx context.Context, query sqlizer, id uuid.UUID) (*domain.Account, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("account: build query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("account %s: %w", id, domain.ErrAccountNotFound)
		}
		return nil, postgres.MapError(err, "account", id)
	}

	acc := toDomain(rw)
	return &acc, nil
}

func toDomain(rw row) domain.Account {
	return domain.Account{
		ID:             rw.ID,
		DisplayName:    rw.DisplayName,
		WalletBalance:  rw.WalletBalance,
		XPPoints:       rw.XPPoints,
		EcoLevel:       rw.EcoLevel,
		IsCollector:    rw.IsCollector,
		MunicipalityID: rw.MunicipalityID,
		CreatedAt:      rw.CreatedAt,
		UpdatedAt:      rw.UpdatedAt,
	}
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}
