// Package deposit implements the append-only deposit ledger using PostgreSQL.
package deposit

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

const table = "deposits"

var columns = []string{
	"id", "account_id", "bin_id", "material_type", "weight_kg", "reward_amount",
	"xp_earned", "carbon_offset_kg", "idempotency_key", "created_at",
}

// Repo provides deposit persistence backed by PostgreSQL. Deposits are never
// updated or deleted.
type Repo struct {
	db postgres.Querier
}

// New creates a new deposit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID             uuid.UUID       `db:"id"`
	AccountID      uuid.UUID       `db:"account_id"`
	BinID          uuid.UUID       `db:"bin_id"`
	Material       string          `db:"material_type"`
	WeightKg       decimal.Decimal `db:"weight_kg"`
	RewardAmount   decimal.Decimal `db:"reward_amount"`
	XPEarned       int64           `db:"xp_earned"`
	CarbonOffsetKg decimal.Decimal `db:"carbon_offset_kg"`
	IdempotencyKey *string         `db:"idempotency_key"`
	CreatedAt      time.Time       `db:"created_at"`
}

type viewRow struct {
	row
	BinCode     string `db:"bin_code"`
	BinLocation string `db:"location"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create appends a deposit record. created_at is assigned by the database.
func (r *Repo) Create(ctx context.Context, d domain.Deposit) (*domain.Deposit, error) {
	sql, args, err := postgres.Builder.Insert(table).
		Columns("id", "account_id", "bin_id", "material_type", "weight_kg", "reward_amount",
			"xp_earned", "carbon_offset_kg", "idempotency_key").
		Values(d.ID, d.AccountID, d.BinID, string(d.Material), d.WeightKg, d.RewardAmount,
			d.XPEarned, d.CarbonOffsetKg, d.IdempotencyKey).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("deposit: build insert: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "deposit", d.ID)
	}

	out := toDomain(rw)
	return &out, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByIdempotencyKey returns the deposit an account made with the given key.
func (r *Repo) GetByIdempotencyKey(ctx context.Context, accountID uuid.UUID, key string) (*domain.Deposit, error) {
	sql, args, err := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"account_id": accountID, "idempotency_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("deposit: build query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "deposit", key)
	}

	out := toDomain(rw)
	return &out, nil
}

// ListByAccount returns an account's deposits newest first, joined with the
// bin they were made at.
func (r *Repo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.DepositView, error) {
	cols := make([]string, 0, len(columns)+2)
	for _, c := range columns {
		cols = append(cols, "d."+c)
	}
	cols = append(cols, "b.bin_code", "b.location")

	sql, args, err := postgres.Builder.Select(cols...).
		From(table + " d").
		Join("bins b ON b.id = d.bin_id").
		Where(sq.Eq{"d.account_id": accountID}).
		OrderBy("d.created_at DESC", "d.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("deposit: build history query: %w", err)
	}

	var rows []viewRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "deposit", accountID)
	}

	out := make([]domain.DepositView, len(rows))
	for i, rw := range rows {
		out[i] = domain.DepositView{
			Deposit:     toDomain(rw.row),
			BinCode:     rw.BinCode,
			BinLocation: rw.BinLocation,
		}
	}
	return out, nil
}

// TotalsByAccount aggregates an account's ledger.
func (r *Repo) TotalsByAccount(ctx context.Context, accountID uuid.UUID) (domain.AccountTotals, error) {
	sql, args, err := postgres.Builder.Select(
		"count(*) AS deposit_count",
		"COALESCE(sum(reward_amount), 0) AS total_reward",
		"COALESCE(sum(xp_earned), 0)::bigint AS total_xp",
		"COALESCE(sum(carbon_offset_kg), 0) AS total_carbon_kg",
		"COALESCE(sum(weight_kg), 0) AS total_weight_kg",
		"max(created_at) AS last_deposit_at",
	).From(table).Where(sq.Eq{"account_id": accountID}).ToSql()
	if err != nil {
		return domain.AccountTotals{}, fmt.Errorf("deposit: build totals query: %w", err)
	}

	var t struct {
		DepositCount  int64           `db:"deposit_count"`
		TotalReward   decimal.Decimal `db:"total_reward"`
		TotalXP       int64           `db:"total_xp"`
		TotalCarbonKg decimal.Decimal `db:"total_carbon_kg"`
		TotalWeightKg decimal.Decimal `db:"total_weight_kg"`
		LastDepositAt *time.Time      `db:"last_deposit_at"`
	}
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &t, sql, args...); err != nil {
		return domain.AccountTotals{}, postgres.MapError(err, "deposit totals", accountID)
	}

	return domain.AccountTotals{
		DepositCount:  t.DepositCount,
		TotalReward:   t.TotalReward,
		TotalXP:       t.TotalXP,
		TotalCarbonKg: t.TotalCarbonKg,
		TotalWeightKg: t.TotalWeightKg,
		LastDepositAt: t.LastDepositAt,
	}, nil
}

// LedgerBalances returns up to limit accounts with id greater than after,
// each with its stored aggregate and the sums derived from its deposits.
func (r *Repo) LedgerBalances(ctx context.Context, after uuid.UUID, limit int) ([]domain.LedgerBalance, error) {
	sql, args, err := postgres.Builder.Select(
		"a.id AS account_id",
		"a.wallet_balance",
		"a.xp_points",
		"a.eco_level",
		"COALESCE(d.sum_reward, 0) AS sum_reward",
		"COALESCE(d.sum_xp, 0)::bigint AS sum_xp",
		"COALESCE(d.deposit_count, 0) AS deposit_count",
	).
		From("accounts a").
		LeftJoin("LATERAL (SELECT sum(reward_amount) AS sum_reward, sum(xp_earned) AS sum_xp, " +
			"count(*) AS deposit_count FROM deposits WHERE account_id = a.id) d ON true").
		Where(sq.Gt{"a.id": after}).
		OrderBy("a.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("deposit: build balances query: %w", err)
	}

	var rows []struct {
		AccountID     uuid.UUID       `db:"account_id"`
		WalletBalance decimal.Decimal `db:"wallet_balance"`
		XPPoints      int64           `db:"xp_points"`
		EcoLevel      string          `db:"eco_level"`
		SumReward     decimal.Decimal `db:"sum_reward"`
		SumXP         int64           `db:"sum_xp"`
		DepositCount  int64           `db:"deposit_count"`
	}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "ledger balances", after)
	}

	out := make([]domain.LedgerBalance, len(rows))
	for i, rw := range rows {
		out[i] = domain.LedgerBalance{
			AccountID:     rw.AccountID,
			WalletBalance: rw.WalletBalance,
			XPPoints:      rw.XPPoints,
			EcoLevel:      rw.EcoLevel,
			SumReward:     rw.SumReward,
			SumXP:         rw.SumXP,
			DepositCount:  rw.DepositCount,
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func toDomain(rw row) domain.Deposit {
	return domain.Deposit{
		ID:             rw.ID,
		AccountID:      rw.AccountID,
		BinID:          rw.BinID,
		Material:       domain.Material(rw.Material),
		WeightKg:       rw.WeightKg,
		RewardAmount:   rw.RewardAmount,
		XPEarned:       rw.XPEarned,
		CarbonOffsetKg: rw.CarbonOffsetKg,
		IdempotencyKey: rw.IdempotencyKey,
		CreatedAt:      rw.CreatedAt,
	}
}
