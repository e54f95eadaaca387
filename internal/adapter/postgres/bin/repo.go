// Package bin implements the Bin registry using PostgreSQL.
package bin

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

const table = "bins"

var columns = []string{"id", "bin_code", "location", "status", "fill_level", "municipality_id", "created_at"}

// Repo provides bin persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new bin repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID             uuid.UUID  `db:"id"`
	Code           string     `db:"bin_code"`
	Location       string     `db:"location"`
	Status         string     `db:"status"`
	FillLevel      int        `db:"fill_level"`
	MunicipalityID *uuid.UUID `db:"municipality_id"`
	CreatedAt      time.Time  `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByCode returns the bin with the given code.
func (r *Repo) GetByCode(ctx context.Context, code string) (*domain.Bin, error) {
	sql, args, err := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"bin_code": code}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("bin: build query: %w", err)
	}
	return r.getOne(ctx, sql, args, code)
}

// GetByID returns the bin with the given ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bin, error) {
	sql, args, err := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("bin: build query: %w", err)
	}
	return r.getOne(ctx, sql, args, id)
}

// List returns bins matching the filter ordered by location, then code.
func (r *Repo) List(ctx context.Context, filter domain.BinFilter) ([]domain.Bin, error) {
	query := postgres.Builder.Select(columns...).From(table).OrderBy("location ASC", "bin_code ASC")

	if filter.Status != nil {
		query = query.Where(sq.Eq{"status": string(*filter.Status)})
	}
	if filter.MunicipalityID != nil {
		query = query.Where(sq.Eq{"municipality_id": *filter.MunicipalityID})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("bin: build list query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "bin", "list")
	}

	out := make([]domain.Bin, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// CountByStatus returns the number of bins per status.
func (r *Repo) CountByStatus(ctx context.Context) (domain.BinSummary, error) {
	sql, args, err := postgres.Builder.Select("status", "count(*) AS n").From(table).GroupBy("status").ToSql()
	if err != nil {
		return domain.BinSummary{}, fmt.Errorf("bin: build summary query: %w", err)
	}

	var counts []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &counts, sql, args...); err != nil {
		return domain.BinSummary{}, postgres.MapError(err, "bin", "summary")
	}

	var s domain.BinSummary
	for _, c := range counts {
		s.Total += c.N
		switch domain.BinStatus(c.Status) {
		case domain.BinStatusAvailable:
			s.Available = c.N
		case domain.BinStatusFull:
			s.Full = c.N
		case domain.BinStatusOffline:
			s.Offline = c.N
		}
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert inserts a bin or updates the bin with the same code. Bin status and
// fill level are owned by bin operations; this is used by the seeder.
func (r *Repo) Upsert(ctx context.Context, b domain.Bin) (*domain.Bin, error) {
	sql, args, err := postgres.Builder.Insert(table).
		Columns("id", "bin_code", "location", "status", "fill_level", "municipality_id").
		Values(b.ID, b.Code, b.Location, string(b.Status), b.FillLevel, b.MunicipalityID).
		Suffix("ON CONFLICT (bin_code) DO UPDATE SET " +
			"location = EXCLUDED.location, status = EXCLUDED.status, " +
			"fill_level = EXCLUDED.fill_level, municipality_id = EXCLUDED.municipality_id " +
			"RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("bin: build upsert: %w", err)
	}
	return r.getOne(ctx, sql, args, b.Code)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, sql string, args []any, key any) (*domain.Bin, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("bin %v: %w", key, domain.ErrBinNotFound)
		}
		return nil, postgres.MapError(err, "bin", key)
	}
	b := toDomain(rw)
	return &b, nil
}

func toDomain(rw row) domain.Bin {
	return domain.Bin{
		ID:             rw.ID,
		Code:           rw.Code,
		Location:       rw.Location,
		Status:         domain.BinStatus(rw.Status),
		FillLevel:      rw.FillLevel,
		MunicipalityID: rw.MunicipalityID,
		CreatedAt:      rw.CreatedAt,
	}
}
