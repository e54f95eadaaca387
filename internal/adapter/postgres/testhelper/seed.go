package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedAccount creates a fresh account with a zero wallet and zero XP.
func SeedAccount(t *testing.T, pool *pgxpool.Pool) domain.Account {
	t.Helper()
	return SeedAccountWithXP(t, pool, 0, decimal.Zero, "Eco Rookie")
}

// SeedAccountWithXP creates an account with the given aggregate values.
func SeedAccountWithXP(t *testing.T, pool *pgxpool.Pool, xp int64, wallet decimal.Decimal, level string) domain.Account {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	acc := domain.Account{
		ID:            uuid.New(),
		DisplayName:   "Recycler " + uniqueSuffix(),
		WalletBalance: wallet,
		XPPoints:      xp,
		EcoLevel:      level,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO accounts (id, display_name, wallet_balance, xp_points, eco_level, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		acc.ID, acc.DisplayName, acc.WalletBalance, acc.XPPoints, acc.EcoLevel, acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccount insert: %v", err)
	}

	return acc
}

// SeedBin creates an available bin with a unique code.
func SeedBin(t *testing.T, pool *pgxpool.Pool) domain.Bin {
	t.Helper()
	return SeedBinWithStatus(t, pool, domain.BinStatusAvailable)
}

// SeedBinWithStatus creates a bin in the given status.
func SeedBinWithStatus(t *testing.T, pool *pgxpool.Pool, status domain.BinStatus) domain.Bin {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	bin := domain.Bin{
		ID:        uuid.New(),
		Code:      "BIN-" + suffix,
		Location:  "Test Street " + suffix,
		Status:    status,
		FillLevel: 10,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO bins (id, bin_code, location, status, fill_level, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		bin.ID, bin.Code, bin.Location, string(bin.Status), bin.FillLevel, bin.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBin insert: %v", err)
	}

	return bin
}

// CountDeposits returns the number of ledger rows for accountID.
func CountDeposits(t *testing.T, pool *pgxpool.Pool, accountID uuid.UUID) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM deposits WHERE account_id = $1`, accountID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountDeposits: %v", err)
	}
	return n
}
