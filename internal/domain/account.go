package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a user's wallet, XP and level aggregate. Its ID matches the
// identity issued by the external auth collaborator.
type Account struct {
	ID             uuid.UUID
	DisplayName    string
	WalletBalance  decimal.Decimal
	XPPoints       int64
	EcoLevel       string
	IsCollector    bool
	MunicipalityID *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AccountTotals aggregates an account's deposit ledger.
type AccountTotals struct {
	DepositCount  int64
	TotalReward   decimal.Decimal
	TotalXP       int64
	TotalCarbonKg decimal.Decimal
	TotalWeightKg decimal.Decimal
	LastDepositAt *time.Time
}

// LeaderboardEntry is one row of the ranked projection.
type LeaderboardEntry struct {
	Rank          int
	AccountID     uuid.UUID
	DisplayName   string
	XPPoints      int64
	EcoLevel      string
	WalletBalance decimal.Decimal
}

// RankCursor is a keyset position in the leaderboard ordering
// (xp_points DESC, id ASC).
type RankCursor struct {
	XPPoints int64
	ID       uuid.UUID
}
