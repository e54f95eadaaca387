package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deposit is an immutable ledger record. Reward, XP and carbon are frozen at
// creation time.
type Deposit struct {
	ID             uuid.UUID
	AccountID      uuid.UUID
	BinID          uuid.UUID
	Material       Material
	WeightKg       decimal.Decimal
	RewardAmount   decimal.Decimal
	XPEarned       int64
	CarbonOffsetKg decimal.Decimal
	IdempotencyKey *string
	CreatedAt      time.Time
}

// DepositView is a deposit joined with its bin code, used for history pages.
type DepositView struct {
	Deposit
	BinCode     string
	BinLocation string
}

// Quote is the priced outcome of a (material, weight) pair.
type Quote struct {
	Material       Material
	WeightKg       decimal.Decimal
	Reward         decimal.Decimal
	XP             int64
	CarbonOffsetKg decimal.Decimal
}

// DepositReceipt is returned to the depositor after a committed deposit.
type DepositReceipt struct {
	DepositID      uuid.UUID
	Reward         decimal.Decimal
	XP             int64
	CarbonOffsetKg decimal.Decimal
	NewLevel       string
	WalletBalance  decimal.Decimal
	XPPoints       int64
	CreatedAt      time.Time
	// Replayed is true when the receipt belongs to an earlier deposit with the
	// same idempotency key.
	Replayed bool
}

// LedgerBalance is an account's stored aggregate next to the sums derived from
// its deposits.
type LedgerBalance struct {
	AccountID     uuid.UUID
	WalletBalance decimal.Decimal
	XPPoints      int64
	EcoLevel      string
	SumReward     decimal.Decimal
	SumXP         int64
	DepositCount  int64
}

// ReconcileMismatch describes an account whose aggregate disagrees with its
// ledger.
type ReconcileMismatch struct {
	AccountID     uuid.UUID
	WalletBalance decimal.Decimal
	LedgerReward  decimal.Decimal
	XPPoints      int64
	LedgerXP      int64
	EcoLevel      string
	ExpectedLevel string
}

// ReconcileReport summarises a reconciliation pass.
type ReconcileReport struct {
	AccountsChecked int
	Mismatches      []ReconcileMismatch
	StartedAt       time.Time
	FinishedAt      time.Time
}
