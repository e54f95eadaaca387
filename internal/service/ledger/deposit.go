package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// Deposit prices a deposit, appends it to the ledger and credits the
// depositor, all in one transaction. The account row is locked for the
// duration, so concurrent deposits by one account serialize while deposits by
// different accounts proceed in parallel.
//
// With an idempotency key, a repeated call returns the original receipt with
// Replayed set and credits nothing.
func (s *Service) Deposit(ctx context.Context, input DepositInput) (*domain.DepositReceipt, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	quote, err := s.pricing.Price(input.Material, input.WeightKg)
	if err != nil {
		return nil, fmt.Errorf("ledger.Deposit: %w", err)
	}

	binCode := strings.TrimSpace(input.BinCode)
	var key *string
	if input.IdempotencyKey != nil {
		k := strings.TrimSpace(*input.IdempotencyKey)
		key = &k
	}

	var receipt *domain.DepositReceipt
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		bin, err := s.bins.GetByCode(txCtx, binCode)
		if err != nil {
			return fmt.Errorf("resolve bin: %w", err)
		}

		acc, err := s.accounts.GetForUpdate(txCtx, input.AccountID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				s.log.ErrorContext(ctx, "authenticated account has no ledger account",
					slog.String("account_id", input.AccountID.String()),
				)
				return fmt.Errorf("account %s: %w", input.AccountID, domain.ErrInvariant)
			}
			return fmt.Errorf("lock account: %w", err)
		}

		if key != nil {
			prev, err := s.deposits.GetByIdempotencyKey(txCtx, acc.ID, *key)
			switch {
			case err == nil:
				if !samePayload(prev, bin.ID, quote) {
					return fmt.Errorf("key %q: %w", *key, domain.ErrIdempotencyMismatch)
				}
				receipt = replayReceipt(prev, acc)
				return nil
			case !errors.Is(err, domain.ErrNotFound):
				return fmt.Errorf("lookup idempotency key: %w", err)
			}
		}

		if quote.XP > math.MaxInt64-acc.XPPoints {
			return fmt.Errorf("account %s xp %d + %d: %w", acc.ID, acc.XPPoints, quote.XP, domain.ErrXPOverflow)
		}

		dep, err := s.deposits.Create(txCtx, domain.Deposit{
			ID:             uuid.New(),
			AccountID:      acc.ID,
			BinID:          bin.ID,
			Material:       quote.Material,
			WeightKg:       quote.WeightKg,
			RewardAmount:   quote.Reward,
			XPEarned:       quote.XP,
			CarbonOffsetKg: quote.CarbonOffsetKg,
			IdempotencyKey: key,
		})
		if err != nil {
			return fmt.Errorf("append deposit: %w", err)
		}

		wallet := acc.WalletBalance.Add(quote.Reward)
		xp := acc.XPPoints + quote.XP
		level := s.levels.LevelFor(xp)

		updated, err := s.accounts.ApplyCredit(txCtx, acc.ID, wallet, xp, level.Label)
		if err != nil {
			return fmt.Errorf("credit account: %w", err)
		}

		evt, err := depositRecordedEvent(dep, bin, updated)
		if err != nil {
			return err
		}
		if err := s.outbox.Enqueue(txCtx, evt); err != nil {
			return fmt.Errorf("enqueue event: %w", err)
		}

		receipt = &domain.DepositReceipt{
			DepositID:      dep.ID,
			Reward:         dep.RewardAmount,
			XP:             dep.XPEarned,
			CarbonOffsetKg: dep.CarbonOffsetKg,
			NewLevel:       updated.EcoLevel,
			WalletBalance:  updated.WalletBalance,
			XPPoints:       updated.XPPoints,
			CreatedAt:      dep.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.Deposit: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ObserveDeposit(quote.Material, receipt.Reward, receipt.Replayed)
	}

	s.log.InfoContext(ctx, "deposit recorded",
		slog.String("account_id", input.AccountID.String()),
		slog.String("deposit_id", receipt.DepositID.String()),
		slog.String("bin_code", binCode),
		slog.String("material", string(quote.Material)),
		slog.String("reward", receipt.Reward.String()),
		slog.Int64("xp", receipt.XP),
		slog.String("level", receipt.NewLevel),
		slog.Bool("replayed", receipt.Replayed),
	)

	return receipt, nil
}

func samePayload(prev *domain.Deposit, binID uuid.UUID, q domain.Quote) bool {
	return prev.BinID == binID && prev.Material == q.Material && prev.WeightKg.Equal(q.WeightKg)
}

// replayReceipt reports the original deposit against the account's current
// aggregate.
func replayReceipt(prev *domain.Deposit, acc *domain.Account) *domain.DepositReceipt {
	return &domain.DepositReceipt{
		DepositID:      prev.ID,
		Reward:         prev.RewardAmount,
		XP:             prev.XPEarned,
		CarbonOffsetKg: prev.CarbonOffsetKg,
		NewLevel:       acc.EcoLevel,
		WalletBalance:  acc.WalletBalance,
		XPPoints:       acc.XPPoints,
		CreatedAt:      prev.CreatedAt,
		Replayed:       true,
	}
}

// DepositRecorded is the payload of domain.TopicDepositRecorded.
type DepositRecorded struct {
	DepositID      uuid.UUID `json:"deposit_id"`
	AccountID      uuid.UUID `json:"account_id"`
	BinID          uuid.UUID `json:"bin_id"`
	BinCode        string    `json:"bin_code"`
	Material       string    `json:"material"`
	WeightKg       string    `json:"weight_kg"`
	Reward         string    `json:"reward"`
	XP             int64     `json:"xp"`
	CarbonOffsetKg string    `json:"carbon_offset_kg"`
	EcoLevel       string    `json:"eco_level"`
	XPPoints       int64     `json:"xp_points"`
	CreatedAt      time.Time `json:"created_at"`
}

func depositRecordedEvent(dep *domain.Deposit, bin *domain.Bin, acc *domain.Account) (domain.OutboxEvent, error) {
	payload, err := json.Marshal(DepositRecorded{
		DepositID:      dep.ID,
		AccountID:      dep.AccountID,
		BinID:          bin.ID,
		BinCode:        bin.Code,
		Material:       string(dep.Material),
		WeightKg:       dep.WeightKg.String(),
		Reward:         dep.RewardAmount.String(),
		XP:             dep.XPEarned,
		CarbonOffsetKg: dep.CarbonOffsetKg.String(),
		EcoLevel:       acc.EcoLevel,
		XPPoints:       acc.XPPoints,
		CreatedAt:      dep.CreatedAt,
	})
	if err != nil {
		return domain.OutboxEvent{}, fmt.Errorf("marshal deposit event: %w", err)
	}
	return domain.OutboxEvent{
		ID:          uuid.New(),
		Topic:       domain.TopicDepositRecorded,
		AggregateID: dep.ID,
		Payload:     payload,
	}, nil
}
