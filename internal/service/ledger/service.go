// Package ledger records deposits and credits accounts. A deposit and its
// credit are committed together or not at all.
package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/internal/service/ledger/leveling"
	"github.com/ecobin/rewards-backend/internal/service/ledger/pricing"
)

type binRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Bin, error)
}

type accountRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	ApplyCredit(ctx context.Context, id uuid.UUID, wallet decimal.Decimal, xp int64, level string) (*domain.Account, error)
}

type depositRepo interface {
	Create(ctx context.Context, d domain.Deposit) (*domain.Deposit, error)
	GetByIdempotencyKey(ctx context.Context, accountID uuid.UUID, key string) (*domain.Deposit, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.DepositView, error)
	LedgerBalances(ctx context.Context, after uuid.UUID, limit int) ([]domain.LedgerBalance, error)
}

type outboxRepo interface {
	Enqueue(ctx context.Context, evt domain.OutboxEvent) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

type observer interface {
	ObserveDeposit(material domain.Material, reward decimal.Decimal, replayed bool)
	ObserveReconcile(mismatches int, err error)
}

const (
	DefaultHistoryLimit   = 20
	MaxHistoryLimit       = 100
	MaxIdempotencyKeyLen  = 128
	defaultReconcileBatch = 500
)

// Service provides the deposit ledger operations.
type Service struct {
	log      *slog.Logger
	tx       txManager
	bins     binRepo
	accounts accountRepo
	deposits depositRepo
	outbox   outboxRepo
	pricing  *pricing.Table
	levels   *leveling.Policy
	metrics  observer

	reconcileBatch int
}

// NewService creates a new ledger service. metrics may be nil.
func NewService(
	logger *slog.Logger,
	tx txManager,
	bins binRepo,
	accounts accountRepo,
	deposits depositRepo,
	outbox outboxRepo,
	prices *pricing.Table,
	levels *leveling.Policy,
	metrics observer,
	reconcileBatch int,
) *Service {
	if reconcileBatch <= 0 {
		reconcileBatch = defaultReconcileBatch
	}
	return &Service{
		log:            logger.With("service", "ledger"),
		tx:             tx,
		bins:           bins,
		accounts:       accounts,
		deposits:       deposits,
		outbox:         outbox,
		pricing:        prices,
		levels:         levels,
		metrics:        metrics,
		reconcileBatch: reconcileBatch,
	}
}

// Quote prices a deposit without recording anything.
func (s *Service) Quote(material domain.Material, weightKg float64) (domain.Quote, error) {
	return s.pricing.Price(material, weightKg)
}
