package ledger

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ depositRepo = &depositRepoMock{}

type depositRepoMock struct {
	// CreateFunc mocks the Create method.
	CreateFunc func(ctx context.Context, d domain.Deposit) (*domain.Deposit, error)

	// GetByIdempotencyKeyFunc mocks the GetByIdempotencyKey method.
	GetByIdempotencyKeyFunc func(ctx context.Context, accountID uuid.UUID, key string) (*domain.Deposit, error)

	// LedgerBalancesFunc mocks the LedgerBalances method.
	LedgerBalancesFunc func(ctx context.Context, after uuid.UUID, limit int) ([]domain.LedgerBalance, error)

	// ListByAccountFunc mocks the ListByAccount method.
	ListByAccountFunc func(ctx context.Context, accountID uuid.UUID, limit int, offset int) ([]domain.DepositView, error)

	// calls tracks calls to the methods.
	calls struct {
		Create []struct {
			Ctx context.Context
			D   domain.Deposit
		}
		GetByIdempotencyKey []struct {
			Ctx       context.Context
			AccountID uuid.UUID
			Key       string
		}
		LedgerBalances []struct {
			Ctx   context.Context
			After uuid.UUID
			Limit int
		}
		ListByAccount []struct {
			Ctx       context.Context
			AccountID uuid.UUID
			Limit     int
			Offset    int
		}
	}
	lockCreate              sync.RWMutex
	lockGetByIdempotencyKey sync.RWMutex
	lockLedgerBalances      sync.RWMutex
	lockListByAccount       sync.RWMutex
}

func (mock *depositRepoMock) Create(ctx context.Context, d domain.Deposit) (*domain.Deposit, error) {
	if mock.CreateFunc == nil {
		panic("depositRepoMock.CreateFunc: method is nil but depositRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   domain.Deposit
	}{
		Ctx: ctx,
		D:   d,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, d)
}

func (mock *depositRepoMock) CreateCalls() []struct {
	Ctx context.Context
	D   domain.Deposit
} {
	var calls []struct {
		Ctx context.Context
		D   domain.Deposit
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *depositRepoMock) GetByIdempotencyKey(ctx context.Context, accountID uuid.UUID, key string) (*domain.Deposit, error) {
	if mock.GetByIdempotencyKeyFunc == nil {
		panic("depositRepoMock.GetByIdempotencyKeyFunc: method is nil but depositRepo.GetByIdempotencyKey was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
		Key       string
	}{
		Ctx:       ctx,
		AccountID: accountID,
		Key:       key,
	}
	mock.lockGetByIdempotencyKey.Lock()
	mock.calls.GetByIdempotencyKey = append(mock.calls.GetByIdempotencyKey, callInfo)
	mock.lockGetByIdempotencyKey.Unlock()
	return mock.GetByIdempotencyKeyFunc(ctx, accountID, key)
}

func (mock *depositRepoMock) GetByIdempotencyKeyCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
	Key       string
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
		Key       string
	}
	mock.lockGetByIdempotencyKey.RLock()
	calls = mock.calls.GetByIdempotencyKey
	mock.lockGetByIdempotencyKey.RUnlock()
	return calls
}

func (mock *depositRepoMock) LedgerBalances(ctx context.Context, after uuid.UUID, limit int) ([]domain.LedgerBalance, error) {
	if mock.LedgerBalancesFunc == nil {
		panic("depositRepoMock.LedgerBalancesFunc: method is nil but depositRepo.LedgerBalances was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		After uuid.UUID
		Limit int
	}{
		Ctx:   ctx,
		After: after,
		Limit: limit,
	}
	mock.lockLedgerBalances.Lock()
	mock.calls.LedgerBalances = append(mock.calls.LedgerBalances, callInfo)
	mock.lockLedgerBalances.Unlock()
	return mock.LedgerBalancesFunc(ctx, after, limit)
}

func (mock *depositRepoMock) LedgerBalancesCalls() []struct {
	Ctx   context.Context
	After uuid.UUID
	Limit int
} {
	var calls []struct {
		Ctx   context.Context
		After uuid.UUID
		Limit int
	}
	mock.lockLedgerBalances.RLock()
	calls = mock.calls.LedgerBalances
	mock.lockLedgerBalances.RUnlock()
	return calls
}

func (mock *depositRepoMock) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int, offset int) ([]domain.DepositView, error) {
	if mock.ListByAccountFunc == nil {
		panic("depositRepoMock.ListByAccountFunc: method is nil but depositRepo.ListByAccount was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
		Limit     int
		Offset    int
	}{
		Ctx:       ctx,
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	}
	mock.lockListByAccount.Lock()
	mock.calls.ListByAccount = append(mock.calls.ListByAccount, callInfo)
	mock.lockListByAccount.Unlock()
	return mock.ListByAccountFunc(ctx, accountID, limit, offset)
}

func (mock *depositRepoMock) ListByAccountCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
	Limit     int
	Offset    int
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
		Limit     int
		Offset    int
	}
	mock.lockListByAccount.RLock()
	calls = mock.calls.ListByAccount
	mock.lockListByAccount.RUnlock()
	return calls
}
