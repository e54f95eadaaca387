package ledger

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"sync"
)

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	// ApplyCreditFunc mocks the ApplyCredit method.
	ApplyCreditFunc func(ctx context.Context, id uuid.UUID, wallet decimal.Decimal, xp int64, level string) (*domain.Account, error)

	// GetForUpdateFunc mocks the GetForUpdate method.
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// calls tracks calls to the methods.
	calls struct {
		ApplyCredit []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Wallet decimal.Decimal
			Xp     int64
			Level  string
		}
		GetForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockApplyCredit  sync.RWMutex
	lockGetForUpdate sync.RWMutex
}

func (mock *accountRepoMock) ApplyCredit(ctx context.Context, id uuid.UUID, wallet decimal.Decimal, xp int64, level string) (*domain.Account, error) {
	if mock.ApplyCreditFunc == nil {
		panic("accountRepoMock.ApplyCreditFunc: method is nil but accountRepo.ApplyCredit was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Wallet decimal.Decimal
		Xp     int64
		Level  string
	}{
		Ctx:    ctx,
		Id:     id,
		Wallet: wallet,
		Xp:     xp,
		Level:  level,
	}
	mock.lockApplyCredit.Lock()
	mock.calls.ApplyCredit = append(mock.calls.ApplyCredit, callInfo)
	mock.lockApplyCredit.Unlock()
	return mock.ApplyCreditFunc(ctx, id, wallet, xp, level)
}

func (mock *accountRepoMock) ApplyCreditCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Wallet decimal.Decimal
	Xp     int64
	Level  string
} {
	var calls []struct {
		Ctx    context.Context
		Id     uuid.UUID
		Wallet decimal.Decimal
		Xp     int64
		Level  string
	}
	mock.lockApplyCredit.RLock()
	calls = mock.calls.ApplyCredit
	mock.lockApplyCredit.RUnlock()
	return calls
}

func (mock *accountRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if mock.GetForUpdateFunc == nil {
		panic("accountRepoMock.GetForUpdateFunc: method is nil but accountRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *accountRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockGetForUpdate.RLock()
	calls = mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}
