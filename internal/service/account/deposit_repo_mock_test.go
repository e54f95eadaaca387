package account

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ depositRepo = &depositRepoMock{}

type depositRepoMock struct {
	// TotalsByAccountFunc mocks the TotalsByAccount method.
	TotalsByAccountFunc func(ctx context.Context, accountID uuid.UUID) (domain.AccountTotals, error)

	// calls tracks calls to the methods.
	calls struct {
		TotalsByAccount []struct {
			Ctx       context.Context
			AccountID uuid.UUID
		}
	}
	lockTotalsByAccount sync.RWMutex
}

func (mock *depositRepoMock) TotalsByAccount(ctx context.Context, accountID uuid.UUID) (domain.AccountTotals, error) {
	if mock.TotalsByAccountFunc == nil {
		panic("depositRepoMock.TotalsByAccountFunc: method is nil but depositRepo.TotalsByAccount was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}{
		Ctx:       ctx,
		AccountID: accountID,
	}
	mock.lockTotalsByAccount.Lock()
	mock.calls.TotalsByAccount = append(mock.calls.TotalsByAccount, callInfo)
	mock.lockTotalsByAccount.Unlock()
	return mock.TotalsByAccountFunc(ctx, accountID)
}

func (mock *depositRepoMock) TotalsByAccountCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}
	mock.lockTotalsByAccount.RLock()
	calls = mock.calls.TotalsByAccount
	mock.lockTotalsByAccount.RUnlock()
	return calls
}
