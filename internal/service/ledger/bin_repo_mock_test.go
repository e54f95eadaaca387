package ledger

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"sync"
)

var _ binRepo = &binRepoMock{}

type binRepoMock struct {
	// GetByCodeFunc mocks the GetByCode method.
	GetByCodeFunc func(ctx context.Context, code string) (*domain.Bin, error)

	// calls tracks calls to the methods.
	calls struct {
		GetByCode []struct {
			Ctx  context.Context
			Code string
		}
	}
	lockGetByCode sync.RWMutex
}

func (mock *binRepoMock) GetByCode(ctx context.Context, code string) (*domain.Bin, error) {
	if mock.GetByCodeFunc == nil {
		panic("binRepoMock.GetByCodeFunc: method is nil but binRepo.GetByCode was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{
		Ctx:  ctx,
		Code: code,
	}
	mock.lockGetByCode.Lock()
	mock.calls.GetByCode = append(mock.calls.GetByCode, callInfo)
	mock.lockGetByCode.Unlock()
	return mock.GetByCodeFunc(ctx, code)
}

func (mock *binRepoMock) GetByCodeCalls() []struct {
	Ctx  context.Context
	Code string
} {
	var calls []struct {
		Ctx  context.Context
		Code string
	}
	mock.lockGetByCode.RLock()
	calls = mock.calls.GetByCode
	mock.lockGetByCode.RUnlock()
	return calls
}
