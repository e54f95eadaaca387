package bin

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"sync"
)

var _ binRepo = &binRepoMock{}

type binRepoMock struct {
	// CountByStatusFunc mocks the CountByStatus method.
	CountByStatusFunc func(ctx context.Context) (domain.BinSummary, error)

	// GetByCodeFunc mocks the GetByCode method.
	GetByCodeFunc func(ctx context.Context, code string) (*domain.Bin, error)

	// ListFunc mocks the List method.
	ListFunc func(ctx context.Context, filter domain.BinFilter) ([]domain.Bin, error)

	// calls tracks calls to the methods.
	calls struct {
		CountByStatus []struct {
			Ctx context.Context
		}
		GetByCode []struct {
			Ctx  context.Context
			Code string
		}
		List []struct {
			Ctx    context.Context
			Filter domain.BinFilter
		}
	}
	lockCountByStatus sync.RWMutex
	lockGetByCode     sync.RWMutex
	lockList          sync.RWMutex
}

func (mock *binRepoMock) CountByStatus(ctx context.Context) (domain.BinSummary, error) {
	if mock.CountByStatusFunc == nil {
		panic("binRepoMock.CountByStatusFunc: method is nil but binRepo.CountByStatus was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockCountByStatus.Lock()
	mock.calls.CountByStatus = append(mock.calls.CountByStatus, callInfo)
	mock.lockCountByStatus.Unlock()
	return mock.CountByStatusFunc(ctx)
}

func (mock *binRepoMock) CountByStatusCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockCountByStatus.RLock()
	calls = mock.calls.CountByStatus
	mock.lockCountByStatus.RUnlock()
	return calls
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

func (mock *binRepoMock) List(ctx context.Context, filter domain.BinFilter) ([]domain.Bin, error) {
	if mock.ListFunc == nil {
		panic("binRepoMock.ListFunc: method is nil but binRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.BinFilter
	}{
		Ctx:    ctx,
		Filter: filter,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *binRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.BinFilter
} {
	var calls []struct {
		Ctx    context.Context
		Filter domain.BinFilter
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
