package rest

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/internal/service/bin"
	"sync"
)

var _ binService = &binServiceMock{}

type binServiceMock struct {
	// ListFunc mocks the List method.
	ListFunc func(ctx context.Context, input bin.ListInput) ([]domain.Bin, error)

	// ResolveFunc mocks the Resolve method.
	ResolveFunc func(ctx context.Context, code string) (*domain.Bin, error)

	// SummaryFunc mocks the Summary method.
	SummaryFunc func(ctx context.Context) (domain.BinSummary, error)

	// calls tracks calls to the methods.
	calls struct {
		List []struct {
			Ctx   context.Context
			Input bin.ListInput
		}
		Resolve []struct {
			Ctx  context.Context
			Code string
		}
		Summary []struct {
			Ctx context.Context
		}
	}
	lockList    sync.RWMutex
	lockResolve sync.RWMutex
	lockSummary sync.RWMutex
}

func (mock *binServiceMock) List(ctx context.Context, input bin.ListInput) ([]domain.Bin, error) {
	if mock.ListFunc == nil {
		panic("binServiceMock.ListFunc: method is nil but binService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input bin.ListInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *binServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input bin.ListInput
} {
	var calls []struct {
		Ctx   context.Context
		Input bin.ListInput
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *binServiceMock) Resolve(ctx context.Context, code string) (*domain.Bin, error) {
	if mock.ResolveFunc == nil {
		panic("binServiceMock.ResolveFunc: method is nil but binService.Resolve was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{
		Ctx:  ctx,
		Code: code,
	}
	mock.lockResolve.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, callInfo)
	mock.lockResolve.Unlock()
	return mock.ResolveFunc(ctx, code)
}

func (mock *binServiceMock) ResolveCalls() []struct {
	Ctx  context.Context
	Code string
} {
	var calls []struct {
		Ctx  context.Context
		Code string
	}
	mock.lockResolve.RLock()
	calls = mock.calls.Resolve
	mock.lockResolve.RUnlock()
	return calls
}

func (mock *binServiceMock) Summary(ctx context.Context) (domain.BinSummary, error) {
	if mock.SummaryFunc == nil {
		panic("binServiceMock.SummaryFunc: method is nil but binService.Summary was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockSummary.Lock()
	mock.calls.Summary = append(mock.calls.Summary, callInfo)
	mock.lockSummary.Unlock()
	return mock.SummaryFunc(ctx)
}

func (mock *binServiceMock) SummaryCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockSummary.RLock()
	calls = mock.calls.Summary
	mock.lockSummary.RUnlock()
	return calls
}
