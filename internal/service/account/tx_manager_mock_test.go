package account

import (
	"context"
	"sync"
)

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	// ReadFunc mocks the Read method.
	ReadFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	// calls tracks calls to the methods.
	calls struct {
		Read []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRead sync.RWMutex
}

func (mock *txManagerMock) Read(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.ReadFunc == nil {
		panic("txManagerMock.ReadFunc: method is nil but txManager.Read was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{
		Ctx: ctx,
		Fn:  fn,
	}
	mock.lockRead.Lock()
	mock.calls.Read = append(mock.calls.Read, callInfo)
	mock.lockRead.Unlock()
	return mock.ReadFunc(ctx, fn)
}

func (mock *txManagerMock) ReadCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	var calls []struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}
	mock.lockRead.RLock()
	calls = mock.calls.Read
	mock.lockRead.RUnlock()
	return calls
}
