package rest

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"sync"
)

var _ leaderboardService = &leaderboardServiceMock{}

type leaderboardServiceMock struct {
	// TopFunc mocks the Top method.
	TopFunc func(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)

	// calls tracks calls to the methods.
	calls struct {
		Top []struct {
			Ctx context.Context
			N   int
		}
	}
	lockTop sync.RWMutex
}

func (mock *leaderboardServiceMock) Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	if mock.TopFunc == nil {
		panic("leaderboardServiceMock.TopFunc: method is nil but leaderboardService.Top was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   int
	}{
		Ctx: ctx,
		N:   n,
	}
	mock.lockTop.Lock()
	mock.calls.Top = append(mock.calls.Top, callInfo)
	mock.lockTop.Unlock()
	return mock.TopFunc(ctx, n)
}

func (mock *leaderboardServiceMock) TopCalls() []struct {
	Ctx context.Context
	N   int
} {
	var calls []struct {
		Ctx context.Context
		N   int
	}
	mock.lockTop.RLock()
	calls = mock.calls.Top
	mock.lockTop.RUnlock()
	return calls
}
