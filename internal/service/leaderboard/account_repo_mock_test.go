package leaderboard

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"sync"
)

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	// TopByXPFunc mocks the TopByXP method.
	TopByXPFunc func(ctx context.Context, after *domain.RankCursor, limit int) ([]domain.Account, error)

	// calls tracks calls to the methods.
	calls struct {
		TopByXP []struct {
			Ctx   context.Context
			After *domain.RankCursor
			Limit int
		}
	}
	lockTopByXP sync.RWMutex
}

func (mock *accountRepoMock) TopByXP(ctx context.Context, after *domain.RankCursor, limit int) ([]domain.Account, error) {
	if mock.TopByXPFunc == nil {
		panic("accountRepoMock.TopByXPFunc: method is nil but accountRepo.TopByXP was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		After *domain.RankCursor
		Limit int
	}{
		Ctx:   ctx,
		After: after,
		Limit: limit,
	}
	mock.lockTopByXP.Lock()
	mock.calls.TopByXP = append(mock.calls.TopByXP, callInfo)
	mock.lockTopByXP.Unlock()
	return mock.TopByXPFunc(ctx, after, limit)
}

func (mock *accountRepoMock) TopByXPCalls() []struct {
	Ctx   context.Context
	After *domain.RankCursor
	Limit int
} {
	var calls []struct {
		Ctx   context.Context
		After *domain.RankCursor
		Limit int
	}
	mock.lockTopByXP.RLock()
	calls = mock.calls.TopByXP
	mock.lockTopByXP.RUnlock()
	return calls
}
