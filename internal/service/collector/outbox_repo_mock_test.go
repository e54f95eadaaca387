package collector

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"sync"
)

var _ outboxRepo = &outboxRepoMock{}

type outboxRepoMock struct {
	// EnqueueFunc mocks the Enqueue method.
	EnqueueFunc func(ctx context.Context, evt domain.OutboxEvent) error

	// calls tracks calls to the methods.
	calls struct {
		Enqueue []struct {
			Ctx context.Context
			Evt domain.OutboxEvent
		}
	}
	lockEnqueue sync.RWMutex
}

func (mock *outboxRepoMock) Enqueue(ctx context.Context, evt domain.OutboxEvent) error {
	if mock.EnqueueFunc == nil {
		panic("outboxRepoMock.EnqueueFunc: method is nil but outboxRepo.Enqueue was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Evt domain.OutboxEvent
	}{
		Ctx: ctx,
		Evt: evt,
	}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, callInfo)
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, evt)
}

func (mock *outboxRepoMock) EnqueueCalls() []struct {
	Ctx context.Context
	Evt domain.OutboxEvent
} {
	var calls []struct {
		Ctx context.Context
		Evt domain.OutboxEvent
	}
	mock.lockEnqueue.RLock()
	calls = mock.calls.Enqueue
	mock.lockEnqueue.RUnlock()
	return calls
}
