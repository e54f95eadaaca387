package collector

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	// GetForUpdateFunc mocks the GetForUpdate method.
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// SetCollectorFunc mocks the SetCollector method.
	SetCollectorFunc func(ctx context.Context, id uuid.UUID, isCollector bool) error

	// calls tracks calls to the methods.
	calls struct {
		GetForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		SetCollector []struct {
			Ctx         context.Context
			Id          uuid.UUID
			IsCollector bool
		}
	}
	lockGetForUpdate sync.RWMutex
	lockSetCollector sync.RWMutex
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

func (mock *accountRepoMock) SetCollector(ctx context.Context, id uuid.UUID, isCollector bool) error {
	if mock.SetCollectorFunc == nil {
		panic("accountRepoMock.SetCollectorFunc: method is nil but accountRepo.SetCollector was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Id          uuid.UUID
		IsCollector bool
	}{
		Ctx:         ctx,
		Id:          id,
		IsCollector: isCollector,
	}
	mock.lockSetCollector.Lock()
	mock.calls.SetCollector = append(mock.calls.SetCollector, callInfo)
	mock.lockSetCollector.Unlock()
	return mock.SetCollectorFunc(ctx, id, isCollector)
}

func (mock *accountRepoMock) SetCollectorCalls() []struct {
	Ctx         context.Context
	Id          uuid.UUID
	IsCollector bool
} {
	var calls []struct {
		Ctx         context.Context
		Id          uuid.UUID
		IsCollector bool
	}
	mock.lockSetCollector.RLock()
	calls = mock.calls.SetCollector
	mock.lockSetCollector.RUnlock()
	return calls
}
