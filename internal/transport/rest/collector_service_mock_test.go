package rest

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/internal/service/collector"
	"github.com/google/uuid"
	"sync"
)

var _ collectorService = &collectorServiceMock{}

type collectorServiceMock struct {
	// ApplyFunc mocks the Apply method.
	ApplyFunc func(ctx context.Context, input collector.ApplyInput) (*domain.CollectorApplication, error)

	// ApproveFunc mocks the Approve method.
	ApproveFunc func(ctx context.Context, input collector.DecideInput) (*domain.CollectorApplication, error)

	// GetFunc mocks the Get method.
	GetFunc func(ctx context.Context, id uuid.UUID) (*collector.ApplicationDetail, error)

	// GetMineFunc mocks the GetMine method.
	GetMineFunc func(ctx context.Context, accountID uuid.UUID) (*domain.CollectorApplication, error)

	// ListFunc mocks the List method.
	ListFunc func(ctx context.Context, input collector.ListInput) ([]domain.CollectorApplication, error)

	// RejectFunc mocks the Reject method.
	RejectFunc func(ctx context.Context, input collector.DecideInput) (*domain.CollectorApplication, error)

	// calls tracks calls to the methods.
	calls struct {
		Apply []struct {
			Ctx   context.Context
			Input collector.ApplyInput
		}
		Approve []struct {
			Ctx   context.Context
			Input collector.DecideInput
		}
		Get []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetMine []struct {
			Ctx       context.Context
			AccountID uuid.UUID
		}
		List []struct {
			Ctx   context.Context
			Input collector.ListInput
		}
		Reject []struct {
			Ctx   context.Context
			Input collector.DecideInput
		}
	}
	lockApply   sync.RWMutex
	lockApprove sync.RWMutex
	lockGet     sync.RWMutex
	lockGetMine sync.RWMutex
	lockList    sync.RWMutex
	lockReject  sync.RWMutex
}

func (mock *collectorServiceMock) Apply(ctx context.Context, input collector.ApplyInput) (*domain.CollectorApplication, error) {
	if mock.ApplyFunc == nil {
		panic("collectorServiceMock.ApplyFunc: method is nil but collectorService.Apply was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input collector.ApplyInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockApply.Lock()
	mock.calls.Apply = append(mock.calls.Apply, callInfo)
	mock.lockApply.Unlock()
	return mock.ApplyFunc(ctx, input)
}

func (mock *collectorServiceMock) ApplyCalls() []struct {
	Ctx   context.Context
	Input collector.ApplyInput
} {
	var calls []struct {
		Ctx   context.Context
		Input collector.ApplyInput
	}
	mock.lockApply.RLock()
	calls = mock.calls.Apply
	mock.lockApply.RUnlock()
	return calls
}

func (mock *collectorServiceMock) Approve(ctx context.Context, input collector.DecideInput) (*domain.CollectorApplication, error) {
	if mock.ApproveFunc == nil {
		panic("collectorServiceMock.ApproveFunc: method is nil but collectorService.Approve was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input collector.DecideInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockApprove.Lock()
	mock.calls.Approve = append(mock.calls.Approve, callInfo)
	mock.lockApprove.Unlock()
	return mock.ApproveFunc(ctx, input)
}

func (mock *collectorServiceMock) ApproveCalls() []struct {
	Ctx   context.Context
	Input collector.DecideInput
} {
	var calls []struct {
		Ctx   context.Context
		Input collector.DecideInput
	}
	mock.lockApprove.RLock()
	calls = mock.calls.Approve
	mock.lockApprove.RUnlock()
	return calls
}

func (mock *collectorServiceMock) Get(ctx context.Context, id uuid.UUID) (*collector.ApplicationDetail, error) {
	if mock.GetFunc == nil {
		panic("collectorServiceMock.GetFunc: method is nil but collectorService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *collectorServiceMock) GetCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *collectorServiceMock) GetMine(ctx context.Context, accountID uuid.UUID) (*domain.CollectorApplication, error) {
	if mock.GetMineFunc == nil {
		panic("collectorServiceMock.GetMineFunc: method is nil but collectorService.GetMine was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}{
		Ctx:       ctx,
		AccountID: accountID,
	}
	mock.lockGetMine.Lock()
	mock.calls.GetMine = append(mock.calls.GetMine, callInfo)
	mock.lockGetMine.Unlock()
	return mock.GetMineFunc(ctx, accountID)
}

func (mock *collectorServiceMock) GetMineCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}
	mock.lockGetMine.RLock()
	calls = mock.calls.GetMine
	mock.lockGetMine.RUnlock()
	return calls
}

func (mock *collectorServiceMock) List(ctx context.Context, input collector.ListInput) ([]domain.CollectorApplication, error) {
	if mock.ListFunc == nil {
		panic("collectorServiceMock.ListFunc: method is nil but collectorService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input collector.ListInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *collectorServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input collector.ListInput
} {
	var calls []struct {
		Ctx   context.Context
		Input collector.ListInput
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *collectorServiceMock) Reject(ctx context.Context, input collector.DecideInput) (*domain.CollectorApplication, error) {
	if mock.RejectFunc == nil {
		panic("collectorServiceMock.RejectFunc: method is nil but collectorService.Reject was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input collector.DecideInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockReject.Lock()
	mock.calls.Reject = append(mock.calls.Reject, callInfo)
	mock.lockReject.Unlock()
	return mock.RejectFunc(ctx, input)
}

func (mock *collectorServiceMock) RejectCalls() []struct {
	Ctx   context.Context
	Input collector.DecideInput
} {
	var calls []struct {
		Ctx   context.Context
		Input collector.DecideInput
	}
	mock.lockReject.RLock()
	calls = mock.calls.Reject
	mock.lockReject.RUnlock()
	return calls
}
