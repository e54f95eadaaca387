package collector

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/google/uuid"
	"sync"
	"time"
)

var _ applicationRepo = &applicationRepoMock{}

type applicationRepoMock struct {
	// CreateIfNoActiveFunc mocks the CreateIfNoActive method.
	CreateIfNoActiveFunc func(ctx context.Context, app domain.CollectorApplication) (*domain.CollectorApplication, error)

	// DecideFunc mocks the Decide method.
	DecideFunc func(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, decidedBy uuid.UUID, decidedAt time.Time) (*domain.CollectorApplication, error)

	// GetByIDFunc mocks the GetByID method.
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.CollectorApplication, error)

	// GetForUpdateFunc mocks the GetForUpdate method.
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.CollectorApplication, error)

	// GetLatestByAccountFunc mocks the GetLatestByAccount method.
	GetLatestByAccountFunc func(ctx context.Context, accountID uuid.UUID) (*domain.CollectorApplication, error)

	// ListFunc mocks the List method.
	ListFunc func(ctx context.Context, status *domain.ApplicationStatus, limit int, offset int) ([]domain.CollectorApplication, error)

	// calls tracks calls to the methods.
	calls struct {
		CreateIfNoActive []struct {
			Ctx context.Context
			App domain.CollectorApplication
		}
		Decide []struct {
			Ctx       context.Context
			Id        uuid.UUID
			Status    domain.ApplicationStatus
			DecidedBy uuid.UUID
			DecidedAt time.Time
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetLatestByAccount []struct {
			Ctx       context.Context
			AccountID uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Status *domain.ApplicationStatus
			Limit  int
			Offset int
		}
	}
	lockCreateIfNoActive   sync.RWMutex
	lockDecide             sync.RWMutex
	lockGetByID            sync.RWMutex
	lockGetForUpdate       sync.RWMutex
	lockGetLatestByAccount sync.RWMutex
	lockList               sync.RWMutex
}

func (mock *applicationRepoMock) CreateIfNoActive(ctx context.Context, app domain.CollectorApplication) (*domain.CollectorApplication, error) {
	if mock.CreateIfNoActiveFunc == nil {
		panic("applicationRepoMock.CreateIfNoActiveFunc: method is nil but applicationRepo.CreateIfNoActive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		App domain.CollectorApplication
	}{
		Ctx: ctx,
		App: app,
	}
	mock.lockCreateIfNoActive.Lock()
	mock.calls.CreateIfNoActive = append(mock.calls.CreateIfNoActive, callInfo)
	mock.lockCreateIfNoActive.Unlock()
	return mock.CreateIfNoActiveFunc(ctx, app)
}

func (mock *applicationRepoMock) CreateIfNoActiveCalls() []struct {
	Ctx context.Context
	App domain.CollectorApplication
} {
	var calls []struct {
		Ctx context.Context
		App domain.CollectorApplication
	}
	mock.lockCreateIfNoActive.RLock()
	calls = mock.calls.CreateIfNoActive
	mock.lockCreateIfNoActive.RUnlock()
	return calls
}

func (mock *applicationRepoMock) Decide(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, decidedBy uuid.UUID, decidedAt time.Time) (*domain.CollectorApplication, error) {
	if mock.DecideFunc == nil {
		panic("applicationRepoMock.DecideFunc: method is nil but applicationRepo.Decide was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Id        uuid.UUID
		Status    domain.ApplicationStatus
		DecidedBy uuid.UUID
		DecidedAt time.Time
	}{
		Ctx:       ctx,
		Id:        id,
		Status:    status,
		DecidedBy: decidedBy,
		DecidedAt: decidedAt,
	}
	mock.lockDecide.Lock()
	mock.calls.Decide = append(mock.calls.Decide, callInfo)
	mock.lockDecide.Unlock()
	return mock.DecideFunc(ctx, id, status, decidedBy, decidedAt)
}

func (mock *applicationRepoMock) DecideCalls() []struct {
	Ctx       context.Context
	Id        uuid.UUID
	Status    domain.ApplicationStatus
	DecidedBy uuid.UUID
	DecidedAt time.Time
} {
	var calls []struct {
		Ctx       context.Context
		Id        uuid.UUID
		Status    domain.ApplicationStatus
		DecidedBy uuid.UUID
		DecidedAt time.Time
	}
	mock.lockDecide.RLock()
	calls = mock.calls.Decide
	mock.lockDecide.RUnlock()
	return calls
}

func (mock *applicationRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.CollectorApplication, error) {
	if mock.GetByIDFunc == nil {
		panic("applicationRepoMock.GetByIDFunc: method is nil but applicationRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *applicationRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *applicationRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.CollectorApplication, error) {
	if mock.GetForUpdateFunc == nil {
		panic("applicationRepoMock.GetForUpdateFunc: method is nil but applicationRepo.GetForUpdate was just called")
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

func (mock *applicationRepoMock) GetForUpdateCalls() []struct {
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

func (mock *applicationRepoMock) GetLatestByAccount(ctx context.Context, accountID uuid.UUID) (*domain.CollectorApplication, error) {
	if mock.GetLatestByAccountFunc == nil {
		panic("applicationRepoMock.GetLatestByAccountFunc: method is nil but applicationRepo.GetLatestByAccount was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}{
		Ctx:       ctx,
		AccountID: accountID,
	}
	mock.lockGetLatestByAccount.Lock()
	mock.calls.GetLatestByAccount = append(mock.calls.GetLatestByAccount, callInfo)
	mock.lockGetLatestByAccount.Unlock()
	return mock.GetLatestByAccountFunc(ctx, accountID)
}

func (mock *applicationRepoMock) GetLatestByAccountCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}
	mock.lockGetLatestByAccount.RLock()
	calls = mock.calls.GetLatestByAccount
	mock.lockGetLatestByAccount.RUnlock()
	return calls
}

func (mock *applicationRepoMock) List(ctx context.Context, status *domain.ApplicationStatus, limit int, offset int) ([]domain.CollectorApplication, error) {
	if mock.ListFunc == nil {
		panic("applicationRepoMock.ListFunc: method is nil but applicationRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Status *domain.ApplicationStatus
		Limit  int
		Offset int
	}{
		Ctx:    ctx,
		Status: status,
		Limit:  limit,
		Offset: offset,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, status, limit, offset)
}

func (mock *applicationRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Status *domain.ApplicationStatus
	Limit  int
	Offset int
} {
	var calls []struct {
		Ctx    context.Context
		Status *domain.ApplicationStatus
		Limit  int
		Offset int
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
