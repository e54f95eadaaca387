package rest

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/service/account"
	"github.com/google/uuid"
	"sync"
)

var _ accountService = &accountServiceMock{}

type accountServiceMock struct {
	// GetProfileFunc mocks the GetProfile method.
	GetProfileFunc func(ctx context.Context, accountID uuid.UUID) (*account.Profile, error)

	// calls tracks calls to the methods.
	calls struct {
		GetProfile []struct {
			Ctx       context.Context
			AccountID uuid.UUID
		}
	}
	lockGetProfile sync.RWMutex
}

func (mock *accountServiceMock) GetProfile(ctx context.Context, accountID uuid.UUID) (*account.Profile, error) {
	if mock.GetProfileFunc == nil {
		panic("accountServiceMock.GetProfileFunc: method is nil but accountService.GetProfile was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}{
		Ctx:       ctx,
		AccountID: accountID,
	}
	mock.lockGetProfile.Lock()
	mock.calls.GetProfile = append(mock.calls.GetProfile, callInfo)
	mock.lockGetProfile.Unlock()
	return mock.GetProfileFunc(ctx, accountID)
}

func (mock *accountServiceMock) GetProfileCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
} {
	var calls []struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}
	mock.lockGetProfile.RLock()
	calls = mock.calls.GetProfile
	mock.lockGetProfile.RUnlock()
	return calls
}
