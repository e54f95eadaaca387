package rest

import (
	"context"
	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/internal/service/ledger"
	"sync"
)

var _ ledgerService = &ledgerServiceMock{}

type ledgerServiceMock struct {
	// DepositFunc mocks the Deposit method.
	DepositFunc func(ctx context.Context, input ledger.DepositInput) (*domain.DepositReceipt, error)

	// HistoryFunc mocks the History method.
	HistoryFunc func(ctx context.Context, input ledger.HistoryInput) ([]domain.DepositView, error)

	// QuoteFunc mocks the Quote method.
	QuoteFunc func(material domain.Material, weightKg float64) (domain.Quote, error)

	// calls tracks calls to the methods.
	calls struct {
		Deposit []struct {
			Ctx   context.Context
			Input ledger.DepositInput
		}
		History []struct {
			Ctx   context.Context
			Input ledger.HistoryInput
		}
		Quote []struct {
			Material domain.Material
			WeightKg float64
		}
	}
	lockDeposit sync.RWMutex
	lockHistory sync.RWMutex
	lockQuote   sync.RWMutex
}

func (mock *ledgerServiceMock) Deposit(ctx context.Context, input ledger.DepositInput) (*domain.DepositReceipt, error) {
	if mock.DepositFunc == nil {
		panic("ledgerServiceMock.DepositFunc: method is nil but ledgerService.Deposit was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input ledger.DepositInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockDeposit.Lock()
	mock.calls.Deposit = append(mock.calls.Deposit, callInfo)
	mock.lockDeposit.Unlock()
	return mock.DepositFunc(ctx, input)
}

func (mock *ledgerServiceMock) DepositCalls() []struct {
	Ctx   context.Context
	Input ledger.DepositInput
} {
	var calls []struct {
		Ctx   context.Context
		Input ledger.DepositInput
	}
	mock.lockDeposit.RLock()
	calls = mock.calls.Deposit
	mock.lockDeposit.RUnlock()
	return calls
}

func (mock *ledgerServiceMock) History(ctx context.Context, input ledger.HistoryInput) ([]domain.DepositView, error) {
	if mock.HistoryFunc == nil {
		panic("ledgerServiceMock.HistoryFunc: method is nil but ledgerService.History was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input ledger.HistoryInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, input)
}

func (mock *ledgerServiceMock) HistoryCalls() []struct {
	Ctx   context.Context
	Input ledger.HistoryInput
} {
	var calls []struct {
		Ctx   context.Context
		Input ledger.HistoryInput
	}
	mock.lockHistory.RLock()
	calls = mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}

func (mock *ledgerServiceMock) Quote(material domain.Material, weightKg float64) (domain.Quote, error) {
	if mock.QuoteFunc == nil {
		panic("ledgerServiceMock.QuoteFunc: method is nil but ledgerService.Quote was just called")
	}
	callInfo := struct {
		Material domain.Material
		WeightKg float64
	}{
		Material: material,
		WeightKg: weightKg,
	}
	mock.lockQuote.Lock()
	mock.calls.Quote = append(mock.calls.Quote, callInfo)
	mock.lockQuote.Unlock()
	return mock.QuoteFunc(material, weightKg)
}

func (mock *ledgerServiceMock) QuoteCalls() []struct {
	Material domain.Material
	WeightKg float64
} {
	var calls []struct {
		Material domain.Material
		WeightKg float64
	}
	mock.lockQuote.RLock()
	calls = mock.calls.Quote
	mock.lockQuote.RUnlock()
	return calls
}
