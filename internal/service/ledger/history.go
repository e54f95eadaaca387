package ledger

import (
	"context"
	"fmt"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// History returns a page of the account's deposits, newest first.
func (s *Service) History(ctx context.Context, input HistoryInput) ([]domain.DepositView, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultHistoryLimit
	}

	var out []domain.DepositView
	err := s.tx.Read(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.deposits.ListByAccount(ctx, input.AccountID, limit, input.Offset)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.History: %w", err)
	}
	return out, nil
}
