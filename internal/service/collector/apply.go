package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// Apply submits a collector application for the caller. Fails with
// domain.ErrDuplicateApplication when the account already has a pending or
// approved application. A rejected application does not block a new one.
func (s *Service) Apply(ctx context.Context, input ApplyInput) (*domain.CollectorApplication, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var app *domain.CollectorApplication
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Serializes submissions per account; the partial unique index backs it.
		if _, err := s.accounts.GetForUpdate(txCtx, input.AccountID); err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				s.log.ErrorContext(ctx, "authenticated account has no ledger account",
					slog.String("account_id", input.AccountID.String()),
				)
				return fmt.Errorf("account %s: %w", input.AccountID, domain.ErrInvariant)
			}
			return fmt.Errorf("lock account: %w", err)
		}

		var err error
		app, err = s.apps.CreateIfNoActive(txCtx, domain.CollectorApplication{
			ID:            uuid.New(),
			AccountID:     input.AccountID,
			IDDocument:    strings.TrimSpace(input.IDDocument),
			Address:       strings.TrimSpace(input.Address),
			Schedule:      trimOrNil(input.Schedule),
			CollectorType: input.CollectorType,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("collector.Apply: %w", err)
	}

	s.log.InfoContext(ctx, "collector application submitted",
		slog.String("account_id", app.AccountID.String()),
		slog.String("application_id", app.ID.String()),
		slog.String("collector_type", app.CollectorType.String()),
	)

	return app, nil
}
