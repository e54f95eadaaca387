package collector

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/pkg/ctxutil"
)

// GetMine returns the caller's most recent application.
func (s *Service) GetMine(ctx context.Context, accountID uuid.UUID) (*domain.CollectorApplication, error) {
	if accountID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	var app *domain.CollectorApplication
	err := s.tx.Read(ctx, func(ctx context.Context) error {
		var err error
		app, err = s.apps.GetLatestByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("collector.GetMine: %w", err)
	}
	return app, nil
}

// List returns applications oldest first, optionally filtered by status
// (admin only).
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.CollectorApplication, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	var out []domain.CollectorApplication
	err := s.tx.Read(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.apps.List(ctx, input.Status, limit, input.Offset)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("collector.List: %w", err)
	}
	return out, nil
}

// Get returns an application with its audit trail (admin only).
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ApplicationDetail, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	var detail ApplicationDetail
	err := s.tx.Read(ctx, func(ctx context.Context) error {
		app, err := s.apps.GetByID(ctx, id)
		if err != nil {
			return err
		}
		trail, err := s.audit.GetByEntity(ctx, domain.EntityTypeCollectorApplication, id, auditTrailLimit)
		if err != nil {
			return err
		}
		detail = ApplicationDetail{Application: *app, Audit: trail}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collector.Get: %w", err)
	}
	return &detail, nil
}
