// Package bin resolves bin codes and serves read-only bin listings. Bin
// status and fill level are owned by bin operations and never changed here.
package bin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ecobin/rewards-backend/internal/domain"
)

type binRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Bin, error)
	List(ctx context.Context, filter domain.BinFilter) ([]domain.Bin, error)
	CountByStatus(ctx context.Context) (domain.BinSummary, error)
}

type txManager interface {
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Service provides bin registry reads.
type Service struct {
	log  *slog.Logger
	bins binRepo
	tx   txManager
}

// NewService creates a new bin service.
func NewService(logger *slog.Logger, bins binRepo, tx txManager) *Service {
	return &Service{
		log:  logger.With("service", "bin"),
		bins: bins,
		tx:   tx,
	}
}

// Resolve returns the bin with the given code. Fails with
// domain.ErrBinNotFound.
func (s *Service) Resolve(ctx context.Context, code string) (*domain.Bin, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.NewValidationError("bin_code", "required")
	}

	var b *domain.Bin
	err := s.tx.Read(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.bins.GetByCode(ctx, code)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("bin.Resolve: %w", err)
	}
	return b, nil
}

// List returns bins ordered by location.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Bin, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := domain.BinFilter{
		Status:         input.Status,
		MunicipalityID: input.MunicipalityID,
		Limit:          input.Limit,
		Offset:         input.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}

	var out []domain.Bin
	err := s.tx.Read(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.bins.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("bin.List: %w", err)
	}
	return out, nil
}

// Summary counts bins per status.
func (s *Service) Summary(ctx context.Context) (domain.BinSummary, error) {
	var out domain.BinSummary
	err := s.tx.Read(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.bins.CountByStatus(ctx)
		return err
	})
	if err != nil {
		return domain.BinSummary{}, fmt.Errorf("bin.Summary: %w", err)
	}
	return out, nil
}
