// Package seeder loads development fixtures (bins and accounts) into the
// store and issues access tokens for the seeded accounts.
package seeder

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// BinRepo is implemented by bin.Repo.
type BinRepo interface {
	Upsert(ctx context.Context, b domain.Bin) (*domain.Bin, error)
}

// AccountRepo is implemented by account.Repo.
type AccountRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	Create(ctx context.Context, acc domain.Account) (*domain.Account, error)
}

// TokenIssuer is implemented by auth.JWTManager.
type TokenIssuer interface {
	GenerateAccessToken(accountID uuid.UUID, role string) (string, error)
}
