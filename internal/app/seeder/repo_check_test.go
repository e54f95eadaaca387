package seeder_test

import (
	"github.com/ecobin/rewards-backend/internal/adapter/postgres/account"
	"github.com/ecobin/rewards-backend/internal/adapter/postgres/bin"
	"github.com/ecobin/rewards-backend/internal/app/seeder"
	"github.com/ecobin/rewards-backend/internal/auth"
)

// Compile-time checks: the production adapters must satisfy the seeder contracts.
var (
	_ seeder.BinRepo     = (*bin.Repo)(nil)
	_ seeder.AccountRepo = (*account.Repo)(nil)
	_ seeder.TokenIssuer = (*auth.JWTManager)(nil)
)
