// Package collector runs the collector onboarding workflow:
// none -> pending -> approved | rejected. Approved and rejected are final.
package collector

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
)

type accountRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	SetCollector(ctx context.Context, id uuid.UUID, isCollector bool) error
}

type applicationRepo interface {
	CreateIfNoActive(ctx context.Context, app domain.CollectorApplication) (*domain.CollectorApplication, error)
	Decide(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, decidedBy uuid.UUID, decidedAt time.Time) (*domain.CollectorApplication, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.CollectorApplication, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CollectorApplication, error)
	GetLatestByAccount(ctx context.Context, accountID uuid.UUID) (*domain.CollectorApplication, error)
	List(ctx context.Context, status *domain.ApplicationStatus, limit, offset int) ([]domain.CollectorApplication, error)
}

type auditRepo interface {
	Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error)
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

type outboxRepo interface {
	Enqueue(ctx context.Context, evt domain.OutboxEvent) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
	auditTrailLimit  = 50
)

// Service provides collector onboarding operations.
type Service struct {
	log      *slog.Logger
	accounts accountRepo
	apps     applicationRepo
	audit    auditRepo
	outbox   outboxRepo
	tx       txManager
	now      func() time.Time
}

// NewService creates a new collector service.
func NewService(
	logger *slog.Logger,
	accounts accountRepo,
	apps applicationRepo,
	audit auditRepo,
	outbox outboxRepo,
	tx txManager,
) *Service {
	return &Service{
		log:      logger.With("service", "collector"),
		accounts: accounts,
		apps:     apps,
		audit:    audit,
		outbox:   outbox,
		tx:       tx,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ApplicationDetail is an application with its audit trail, newest first.
type ApplicationDetail struct {
	Application domain.CollectorApplication
	Audit       []domain.AuditRecord
}
