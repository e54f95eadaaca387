package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/pkg/ctxutil"
)

// Approve moves a pending application to approved and grants the collector
// capability on its account in the same transaction (admin only).
func (s *Service) Approve(ctx context.Context, input DecideInput) (*domain.CollectorApplication, error) {
	app, err := s.decide(ctx, input, domain.ApplicationStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("collector.Approve: %w", err)
	}
	return app, nil
}

// Reject moves a pending application to rejected (admin only).
func (s *Service) Reject(ctx context.Context, input DecideInput) (*domain.CollectorApplication, error) {
	app, err := s.decide(ctx, input, domain.ApplicationStatusRejected)
	if err != nil {
		return nil, fmt.Errorf("collector.Reject: %w", err)
	}
	return app, nil
}

func (s *Service) decide(ctx context.Context, input DecideInput, status domain.ApplicationStatus) (*domain.CollectorApplication, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	adminID, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	reason := trimOrNil(input.Reason)

	var updated *domain.CollectorApplication
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.apps.GetForUpdate(txCtx, input.ApplicationID)
		if err != nil {
			return err
		}
		if current.Status.IsTerminal() {
			return fmt.Errorf("application %s is %s: %w", current.ID, current.Status, domain.ErrInvalidTransition)
		}

		updated, err = s.apps.Decide(txCtx, current.ID, status, adminID, s.now())
		if err != nil {
			return err
		}

		if status == domain.ApplicationStatusApproved {
			if err := s.accounts.SetCollector(txCtx, updated.AccountID, true); err != nil {
				return fmt.Errorf("grant collector: %w", err)
			}
		}

		changes := map[string]any{
			"status":     map[string]any{"old": current.Status.String(), "new": updated.Status.String()},
			"account_id": updated.AccountID.String(),
		}
		if reason != nil {
			changes["reason"] = *reason
		}
		if _, err := s.audit.Create(txCtx, domain.AuditRecord{
			ID:         uuid.New(),
			ActorID:    adminID,
			EntityType: domain.EntityTypeCollectorApplication,
			EntityID:   &updated.ID,
			Action:     auditAction(status),
			Changes:    changes,
		}); err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		evt, err := decisionEvent(updated, reason)
		if err != nil {
			return err
		}
		if err := s.outbox.Enqueue(txCtx, evt); err != nil {
			return fmt.Errorf("enqueue event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "collector application decided",
		slog.String("application_id", updated.ID.String()),
		slog.String("account_id", updated.AccountID.String()),
		slog.String("status", updated.Status.String()),
		slog.String("admin_id", adminID.String()),
	)

	return updated, nil
}

func auditAction(status domain.ApplicationStatus) domain.AuditAction {
	if status == domain.ApplicationStatusApproved {
		return domain.AuditActionApprove
	}
	return domain.AuditActionReject
}

// ApplicationDecided is the payload of the collector decision topics.
type ApplicationDecided struct {
	ApplicationID uuid.UUID  `json:"application_id"`
	AccountID     uuid.UUID  `json:"account_id"`
	CollectorType string     `json:"collector_type"`
	Status        string     `json:"status"`
	Reason        *string    `json:"reason,omitempty"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
}

func decisionEvent(app *domain.CollectorApplication, reason *string) (domain.OutboxEvent, error) {
	topic := domain.TopicCollectorRejected
	if app.Status == domain.ApplicationStatusApproved {
		topic = domain.TopicCollectorApproved
	}

	payload, err := json.Marshal(ApplicationDecided{
		ApplicationID: app.ID,
		AccountID:     app.AccountID,
		CollectorType: app.CollectorType.String(),
		Status:        app.Status.String(),
		Reason:        reason,
		DecidedAt:     app.DecidedAt,
	})
	if err != nil {
		return domain.OutboxEvent{}, fmt.Errorf("marshal decision event: %w", err)
	}

	return domain.OutboxEvent{
		ID:          uuid.New(),
		Topic:       topic,
		AggregateID: app.ID,
		Payload:     payload,
	}, nil
}
