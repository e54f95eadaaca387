package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one row of the append-only audit log.
type AuditRecord struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
