package domain

import (
	"time"

	"github.com/google/uuid"
)

// CollectorApplication gates the collector capability on an account.
type CollectorApplication struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	IDDocument    string
	Address       string
	Schedule      *string
	CollectorType CollectorType
	Status        ApplicationStatus
	CreatedAt     time.Time
	ApprovedAt    *time.Time
	DecidedAt     *time.Time
	DecidedBy     *uuid.UUID
}
