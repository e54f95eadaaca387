package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Outbox topics. They double as RabbitMQ routing keys.
const (
	TopicDepositRecorded   = "deposit.recorded"
	TopicCollectorApproved = "collector.approved"
	TopicCollectorRejected = "collector.rejected"
)

// OutboxEvent is an event written in the same transaction as the state change
// it describes and relayed to the broker afterwards.
type OutboxEvent struct {
	ID          uuid.UUID
	Topic       string
	AggregateID uuid.UUID
	Payload     json.RawMessage
	Attempts    int
	LastError   *string
	CreatedAt   time.Time
	PublishedAt *time.Time
}
