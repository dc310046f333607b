package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dkorchagin/recipe-api/internal/logger"
)

// Audit event types published to Kafka.
const (
	EventUserRegistered = "user.registered"
	EventRecipeCreated  = "recipe.created"
	EventRecipeUpdated  = "recipe.updated"
	EventRecipeDeleted  = "recipe.deleted"
	EventTagCreated     = "tag.created"
	EventTagUpdated     = "tag.updated"
	EventTagDeleted     = "tag.deleted"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// auditEvent is the JSON envelope written to the audit topic.
type auditEvent struct {
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// AuditPublisher publishes domain mutation events to Kafka. Publishing is
// best-effort: failures are logged and never fail the request.
type AuditPublisher struct {
	writer KafkaWriter
}

// NewAuditPublisher creates a publisher. A nil writer disables publishing.
func NewAuditPublisher(writer KafkaWriter) *AuditPublisher {
	return &AuditPublisher{writer: writer}
}

// Publish writes one event keyed by the entity identifier.
func (p *AuditPublisher) Publish(ctx context.Context, event, key string, payload any) {
	if p == nil || p.writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "event", event)
		return
	}

	data, err := json.Marshal(auditEvent{
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		logger.Log.Errorw("Failed to marshal audit event", "event", event, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish audit event", "event", event, "error", err)
		return
	}

	logger.Log.Debugw("Audit event published", "event", event, "key", key)
}
