// Package events publishes domain events about workspace records.
package events

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	IdeaCreated          = "idea.created"
	ContentCreated       = "content.created"
	ContentUpdated       = "content.updated"
	ContentStatusChanged = "content.status_changed"
	ContentDeleted       = "content.deleted"
	MediaUploaded        = "media.uploaded"
)

type Event struct {
	Type        string    `json:"type"`
	WorkspaceID string    `json:"workspaceId"`
	EntityID    string    `json:"entityId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Data        any       `json:"data,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Emit publishes e and logs a failure instead of returning it. Events are
// best effort and never fail the operation that raised them.
func Emit(ctx context.Context, p Publisher, log *zap.Logger, e Event) {
	if p == nil {
		return
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if err := p.Publish(ctx, e); err != nil {
		log.Warn("publish event failed",
			zap.String("type", e.Type),
			zap.String("workspace_id", e.WorkspaceID),
			zap.String("entity_id", e.EntityID),
			zap.Error(err),
		)
	}
}

// LogPublisher writes events to the log. It is used when no broker is
// configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{log: logger}
}

func (p *LogPublisher) Publish(_ context.Context, e Event) error {
	p.log.Info("event",
		zap.String("type", e.Type),
		zap.String("workspace_id", e.WorkspaceID),
		zap.String("entity_id", e.EntityID),
		zap.Time("occurred_at", e.OccurredAt),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
