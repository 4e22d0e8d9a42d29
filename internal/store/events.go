package store

import (
	"context"
	"time"

	rediscommon "iot-dashboard/common/redis"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Audit event types
const (
	EventSessionStarted = "session.started"
	EventSessionEnded   = "session.ended"
	EventUserDeleted    = "user.deleted"
)

// Event audit record
type Event struct {
	Type      string            `json:"type"`
	ActorID   string            `json:"actorId,omitempty"`
	Role      string            `json:"role,omitempty"`
	SubjectID string            `json:"subjectId,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
	At        time.Time         `json:"at"`
}

// Publisher sends audit events. Failures are logged by the caller, never fatal.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// StreamPublisher appends events to a Redis stream
type StreamPublisher struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

func NewStreamPublisher(client *redis.Client, stream string, logger *zap.Logger) *StreamPublisher {
	return &StreamPublisher{client: client, stream: stream, logger: logger}
}

func (p *StreamPublisher) Publish(ctx context.Context, ev Event) error {
	id, err := rediscommon.PublishToStream(ctx, p.client, p.stream, map[string]interface{}{
		"type":    ev.Type,
		"actor":   ev.ActorID,
		"role":    ev.Role,
		"subject": ev.SubjectID,
		"attrs":   ev.Attrs,
		"at":      ev.At.Unix(),
	})
	if err != nil {
		return err
	}
	p.logger.Debug("Published event",
		zap.String("stream", p.stream),
		zap.String("type", ev.Type),
		zap.String("id", id),
	)
	return nil
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
