package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Bus is an in-process pub/sub for student change events, with an audit
// subscriber that writes every event to the structured log.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewBus creates an in-process event bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger)),
		logger: logger,
	}
}

// PublishStudentEvent publishes one event on the student topic.
func (b *Bus) PublishStudentEvent(ctx context.Context, event *StudentEvent) error {
	payload, err := event.Marshal()
	if err != nil {
		return fmt.Errorf("marshal student event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(StudentEventsTopic, msg); err != nil {
		return fmt.Errorf("publish student event: %w", err)
	}
	return nil
}

// StartAuditLogger subscribes to the student topic and logs each event until
// ctx is cancelled. It must be started before the first publish so no event
// is missed.
func (b *Bus) StartAuditLogger(ctx context.Context) error {
	messages, err := b.pubsub.Subscribe(ctx, StudentEventsTopic)
	if err != nil {
		return fmt.Errorf("subscribe audit logger: %w", err)
	}

	go func() {
		for msg := range messages {
			event, err := UnmarshalStudentEvent(msg.Payload)
			if err != nil {
				b.logger.Error("Dropping malformed student event", "error", err)
				msg.Ack()
				continue
			}

			b.logger.Info("Student record changed",
				"event", string(event.Type),
				"student_id", event.StudentID,
				"actor", event.Actor,
				"occurred_at", event.OccurredAt,
			)
			msg.Ack()
		}
	}()

	return nil
}

// Close shuts down the pub/sub and its subscribers.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
