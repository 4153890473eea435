package events

import (
	"context"
	"encoding/json"
	"time"
)

// EventType identifies a student change event.
type EventType string

const (
	StudentCreated EventType = "student.created"
	StudentUpdated EventType = "student.updated"
	StudentDeleted EventType = "student.deleted"
)

// StudentEventsTopic is the pub/sub topic carrying student change events.
const StudentEventsTopic = "students.events"

// StudentEvent describes a mutation applied to a student record.
type StudentEvent struct {
	Type       EventType `json:"type"`
	StudentID  uint      `json:"student_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *StudentEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func UnmarshalStudentEvent(data []byte) (*StudentEvent, error) {
	var ev StudentEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// EventPublisher publishes student change events.
type EventPublisher interface {
	PublishStudentEvent(ctx context.Context, event *StudentEvent) error
	Close() error
}
