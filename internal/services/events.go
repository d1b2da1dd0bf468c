package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// ActivityChannel is the broker channel activity events are published to.
const ActivityChannel = "wordup.activity"

// Activity event types.
const (
	EventPracticeSaved   = "practice.saved"
	EventSpeechPracticed = "speech.practiced"
)

// ActivityEvent describes one user action for downstream consumers.
type ActivityEvent struct {
	Type       string    `json:"type"`
	UserID     int       `json:"userId"`
	ResourceID string    `json:"resourceId"`
	At         time.Time `json:"at"`
}

// EventPublisher sends activity events to a broker. Satisfied by *mq.MQ.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// publishActivity emits an event best-effort. Publish failures are
// logged and never surfaced to the caller.
func publishActivity(ctx context.Context, publisher EventPublisher, event ActivityEvent) {
	if publisher == nil {
		return
	}
	event.At = time.Now()
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("activity event marshal failed: %v", err)
		return
	}
	attrs := map[string]string{"type": event.Type}
	if _, err := publisher.Publish(ctx, ActivityChannel, data, attrs); err != nil {
		log.Printf("activity event publish failed: %v", err)
	}
}

// LogActivity handles one activity event from the broker, writing it to
// the process log. Consumed by the worker command.
func LogActivity(_ context.Context, data []byte) error {
	var event ActivityEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("malformed activity event: %w", err)
	}
	log.Printf("activity: type=%s user=%d resource=%s at=%s",
		event.Type, event.UserID, event.ResourceID, event.At.Format(time.RFC3339))
	return nil
}
