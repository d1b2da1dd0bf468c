package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type capturePublisher struct {
	channel string
	data    []byte
	attrs   map[string]string
	err     error
}

func (p *capturePublisher) Publish(_ context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	p.channel = channel
	p.data = data
	p.attrs = attrs
	return "msg-1", p.err
}

func TestPublishActivity(t *testing.T) {
	t.Parallel()

	publisher := &capturePublisher{}
	publishActivity(context.Background(), publisher, ActivityEvent{
		Type:       EventPracticeSaved,
		UserID:     7,
		ResourceID: "42",
	})

	if publisher.channel != ActivityChannel {
		t.Fatalf("channel = %q, want %q", publisher.channel, ActivityChannel)
	}
	if publisher.attrs["type"] != EventPracticeSaved {
		t.Fatalf("attrs[type] = %q, want %q", publisher.attrs["type"], EventPracticeSaved)
	}

	var event ActivityEvent
	if err := json.Unmarshal(publisher.data, &event); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if event.UserID != 7 || event.ResourceID != "42" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.At.IsZero() {
		t.Fatal("expected At to be stamped")
	}
}

func TestPublishActivity_NilPublisher(t *testing.T) {
	t.Parallel()

	// Must be a no-op, not a panic.
	publishActivity(context.Background(), nil, ActivityEvent{Type: EventSpeechPracticed})
}

func TestPublishActivity_PublishErrorSwallowed(t *testing.T) {
	t.Parallel()

	publisher := &capturePublisher{err: errors.New("broker down")}
	publishActivity(context.Background(), publisher, ActivityEvent{Type: EventSpeechPracticed, UserID: 1})
}

func TestLogActivity(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ActivityEvent{Type: EventPracticeSaved, UserID: 3, ResourceID: "9"})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	if err := LogActivity(context.Background(), data); err != nil {
		t.Fatalf("LogActivity error: %v", err)
	}
}

func TestLogActivity_MalformedPayload(t *testing.T) {
	t.Parallel()

	if err := LogActivity(context.Background(), []byte("{not json")); err == nil {
		t.Fatal("expected an error for a malformed payload")
	}
}
