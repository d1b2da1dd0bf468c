package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestRecordingKey(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	want := "recordings/7/" + id
	if got := recordingKey(7, id); got != want {
		t.Fatalf("recordingKey = %q, want %q", got, want)
	}
}

func TestValidateRecordingID(t *testing.T) {
	t.Parallel()

	if err := validateRecordingID(uuid.NewString()); err != nil {
		t.Fatalf("valid uuid rejected: %v", err)
	}

	for _, id := range []string{"", "not-a-uuid", "../../etc/passwd", "recordings/1/x"} {
		if err := validateRecordingID(id); err == nil {
			t.Fatalf("expected %q to be rejected", id)
		}
	}
}
