package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/wordup-app/apiserver/types"
)

func TestPracticeRepository_SaveAssignsDistinctIDs(t *testing.T) {
	t.Parallel()

	repo := NewPracticeRepository()
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		session, err := repo.Save(ctx, types.PracticeSession{UserID: 1, Transcript: "x"})
		if err != nil {
			t.Fatalf("Save error: %v", err)
		}
		if session.ID == 0 {
			t.Fatal("expected a non-zero id")
		}
		if seen[session.ID] {
			t.Fatalf("duplicate session id %d", session.ID)
		}
		seen[session.ID] = true
		if session.Date.IsZero() {
			t.Fatal("expected Date to be set")
		}
	}
}

func TestPracticeRepository_ListNewestFirst(t *testing.T) {
	t.Parallel()

	repo := NewPracticeRepository()
	ctx := context.Background()

	const n = 10
	for i := 1; i <= n; i++ {
		if _, err := repo.Save(ctx, types.PracticeSession{
			UserID:     1,
			Transcript: fmt.Sprintf("t%d", i),
		}); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	sessions, err := repo.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(sessions) != n {
		t.Fatalf("len = %d, want %d", len(sessions), n)
	}
	for i := 0; i < n; i++ {
		want := fmt.Sprintf("t%d", n-i)
		if sessions[i].Transcript != want {
			t.Fatalf("sessions[%d].Transcript = %q, want %q", i, sessions[i].Transcript, want)
		}
	}
}

func TestPracticeRepository_OwnerScoping(t *testing.T) {
	t.Parallel()

	repo := NewPracticeRepository()
	ctx := context.Background()

	mine, err := repo.Save(ctx, types.PracticeSession{UserID: 1, Transcript: "mine"})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := repo.Save(ctx, types.PracticeSession{UserID: 2, Transcript: "theirs"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	sessions, err := repo.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Transcript != "mine" {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}

	// A foreign owner cannot delete the session.
	if err := repo.DeleteByOwner(ctx, 2, mine.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete: err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteByOwner(ctx, 1, mine.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := repo.DeleteByOwner(ctx, 1, mine.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestPracticeRepository_PurgeOwner(t *testing.T) {
	t.Parallel()

	repo := NewPracticeRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.Save(ctx, types.PracticeSession{UserID: 1}); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}
	if _, err := repo.Save(ctx, types.PracticeSession{UserID: 2}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if err := repo.PurgeOwner(ctx, 1); err != nil {
		t.Fatalf("PurgeOwner error: %v", err)
	}

	purged, err := repo.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(purged) != 0 {
		t.Fatalf("purged owner still has %d sessions", len(purged))
	}

	kept, err := repo.ListByOwner(ctx, 2)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("other owner lost sessions: have %d, want 1", len(kept))
	}
}
