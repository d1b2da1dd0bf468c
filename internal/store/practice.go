package store

import (
	"context"
	"sync"
	"time"

	"github.com/wordup-app/apiserver/types"
)

// PracticeRepository keeps practice sessions in process memory. The
// collection is lost on restart. The slice is shared across request
// goroutines, so access is mutex guarded.
type PracticeRepository struct {
	mu       sync.Mutex
	sessions []types.PracticeSession
	lastID   int64
}

func NewPracticeRepository() *PracticeRepository {
	return &PracticeRepository{}
}

// Save appends a session, assigning a timestamp-derived id. Two saves
// in the same millisecond get distinct ids.
func (r *PracticeRepository) Save(_ context.Context, session types.PracticeSession) (types.PracticeSession, error) {
	now := time.Now()
	session.Date = now

	r.mu.Lock()
	defer r.mu.Unlock()

	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	session.ID = id

	r.sessions = append(r.sessions, session)
	return session, nil
}

// ListByOwner returns the owner's sessions, most recently created first.
func (r *PracticeRepository) ListByOwner(_ context.Context, ownerID int) ([]types.PracticeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := make([]types.PracticeSession, 0)
	for i := len(r.sessions) - 1; i >= 0; i-- {
		if r.sessions[i].UserID == ownerID {
			sessions = append(sessions, r.sessions[i])
		}
	}
	return sessions, nil
}

// DeleteByOwner removes a session only if it belongs to ownerID.
func (r *PracticeRepository) DeleteByOwner(_ context.Context, ownerID int, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, session := range r.sessions {
		if session.ID == id && session.UserID == ownerID {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// PurgeOwner drops every session belonging to ownerID. Used when an
// admin deletes the account.
func (r *PracticeRepository) PurgeOwner(_ context.Context, ownerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.sessions[:0]
	for _, session := range r.sessions {
		if session.UserID != ownerID {
			kept = append(kept, session)
		}
	}
	r.sessions = kept
	return nil
}
