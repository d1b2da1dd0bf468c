package types

import "time"

// Speech is a saved draft or practice text owned by a user.
type Speech struct {
	// ID is the unique identifier of the speech.
	ID int `json:"id" db:"id"`

	// UserID identifies the owning user. Immutable after creation.
	UserID int `json:"userId" db:"user_id"`

	// Title is the user-supplied name for the speech.
	Title string `json:"title" db:"title"`

	// OriginalDraft is the text as the user first wrote it.
	OriginalDraft string `json:"originalDraft" db:"original_draft"`

	// ImprovedVersion is an optional rewritten version of the draft.
	ImprovedVersion string `json:"improvedVersion,omitempty" db:"improved_version"`

	// AISuggestions holds optional free-text feedback attached to the
	// speech. Treated as opaque; no structure is guaranteed.
	AISuggestions string `json:"aiSuggestions,omitempty" db:"ai_suggestions"`

	// PracticeCount is the number of times the speech has been
	// practiced. Never decreases.
	PracticeCount int `json:"practiceCount" db:"practice_count"`

	// LastPracticedAt is the time of the most recent practice run,
	// or nil if the speech has never been practiced.
	LastPracticedAt *time.Time `json:"lastPracticedAt,omitempty" db:"last_practiced_at"`

	// CreatedAt is the timestamp when the speech was saved.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
