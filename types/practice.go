package types

import "time"

// PracticeSession records one transcript and the feedback generated for
// it. Sessions live in process memory only and are lost on restart.
type PracticeSession struct {
	// ID is derived from the creation timestamp (Unix milliseconds).
	ID int64 `json:"id"`

	// UserID identifies the owning user.
	UserID int `json:"userId"`

	// Transcript is the recognized speech text.
	Transcript string `json:"transcript"`

	// Feedback is the free-text feedback shown for this session.
	Feedback string `json:"feedback"`

	// WordCount and SentenceCount are the basic statistics computed
	// for the transcript.
	WordCount     int `json:"wordCount"`
	SentenceCount int `json:"sentenceCount"`

	// Date is the creation time of the session.
	Date time.Time `json:"date"`
}
