package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/wordup-app/apiserver/types"
)

// SpeechRepository handles persistence for speeches.
type SpeechRepository struct {
	db *sql.DB
}

func NewSpeechRepository(db *sql.DB) *SpeechRepository {
	return &SpeechRepository{db: db}
}

const speechColumns = `id, user_id, title, original_draft, improved_version, ai_suggestions, practice_count, last_practiced_at, created_at`

func scanSpeech(row interface{ Scan(...any) error }) (types.Speech, error) {
	var speech types.Speech
	var lastPracticed sql.NullTime
	err := row.Scan(
		&speech.ID,
		&speech.UserID,
		&speech.Title,
		&speech.OriginalDraft,
		&speech.ImprovedVersion,
		&speech.AISuggestions,
		&speech.PracticeCount,
		&lastPracticed,
		&speech.CreatedAt,
	)
	if err != nil {
		return types.Speech{}, err
	}
	if lastPracticed.Valid {
		t := lastPracticed.Time
		speech.LastPracticedAt = &t
	}
	return speech, nil
}

// ListByOwner returns the owner's speeches, newest first.
func (r *SpeechRepository) ListByOwner(ctx context.Context, ownerID int) ([]types.Speech, error) {
	const query = `
		SELECT ` + speechColumns + `
		FROM speeches
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	speeches := make([]types.Speech, 0)
	for rows.Next() {
		speech, err := scanSpeech(rows)
		if err != nil {
			return nil, err
		}
		speeches = append(speeches, speech)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return speeches, nil
}

// ListAll returns every speech in the system, newest first.
func (r *SpeechRepository) ListAll(ctx context.Context) ([]types.Speech, error) {
	const query = `
		SELECT ` + speechColumns + `
		FROM speeches
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	speeches := make([]types.Speech, 0)
	for rows.Next() {
		speech, err := scanSpeech(rows)
		if err != nil {
			return nil, err
		}
		speeches = append(speeches, speech)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return speeches, nil
}

// GetByOwner fetches a speech only if it belongs to ownerID. A foreign
// id reads as ErrNotFound.
func (r *SpeechRepository) GetByOwner(ctx context.Context, ownerID, id int) (types.Speech, error) {
	const query = `
		SELECT ` + speechColumns + `
		FROM speeches
		WHERE id = $1 AND user_id = $2`
	speech, err := scanSpeech(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Speech{}, ErrNotFound
		}
		return types.Speech{}, err
	}
	return speech, nil
}

func (r *SpeechRepository) Create(ctx context.Context, speech types.Speech) (types.Speech, error) {
	speech.CreatedAt = time.Now()
	speech.PracticeCount = 0
	speech.LastPracticedAt = nil

	const query = `
		INSERT INTO speeches (user_id, title, original_draft, improved_version, ai_suggestions, practice_count, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		speech.UserID,
		speech.Title,
		speech.OriginalDraft,
		speech.ImprovedVersion,
		speech.AISuggestions,
		speech.CreatedAt,
	).Scan(&speech.ID); err != nil {
		return types.Speech{}, err
	}
	return speech, nil
}

// MarkPracticed increments the practice counter and stamps the practice
// time, owner-scoped. Returns the updated speech.
func (r *SpeechRepository) MarkPracticed(ctx context.Context, ownerID, id int) (types.Speech, error) {
	const query = `
		UPDATE speeches
		SET practice_count = practice_count + 1,
			last_practiced_at = $1
		WHERE id = $2 AND user_id = $3
		RETURNING ` + speechColumns
	speech, err := scanSpeech(r.db.QueryRowContext(ctx, query, time.Now(), id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Speech{}, ErrNotFound
		}
		return types.Speech{}, err
	}
	return speech, nil
}

// DeleteByOwner removes a speech only if it belongs to ownerID.
func (r *SpeechRepository) DeleteByOwner(ctx context.Context, ownerID, id int) error {
	const query = `DELETE FROM speeches WHERE id = $1 AND user_id = $2`
	return r.execDelete(ctx, query, id, ownerID)
}

// Delete removes a speech regardless of owner. Admin use only.
func (r *SpeechRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM speeches WHERE id = $1`
	return r.execDelete(ctx, query, id)
}

func (r *SpeechRepository) execDelete(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
