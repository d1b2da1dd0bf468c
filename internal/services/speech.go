package services

import (
	"context"
	"strconv"

	"github.com/wordup-app/apiserver/types"
)

// SpeechRepository defines persistence operations for speeches.
type SpeechRepository interface {
	ListByOwner(ctx context.Context, ownerID int) ([]types.Speech, error)
	ListAll(ctx context.Context) ([]types.Speech, error)
	GetByOwner(ctx context.Context, ownerID, id int) (types.Speech, error)
	Create(ctx context.Context, speech types.Speech) (types.Speech, error)
	MarkPracticed(ctx context.Context, ownerID, id int) (types.Speech, error)
	DeleteByOwner(ctx context.Context, ownerID, id int) error
	Delete(ctx context.Context, id int) error
}

// SpeechService encapsulates speech use-cases.
type SpeechService struct {
	repo   SpeechRepository
	events EventPublisher
}

func NewSpeechService(repo SpeechRepository, events EventPublisher) *SpeechService {
	return &SpeechService{repo: repo, events: events}
}

func (s *SpeechService) ListByOwner(ctx context.Context, ownerID int) ([]types.Speech, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *SpeechService) ListAll(ctx context.Context) ([]types.Speech, error) {
	return s.repo.ListAll(ctx)
}

func (s *SpeechService) GetByOwner(ctx context.Context, ownerID, id int) (types.Speech, error) {
	return s.repo.GetByOwner(ctx, ownerID, id)
}

func (s *SpeechService) Create(ctx context.Context, speech types.Speech) (types.Speech, error) {
	return s.repo.Create(ctx, speech)
}

// MarkPracticed bumps the practice counter server-side and emits an
// activity event.
func (s *SpeechService) MarkPracticed(ctx context.Context, ownerID, id int) (types.Speech, error) {
	speech, err := s.repo.MarkPracticed(ctx, ownerID, id)
	if err != nil {
		return types.Speech{}, err
	}
	publishActivity(ctx, s.events, ActivityEvent{
		Type:       EventSpeechPracticed,
		UserID:     ownerID,
		ResourceID: strconv.Itoa(speech.ID),
	})
	return speech, nil
}

func (s *SpeechService) DeleteByOwner(ctx context.Context, ownerID, id int) error {
	return s.repo.DeleteByOwner(ctx, ownerID, id)
}

func (s *SpeechService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
