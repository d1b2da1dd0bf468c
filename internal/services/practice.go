package services

import (
	"context"
	"strconv"

	"github.com/wordup-app/apiserver/types"
)

// PracticeRepository defines persistence operations for practice
// sessions.
type PracticeRepository interface {
	Save(ctx context.Context, session types.PracticeSession) (types.PracticeSession, error)
	ListByOwner(ctx context.Context, ownerID int) ([]types.PracticeSession, error)
	DeleteByOwner(ctx context.Context, ownerID int, id int64) error
}

// PracticeService encapsulates practice-session use-cases.
type PracticeService struct {
	repo   PracticeRepository
	events EventPublisher
}

func NewPracticeService(repo PracticeRepository, events EventPublisher) *PracticeService {
	return &PracticeService{repo: repo, events: events}
}

func (s *PracticeService) Save(ctx context.Context, session types.PracticeSession) (types.PracticeSession, error) {
	saved, err := s.repo.Save(ctx, session)
	if err != nil {
		return types.PracticeSession{}, err
	}
	publishActivity(ctx, s.events, ActivityEvent{
		Type:       EventPracticeSaved,
		UserID:     saved.UserID,
		ResourceID: strconv.FormatInt(saved.ID, 10),
	})
	return saved, nil
}

func (s *PracticeService) ListByOwner(ctx context.Context, ownerID int) ([]types.PracticeSession, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *PracticeService) DeleteByOwner(ctx context.Context, ownerID int, id int64) error {
	return s.repo.DeleteByOwner(ctx, ownerID, id)
}
