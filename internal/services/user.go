package services

import (
	"context"

	"github.com/wordup-app/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// PracticePurger drops a user's in-memory practice sessions.
type PracticePurger interface {
	PurgeOwner(ctx context.Context, ownerID int) error
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo   UserRepository
	purger PracticePurger
}

func NewUserService(repo UserRepository, purger PracticePurger) *UserService {
	return &UserService{repo: repo, purger: purger}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, user types.User) (types.User, error) {
	return s.repo.Create(ctx, user)
}

// Delete removes the account. Speeches cascade in the database; the
// in-memory practice sessions are purged here.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.purger != nil {
		_ = s.purger.PurgeOwner(ctx, id)
	}
	return nil
}
