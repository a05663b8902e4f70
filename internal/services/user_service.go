package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/repositories"
)

type UserService struct {
	users repositories.UserStore
	log   *zap.Logger
}

func NewUserService(users repositories.UserStore, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// CurrentUser resolves the authenticated subject.
func (s *UserService) CurrentUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, p models.Profile) (*models.User, error) {
	if err := validateProfile(p); err != nil {
		return nil, err
	}
	u := *actor
	p.Apply(&u)
	if err := s.users.Update(ctx, &u); err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

// DeleteAccount removes the user together with their campaigns and bookmarks.
func (s *UserService) DeleteAccount(ctx context.Context, actor *models.User) error {
	if err := s.users.Delete(ctx, actor.ID); err != nil {
		return mapNotFound(err)
	}
	s.log.Info("user deleted", zap.String("user_id", actor.ID.String()))
	return nil
}
