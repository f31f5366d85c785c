package directory

import (
	"context"

	"github.com/google/uuid"

	"alerting-platform/internal/domain"
	"alerting-platform/internal/repository"
)

// Service is the read-only view of the identity directory exposed to
// the admin UI for building targeting rules.
type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListTeams(ctx context.Context) ([]domain.Team, error)
}

type service struct {
	userRepo repository.UserRepository
	teamRepo repository.TeamRepository
}

func NewService(userRepo repository.UserRepository, teamRepo repository.TeamRepository) Service {
	return &service{
		userRepo: userRepo,
		teamRepo: teamRepo,
	}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *service) ListTeams(ctx context.Context) ([]domain.Team, error) {
	return s.teamRepo.GetAll(ctx)
}
