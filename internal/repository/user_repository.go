package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"alerting-platform/internal/domain"
)

// UserRepository reads the identity directory. Users and teams are
// owned by an external collaborator; this service never writes them.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByTeamIDs(ctx context.Context, teamIDs []uuid.UUID) ([]domain.User, error)
	GetFirstByRole(ctx context.Context, role domain.UserRole) (*domain.User, error)
	GetAny(ctx context.Context) (*domain.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []domain.User
	query := `SELECT * FROM users WHERE user_id = ANY($1)`
	err := r.db.SelectContext(ctx, &users, query, pq.Array(ids))
	return users, err
}

func (r *userRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT * FROM users ORDER BY name`
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}

func (r *userRepository) GetByTeamIDs(ctx context.Context, teamIDs []uuid.UUID) ([]domain.User, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}

	var users []domain.User
	query := `SELECT * FROM users WHERE team_id = ANY($1)`
	err := r.db.SelectContext(ctx, &users, query, pq.Array(teamIDs))
	return users, err
}

func (r *userRepository) GetFirstByRole(ctx context.Context, role domain.UserRole) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE role = $1 ORDER BY created_at LIMIT 1`

	err := r.db.GetContext(ctx, &user, query, role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAny(ctx context.Context) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users ORDER BY created_at LIMIT 1`

	err := r.db.GetContext(ctx, &user, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
