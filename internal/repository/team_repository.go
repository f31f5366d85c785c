package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"alerting-platform/internal/domain"
)

type TeamRepository interface {
	GetAll(ctx context.Context) ([]domain.Team, error)
}

type teamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) GetAll(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	query := `SELECT team_id, name FROM teams ORDER BY name`
	err := r.db.SelectContext(ctx, &teams, query)
	return teams, err
}
