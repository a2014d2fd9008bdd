package repository

import (
	"context"
	"errors"

	"talent-rank/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type Job struct {
	ID     uuid.UUID
	Title  string
	Skills []string
	Level  string
	Type   string
}

type JobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Job, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(skills, '{}'), COALESCE(level, ''), COALESCE(type, '')
		 FROM jobs
		 WHERE id = $1`,
		id,
	)

	var j Job
	if err := row.Scan(&j.ID, &j.Title, &j.Skills, &j.Level, &j.Type); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	row := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, id)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
