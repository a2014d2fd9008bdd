package repository

import (
	"context"
	"time"

	"talent-rank/internal/database"

	"github.com/google/uuid"
)

type Interview struct {
	ID           uuid.UUID
	CandidateID  uuid.UUID
	Finalized    bool
	OverallScore *float64
	Role         string
	TechStack    string
	Type         string
	Strengths    []string
	CreatedAt    time.Time
}

type InterviewRepository interface {
	// FindFinalizedByCandidateIDs returns finalized interviews grouped by
	// candidate, newest-first within each group. The readiness calculation
	// depends on that order.
	FindFinalizedByCandidateIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]Interview, error)
}

type PostgresInterviewRepository struct {
	db database.DB
}

func NewPostgresInterviewRepository(db database.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

func (r *PostgresInterviewRepository) FindFinalizedByCandidateIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]Interview, error) {
	out := make(map[uuid.UUID][]Interview, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, candidate_id, overall_score, COALESCE(role, ''), COALESCE(techstack, ''), COALESCE(type, ''), COALESCE(strengths, '{}'), created_at
		 FROM interviews
		 WHERE candidate_id = ANY($1) AND finalized = TRUE
		 ORDER BY candidate_id, created_at DESC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var iv Interview
		if err := rows.Scan(&iv.ID, &iv.CandidateID, &iv.OverallScore, &iv.Role, &iv.TechStack, &iv.Type, &iv.Strengths, &iv.CreatedAt); err != nil {
			return nil, err
		}
		iv.Finalized = true
		out[iv.CandidateID] = append(out[iv.CandidateID], iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
