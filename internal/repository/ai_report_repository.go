package repository

import (
	"context"
	"time"

	"talent-rank/internal/database"

	"github.com/google/uuid"
)

type AIReport struct {
	ID           uuid.UUID
	CandidateID  uuid.UUID
	OverallScore *float64
	CreatedAt    time.Time
}

type AIReportRepository interface {
	FindByCandidateIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]AIReport, error)
}

type PostgresAIReportRepository struct {
	db database.DB
}

func NewPostgresAIReportRepository(db database.DB) *PostgresAIReportRepository {
	return &PostgresAIReportRepository{db: db}
}

func (r *PostgresAIReportRepository) FindByCandidateIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]AIReport, error) {
	out := make(map[uuid.UUID][]AIReport, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, candidate_id, overall_score, created_at
		 FROM ai_reports
		 WHERE candidate_id = ANY($1)
		 ORDER BY candidate_id, created_at DESC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rep AIReport
		if err := rows.Scan(&rep.ID, &rep.CandidateID, &rep.OverallScore, &rep.CreatedAt); err != nil {
			return nil, err
		}
		out[rep.CandidateID] = append(out[rep.CandidateID], rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
