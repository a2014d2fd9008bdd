package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"talent-rank/internal/database"
	"talent-rank/internal/domain/skills"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type Candidate struct {
	ID              uuid.UUID
	FullName        string
	Headline        string
	Skills          []skills.Token
	OverallScore    *float64
	TotalInterviews int
}

type CandidateRepository interface {
	ListCandidates(ctx context.Context, limit, offset int) ([]Candidate, error)
	FindByID(ctx context.Context, id uuid.UUID) (Candidate, error)
}

type PostgresCandidateRepository struct {
	db  database.DB
	log *zap.Logger
}

func NewPostgresCandidateRepository(db database.DB, log *zap.Logger) *PostgresCandidateRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostgresCandidateRepository{db: db, log: log}
}

func (r *PostgresCandidateRepository) ListCandidates(ctx context.Context, limit, offset int) ([]Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(full_name, ''), COALESCE(headline, ''), COALESCE(skills, '[]'::jsonb), overall_score, COALESCE(total_interviews, 0)
		 FROM candidates
		 ORDER BY created_at DESC, id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Candidate, 0)
	for rows.Next() {
		var c Candidate
		var skillsJSON []byte
		if err := rows.Scan(&c.ID, &c.FullName, &c.Headline, &skillsJSON, &c.OverallScore, &c.TotalInterviews); err != nil {
			return nil, err
		}

		tokens, err := decodeSkillTokens(skillsJSON)
		if err != nil {
			// One corrupt profile must not sink the whole listing.
			r.log.Warn("skip candidate with undecodable skills",
				zap.String("candidate_id", c.ID.String()),
				zap.Error(err),
			)
			continue
		}
		c.Skills = tokens
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) FindByID(ctx context.Context, id uuid.UUID) (Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(full_name, ''), COALESCE(headline, ''), COALESCE(skills, '[]'::jsonb), overall_score, COALESCE(total_interviews, 0)
		 FROM candidates
		 WHERE id = $1`,
		id,
	)

	var c Candidate
	var skillsJSON []byte
	if err := row.Scan(&c.ID, &c.FullName, &c.Headline, &skillsJSON, &c.OverallScore, &c.TotalInterviews); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Candidate{}, ErrCandidateNotFound
		}
		return Candidate{}, err
	}

	tokens, err := decodeSkillTokens(skillsJSON)
	if err != nil {
		return Candidate{}, fmt.Errorf("candidate %s: %w", c.ID, err)
	}
	c.Skills = tokens
	return c, nil
}

// decodeSkillTokens accepts the two shapes profile skills are stored in:
// a bare string, or an object with name and optional level.
func decodeSkillTokens(raw []byte) ([]skills.Token, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}

	out := make([]skills.Token, 0, len(elems))
	for _, e := range elems {
		var name string
		if err := json.Unmarshal(e, &name); err == nil {
			out = append(out, skills.RawToken(name))
			continue
		}

		var obj struct {
			Name  string `json:"name"`
			Level *int   `json:"level"`
		}
		if err := json.Unmarshal(e, &obj); err != nil {
			return nil, fmt.Errorf("decode skill entry: %w", err)
		}
		if obj.Level != nil {
			out = append(out, skills.LeveledToken(obj.Name, *obj.Level))
			continue
		}
		out = append(out, skills.RawToken(obj.Name))
	}
	return out, nil
}
