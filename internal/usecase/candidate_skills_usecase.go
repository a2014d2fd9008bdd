package usecase

import (
	"context"
	"errors"

	"talent-rank/internal/domain/matching"
	"talent-rank/internal/domain/skills"
	"talent-rank/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SkillBreakdown explains where a candidate's effective skill set came from:
// which skills were declared on the profile, which were mined from interview
// records, and how the combined set scores against a job when one is given.
type SkillBreakdown struct {
	CandidateID     uuid.UUID
	FullName        string
	Skills          []skills.Weighted
	DomainBuckets   map[skills.Domain][]string
	MatchScore      int
	MatchedSkills   []string
	DomainAnalysis  map[skills.Domain]matching.DomainStats
	InterviewsMined int
}

type CandidateSkillsUsecase interface {
	GetBreakdown(ctx context.Context, candidateID uuid.UUID, jobID *uuid.UUID) (SkillBreakdown, error)
}

type candidateSkillsUsecase struct {
	candidates repository.CandidateRepository
	interviews repository.InterviewRepository
	jobs       repository.JobRepository
	extractor  *skills.Extractor
	log        *zap.Logger
}

func NewCandidateSkillsUsecase(
	candidates repository.CandidateRepository,
	interviews repository.InterviewRepository,
	jobs repository.JobRepository,
	log *zap.Logger,
) CandidateSkillsUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &candidateSkillsUsecase{
		candidates: candidates,
		interviews: interviews,
		jobs:       jobs,
		extractor:  skills.NewExtractor(log),
		log:        log,
	}
}

func (u *candidateSkillsUsecase) GetBreakdown(ctx context.Context, candidateID uuid.UUID, jobID *uuid.UUID) (SkillBreakdown, error) {
	if candidateID == uuid.Nil {
		return SkillBreakdown{}, ErrCandidateNotFound
	}

	var (
		cand           repository.Candidate
		interviewsByID map[uuid.UUID][]repository.Interview
		job            *repository.Job
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cand, err = u.candidates.FindByID(gctx, candidateID)
		return err
	})
	g.Go(func() error {
		var err error
		interviewsByID, err = u.interviews.FindFinalizedByCandidateIDs(gctx, []uuid.UUID{candidateID})
		return err
	})
	if jobID != nil {
		id := *jobID
		g.Go(func() error {
			j, err := u.jobs.FindByID(gctx, id)
			if err != nil {
				return err
			}
			job = &j
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		switch {
		case errors.Is(err, repository.ErrCandidateNotFound):
			return SkillBreakdown{}, ErrCandidateNotFound
		case errors.Is(err, repository.ErrJobNotFound):
			return SkillBreakdown{}, ErrJobNotFound
		default:
			u.log.Error("fetch skill breakdown", zap.String("candidate_id", candidateID.String()), zap.Error(err))
			return SkillBreakdown{}, ErrInternal
		}
	}

	rows := interviewsByID[candidateID]
	texts := make([]skills.InterviewText, 0, len(rows))
	for _, iv := range rows {
		texts = append(texts, skills.InterviewText{
			Role:      iv.Role,
			TechStack: iv.TechStack,
			Type:      iv.Type,
			Strengths: iv.Strengths,
		})
	}
	mined := u.extractor.FromInterviews(texts)
	merged := skills.Merge(cand.Skills, mined)

	names := make([]string, 0, len(merged))
	for _, w := range merged {
		names = append(names, w.Name)
	}

	out := SkillBreakdown{
		CandidateID:     cand.ID,
		FullName:        cand.FullName,
		Skills:          merged,
		DomainBuckets:   skills.Categorize(names),
		InterviewsMined: len(rows),
	}

	if job != nil {
		match := matching.Score(job.Skills, merged, job.Title)
		out.MatchScore = match.Score
		out.MatchedSkills = match.Matched
		out.DomainAnalysis = match.DomainAnalysis
	}
	return out, nil
}
