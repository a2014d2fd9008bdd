package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"talent-rank/internal/config"
	"talent-rank/internal/domain/matching"
	"talent-rank/internal/domain/ranking"
	"talent-rank/internal/domain/skills"
	"talent-rank/internal/pkg/workerpool"
	"talent-rank/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrJobNotFound       = errors.New("job not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInternal          = errors.New("internal error")
)

// DisplayThreshold is the minimum composite score a candidate needs to appear
// in any ranked listing. Callers may raise the cutoff via MinScore but never
// lower it below this floor.
const DisplayThreshold = 20

const (
	defaultLimit = 20
	maxLimit     = 50
)

type CandidateRankingParams struct {
	Limit    int
	Offset   int
	MinScore int
}

type RankedCandidate struct {
	CandidateID   uuid.UUID
	FullName      string
	TotalScore    int
	Components    ranking.Components
	MatchedSkills []string
	SkillAnalysis map[skills.Domain]matching.DomainStats
	Reason        string
}

type CandidateRankingUsecase interface {
	RankForJob(ctx context.Context, jobID uuid.UUID, params CandidateRankingParams) ([]RankedCandidate, error)
	Discover(ctx context.Context, params CandidateRankingParams) ([]RankedCandidate, error)
}

type candidateRankingUsecase struct {
	jobs       repository.JobRepository
	candidates repository.CandidateRepository
	interviews repository.InterviewRepository
	reports    repository.AIReportRepository
	aggregator *ranking.Aggregator
	cache      RankingCache
	cfg        config.RankingConfig
	log        *zap.Logger
}

func NewCandidateRankingUsecase(
	jobs repository.JobRepository,
	candidates repository.CandidateRepository,
	interviews repository.InterviewRepository,
	reports repository.AIReportRepository,
	cache RankingCache,
	cfg config.RankingConfig,
	log *zap.Logger,
) CandidateRankingUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.CandidateScanLimit <= 0 {
		cfg.CandidateScanLimit = 200
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &candidateRankingUsecase{
		jobs:       jobs,
		candidates: candidates,
		interviews: interviews,
		reports:    reports,
		aggregator: ranking.NewAggregator(log),
		cache:      cache,
		cfg:        cfg,
		log:        log,
	}
}

func (u *candidateRankingUsecase) RankForJob(ctx context.Context, jobID uuid.UUID, params CandidateRankingParams) ([]RankedCandidate, error) {
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}
	params, err := normalizeParams(params)
	if err != nil {
		return nil, err
	}

	key := RankingsCacheKey(jobID, params)
	if cached, ok := u.fromCache(ctx, key); ok {
		return cached, nil
	}

	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		u.log.Error("fetch job", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, ErrInternal
	}

	jobCtx := &matching.JobContext{
		Title:  job.Title,
		Skills: job.Skills,
		Level:  job.Level,
		Type:   job.Type,
	}

	ranked, err := u.rankAll(ctx, jobCtx)
	if err != nil {
		return nil, err
	}

	page := paginate(ranked, params)
	u.toCache(ctx, key, page)
	return page, nil
}

func (u *candidateRankingUsecase) Discover(ctx context.Context, params CandidateRankingParams) ([]RankedCandidate, error) {
	params, err := normalizeParams(params)
	if err != nil {
		return nil, err
	}

	key := DiscoveryCacheKey(params)
	if cached, ok := u.fromCache(ctx, key); ok {
		return cached, nil
	}

	ranked, err := u.rankAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	page := paginate(ranked, params)
	u.toCache(ctx, key, page)
	return page, nil
}

// rankAll scores every candidate in the scan window against the job (or in
// diversity mode when job is nil), drops everyone below the display
// threshold, and returns the survivors sorted by score descending. Equal
// scores keep candidate listing order, so pagination stays stable across
// requests.
func (u *candidateRankingUsecase) rankAll(ctx context.Context, job *matching.JobContext) ([]RankedCandidate, error) {
	cands, err := u.candidates.ListCandidates(ctx, u.cfg.CandidateScanLimit, 0)
	if err != nil {
		u.log.Error("list candidates", zap.Error(err))
		return nil, ErrInternal
	}
	if len(cands) == 0 {
		return []RankedCandidate{}, nil
	}

	ids := make([]uuid.UUID, 0, len(cands))
	for _, c := range cands {
		ids = append(ids, c.ID)
	}

	var (
		interviewsByID map[uuid.UUID][]repository.Interview
		reportsByID    map[uuid.UUID][]repository.AIReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		interviewsByID, err = u.interviews.FindFinalizedByCandidateIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		reportsByID, err = u.reports.FindByCandidateIDs(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Error("fetch ranking signals", zap.Error(err))
		return nil, ErrInternal
	}

	results := make([]*ranking.Result, len(cands))
	pool := workerpool.New(u.cfg.Workers, len(cands))
	for i, cand := range cands {
		i, cand := i, cand
		pool.Submit(func(ctx context.Context) error {
			res, err := u.rankOne(cand, interviewsByID[cand.ID], reportsByID[cand.ID], job)
			if err != nil {
				return err
			}
			results[i] = &res
			return nil
		})
	}
	pool.Close()

	for r := range pool.Run(ctx) {
		if r.Err != nil {
			// One broken candidate record must not sink the batch.
			u.log.Warn("skip candidate", zap.Error(r.Err))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, ErrInternal
	}

	out := make([]RankedCandidate, 0, len(results))
	for _, res := range results {
		if res == nil || res.TotalScore < DisplayThreshold {
			continue
		}
		out = append(out, RankedCandidate{
			CandidateID:   res.CandidateID,
			FullName:      res.FullName,
			TotalScore:    res.TotalScore,
			Components:    res.Components,
			MatchedSkills: res.MatchedSkills,
			SkillAnalysis: res.SkillAnalysis,
			Reason:        res.Reason,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalScore > out[j].TotalScore
	})
	return out, nil
}

func (u *candidateRankingUsecase) rankOne(cand repository.Candidate, interviews []repository.Interview, reports []repository.AIReport, job *matching.JobContext) (res ranking.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rank candidate %s: %v", cand.ID, r)
		}
	}()
	if cand.ID == uuid.Nil {
		return ranking.Result{}, fmt.Errorf("candidate without id (%q)", cand.FullName)
	}
	res = u.aggregator.Rank(toProfile(cand), toInterviews(interviews), toReports(reports), job)
	return res, nil
}

func (u *candidateRankingUsecase) fromCache(ctx context.Context, key string) ([]RankedCandidate, bool) {
	if u.cache == nil {
		return nil, false
	}
	var out []RankedCandidate
	hit, err := u.cache.GetJSON(ctx, key, &out)
	if err != nil || !hit {
		return nil, false
	}
	return out, true
}

func (u *candidateRankingUsecase) toCache(ctx context.Context, key string, page []RankedCandidate) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, page, u.cfg.CacheTTL); err != nil {
		u.log.Warn("cache ranked page", zap.String("key", key), zap.Error(err))
	}
}

func normalizeParams(p CandidateRankingParams) (CandidateRankingParams, error) {
	if p.Limit < 0 || p.Offset < 0 || p.MinScore < 0 {
		return CandidateRankingParams{}, ErrInvalidInput
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.MinScore < DisplayThreshold {
		p.MinScore = DisplayThreshold
	}
	if p.MinScore > 100 {
		p.MinScore = 100
	}
	return p, nil
}

func paginate(ranked []RankedCandidate, params CandidateRankingParams) []RankedCandidate {
	filtered := ranked
	if params.MinScore > DisplayThreshold {
		filtered = make([]RankedCandidate, 0, len(ranked))
		for _, rc := range ranked {
			if rc.TotalScore >= params.MinScore {
				filtered = append(filtered, rc)
			}
		}
	}

	if params.Offset >= len(filtered) {
		return []RankedCandidate{}
	}
	end := params.Offset + params.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[params.Offset:end]
}

func toProfile(c repository.Candidate) ranking.Profile {
	return ranking.Profile{
		ID:              c.ID,
		FullName:        c.FullName,
		Skills:          c.Skills,
		OverallScore:    c.OverallScore,
		TotalInterviews: c.TotalInterviews,
	}
}

func toInterviews(rows []repository.Interview) []ranking.Interview {
	out := make([]ranking.Interview, 0, len(rows))
	for _, r := range rows {
		out = append(out, ranking.Interview{
			Finalized:    r.Finalized,
			OverallScore: r.OverallScore,
			Role:         r.Role,
			TechStack:    r.TechStack,
			Type:         r.Type,
			Strengths:    r.Strengths,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out
}

func toReports(rows []repository.AIReport) []ranking.AIReport {
	out := make([]ranking.AIReport, 0, len(rows))
	for _, r := range rows {
		out = append(out, ranking.AIReport{OverallScore: r.OverallScore})
	}
	return out
}
