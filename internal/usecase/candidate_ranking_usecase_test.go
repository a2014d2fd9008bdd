package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"talent-rank/internal/config"
	"talent-rank/internal/domain/skills"
	"talent-rank/internal/repository"

	"github.com/google/uuid"
)

type mockJobRepo struct {
	jobs map[uuid.UUID]repository.Job
	err  error
}

func (m mockJobRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Job, error) {
	if m.err != nil {
		return repository.Job{}, m.err
	}
	j, ok := m.jobs[id]
	if !ok {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m mockJobRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.jobs[id]
	return ok, nil
}

type mockCandidateRepo struct {
	list []repository.Candidate
	err  error
}

func (m mockCandidateRepo) ListCandidates(_ context.Context, limit, offset int) ([]repository.Candidate, error) {
	if m.err != nil {
		return nil, m.err
	}
	if offset >= len(m.list) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.list) {
		end = len(m.list)
	}
	return m.list[offset:end], nil
}

func (m mockCandidateRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Candidate, error) {
	for _, c := range m.list {
		if c.ID == id {
			return c, nil
		}
	}
	return repository.Candidate{}, repository.ErrCandidateNotFound
}

type mockInterviewRepo struct {
	byCandidate map[uuid.UUID][]repository.Interview
	err         error
}

func (m mockInterviewRepo) FindFinalizedByCandidateIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]repository.Interview, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[uuid.UUID][]repository.Interview)
	for _, id := range ids {
		if ivs, ok := m.byCandidate[id]; ok {
			out[id] = ivs
		}
	}
	return out, nil
}

type mockAIReportRepo struct {
	byCandidate map[uuid.UUID][]repository.AIReport
	err         error
}

func (m mockAIReportRepo) FindByCandidateIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]repository.AIReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[uuid.UUID][]repository.AIReport)
	for _, id := range ids {
		if reps, ok := m.byCandidate[id]; ok {
			out[id] = reps
		}
	}
	return out, nil
}

type mockCache struct {
	store map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func fptr(v float64) *float64 { return &v }

func testRankingConfig() config.RankingConfig {
	return config.RankingConfig{CandidateScanLimit: 50, Workers: 2, CacheTTL: time.Minute}
}

func rankingFixture() (uuid.UUID, mockJobRepo, mockCandidateRepo, mockInterviewRepo, mockAIReportRepo) {
	jobID := uuid.New()
	strong := uuid.New()
	mid := uuid.New()
	weak := uuid.New()

	jobs := mockJobRepo{jobs: map[uuid.UUID]repository.Job{
		jobID: {ID: jobID, Title: "Frontend Developer", Skills: []string{"React", "Node.js"}},
	}}

	candidates := mockCandidateRepo{list: []repository.Candidate{
		{
			ID:              strong,
			FullName:        "Strong",
			Skills:          []skills.Token{skills.RawToken("react"), skills.RawToken("css")},
			TotalInterviews: 2,
		},
		{
			ID:       mid,
			FullName: "Mid",
			Skills:   []skills.Token{skills.RawToken("react")},
		},
		{
			ID:       weak,
			FullName: "Weak",
		},
		{
			// Broken row: no identity. Must be skipped, not fatal.
			FullName: "Broken",
		},
	}}

	interviews := mockInterviewRepo{byCandidate: map[uuid.UUID][]repository.Interview{
		strong: {
			{CandidateID: strong, Finalized: true, OverallScore: fptr(80)},
			{CandidateID: strong, Finalized: true, OverallScore: fptr(60)},
		},
	}}

	reports := mockAIReportRepo{byCandidate: map[uuid.UUID][]repository.AIReport{
		strong: {{CandidateID: strong, OverallScore: fptr(70)}},
	}}

	return jobID, jobs, candidates, interviews, reports
}

func TestRankForJobSortsAndFilters(t *testing.T) {
	jobID, jobs, candidates, interviews, reports := rankingFixture()
	uc := NewCandidateRankingUsecase(jobs, candidates, interviews, reports, nil, testRankingConfig(), nil)

	got, err := uc.RankForJob(context.Background(), jobID, CandidateRankingParams{})
	if err != nil {
		t.Fatalf("RankForJob: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2 (weak and broken rows excluded): %+v", len(got), got)
	}
	if got[0].FullName != "Strong" || got[1].FullName != "Mid" {
		t.Fatalf("order = [%s, %s], want [Strong, Mid]", got[0].FullName, got[1].FullName)
	}
	if got[0].TotalScore < got[1].TotalScore {
		t.Fatalf("scores not descending: %d then %d", got[0].TotalScore, got[1].TotalScore)
	}
	for _, rc := range got {
		if rc.TotalScore < DisplayThreshold {
			t.Fatalf("candidate %s below display threshold with %d", rc.FullName, rc.TotalScore)
		}
		if rc.Reason == "" {
			t.Fatalf("candidate %s has empty reason", rc.FullName)
		}
	}
}

func TestRankForJobMinScoreRaisesCutoff(t *testing.T) {
	jobID, jobs, candidates, interviews, reports := rankingFixture()
	uc := NewCandidateRankingUsecase(jobs, candidates, interviews, reports, nil, testRankingConfig(), nil)

	got, err := uc.RankForJob(context.Background(), jobID, CandidateRankingParams{MinScore: 50})
	if err != nil {
		t.Fatalf("RankForJob: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Strong" {
		t.Fatalf("got %+v, want only Strong above 50", got)
	}
}

func TestRankForJobPagination(t *testing.T) {
	jobID, jobs, candidates, interviews, reports := rankingFixture()
	uc := NewCandidateRankingUsecase(jobs, candidates, interviews, reports, nil, testRankingConfig(), nil)

	first, err := uc.RankForJob(context.Background(), jobID, CandidateRankingParams{Limit: 1})
	if err != nil {
		t.Fatalf("RankForJob page 1: %v", err)
	}
	if len(first) != 1 || first[0].FullName != "Strong" {
		t.Fatalf("page 1 = %+v, want [Strong]", first)
	}

	second, err := uc.RankForJob(context.Background(), jobID, CandidateRankingParams{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("RankForJob page 2: %v", err)
	}
	if len(second) != 1 || second[0].FullName != "Mid" {
		t.Fatalf("page 2 = %+v, want [Mid]", second)
	}

	empty, err := uc.RankForJob(context.Background(), jobID, CandidateRankingParams{Offset: 10})
	if err != nil {
		t.Fatalf("RankForJob past end: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("page past end = %+v, want empty", empty)
	}
}

func TestRankForJobInvalidParams(t *testing.T) {
	jobID, jobs, candidates, interviews, reports := rankingFixture()
	uc := NewCandidateRankingUsecase(jobs, candidates, interviews, reports, nil, testRankingConfig(), nil)

	for _, params := range []CandidateRankingParams{
		{Limit: -1},
		{Offset: -1},
		{MinScore: -1},
	} {
		if _, err := uc.RankForJob(context.Background(), jobID, params); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("params %+v: err = %v, want ErrInvalidInput", params, err)
		}
	}
}

func TestRankForJobUnknownJob(t *testing.T) {
	_, jobs, candidates, interviews, reports := rankingFixture()
	uc := NewCandidateRankingUsecase(jobs, candidates, interviews, reports, nil, testRankingConfig(), nil)

	if _, err := uc.RankForJob(context.Background(), uuid.New(), CandidateRankingParams{}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("err = %v, want ErrJobNotFound", err)
	}
	if _, err := uc.RankForJob(context.Background(), uuid.Nil, CandidateRankingParams{}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("nil id err = %v, want ErrJobNotFound", err)
	}
}

func TestRankForJobRepositoryFailure(t *testing.T) {
	jobID, jobs, _, interviews, reports := rankingFixture()
	broken := mockCandidateRepo{err: errors.New("connection reset")}
	uc := NewCandidateRankingUsecase(jobs, broken, interviews, reports, nil, testRankingConfig(), nil)

	if _, err := uc.RankForJob(context.Background(), jobID, CandidateRankingParams{}); !errors.Is(err, ErrInternal) {
		t.Fatalf("err = %v, want ErrInternal", err)
	}
}

func TestRankForJobCachesResult(t *testing.T) {
	jobID, jobs, candidates, interviews, reports := rankingFixture()
	cache := newMockCache()
	uc := NewCandidateRankingUsecase(jobs, candidates, interviews, reports, cache, testRankingConfig(), nil)

	first, err := uc.RankForJob(context.Background(), jobID, CandidateRankingParams{})
	if err != nil {
		t.Fatalf("RankForJob: %v", err)
	}
	if len(cache.store) == 0 {
		t.Fatal("expected the ranked page to be cached")
	}

	// A second call with identical params must be served from cache even if
	// the candidate source starts failing.
	uc2 := NewCandidateRankingUsecase(jobs, mockCandidateRepo{err: errors.New("down")}, interviews, reports, cache, testRankingConfig(), nil)
	second, err := uc2.RankForJob(context.Background(), jobID, CandidateRankingParams{})
	if err != nil {
		t.Fatalf("cached RankForJob: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("cached page has %d entries, want %d", len(second), len(first))
	}
}

func TestDiscoverRanksWithoutJob(t *testing.T) {
	_, jobs, candidates, interviews, reports := rankingFixture()
	uc := NewCandidateRankingUsecase(jobs, candidates, interviews, reports, nil, testRankingConfig(), nil)

	got, err := uc.Discover(context.Background(), CandidateRankingParams{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	for i := 1; i < len(got); i++ {
		if got[i-1].TotalScore < got[i].TotalScore {
			t.Fatalf("discover scores not descending at %d: %+v", i, got)
		}
	}
	for _, rc := range got {
		if len(rc.MatchedSkills) != 0 {
			t.Fatalf("candidate %s has matched skills %v without a job", rc.FullName, rc.MatchedSkills)
		}
	}
}

func TestRankForJobNoCandidates(t *testing.T) {
	jobID, jobs, _, interviews, reports := rankingFixture()
	uc := NewCandidateRankingUsecase(jobs, mockCandidateRepo{}, interviews, reports, nil, testRankingConfig(), nil)

	got, err := uc.RankForJob(context.Background(), jobID, CandidateRankingParams{})
	if err != nil {
		t.Fatalf("RankForJob: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %+v, want empty shortlist", got)
	}
}
