package ranking

import (
	"strings"
	"testing"

	"talent-rank/internal/domain/matching"
	"talent-rank/internal/domain/skills"

	"github.com/google/uuid"
)

func fptr(v float64) *float64 { return &v }

func TestRankCompositeWeights(t *testing.T) {
	agg := NewAggregator(nil)

	profile := Profile{
		ID:              uuid.New(),
		FullName:        "Ada",
		Skills:          []skills.Token{skills.RawToken("react"), skills.RawToken("css")},
		TotalInterviews: 2,
	}
	interviews := []Interview{
		{Finalized: true, OverallScore: fptr(80)},
		{Finalized: true, OverallScore: fptr(60)},
	}
	reports := []AIReport{{OverallScore: fptr(70)}}
	job := &matching.JobContext{Title: "Frontend Developer", Skills: []string{"React", "Node.js"}}

	got := agg.Rank(profile, interviews, reports, job)

	want := Components{Skills: 75, InterviewReadiness: 70, AIInsights: 70, Experience: 20}
	if got.Components != want {
		t.Fatalf("components = %+v, want %+v", got.Components, want)
	}
	// 75*0.50 + 70*0.25 + 70*0.15 + 20*0.10 = 67.5, rounded.
	if got.TotalScore != 68 {
		t.Fatalf("total = %d, want 68", got.TotalScore)
	}
	if len(got.MatchedSkills) != 1 || got.MatchedSkills[0] != "react" {
		t.Fatalf("matched = %v, want [react]", got.MatchedSkills)
	}
	if got.Reason == "" {
		t.Fatal("reason must not be empty when signals exist")
	}
}

func TestRankIgnoresUnfinalizedInterviews(t *testing.T) {
	agg := NewAggregator(nil)

	profile := Profile{ID: uuid.New(), FullName: "Ada"}
	interviews := []Interview{
		{Finalized: false, OverallScore: fptr(100), TechStack: "Kubernetes"},
	}

	got := agg.Rank(profile, interviews, nil, nil)

	if got.Components.InterviewReadiness != 0 {
		t.Fatalf("readiness = %d, unfinalized interviews must not count", got.Components.InterviewReadiness)
	}
	if got.Components.Skills != 0 {
		t.Fatalf("skills = %d, unfinalized interview text must not be mined", got.Components.Skills)
	}
}

func TestRankMinesInterviewSkills(t *testing.T) {
	agg := NewAggregator(nil)

	profile := Profile{
		ID:       uuid.New(),
		FullName: "Ada",
		Skills:   []skills.Token{skills.RawToken("react")},
	}
	job := &matching.JobContext{Skills: []string{"React", "Node.js"}}

	without := agg.Rank(profile, nil, nil, job)
	with := agg.Rank(profile, []Interview{
		{Finalized: true, TechStack: "Node.js"},
	}, nil, job)

	if with.Components.Skills <= without.Components.Skills {
		t.Fatalf("skills with mined interview = %d, want above %d",
			with.Components.Skills, without.Components.Skills)
	}
	if len(with.MatchedSkills) != 2 {
		t.Fatalf("matched = %v, want both requirements after mining", with.MatchedSkills)
	}
}

func TestRankNilJobUsesDiversityMode(t *testing.T) {
	agg := NewAggregator(nil)

	profile := Profile{
		ID:       uuid.New(),
		FullName: "Ada",
		Skills: []skills.Token{
			skills.RawToken("react"), skills.RawToken("golang"), skills.RawToken("docker"),
		},
	}

	got := agg.Rank(profile, nil, nil, nil)

	if got.Components.Skills == 0 {
		t.Fatal("diversity mode should credit a multi-domain skill set")
	}
	if len(got.MatchedSkills) != 0 {
		t.Fatalf("matched = %v, want empty without a job", got.MatchedSkills)
	}
}

func TestRankReadinessRecentWindow(t *testing.T) {
	agg := NewAggregator(nil)

	// Newest-first: a strong recent interview pulls readiness above the
	// all-time average.
	interviews := []Interview{
		{Finalized: true, OverallScore: fptr(90)},
		{Finalized: true, OverallScore: fptr(50)},
		{Finalized: true, OverallScore: fptr(50)},
		{Finalized: true, OverallScore: fptr(10)},
	}

	got := agg.Rank(Profile{ID: uuid.New()}, interviews, nil, nil)

	// avg 50, recent-3 avg 63.33: 50*0.6 + 63.33*0.4 = 55.33.
	if got.Components.InterviewReadiness != 55 {
		t.Fatalf("readiness = %d, want 55", got.Components.InterviewReadiness)
	}
}

func TestRankExperiencePrefersStoredScore(t *testing.T) {
	agg := NewAggregator(nil)

	got := agg.Rank(Profile{ID: uuid.New(), OverallScore: fptr(85.4), TotalInterviews: 1}, nil, nil, nil)
	if got.Components.Experience != 85 {
		t.Fatalf("experience = %d, want stored score 85", got.Components.Experience)
	}

	fallback := agg.Rank(Profile{ID: uuid.New(), TotalInterviews: 12}, nil, nil, nil)
	if fallback.Components.Experience != 100 {
		t.Fatalf("experience = %d, want interview-count fallback capped at 100", fallback.Components.Experience)
	}
}

func TestRankNoSignals(t *testing.T) {
	agg := NewAggregator(nil)

	got := agg.Rank(Profile{ID: uuid.New(), FullName: "Blank"}, nil, nil, nil)

	if got.TotalScore != 0 {
		t.Fatalf("total = %d, want 0 with no signals", got.TotalScore)
	}
	if !strings.Contains(got.Reason, "no scoring signals") {
		t.Fatalf("reason = %q, want the no-signals explanation", got.Reason)
	}
}
