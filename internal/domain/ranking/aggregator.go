package ranking

import (
	"fmt"
	"math"
	"strings"
	"time"

	"talent-rank/internal/domain/matching"
	"talent-rank/internal/domain/skills"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Component weights of the composite score. They must sum to 1.0.
const (
	weightSkills     = 0.50
	weightReadiness  = 0.25
	weightAIInsights = 0.15
	weightExperience = 0.10

	recentInterviewWindow = 3
)

// Profile is the candidate side of a ranking: declared skill tokens plus the
// stored cumulative score and interview count used by the experience
// component.
type Profile struct {
	ID              uuid.UUID
	FullName        string
	Skills          []skills.Token
	OverallScore    *float64
	TotalInterviews int
}

// Interview is a finalized interview record. OverallScore is nil when the
// interview was never scored. Callers must pass interviews newest-first; the
// aggregator does not sort by CreatedAt itself.
type Interview struct {
	Finalized    bool
	OverallScore *float64
	Role         string
	TechStack    string
	Type         string
	Strengths    []string
	CreatedAt    time.Time
}

// AIReport carries the numeric output of the AI analysis pipeline.
type AIReport struct {
	OverallScore *float64
}

// Components holds every sub-score at its raw (unweighted) value so callers
// can render an explainable breakdown.
type Components struct {
	Skills             int
	InterviewReadiness int
	AIInsights         int
	Experience         int
}

// Result is the terminal output for one candidate: computed, returned,
// discarded.
type Result struct {
	CandidateID   uuid.UUID
	FullName      string
	TotalScore    int
	Components    Components
	MatchedSkills []string
	SkillAnalysis map[skills.Domain]matching.DomainStats
	Reason        string
}

// Aggregator blends skill match, interview readiness, AI insights and
// experience into one composite 0-100 score.
type Aggregator struct {
	extractor *skills.Extractor
	log       *zap.Logger
}

func NewAggregator(log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{
		extractor: skills.NewExtractor(log),
		log:       log,
	}
}

// Rank computes the composite ranking for one candidate. job may be nil, in
// which case the skills component runs in diversity mode (general discovery).
func (a *Aggregator) Rank(profile Profile, interviews []Interview, reports []AIReport, job *matching.JobContext) Result {
	finalized := make([]Interview, 0, len(interviews))
	for _, iv := range interviews {
		if iv.Finalized {
			finalized = append(finalized, iv)
		}
	}

	texts := make([]skills.InterviewText, 0, len(finalized))
	for _, iv := range finalized {
		texts = append(texts, skills.InterviewText{
			Role:      iv.Role,
			TechStack: iv.TechStack,
			Type:      iv.Type,
			Strengths: iv.Strengths,
		})
	}
	interviewSkills := a.extractor.FromInterviews(texts)
	merged := skills.Merge(profile.Skills, interviewSkills)

	var match matching.Result
	if job != nil {
		match = matching.Score(job.Skills, merged, job.Title)
	} else {
		match = matching.ScoreDiversity(merged)
	}

	readiness := interviewReadiness(finalized)
	insights := aiInsights(reports)
	experience := experienceScore(profile)

	total := int(math.Round(
		float64(match.Score)*weightSkills +
			float64(readiness)*weightReadiness +
			float64(insights)*weightAIInsights +
			float64(experience)*weightExperience,
	))
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	comps := Components{
		Skills:             match.Score,
		InterviewReadiness: readiness,
		AIInsights:         insights,
		Experience:         experience,
	}

	return Result{
		CandidateID:   profile.ID,
		FullName:      profile.FullName,
		TotalScore:    total,
		Components:    comps,
		MatchedSkills: match.Matched,
		SkillAnalysis: match.DomainAnalysis,
		Reason:        buildReason(comps, match, finalized, reports),
	}
}

// interviewReadiness blends the all-time average with the three most recent
// scored interviews (input order is newest-first by contract).
func interviewReadiness(interviews []Interview) int {
	scored := make([]float64, 0, len(interviews))
	for _, iv := range interviews {
		if iv.OverallScore == nil {
			continue
		}
		scored = append(scored, *iv.OverallScore)
	}
	if len(scored) == 0 {
		return 0
	}

	avg := mean(scored)

	recent := scored
	if len(recent) > recentInterviewWindow {
		recent = recent[:recentInterviewWindow]
	}
	recentAvg := mean(recent)

	v := int(math.Round(avg*0.6 + recentAvg*0.4))
	if v > 100 {
		v = 100
	}
	if v < 0 {
		v = 0
	}
	return v
}

func aiInsights(reports []AIReport) int {
	vals := make([]float64, 0, len(reports))
	for _, r := range reports {
		if r.OverallScore == nil {
			continue
		}
		vals = append(vals, *r.OverallScore)
	}
	if len(vals) == 0 {
		return 0
	}
	v := int(math.Round(mean(vals)))
	if v > 100 {
		v = 100
	}
	if v < 0 {
		v = 0
	}
	return v
}

func experienceScore(profile Profile) int {
	if profile.OverallScore != nil && *profile.OverallScore > 0 {
		v := int(math.Round(*profile.OverallScore))
		if v > 100 {
			v = 100
		}
		return v
	}
	if profile.TotalInterviews > 0 {
		v := profile.TotalInterviews * 10
		if v > 100 {
			v = 100
		}
		return v
	}
	return 0
}

// buildReason produces the human-readable justification enumerating which
// components contributed.
func buildReason(comps Components, match matching.Result, interviews []Interview, reports []AIReport) string {
	parts := make([]string, 0, 4)

	if len(match.Matched) > 0 {
		parts = append(parts, fmt.Sprintf("matched %d required skill(s) for a skill score of %d", len(match.Matched), comps.Skills))
	} else if comps.Skills > 0 {
		parts = append(parts, fmt.Sprintf("general skill breadth scored %d", comps.Skills))
	}

	scored := 0
	for _, iv := range interviews {
		if iv.OverallScore != nil {
			scored++
		}
	}
	if scored > 0 {
		parts = append(parts, fmt.Sprintf("%d scored interview(s) averaging %d", scored, comps.InterviewReadiness))
	}

	withScore := 0
	for _, r := range reports {
		if r.OverallScore != nil {
			withScore++
		}
	}
	if withScore > 0 {
		parts = append(parts, fmt.Sprintf("%d AI report(s) averaging %d", withScore, comps.AIInsights))
	}

	if comps.Experience > 0 {
		parts = append(parts, fmt.Sprintf("experience score of %d", comps.Experience))
	}

	if len(parts) == 0 {
		return "no scoring signals available"
	}
	return strings.Join(parts, "; ")
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
