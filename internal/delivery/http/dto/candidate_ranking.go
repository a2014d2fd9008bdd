package dto

import (
	"talent-rank/internal/domain/matching"
	"talent-rank/internal/domain/ranking"
	"talent-rank/internal/domain/skills"
	"talent-rank/internal/usecase"
)

// RankingQuery carries the listing controls common to job-scoped ranking and
// general discovery.
type RankingQuery struct {
	Limit    int `query:"limit" validate:"omitempty,min=1,max=50"`
	Offset   int `query:"offset" validate:"omitempty,min=0"`
	MinScore int `query:"min_score" validate:"omitempty,min=0,max=100"`
}

func (q RankingQuery) Params() usecase.CandidateRankingParams {
	return usecase.CandidateRankingParams{
		Limit:    q.Limit,
		Offset:   q.Offset,
		MinScore: q.MinScore,
	}
}

type ComponentsResponse struct {
	Skills             int `json:"skills"`
	InterviewReadiness int `json:"interview_readiness"`
	AIInsights         int `json:"ai_insights"`
	Experience         int `json:"experience"`
}

type DomainStatsResponse struct {
	Required  int `json:"required"`
	Available int `json:"available"`
	Matched   int `json:"matched"`
	Score     int `json:"score"`
}

type RankedCandidateResponse struct {
	CandidateID   string                         `json:"candidate_id"`
	FullName      string                         `json:"full_name"`
	TotalScore    int                            `json:"total_score"`
	Components    ComponentsResponse             `json:"components"`
	MatchedSkills []string                       `json:"matched_skills"`
	SkillAnalysis map[string]DomainStatsResponse `json:"skill_analysis,omitempty"`
	Reason        string                         `json:"reason"`
}

type CandidateRankingListResponse struct {
	Candidates []RankedCandidateResponse `json:"candidates"`
	Count      int                       `json:"count"`
}

func NewCandidateRankingListResponse(items []usecase.RankedCandidate) CandidateRankingListResponse {
	out := make([]RankedCandidateResponse, 0, len(items))
	for _, it := range items {
		out = append(out, newRankedCandidateResponse(it))
	}
	return CandidateRankingListResponse{Candidates: out, Count: len(out)}
}

func newRankedCandidateResponse(it usecase.RankedCandidate) RankedCandidateResponse {
	return RankedCandidateResponse{
		CandidateID:   it.CandidateID.String(),
		FullName:      it.FullName,
		TotalScore:    it.TotalScore,
		Components:    newComponentsResponse(it.Components),
		MatchedSkills: emptyIfNil(it.MatchedSkills),
		SkillAnalysis: newSkillAnalysisResponse(it.SkillAnalysis),
		Reason:        it.Reason,
	}
}

func newComponentsResponse(c ranking.Components) ComponentsResponse {
	return ComponentsResponse{
		Skills:             c.Skills,
		InterviewReadiness: c.InterviewReadiness,
		AIInsights:         c.AIInsights,
		Experience:         c.Experience,
	}
}

func newSkillAnalysisResponse(analysis map[skills.Domain]matching.DomainStats) map[string]DomainStatsResponse {
	if len(analysis) == 0 {
		return nil
	}
	out := make(map[string]DomainStatsResponse, len(analysis))
	for dom, st := range analysis {
		out[string(dom)] = DomainStatsResponse{
			Required:  st.Required,
			Available: st.Available,
			Matched:   st.Matched,
			Score:     st.Score,
		}
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
