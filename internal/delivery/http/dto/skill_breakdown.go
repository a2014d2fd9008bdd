package dto

import (
	"talent-rank/internal/usecase"
)

type WeightedSkillResponse struct {
	Name             string  `json:"name"`
	Source           string  `json:"source"`
	Weight           float64 `json:"weight"`
	Level            int     `json:"level"`
	InterviewDerived bool    `json:"interview_derived"`
}

type SkillBreakdownResponse struct {
	CandidateID     string                         `json:"candidate_id"`
	FullName        string                         `json:"full_name"`
	Skills          []WeightedSkillResponse        `json:"skills"`
	Domains         map[string][]string            `json:"domains"`
	MatchScore      *int                           `json:"match_score,omitempty"`
	MatchedSkills   []string                       `json:"matched_skills,omitempty"`
	DomainAnalysis  map[string]DomainStatsResponse `json:"domain_analysis,omitempty"`
	InterviewsMined int                            `json:"interviews_mined"`
}

func NewSkillBreakdownResponse(b usecase.SkillBreakdown, jobScoped bool) SkillBreakdownResponse {
	ws := make([]WeightedSkillResponse, 0, len(b.Skills))
	for _, s := range b.Skills {
		ws = append(ws, WeightedSkillResponse{
			Name:             s.Name,
			Source:           string(s.Source),
			Weight:           s.Weight,
			Level:            s.Level,
			InterviewDerived: s.InterviewDerived,
		})
	}

	domains := make(map[string][]string, len(b.DomainBuckets))
	for dom, names := range b.DomainBuckets {
		domains[string(dom)] = emptyIfNil(names)
	}

	out := SkillBreakdownResponse{
		CandidateID:     b.CandidateID.String(),
		FullName:        b.FullName,
		Skills:          ws,
		Domains:         domains,
		InterviewsMined: b.InterviewsMined,
	}
	if jobScoped {
		score := b.MatchScore
		out.MatchScore = &score
		out.MatchedSkills = emptyIfNil(b.MatchedSkills)
		out.DomainAnalysis = newSkillAnalysisResponse(b.DomainAnalysis)
	}
	return out
}
