package matching

import (
	"math"
	"strings"

	"talent-rank/internal/domain/skills"
)

// JobContext is the job side of a match: declared skill requirements plus
// optional title/level/type metadata. A nil JobContext switches scoring into
// diversity mode.
type JobContext struct {
	Title  string
	Skills []string
	Level  string
	Type   string
}

// DomainStats is the per-domain breakdown carried in a Result for
// explainability.
type DomainStats struct {
	Required  int
	Available int
	Matched   int
	Score     int
}

// Result is a fresh, request-scoped match outcome. Score is always in
// [0,100].
type Result struct {
	Score          int
	Matched        []string
	DomainBonus    int
	TitleBonus     int
	DomainAnalysis map[skills.Domain]DomainStats
}

const neutralScore = 50

// titleDomainKeywords infers at most one domain from a job title; the first
// keyword found in the title wins. Ordered, like every other lookup table in
// the engine.
var titleDomainKeywords = []struct {
	domain   skills.Domain
	keywords []string
}{
	{domain: skills.DomainFrontend, keywords: []string{"frontend", "front end", "ui", "react"}},
	{domain: skills.DomainBackend, keywords: []string{"backend", "back end", "server", "api"}},
	{domain: skills.DomainData, keywords: []string{"data", "analytics", "machine learning"}},
	{domain: skills.DomainMobile, keywords: []string{"mobile", "ios", "android"}},
	{domain: skills.DomainDevOps, keywords: []string{"devops", "cloud", "infrastructure", "docker", "container"}},
}

// Score computes how well a candidate's weighted skill set satisfies a job's
// declared requirements, on a 0-100 scale.
//
// Base credit is the weight-sum of matched requirements over the requirement
// count; domain-alignment and title-context bonuses stack on top, and the
// total is capped at 100. A job with no declared skills cannot discriminate
// candidates and returns a neutral 50.
func Score(jobSkills []string, candidate []skills.Weighted, jobTitle string) Result {
	required := normalizeRequired(jobSkills)
	if len(required) == 0 {
		return Result{
			Score:          neutralScore,
			Matched:        []string{},
			DomainAnalysis: emptyAnalysis(),
		}
	}

	matched := make([]string, 0, len(required))
	matchedWeight := make(map[string]float64, len(required))
	var weightSum float64

	for _, req := range required {
		w, ok := findMatch(req, candidate)
		if !ok {
			continue
		}
		matched = append(matched, req)
		matchedWeight[req] = w
		weightSum += w
	}

	base := weightSum / float64(len(required)) * 100

	analysis := analyzeDomains(required, candidate, matchedWeight)
	domainBonus := 0
	for _, d := range skills.DomainOrder {
		st := analysis[d]
		if st.Required == 0 {
			continue
		}
		switch ratio := float64(st.Score) / 100; {
		case ratio >= 0.8:
			domainBonus += 15
		case ratio >= 0.6:
			domainBonus += 10
		case ratio >= 0.4:
			domainBonus += 5
		}
	}

	titleBonus := titleBonusFor(jobTitle, analysis)

	score := int(math.Round(base)) + domainBonus + titleBonus
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return Result{
		Score:          score,
		Matched:        matched,
		DomainBonus:    domainBonus,
		TitleBonus:     titleBonus,
		DomainAnalysis: analysis,
	}
}

func normalizeRequired(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		n := skills.Normalize(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// findMatch scans the candidate list in order and returns the weight of the
// first skill equal to the requirement or containing it (either direction).
// Scan order is candidate list order, so merge insertion order decides ties.
func findMatch(req string, candidate []skills.Weighted) (float64, bool) {
	for _, c := range candidate {
		if c.Name == req || strings.Contains(c.Name, req) || strings.Contains(req, c.Name) {
			return c.Weight, true
		}
	}
	return 0, false
}

func analyzeDomains(required []string, candidate []skills.Weighted, matchedWeight map[string]float64) map[skills.Domain]DomainStats {
	reqByDomain := skills.Categorize(required)

	candNames := make([]string, 0, len(candidate))
	for _, c := range candidate {
		candNames = append(candNames, c.Name)
	}
	candByDomain := skills.Categorize(candNames)

	out := make(map[skills.Domain]DomainStats, len(skills.DomainOrder))
	for _, d := range skills.DomainOrder {
		reqs := reqByDomain[d]
		st := DomainStats{
			Required:  len(reqs),
			Available: len(candByDomain[d]),
		}
		if len(reqs) > 0 {
			var sum float64
			for _, r := range reqs {
				if w, ok := matchedWeight[r]; ok {
					st.Matched++
					sum += w
				}
			}
			st.Score = int(math.Round(sum / float64(len(reqs)) * 100))
		}
		out[d] = st
	}
	return out
}

func titleBonusFor(title string, analysis map[skills.Domain]DomainStats) int {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return 0
	}

	for _, entry := range titleDomainKeywords {
		for _, kw := range entry.keywords {
			if !strings.Contains(t, kw) {
				continue
			}
			st := analysis[entry.domain]
			if st.Required == 0 {
				return 0
			}
			switch ratio := float64(st.Score) / 100; {
			case ratio >= 0.6:
				return 10
			case ratio >= 0.4:
				return 5
			default:
				return 0
			}
		}
	}
	return 0
}

func emptyAnalysis() map[skills.Domain]DomainStats {
	out := make(map[skills.Domain]DomainStats, len(skills.DomainOrder))
	for _, d := range skills.DomainOrder {
		out[d] = DomainStats{}
	}
	return out
}
