package matching

import (
	"math"

	"talent-rank/internal/domain/skills"
)

const (
	diversityWeightCeiling = 10.0
	diversityBreadthMax    = 50.0
	diversityLevelMax      = 30.0
	diversityDomainPoints  = 4
	diversityDomainCap     = 20
)

// ScoreDiversity rates how broad and credible a candidate's general skill
// set is, for discovery without a job context. Breadth (total skill weight,
// ceiling of 10 full-weight skills), credibility (weight-averaged skill
// level) and domain spread each contribute a bounded slice of the 0-100
// scale.
func ScoreDiversity(candidate []skills.Weighted) Result {
	if len(candidate) == 0 {
		return Result{
			Matched:        []string{},
			DomainAnalysis: emptyAnalysis(),
		}
	}

	var totalWeight, levelSum float64
	names := make([]string, 0, len(candidate))
	for _, c := range candidate {
		totalWeight += c.Weight
		levelSum += float64(c.Level) * c.Weight
		names = append(names, c.Name)
	}

	breadth := totalWeight
	if breadth > diversityWeightCeiling {
		breadth = diversityWeightCeiling
	}
	breadthScore := breadth / diversityWeightCeiling * diversityBreadthMax

	levelScore := 0.0
	if totalWeight > 0 {
		levelScore = levelSum / totalWeight / 100 * diversityLevelMax
	}

	byDomain := skills.Categorize(names)
	nonEmpty := 0
	analysis := make(map[skills.Domain]DomainStats, len(skills.DomainOrder))
	for _, d := range skills.DomainOrder {
		n := len(byDomain[d])
		analysis[d] = DomainStats{Available: n}
		if n > 0 {
			nonEmpty++
		}
	}
	diversityBonus := nonEmpty * diversityDomainPoints
	if diversityBonus > diversityDomainCap {
		diversityBonus = diversityDomainCap
	}

	score := int(math.Round(breadthScore + levelScore))
	score += diversityBonus
	if score > 100 {
		score = 100
	}

	return Result{
		Score:          score,
		Matched:        []string{},
		DomainBonus:    diversityBonus,
		DomainAnalysis: analysis,
	}
}
