package skills

const (
	profileWeight     = 1.0
	interviewWeight   = 0.7
	interviewBoost    = 0.3
	maxWeight         = 1.0
	maxProficiencyInt = 100
	minProficiencyInt = 0
)

// Merge unifies declared profile skills with skills inferred from interview
// history into one weighted set. Profile skills enter first, in input order,
// at full weight; interview skills then either boost an existing entry
// (capped at 1.0, flagged interview-derived) or append a new reduced-weight
// entry. Output order is first-insertion order, which keeps downstream match
// scanning deterministic.
func Merge(profile []Token, interviewSkills []string) []Weighted {
	index := make(map[string]int, len(profile)+len(interviewSkills))
	out := make([]Weighted, 0, len(profile)+len(interviewSkills))

	for _, tok := range profile {
		name := Normalize(tok.Name)
		if name == "" {
			continue
		}
		if _, ok := index[name]; ok {
			continue
		}
		level := defaultProfileLevel
		if tok.HasLevel {
			level = clampLevel(tok.Level)
		}
		index[name] = len(out)
		out = append(out, Weighted{
			Name:   name,
			Source: SourceProfile,
			Weight: profileWeight,
			Level:  level,
		})
	}

	for _, raw := range interviewSkills {
		name := Normalize(raw)
		if name == "" {
			continue
		}
		if i, ok := index[name]; ok {
			w := out[i].Weight + interviewBoost
			if w > maxWeight {
				w = maxWeight
			}
			out[i].Weight = w
			out[i].InterviewDerived = true
			continue
		}
		index[name] = len(out)
		out = append(out, Weighted{
			Name:             name,
			Source:           SourceInterview,
			Weight:           interviewWeight,
			Level:            defaultInterviewLevel,
			InterviewDerived: true,
		})
	}

	return out
}

func clampLevel(v int) int {
	if v < minProficiencyInt {
		return minProficiencyInt
	}
	if v > maxProficiencyInt {
		return maxProficiencyInt
	}
	return v
}
