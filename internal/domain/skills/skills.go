package skills

const (
	SourceProfile   = "profile"
	SourceInterview = "interview"
)

// Token is a skill as authored by a user: either a bare name or a name with a
// self-assessed proficiency level. Tokens are never compared directly; they go
// through Normalize first.
type Token struct {
	Name     string
	Level    int
	HasLevel bool
}

func RawToken(name string) Token {
	return Token{Name: name}
}

func LeveledToken(name string, level int) Token {
	return Token{Name: name, Level: level, HasLevel: true}
}

// Weighted is a canonical skill annotated with a confidence weight and its
// source. Profile-declared skills carry full weight; interview-inferred ones
// carry reduced weight. Recomputed per request, never persisted.
type Weighted struct {
	Name             string
	Source           string
	Weight           float64
	Level            int
	InterviewDerived bool
}

// FromNames wraps plain skill names as full-weight weighted skills, for
// callers that have no profile levels or interview history to merge.
func FromNames(names []string) []Weighted {
	out := make([]Weighted, 0, len(names))
	for _, n := range names {
		norm := Normalize(n)
		if norm == "" {
			continue
		}
		out = append(out, Weighted{
			Name:   norm,
			Source: SourceProfile,
			Weight: 1.0,
			Level:  defaultProfileLevel,
		})
	}
	return out
}

const (
	defaultProfileLevel   = 50
	defaultInterviewLevel = 40
)
