package skills

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// InterviewText is the free-form portion of a finalized interview the
// extractor scans for skill mentions. TechStack is a comma-delimited list.
type InterviewText struct {
	Role      string
	TechStack string
	Type      string
	Strengths []string
}

// compound-term heuristics, checked against the whole text regardless of the
// synonym scan. These catch high-value skills whose natural-language phrasing
// varies too much for the keyword tables alone.
var compoundTerms = []struct {
	skill string
	terms []string
}{
	{skill: "docker", terms: []string{"container", "containerized", "dockerfile", "container networking"}},
	{skill: "kubernetes", terms: []string{"k8s", "orchestration", "pod scheduling"}},
	{skill: "ci/cd", terms: []string{"continuous integration", "continuous delivery", "build pipeline"}},
	{skill: "machine learning", terms: []string{"model training", "neural network"}},
	{skill: "rest api", terms: []string{"restful", "api design", "api development"}},
}

// tokenFragments are substrings that mark a whitespace token as likely being
// a technology identifier during the generic pass.
var tokenFragments = []string{"js", "css", "api", "sql", "docker", "container"}

// Extractor derives normalized skills from unstructured interview text.
// It holds no state beyond a logger; every extraction is a pure function of
// its input.
type Extractor struct {
	log *zap.Logger
}

func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// FromInterviews extracts the deduplicated set of skills implied by a
// candidate's interview history. A malformed record never aborts the whole
// pass: failures are logged and extraction continues with the next record.
func (e *Extractor) FromInterviews(interviews []InterviewText) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for i, iv := range interviews {
		if err := e.extractOne(iv, add); err != nil {
			e.log.Warn("interview skill extraction failed, skipping record",
				zap.Int("interview_index", i),
				zap.Error(err),
			)
		}
	}
	return out
}

func (e *Extractor) extractOne(iv InterviewText, add func(string)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract interview: %v", r)
		}
	}()

	for _, s := range e.FromText(iv.Role) {
		add(s)
	}
	for _, part := range strings.Split(iv.TechStack, ",") {
		for _, s := range e.FromText(part) {
			add(s)
		}
	}
	for _, s := range e.FromText(iv.Type) {
		add(s)
	}
	for _, strength := range iv.Strengths {
		for _, s := range e.FromText(strength) {
			add(s)
		}
	}
	return nil
}

// FromText yields the normalized skills implied by one free-form string, in
// first-mention order, deduplicated. Three passes run over the lowercased
// text: a synonym-table scan, the unconditional compound-term heuristics, and
// a permissive generic-token pass. The generic pass trades false positives
// for recall on purpose; downstream scoring discounts interview-derived
// skills to weight 0.7 regardless, so over-generation is bounded in effect.
func (e *Extractor) FromText(text string) []string {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return nil
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, 4)
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, entry := range synonymTable {
		if strings.Contains(t, entry.canonical) {
			add(entry.canonical)
			continue
		}
		for _, syn := range entry.synonyms {
			if strings.Contains(t, syn) {
				add(entry.canonical)
				break
			}
		}
	}

	for _, c := range compoundTerms {
		for _, term := range c.terms {
			if strings.Contains(t, term) {
				add(c.skill)
				break
			}
		}
	}

	for _, tok := range strings.Fields(t) {
		tok = strings.Trim(tok, ".,;:()[]{}'\"")
		if !looksLikeSkillToken(tok) {
			continue
		}
		add(Normalize(tok))
	}

	return out
}

// looksLikeSkillToken keeps tokens of length >= 3 that resemble technology
// identifiers: dot-notation names, mixed alphanumerics, or tokens carrying a
// common tech fragment.
func looksLikeSkillToken(tok string) bool {
	if len(tok) < 3 {
		return false
	}
	if strings.Contains(tok, ".") {
		return true
	}
	var hasLetter, hasDigit bool
	for _, r := range tok {
		switch {
		case r >= 'a' && r <= 'z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if hasLetter && hasDigit {
		return true
	}
	for _, frag := range tokenFragments {
		if strings.Contains(tok, frag) {
			return true
		}
	}
	return false
}
