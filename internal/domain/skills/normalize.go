package skills

import "strings"

type synonymEntry struct {
	canonical string
	synonyms  []string
}

// synonymTable maps canonical skill names to accepted synonyms. The table is
// an ordered slice, not a map: the first entry that matches wins, and that
// precedence is part of the contract. Reordering entries changes how ambiguous
// tokens resolve, which changes match scores downstream.
var synonymTable = []synonymEntry{
	{canonical: "react", synonyms: []string{"reactjs", "react.js"}},
	{canonical: "vue", synonyms: []string{"vuejs", "vue.js"}},
	{canonical: "angular", synonyms: []string{"angularjs"}},
	{canonical: "node.js", synonyms: []string{"nodejs", "node js"}},
	{canonical: "next.js", synonyms: []string{"nextjs"}},
	{canonical: "typescript", synonyms: []string{"ts"}},
	{canonical: "javascript", synonyms: []string{"js", "ecmascript", "es6"}},
	{canonical: "python", synonyms: []string{"python3"}},
	{canonical: "golang", synonyms: []string{"go lang", "go-lang"}},
	{canonical: "java", synonyms: []string{"jvm"}},
	{canonical: "c#", synonyms: []string{"csharp", "dotnet", ".net"}},
	{canonical: "docker", synonyms: []string{"container", "containerized", "containerization", "dockerfile", "container networking"}},
	{canonical: "kubernetes", synonyms: []string{"k8s", "kube"}},
	{canonical: "terraform", synonyms: []string{"infrastructure as code", "iac"}},
	{canonical: "ci/cd", synonyms: []string{"cicd", "continuous integration", "continuous delivery", "jenkins pipeline"}},
	{canonical: "aws", synonyms: []string{"amazon web services"}},
	{canonical: "gcp", synonyms: []string{"google cloud"}},
	{canonical: "postgresql", synonyms: []string{"postgres", "psql"}},
	{canonical: "mongodb", synonyms: []string{"mongo"}},
	{canonical: "redis", synonyms: []string{"redis cache"}},
	{canonical: "graphql", synonyms: []string{"graph ql"}},
	{canonical: "rest api", synonyms: []string{"restful", "rest apis"}},
	{canonical: "machine learning", synonyms: []string{"ml models", "deep learning"}},
	{canonical: "css", synonyms: []string{"css3", "scss", "sass"}},
	{canonical: "html", synonyms: []string{"html5"}},
	{canonical: "sql", synonyms: []string{"tsql", "plsql"}},
	{canonical: "git", synonyms: []string{"github", "gitlab", "version control"}},
}

// Normalize canonicalizes a raw skill token: lowercase, trimmed, resolved
// against the synonym table. An exact canonical hit is checked across the
// whole table before any fuzzy pass so that normalizing an already-canonical
// name always returns it unchanged (Normalize is idempotent). The fuzzy pass
// uses substring containment in either direction; the first matching entry
// wins. Unknown tokens come back trimmed and lowercased rather than as an
// error, so they stay usable for literal-equality matching.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	for _, e := range synonymTable {
		if s == e.canonical {
			return e.canonical
		}
	}

	for _, e := range synonymTable {
		for _, syn := range e.synonyms {
			if strings.Contains(s, syn) || strings.Contains(syn, s) {
				return e.canonical
			}
		}
	}

	return s
}

// NormalizeTokens normalizes profile tokens, dropping empties. Output order
// follows input order.
func NormalizeTokens(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		n := Normalize(t.Name)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
