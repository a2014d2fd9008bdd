package skills

import "testing"

func TestNormalizeSynonyms(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ReactJS", "react"},
		{"react.js", "react"},
		{"NodeJS", "node.js"},
		{"node js", "node.js"},
		{"K8s", "kubernetes"},
		{"kube", "kubernetes"},
		{"Containerization", "docker"},
		{"container networking", "docker"},
		{"Postgres", "postgresql"},
		{"Amazon Web Services", "aws"},
		{"google cloud", "gcp"},
		{"CICD", "ci/cd"},
		{"continuous integration", "ci/cd"},
		{"  Golang  ", "golang"},
		{"ES6", "javascript"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeUnknownPassthrough(t *testing.T) {
	if got := Normalize("  Elixir "); got != "elixir" {
		t.Fatalf("Normalize unknown = %q, want %q", got, "elixir")
	}
	if got := Normalize(""); got != "" {
		t.Fatalf("Normalize empty = %q, want empty", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"ReactJS", "Containerized", "k8s", "Vue.js", "some unknown skill", "typescript", "javascript"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

// Every canonical in the table must normalize to itself even when another
// entry's synonym is a substring of it.
func TestNormalizeCanonicalsStable(t *testing.T) {
	for _, e := range synonymTable {
		if got := Normalize(e.canonical); got != e.canonical {
			t.Errorf("Normalize(%q) = %q, canonical should map to itself", e.canonical, got)
		}
	}
}

func TestNormalizeTokens(t *testing.T) {
	in := []Token{RawToken("ReactJS"), RawToken(""), RawToken("  "), LeveledToken("k8s", 80)}
	got := NormalizeTokens(in)
	want := []string{"react", "kubernetes"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeTokens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NormalizeTokens[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
