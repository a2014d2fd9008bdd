package skills

import "strings"

// Domain is a coarse technology category used to bucket skills for alignment
// bonuses and diversity scoring.
type Domain string

const (
	DomainFrontend Domain = "frontend"
	DomainBackend  Domain = "backend"
	DomainData     Domain = "data"
	DomainMobile   Domain = "mobile"
	DomainDevOps   Domain = "devops"
	DomainGeneral  Domain = "general"
)

// DomainOrder is the classification order. The first domain whose keyword
// list matches a skill claims it, so this order is part of the contract the
// same way synonymTable order is.
var DomainOrder = []Domain{
	DomainFrontend,
	DomainBackend,
	DomainData,
	DomainMobile,
	DomainDevOps,
	DomainGeneral,
}

var domainKeywords = map[Domain][]string{
	DomainFrontend: {
		"react", "vue", "angular", "next.js", "javascript", "typescript",
		"css", "html", "sass", "webpack", "frontend", "ui", "ux", "tailwind",
	},
	DomainBackend: {
		"node.js", "express", "django", "flask", "spring", "golang", "java",
		"php", "ruby", "c#", "rest api", "graphql", "microservice", "backend",
		"server", "api", "python",
	},
	DomainData: {
		"sql", "postgresql", "mysql", "mongodb", "redis", "pandas", "numpy",
		"machine learning", "spark", "etl", "data", "analytics", "warehouse",
	},
	DomainMobile: {
		"react native", "flutter", "swift", "kotlin", "ios", "android", "mobile",
	},
	DomainDevOps: {
		"docker", "kubernetes", "terraform", "ci/cd", "aws", "gcp", "azure",
		"linux", "devops", "cloud", "infrastructure", "monitoring", "git",
	},
	DomainGeneral: {},
}

// Categorize buckets normalized skills into domains. Membership is tested by
// substring containment in either direction against each domain's keyword
// list, walking DomainOrder; unmatched skills land in GENERAL. The result
// always carries every domain key, possibly with an empty slice.
func Categorize(names []string) map[Domain][]string {
	out := make(map[Domain][]string, len(DomainOrder))
	for _, d := range DomainOrder {
		out[d] = []string{}
	}

	for _, name := range names {
		if name == "" {
			continue
		}
		d := classify(name)
		out[d] = append(out[d], name)
	}
	return out
}

// ClassifyOne reports the domain a single normalized skill belongs to.
func ClassifyOne(name string) Domain {
	if name == "" {
		return DomainGeneral
	}
	return classify(name)
}

func classify(name string) Domain {
	for _, d := range DomainOrder {
		for _, kw := range domainKeywords[d] {
			if strings.Contains(name, kw) || strings.Contains(kw, name) {
				return d
			}
		}
	}
	return DomainGeneral
}
