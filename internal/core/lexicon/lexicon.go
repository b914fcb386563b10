// Package lexicon holds the static adverse-media vocabulary: risk-term
// weights, domain-trust priorities and the regex tables used to separate
// policy boilerplate from reported incidents.
package lexicon

import "regexp"

// RiskTerms maps adverse-news terms to severity weights used by the quick
// scorer. Weights are doubled when a term appears in a confirmed-negative
// context and halved when it is merely present.
var RiskTerms = map[string]float64{
	"fine":          10,
	"penalty":       10,
	"million":       8,
	"billion":       9,
	"investigation": 8,
	"fraud":         12,
	"laundering":    12,
	"criminal":      10,
	"illegal":       9,
	"violation":     8,
	"sanction":      10,
	"lawsuit":       9,
	"court":         8,
	"regulatory":    7,
	"enforcement":   9,
	"breach":        8,
	"misconduct":    9,
	"allegation":    7,
	"charged":       10,
	"guilty":        11,
	"convicted":     11,
	"settlement":    9,
	"probe":         7,
	"scandal":       9,
}

// QueryTerms are the adverse-news literals OR-joined into the search query.
var QueryTerms = []string{
	"launder", "fraud", "terroris", "crime", "convict",
	"smuggle", "embezzle", "investigate", "bribe", "corrupt",
	"enforcement", "violate", "sanction", "cartel", "breach",
	"suspected", "illegal", "scandal", "allegation", "prosecute",
	`"court case"`, "fined", "guilt", "traffick", "miscond",
	`"tax evasion"`, "ICIJ",
}

// Domain-trust scores. Government sources outrank everything; self-published
// corporate pages bottom out via the own-domain suppression in the scorer.
const (
	DomainScoreGov       = 100
	DomainScoreMajorNews = 90
	DomainScoreOrg       = 80
	DomainScoreCom       = 60
	DomainScoreDefault   = 40
)

// MajorNewsDomains are outlets trusted above generic .com sources.
var MajorNewsDomains = []string{
	"reuters.com", "bloomberg.com", "ft.com", "wsj.com",
	"nytimes.com", "forbes.com", "cnbc.com", "financial-news.co.uk",
}

// ExcludePhrases mark results about individual employment disputes rather
// than institutional misconduct.
var ExcludePhrases = []string{
	"former employee",
	"ex-employee",
	"claimant",
	"plaintiff",
}

// PolicyPatterns signal a compliance or policy document. A match forces the
// incident check below before any risk weight is assigned.
var PolicyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`compliance\s+policy`),
	regexp.MustCompile(`risk\s+management`),
	regexp.MustCompile(`governance`),
	regexp.MustCompile(`our\s+commitment`),
	regexp.MustCompile(`we\s+ensure`),
	regexp.MustCompile(`our\s+approach`),
	regexp.MustCompile(`our\s+policy`),
	regexp.MustCompile(`our\s+framework`),
	regexp.MustCompile(`prevention\s+of`),
	regexp.MustCompile(`controls?\s+and\s+procedures`),
}

// IncidentPatterns signal that a policy-flavored page actually reports an
// incident, which re-enables term scoring.
var IncidentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(was|were)\s+(fined|penalized|sanctioned)`),
	regexp.MustCompile(`(found|discovered)\s+(violation|breach|misconduct)`),
	regexp.MustCompile(`investigation\s+revealed`),
	regexp.MustCompile(`regulatory\s+action\s+taken`),
	regexp.MustCompile(`enforcement\s+action`),
	regexp.MustCompile(`failed\s+to\s+comply`),
}

// NegativeContexts builds the proximity patterns that confirm a risk term is
// reported as an actual finding rather than mentioned in passing. The term is
// interpolated literally, so it must be quoted.
func NegativeContexts(term string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(term)
	return []*regexp.Regexp{
		regexp.MustCompile(quoted + `.+(found|discovered|revealed|confirmed|proven)`),
		regexp.MustCompile(quoted + `.+(investigation|prosecution|penalty|fine)`),
		regexp.MustCompile(`(involved|engaged)\s+in\s+` + quoted),
		regexp.MustCompile(`(evidence|proof)\s+of\s+` + quoted),
	}
}

// PolicyIndicators map document-type phrases to a human-readable description
// used when the deep analyzer downgrades a borderline score to zero.
var PolicyIndicators = map[string]string{
	"policy":                "internal policy document",
	"procedure":             "procedural document",
	"terms and conditions":  "terms and conditions document",
	"privacy notice":        "privacy notice",
	"compliance statement":  "compliance document",
	"code of conduct":       "code of conduct document",
	"annual report":         "annual report",
	"corporate governance":  "corporate governance document",
	"regulatory disclosure": "regulatory disclosure document",
}
