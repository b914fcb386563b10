// Package triage implements the cheap heuristic pre-filter that decides
// which candidates are worth an LLM analysis.
package triage

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/finsights/argus/internal/core/lexicon"
	"github.com/finsights/argus/internal/core/model"
)

// Composite weighting. The three weights must sum to 1.0; the preliminary
// risk-term score dominates, domain trust and recency refine it.
const (
	WeightPreliminary = 0.6
	WeightDomain      = 0.25
	WeightRecency     = 0.15
)

// Own-domain content below this preliminary score is treated as
// self-published boilerplate and suppressed entirely.
const selfPublishedCutoff = 20

// Scorer computes QuickScores. Now is injectable for recency tests.
type Scorer struct {
	OwnDomains []string
	Now        func() time.Time
}

func NewScorer(ownDomains []string) *Scorer {
	return &Scorer{OwnDomains: ownDomains, Now: time.Now}
}

// Score triages one fetched candidate without any LLM call.
func (s *Scorer) Score(fc model.FetchedContent) model.QuickScore {
	content := strings.ToLower(fc.RawText)
	urlLower := strings.ToLower(fc.Candidate.URL)

	preliminary, isPolicy := preliminaryScore(content)
	domain := domainScore(urlLower)

	// Self-published pages carry no authority unless they confirm an
	// incident (which shows up as a higher preliminary score).
	if s.matchesOwnDomain(urlLower) && preliminary < selfPublishedCutoff {
		preliminary = 0
		domain = 0
		isPolicy = true
	}

	recency := s.recencyScore(fc.Candidate.URL, fc.RawText, fc.Candidate.PublishedDate)

	composite := clamp(WeightPreliminary*preliminary + WeightDomain*domain + WeightRecency*recency)

	return model.QuickScore{
		PreliminaryScore: clamp(preliminary),
		DomainScore:      clamp(domain),
		RecencyScore:     clamp(recency),
		CompositeScore:   composite,
		PolicyDocument:   isPolicy,
	}
}

func (s *Scorer) matchesOwnDomain(urlLower string) bool {
	for _, d := range s.OwnDomains {
		if d != "" && strings.Contains(urlLower, strings.ToLower(d)) {
			return true
		}
	}
	return false
}

// preliminaryScore weighs risk terms in context. A pure policy document
// scores zero no matter how dense its vocabulary is; that is the precision
// measure against compliance boilerplate.
func preliminaryScore(content string) (float64, bool) {
	if isPolicyDocument(content) && !reportsIncident(content) {
		return 0, true
	}

	var score float64
	for term, weight := range lexicon.RiskTerms {
		confirmed := false
		for _, ctx := range lexicon.NegativeContexts(term) {
			if ctx.MatchString(content) {
				score += weight * 2
				confirmed = true
				break
			}
		}
		if !confirmed && strings.Contains(content, term) {
			score += weight * 0.5
		}
	}
	return clamp(score), false
}

func isPolicyDocument(content string) bool {
	for _, p := range lexicon.PolicyPatterns {
		if p.MatchString(content) {
			return true
		}
	}
	return false
}

func reportsIncident(content string) bool {
	for _, p := range lexicon.IncidentPatterns {
		if p.MatchString(content) {
			return true
		}
	}
	return false
}

func domainScore(urlLower string) float64 {
	switch {
	case strings.Contains(urlLower, ".gov"):
		return lexicon.DomainScoreGov
	case strings.Contains(urlLower, ".org"):
		return lexicon.DomainScoreOrg
	case isMajorNews(urlLower):
		return lexicon.DomainScoreMajorNews
	case strings.Contains(urlLower, ".com"), strings.Contains(urlLower, ".net"):
		return lexicon.DomainScoreCom
	default:
		return lexicon.DomainScoreDefault
	}
}

func isMajorNews(urlLower string) bool {
	for _, d := range lexicon.MajorNewsDomains {
		if strings.Contains(urlLower, d) {
			return true
		}
	}
	return false
}

// Date patterns checked in the URL path first, then in the content.
var (
	urlDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`/(20\d{2}/\d{2}/\d{2})/`),
		regexp.MustCompile(`/(20\d{2}-\d{2}-\d{2})/`),
	}
	contentDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+20\d{2}`),
		regexp.MustCompile(`20\d{2}-\d{2}-\d{2}`),
	}
	dateLayouts = []string{"2006/01/02", "2006-01-02", "January 2, 2006"}
)

// ExtractDate finds a publication date in the URL path or the content.
// The zero time means no date was found.
func ExtractDate(rawURL, content string) time.Time {
	for _, p := range urlDatePatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			if t, ok := parseDate(m[1]); ok {
				return t
			}
		}
	}
	for _, p := range contentDatePatterns {
		if m := p.FindString(content); m != "" {
			if t, ok := parseDate(m); ok {
				return t
			}
		}
	}
	return time.Time{}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// recencyScore decays 15 points per year of age. Unknown recency is neutral,
// not penalized past the default.
func (s *Scorer) recencyScore(rawURL, content string, published *time.Time) float64 {
	date := time.Time{}
	if published != nil {
		date = *published
	}
	if date.IsZero() {
		date = ExtractDate(rawURL, content)
	}
	if date.IsZero() {
		return 50
	}
	daysOld := s.Now().Sub(date).Hours() / 24
	if daysOld < 0 {
		daysOld = 0
	}
	score := 100 - (daysOld/365)*15
	if score < 0 {
		return 0
	}
	return score
}

// Scored pairs fetched content with its quick score for ranking.
type Scored struct {
	Content model.FetchedContent
	Quick   model.QuickScore
}

// SelectTop keeps candidates at or above the composite threshold, ranks them
// descending by composite score (ties retain encounter order) and truncates
// to the top n.
func SelectTop(scored []Scored, minComposite float64, n int) []Scored {
	kept := make([]Scored, 0, len(scored))
	for _, s := range scored {
		if s.Quick.CompositeScore >= minComposite {
			kept = append(kept, s)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Quick.CompositeScore > kept[j].Quick.CompositeScore
	})

	if n > 0 && len(kept) > n {
		kept = kept[:n]
	}
	return kept
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
