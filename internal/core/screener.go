// Package core orchestrates one adverse-media screening run from query
// construction through aggregation.
package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/finsights/argus/internal/config"
	"github.com/finsights/argus/internal/core/aggregate"
	"github.com/finsights/argus/internal/core/analysis"
	"github.com/finsights/argus/internal/core/lexicon"
	"github.com/finsights/argus/internal/core/model"
	"github.com/finsights/argus/internal/core/query"
	"github.com/finsights/argus/internal/core/triage"
	"github.com/finsights/argus/internal/fetch"
	"github.com/finsights/argus/internal/history"
	"github.com/finsights/argus/internal/search"
)

// SearchParams are the caller-supplied knobs for one run. Zero values fall
// back to the configured defaults.
type SearchParams struct {
	Entity     string
	Months     int
	NumResults int
	MinScore   float64
}

// Screener wires the collaborators together. All state is request-scoped;
// the struct itself is safe for concurrent runs.
type Screener struct {
	Searcher   search.Searcher
	Fetcher    fetch.Fetcher
	Analyzer   *analysis.Analyzer
	Aggregator *aggregate.Aggregator
	History    *history.Store
	Cfg        *config.Config
	Log        *logrus.Logger
}

func NewScreener(searcher search.Searcher, fetcher fetch.Fetcher, analyzer *analysis.Analyzer,
	aggregator *aggregate.Aggregator, hist *history.Store, cfg *config.Config, log *logrus.Logger) *Screener {
	return &Screener{
		Searcher:   searcher,
		Fetcher:    fetcher,
		Analyzer:   analyzer,
		Aggregator: aggregator,
		History:    hist,
		Cfg:        cfg,
		Log:        log,
	}
}

// RunSearch executes the full pipeline for one entity. Per-candidate
// failures are logged and dropped; only an unusable request or a failed
// search call surfaces as an error.
func (s *Screener) RunSearch(ctx context.Context, p SearchParams) (model.RunReport, error) {
	entity := strings.TrimSpace(p.Entity)
	if entity == "" {
		return model.RunReport{}, fmt.Errorf("entity name must not be empty")
	}
	if p.NumResults <= 0 {
		p.NumResults = 10
	}
	if p.MinScore <= 0 {
		p.MinScore = s.Cfg.Pipeline.MinCompositeScore
	}

	runID := uuid.New().String()
	log := s.Log.WithFields(logrus.Fields{"run_id": runID, "entity": entity})

	q := query.Build(entity, p.Months)
	maxInitial := s.Cfg.Search.MaxInitialResults
	if want := p.NumResults * 2; want < maxInitial {
		maxInitial = want
	}

	candidates, err := s.Searcher.Search(ctx, q, maxInitial, p.Months)
	if err != nil {
		return model.RunReport{}, fmt.Errorf("search failed: %w", err)
	}
	log.WithField("candidates", len(candidates)).Info("search returned")

	candidates = filterRelevant(entity, candidates, log)

	scored := s.fetchAndScore(ctx, entity, candidates, log)
	survivors := triage.SelectTop(scored, p.MinScore, p.NumResults)
	log.WithFields(logrus.Fields{"scored": len(scored), "survivors": len(survivors)}).
		Info("triage complete")

	results := s.analyze(ctx, survivors, log)
	aggregate.SortByScore(results)

	report := model.RunReport{
		RunID:   runID,
		Entity:  entity,
		Summary: s.Aggregator.Summarize(ctx, entity, results),
		Results: results,
	}

	if s.History != nil {
		if err := s.History.SaveRun(ctx, report, p.Months); err != nil {
			log.WithError(err).Warn("failed to persist run history")
		}
	}

	return report, nil
}

// filterRelevant keeps candidates that actually mention the institution and
// drops individual employment-dispute results.
func filterRelevant(entity string, candidates []model.Candidate, log *logrus.Entry) []model.Candidate {
	needle := strings.ToLower(entity)
	kept := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		title := strings.ToLower(c.Title)
		snippet := strings.ToLower(c.Snippet)
		if !strings.Contains(title, needle) && !strings.Contains(snippet, needle) {
			log.WithField("url", c.URL).Debug("dropped: institution name not found")
			continue
		}
		if containsExcludedPhrase(title) || containsExcludedPhrase(snippet) {
			log.WithField("url", c.URL).Debug("dropped: exclusion phrase")
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func containsExcludedPhrase(text string) bool {
	for _, p := range lexicon.ExcludePhrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// fetchAndScore pulls and triages candidates with a bounded fan-out.
// Results land in an index-addressed slice so the outcome is independent of
// completion order.
func (s *Screener) fetchAndScore(ctx context.Context, entity string, candidates []model.Candidate, log *logrus.Entry) []triage.Scored {
	scorer := triage.NewScorer(s.ownDomains(entity))

	slots := make([]*triage.Scored, len(candidates))
	sem := make(chan struct{}, s.Cfg.Pipeline.MaxConcurrency)
	var wg sync.WaitGroup

	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c model.Candidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			text, err := s.Fetcher.Fetch(ctx, c.URL)
			if err != nil {
				log.WithError(err).WithField("url", c.URL).Warn("fetch failed, dropping candidate")
				return
			}

			fc := model.FetchedContent{Candidate: c, RawText: text}
			quick := scorer.Score(fc)
			slots[i] = &triage.Scored{Content: fc, Quick: quick}
		}(i, c)
	}
	wg.Wait()

	scored := make([]triage.Scored, 0, len(candidates))
	for _, s := range slots {
		if s != nil {
			scored = append(scored, *s)
		}
	}
	return scored
}

// analyze runs the deep analysis fan-out over the triage survivors and
// derives overall scores for the accepted verdicts.
func (s *Screener) analyze(ctx context.Context, survivors []triage.Scored, log *logrus.Entry) []model.ScreeningResult {
	slots := make([]*model.ScreeningResult, len(survivors))
	sem := make(chan struct{}, s.Cfg.Pipeline.MaxConcurrency)
	var wg sync.WaitGroup

	for i, sv := range survivors {
		wg.Add(1)
		go func(i int, sv triage.Scored) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			verdict, accepted := s.Analyzer.Analyze(ctx, sv.Content.RawText, sv.Content.Candidate.URL, nil)
			if !accepted {
				log.WithField("url", sv.Content.Candidate.URL).Info("dropped: below acceptance thresholds")
				return
			}

			slots[i] = &model.ScreeningResult{
				Candidate:    sv.Content.Candidate,
				Quick:        sv.Quick,
				Analysis:     verdict,
				OverallScore: aggregate.Overall(verdict.RelevancyScore, verdict.ReliabilityScore),
			}
		}(i, sv)
	}
	wg.Wait()

	results := make([]model.ScreeningResult, 0, len(survivors))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

// ownDomains derives the institution's likely own-domain needle from its
// name and appends any configured extras.
func (s *Screener) ownDomains(entity string) []string {
	needle := strings.ToLower(strings.ReplaceAll(entity, " ", ""))
	domains := []string{needle}
	return append(domains, s.Cfg.Pipeline.OwnDomains...)
}
