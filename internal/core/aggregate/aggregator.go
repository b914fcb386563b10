// Package aggregate combines per-candidate verdicts into final risk scores
// and the run-level summary.
package aggregate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/finsights/argus/internal/core/model"
	"github.com/finsights/argus/internal/llm"
)

// Overall-score composition. Relevancy below the gate passes through
// unchanged so high reliability alone can never inflate the score of
// non-relevant content.
const (
	relevancyGate     = 50
	weightRelevancy   = 0.8
	weightReliability = 0.2
)

const narrativeFallback = "Error generating summary"

// Overall derives the final 0-100 risk score from a validated analysis.
// It is monotonic non-decreasing in both inputs above the gate and always
// lands in [0,100].
func Overall(relevancy, reliability int) float64 {
	if relevancy < relevancyGate {
		return float64(relevancy)
	}
	score := weightRelevancy*float64(relevancy) + weightReliability*float64(reliability)
	if score > 100 {
		return 100
	}
	return score
}

// SortByScore orders results descending by overall score. The sort is
// stable: ties retain encounter order regardless of how the fan-out
// completed.
func SortByScore(results []model.ScreeningResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
}

// Aggregator rolls accepted analyses up into a SearchSummary.
type Aggregator struct {
	LLM             llm.LLMClient
	NarrativePrompt string
	TopN            int
	Log             *logrus.Logger
}

func NewAggregator(client llm.LLMClient, narrativePrompt string, topN int, log *logrus.Logger) *Aggregator {
	return &Aggregator{
		LLM:             client,
		NarrativePrompt: narrativePrompt,
		TopN:            topN,
		Log:             log,
	}
}

// Summarize computes the numeric rollup and asks the LLM for a short
// narrative over the top-scored results. Narrative failure never blocks the
// numeric fields.
func (a *Aggregator) Summarize(ctx context.Context, entity string, results []model.ScreeningResult) model.SearchSummary {
	summary := model.SearchSummary{
		HasAdverseNews: len(results) > 0,
		TotalArticles:  len(results),
	}
	if len(results) == 0 {
		summary.NarrativeSummary = fmt.Sprintf("No significant adverse news found for %s within the specified criteria.", entity)
		return summary
	}

	for _, r := range results {
		if r.OverallScore > summary.HighestRiskScore {
			summary.HighestRiskScore = r.OverallScore
		}
	}

	narrative, err := a.narrative(ctx, entity, results)
	if err != nil {
		a.Log.WithError(err).Warn("narrative summary generation failed")
		narrative = narrativeFallback
	}
	summary.NarrativeSummary = narrative
	return summary
}

func (a *Aggregator) narrative(ctx context.Context, entity string, results []model.ScreeningResult) (string, error) {
	ranked := make([]model.ScreeningResult, len(results))
	copy(ranked, results)
	SortByScore(ranked)

	topN := a.TopN
	if topN <= 0 {
		topN = 5
	}
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	var b strings.Builder
	for i, r := range ranked {
		fmt.Fprintf(&b, "%d. [score %.0f] %s: %s\n", i+1, r.OverallScore, r.Candidate.Title, r.Analysis.Summary)
	}

	tmpl := a.NarrativePrompt
	if tmpl == "" {
		tmpl = defaultNarrativePrompt
	}
	prompt := fmt.Sprintf(tmpl, entity, b.String())

	response, err := a.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	response = strings.TrimSpace(response)
	if response == "" {
		return "", fmt.Errorf("empty narrative response")
	}
	return response, nil
}

const defaultNarrativePrompt = `You are a financial crime compliance analyst. The following are the highest-risk adverse news findings for %s:

%s

Write a 2-3 sentence synthesis of the overall adverse news picture. Mention the most serious confirmed findings first. Respond with plain text only.`
