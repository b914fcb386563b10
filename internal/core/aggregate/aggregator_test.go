package aggregate

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/finsights/argus/internal/core/model"
)

type mockLLM struct {
	Response string
	Err      error
	Prompt   string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *mockLLM) GenerateWithSystem(ctx context.Context, system, prompt string) (string, error) {
	return m.Generate(ctx, prompt)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestOverall_BelowGatePassesThrough(t *testing.T) {
	assert.Equal(t, float64(40), Overall(40, 90))
	assert.Equal(t, float64(0), Overall(0, 100))
	assert.Equal(t, float64(49), Overall(49, 100))
}

func TestOverall_WeightedAboveGate(t *testing.T) {
	assert.InDelta(t, 74, Overall(80, 50), 1e-9)
	assert.InDelta(t, 50, Overall(50, 50), 1e-9)
	assert.InDelta(t, 100, Overall(100, 100), 1e-9)
}

func TestOverall_NeverExceedsHundred(t *testing.T) {
	for relevancy := 50; relevancy <= 100; relevancy += 10 {
		for reliability := 0; reliability <= 100; reliability += 20 {
			score := Overall(relevancy, reliability)
			assert.LessOrEqual(t, score, float64(100))
			assert.GreaterOrEqual(t, score, float64(0))
		}
	}
}

func resultWith(url string, score float64) model.ScreeningResult {
	return model.ScreeningResult{
		Candidate:    model.Candidate{URL: url, Title: url},
		OverallScore: score,
	}
}

func TestSortByScore_StableDescending(t *testing.T) {
	results := []model.ScreeningResult{
		resultWith("a", 40),
		resultWith("b", 90),
		resultWith("c", 90),
		resultWith("d", 10),
	}

	SortByScore(results)

	assert.Equal(t, "b", results[0].Candidate.URL)
	assert.Equal(t, "c", results[1].Candidate.URL)
	assert.Equal(t, "a", results[2].Candidate.URL)
	assert.Equal(t, "d", results[3].Candidate.URL)
}

func TestSummarize_NoResults(t *testing.T) {
	a := NewAggregator(&mockLLM{}, "", 5, testLogger())

	summary := a.Summarize(context.Background(), "Acme Bank", nil)

	assert.False(t, summary.HasAdverseNews)
	assert.Equal(t, 0, summary.TotalArticles)
	assert.Equal(t, float64(0), summary.HighestRiskScore)
	assert.Contains(t, summary.NarrativeSummary, "No significant adverse news found for Acme Bank")
}

func TestSummarize_Rollup(t *testing.T) {
	llm := &mockLLM{Response: "Two enforcement actions were confirmed."}
	a := NewAggregator(llm, "", 5, testLogger())

	results := []model.ScreeningResult{resultWith("a", 74), resultWith("b", 91)}
	summary := a.Summarize(context.Background(), "Acme Bank", results)

	assert.True(t, summary.HasAdverseNews)
	assert.Equal(t, 2, summary.TotalArticles)
	assert.Equal(t, float64(91), summary.HighestRiskScore)
	assert.Equal(t, "Two enforcement actions were confirmed.", summary.NarrativeSummary)
}

func TestSummarize_NarrativeFailureKeepsNumbers(t *testing.T) {
	llm := &mockLLM{Err: fmt.Errorf("model unavailable")}
	a := NewAggregator(llm, "", 5, testLogger())

	results := []model.ScreeningResult{resultWith("a", 74)}
	summary := a.Summarize(context.Background(), "Acme Bank", results)

	assert.True(t, summary.HasAdverseNews)
	assert.Equal(t, 1, summary.TotalArticles)
	assert.Equal(t, float64(74), summary.HighestRiskScore)
	assert.Equal(t, "Error generating summary", summary.NarrativeSummary)
}

func TestSummarize_NarrativeUsesTopN(t *testing.T) {
	llm := &mockLLM{Response: "summary"}
	a := NewAggregator(llm, "", 2, testLogger())

	results := []model.ScreeningResult{
		resultWith("low", 10),
		resultWith("high", 95),
		resultWith("mid", 60),
	}
	a.Summarize(context.Background(), "Acme Bank", results)

	assert.Contains(t, llm.Prompt, "high")
	assert.Contains(t, llm.Prompt, "mid")
	assert.NotContains(t, llm.Prompt, "low")
}
