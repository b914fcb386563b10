package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finsights/argus/internal/core/model"
)

func sampleResults() []model.ScreeningResult {
	return []model.ScreeningResult{
		{
			Candidate: model.Candidate{URL: "https://www.sec.gov/action", Title: "Enforcement action"},
			Analysis: model.DeepAnalysis{
				Summary:          "Regulator fined the bank.",
				ReliabilityScore: 85,
				RelevancyScore:   90,
				KeyFindings:      []string{"$50M fine"},
				LegalStatus:      "Settled",
			},
			OverallScore: 89,
		},
		{
			Candidate: model.Candidate{URL: "https://example.com/mention", Title: "Brief mention"},
			Analysis: model.DeepAnalysis{
				Summary:          "Passing reference only.",
				ReliabilityScore: 60,
				RelevancyScore:   40,
			},
			OverallScore: 40,
		},
	}
}

func TestGenerateMarkdown(t *testing.T) {
	summary := model.SearchSummary{
		HasAdverseNews:   true,
		HighestRiskScore: 89,
		TotalArticles:    2,
		NarrativeSummary: "One confirmed enforcement action.",
	}

	md := GenerateMarkdown("Acme Bank", summary, sampleResults(), false)

	assert.Contains(t, md, "# Adverse News Report: Acme Bank")
	assert.Contains(t, md, "- **Adverse News Found**: Yes")
	assert.Contains(t, md, "- **Highest Risk Score**: 89.00/100")
	assert.Contains(t, md, "- **Number of Sources Analyzed**: 2")
	assert.Contains(t, md, "One confirmed enforcement action.")

	// Only the high-relevancy result contributes key findings.
	assert.Contains(t, md, "### High-Risk Findings:")
	assert.Contains(t, md, "- $50M fine")

	assert.Contains(t, md, "### 1. https://www.sec.gov/action")
	assert.Contains(t, md, "- **Legal Status**: Settled")
	assert.Contains(t, md, "### 2. https://example.com/mention")
	assert.NotContains(t, md, "page-break-before")
}

func TestGenerateMarkdown_ScoringExplanation(t *testing.T) {
	md := GenerateMarkdown("Acme Bank", model.SearchSummary{}, nil, true)

	assert.Contains(t, md, "page-break-before")
	assert.Contains(t, md, "## Understanding Our Two-Phase Analysis System")
}

func TestGenerateMarkdown_NoResults(t *testing.T) {
	summary := model.SearchSummary{NarrativeSummary: "No significant adverse news found for Acme Bank."}

	md := GenerateMarkdown("Acme Bank", summary, nil, false)

	assert.Contains(t, md, "- **Adverse News Found**: No")
	assert.Contains(t, md, "No high-risk findings identified.")
	assert.Contains(t, md, "- **Total Sources**: 0")
}

func TestGenerateMarkdown_SeparatorsBetweenResults(t *testing.T) {
	md := GenerateMarkdown("Acme Bank", model.SearchSummary{}, sampleResults(), false)

	// One separator between two results, none trailing.
	assert.Equal(t, 1, strings.Count(md, "\n---\n"))
}

func TestGenerateMarkdown_OmitsEmptyLegalStatus(t *testing.T) {
	results := sampleResults()[1:]
	md := GenerateMarkdown("Acme Bank", model.SearchSummary{}, results, false)

	assert.NotContains(t, md, "Legal Status")
}
