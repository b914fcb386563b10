// Package report renders aggregated screening results as a markdown
// document. Styling and PDF conversion live with the caller.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/finsights/argus/internal/core/model"
)

// GenerateMarkdown builds the adverse-news report. It depends only on the
// aggregator's output shape; extra fields on the results are ignored.
func GenerateMarkdown(entity string, summary model.SearchSummary, results []model.ScreeningResult, includeScoringExplanation bool) string {
	var b strings.Builder

	writeHeader(&b, entity, summary)
	writeKeyFindings(&b, results)
	writeDetailedAnalysis(&b, results)
	writeMetadata(&b, len(results))

	if includeScoringExplanation {
		b.WriteString("\n\n<div style='page-break-before: always;'></div>\n\n")
		b.WriteString(scoringExplanation)
	}

	return b.String()
}

func writeHeader(b *strings.Builder, entity string, summary model.SearchSummary) {
	fmt.Fprintf(b, "# Adverse News Report: %s\n\n", entity)
	b.WriteString("## Risk Assessment Summary\n")
	fmt.Fprintf(b, "- **Institution**: %s\n", entity)
	fmt.Fprintf(b, "- **Adverse News Found**: %s\n", yesNo(summary.HasAdverseNews))
	fmt.Fprintf(b, "- **Highest Risk Score**: %.2f/100\n", summary.HighestRiskScore)
	fmt.Fprintf(b, "- **Number of Sources Analyzed**: %d\n", summary.TotalArticles)
	if summary.NarrativeSummary != "" {
		fmt.Fprintf(b, "\n%s\n", summary.NarrativeSummary)
	}
}

func writeKeyFindings(b *strings.Builder, results []model.ScreeningResult) {
	b.WriteString("\n## Key Findings Summary\n")

	var highRisk []string
	for _, r := range results {
		if r.Analysis.RelevancyScore > 70 {
			highRisk = append(highRisk, r.Analysis.KeyFindings...)
		}
	}

	if len(highRisk) == 0 {
		b.WriteString("\nNo high-risk findings identified.\n")
		return
	}

	b.WriteString("\n### High-Risk Findings:\n")
	for _, f := range highRisk {
		fmt.Fprintf(b, "- %s\n", f)
	}
}

func writeDetailedAnalysis(b *strings.Builder, results []model.ScreeningResult) {
	b.WriteString("\n## Detailed Source Analysis\n")

	for i, r := range results {
		fmt.Fprintf(b, "\n### %d. %s\n", i+1, r.Candidate.URL)
		fmt.Fprintf(b, "- **Overall Risk Score**: %.2f\n", r.OverallScore)
		fmt.Fprintf(b, "- **Reliability Score**: %d\n", r.Analysis.ReliabilityScore)
		fmt.Fprintf(b, "- **Relevancy Score**: %d\n", r.Analysis.RelevancyScore)
		if r.Analysis.LegalStatus != "" {
			fmt.Fprintf(b, "- **Legal Status**: %s\n", r.Analysis.LegalStatus)
		}
		fmt.Fprintf(b, "\n%s\n", r.Analysis.Summary)

		if len(r.Analysis.KeyFindings) > 0 {
			b.WriteString("\n**Key Findings**:\n")
			for _, f := range r.Analysis.KeyFindings {
				fmt.Fprintf(b, "- %s\n", f)
			}
		}

		if i < len(results)-1 {
			b.WriteString("\n---\n")
		}
	}
}

func writeMetadata(b *strings.Builder, numSources int) {
	b.WriteString("\n## Report Metadata\n")
	fmt.Fprintf(b, "- **Generation Date**: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "- **Total Sources**: %d\n", numSources)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

const scoringExplanation = `## Understanding Our Two-Phase Analysis System

Our adverse news analysis employs a two-phase approach to ensure accurate and relevant results:

### Phase 1: Initial Screening
- Quick analysis of content relevance and source credibility
- Filters out obviously irrelevant or low-quality content
- Helps prioritize the most significant findings

### Phase 2: Detailed Analysis

For content that passes initial screening, we perform a detailed two-stage scoring:

#### Relevancy Assessment (Primary Factor)
- Evaluates how relevant the content is to adverse news
- Score below 50: content is not significantly relevant and passes through unchanged
- Score 50+: content contains meaningful adverse news information

#### Final Risk Score Calculation
For content passing the relevancy threshold:
- 80% weight given to relevancy score
- 20% weight given to source reliability

This approach ensures that:
- Only genuinely relevant adverse news gets highlighted
- High reliability alone doesn't inflate scores of non-relevant content
- Focus remains on actual adverse news findings rather than peripheral mentions
`
