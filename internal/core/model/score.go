package model

// QuickScore is the cheap triage verdict for one candidate. Every sub-score
// and the composite are clamped to [0,100].
type QuickScore struct {
	PreliminaryScore float64 `json:"preliminary_score"`
	DomainScore      float64 `json:"domain_score"`
	RecencyScore     float64 `json:"recency_score"`
	CompositeScore   float64 `json:"composite_score"`
	PolicyDocument   bool    `json:"policy_document,omitempty"`
}

// DeepAnalysis is the validated structured output of one LLM analysis call.
// The four core fields are always present; the remaining fields only appear
// when the model supplies them.
type DeepAnalysis struct {
	Summary          string   `json:"summary"`
	ReliabilityScore int      `json:"reliability_score"`
	RelevancyScore   int      `json:"relevancy_score"`
	KeyFindings      []string `json:"key_findings"`
	Date             string   `json:"date,omitempty"`
	AdversityScore   int      `json:"adversity_score,omitempty"`
	LegalStatus      string   `json:"legal_status,omitempty"`
	NextSteps        string   `json:"next_steps,omitempty"`
	SourcesAnalysis  string   `json:"sources_analysis,omitempty"`
}

// ScreeningResult is one candidate carried through the whole pipeline.
type ScreeningResult struct {
	Candidate    Candidate    `json:"candidate"`
	Quick        QuickScore   `json:"quick_score"`
	Analysis     DeepAnalysis `json:"analysis"`
	OverallScore float64      `json:"overall_score"`
}

// SearchSummary is the set-level rollup for one screening run. It is
// request-scoped and discarded once the report is produced.
type SearchSummary struct {
	HasAdverseNews   bool    `json:"has_adverse_news"`
	HighestRiskScore float64 `json:"highest_risk_score"`
	TotalArticles    int     `json:"total_articles"`
	NarrativeSummary string  `json:"narrative_summary"`
}

// RunReport is the exposed result of runSearch.
type RunReport struct {
	RunID   string            `json:"run_id"`
	Entity  string            `json:"entity"`
	Summary SearchSummary     `json:"summary"`
	Results []ScreeningResult `json:"results"`
}
