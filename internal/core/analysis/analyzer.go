// Package analysis submits surviving candidates to the LLM collaborator and
// validates the structured verdicts it returns.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/finsights/argus/internal/config"
	"github.com/finsights/argus/internal/core/common"
	"github.com/finsights/argus/internal/core/lexicon"
	"github.com/finsights/argus/internal/core/model"
	"github.com/finsights/argus/internal/llm"
)

// parseErrorSummary is the sentinel summary substituted when the model's
// output cannot be trusted.
const parseErrorSummary = "Error parsing analysis response."

// Relevancy below this value triggers the policy-indicator correction.
const policyCorrectionCutoff = 30

type Analyzer struct {
	LLM             llm.LLMClient
	Prompts         config.Prompts
	ContentMaxChars int

	// Strict acceptance drops low-confidence verdicts instead of surfacing
	// them with a low score.
	Strict         bool
	MinReliability int
	MinRelevancy   int

	Log *logrus.Logger
}

func NewAnalyzer(client llm.LLMClient, cfg *config.Config, log *logrus.Logger) *Analyzer {
	return &Analyzer{
		LLM:             client,
		Prompts:         cfg.Prompts,
		ContentMaxChars: cfg.Pipeline.ContentMaxChars,
		Strict:          cfg.Pipeline.StrictAcceptance,
		MinReliability:  cfg.Pipeline.MinReliabilityScore,
		MinRelevancy:    cfg.Pipeline.MinRelevancyScore,
		Log:             log,
	}
}

// analysisPayload mirrors the structured-output contract. Pointer fields
// distinguish "missing" from zero values during validation.
type analysisPayload struct {
	Summary          *string   `json:"summary"`
	ReliabilityScore *int      `json:"reliability_score"`
	RelevancyScore   *int      `json:"relevancy_score"`
	KeyFindings      *[]string `json:"key_findings"`
	Date             string    `json:"date"`
	AdversityScore   *int      `json:"adversity_score"`
	LegalStatus      string    `json:"legal_status"`
	NextSteps        string    `json:"next_steps"`
	SourcesAnalysis  string    `json:"sources_analysis"`
}

// Analyze issues exactly one structured completion for the candidate and
// returns a validated DeepAnalysis. Malformed or failed responses yield the
// zero-score sentinel instead of an error; the bool reports whether the
// verdict passes the acceptance policy.
func (a *Analyzer) Analyze(ctx context.Context, content, sourceURL string, corroborating []string) (model.DeepAnalysis, bool) {
	prompt := a.buildUserPrompt(content, sourceURL, corroborating)
	system := a.systemPrompt()

	var response string
	var err error
	if sc, ok := a.LLM.(llm.StructuredClient); ok {
		response, err = sc.GenerateStructured(ctx, system, prompt)
	} else {
		response, err = a.LLM.GenerateWithSystem(ctx, system, prompt)
	}
	if err != nil {
		a.Log.WithError(err).WithField("url", sourceURL).Warn("analysis call failed")
		return sentinel(fmt.Sprintf("Error during analysis: %v", err)), a.accept(0, 0)
	}

	payload, err := common.ParseJSON[analysisPayload](response)
	if err == nil {
		err = validate(payload)
	}
	if err != nil {
		a.Log.WithError(err).WithField("url", sourceURL).Warn("analysis response rejected")
		return sentinel(parseErrorSummary), a.accept(0, 0)
	}

	result := model.DeepAnalysis{
		Summary:          *payload.Summary,
		ReliabilityScore: *payload.ReliabilityScore,
		RelevancyScore:   *payload.RelevancyScore,
		KeyFindings:      *payload.KeyFindings,
		Date:             payload.Date,
		LegalStatus:      payload.LegalStatus,
		NextSteps:        payload.NextSteps,
		SourcesAnalysis:  payload.SourcesAnalysis,
	}
	if payload.AdversityScore != nil {
		result.AdversityScore = *payload.AdversityScore
	}

	result = correctPolicyScore(result, content)

	return result, a.accept(result.ReliabilityScore, result.RelevancyScore)
}

func (a *Analyzer) accept(reliability, relevancy int) bool {
	if !a.Strict {
		return true
	}
	return reliability >= a.MinReliability && relevancy >= a.MinRelevancy
}

func validate(p analysisPayload) error {
	if p.Summary == nil || p.ReliabilityScore == nil || p.RelevancyScore == nil || p.KeyFindings == nil {
		return fmt.Errorf("missing required keys in response")
	}
	if *p.ReliabilityScore < 0 || *p.ReliabilityScore > 100 {
		return fmt.Errorf("reliability_score %d out of range", *p.ReliabilityScore)
	}
	if *p.RelevancyScore < 0 || *p.RelevancyScore > 100 {
		return fmt.Errorf("relevancy_score %d out of range", *p.RelevancyScore)
	}
	if p.AdversityScore != nil && (*p.AdversityScore < 1 || *p.AdversityScore > 10) {
		return fmt.Errorf("adversity_score %d out of range", *p.AdversityScore)
	}
	return nil
}

// correctPolicyScore zeroes borderline relevancy on clearly non-adverse
// boilerplate so a hesitant model verdict cannot leak a policy page into the
// report.
func correctPolicyScore(result model.DeepAnalysis, content string) model.DeepAnalysis {
	if result.RelevancyScore >= policyCorrectionCutoff {
		return result
	}

	contentLower := strings.ToLower(content)
	var found []string
	for term, desc := range lexicon.PolicyIndicators {
		if strings.Contains(contentLower, term) {
			found = append(found, desc)
		}
	}

	if len(found) == 0 {
		result.Summary = "Low relevancy score: Content does not contain significant adverse news findings. " + result.Summary
		return result
	}

	desc := "corporate document"
	if len(found) == 1 {
		desc = found[0]
	}
	result.RelevancyScore = 0
	result.Summary = fmt.Sprintf("Content appears to be a %s without adverse findings. %s", desc, result.Summary)
	return result
}

func sentinel(summary string) model.DeepAnalysis {
	return model.DeepAnalysis{
		Summary:          summary,
		ReliabilityScore: 0,
		RelevancyScore:   0,
		KeyFindings:      []string{},
	}
}

func (a *Analyzer) buildUserPrompt(content, sourceURL string, corroborating []string) string {
	content = common.Truncate(content, a.ContentMaxChars)

	tmpl := a.Prompts.DeepAnalysisUser
	if tmpl == "" {
		tmpl = defaultUserPrompt
	}
	prompt := fmt.Sprintf(tmpl, sourceURL, content)

	if len(corroborating) > 0 {
		prompt += "\n\nCorroborating sources:\n"
		for _, u := range corroborating {
			prompt += "- " + u + "\n"
		}
	}
	return prompt
}

func (a *Analyzer) systemPrompt() string {
	if a.Prompts.DeepAnalysisSystem != "" {
		return a.Prompts.DeepAnalysisSystem
	}
	return defaultSystemPrompt
}
