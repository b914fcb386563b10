// Package history persists screening runs and their findings as a small
// graph: (Run)-[:FOUND]->(Finding).
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/finsights/argus/internal/core/model"
	"github.com/finsights/argus/internal/driver"
)

type RunRecord struct {
	UUID             string    `json:"uuid"`
	Entity           string    `json:"entity"`
	CreatedAt        time.Time `json:"created_at"`
	HasAdverseNews   bool      `json:"has_adverse_news"`
	HighestRiskScore float64   `json:"highest_risk_score"`
	TotalArticles    int64     `json:"total_articles"`
}

type Store struct {
	Driver driver.GraphDriver
	Log    *logrus.Logger
}

func NewStore(d driver.GraphDriver, log *logrus.Logger) *Store {
	return &Store{Driver: d, Log: log}
}

// SaveRun persists one completed screening run with all of its findings.
func (s *Store) SaveRun(ctx context.Context, report model.RunReport, months int) error {
	now := time.Now().UTC()

	runParams := map[string]interface{}{
		"uuid":               report.RunID,
		"entity":             report.Entity,
		"created_at":         now,
		"months":             months,
		"has_adverse_news":   report.Summary.HasAdverseNews,
		"highest_risk_score": report.Summary.HighestRiskScore,
		"total_articles":     report.Summary.TotalArticles,
		"narrative":          report.Summary.NarrativeSummary,
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveRunQuery, runParams); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	for _, r := range report.Results {
		params := map[string]interface{}{
			"run_uuid":          report.RunID,
			"uuid":              uuid.New().String(),
			"url":               r.Candidate.URL,
			"title":             r.Candidate.Title,
			"summary":           r.Analysis.Summary,
			"overall_score":     r.OverallScore,
			"reliability_score": r.Analysis.ReliabilityScore,
			"relevancy_score":   r.Analysis.RelevancyScore,
			"composite_score":   r.Quick.CompositeScore,
			"created_at":        now,
		}
		if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveFindingQuery, params); err != nil {
			return fmt.Errorf("failed to save finding %s: %w", r.Candidate.URL, err)
		}
	}
	return nil
}

// RecentRuns lists the latest screening runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	result, err := s.Driver.ExecuteQuery(ctx, driver.RecentRunsQuery, map[string]interface{}{
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]RunRecord, 0, len(result.Records))
	for _, rec := range result.Records {
		m := rec.AsMap()
		run := RunRecord{}
		if v, ok := m["uuid"].(string); ok {
			run.UUID = v
		}
		if v, ok := m["entity"].(string); ok {
			run.Entity = v
		}
		if v, ok := m["created_at"].(time.Time); ok {
			run.CreatedAt = v
		}
		if v, ok := m["has_adverse_news"].(bool); ok {
			run.HasAdverseNews = v
		}
		if v, ok := m["highest_risk_score"].(float64); ok {
			run.HighestRiskScore = v
		}
		if v, ok := m["total_articles"].(int64); ok {
			run.TotalArticles = v
		}
		runs = append(runs, run)
	}
	return runs, nil
}
