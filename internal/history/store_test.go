package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/finsights/argus/internal/core/model"
	"github.com/finsights/argus/internal/driver"
)

type executed struct {
	Query  string
	Params map[string]interface{}
}

type MockDriver struct {
	Executed   []executed
	MockResult neo4j.EagerResult
	Err        error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Executed = append(m.Executed, executed{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error { return nil }

func (m *MockDriver) Close(ctx context.Context) error { return nil }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func sampleReport() model.RunReport {
	return model.RunReport{
		RunID:  "run-1",
		Entity: "Acme Bank",
		Summary: model.SearchSummary{
			HasAdverseNews:   true,
			HighestRiskScore: 89,
			TotalArticles:    1,
			NarrativeSummary: "One enforcement action.",
		},
		Results: []model.ScreeningResult{
			{
				Candidate: model.Candidate{URL: "https://www.sec.gov/action", Title: "Enforcement"},
				Quick:     model.QuickScore{CompositeScore: 59.5},
				Analysis: model.DeepAnalysis{
					Summary:          "Regulator fined the bank.",
					ReliabilityScore: 85,
					RelevancyScore:   90,
				},
				OverallScore: 89,
			},
		},
	}
}

func TestSaveRun(t *testing.T) {
	d := &MockDriver{}
	s := NewStore(d, testLogger())

	err := s.SaveRun(context.Background(), sampleReport(), 6)

	assert.NoError(t, err)
	assert.Len(t, d.Executed, 2)

	run := d.Executed[0]
	assert.Equal(t, driver.SaveRunQuery, run.Query)
	assert.Equal(t, "run-1", run.Params["uuid"])
	assert.Equal(t, "Acme Bank", run.Params["entity"])
	assert.Equal(t, 6, run.Params["months"])
	assert.Equal(t, true, run.Params["has_adverse_news"])

	finding := d.Executed[1]
	assert.Equal(t, driver.SaveFindingQuery, finding.Query)
	assert.Equal(t, "run-1", finding.Params["run_uuid"])
	assert.Equal(t, "https://www.sec.gov/action", finding.Params["url"])
	assert.Equal(t, float64(89), finding.Params["overall_score"])
	assert.NotEmpty(t, finding.Params["uuid"])
}

func TestSaveRun_DriverError(t *testing.T) {
	d := &MockDriver{Err: fmt.Errorf("connection refused")}
	s := NewStore(d, testLogger())

	err := s.SaveRun(context.Background(), sampleReport(), 0)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save run")
}

func TestRecentRuns_QueryAndLimit(t *testing.T) {
	d := &MockDriver{}
	s := NewStore(d, testLogger())

	runs, err := s.RecentRuns(context.Background(), 0)

	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.Len(t, d.Executed, 1)
	assert.Equal(t, driver.RecentRunsQuery, d.Executed[0].Query)
	assert.Equal(t, 20, d.Executed[0].Params["limit"])
}

func TestRecentRuns_DriverError(t *testing.T) {
	d := &MockDriver{Err: fmt.Errorf("connection refused")}
	s := NewStore(d, testLogger())

	_, err := s.RecentRuns(context.Background(), 5)
	assert.Error(t, err)
}
