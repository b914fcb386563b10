package core

import (
	"context"
	"fmt"

	"github.com/finsights/argus/internal/core/model"
)

type MockSearcher struct {
	Candidates []model.Candidate
	Err        error
	Query      string
	MaxResults int
	Months     int
}

func (m *MockSearcher) Search(ctx context.Context, query string, maxResults, months int) ([]model.Candidate, error) {
	m.Query = query
	m.MaxResults = maxResults
	m.Months = months
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Candidates, nil
}

// MockFetcher returns canned page text keyed by URL. URLs without an entry
// fail, which exercises the drop-on-fetch-error path.
type MockFetcher struct {
	Pages map[string]string
}

func (m *MockFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	text, ok := m.Pages[rawURL]
	if !ok {
		return "", fmt.Errorf("fetch failed for %s", rawURL)
	}
	return text, nil
}

type MockLLM struct {
	Response      string
	ResponseQueue []string
	Err           error
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

func (m *MockLLM) GenerateWithSystem(ctx context.Context, system, prompt string) (string, error) {
	return m.Generate(ctx, prompt)
}
