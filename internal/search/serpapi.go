// Package search talks to the SerpAPI-compatible web search collaborator.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/finsights/argus/internal/core/model"
)

// Searcher returns candidate articles for a query. A months value above zero
// restricts results to that lookback window. An empty result list is a valid
// outcome, never an error.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults, months int) ([]model.Candidate, error)
}

const defaultBaseURL = "https://serpapi.com/search"

type SerpAPIClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   *gocache.Cache
	log     *logrus.Logger
}

func NewSerpAPIClient(apiKey, baseURL string, log *logrus.Logger) *SerpAPIClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &SerpAPIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   gocache.New(10*time.Minute, 30*time.Minute),
		log:     log,
	}
}

type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Date    string `json:"date"`
		Source  string `json:"source"`
	} `json:"organic_results"`
	Error string `json:"error"`
}

func (c *SerpAPIClient) Search(ctx context.Context, query string, maxResults, months int) ([]model.Candidate, error) {
	if query == "" {
		return nil, nil
	}

	cacheKey := fmt.Sprintf("%s|%d|%d", query, maxResults, months)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]model.Candidate), nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("num", strconv.Itoa(maxResults))
	params.Set("api_key", c.apiKey)
	if months > 0 {
		params.Set("tbs", fmt.Sprintf("qdr:m%d", months))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	var parsed serpResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("search API error: %s", parsed.Error)
	}

	// No organic_results key or an empty list both mean zero candidates.
	candidates := make([]model.Candidate, 0, len(parsed.OrganicResults))
	for _, r := range parsed.OrganicResults {
		if r.Link == "" {
			continue
		}
		candidates = append(candidates, model.Candidate{
			URL:           r.Link,
			Title:         r.Title,
			Snippet:       r.Snippet,
			Source:        r.Source,
			PublishedDate: parseResultDate(r.Date),
		})
	}

	c.log.WithFields(logrus.Fields{"query_len": len(query), "results": len(candidates)}).
		Info("search completed")

	c.cache.Set(cacheKey, candidates, gocache.DefaultExpiration)
	return candidates, nil
}

var resultDateLayouts = []string{
	"Jan 2, 2006",
	"2006-01-02",
	time.RFC3339,
}

func parseResultDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range resultDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
