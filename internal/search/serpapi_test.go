package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSearch(t *testing.T) {
	var gotQuery, gotNum, gotTbs string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotNum = r.URL.Query().Get("num")
		gotTbs = r.URL.Query().Get("tbs")
		w.Write([]byte(`{
			"organic_results": [
				{"title": "Bank fined", "link": "https://example.gov/a", "snippet": "regulator", "date": "Mar 5, 2024", "source": "SEC"},
				{"title": "No link entry", "snippet": "dropped"},
				{"title": "Undated", "link": "https://example.com/b", "snippet": "text"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewSerpAPIClient("key", srv.URL, testLogger())
	candidates, err := c.Search(context.Background(), "acme adverse", 10, 6)

	assert.NoError(t, err)
	assert.Equal(t, "acme adverse", gotQuery)
	assert.Equal(t, "10", gotNum)
	assert.Equal(t, "qdr:m6", gotTbs)

	assert.Len(t, candidates, 2)
	assert.Equal(t, "https://example.gov/a", candidates[0].URL)
	assert.Equal(t, "Bank fined", candidates[0].Title)
	assert.Equal(t, "SEC", candidates[0].Source)
	assert.NotNil(t, candidates[0].PublishedDate)
	assert.Nil(t, candidates[1].PublishedDate)
}

func TestSearch_MissingOrganicResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"search_metadata": {"status": "Success"}}`))
	}))
	defer srv.Close()

	c := NewSerpAPIClient("key", srv.URL, testLogger())
	candidates, err := c.Search(context.Background(), "acme", 10, 0)

	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSearch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Invalid API key"}`))
	}))
	defer srv.Close()

	c := NewSerpAPIClient("key", srv.URL, testLogger())
	_, err := c.Search(context.Background(), "acme", 10, 0)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestSearch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewSerpAPIClient("key", srv.URL, testLogger())
	_, err := c.Search(context.Background(), "acme", 10, 0)

	assert.Error(t, err)
}

func TestSearch_EmptyQuery(t *testing.T) {
	c := NewSerpAPIClient("key", "http://unused.invalid", testLogger())
	candidates, err := c.Search(context.Background(), "", 10, 0)
	assert.NoError(t, err)
	assert.Nil(t, candidates)
}

func TestSearch_CachesResults(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"organic_results": [{"title": "t", "link": "https://example.com/a"}]}`))
	}))
	defer srv.Close()

	c := NewSerpAPIClient("key", srv.URL, testLogger())
	_, err := c.Search(context.Background(), "acme", 10, 0)
	assert.NoError(t, err)
	_, err = c.Search(context.Background(), "acme", 10, 0)
	assert.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestParseResultDate(t *testing.T) {
	d := parseResultDate("Mar 5, 2024")
	assert.NotNil(t, d)
	assert.Equal(t, 2024, d.Year())

	assert.Nil(t, parseResultDate(""))
	assert.Nil(t, parseResultDate("3 days ago"))
}
