// Package fetch retrieves the raw text behind candidate URLs, handling both
// web pages and PDF documents.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/ledongthuc/pdf"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Fetcher pulls the readable text of a URL. An error means this one
// candidate is unusable; the caller drops it and carries on.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxBodyBytes = 10 << 20
)

type HTTPFetcher struct {
	http  *http.Client
	cache *gocache.Cache
	log   *logrus.Logger
}

func NewHTTPFetcher(log *logrus.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		http:  &http.Client{Timeout: 10 * time.Second},
		cache: gocache.New(1*time.Hour, 2*time.Hour),
		log:   log,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if cached, ok := f.cache.Get(rawURL); ok {
		return cached.(string), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	var text string
	if isPDF(rawURL, resp.Header.Get("Content-Type")) {
		text, err = ExtractPDFText(body)
	} else {
		text, err = extractHTMLText(body, rawURL)
	}
	if err != nil {
		return "", err
	}

	f.cache.Set(rawURL, text, gocache.DefaultExpiration)
	return text, nil
}

func isPDF(rawURL, contentType string) bool {
	return strings.HasSuffix(strings.ToLower(rawURL), ".pdf") ||
		strings.Contains(strings.ToLower(contentType), "application/pdf")
}

// ExtractPDFText concatenates the plain text of every page.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var b strings.Builder
	if _, err := io.Copy(&b, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return b.String(), nil
}

// extractHTMLText prefers the readability extraction and falls back to a
// whole-document text scrape when the page has no identifiable article body.
func extractHTMLText(body []byte, rawURL string) (string, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %s: %w", rawURL, err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err == nil && len(strings.TrimSpace(article.TextContent)) >= 100 {
		return article.TextContent, nil
	}

	return scrapeText(body)
}

func scrapeText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if text == "" {
		return "", fmt.Errorf("no readable text in page")
	}
	return text, nil
}
