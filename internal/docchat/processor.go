package docchat

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/finsights/argus/internal/fetch"
	"github.com/finsights/argus/internal/llm"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// Processor turns uploaded documents into embedded chunks in the store.
type Processor struct {
	Fetcher  fetch.Fetcher
	Embedder llm.EmbedderClient
	Store    *Store
	Log      *logrus.Logger
}

func NewProcessor(fetcher fetch.Fetcher, embedder llm.EmbedderClient, store *Store, log *logrus.Logger) *Processor {
	return &Processor{Fetcher: fetcher, Embedder: embedder, Store: store, Log: log}
}

// IngestPDF extracts, chunks, embeds and stores a PDF document. Returns the
// number of chunks stored.
func (p *Processor) IngestPDF(ctx context.Context, title string, data []byte) (int, error) {
	text, err := fetch.ExtractPDFText(data)
	if err != nil {
		return 0, fmt.Errorf("process pdf %s: %w", title, err)
	}
	return p.ingest(ctx, title, "PDF", text)
}

// IngestURL fetches a web page and stores its readable text.
func (p *Processor) IngestURL(ctx context.Context, url string) (int, error) {
	text, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("process url %s: %w", url, err)
	}
	return p.ingest(ctx, url, "URL", text)
}

func (p *Processor) ingest(ctx context.Context, title, source, text string) (int, error) {
	chunks, err := SplitText(text)
	if err != nil {
		return 0, fmt.Errorf("split %s: %w", title, err)
	}

	stored := 0
	for i, chunk := range chunks {
		vec, err := p.Embedder.Embed(ctx, chunk)
		if err != nil {
			return stored, fmt.Errorf("embed chunk %d of %s: %w", i, title, err)
		}
		if err := p.Store.InsertChunk(ctx, title, source, chunk, i, vec); err != nil {
			return stored, err
		}
		stored++
	}

	p.Log.WithFields(logrus.Fields{"title": title, "chunks": stored}).Info("document ingested")
	return stored, nil
}

// SplitText chunks a document for embedding.
func SplitText(text string) ([]string, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)
	return splitter.SplitText(text)
}
