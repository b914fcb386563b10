package model

import "time"

// Candidate is a single search hit eligible for fetching and scoring.
// It is immutable once produced by the search step.
type Candidate struct {
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	Snippet       string     `json:"snippet"`
	Source        string     `json:"source,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
}

// FetchedContent pairs a candidate with the raw text pulled from its URL.
// RawText is empty when the fetch failed; the pipeline drops such candidates
// instead of aborting the batch.
type FetchedContent struct {
	Candidate Candidate `json:"candidate"`
	RawText   string    `json:"raw_text"`
}
