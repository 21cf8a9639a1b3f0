// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-report
// pipeline: the run configuration, the ordered question set, and the
// source records collected per question.
package types

// Provider tags written to the source column of the combined table.
const (
	SourceSemanticScholar = "Semantic Scholar"
	SourceOpenAlex        = "OpenAlex"
	SourceCORE            = "CORE"
	SourceManual          = "Manual"
)

// UnknownTitle replaces a missing or empty title returned by a provider.
const UnknownTitle = "unknown title"

// SourceRecord is one candidate source for a research question.
type SourceRecord struct {
	// URL identifies the record; the combined table holds each URL once.
	URL string `json:"url" yaml:"url"`

	// Title is the document title, or UnknownTitle.
	Title string `json:"title" yaml:"title"`

	// Source is the provider tag (e.g. "OpenAlex").
	Source string `json:"source" yaml:"source"`

	// Question is the research question the record was found for.
	Question string `json:"question" yaml:"question"`

	// Theme is the theme the question belongs to.
	Theme string `json:"theme" yaml:"theme"`
}

// CSVHeader is the stable column set of the combined-sources file.
var CSVHeader = []string{"url", "title", "source", "question", "theme"}

// Row returns the record's fields in CSVHeader order.
func (r SourceRecord) Row() []string {
	return []string{r.URL, r.Title, r.Source, r.Question, r.Theme}
}
