// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries academic APIs for every research question and
// builds the deduplicated combined-sources table.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/research-report/pkg/types"
)

// Backend searches a single academic API. Each provider (Semantic Scholar,
// OpenAlex, CORE) implements this interface.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.SourceRecord, error)
}

// NewBackends returns the providers enabled in cfg, in query order.
func NewBackends(cfg types.SearchConfig) []Backend {
	client := &http.Client{Timeout: cfg.Timeout}

	var backends []Backend
	if cfg.EnableSemanticScholar {
		backends = append(backends, &SemanticScholarBackend{Client: client, UserAgent: cfg.UserAgent, APIKey: cfg.SemanticScholarAPIKey})
	}
	if cfg.EnableOpenAlex {
		backends = append(backends, &OpenAlexBackend{Client: client, UserAgent: cfg.UserAgent, Email: cfg.OpenAlexEmail})
	}
	if cfg.EnableCORE {
		backends = append(backends, &COREBackend{Client: client, UserAgent: cfg.UserAgent, APIKey: cfg.COREAPIKey})
	}
	return backends
}

// ProviderResult is the outcome of one provider call: either records or a
// soft failure in Err. A failed call contributes no records.
type ProviderResult struct {
	Provider string
	Theme    string
	Question string
	Records  []types.SourceRecord
	Err      error
}

// Degraded reports whether the call failed.
func (r ProviderResult) Degraded() bool { return r.Err != nil }

// ProviderStats counts calls and records per provider.
type ProviderStats struct {
	Name     string `yaml:"name"`
	Calls    int    `yaml:"calls"`
	Records  int    `yaml:"records"`
	Degraded int    `yaml:"degraded"`
}

// Options controls a collection run.
type Options struct {
	// Topic tags manual links and is written to the summary.
	Topic string

	// ResultLimit bounds each provider call.
	ResultLimit int

	// ManualLinksCSV is read when both it and Topic are set.
	ManualLinksCSV string
}

// CollectOutput holds the deduplicated table and run statistics.
type CollectOutput struct {
	Records     []types.SourceRecord
	Collected   int
	DupsRemoved int
	ManualLinks int
	Providers   []ProviderStats
	Degraded    []ProviderResult
}

// Collect queries every backend for every question, sequentially and in
// theme order, then appends manual links and deduplicates by URL.
// Provider failures never abort the run; they are reported as degraded.
// The only error returned is the context's.
func Collect(ctx context.Context, themes types.ThemeSet, backends []Backend, opts Options, w io.Writer, log *zap.Logger) (CollectOutput, error) {
	stats := make([]ProviderStats, len(backends))
	for i, b := range backends {
		stats[i].Name = b.Name()
	}

	var out CollectOutput
	var all []types.SourceRecord

	for _, theme := range themes.Themes {
		for _, question := range theme.Questions {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			fmt.Fprintf(w, "searching: %s\n", question)

			for i, b := range backends {
				res := query(ctx, b, theme.Name, question, opts.ResultLimit)
				stats[i].Calls++
				if res.Degraded() {
					stats[i].Degraded++
					out.Degraded = append(out.Degraded, res)
					fmt.Fprintf(w, "warning: %s failed: %v\n", res.Provider, res.Err)
					log.Warn("provider call degraded",
						zap.String("provider", res.Provider),
						zap.String("question", question),
						zap.Error(res.Err))
					continue
				}
				stats[i].Records += len(res.Records)
				log.Debug("provider call",
					zap.String("provider", res.Provider),
					zap.String("question", question),
					zap.Int("records", len(res.Records)))
				all = append(all, res.Records...)
			}
		}
	}

	if opts.ManualLinksCSV != "" && opts.Topic != "" {
		fmt.Fprintf(w, "adding manual links from %s\n", opts.ManualLinksCSV)
		links, err := ReadManualLinks(opts.ManualLinksCSV, opts.Topic)
		if err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
			log.Warn("manual links skipped", zap.String("path", opts.ManualLinksCSV), zap.Error(err))
		}
		out.ManualLinks = len(links)
		all = append(all, links...)
	}

	out.Collected = len(all)
	out.Records, out.DupsRemoved = Deduplicate(all)
	out.Providers = stats
	return out, nil
}

// query runs one provider call and tags its records with the question and
// theme they were found for.
func query(ctx context.Context, b Backend, theme, question string, limit int) ProviderResult {
	res := ProviderResult{Provider: b.Name(), Theme: theme, Question: question}
	records, err := b.Search(ctx, question, limit)
	if err != nil {
		res.Err = err
		return res
	}
	for i := range records {
		records[i].Question = question
		records[i].Theme = theme
	}
	res.Records = records
	return res
}

// Deduplicate keeps the first record for each URL, preserving order, and
// returns the number of records dropped. Empty URLs compare equal like any
// other value.
func Deduplicate(records []types.SourceRecord) ([]types.SourceRecord, int) {
	seen := make(map[string]bool, len(records))
	deduped := make([]types.SourceRecord, 0, len(records))
	for _, r := range records {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		deduped = append(deduped, r)
	}
	return deduped, len(records) - len(deduped)
}
