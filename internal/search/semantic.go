// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/research-report/internal/httputil"
	"github.com/pdiddy/research-report/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,url"

// SemanticScholarBackend queries the Semantic Scholar graph API.
type SemanticScholarBackend struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
}

// Name returns the backend identifier.
func (b *SemanticScholarBackend) Name() string { return "semantic_scholar" }

// Search returns up to limit papers matching query.
func (b *SemanticScholarBackend) Search(ctx context.Context, query string, limit int) ([]types.SourceRecord, error) {
	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"fields": {semanticFields},
	}

	header := http.Header{}
	setUserAgent(header, b.UserAgent)
	if b.APIKey != "" {
		header.Set("x-api-key", b.APIKey)
	}

	var sr semanticResponse
	if err := httputil.GetJSON(ctx, b.Client, semanticAPIBase+"?"+params.Encode(), header, &sr); err != nil {
		return nil, err
	}

	records := make([]types.SourceRecord, 0, len(sr.Data))
	for _, paper := range sr.Data {
		records = append(records, newRecord(string(paper.URL), string(paper.Title), types.SourceSemanticScholar))
	}
	return records, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Data []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID lenientString `json:"paperId"`
	Title   lenientString `json:"title"`
	URL     lenientString `json:"url"`
}
