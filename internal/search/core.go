// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/research-report/internal/httputil"
	"github.com/pdiddy/research-report/pkg/types"
)

// coreAPIBase is the CORE v2 search endpoint; the query is appended as a
// path segment. Declared as a var so tests can substitute an httptest server.
var coreAPIBase = "https://core.ac.uk:443/api-v2/search"

// COREBackend queries the CORE open access aggregator.
type COREBackend struct {
	Client    *http.Client
	UserAgent string
	// APIKey is sent as a bearer token. Without it CORE answers 401 and the
	// call is reported as degraded.
	APIKey string
}

// Name returns the backend identifier.
func (b *COREBackend) Name() string { return "core" }

// Search returns up to limit documents matching query. The record URL is
// the first entry of the document's urls list, or empty.
func (b *COREBackend) Search(ctx context.Context, query string, limit int) ([]types.SourceRecord, error) {
	params := url.Values{
		"page":     {"1"},
		"pageSize": {strconv.Itoa(limit)},
		"metadata": {"true"},
	}
	reqURL := strings.TrimRight(coreAPIBase, "/") + "/" + url.PathEscape(query) + "?" + params.Encode()

	header := http.Header{}
	setUserAgent(header, b.UserAgent)
	if b.APIKey != "" {
		header.Set("Authorization", "Bearer "+b.APIKey)
	}

	var cr coreResponse
	if err := httputil.GetJSON(ctx, b.Client, reqURL, header, &cr); err != nil {
		return nil, err
	}

	records := make([]types.SourceRecord, 0, len(cr.Data))
	for _, doc := range cr.Data {
		link := ""
		if len(doc.URLs) > 0 {
			link = doc.URLs[0]
		}
		records = append(records, newRecord(link, string(doc.Title), types.SourceCORE))
	}
	return records, nil
}

// CORE API JSON structures.
type coreResponse struct {
	Status    lenientString  `json:"status"`
	TotalHits int            `json:"totalHits"`
	Data      []coreDocument `json:"data"`
}

type coreDocument struct {
	ID    lenientString  `json:"id"`
	Title lenientString  `json:"title"`
	URLs  lenientStrings `json:"urls"`
}
