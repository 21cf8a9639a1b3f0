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

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

// OpenAlexBackend queries the OpenAlex works catalog.
type OpenAlexBackend struct {
	Client    *http.Client
	UserAgent string
	// Email is sent as mailto parameter for polite pool access.
	Email string
}

// Name returns the backend identifier.
func (b *OpenAlexBackend) Name() string { return "openalex" }

// Search returns up to limit works matching query. The record URL is the
// OpenAlex work ID, which resolves to the landing page.
func (b *OpenAlexBackend) Search(ctx context.Context, query string, limit int) ([]types.SourceRecord, error) {
	params := url.Values{
		"search":   {query},
		"per-page": {strconv.Itoa(limit)},
	}
	if b.Email != "" {
		params.Set("mailto", b.Email)
	}

	header := http.Header{}
	setUserAgent(header, b.UserAgent)

	var oar openAlexResponse
	if err := httputil.GetJSON(ctx, b.Client, openAlexSearchBase+"?"+params.Encode(), header, &oar); err != nil {
		return nil, err
	}

	records := make([]types.SourceRecord, 0, len(oar.Results))
	for _, work := range oar.Results {
		records = append(records, newRecord(string(work.ID), string(work.Title), types.SourceOpenAlex))
	}
	return records, nil
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
}

type openAlexWork struct {
	ID    lenientString `json:"id"`
	Title lenientString `json:"title"`
	DOI   lenientString `json:"doi"`
}
