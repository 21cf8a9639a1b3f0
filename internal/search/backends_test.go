// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-report/internal/httputil"
	"github.com/pdiddy/research-report/pkg/types"
)

// swap points *base at an httptest server for the duration of the test.
func swap(t *testing.T, base *string, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	old := *base
	*base = ts.URL
	t.Cleanup(func() {
		*base = old
		ts.Close()
	})
	return ts
}

// --- Semantic Scholar ---

func TestSemanticSearchRequestParams(t *testing.T) {
	var captured *http.Request
	ts := swap(t, &semanticAPIBase, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"total":0,"offset":0,"data":[]}`)
	})

	b := &SemanticScholarBackend{Client: ts.Client(), UserAgent: "test/0.1", APIKey: "s2-key"}
	_, err := b.Search(context.Background(), "energy cost of training", 7)
	require.NoError(t, err)

	q := captured.URL.Query()
	assert.Equal(t, "energy cost of training", q.Get("query"))
	assert.Equal(t, "7", q.Get("limit"))
	assert.Equal(t, "title,url", q.Get("fields"))
	assert.Equal(t, "test/0.1", captured.Header.Get("User-Agent"))
	assert.Equal(t, "s2-key", captured.Header.Get("x-api-key"))
}

func TestSemanticSearchNoAPIKeyHeader(t *testing.T) {
	var captured *http.Request
	ts := swap(t, &semanticAPIBase, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"data":[]}`)
	})

	b := &SemanticScholarBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Empty(t, captured.Header.Get("x-api-key"))
}

func TestSemanticSearchNormalizes(t *testing.T) {
	ts := swap(t, &semanticAPIBase, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"paperId":"p1","title":"Attention Is All You Need","url":"https://www.semanticscholar.org/paper/p1"},
			{"paperId":"p2","title":null,"url":"https://www.semanticscholar.org/paper/p2"},
			{"paperId":"p3","url":null},
			{"paperId":"p4","title":"   ","url":"https://www.semanticscholar.org/paper/p4"}
		]}`)
	})

	b := &SemanticScholarBackend{Client: ts.Client()}
	got, err := b.Search(context.Background(), "attention", 10)
	require.NoError(t, err)

	want := []types.SourceRecord{
		{URL: "https://www.semanticscholar.org/paper/p1", Title: "Attention Is All You Need", Source: "Semantic Scholar"},
		{URL: "https://www.semanticscholar.org/paper/p2", Title: "unknown title", Source: "Semantic Scholar"},
		{URL: "", Title: "unknown title", Source: "Semantic Scholar"},
		{URL: "https://www.semanticscholar.org/paper/p4", Title: "unknown title", Source: "Semantic Scholar"},
	}
	assert.Equal(t, want, got)
}

func TestSemanticSearchHTTPError(t *testing.T) {
	ts := swap(t, &semanticAPIBase, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	b := &SemanticScholarBackend{Client: ts.Client()}
	got, err := b.Search(context.Background(), "q", 10)
	assert.Nil(t, got)

	var se *httputil.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
}

// --- OpenAlex ---

func TestOpenAlexSearchRequestParams(t *testing.T) {
	var captured *http.Request
	ts := swap(t, &openAlexSearchBase, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"meta":{"count":0},"results":[]}`)
	})

	b := &OpenAlexBackend{Client: ts.Client(), Email: "me@example.org"}
	_, err := b.Search(context.Background(), "carbon footprint", 12)
	require.NoError(t, err)

	q := captured.URL.Query()
	assert.Equal(t, "carbon footprint", q.Get("search"))
	assert.Equal(t, "12", q.Get("per-page"))
	assert.Equal(t, "me@example.org", q.Get("mailto"))
}

func TestOpenAlexSearchNoMailto(t *testing.T) {
	var captured *http.Request
	ts := swap(t, &openAlexSearchBase, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"results":[]}`)
	})

	b := &OpenAlexBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.False(t, captured.URL.Query().Has("mailto"))
}

func TestOpenAlexSearchUsesWorkID(t *testing.T) {
	ts := swap(t, &openAlexSearchBase, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results":[
			{"id":"https://openalex.org/W1","title":"Green AI","doi":"https://doi.org/10.1/x"},
			{"id":"https://openalex.org/W2","title":42}
		]}`)
	})

	b := &OpenAlexBackend{Client: ts.Client()}
	got, err := b.Search(context.Background(), "green ai", 10)
	require.NoError(t, err)

	want := []types.SourceRecord{
		{URL: "https://openalex.org/W1", Title: "Green AI", Source: "OpenAlex"},
		{URL: "https://openalex.org/W2", Title: "unknown title", Source: "OpenAlex"},
	}
	assert.Equal(t, want, got)
}

func TestOpenAlexSearchMalformedJSON(t *testing.T) {
	ts := swap(t, &openAlexSearchBase, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html>maintenance</html>`)
	})

	b := &OpenAlexBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "q", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

// --- CORE ---

func TestCORESearchRequest(t *testing.T) {
	var captured *http.Request
	ts := swap(t, &coreAPIBase, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"status":"OK","totalHits":0,"data":[]}`)
	})

	b := &COREBackend{Client: ts.Client(), APIKey: "core-key"}
	_, err := b.Search(context.Background(), "AI/ML energy?", 5)
	require.NoError(t, err)

	assert.Equal(t, "/AI%2FML%20energy%3F", captured.URL.EscapedPath())
	q := captured.URL.Query()
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "5", q.Get("pageSize"))
	assert.Equal(t, "true", q.Get("metadata"))
	assert.Equal(t, "Bearer core-key", captured.Header.Get("Authorization"))
}

func TestCORESearchFirstURL(t *testing.T) {
	ts := swap(t, &coreAPIBase, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"id":"1","title":"Open paper","urls":["https://core.ac.uk/a","https://core.ac.uk/b"]},
			{"id":"2","title":"No links","urls":[]},
			{"id":"3","title":"Odd links","urls":"https://core.ac.uk/c"},
			{"id":"4"}
		]}`)
	})

	b := &COREBackend{Client: ts.Client(), APIKey: "k"}
	got, err := b.Search(context.Background(), "open", 10)
	require.NoError(t, err)

	want := []types.SourceRecord{
		{URL: "https://core.ac.uk/a", Title: "Open paper", Source: "CORE"},
		{URL: "", Title: "No links", Source: "CORE"},
		{URL: "", Title: "Odd links", Source: "CORE"},
		{URL: "", Title: "unknown title", Source: "CORE"},
	}
	assert.Equal(t, want, got)
}

func TestCORESearchWithoutKeyIsUnauthorized(t *testing.T) {
	ts := swap(t, &coreAPIBase, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"data":[]}`)
	})

	b := &COREBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "q", 10)

	var se *httputil.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
}

// --- NewBackends ---

func TestNewBackendsOrderAndSelection(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.SearchConfig
		want []string
	}{
		{"all", types.SearchConfig{EnableSemanticScholar: true, EnableOpenAlex: true, EnableCORE: true}, []string{"semantic_scholar", "openalex", "core"}},
		{"openalex only", types.SearchConfig{EnableOpenAlex: true}, []string{"openalex"}},
		{"none", types.SearchConfig{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, b := range NewBackends(tt.cfg) {
				got = append(got, b.Name())
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.cfg.EnabledProviders(), got)
		})
	}
}
