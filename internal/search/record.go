// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pdiddy/research-report/pkg/types"
)

// newRecord normalizes a provider hit. Question and theme are filled in by
// the caller.
func newRecord(link, title, source string) types.SourceRecord {
	title = strings.TrimSpace(title)
	if title == "" {
		title = types.UnknownTitle
	}
	return types.SourceRecord{
		URL:    strings.TrimSpace(link),
		Title:  title,
		Source: source,
	}
}

func setUserAgent(h http.Header, ua string) {
	if ua != "" {
		h.Set("User-Agent", ua)
	}
}

// lenientString decodes a JSON string. Any other JSON value (null, number,
// object) decodes to the empty string instead of failing the response.
type lenientString string

func (s *lenientString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	*s = lenientString(v)
	return nil
}

// lenientStrings decodes a JSON array of strings, dropping non-string
// entries. A value that is not an array decodes to nil.
type lenientStrings []string

func (s *lenientStrings) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = nil
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var v string
		if json.Unmarshal(r, &v) == nil && v != "" {
			out = append(out, v)
		}
	}
	*s = out
	return nil
}
