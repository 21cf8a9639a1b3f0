// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/research-report/pkg/types"
)

// ManualLinkTitle is the title given to every manually curated link.
const ManualLinkTitle = "Link from manual list"

// ReadManualLinks reads a single-column CSV of URLs (no header) and returns
// one record per non-blank line, tagged with topic as question and theme.
// Extra columns are ignored.
func ReadManualLinks(path, topic string) ([]types.SourceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("manual links file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("opening manual links file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records []types.SourceRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, fmt.Errorf("reading manual links file %s: %w", path, err)
		}
		if len(row) == 0 {
			continue
		}
		link := strings.TrimSpace(row[0])
		if link == "" {
			continue
		}
		records = append(records, types.SourceRecord{
			URL:      link,
			Title:    ManualLinkTitle,
			Source:   types.SourceManual,
			Question: topic,
			Theme:    topic,
		})
	}
	return records, nil
}
