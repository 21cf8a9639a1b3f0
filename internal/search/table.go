// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/research-report/pkg/types"
)

// WriteCSV writes records to path with the url,title,source,question,theme
// header. An empty slice produces a header-only file. Output depends only
// on records, so identical inputs give byte-identical files.
func WriteCSV(path string, records []types.SourceRecord) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(types.CSVHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("writing record %s: %w", r.URL, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing sources table: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ReadCSV loads a table written by WriteCSV.
func ReadCSV(path string) ([]types.SourceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources table: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing sources table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sources table %s has no header", path)
	}

	records := make([]types.SourceRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(types.CSVHeader) {
			return nil, fmt.Errorf("sources table %s: expected %d columns, got %d", path, len(types.CSVHeader), len(row))
		}
		records = append(records, types.SourceRecord{
			URL:      row[0],
			Title:    row[1],
			Source:   row[2],
			Question: row[3],
			Theme:    row[4],
		})
	}
	return records, nil
}
