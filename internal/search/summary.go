// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// Summary is the on-disk record of a collection run, written next to the
// combined-sources table so the operator can see which providers degraded.
type Summary struct {
	Topic             string          `yaml:"topic"`
	Questions         int             `yaml:"questions"`
	Total             int             `yaml:"total"`
	Collected         int             `yaml:"collected"`
	DuplicatesRemoved int             `yaml:"duplicates_removed"`
	ManualLinks       int             `yaml:"manual_links"`
	Providers         []ProviderStats `yaml:"providers"`
	Degraded          []DegradedCall  `yaml:"degraded,omitempty"`
	Timestamp         time.Time       `yaml:"timestamp"`
}

// DegradedCall describes one failed provider call.
type DegradedCall struct {
	Provider string `yaml:"provider"`
	Theme    string `yaml:"theme"`
	Question string `yaml:"question"`
	Error    string `yaml:"error"`
}

// NewSummary builds the summary of out stamped with at.
func NewSummary(topic string, questions int, out CollectOutput, at time.Time) Summary {
	s := Summary{
		Topic:             topic,
		Questions:         questions,
		Total:             len(out.Records),
		Collected:         out.Collected,
		DuplicatesRemoved: out.DupsRemoved,
		ManualLinks:       out.ManualLinks,
		Providers:         out.Providers,
		Timestamp:         at.UTC(),
	}
	for _, d := range out.Degraded {
		s.Degraded = append(s.Degraded, DegradedCall{
			Provider: d.Provider,
			Theme:    d.Theme,
			Question: d.Question,
			Error:    d.Err.Error(),
		})
	}
	return s
}

// WriteSummary saves s as YAML.
func WriteSummary(path string, s Summary) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling sources summary: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSummary loads a summary written by WriteSummary.
func ReadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources summary: %w", err)
	}
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing sources summary: %w", err)
	}
	return &s, nil
}
