// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package questions asks the language model for research questions grouped
// by theme and persists them as the questions file read by later stages.
package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-report/internal/llm"
	"github.com/pdiddy/research-report/pkg/types"
)

const (
	temperature = 0.7
	maxTokens   = 1024
)

var (
	// ErrEmptyTopic is returned before any network call when no topic is set.
	ErrEmptyTopic = errors.New("no topic configured")

	// ErrEmptyContent is returned when the model answers with blank text.
	ErrEmptyContent = errors.New("model returned empty content")
)

// Result is a decoded model answer together with the JSON payload it came from.
type Result struct {
	Themes  types.ThemeSet
	Payload []byte
}

// Generate issues one completion call for topic and decodes the answer.
// Any failure aborts: no retry and no partial acceptance.
func Generate(ctx context.Context, c llm.Completer, topic string, w io.Writer, log *zap.Logger) (*Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	prompt, err := renderPrompt(topic)
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	fmt.Fprintf(w, "generating questions for topic: %s\n", topic)
	log.Debug("question prompt", zap.String("prompt", prompt))

	content, err := c.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("requesting questions: %w", err)
	}
	log.Debug("question response", zap.String("content", content))

	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	return Parse(content)
}

// Parse extracts and decodes a questions payload from model output.
func Parse(content string) (*Result, error) {
	payload, err := llm.ExtractJSON(content)
	if err != nil {
		return nil, fmt.Errorf("decoding questions: %w", err)
	}

	var themes types.ThemeSet
	if err := json.Unmarshal(payload, &themes); err != nil {
		return nil, fmt.Errorf("decoding questions: %w", err)
	}
	if len(themes.Themes) == 0 {
		return nil, errors.New("validating questions: model returned no themes")
	}
	if err := themes.Validate(); err != nil {
		return nil, fmt.Errorf("validating questions: %w", err)
	}
	return &Result{Themes: themes, Payload: payload}, nil
}

// Write persists the decoded payload verbatim, indented by two spaces.
func Write(path string, r *Result) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Payload, "", "  "); err != nil {
		return fmt.Errorf("formatting questions: %w", err)
	}
	buf.WriteByte('\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing questions file: %w", err)
	}
	return nil
}

// Load reads and validates a questions file.
func Load(path string) (types.ThemeSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ThemeSet{}, fmt.Errorf("reading questions file: %w", err)
	}
	var themes types.ThemeSet
	if err := json.Unmarshal(data, &themes); err != nil {
		return types.ThemeSet{}, fmt.Errorf("parsing questions file %s: %w", path, err)
	}
	if err := themes.Validate(); err != nil {
		return types.ThemeSet{}, fmt.Errorf("questions file %s: %w", path, err)
	}
	return themes, nil
}
