// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesis writes one short generated synthesis per research
// question, named so that a lexicographic sort groups them by theme.
package synthesis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-report/internal/llm"
	"github.com/pdiddy/research-report/pkg/types"
)

const (
	// DefaultLanguage is used when the configuration leaves it empty.
	DefaultLanguage = "French"

	// DefaultDir receives the synthesis files when no directory is set.
	DefaultDir = "syntheses"

	defaultTemperature = 0.5
	defaultMaxTokens   = 1024

	// statusQuestionChars bounds the question echoed in status lines.
	statusQuestionChars = 60
)

var (
	// ErrEmptySynthesis is returned when the model answers with blank text.
	ErrEmptySynthesis = errors.New("model returned an empty synthesis")

	// ErrStemConflict is returned before anything is written when two theme
	// names would produce clashing or interleaved file names.
	ErrStemConflict = errors.New("theme file names conflict")
)

// BatchSummary holds counts from a synthesis run.
type BatchSummary struct {
	Written int
	Failed  int

	// Files lists the written paths in generation order.
	Files []string
}

// Total returns the number of questions processed.
func (s BatchSummary) Total() int {
	return s.Written + s.Failed
}

// HasFailures reports whether any question was skipped.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// Generate asks for one synthesis per question and writes each to
// cfg.Dir. A failing question is reported and skipped; files already
// written are left alone. Only a failure to create the directory or a
// cancelled context ends the run early.
func Generate(ctx context.Context, c llm.Completer, themes types.ThemeSet, cfg types.SynthesisConfig, w io.Writer, log *zap.Logger) (BatchSummary, error) {
	cfg = withDefaults(cfg)
	if err := CheckStems(themes); err != nil {
		return BatchSummary{}, err
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating synthesis directory: %w", err)
	}

	var summary BatchSummary
	for _, theme := range themes.Themes {
		width := IndexWidth(len(theme.Questions))
		for i, question := range theme.Questions {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			fmt.Fprintf(w, "generating synthesis: %s\n", shorten(question, statusQuestionChars))

			path := filepath.Join(cfg.Dir, FileName(theme.Name, i+1, width))
			if err := generateOne(ctx, c, question, path, cfg); err != nil {
				summary.Failed++
				fmt.Fprintf(w, "error: %v\n", err)
				log.Warn("synthesis skipped",
					zap.String("theme", theme.Name),
					zap.Int("index", i+1),
					zap.Error(err))
				continue
			}
			summary.Written++
			summary.Files = append(summary.Files, path)
			fmt.Fprintf(w, "saved %s\n", path)
		}
	}
	return summary, nil
}

func generateOne(ctx context.Context, c llm.Completer, question, path string, cfg types.SynthesisConfig) error {
	prompt, err := renderPrompt(question, cfg.Language)
	if err != nil {
		return fmt.Errorf("rendering prompt: %w", err)
	}
	text, err := c.Complete(ctx, llm.UserPrompt(prompt, cfg.Temperature, cfg.MaxTokens))
	if err != nil {
		return fmt.Errorf("requesting synthesis: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptySynthesis
	}
	if err := os.WriteFile(path, []byte(Content(question, text)), 0o644); err != nil {
		return fmt.Errorf("writing synthesis: %w", err)
	}
	return nil
}

// Content is the file body: the question as a heading, then the text.
func Content(question, text string) string {
	return "# " + question + "\n\n" + text + "\n"
}

var stemReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// Stem returns the file name prefix of theme: spaces and path separators
// become underscores.
func Stem(theme string) string {
	return stemReplacer.Replace(theme)
}

// FileName returns "{stem}_{index}.md" with index zero-padded to width
// digits.
func FileName(theme string, index, width int) string {
	return fmt.Sprintf("%s_%0*d.md", Stem(theme), width, index)
}

// CheckStems rejects theme sets whose files would overwrite each other or
// stop sorting as one contiguous run per theme. That happens when two stems
// are equal or when one stem, followed by "_", starts another.
func CheckStems(themes types.ThemeSet) error {
	for i, a := range themes.Themes {
		sa := Stem(a.Name)
		for _, b := range themes.Themes[i+1:] {
			sb := Stem(b.Name)
			if sa == sb || strings.HasPrefix(sb, sa+"_") || strings.HasPrefix(sa, sb+"_") {
				return fmt.Errorf("%w: %q and %q (stems %q and %q)", ErrStemConflict, a.Name, b.Name, sa, sb)
			}
		}
	}
	return nil
}

// IndexWidth returns the zero-padding width for a theme holding n
// questions: the digit count of n, and never less than 2.
func IndexWidth(n int) int {
	return max(2, len(strconv.Itoa(n)))
}

func withDefaults(cfg types.SynthesisConfig) types.SynthesisConfig {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return cfg
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
