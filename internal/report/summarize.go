// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/research-report/internal/llm"
)

const (
	paragraphSep = "\n\n"

	temperature = 0.5
	maxTokens   = 1500

	// Defaults for unset Summarizer fields.
	DefaultThreshold = 10000
	DefaultChunkSize = 4000
	DefaultGroupSize = 5
	DefaultMaxLevels = 5
	DefaultLanguage  = "French"

	// NoReduction as MaxLevels skips the reduction passes: the final pass
	// runs directly over the chunk summaries.
	NoReduction = -1
)

// chars counts characters, not bytes.
func chars(s string) int { return utf8.RuneCountInString(s) }

// joinedChars is the length of list joined by paragraph separators.
func joinedChars(list []string) int {
	if len(list) == 0 {
		return 0
	}
	n := chars(paragraphSep) * (len(list) - 1)
	for _, s := range list {
		n += chars(s)
	}
	return n
}

// ChunkParagraphs splits text on blank-line boundaries and greedily packs
// paragraphs into chunks whose joined length stays within size. A chunk
// exceeds size only when it holds a single oversized paragraph. Joining the
// chunks with "\n\n" gives back text.
func ChunkParagraphs(text string, size int) []string {
	paragraphs := strings.Split(text, paragraphSep)

	var chunks []string
	var cur []string
	curLen := 0
	for _, p := range paragraphs {
		pLen := chars(p)
		if len(cur) > 0 && curLen+chars(paragraphSep)+pLen > size {
			chunks = append(chunks, strings.Join(cur, paragraphSep))
			cur, curLen = nil, 0
		}
		if len(cur) > 0 {
			curLen += chars(paragraphSep)
		}
		cur = append(cur, p)
		curLen += pLen
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, paragraphSep))
	}
	return chunks
}

// Stats describes how an executive summary was produced.
type Stats struct {
	InputChars int
	Direct     bool
	Chunks     int
	Levels     int
	Capped     bool
	Calls      int
}

// Summarizer condenses the report text into an executive summary. Below
// Threshold characters it makes a single call; above, it summarizes chunks,
// reduces the summaries in groups until they fit, and finishes with a final
// pass. MaxLevels bounds the reduction so a model that does not shrink its
// input cannot loop forever. Zero-valued fields take the Default values, so
// a literal holding only a Completer reduces up to DefaultMaxLevels times;
// set MaxLevels to NoReduction to skip reduction.
type Summarizer struct {
	Completer llm.Completer
	Threshold int
	ChunkSize int
	GroupSize int
	// MaxLevels caps reduction passes; zero selects DefaultMaxLevels and a
	// negative value means no passes.
	MaxLevels int
	Language  string

	W   io.Writer
	Log *zap.Logger

	calls int
}

func (s *Summarizer) defaults() {
	if s.Threshold <= 0 {
		s.Threshold = DefaultThreshold
	}
	if s.ChunkSize <= 0 {
		s.ChunkSize = DefaultChunkSize
	}
	if s.GroupSize < 2 {
		s.GroupSize = DefaultGroupSize
	}
	if s.MaxLevels == 0 {
		s.MaxLevels = DefaultMaxLevels
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.W == nil {
		s.W = io.Discard
	}
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
}

// Summarize returns the executive summary of raw. Any completion error
// aborts.
func (s *Summarizer) Summarize(ctx context.Context, raw string) (string, Stats, error) {
	s.defaults()
	s.calls = 0
	st := Stats{InputChars: chars(raw)}
	fmt.Fprintf(s.W, "text to summarize: %d characters\n", st.InputChars)

	if st.InputChars < s.Threshold {
		fmt.Fprintln(s.W, "short input, summarizing directly")
		st.Direct = true
		summary, err := s.call(ctx, directPromptTmpl, raw)
		st.Calls = s.calls
		if err != nil {
			return "", st, fmt.Errorf("executive summary: %w", err)
		}
		return summary, st, nil
	}

	fmt.Fprintln(s.W, "long input, summarizing by blocks with recursive reduction")
	var chunks []string
	for _, c := range ChunkParagraphs(raw, s.ChunkSize) {
		if strings.TrimSpace(c) != "" {
			chunks = append(chunks, c)
		}
	}
	st.Chunks = len(chunks)

	partials := make([]string, 0, len(chunks))
	for i, c := range chunks {
		fmt.Fprintf(s.W, "partial summary %d/%d\n", i+1, len(chunks))
		out, err := s.call(ctx, chunkPromptTmpl, c)
		if err != nil {
			st.Calls = s.calls
			return "", st, fmt.Errorf("summarizing chunk %d: %w", i+1, err)
		}
		partials = append(partials, out)
	}

	summary, levels, capped, err := s.reduceAndFinish(ctx, partials)
	st.Levels, st.Capped, st.Calls = levels, capped, s.calls
	return summary, st, err
}

// reduceAndFinish runs Reduce and the final pass.
func (s *Summarizer) reduceAndFinish(ctx context.Context, list []string) (string, int, bool, error) {
	reduced, levels, capped, err := s.Reduce(ctx, list)
	if err != nil {
		return "", levels, capped, err
	}
	fmt.Fprintf(s.W, "final summary over %d blocks\n", len(reduced))
	summary, err := s.call(ctx, finalPromptTmpl, strings.Join(reduced, paragraphSep))
	if err != nil {
		return "", levels, capped, fmt.Errorf("final summary: %w", err)
	}
	return summary, levels, capped, nil
}

// Reduce merges list in groups of GroupSize, one call per group, until its
// joined length is within Threshold or MaxLevels passes have run. It returns
// the reduced list, the number of passes, and whether the cap was hit.
func (s *Summarizer) Reduce(ctx context.Context, list []string) ([]string, int, bool, error) {
	s.defaults()
	level := 0
	for joinedChars(list) > s.Threshold {
		if level >= s.MaxLevels {
			fmt.Fprintf(s.W, "warning: reduction stopped after %d levels with %d characters left\n", level, joinedChars(list))
			s.Log.Warn("reduction level cap reached",
				zap.Int("max_levels", s.MaxLevels),
				zap.Int("chars", joinedChars(list)),
				zap.Int("blocks", len(list)))
			return list, level, true, nil
		}
		level++
		fmt.Fprintf(s.W, "recursive summary level %d (%d blocks)\n", level, len(list))

		next := make([]string, 0, (len(list)+s.GroupSize-1)/s.GroupSize)
		groups := (len(list) + s.GroupSize - 1) / s.GroupSize
		for g := 0; g < groups; g++ {
			end := min((g+1)*s.GroupSize, len(list))
			fmt.Fprintf(s.W, "group summary %d/%d\n", g+1, groups)
			out, err := s.call(ctx, groupPromptTmpl, strings.Join(list[g*s.GroupSize:end], paragraphSep))
			if err != nil {
				return nil, level, false, fmt.Errorf("reduction level %d group %d: %w", level, g+1, err)
			}
			next = append(next, out)
		}
		s.Log.Debug("reduction level",
			zap.Int("level", level),
			zap.Int("blocks_in", len(list)),
			zap.Int("blocks_out", len(next)),
			zap.Int("chars_out", joinedChars(next)))
		list = next
	}
	return list, level, false, nil
}

func (s *Summarizer) call(ctx context.Context, tmpl *template.Template, text string) (string, error) {
	prompt, err := renderPrompt(tmpl, s.Language, text)
	if err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	s.calls++
	s.Log.Debug("summary call", zap.String("kind", tmpl.Name()), zap.Int("prompt_chars", chars(prompt)))
	return s.Completer.Complete(ctx, llm.UserPrompt(prompt, temperature, maxTokens))
}
