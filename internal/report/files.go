// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoSyntheses is returned when the synthesis directory holds no
// Markdown files.
var ErrNoSyntheses = errors.New("no synthesis files")

// Section is one synthesis file as it appears in the report.
type Section struct {
	Path   string
	Title  string
	Anchor string
	Text   string
}

// SynthesisFiles returns the *.md files in dir in lexicographic order.
func SynthesisFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading synthesis directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// LoadSections reads files in order.
func LoadSections(files []string) ([]Section, error) {
	sections := make([]Section, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filepath.Base(f), err)
		}
		title := Title(f)
		sections = append(sections, Section{
			Path:   f,
			Title:  title,
			Anchor: Anchor(title),
			Text:   string(data),
		})
	}
	return sections, nil
}

// Title derives a section title from a file name: the stem with
// underscores read as spaces.
func Title(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.ReplaceAll(stem, "_", " ")
}

// Anchor lowercases title and turns spaces into hyphens.
func Anchor(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

// TableOfContents renders one "- [title](#anchor)" line per section.
func TableOfContents(sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&b, "- [%s](#%s)\n", s.Title, s.Anchor)
	}
	return b.String()
}

// Body joins section texts, each followed by a horizontal rule.
func Body(sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(s.Text)
		b.WriteString("\n\n---\n\n")
	}
	return b.String()
}

// Raw joins section texts undecorated; it is the summarization input.
func Raw(sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(s.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Document assembles the final report.
func Document(summary, topic, toc, body string) string {
	heading := "# Final report"
	if topic != "" {
		heading += " – " + topic
	}
	var b strings.Builder
	b.WriteString("# Executive summary\n\n")
	b.WriteString(summary)
	b.WriteString("\n\n---\n\n")
	b.WriteString(heading)
	b.WriteString("\n\n## Table of contents\n\n")
	b.WriteString(toc)
	b.WriteString("\n---\n\n")
	b.WriteString(body)
	return b.String()
}
