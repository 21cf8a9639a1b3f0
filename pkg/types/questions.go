// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Theme is a named group of research questions.
type Theme struct {
	Name      string
	Questions []string
}

// ThemeSet is the ordered content of the questions file:
//
//	{"themes": {"Theme 1": ["Question 1", ...], ...}}
//
// The order of themes is the key order of the JSON object, which drives the
// iteration order of every later stage.
type ThemeSet struct {
	Themes []Theme
}

// QuestionCount returns the number of questions across all themes.
func (ts ThemeSet) QuestionCount() int {
	n := 0
	for _, t := range ts.Themes {
		n += len(t.Questions)
	}
	return n
}

// Validate checks that theme names are unique and non-empty and that every
// theme holds at least one non-blank question. An empty set is valid.
func (ts ThemeSet) Validate() error {
	seen := make(map[string]bool, len(ts.Themes))
	for _, t := range ts.Themes {
		if strings.TrimSpace(t.Name) == "" {
			return errors.New("theme with empty name")
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate theme %q", t.Name)
		}
		seen[t.Name] = true
		if len(t.Questions) == 0 {
			return fmt.Errorf("theme %q has no questions", t.Name)
		}
		for i, q := range t.Questions {
			if strings.TrimSpace(q) == "" {
				return fmt.Errorf("theme %q: question %d is empty", t.Name, i+1)
			}
		}
	}
	return nil
}

// UnmarshalJSON decodes the {"themes": {...}} object keeping key order.
func (ts *ThemeSet) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	raw, ok := top["themes"]
	if !ok {
		return errors.New(`missing "themes" object`)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading themes: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf(`"themes" must be an object, got %v`, tok)
	}

	var themes []Theme
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading theme name: %w", err)
		}
		name, _ := keyTok.(string)

		var questions []string
		if err := dec.Decode(&questions); err != nil {
			return fmt.Errorf("theme %q: %w", name, err)
		}
		themes = append(themes, Theme{Name: name, Questions: questions})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading themes: %w", err)
	}

	ts.Themes = themes
	return nil
}

// MarshalJSON encodes the set in theme order.
func (ts ThemeSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"themes":{`)
	for i, t := range ts.Themes {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}
		questions := t.Questions
		if questions == nil {
			questions = []string{}
		}
		qs, err := json.Marshal(questions)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(qs)
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}
