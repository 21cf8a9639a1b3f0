// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"raw object", `{"themes": {}}`, `{"themes": {}}`},
		{"surrounding whitespace", "\n  {\"a\": 1}  \n", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"upper-case tag", "```JSON\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": [1, 2]}\n```", `{"a": [1, 2]}`},
		{"fence on one line", "```json{\"a\": 1}```", `{"a": 1}`},
		{"fence without closing", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"object on fence line", "```{\"a\":\n1}\n```", "{\"a\":\n1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestExtractJSONRejectsNonJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"blank fence", "```json\n```"},
		{"prose", "Here are your questions: Theme 1 ..."},
		{"prose before object", "Sure! {\"a\": 1}"},
		{"truncated object", "```json\n{\"themes\": {\"A\": [\"q\"\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSON(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoJSON), "error should wrap ErrNoJSON, got %v", err)
		})
	}
}

func TestStripFenceLeavesPlainText(t *testing.T) {
	assert.Equal(t, "Plain prose.", StripFence("  Plain prose.\n"))
	assert.Equal(t, "inner", StripFence("```markdown\ninner\n```"))
}
