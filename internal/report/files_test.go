// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestSynthesisFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"Policy_01.md": "p1",
		"Impact_02.md": "i2",
		"Impact_01.md": "i1",
		"notes.txt":    "ignored",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts.md"), 0o755))

	files, err := SynthesisFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"Impact_01.md", "Impact_02.md", "Policy_01.md"}, names)
}

func TestSynthesisFilesMissingDir(t *testing.T) {
	_, err := SynthesisFiles(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTitleAndAnchor(t *testing.T) {
	tests := []struct {
		path       string
		wantTitle  string
		wantAnchor string
	}{
		{"syntheses/AI_Ethics_01.md", "AI Ethics 01", "ai-ethics-01"},
		{"Impact_02.md", "Impact 02", "impact-02"},
		{"/abs/Énergie_Verte_10.md", "Énergie Verte 10", "énergie-verte-10"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			title := Title(tt.path)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantAnchor, Anchor(title))
		})
	}
}

func TestAssemblyPieces(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"Impact_01.md": "# Q1\n\nA1\n",
		"Impact_02.md": "# Q2\n\nA2\n",
	})
	files, err := SynthesisFiles(dir)
	require.NoError(t, err)
	sections, err := LoadSections(files)
	require.NoError(t, err)

	assert.Equal(t, "- [Impact 01](#impact-01)\n- [Impact 02](#impact-02)\n", TableOfContents(sections))
	assert.Equal(t, "# Q1\n\nA1\n\n\n---\n\n# Q2\n\nA2\n\n\n---\n\n", Body(sections))
	assert.Equal(t, "# Q1\n\nA1\n\n\n# Q2\n\nA2\n\n\n", Raw(sections))
}

func TestDocumentLayout(t *testing.T) {
	got := Document("SUMMARY", "Green AI", "- [A](#a)\n", "BODY")
	want := "# Executive summary\n\nSUMMARY\n\n---\n\n" +
		"# Final report – Green AI\n\n## Table of contents\n\n- [A](#a)\n\n---\n\nBODY"
	assert.Equal(t, want, got)

	assert.Contains(t, Document("S", "", "", "B"), "# Final report\n\n## Table of contents")
}
