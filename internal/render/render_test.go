// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-report/internal/container"
	"github.com/pdiddy/research-report/pkg/types"
)

type mockExecutor struct {
	onPath bool
	out    []byte
	err    error
	name   string
	args   []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.onPath {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (m *mockExecutor) RunCombined(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name, m.args = name, args
	return m.out, m.err
}

func TestPandocConverter(t *testing.T) {
	tests := []struct {
		name    string
		exec    *mockExecutor
		wantErr string
	}{
		{"success", &mockExecutor{onPath: true}, ""},
		{"missing binary", &mockExecutor{}, "not found on PATH"},
		{"non-zero exit", &mockExecutor{onPath: true, out: []byte("Error producing PDF.\n"), err: errors.New("exit status 43")}, "Error producing PDF."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPandocConverter("")
			p.exec = tt.exec

			err := p.Convert(context.Background(), "final_report.md", "final_report.pdf")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "pandoc", tt.exec.name)
			assert.Equal(t, []string{"final_report.md", "-o", "final_report.pdf"}, tt.exec.args)
		})
	}
}

func TestPandocConverterCustomBinary(t *testing.T) {
	p := NewPandocConverter("/opt/pandoc/bin/pandoc")
	assert.Equal(t, "/opt/pandoc/bin/pandoc", p.Name())
}

type mockRuntime struct {
	imageErr error
	runErr   error
	spec     container.RunSpec
	ran      bool
}

func (m *mockRuntime) Name() string                              { return "podman" }
func (m *mockRuntime) Available(context.Context) bool            { return true }
func (m *mockRuntime) ImageExists(context.Context, string) error { return m.imageErr }
func (m *mockRuntime) Run(_ context.Context, spec container.RunSpec) ([]byte, error) {
	m.ran = true
	m.spec = spec
	return nil, m.runErr
}

func TestContainerConverter(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "report", "final_report.md")
	dst := filepath.Join(dir, "out", "final_report.pdf")

	rt := &mockRuntime{}
	c := NewContainerConverter(rt, "pandoc/latex:3.5")
	assert.Equal(t, "podman:pandoc/latex:3.5", c.Name())

	require.NoError(t, c.Convert(context.Background(), src, dst))
	assert.Equal(t, container.RunSpec{
		Image: "pandoc/latex:3.5",
		Mounts: []container.Mount{
			{Source: filepath.Join(dir, "report"), Target: "/in", ReadOnly: true},
			{Source: filepath.Join(dir, "out"), Target: "/out"},
		},
		Workdir: "/out",
		Args:    []string{"/in/final_report.md", "-o", "/out/final_report.pdf"},
	}, rt.spec)
}

func TestContainerConverterMissingImage(t *testing.T) {
	rt := &mockRuntime{imageErr: errors.New("image pandoc/latex:3.5 not found in podman")}
	c := NewContainerConverter(rt, "pandoc/latex:3.5")

	err := c.Convert(context.Background(), "a.md", "a.pdf")
	require.Error(t, err)
	assert.False(t, rt.ran)
}

func TestNewPicksLocalBinaryWithoutImage(t *testing.T) {
	conv, err := New(context.Background(), types.ReportConfig{Converter: "pandoc"})
	require.NoError(t, err)
	_, ok := conv.(*PandocConverter)
	assert.True(t, ok)
}
