// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns the assembled Markdown report into a distributable
// document by invoking an external converter.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/research-report/internal/container"
	"github.com/pdiddy/research-report/pkg/types"
)

// DefaultBinary is the converter used when none is configured.
const DefaultBinary = "pandoc"

// Converter renders src into dst.
type Converter interface {
	Name() string
	Convert(ctx context.Context, src, dst string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunCombined(ctx context.Context, name string, args ...string) ([]byte, error)
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (osExecutor) RunCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// PandocConverter runs a converter binary on the host as "<bin> src -o dst".
type PandocConverter struct {
	Binary string
	exec   executor
}

// NewPandocConverter returns a converter for binary, or DefaultBinary when
// binary is empty.
func NewPandocConverter(binary string) *PandocConverter {
	if binary == "" {
		binary = DefaultBinary
	}
	return &PandocConverter{Binary: binary, exec: osExecutor{}}
}

// Name returns the binary name.
func (p *PandocConverter) Name() string { return p.Binary }

// Convert runs the binary and returns its output in the error on failure.
func (p *PandocConverter) Convert(ctx context.Context, src, dst string) error {
	if _, err := p.exec.LookPath(p.Binary); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", p.Binary, err)
	}
	out, err := p.exec.RunCombined(ctx, p.Binary, src, "-o", dst)
	if err != nil {
		return commandError(p.Binary, err, out)
	}
	return nil
}

// ContainerConverter runs the converter image through docker or podman.
// The source directory is mounted read-only at /in and the destination
// directory at /out; args go to the image entrypoint.
type ContainerConverter struct {
	Image   string
	runtime container.Runtime
}

// NewContainerConverter binds image to a detected runtime.
func NewContainerConverter(rt container.Runtime, image string) *ContainerConverter {
	return &ContainerConverter{Image: image, runtime: rt}
}

// Name returns "<runtime>:<image>".
func (c *ContainerConverter) Name() string { return c.runtime.Name() + ":" + c.Image }

// Convert checks the image and runs it against src and dst.
func (c *ContainerConverter) Convert(ctx context.Context, src, dst string) error {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", src, err)
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dst, err)
	}
	if err := c.runtime.ImageExists(ctx, c.Image); err != nil {
		return err
	}

	spec := container.RunSpec{
		Image: c.Image,
		Mounts: []container.Mount{
			{Source: filepath.Dir(srcAbs), Target: "/in", ReadOnly: true},
			{Source: filepath.Dir(dstAbs), Target: "/out"},
		},
		Workdir: "/out",
		Args:    []string{"/in/" + filepath.Base(srcAbs), "-o", "/out/" + filepath.Base(dstAbs)},
	}
	_, err = c.runtime.Run(ctx, spec)
	return err
}

// New picks the converter for cfg: a container when an image is set,
// otherwise the local binary.
func New(ctx context.Context, cfg types.ReportConfig) (Converter, error) {
	if cfg.ContainerImage == "" {
		return NewPandocConverter(cfg.Converter), nil
	}
	rt, err := container.DetectRuntime(ctx)
	if err != nil {
		return nil, err
	}
	return NewContainerConverter(rt, cfg.ContainerImage), nil
}

func commandError(bin string, err error, out []byte) error {
	msg := strings.TrimSpace(string(out))
	if msg == "" {
		return fmt.Errorf("%s failed: %w", bin, err)
	}
	return fmt.Errorf("%s failed: %w: %s", bin, err, msg)
}
