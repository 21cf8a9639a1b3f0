// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles the synthesis files into the final report,
// prefixed with an executive summary, and hands it to a converter.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/research-report/internal/render"
)

// Options locates the report inputs and output.
type Options struct {
	Topic  string
	Dir    string
	Output string
}

// Result describes a written report.
type Result struct {
	Path     string
	Sections int
	Summary  Stats
}

// Build reads the synthesis files in opts.Dir, summarizes them with s and
// writes the assembled document to opts.Output.
func Build(ctx context.Context, opts Options, s *Summarizer, w io.Writer, log *zap.Logger) (*Result, error) {
	files, err := SynthesisFiles(opts.Dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSyntheses, opts.Dir)
	}
	sections, err := LoadSections(files)
	if err != nil {
		return nil, err
	}
	log.Info("assembling report", zap.Int("sections", len(sections)), zap.String("dir", opts.Dir))

	summary, stats, err := s.Summarize(ctx, Raw(sections))
	if err != nil {
		return nil, err
	}
	log.Info("executive summary ready",
		zap.Bool("direct", stats.Direct),
		zap.Int("chunks", stats.Chunks),
		zap.Int("levels", stats.Levels),
		zap.Bool("capped", stats.Capped),
		zap.Int("calls", stats.Calls))

	doc := Document(summary, opts.Topic, TableOfContents(sections), Body(sections))
	if dir := filepath.Dir(opts.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(opts.Output, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(w, "%s written\n", opts.Output)

	return &Result{Path: opts.Output, Sections: len(sections), Summary: stats}, nil
}

// Render converts src to dst. A converter failure is reported and logged
// but never returned: the Markdown report is already on disk. It returns
// whether the rendered file was produced.
func Render(ctx context.Context, conv render.Converter, src, dst string, w io.Writer, log *zap.Logger) bool {
	fmt.Fprintf(w, "converting %s to %s with %s\n", src, dst, conv.Name())
	if err := conv.Convert(ctx, src, dst); err != nil {
		fmt.Fprintf(w, "warning: conversion failed: %v\n", err)
		log.Warn("render failed", zap.String("converter", conv.Name()), zap.Error(err))
		return false
	}
	fmt.Fprintf(w, "%s written\n", dst)
	return true
}
