// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-report/internal/llm"
	"github.com/pdiddy/research-report/internal/render"
	"github.com/pdiddy/research-report/internal/report"
	"github.com/pdiddy/research-report/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Assemble the syntheses into the final report",
	Long: `Report concatenates the synthesis files in name order, writes an executive
summary above them (summarizing in chunks and merging the partial summaries
when the text is long) and saves the Markdown report. The report is then
converted with pandoc, locally or in a container; a conversion failure is
only a warning.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		noRender, _ := cmd.Flags().GetBool("no-render")
		return runReport(cmd.Context(), cfg, !noRender, cmd.OutOrStdout())
	},
}

func newSummarizer(cfg types.Config, w io.Writer) *report.Summarizer {
	return &report.Summarizer{
		Completer: llm.NewClient(cfg.LLM, logger),
		Threshold: cfg.Report.PromptLimit,
		ChunkSize: cfg.Report.ChunkSize,
		GroupSize: cfg.Report.GroupSize,
		MaxLevels: reductionLevels(cfg.Report.MaxLevels),
		Language:  cfg.Synthesis.Language,
		W:         w,
		Log:       logger,
	}
}

// reductionLevels maps report.max_levels onto Summarizer.MaxLevels: an
// explicit 0 in the config file disables reduction.
func reductionLevels(n int) int {
	if n == 0 {
		return report.NoReduction
	}
	return n
}

func runReport(ctx context.Context, cfg types.Config, renderOutput bool, w io.Writer) error {
	res, err := report.Build(ctx, report.Options{
		Topic:  cfg.Topic,
		Dir:    cfg.Synthesis.Dir,
		Output: cfg.Report.Output,
	}, newSummarizer(cfg, w), w, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "report assembled from %d syntheses (%d model calls)\n", res.Sections, res.Summary.Calls)

	if !renderOutput {
		return nil
	}
	conv, err := render.New(ctx, cfg.Report)
	if err != nil {
		fmt.Fprintf(w, "warning: no converter available: %v\n", err)
		return nil
	}
	report.Render(ctx, conv, res.Path, cfg.Report.Rendered, w, logger)
	return nil
}

func init() {
	reportCmd.Flags().Bool("no-render", false, "skip the document conversion step")

	rootCmd.AddCommand(reportCmd)
}
