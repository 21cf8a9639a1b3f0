// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/research-report/internal/llm"
	"github.com/pdiddy/research-report/internal/questions"
	"github.com/pdiddy/research-report/internal/synthesis"
	"github.com/pdiddy/research-report/pkg/types"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Write one short synthesis per research question",
	Long: `Synthesize asks the language model for a 3 to 5 paragraph synthesis of
every question in the questions file and writes each to its own Markdown
file, named <theme>_<index>.md. A question whose call fails is skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if lang, _ := cmd.Flags().GetString("language"); lang != "" {
			cfg.Synthesis.Language = lang
		}
		return runSynthesize(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

func runSynthesize(ctx context.Context, cfg types.Config, w io.Writer) error {
	themes, err := questions.Load(cfg.Paths.Questions)
	if err != nil {
		return err
	}

	client := llm.NewClient(cfg.LLM, logger)
	summary, err := synthesis.Generate(ctx, client, themes, cfg.Synthesis, w, logger)
	if err != nil {
		return err
	}

	logger.Info("syntheses written",
		zap.Int("written", summary.Written),
		zap.Int("failed", summary.Failed),
		zap.String("dir", cfg.Synthesis.Dir))
	fmt.Fprintf(w, "%d of %d syntheses written", summary.Written, summary.Total())
	if summary.HasFailures() {
		fmt.Fprintf(w, ", %d failed", summary.Failed)
	}
	fmt.Fprintln(w)
	return nil
}

func init() {
	synthesizeCmd.Flags().String("language", "", "language of the syntheses (overrides the config file)")

	rootCmd.AddCommand(synthesizeCmd)
}
