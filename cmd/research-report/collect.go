// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/research-report/internal/questions"
	"github.com/pdiddy/research-report/internal/search"
	"github.com/pdiddy/research-report/pkg/types"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Search academic providers for every research question",
	Long: `Collect queries Semantic Scholar, OpenAlex and CORE (each can be disabled in
the config file) for every question in the questions file, appends the
optional manual links, removes duplicate URLs and writes the combined
sources table plus a YAML summary of the run.

A failing provider is reported as a warning and the run continues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runCollect(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

func runCollect(ctx context.Context, cfg types.Config, w io.Writer) error {
	themes, err := questions.Load(cfg.Paths.Questions)
	if err != nil {
		return err
	}

	backends := search.NewBackends(cfg.Search)
	if len(backends) == 0 {
		fmt.Fprintln(w, "warning: every provider is disabled")
	}
	logger.Debug("collecting sources",
		zap.Strings("providers", cfg.Search.EnabledProviders()),
		zap.Int("questions", themes.QuestionCount()),
		zap.Int("result_limit", cfg.Search.ResultLimit))

	out, err := search.Collect(ctx, themes, backends, search.Options{
		Topic:          cfg.Topic,
		ResultLimit:    cfg.Search.ResultLimit,
		ManualLinksCSV: cfg.Search.ManualLinksCSV,
	}, w, logger)
	if err != nil {
		return err
	}

	if err := search.WriteCSV(cfg.Paths.Sources, out.Records); err != nil {
		return err
	}
	summary := search.NewSummary(cfg.Topic, themes.QuestionCount(), out, time.Now())
	if err := search.WriteSummary(cfg.Paths.SourcesSummary, summary); err != nil {
		return err
	}

	logger.Info("sources collected",
		zap.Int("total", len(out.Records)),
		zap.Int("duplicates_removed", out.DupsRemoved),
		zap.Int("degraded_calls", len(out.Degraded)))
	fmt.Fprintf(w, "%d documents saved to %s\n", len(out.Records), cfg.Paths.Sources)
	return nil
}

func init() {
	rootCmd.AddCommand(collectCmd)
}
