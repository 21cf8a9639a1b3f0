// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every stage in order",
	Long: `Run chains questions, collect, synthesize and report. The first stage that
fails stops the chain. Use --skip-questions to keep an existing questions
file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		skipQuestions, _ := cmd.Flags().GetBool("skip-questions")
		noRender, _ := cmd.Flags().GetBool("no-render")
		ctx, w := cmd.Context(), cmd.OutOrStdout()

		if !skipQuestions {
			fmt.Fprintln(w, "== questions")
			if err := runQuestions(ctx, cfg, w); err != nil {
				return fmt.Errorf("questions: %w", err)
			}
		}
		fmt.Fprintln(w, "== collect")
		if err := runCollect(ctx, cfg, w); err != nil {
			return fmt.Errorf("collect: %w", err)
		}
		fmt.Fprintln(w, "== synthesize")
		if err := runSynthesize(ctx, cfg, w); err != nil {
			return fmt.Errorf("synthesize: %w", err)
		}
		fmt.Fprintln(w, "== report")
		if err := runReport(ctx, cfg, !noRender, w); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("skip-questions", false, "reuse the existing questions file")
	runCmd.Flags().Bool("no-render", false, "skip the document conversion step")

	rootCmd.AddCommand(runCmd)
}
