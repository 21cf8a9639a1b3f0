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
	"github.com/pdiddy/research-report/pkg/types"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate research questions grouped by theme",
	Long: `Questions asks the language model for 10 to 15 research questions on the
configured topic, organized into 2 to 5 themes, and writes them to the
questions file. Nothing is written when the model call or its JSON fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if topic, _ := cmd.Flags().GetString("topic"); topic != "" {
			cfg.Topic = topic
		}
		return runQuestions(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

func runQuestions(ctx context.Context, cfg types.Config, w io.Writer) error {
	client := llm.NewClient(cfg.LLM, logger)
	res, err := questions.Generate(ctx, client, cfg.Topic, w, logger)
	if err != nil {
		return err
	}
	if err := questions.Write(cfg.Paths.Questions, res); err != nil {
		return err
	}
	logger.Info("questions written",
		zap.String("path", cfg.Paths.Questions),
		zap.Int("themes", len(res.Themes.Themes)),
		zap.Int("questions", res.Themes.QuestionCount()))
	fmt.Fprintf(w, "%d questions in %d themes saved to %s\n",
		res.Themes.QuestionCount(), len(res.Themes.Themes), cfg.Paths.Questions)
	return nil
}

func init() {
	questionsCmd.Flags().String("topic", "", "research topic (overrides the config file)")

	rootCmd.AddCommand(questionsCmd)
}
