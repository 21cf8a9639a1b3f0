// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-report CLI. Each stage
// of the pipeline (questions, collect, synthesize, report) is a
// subcommand; run chains them in order.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-report/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials read from .secrets/ at startup.
	loadedSecrets secrets.Secrets

	// logger is built in PersistentPreRunE and shared by all subcommands.
	logger = zap.NewNop()
)

// rootCmd is the base command for the research-report CLI.
var rootCmd = &cobra.Command{
	Use:   "research-report",
	Short: "Turn a research topic into a summarized report",
	Long: `research-report automates a small research workflow around a local
OpenAI-compatible language model:

  questions   generate research questions grouped by theme
  collect     query Semantic Scholar, OpenAlex and CORE for every question
  synthesize  write one short synthesis per question
  report      assemble the syntheses under an executive summary and render it

Stages communicate through flat files and can be run one at a time or
chained with "run".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := viper.GetString("log.level")
		if verbose {
			level = "debug"
		}
		l, err := newLogger(level, viper.GetString("log.file"))
		if err != nil {
			return err
		}
		logger = l

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if keys := s.Keys(); len(keys) > 0 {
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-report.yaml or ~/.config/research-report/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug detail (prompts, sizes, provider failures)")
}

// configErr records why no configuration file was read.
var configErr error

func initConfig() {
	// .env values never override variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-report")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-report"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("RESEARCH_REPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindLegacyEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		configErr = err
		return
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
