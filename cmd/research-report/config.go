// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/research-report/internal/secrets"
	"github.com/pdiddy/research-report/pkg/types"
)

// errNoConfig is returned by stage commands when no configuration file was
// found.
var errNoConfig = errors.New("no configuration file found (create research-report.yaml or pass --config)")

func setDefaults(v *viper.Viper) {
	v.SetDefault("sources.semantic_scholar", true)
	v.SetDefault("sources.openalex", true)
	v.SetDefault("sources.core", true)
	v.SetDefault("result_limit", 10)

	v.SetDefault("llm.base_url", "http://localhost:1234/v1")
	v.SetDefault("llm.model", "mistral-nemo-instruct-2407")
	v.SetDefault("llm.timeout", 300*time.Second)

	v.SetDefault("http.timeout", 60*time.Second)
	v.SetDefault("http.user_agent", "research-report/"+version)

	v.SetDefault("paths.questions", "questions.json")
	v.SetDefault("paths.sources", "sources_combined.csv")
	v.SetDefault("paths.sources_summary", "sources_summary.yaml")

	v.SetDefault("synthesis.dir", "syntheses")
	v.SetDefault("synthesis.language", "French")
	v.SetDefault("synthesis.temperature", 0.5)
	v.SetDefault("synthesis.max_tokens", 1024)

	v.SetDefault("report.output", "final_report.md")
	v.SetDefault("report.rendered", "final_report.pdf")
	v.SetDefault("report.prompt_limit", 10000)
	v.SetDefault("report.chunk_size", 4000)
	v.SetDefault("report.group_size", 5)
	v.SetDefault("report.max_levels", 5)
	v.SetDefault("report.converter", "pandoc")

	v.SetDefault("log.level", "info")
}

// bindLegacyEnv accepts the LM Studio style variable names next to the
// RESEARCH_REPORT_ prefixed ones. The prefixed name wins when both are set.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("llm.base_url", "RESEARCH_REPORT_LLM_BASE_URL", "LMSTUDIO_API_BASE")
	_ = v.BindEnv("llm.model", "RESEARCH_REPORT_LLM_MODEL", "LMSTUDIO_MODEL_NAME")
	_ = v.BindEnv("report.prompt_limit", "RESEARCH_REPORT_REPORT_PROMPT_LIMIT", "LIMITE_CARACTERES_PROMPT")
	_ = v.BindEnv("core_api_key", "RESEARCH_REPORT_CORE_API_KEY", "CORE_API_KEY")
}

// loadConfig builds the run configuration from viper and the secrets
// directory, and validates it.
func loadConfig() (types.Config, error) {
	if configErr != nil {
		return types.Config{}, fmt.Errorf("%w: %v", errNoConfig, configErr)
	}
	cfg := configFrom(viper.GetViper(), loadedSecrets)
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func configFrom(v *viper.Viper, s secrets.Secrets) types.Config {
	return types.Config{
		Topic: v.GetString("topic"),
		LLM: types.LLMConfig{
			BaseURL: v.GetString("llm.base_url"),
			Model:   v.GetString("llm.model"),
			APIKey:  s.Or(secrets.LLMAPIKey, v.GetString("llm.api_key")),
			Timeout: v.GetDuration("llm.timeout"),
		},
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("http.timeout"),
				UserAgent: v.GetString("http.user_agent"),
			},
			ResultLimit:           v.GetInt("result_limit"),
			EnableSemanticScholar: v.GetBool("sources.semantic_scholar"),
			EnableOpenAlex:        v.GetBool("sources.openalex"),
			EnableCORE:            v.GetBool("sources.core"),
			ManualLinksCSV:        v.GetString("manual_links_csv"),
			COREAPIKey:            s.Or(secrets.CoreAPIKey, v.GetString("core_api_key")),
			SemanticScholarAPIKey: s.Or(secrets.SemanticScholarAPIKey, v.GetString("semantic_scholar_api_key")),
			OpenAlexEmail:         s.Or(secrets.OpenAlexEmail, v.GetString("openalex_email")),
		},
		Synthesis: types.SynthesisConfig{
			Dir:         v.GetString("synthesis.dir"),
			Language:    v.GetString("synthesis.language"),
			Temperature: float32(v.GetFloat64("synthesis.temperature")),
			MaxTokens:   v.GetInt("synthesis.max_tokens"),
		},
		Report: types.ReportConfig{
			Output:         v.GetString("report.output"),
			Rendered:       v.GetString("report.rendered"),
			PromptLimit:    v.GetInt("report.prompt_limit"),
			ChunkSize:      v.GetInt("report.chunk_size"),
			GroupSize:      v.GetInt("report.group_size"),
			MaxLevels:      v.GetInt("report.max_levels"),
			Converter:      v.GetString("report.converter"),
			ContainerImage: v.GetString("report.container_image"),
		},
		Paths: types.PathsConfig{
			Questions:      v.GetString("paths.questions"),
			Sources:        v.GetString("paths.sources"),
			SourcesSummary: v.GetString("paths.sources_summary"),
		},
	}
}
