package types

import (
	"errors"
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout for search providers.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with search requests
	// (e.g. "research-report/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LLMConfig points at an OpenAI-compatible chat completion endpoint.
type LLMConfig struct {
	// BaseURL is the API root, e.g. "http://localhost:1234/v1" for LM Studio.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the model name sent with every request.
	Model string `json:"model" yaml:"model"`

	// APIKey is sent as a bearer token. Local servers ignore it.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout bounds a single completion round trip.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// SearchConfig holds settings for the source collection stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// ResultLimit bounds the number of hits requested per provider call (default 10).
	ResultLimit int `json:"result_limit" yaml:"result_limit"`

	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`
	EnableOpenAlex        bool `json:"enable_openalex" yaml:"enable_openalex"`
	EnableCORE            bool `json:"enable_core" yaml:"enable_core"`

	// ManualLinksCSV is an optional single-column CSV of curated URLs.
	ManualLinksCSV string `json:"manual_links_csv,omitempty" yaml:"manual_links_csv,omitempty"`

	// COREAPIKey is the bearer token for the CORE aggregator.
	COREAPIKey string `json:"core_api_key,omitempty" yaml:"core_api_key,omitempty"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`
}

// SynthesisConfig holds settings for the synthesis stage.
type SynthesisConfig struct {
	// Dir receives one Markdown file per question.
	Dir string `json:"dir" yaml:"dir"`

	// Language is the language every synthesis must be written in.
	Language string `json:"language" yaml:"language"`

	Temperature float32 `json:"temperature" yaml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
}

// ReportConfig holds settings for the report assembly stage.
type ReportConfig struct {
	// Output is the path of the assembled Markdown report.
	Output string `json:"output" yaml:"output"`

	// Rendered is the path the document converter writes to.
	Rendered string `json:"rendered" yaml:"rendered"`

	// PromptLimit is the character count under which the syntheses are
	// summarized in a single call (default 10000).
	PromptLimit int `json:"prompt_limit" yaml:"prompt_limit"`

	// ChunkSize bounds a bottom-pass chunk in characters (default 4000).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// GroupSize is the number of summaries merged per reduction call (default 5).
	GroupSize int `json:"group_size" yaml:"group_size"`

	// MaxLevels caps the recursive reduction passes (default 5); 0 runs the
	// final pass directly over the chunk summaries.
	MaxLevels int `json:"max_levels" yaml:"max_levels"`

	// Converter is the converter binary (default "pandoc").
	Converter string `json:"converter" yaml:"converter"`

	// ContainerImage, when set, runs the converter inside docker or podman.
	ContainerImage string `json:"container_image,omitempty" yaml:"container_image,omitempty"`
}

// PathsConfig locates the flat files passed between stages.
type PathsConfig struct {
	Questions      string `json:"questions" yaml:"questions"`
	Sources        string `json:"sources" yaml:"sources"`
	SourcesSummary string `json:"sources_summary" yaml:"sources_summary"`
}

// Config is built once per invocation and passed to every stage.
type Config struct {
	Topic     string          `json:"topic" yaml:"topic"`
	LLM       LLMConfig       `json:"llm" yaml:"llm"`
	Search    SearchConfig    `json:"search" yaml:"search"`
	Synthesis SynthesisConfig `json:"synthesis" yaml:"synthesis"`
	Report    ReportConfig    `json:"report" yaml:"report"`
	Paths     PathsConfig     `json:"paths" yaml:"paths"`
}

// ErrInvalidConfig marks configuration problems detected before any network call.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the numeric settings every stage relies on.
func (c Config) Validate() error {
	var problems []error
	if c.Search.ResultLimit <= 0 {
		problems = append(problems, fmt.Errorf("result_limit must be positive, got %d", c.Search.ResultLimit))
	}
	if c.Report.PromptLimit <= 0 {
		problems = append(problems, fmt.Errorf("report.prompt_limit must be positive, got %d", c.Report.PromptLimit))
	}
	if c.Report.ChunkSize <= 0 {
		problems = append(problems, fmt.Errorf("report.chunk_size must be positive, got %d", c.Report.ChunkSize))
	}
	if c.Report.GroupSize < 2 {
		problems = append(problems, fmt.Errorf("report.group_size must be at least 2, got %d", c.Report.GroupSize))
	}
	if c.Report.MaxLevels < 0 {
		problems = append(problems, fmt.Errorf("report.max_levels must not be negative, got %d", c.Report.MaxLevels))
	}
	if c.LLM.BaseURL == "" {
		problems = append(problems, errors.New("llm.base_url is empty"))
	}
	if c.LLM.Model == "" {
		problems = append(problems, errors.New("llm.model is empty"))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
}

// EnabledProviders lists the enabled provider names in query order.
func (s SearchConfig) EnabledProviders() []string {
	var names []string
	if s.EnableSemanticScholar {
		names = append(names, "semantic_scholar")
	}
	if s.EnableOpenAlex {
		names = append(names, "openalex")
	}
	if s.EnableCORE {
		names = append(names, "core")
	}
	return names
}
