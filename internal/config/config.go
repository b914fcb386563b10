package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider          string  `toml:"provider"`
	Model             string  `toml:"model"`
	EmbeddingModel    string  `toml:"embedding_model"`
	APIKey            string  `toml:"api_key"`
	BaseURL           string  `toml:"base_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type SearchConfig struct {
	APIKey            string `toml:"api_key"`
	BaseURL           string `toml:"base_url"`
	MaxInitialResults int    `toml:"max_initial_results"`
}

type PipelineConfig struct {
	MinCompositeScore   float64  `toml:"min_composite_score"`
	MinReliabilityScore int      `toml:"min_reliability_score"`
	MinRelevancyScore   int      `toml:"min_relevancy_score"`
	StrictAcceptance    bool     `toml:"strict_acceptance"`
	MaxConcurrency      int      `toml:"max_concurrency"`
	ContentMaxChars     int      `toml:"content_max_chars"`
	NarrativeTopN       int      `toml:"narrative_top_n"`
	OwnDomains          []string `toml:"own_domains"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Enabled  bool   `toml:"enabled"`
}

type WeaviateConfig struct {
	Host    string `toml:"host"`
	Scheme  string `toml:"scheme"`
	Class   string `toml:"class"`
	Enabled bool   `toml:"enabled"`
}

type Prompts struct {
	DeepAnalysisSystem string `toml:"deep_analysis_system"`
	DeepAnalysisUser   string `toml:"deep_analysis_user"`
	NarrativeSummary   string `toml:"narrative_summary"`
	ChatSystem         string `toml:"chat_system"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Search   SearchConfig   `toml:"search"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Weaviate WeaviateConfig `toml:"weaviate"`
	Prompts  Prompts        `toml:"prompts"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Search.MaxInitialResults == 0 {
		c.Search.MaxInitialResults = 30
	}
	if c.Pipeline.MinCompositeScore == 0 {
		c.Pipeline.MinCompositeScore = 30
	}
	if c.Pipeline.MinReliabilityScore == 0 {
		c.Pipeline.MinReliabilityScore = 75
	}
	if c.Pipeline.MinRelevancyScore == 0 {
		c.Pipeline.MinRelevancyScore = 70
	}
	if c.Pipeline.MaxConcurrency == 0 {
		c.Pipeline.MaxConcurrency = 5
	}
	if c.Pipeline.ContentMaxChars == 0 {
		c.Pipeline.ContentMaxChars = 10000
	}
	if c.Pipeline.NarrativeTopN == 0 {
		c.Pipeline.NarrativeTopN = 5
	}
	if c.LLM.RequestsPerSecond == 0 {
		c.LLM.RequestsPerSecond = 2
	}
	if c.LLM.Burst == 0 {
		c.LLM.Burst = 4
	}
}

// Validate reports missing required credentials. A failure here is fatal at
// startup; the pipeline never runs partially configured.
func (c *Config) Validate() error {
	if c.LLM.Provider == "" {
		return fmt.Errorf("llm.provider is required")
	}
	if c.LLM.Provider != "ollama" && c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required for provider %q", c.LLM.Provider)
	}
	if c.Search.APIKey == "" {
		return fmt.Errorf("search.api_key is required")
	}
	return nil
}
