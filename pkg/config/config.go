package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Pipeline struct {
		OptionCount           int    `yaml:"option_count"`
		ConceptReuse          string `yaml:"concept_reuse"`
		MatchingPairs         int    `yaml:"matching_pairs"`
		MinDocumentTokens     int    `yaml:"min_document_tokens"`
		SmallDocumentConcepts int    `yaml:"small_document_concepts"`
		MaxSpanTokens         int    `yaml:"max_span_tokens"`
		MaxConcepts           int    `yaml:"max_concepts"`
	} `yaml:"pipeline"`

	// Weights and similarity_low accept an explicit 0, so they are pointers.
	Weights struct {
		HeadingBonus     *float64 `yaml:"heading_bonus"`
		BulletBonus      *float64 `yaml:"bullet_bonus"`
		PositionalWeight *float64 `yaml:"positional_weight"`
		PositionalDecay  float64  `yaml:"positional_decay"`
	} `yaml:"weights"`

	Distractor struct {
		SimilarityLow       *float64            `yaml:"similarity_low"`
		SimilarityHigh      float64             `yaml:"similarity_high"`
		MinSemanticConcepts int                 `yaml:"min_semantic_concepts"`
		TimeoutMS           int                 `yaml:"timeout_ms"`
		DomainPools         map[string][]string `yaml:"domain_pools"`
	} `yaml:"distractor"`

	Classifier struct {
		TypeWeights  map[string]float64  `yaml:"type_weights"`
		HardKeywords []string            `yaml:"hard_keywords"`
		EasyKeywords []string            `yaml:"easy_keywords"`
		EasyMax      float64             `yaml:"easy_max"`
		MediumMax    float64             `yaml:"medium_max"`
		Categories   map[string][]string `yaml:"categories"`
	} `yaml:"classifier"`

	Embedding struct {
		Enabled   bool    `yaml:"enabled"`
		BaseURL   string  `yaml:"base_url"`
		Model     string  `yaml:"model"`
		RateLimit float64 `yaml:"rate_limit"`
	} `yaml:"embedding"`

	Database struct {
		URL         string `yaml:"url"`
		TableName   string `yaml:"table_name"`
		VectorDim   int    `yaml:"vector_dim"`
		SearchLimit int    `yaml:"search_limit"`
	} `yaml:"database"`

	Archive struct {
		Path string `yaml:"path"`
	} `yaml:"archive"`

	Log struct {
		Mode string `yaml:"mode"`
	} `yaml:"log"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"textotest.yaml",
			"config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/textotest/config.yaml"),
			"/etc/textotest/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	mergeWithEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

func applyDefaults(config *Config) {
	if config.Pipeline.OptionCount == 0 {
		config.Pipeline.OptionCount = 4
	}
	if config.Pipeline.ConceptReuse == "" {
		config.Pipeline.ConceptReuse = "per_type"
	}
	if config.Pipeline.MatchingPairs == 0 {
		config.Pipeline.MatchingPairs = 4
	}
	if config.Pipeline.MinDocumentTokens == 0 {
		config.Pipeline.MinDocumentTokens = 20
	}
	if config.Pipeline.SmallDocumentConcepts == 0 {
		config.Pipeline.SmallDocumentConcepts = 5
	}
	if config.Pipeline.MaxSpanTokens == 0 {
		config.Pipeline.MaxSpanTokens = 4
	}
	if config.Pipeline.MaxConcepts == 0 {
		config.Pipeline.MaxConcepts = 50
	}

	if config.Weights.HeadingBonus == nil {
		config.Weights.HeadingBonus = Float(1.0)
	}
	if config.Weights.BulletBonus == nil {
		config.Weights.BulletBonus = Float(0.5)
	}
	if config.Weights.PositionalWeight == nil {
		config.Weights.PositionalWeight = Float(0.5)
	}
	if config.Weights.PositionalDecay == 0 {
		config.Weights.PositionalDecay = 10
	}

	if config.Distractor.SimilarityLow == nil {
		config.Distractor.SimilarityLow = Float(0.35)
	}
	if config.Distractor.SimilarityHigh == 0 {
		config.Distractor.SimilarityHigh = 0.9
	}
	if config.Distractor.MinSemanticConcepts == 0 {
		config.Distractor.MinSemanticConcepts = 5
	}
	if config.Distractor.TimeoutMS == 0 {
		config.Distractor.TimeoutMS = 2000
	}

	if config.Classifier.EasyMax == 0 {
		config.Classifier.EasyMax = 2.0
	}
	if config.Classifier.MediumMax == 0 {
		config.Classifier.MediumMax = 4.0
	}

	if config.Embedding.BaseURL == "" {
		config.Embedding.BaseURL = "http://localhost:11434"
	}
	if config.Embedding.Model == "" {
		config.Embedding.Model = "nomic-embed-text"
	}
	if config.Embedding.RateLimit == 0 {
		config.Embedding.RateLimit = 10
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "corpus_terms"
	}
	if config.Database.VectorDim == 0 {
		config.Database.VectorDim = 768
	}
	if config.Database.SearchLimit == 0 {
		config.Database.SearchLimit = 20
	}

	if config.Log.Mode == "" {
		config.Log.Mode = "quiet"
	}
}

// Float returns a pointer to v, for the optional float settings.
func Float(v float64) *float64 {
	return &v
}

func mergeWithEnv(config *Config) {
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.Embedding.BaseURL = baseURL
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
	if archive := os.Getenv("TEXTOTEST_ARCHIVE"); archive != "" {
		config.Archive.Path = archive
	}
	if mode := os.Getenv("TEXTOTEST_LOG_MODE"); mode != "" {
		config.Log.Mode = mode
	}
}
