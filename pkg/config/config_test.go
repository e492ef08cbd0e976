package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configData := `
pipeline:
  option_count: 5
  concept_reuse: unique
  matching_pairs: 3

weights:
  heading_bonus: 2.0

distractor:
  similarity_low: 0.4
  similarity_high: 0.8
  domain_pools:
    science: ["photosynthesis", "osmosis"]

classifier:
  hard_keywords: ["synthesize"]
  categories:
    science: ["cell", "atom"]
  type_weights:
    matching: 3.0

embedding:
  enabled: true
  model: "mxbai-embed-large"

database:
  url: "postgres://localhost:5432/test"
  vector_dim: 1024

archive:
  path: "quizzes.db"
`
	err := os.WriteFile(configPath, []byte(configData), 0644)
	require.NoError(t, err)

	t.Setenv("OLLAMA_BASE_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TEXTOTEST_ARCHIVE", "")
	t.Setenv("TEXTOTEST_LOG_MODE", "")

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 5, config.Pipeline.OptionCount)
	assert.Equal(t, "unique", config.Pipeline.ConceptReuse)
	assert.Equal(t, 3, config.Pipeline.MatchingPairs)
	assert.Equal(t, 2.0, *config.Weights.HeadingBonus)
	assert.Equal(t, 0.4, *config.Distractor.SimilarityLow)
	assert.Equal(t, []string{"photosynthesis", "osmosis"}, config.Distractor.DomainPools["science"])
	assert.Equal(t, []string{"synthesize"}, config.Classifier.HardKeywords)
	assert.Equal(t, 3.0, config.Classifier.TypeWeights["matching"])
	assert.True(t, config.Embedding.Enabled)
	assert.Equal(t, "mxbai-embed-large", config.Embedding.Model)
	assert.Equal(t, 1024, config.Database.VectorDim)
	assert.Equal(t, "quizzes.db", config.Archive.Path)

	// Defaults fill the rest
	assert.Equal(t, 20, config.Pipeline.MinDocumentTokens)
	assert.Equal(t, 0.5, *config.Weights.BulletBonus)
	assert.Equal(t, "http://localhost:11434", config.Embedding.BaseURL)
	assert.Equal(t, "corpus_terms", config.Database.TableName)

	assert.Empty(t, config.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  mode: dev\n"), 0644))

	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")
	t.Setenv("DATABASE_URL", "postgres://db:5432/corpus")
	t.Setenv("TEXTOTEST_ARCHIVE", "/tmp/archive.db")
	t.Setenv("TEXTOTEST_LOG_MODE", "prod")

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://ollama:11434", config.Embedding.BaseURL)
	assert.Equal(t, "postgres://db:5432/corpus", config.Database.URL)
	assert.Equal(t, "/tmp/archive.db", config.Archive.Path)
	assert.Equal(t, "prod", config.Log.Mode)
}

func TestLoadConfig_ExplicitZeroWeights(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
weights:
  heading_bonus: 0
  bullet_bonus: 0
  positional_weight: 0
distractor:
  similarity_low: 0
`
	require.NoError(t, os.WriteFile(configPath, []byte(configData), 0644))

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Zero(t, *config.Weights.HeadingBonus)
	assert.Zero(t, *config.Weights.BulletBonus)
	assert.Zero(t, *config.Weights.PositionalWeight)
	assert.Zero(t, *config.Distractor.SimilarityLow)
	assert.Equal(t, 10.0, config.Weights.PositionalDecay)
	assert.Empty(t, config.Validate())
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("pipeline: [not, a, map"), 0644))
	_, err = LoadConfig(configPath)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	config := Default()

	assert.Equal(t, 4, config.Pipeline.OptionCount)
	assert.Equal(t, "per_type", config.Pipeline.ConceptReuse)
	assert.Equal(t, 0.35, *config.Distractor.SimilarityLow)
	assert.Equal(t, 0.9, config.Distractor.SimilarityHigh)
	assert.Equal(t, 2.0, config.Classifier.EasyMax)
	assert.Equal(t, 4.0, config.Classifier.MediumMax)
	assert.Equal(t, "quiet", config.Log.Mode)
	assert.Empty(t, config.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"option count", func(c *Config) { c.Pipeline.OptionCount = 1 }, "pipeline.option_count"},
		{"reuse policy", func(c *Config) { c.Pipeline.ConceptReuse = "twice" }, "pipeline.concept_reuse"},
		{"matching pairs", func(c *Config) { c.Pipeline.MatchingPairs = 1 }, "pipeline.matching_pairs"},
		{"similarity band", func(c *Config) { c.Distractor.SimilarityLow = Float(0.95) }, "distractor.similarity_low"},
		{"tiers", func(c *Config) { c.Classifier.EasyMax = 5 }, "classifier.easy_max"},
		{"type weights", func(c *Config) { c.Classifier.TypeWeights = map[string]float64{"essay": 3} }, "classifier.type_weights"},
		{"categories", func(c *Config) { c.Classifier.Categories = map[string][]string{"art": {"paint"}} }, "classifier.categories"},
		{"pools", func(c *Config) { c.Distractor.DomainPools = map[string][]string{"art": {"oil"}} }, "distractor.domain_pools"},
		{"embedding url", func(c *Config) { c.Embedding.Enabled = true; c.Embedding.BaseURL = "localhost" }, "embedding.base_url"},
		{"table name", func(c *Config) { c.Database.TableName = "terms; drop" }, "database.table_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)

			errs := config.Validate()
			require.NotEmpty(t, errs)

			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}
