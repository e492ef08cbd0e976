package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/ollama"
	"golang.org/x/time/rate"

	"github.com/xhad/textotest/internal/types"
)

type EmbedderConfig struct {
	Model     string
	BaseURL   string  // Ollama server URL
	RateLimit float64 // requests per second
}

// Embedder wraps an embedding model behind a request limiter. It is safe
// for concurrent use.
type Embedder struct {
	Config  EmbedderConfig
	client  types.Embedder
	limiter *rate.Limiter
}

func NewEmbedderWithConfig(config EmbedderConfig) (*Embedder, error) {
	config = withDefaults(config)

	emb, err := ollama.New(
		ollama.WithModel(config.Model),
		ollama.WithServerURL(config.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	return NewEmbedderWithClient(config, emb), nil
}

// NewEmbedderWithClient wraps any embedding client, e.g. a test double.
func NewEmbedderWithClient(config EmbedderConfig, client types.Embedder) *Embedder {
	config = withDefaults(config)
	return &Embedder{
		Config:  config,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}
}

func withDefaults(config EmbedderConfig) EmbedderConfig {
	if config.Model == "" {
		config.Model = "nomic-embed-text:latest" // Default Ollama model
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434" // Default Ollama URL
	}
	if config.RateLimit <= 0 {
		config.RateLimit = 10
	}
	return config
}

// CreateEmbedding returns one vector per input text.
func (e *Embedder) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for embedder: %w", err)
	}

	vectors, err := e.client.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("failed to create embeddings: got %d vectors for %d texts", len(vectors), len(texts))
	}

	return vectors, nil
}
