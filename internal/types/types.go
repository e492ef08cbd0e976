package types

import (
	"context"

	"github.com/xhad/textotest/internal/models"
)

// Embedder maps strings to fixed-length vectors. Implementations must be
// safe for concurrent use once constructed.
type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// Neighbor is one nearest-neighbor hit.
type Neighbor struct {
	Candidate string
	Score     float64
}

// NearestIndex answers nearest-neighbor queries over a fixed candidate set.
type NearestIndex interface {
	Nearest(ctx context.Context, vector []float32, k int) ([]Neighbor, error)
}

// Normalizer turns extracted text into chunks.
type Normalizer interface {
	Normalize(raw models.RawDocument) models.Document
}
