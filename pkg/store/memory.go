package store

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/xhad/textotest/internal/types"
)

// MemoryIndex is a per-run cosine index over a fixed set of candidates.
// It is read-only after construction.
type MemoryIndex struct {
	terms   []string
	vectors [][]float32
}

func NewMemoryIndex(terms []string, vectors [][]float32) (*MemoryIndex, error) {
	if len(terms) != len(vectors) {
		return nil, fmt.Errorf("failed to build index: %d terms but %d vectors", len(terms), len(vectors))
	}
	return &MemoryIndex{terms: terms, vectors: vectors}, nil
}

func (m *MemoryIndex) Len() int {
	return len(m.terms)
}

// Nearest returns up to k candidates by descending cosine similarity.
// Equal scores are ordered by candidate text.
func (m *MemoryIndex) Nearest(ctx context.Context, vector []float32, k int) ([]types.Neighbor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	neighbors := make([]types.Neighbor, 0, len(m.terms))
	for i, term := range m.terms {
		neighbors = append(neighbors, types.Neighbor{
			Candidate: term,
			Score:     Cosine(vector, m.vectors[i]),
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		if neighbors[i].Score != neighbors[j].Score {
			return neighbors[i].Score > neighbors[j].Score
		}
		return neighbors[i].Candidate < neighbors[j].Candidate
	})

	if k > 0 && len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := 0; i < len(a); i++ {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
