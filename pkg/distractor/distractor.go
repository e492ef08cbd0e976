// Package distractor produces plausible wrong answers for multiple choice
// questions. Pattern strategies always run; semantic ranking runs when an
// embedder is configured and the document yields enough concepts.
package distractor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/internal/types"
	"github.com/xhad/textotest/pkg/classifier"
	"github.com/xhad/textotest/pkg/store"
	"github.com/xhad/textotest/pkg/tagger"
)

// ErrSimilarityUnavailable wraps embedder and index failures, timeouts included.
var ErrSimilarityUnavailable = errors.New("similarity index unavailable")

type Categorizer interface {
	Category(texts ...string) models.Category
}

type DistractorConfig struct {
	// SimilarityLow defaults to 0.35 when nil.
	SimilarityLow       *float64
	SimilarityHigh      float64
	MinSemanticConcepts int
	Timeout             time.Duration
	DomainPools         map[models.Category][]string

	// Embedder enables semantic ranking. Corpus is an optional shared index
	// consulted in addition to the per-document concepts.
	Embedder    types.Embedder
	Corpus      types.NearestIndex
	CorpusLimit int
	Categorizer Categorizer
}

// Answer is the correct answer a distractor set is built around.
type Answer struct {
	Text       string
	EntityType models.EntityType
	Context    string
}

// Result carries the distractors found. SemanticErr is set when semantic
// ranking was attempted and failed; the distractors are still usable.
type Result struct {
	Distractors []string
	SemanticErr error
}

type Generator struct {
	config DistractorConfig
	tagger tagger.Tagger
}

func NewWithConfig(config DistractorConfig) Generator {
	if config.SimilarityLow == nil {
		low := 0.35
		config.SimilarityLow = &low
	}
	if config.SimilarityHigh == 0 {
		config.SimilarityHigh = 0.9
	}
	if config.MinSemanticConcepts == 0 {
		config.MinSemanticConcepts = 5
	}
	if config.Timeout == 0 {
		config.Timeout = 2 * time.Second
	}
	if config.CorpusLimit == 0 {
		config.CorpusLimit = 20
	}
	if config.Categorizer == nil {
		c := classifier.NewWithConfig(classifier.ClassifierConfig{})
		config.Categorizer = &c
	}

	pools := DefaultDomainPools()
	for cat, entries := range config.DomainPools {
		pools[cat] = entries
	}
	config.DomainPools = pools

	return Generator{
		config: config,
		tagger: tagger.NewWithConfig(tagger.TaggerConfig{}),
	}
}

// Pool is the per-document candidate set. Build it once per run.
type Pool struct {
	concepts []models.Concept
	byTerm   map[string]models.Concept
	terms    []string
	vectors  map[string][]float32
	index    *store.MemoryIndex
	embedder types.Embedder
}

// Semantic reports whether the pool can serve similarity ranking.
func (p *Pool) Semantic() bool {
	return p != nil && p.index != nil
}

// NewPool indexes the document concepts. The returned pool is always usable;
// a non-nil error wraps ErrSimilarityUnavailable and means pattern-only output.
func (g *Generator) NewPool(ctx context.Context, concepts []models.Concept) (*Pool, error) {
	p := &Pool{
		concepts: concepts,
		byTerm:   make(map[string]models.Concept, len(concepts)),
	}
	for _, c := range concepts {
		key := strings.ToLower(c.SurfaceForm)
		if _, ok := p.byTerm[key]; ok {
			continue
		}
		p.byTerm[key] = c
		p.terms = append(p.terms, c.SurfaceForm)
	}

	if g.config.Embedder == nil || len(p.terms) < g.config.MinSemanticConcepts {
		return p, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	vectors, err := g.config.Embedder.CreateEmbedding(ctx, p.terms)
	if err != nil {
		return p, unavailable(err)
	}
	index, err := store.NewMemoryIndex(p.terms, vectors)
	if err != nil {
		return p, unavailable(err)
	}

	p.index = index
	p.embedder = g.config.Embedder
	p.vectors = make(map[string][]float32, len(p.terms))
	for i, term := range p.terms {
		p.vectors[strings.ToLower(term)] = vectors[i]
	}
	return p, nil
}

func (p *Pool) vector(ctx context.Context, text string) ([]float32, error) {
	if v, ok := p.vectors[strings.ToLower(text)]; ok {
		return v, nil
	}
	vectors, err := p.embedder.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 vector, got %d", len(vectors))
	}
	return vectors[0], nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrSimilarityUnavailable, err)
}

// Generate returns up to k distinct distractors for the answer, best first.
// Fewer than k is not an error.
func (g *Generator) Generate(ctx context.Context, answer Answer, pool *Pool, k int) Result {
	var res Result
	answer.Text = strings.TrimSpace(answer.Text)
	if k <= 0 || answer.Text == "" {
		return res
	}

	sel := g.newSelection(answer.Text, k)
	numeric := isNumeric(answer)

	ranked, err := g.semantic(ctx, answer, pool)
	if err != nil {
		res.SemanticErr = err
	}
	sel.block(ranked.tooClose...)

	if numeric {
		sel.add(perturbations(answer)...)
	}
	sel.add(ranked.candidates...)
	if !ranked.ran {
		sel.add(contextual(answer, pool)...)
	}
	if !numeric {
		sel.add(g.domain(answer)...)
		sel.add(swaps(answer.Text)...)
		sel.add(pluralFlips(answer.Text)...)
		sel.add(misspellings(answer.Text)...)
	}

	res.Distractors = sel.items
	return res
}

type ranking struct {
	ran        bool
	candidates []string
	tooClose   []string
}

func (g *Generator) semantic(ctx context.Context, answer Answer, pool *Pool) (ranking, error) {
	var r ranking
	if !pool.Semantic() {
		return r, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	vec, err := pool.vector(ctx, answer.Text)
	if err != nil {
		return r, unavailable(err)
	}
	neighbors, err := pool.index.Nearest(ctx, vec, 0)
	if err != nil {
		return r, unavailable(err)
	}

	r.ran = true
	for _, n := range neighbors {
		c := pool.byTerm[strings.ToLower(n.Candidate)]
		if !compatible(answer.EntityType, c.EntityType) {
			continue
		}
		g.band(&r, n)
	}

	if g.config.Corpus == nil || isNumeric(answer) {
		return r, nil
	}
	hits, err := g.config.Corpus.Nearest(ctx, vec, g.config.CorpusLimit)
	if err != nil {
		return r, unavailable(err)
	}
	for _, n := range hits {
		g.band(&r, n)
	}
	return r, nil
}

func (g *Generator) band(r *ranking, n types.Neighbor) {
	switch {
	case n.Score > g.config.SimilarityHigh:
		r.tooClose = append(r.tooClose, n.Candidate)
	case n.Score >= *g.config.SimilarityLow:
		r.candidates = append(r.candidates, n.Candidate)
	}
}

// contextual ranks same-kind document concepts by surface shape.
func contextual(answer Answer, pool *Pool) []string {
	if pool == nil {
		return nil
	}
	var out []string
	for _, term := range pool.terms {
		if compatible(answer.EntityType, pool.byTerm[strings.ToLower(term)].EntityType) {
			out = append(out, term)
		}
	}
	return byShape(answer.Text, out)
}

func (g *Generator) domain(answer Answer) []string {
	cat := g.config.Categorizer.Category(answer.Text, answer.Context)
	entries := byShape(answer.Text, g.config.DomainPools[cat])
	if cat != models.General {
		entries = append(entries, byShape(answer.Text, g.config.DomainPools[models.General])...)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, matchCase(answer.Text, e))
	}
	return out
}

func compatible(a, b models.EntityType) bool {
	if a == b {
		return true
	}
	loose := func(t models.EntityType) bool {
		return t == models.EntityNone || t == models.EntityProper
	}
	return loose(a) && loose(b)
}

func isNumeric(answer Answer) bool {
	if answer.EntityType == models.EntityQuantity || answer.EntityType == models.EntityDate {
		return true
	}
	return numberPattern.MatchString(answer.Text)
}

// shape scores how much a candidate looks like the answer: character length,
// word count and initial capitalization.
func shape(answer, candidate string) float64 {
	la := utf8.RuneCountInString(answer)
	lc := utf8.RuneCountInString(candidate)
	longest := math.Max(float64(la), float64(lc))
	if longest == 0 {
		return 0
	}
	score := 1 - math.Abs(float64(la-lc))/longest
	score -= 0.5 * math.Abs(float64(len(strings.Fields(answer))-len(strings.Fields(candidate))))
	if upperInitial(answer) == upperInitial(candidate) {
		score += 0.5
	}
	return score
}

func byShape(answer string, candidates []string) []string {
	out := append([]string(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		return shape(answer, out[i]) > shape(answer, out[j])
	})
	return out
}

func upperInitial(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func matchCase(answer, candidate string) string {
	if !upperInitial(answer) || upperInitial(candidate) {
		return candidate
	}
	r, size := utf8.DecodeRuneInString(candidate)
	return string(unicode.ToUpper(r)) + candidate[size:]
}
