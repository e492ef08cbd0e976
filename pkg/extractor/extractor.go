package extractor

import (
	"math"
	"sort"
	"strings"

	"github.com/kljensen/snowball/english"

	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/pkg/tagger"
)

type ExtractorConfig struct {
	// Nil bonuses take the defaults; an explicit zero disables the bonus.
	HeadingBonus          *float64
	BulletBonus           *float64
	PositionalWeight      *float64
	PositionalDecay       float64
	MinDocumentTokens     int
	SmallDocumentConcepts int
	MaxConcepts           int
	MaxSpanTokens         int
	ExtraStopwords        []string
}

type Extractor struct {
	config           ExtractorConfig
	headingBonus     float64
	bulletBonus      float64
	positionalWeight float64
	tagger           tagger.Tagger
}

func NewWithConfig(config ExtractorConfig) Extractor {
	if config.PositionalDecay == 0 {
		config.PositionalDecay = 10
	}
	if config.MinDocumentTokens == 0 {
		config.MinDocumentTokens = 20
	}
	if config.SmallDocumentConcepts == 0 {
		config.SmallDocumentConcepts = 5
	}
	if config.MaxConcepts == 0 {
		config.MaxConcepts = 50
	}
	if config.MaxSpanTokens == 0 {
		config.MaxSpanTokens = 4
	}

	return Extractor{
		config:           config,
		headingBonus:     orDefault(config.HeadingBonus, 1.0),
		bulletBonus:      orDefault(config.BulletBonus, 0.5),
		positionalWeight: orDefault(config.PositionalWeight, 0.5),
		tagger: tagger.NewWithConfig(tagger.TaggerConfig{
			MaxSpanTokens:  config.MaxSpanTokens,
			ExtraStopwords: config.ExtraStopwords,
		}),
	}
}

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

type instance struct {
	span  tagger.Span
	chunk models.Chunk
}

// Extract ranks the document's key concepts by final score. Concepts are
// unique by lemma and carry every chunk the lemma occurred in.
func (e *Extractor) Extract(chunks []models.Chunk) []models.Concept {
	byLemma := make(map[string][]instance)
	var order []string
	tokenCount := 0

	for _, chunk := range chunks {
		tokens, spans := e.tagger.Candidates(chunk.Text)
		for _, tok := range tokens {
			if tok.Tag != "PUNCT" && tok.Tag != "." {
				tokenCount++
			}
		}
		for _, span := range spans {
			lemma := Lemma(span.Text)
			if lemma == "" {
				continue
			}
			if _, seen := byLemma[lemma]; !seen {
				order = append(order, lemma)
			}
			byLemma[lemma] = append(byLemma[lemma], instance{span: span, chunk: chunk})
		}
	}

	concepts := make([]models.Concept, 0, len(order))
	for _, lemma := range order {
		concepts = append(concepts, e.score(lemma, byLemma[lemma]))
	}

	sort.SliceStable(concepts, func(i, j int) bool {
		return less(concepts[i], concepts[j])
	})

	limit := e.config.MaxConcepts
	if tokenCount < e.config.MinDocumentTokens && e.config.SmallDocumentConcepts < limit {
		limit = e.config.SmallDocumentConcepts
	}
	if len(concepts) > limit {
		concepts = concepts[:limit]
	}

	for i := range concepts {
		concepts[i].ID = i
	}
	return concepts
}

func (e *Extractor) score(lemma string, instances []instance) models.Concept {
	var occurrences []int
	for _, in := range instances {
		if n := len(occurrences); n == 0 || occurrences[n-1] != in.chunk.OrderIndex {
			occurrences = append(occurrences, in.chunk.OrderIndex)
		}
	}
	frequency := math.Log(1 + float64(len(occurrences)))

	var best models.Concept
	for i, in := range instances {
		formatting := 0.0
		if in.chunk.IsHeading {
			formatting += e.headingBonus
		}
		if in.chunk.IsBullet || in.chunk.IsTableRow {
			formatting += e.bulletBonus
		}
		positional := e.positionalWeight / (1 + float64(in.chunk.OrderIndex)/e.config.PositionalDecay)

		c := models.Concept{
			SurfaceForm:     in.span.Text,
			Lemma:           lemma,
			POSTag:          in.span.Head,
			EntityType:      in.span.EntityType,
			SourceChunk:     in.chunk.OrderIndex,
			TokenPosition:   in.span.Start,
			FrequencyScore:  frequency,
			FormattingBonus: formatting,
			PositionalBonus: positional,
			FinalScore:      frequency + formatting + positional,
		}
		if i == 0 || c.FinalScore > best.FinalScore {
			best = c
		}
	}

	best.Occurrences = occurrences
	return best
}

func less(a, b models.Concept) bool {
	if a.FinalScore != b.FinalScore {
		return a.FinalScore > b.FinalScore
	}
	if a.SourceChunk != b.SourceChunk {
		return a.SourceChunk < b.SourceChunk
	}
	if (a.EntityType != models.EntityNone) != (b.EntityType != models.EntityNone) {
		return a.EntityType != models.EntityNone
	}
	if a.TokenPosition != b.TokenPosition {
		return a.TokenPosition < b.TokenPosition
	}
	return a.Lemma < b.Lemma
}

// Lemma normalizes a phrase by lowercasing and stemming each word.
func Lemma(phrase string) string {
	words := strings.FieldsFunc(strings.ToLower(phrase), func(r rune) bool {
		return r == ' ' || r == '-'
	})
	for i, w := range words {
		words[i] = english.Stem(w, true)
	}
	return strings.Join(words, " ")
}
