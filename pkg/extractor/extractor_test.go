package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/pkg/extractor"
)

func chunks(texts ...string) []models.Chunk {
	out := make([]models.Chunk, len(texts))
	for i, text := range texts {
		out[i] = models.Chunk{Text: text, OrderIndex: i}
	}
	return out
}

func surfaces(concepts []models.Concept) []string {
	out := make([]string, len(concepts))
	for i, c := range concepts {
		out[i] = c.SurfaceForm
	}
	return out
}

func TestExtractor_SingleSentence(t *testing.T) {
	e := extractor.NewWithConfig(extractor.ExtractorConfig{})

	concepts := e.Extract(chunks("Water boils at 100 degrees Celsius at sea level."))

	require.Len(t, concepts, 3)
	assert.Equal(t, []string{"100 degrees Celsius", "Water", "sea level"}, surfaces(concepts))
	assert.Equal(t, models.EntityQuantity, concepts[0].EntityType)
	for i, c := range concepts {
		assert.Equal(t, i, c.ID)
		assert.Equal(t, []int{0}, c.Occurrences)
		assert.InDelta(t, c.FrequencyScore+c.FormattingBonus+c.PositionalBonus, c.FinalScore, 1e-9)
	}
}

func TestExtractor_DeduplicatesByLemma(t *testing.T) {
	e := extractor.NewWithConfig(extractor.ExtractorConfig{})

	concepts := e.Extract(chunks(
		"Cells divide rapidly.",
		"The cell is the unit of life.",
	))

	require.NotEmpty(t, concepts)
	assert.Equal(t, "Cells", concepts[0].SurfaceForm)
	assert.Equal(t, []int{0, 1}, concepts[0].Occurrences)
	assert.Equal(t, 0, concepts[0].SourceChunk)

	seen := map[string]bool{}
	for _, c := range concepts {
		assert.False(t, seen[c.Lemma], "duplicate lemma %q", c.Lemma)
		seen[c.Lemma] = true
	}
}

func TestExtractor_HeadingBonus(t *testing.T) {
	e := extractor.NewWithConfig(extractor.ExtractorConfig{})

	input := chunks("Energy flows.", "Photosynthesis")
	input[1].IsHeading = true

	concepts := e.Extract(input)

	require.Len(t, concepts, 2)
	assert.Equal(t, "Photosynthesis", concepts[0].SurfaceForm)
	assert.Equal(t, 1.0, concepts[0].FormattingBonus)
	assert.Equal(t, "Energy", concepts[1].SurfaceForm)
	assert.Zero(t, concepts[1].FormattingBonus)
}

func TestExtractor_ZeroHeadingBonus(t *testing.T) {
	zero := 0.0
	e := extractor.NewWithConfig(extractor.ExtractorConfig{HeadingBonus: &zero})

	input := chunks("Energy flows.", "Photosynthesis")
	input[1].IsHeading = true

	concepts := e.Extract(input)

	require.Len(t, concepts, 2)
	assert.Equal(t, "Energy", concepts[0].SurfaceForm)
	for _, c := range concepts {
		assert.Zero(t, c.FormattingBonus)
	}
}

func TestExtractor_SmallDocumentCap(t *testing.T) {
	text := "Albert Einstein, Marie Curie, Isaac Newton, Charles Darwin, Nikola Tesla, Alan Turing studied physics."

	capped := extractor.NewWithConfig(extractor.ExtractorConfig{})
	assert.Len(t, capped.Extract(chunks(text)), 5)

	uncapped := extractor.NewWithConfig(extractor.ExtractorConfig{MinDocumentTokens: 1})
	assert.Len(t, uncapped.Extract(chunks(text)), 7)
}

func TestExtractor_StableOrdering(t *testing.T) {
	e := extractor.NewWithConfig(extractor.ExtractorConfig{})
	input := chunks(
		"The heart pumps blood through arteries.",
		"Veins return blood to the heart.",
		"Capillaries connect arteries and veins.",
	)

	first := e.Extract(input)
	second := e.Extract(input)

	assert.Equal(t, first, second)
	require.NotEmpty(t, first)
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].FinalScore, first[i].FinalScore)
	}
}

func TestExtractor_Empty(t *testing.T) {
	e := extractor.NewWithConfig(extractor.ExtractorConfig{})

	assert.Empty(t, e.Extract(nil))
}

func TestLemma(t *testing.T) {
	assert.Equal(t, extractor.Lemma("Cells"), extractor.Lemma("cell"))
	assert.Equal(t, extractor.Lemma("sea levels"), extractor.Lemma("Sea level"))
	assert.NotEqual(t, extractor.Lemma("atom"), extractor.Lemma("cell"))
}
