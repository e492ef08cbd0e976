package processor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/pkg/processor"
)

func texts(chunks []models.Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

func TestProcessor_Normalize(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})

	doc := p.Normalize(models.RawDocument{
		Text: "Water boils at 100 degrees Celsius at sea level.   It freezes at 0 degrees.",
	})

	require.Len(t, doc.Chunks, 2)
	assert.Equal(t, "Water boils at 100 degrees Celsius at sea level.", doc.Chunks[0].Text)
	assert.Equal(t, "It freezes at 0 degrees.", doc.Chunks[1].Text)
	assert.Equal(t, 0, doc.Chunks[0].OrderIndex)
	assert.Equal(t, 1, doc.Chunks[1].OrderIndex)
	assert.NotEmpty(t, doc.ID)
	assert.NotZero(t, doc.Seed)
}

func TestProcessor_EmptyInput(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})

	for _, text := range []string{"", "   ", "\n\t\n"} {
		doc := p.Normalize(models.RawDocument{Text: text})
		assert.True(t, doc.Empty(), "input %q", text)
	}
}

func TestProcessor_SplitSentences(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "abbreviation",
			text: "Dr. Smith measured it. The value was stable.",
			want: []string{"Dr. Smith measured it.", "The value was stable."},
		},
		{
			name: "decimal",
			text: "Pi is roughly 3.14 in value. It is irrational.",
			want: []string{"Pi is roughly 3.14 in value.", "It is irrational."},
		},
		{
			name: "latin abbreviation",
			text: "Some metals, e.g. iron, rust quickly. Gold does not.",
			want: []string{"Some metals, e.g. iron, rust quickly.", "Gold does not."},
		},
		{
			name: "initials",
			text: "J. K. Rowling wrote novels. They sold well!",
			want: []string{"J. K. Rowling wrote novels.", "They sold well!"},
		},
		{
			name: "quoted ending",
			text: `He said "stop." Then he left?`,
			want: []string{`He said "stop."`, "Then he left?"},
		},
		{
			name: "no terminator",
			text: "A heading without punctuation",
			want: []string{"A heading without punctuation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.SplitSentences(tt.text))
		})
	}
}

func TestProcessor_Hints(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})

	text := "Photosynthesis\nPlants convert light into energy.\nChlorophyll absorbs light\nThe Calvin Cycle\nCarbon is fixed in the stroma."
	heading1 := strings.Index(text, "Photosynthesis")
	bullet := strings.Index(text, "Chlorophyll")
	heading2 := strings.Index(text, "The Calvin Cycle")

	doc := p.Normalize(models.RawDocument{
		Text: text,
		Hints: []models.Hint{
			{Start: heading1, End: heading1 + len("Photosynthesis"), Kind: models.HintHeading},
			{Start: bullet, End: bullet + len("Chlorophyll absorbs light"), Kind: models.HintBullet},
			{Start: heading2, End: heading2 + len("The Calvin Cycle"), Kind: models.HintHeading},
		},
	})

	require.Len(t, doc.Chunks, 5)
	assert.True(t, doc.Chunks[0].IsHeading)
	assert.False(t, doc.Chunks[1].IsHeading)
	assert.True(t, doc.Chunks[2].IsBullet)
	assert.True(t, doc.Chunks[3].IsHeading)

	assert.Equal(t, 0, doc.Chunks[0].Section)
	assert.Equal(t, 0, doc.Chunks[2].Section)
	assert.Equal(t, 1, doc.Chunks[3].Section)
	assert.Equal(t, 1, doc.Chunks[4].Section)
}

func TestProcessor_TableRows(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})

	text := "Iron Fe\nGold Au"
	doc := p.Normalize(models.RawDocument{
		Text: text,
		Hints: []models.Hint{
			{Start: 0, End: 4, Kind: models.HintTableCell},
			{Start: 5, End: 7, Kind: models.HintTableCell},
			{Start: 8, End: 12, Kind: models.HintTableCell},
			{Start: 13, End: 15, Kind: models.HintTableCell},
		},
	})

	assert.Equal(t, []string{"Iron | Fe", "Gold | Au"}, texts(doc.Chunks))
	assert.True(t, doc.Chunks[0].IsTableRow)
}

func TestProcessor_Cleaning(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})

	raw := "Copyright © 2021 Example Press\nThe\u00a0\ufb01rst   law\u200b holds. Page 3 of 9\nEnergy is conserved.\xff"
	doc := p.Normalize(models.RawDocument{Text: raw})

	assert.Equal(t, []string{"The first law holds.", "Energy is conserved."}, texts(doc.Chunks))
}

func TestProcessor_KeepBoilerplate(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{KeepBoilerplate: true})

	doc := p.Normalize(models.RawDocument{Text: "Copyright 2021 Example Press"})

	assert.Equal(t, []string{"Copyright 2021 Example Press"}, texts(doc.Chunks))
}

func TestProcessor_ChunksRestartable(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})
	raw := models.RawDocument{Text: "One sentence here. Another one follows. A third closes."}

	seq := p.Chunks(raw)

	var first, second []models.Chunk
	for c := range seq {
		first = append(first, c)
	}
	for c := range seq {
		second = append(second, c)
		break
	}

	require.Len(t, first, 3)
	require.Len(t, second, 1)
	assert.Equal(t, first[0], second[0])
}

func TestProcessor_Deterministic(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})
	raw := models.RawDocument{Text: "Mercury is the closest planet. Venus is the hottest."}

	a := p.Normalize(raw)
	b := p.Normalize(raw)
	c := p.Normalize(models.RawDocument{Text: "Mars is red."})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Seed, c.Seed)
}
