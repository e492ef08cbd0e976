package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/xhad/textotest/internal/models"
)

type matchGroup struct {
	section  int
	category models.Category
	pairs    []models.MatchPair
	concepts []models.Concept
	chunks   []int
}

// matching groups ranked concepts by section and category and builds one
// question per group from its top concepts. Columns are shuffled with the
// document seed so identical input gives identical columns.
func (g *Generator) matching(doc models.Document, concepts []models.Concept) []models.CandidateQuestion {
	var groups []*matchGroup
	index := make(map[string]*matchGroup)
	usedSentence := make(map[int]bool)
	usedAnswer := make(map[string]bool)

	for _, c := range concepts {
		chunk, ok := g.SupportingSentence(doc, c)
		if !ok || usedSentence[chunk.OrderIndex] || usedAnswer[c.Lemma] {
			continue
		}
		right, ok := fillBlank(chunk.Text, c.SurfaceForm)
		if !ok {
			continue
		}

		category := g.config.Categorizer.Category(chunk.Text, c.SurfaceForm)
		key := fmt.Sprintf("%d/%s", chunk.Section, category)
		group, ok := index[key]
		if !ok {
			group = &matchGroup{section: chunk.Section, category: category}
			index[key] = group
			groups = append(groups, group)
		}
		if len(group.pairs) >= g.config.MatchingPairs {
			continue
		}

		group.pairs = append(group.pairs, models.MatchPair{Left: c.SurfaceForm, Right: right})
		group.concepts = append(group.concepts, c)
		group.chunks = append(group.chunks, chunk.OrderIndex)
		usedSentence[chunk.OrderIndex] = true
		usedAnswer[c.Lemma] = true
	}

	var out []models.CandidateQuestion
	for n, group := range groups {
		if len(group.pairs) < 2 {
			continue
		}

		left := make([]string, len(group.pairs))
		right := make([]string, len(group.pairs))
		ids := make([]int, len(group.concepts))
		for i, p := range group.pairs {
			left[i], right[i] = p.Left, p.Right
			ids[i] = group.concepts[i].ID
		}
		shuffle(left, doc.Seed, uint64(2*n))
		shuffle(right, doc.Seed, uint64(2*n+1))

		out = append(out, models.CandidateQuestion{
			Type:            models.Matching,
			Stem:            matchingStem(group),
			Pairs:           group.pairs,
			LeftColumn:      left,
			RightColumn:     right,
			SupportingChunk: group.chunks[0],
			SourceConcept:   group.concepts[0].ID,
			MatchConcepts:   ids,
			ConceptScore:    group.concepts[0].FinalScore,
		})
	}
	return out
}

func matchingStem(group *matchGroup) string {
	if group.category == models.General {
		return fmt.Sprintf("Match each term from section %d with the statement it completes.", group.section+1)
	}
	return fmt.Sprintf("Match each %s term from section %d with the statement it completes.", group.category, group.section+1)
}

func shuffle(items []string, seed, stream uint64) {
	r := rand.New(rand.NewPCG(seed, stream))
	r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}
