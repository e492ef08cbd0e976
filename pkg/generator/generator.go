package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/pkg/classifier"
	"github.com/xhad/textotest/pkg/tagger"
)

// Blank is the marker that replaces the answer in fill-in-blank stems.
const Blank = "_____"

// Categorizer assigns a subject category to text. Matching groups concepts by it.
type Categorizer interface {
	Category(texts ...string) models.Category
}

type GeneratorConfig struct {
	MatchingPairs int
	Categorizer   Categorizer
}

type Generator struct {
	config GeneratorConfig
	tagger tagger.Tagger
}

func NewWithConfig(config GeneratorConfig) Generator {
	if config.MatchingPairs < 2 {
		config.MatchingPairs = 4
	}
	if config.Categorizer == nil {
		c := classifier.NewWithConfig(classifier.ClassifierConfig{})
		config.Categorizer = &c
	}

	return Generator{
		config: config,
		tagger: tagger.NewWithConfig(tagger.TaggerConfig{}),
	}
}

// Generate builds candidates of one type from ranked concepts. Concepts
// without usable sentence material are skipped.
func (g *Generator) Generate(doc models.Document, concepts []models.Concept, qtype models.QuestionType) []models.CandidateQuestion {
	switch qtype {
	case models.MultipleChoice, models.ShortAnswer, models.FillBlank:
		var out []models.CandidateQuestion
		for _, c := range concepts {
			if q, ok := g.Question(doc, c, qtype); ok {
				out = append(out, q)
			}
		}
		return out
	case models.TrueFalse:
		return g.trueFalse(doc, concepts)
	case models.Matching:
		return g.matching(doc, concepts)
	}
	return nil
}

// Question builds a single-concept question of type MCQ, SHORT_ANSWER or
// FILL_BLANK.
func (g *Generator) Question(doc models.Document, c models.Concept, qtype models.QuestionType) (models.CandidateQuestion, bool) {
	chunk, ok := g.SupportingSentence(doc, c)
	if !ok {
		return models.CandidateQuestion{}, false
	}

	var stem string
	switch qtype {
	case models.FillBlank:
		stem, ok = fillBlank(chunk.Text, c.SurfaceForm)
	case models.MultipleChoice:
		stem, ok = g.interrogative(chunk.Text, c)
	case models.ShortAnswer:
		stem, ok = g.shortAnswer(chunk.Text, c)
	default:
		ok = false
	}
	if !ok {
		return models.CandidateQuestion{}, false
	}

	return models.CandidateQuestion{
		Type:            qtype,
		Stem:            stem,
		CorrectAnswer:   c.SurfaceForm,
		SupportingChunk: chunk.OrderIndex,
		SourceConcept:   c.ID,
		ConceptScore:    c.FinalScore,
	}, true
}

// SupportingSentence picks the shortest chunk that mentions the concept and
// has a verb. Equal lengths keep the earlier chunk.
func (g *Generator) SupportingSentence(doc models.Document, c models.Concept) (models.Chunk, bool) {
	var best models.Chunk
	found := false
	for _, idx := range c.Occurrences {
		chunk, ok := doc.Chunk(idx)
		if !ok || chunk.IsHeading || locate(chunk.Text, c.SurfaceForm) < 0 {
			continue
		}
		if found && len(chunk.Text) >= len(best.Text) {
			continue
		}
		if !g.tagger.HasVerb(chunk.Text) {
			continue
		}
		best, found = chunk, true
	}
	return best, found
}

func fillBlank(sentence, surface string) (string, bool) {
	if strings.Contains(sentence, Blank) {
		return "", false
	}
	idx := locate(sentence, surface)
	if idx < 0 {
		return "", false
	}
	stem := sentence[:idx] + Blank + sentence[idx+len(surface):]
	if len(strings.Fields(strings.Replace(stem, Blank, "", 1))) < 2 {
		return "", false
	}
	return stem, true
}

func (g *Generator) trueFalse(doc models.Document, concepts []models.Concept) []models.CandidateQuestion {
	var out []models.CandidateQuestion
	used := make(map[int]bool)
	trues, falses := 0, 0

	for _, c := range concepts {
		chunk, ok := g.SupportingSentence(doc, c)
		if !ok || used[chunk.OrderIndex] {
			continue
		}
		used[chunk.OrderIndex] = true

		stem, answer := chunk.Text, "True"
		if falses < trues {
			if negated, ok := g.Negate(chunk.Text); ok {
				stem, answer = negated, "False"
			}
		}
		if answer == "True" {
			trues++
		} else {
			falses++
		}

		out = append(out, models.CandidateQuestion{
			Type:            models.TrueFalse,
			Stem:            stem,
			CorrectAnswer:   answer,
			SupportingChunk: chunk.OrderIndex,
			SourceConcept:   c.ID,
			ConceptScore:    c.FinalScore,
		})
	}
	return out
}

// locate finds surface in sentence as a whole-word match.
func locate(sentence, surface string) int {
	if surface == "" {
		return -1
	}
	for offset := 0; offset < len(sentence); {
		i := strings.Index(sentence[offset:], surface)
		if i < 0 {
			return -1
		}
		start, end := offset+i, offset+i+len(surface)
		before, _ := utf8.DecodeLastRuneInString(sentence[:start])
		after, _ := utf8.DecodeRuneInString(sentence[end:])
		if !isWordRune(before) && !isWordRune(after) {
			return start
		}
		offset = start + 1
	}
	return -1
}

func isWordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
