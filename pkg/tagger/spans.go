package tagger

import (
	"regexp"
	"sort"

	"github.com/xhad/textotest/internal/models"
)

// Span is a candidate concept inside one sentence. Start and End index
// tokens (End exclusive); Text is the verbatim source substring.
type Span struct {
	Start      int
	End        int
	Text       string
	Head       string
	EntityType models.EntityType
}

var yearPattern = regexp.MustCompile(`^(1[0-9]{3}|20[0-9]{2})s?$`)

// Candidates returns entity spans and noun-phrase spans in token order.
// Noun phrases overlapping an entity are dropped.
func (t *Tagger) Candidates(text string) ([]Token, []Span) {
	tokens := t.Tag(text)
	used := make([]bool, len(tokens))

	spans := t.numericEntities(tokens, used)
	spans = append(spans, t.nameEntities(tokens, used)...)
	spans = append(spans, t.nounPhrases(tokens, used)...)

	for i := range spans {
		spans[i].Text = text[tokens[spans[i].Start].Start:tokens[spans[i].End-1].End]
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
	return tokens, spans
}

func mark(used []bool, start, end int) {
	for i := start; i < end; i++ {
		used[i] = true
	}
}

func (t *Tagger) numericEntities(tokens []Token, used []bool) []Span {
	var spans []Span
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		currency := tok.Text == "$" && i+1 < len(tokens) && tokens[i+1].Tag == "CD"
		if tok.Tag != "CD" && !currency {
			continue
		}

		start, j := i, i
		if currency {
			j++
		}
		for j < len(tokens) && tokens[j].Tag == "CD" {
			j++
		}
		numberEnd := j
		for j < len(tokens) {
			if units[tokens[j].Lower] {
				j++
				continue
			}
			if tokens[j].Lower == "per" && j+1 < len(tokens) && units[tokens[j+1].Lower] {
				j += 2
				continue
			}
			break
		}
		hasUnit := j > numberEnd

		entity := models.EntityQuantity
		if start > 0 && months[tokens[start-1].Lower] && !used[start-1] {
			entity = models.EntityDate
			start--
			if j+1 < len(tokens) && tokens[j].Text == "," && yearPattern.MatchString(tokens[j+1].Text) {
				j += 2
			}
		} else if !hasUnit && !currency && numberEnd == i+1 && yearPattern.MatchString(tok.Text) {
			entity = models.EntityDate
		} else if !hasUnit && !currency && !isDigits(tok.Text) {
			// Bare number words are too weak to quiz on.
			i = j - 1
			continue
		}

		spans = append(spans, Span{Start: start, End: j, Head: "CD", EntityType: entity})
		mark(used, start, j)
		i = j - 1
	}
	return spans
}

func isDigits(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func (t *Tagger) nameEntities(tokens []Token, used []bool) []Span {
	var spans []Span
	for i := 0; i < len(tokens); i++ {
		if used[i] || tokens[i].Tag != "NNP" {
			continue
		}

		j := i + 1
		for j < len(tokens) && !used[j] {
			if tokens[j].Tag == "NNP" {
				j++
				continue
			}
			// "Dr. Smith"
			if tokens[j].Text == "." && titles[tokens[j-1].Lower] && j+1 < len(tokens) && tokens[j+1].Tag == "NNP" {
				j++
				continue
			}
			// "University of Chicago", "Treaty of the Nile"
			if connectors[tokens[j].Lower] && j+1 < len(tokens) && (tokens[j+1].Tag == "NNP" || (tokens[j+1].Lower == "the" && j+2 < len(tokens) && tokens[j+2].Tag == "NNP")) {
				j++
				continue
			}
			break
		}

		spans = append(spans, Span{Start: i, End: j, Head: "NNP", EntityType: classifyName(tokens[i:j])})
		mark(used, i, j)
		i = j - 1
	}
	return spans
}

func classifyName(run []Token) models.EntityType {
	first := run[0].Lower
	if len(run) > 1 && (titles[first] || firstNames[first]) {
		return models.EntityPerson
	}

	acronyms := true
	for _, tok := range run {
		if orgCues[tok.Lower] {
			return models.EntityOrganization
		}
		if locationCues[tok.Lower] {
			return models.EntityLocation
		}
		if !isAcronym(tok.Text) {
			acronyms = false
		}
	}
	if acronyms {
		return models.EntityOrganization
	}

	if places[first] || places[run[len(run)-1].Lower] {
		return models.EntityLocation
	}
	return models.EntityProper
}

func nominal(tag string) bool {
	return tag == "JJ" || tag == "NN" || tag == "NNS" || tag == "NNP"
}

func (t *Tagger) nounPhrases(tokens []Token, used []bool) []Span {
	var spans []Span
	for i := 0; i < len(tokens); {
		if used[i] || !nominal(tokens[i].Tag) || !isWord(tokens[i].Text) {
			i++
			continue
		}

		j := i
		for j < len(tokens) && !used[j] && nominal(tokens[j].Tag) && isWord(tokens[j].Text) {
			j++
		}
		next := j

		start, end := i, j
		for end > start && tokens[end-1].Tag == "JJ" {
			end--
		}
		if end-start > t.config.MaxSpanTokens {
			start = end - t.config.MaxSpanTokens
		}
		for start < end && t.stopwords[tokens[start].Lower] {
			start++
		}

		if end > start && !t.allStopwords(tokens[start:end]) && (end-start > 1 || len(tokens[start].Text) > 1) {
			spans = append(spans, Span{Start: start, End: end, Head: tokens[end-1].Tag})
		}
		i = next
	}
	return spans
}

func (t *Tagger) allStopwords(run []Token) bool {
	for _, tok := range run {
		if !t.stopwords[tok.Lower] {
			return false
		}
	}
	return true
}
