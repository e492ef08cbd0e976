package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/pkg/tagger"
)

const completeFrame = `Which term completes the statement: "%s"`

// interrogative turns a sentence into a question about the concept span.
// A subject span becomes "What/Who ...?", a quantity becomes "how many
// <unit>", a date "what year", and an object "what". Spans embedded in a
// larger noun phrase fall back to a completion frame.
func (g *Generator) interrogative(sentence string, c models.Concept) (string, bool) {
	idx := locate(sentence, c.SurfaceForm)
	if idx < 0 {
		return "", false
	}
	before := sentence[:idx]
	after := sentence[idx+len(c.SurfaceForm):]
	if strings.TrimFunc(after, isPunctOrSpace) == "" && strings.TrimFunc(before, isPunctOrSpace) == "" {
		return "", false
	}

	if onlyDeterminers(before) && g.startsWithVerb(after) {
		wh := "What"
		if c.EntityType == models.EntityPerson {
			wh = "Who"
		}
		return question(wh + after), true
	}

	prev := lastWord(before)
	if c.EntityType != models.EntityNone && !c.IsQuantity() && tagger.IsDeterminer(prev) {
		before = strings.TrimSuffix(strings.TrimRight(before, " "), prev)
		prev = lastWord(before)
	}

	var phrase string
	switch c.EntityType {
	case models.EntityQuantity:
		phrase = quantityPhrase(c.SurfaceForm)
	case models.EntityDate:
		phrase = datePhrase(c.SurfaceForm)
	case models.EntityPerson:
		phrase = "who"
		if tagger.IsPreposition(prev) {
			phrase = "whom"
		}
	case models.EntityLocation:
		phrase = "what"
		if tagger.IsPreposition(prev) {
			phrase = "what place"
		}
	default:
		if prev != "" && g.embedded(before) {
			blanked, ok := fillBlank(sentence, c.SurfaceForm)
			if !ok {
				return "", false
			}
			return strings.Replace(completeFrame, "%s", blanked, 1) + "?", true
		}
		phrase = "what"
	}

	if strings.TrimSpace(before) == "" {
		return question(capitalize(phrase) + after), true
	}
	return question(before + phrase + after), true
}

// shortAnswer words the same question as an open prompt.
func (g *Generator) shortAnswer(sentence string, c models.Concept) (string, bool) {
	stem, ok := g.interrogative(sentence, c)
	if !ok {
		return "", false
	}
	first, _, _ := strings.Cut(stem, " ")
	switch first {
	case "What", "Who", "Which", "How":
		stem = strings.ToLower(first) + stem[len(first):]
	}
	return "In a few words, " + stem, true
}

// embedded reports whether the text before a span ends inside a noun phrase,
// e.g. "the" or an adjective.
func (g *Generator) embedded(before string) bool {
	tokens := g.tagger.Tag(before)
	if len(tokens) == 0 {
		return false
	}
	switch tokens[len(tokens)-1].Tag {
	case "DT", "JJ", "PRP$", "CD", "NN", "NNS", "NNP", "VBG":
		return true
	}
	return false
}

func (g *Generator) startsWithVerb(after string) bool {
	for _, tok := range g.tagger.Tag("It" + after) {
		if tok.Text == "It" {
			continue
		}
		if tok.Tag == "RB" {
			continue
		}
		return tok.IsVerb()
	}
	return false
}

func quantityPhrase(surface string) string {
	tokens := tagger.Tokenize(surface)
	if len(tokens) > 0 && tokens[0].Text == "$" {
		return "how much money"
	}
	for _, tok := range tokens {
		if tok.Text == "%" || strings.HasSuffix(tok.Text, "%") || tok.Lower == "percent" {
			return "what percentage"
		}
	}
	for _, tok := range tokens {
		r, _ := utf8.DecodeRuneInString(tok.Text)
		if unicode.IsDigit(r) || !tagger.IsUnit(tok.Text) {
			continue
		}
		switch tok.Lower {
		case "million", "billion", "thousand", "hundred", "trillion":
			continue
		}
		return "how many " + surface[tok.Start:]
	}
	return "what number"
}

func datePhrase(surface string) string {
	tokens := tagger.Tokenize(surface)
	for _, tok := range tokens {
		if tagger.IsMonth(tok.Text) {
			return "what date"
		}
	}
	if strings.HasSuffix(surface, "s") {
		return "what decade"
	}
	return "what year"
}

func onlyDeterminers(before string) bool {
	for _, w := range strings.Fields(before) {
		if !tagger.IsDeterminer(w) {
			return false
		}
	}
	return true
}

func lastWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimFunc(fields[len(fields)-1], isPunctOrSpace)
}

func isPunctOrSpace(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r)
}

// question swaps terminal punctuation for a question mark.
func question(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".!?;:,")
	return s + "?"
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
