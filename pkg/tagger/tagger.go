// Package tagger assigns part-of-speech tags and named-entity labels to
// English sentences with a lexicon and positional rules. Output depends only
// on the input text.
package tagger

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Token struct {
	Text  string
	Lower string
	Tag   string
	Start int
	End   int
}

func (t Token) IsVerb() bool {
	return strings.HasPrefix(t.Tag, "VB") || t.Tag == "MD"
}

type TaggerConfig struct {
	MaxSpanTokens  int
	ExtraStopwords []string
}

type Tagger struct {
	config    TaggerConfig
	stopwords map[string]bool
}

func NewWithConfig(config TaggerConfig) Tagger {
	if config.MaxSpanTokens == 0 {
		config.MaxSpanTokens = 4
	}

	stop := make(map[string]bool, len(stopwords)+len(config.ExtraStopwords))
	for w := range stopwords {
		stop[w] = true
	}
	for _, w := range config.ExtraStopwords {
		stop[strings.ToLower(w)] = true
	}

	return Tagger{config: config, stopwords: stop}
}

var tokenPattern = regexp.MustCompile(`\d{4}s\b|\d+(?:[.,]\d+)*%?|[\p{L}\p{M}]+(?:['’\-][\p{L}\p{M}]+)*|\S`)

// Tokenize splits text into words, numbers (decimals, percentages and
// decades stay whole) and single punctuation marks.
func Tokenize(text string) []Token {
	var tokens []Token
	for _, loc := range tokenPattern.FindAllStringIndex(text, -1) {
		word := text[loc[0]:loc[1]]
		tokens = append(tokens, Token{
			Text:  word,
			Lower: strings.ToLower(word),
			Start: loc[0],
			End:   loc[1],
		})
	}
	return tokens
}

// Tag tokenizes text and resolves a tag for every token.
func (t *Tagger) Tag(text string) []Token {
	tokens := Tokenize(text)
	lexical := make([]string, len(tokens))
	for i := range tokens {
		lexical[i] = lexicalTag(tokens, i)
	}

	verbSeen := false
	for i := range tokens {
		prev := ""
		if i > 0 {
			prev = tokens[i-1].Tag
		}
		next := ""
		if i+1 < len(tokens) {
			next = lexical[i+1]
		}
		tokens[i].Tag = resolve(lexical[i], prev, next, i, tokens, verbSeen)
		if tokens[i].IsVerb() {
			verbSeen = true
		}
		if tokens[i].Tag == "." {
			verbSeen = false
		}
	}
	return tokens
}

// HasVerb reports whether text contains a finite or auxiliary verb.
func (t *Tagger) HasVerb(text string) bool {
	for _, tok := range t.Tag(text) {
		if tok.IsVerb() {
			return true
		}
	}
	return false
}

func (t *Tagger) IsStopword(word string) bool {
	return t.stopwords[strings.ToLower(word)]
}

func isWord(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}

func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func isAcronym(s string) bool {
	if len(s) < 2 || len(s) > 6 {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// sentenceInitial is true for the first word of a sentence or quotation.
func sentenceInitial(tokens []Token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch tokens[j].Text {
		case `"`, "'", "(", "“", "‘":
			continue
		case ".", "!", "?", ":":
			return true
		}
		return false
	}
	return true
}

func lexicalTag(tokens []Token, i int) string {
	tok := tokens[i]
	r, _ := utf8.DecodeRuneInString(tok.Text)

	switch {
	case unicode.IsDigit(r):
		return "CD"
	case tok.Text == "$":
		return "$"
	case tok.Text == "%":
		return "NN"
	case tok.Text == "." || tok.Text == "!" || tok.Text == "?":
		return "."
	case !unicode.IsLetter(r):
		return "PUNCT"
	}

	if isAcronym(tok.Text) && tok.Text != "I" {
		return "NNP"
	}

	if isCapitalized(tok.Text) {
		if !sentenceInitial(tokens, i) {
			return "NNP"
		}
		if _, closed := closedClass[tok.Lower]; !closed && initialIsProper(tokens, i) {
			return "NNP"
		}
	}

	return wordTag(tok.Lower)
}

// initialIsProper decides whether a capitalized sentence-initial word is a name.
func initialIsProper(tokens []Token, i int) bool {
	lower := tokens[i].Lower
	if firstNames[lower] || titles[lower] || places[lower] {
		return true
	}
	if i+1 < len(tokens) && isCapitalized(tokens[i+1].Text) && isWord(tokens[i+1].Text) {
		_, closed := closedClass[tokens[i+1].Lower]
		return !closed
	}
	return false
}

func wordTag(w string) string {
	if tag, ok := closedClass[w]; ok {
		return tag
	}
	if numberWords[w] {
		return "CD"
	}
	if verbs[w] {
		return "VB?"
	}
	if adjectives[w] {
		return "JJ"
	}
	if inflectedNouns[w] {
		if strings.HasSuffix(w, "s") {
			return "NNS"
		}
		return "NN"
	}

	switch {
	case strings.HasSuffix(w, "ly") && len(w) > 4:
		return "RB"
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		return "VBG?"
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		return "VBD?"
	case strings.HasSuffix(w, "s") && len(w) > 3:
		stem := strings.TrimSuffix(w, "s")
		if verbs[stem] || verbs[strings.TrimSuffix(w, "es")] || (strings.HasSuffix(w, "ies") && verbs[strings.TrimSuffix(w, "ies")+"y"]) {
			return "VBZ?"
		}
		if strings.HasSuffix(w, "ss") || strings.HasSuffix(w, "us") || strings.HasSuffix(w, "is") {
			return "NN"
		}
		return "NNS?"
	}

	for _, suffix := range adjectiveSuffixes {
		if strings.HasSuffix(w, suffix) && len(w) > len(suffix)+2 {
			return "JJ"
		}
	}
	return "NN"
}

var (
	nominalContext = map[string]bool{"DT": true, "JJ": true, "PRP$": true, "IN": true, "CD": true}
	subjectContext = map[string]bool{"NN": true, "NNS": true, "NNP": true, "PRP": true, "WP": true}
)

func isAuxToken(tok Token) bool {
	_, aux := auxiliaries[tok.Lower]
	return aux || tok.Tag == "MD"
}

func resolve(lexical, prev, next string, i int, tokens []Token, verbSeen bool) string {
	switch lexical {
	case "VB?":
		switch {
		case prev == "TO" || prev == "MD":
			return "VB"
		case i > 0 && isAuxToken(tokens[i-1]):
			return "VB"
		case nominalContext[prev]:
			return "NN"
		case prev == "" || prev == "." || subjectContext[prev] || prev == "RB":
			return "VBP"
		case prev == "CC" && i > 1 && tokens[i-2].IsVerb():
			return "VB"
		}
		return "NN"

	case "VBZ?":
		if nominalContext[prev] || prev == "" || prev == "." {
			return "NNS"
		}
		return "VBZ"

	case "NNS?":
		afterSubject := prev == "NN" || prev == "NNP" || prev == "PRP"
		verbNext := next == "IN" || next == "DT" || next == "CD" || next == "RB" || next == "PRP$" || next == "TO"
		if afterSubject && verbNext && !verbSeen {
			return "VBZ"
		}
		return "NNS"

	case "VBD?":
		switch {
		case prev == "DT" || prev == "PRP$":
			return "JJ"
		case i > 0 && isAuxToken(tokens[i-1]):
			return "VBN"
		case verbSeen:
			return "VBN"
		case subjectContext[prev] || prev == "RB":
			return "VBD"
		}
		return "JJ"

	case "VBG?":
		switch {
		case prev == "DT" || prev == "PRP$" || prev == "JJ":
			return "NN"
		case next == "NN" || next == "NNS" || next == "NNS?":
			if prev == "" || prev == "." {
				return "VBG"
			}
			return "JJ"
		}
		return "VBG"
	}

	return lexical
}
