package distractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minLength = 2
	maxLength = 60
)

var figureReference = regexp.MustCompile(`(?i)^(figure|fig\.?|table|page|chapter|section)\s*\d+`)

type selection struct {
	answer string
	k      int
	items  []string
	seen   map[string]bool
	gen    *Generator
}

func (g *Generator) newSelection(answer string, k int) *selection {
	lower := strings.ToLower(answer)
	return &selection{
		answer: lower,
		k:      k,
		seen:   map[string]bool{lower: true},
		gen:    g,
	}
}

// block excludes candidates without selecting them.
func (s *selection) block(candidates ...string) {
	for _, c := range candidates {
		s.seen[strings.ToLower(strings.TrimSpace(c))] = true
	}
}

func (s *selection) add(candidates ...string) {
	for _, c := range candidates {
		if len(s.items) >= s.k {
			return
		}
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if s.seen[key] || !s.acceptable(c, key) {
			continue
		}
		s.seen[key] = true
		s.items = append(s.items, c)
	}
}

func (s *selection) acceptable(c, key string) bool {
	if strings.Contains(key, s.answer) || strings.Contains(s.answer, key) {
		return false
	}
	return s.gen.plausible(c, key)
}

// plausible rejects fragments that could never pass for an answer.
func (g *Generator) plausible(c, key string) bool {
	letters, digits := 0, 0
	for _, r := range c {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	if digits == 0 && letters < 2 {
		return false
	}

	n := utf8.RuneCountInString(c)
	if n > maxLength || (n < minLength && letters > 0) {
		return false
	}

	if g.tagger.IsStopword(key) {
		return false
	}
	return !figureReference.MatchString(c)
}
