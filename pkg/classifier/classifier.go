package classifier

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"

	"github.com/xhad/textotest/internal/models"
)

// Points per tier are fixed.
var points = map[models.Difficulty]int{
	models.Easy:   1,
	models.Medium: 2,
	models.Hard:   3,
}

func Points(d models.Difficulty) int {
	return points[d]
}

type ClassifierConfig struct {
	TypeWeights  map[models.QuestionType]float64
	HardKeywords []string
	EasyKeywords []string
	EasyMax      float64
	MediumMax    float64
	Categories   map[models.Category][]string
}

type Classifier struct {
	config     ClassifierConfig
	hard       map[string]bool
	easy       map[string]bool
	categories map[models.Category]map[string]bool
}

func NewWithConfig(config ClassifierConfig) Classifier {
	weights := DefaultTypeWeights()
	for t, w := range config.TypeWeights {
		weights[t] = w
	}
	config.TypeWeights = weights

	if len(config.HardKeywords) == 0 {
		config.HardKeywords = DefaultHardKeywords()
	}
	if len(config.EasyKeywords) == 0 {
		config.EasyKeywords = DefaultEasyKeywords()
	}
	if config.EasyMax == 0 {
		config.EasyMax = 2.0
	}
	if config.MediumMax == 0 {
		config.MediumMax = 4.0
	}

	categories := DefaultCategories()
	for c, words := range config.Categories {
		categories[c] = words
	}
	config.Categories = categories

	c := Classifier{
		config:     config,
		hard:       stemSet(config.HardKeywords),
		easy:       stemSet(config.EasyKeywords),
		categories: make(map[models.Category]map[string]bool),
	}
	for cat, words := range categories {
		c.categories[cat] = stemSet(words)
	}
	return c
}

// Classify labels a question with difficulty, category and points.
func (c *Classifier) Classify(q models.CandidateQuestion, supporting string) models.ScoredQuestion {
	difficulty := c.Difficulty(q, supporting)

	texts := []string{q.Stem, supporting, q.CorrectAnswer}
	for _, p := range q.Pairs {
		texts = append(texts, p.Left, p.Right)
	}

	return models.ScoredQuestion{
		CandidateQuestion: q,
		Difficulty:        difficulty,
		Category:          c.Category(texts...),
		Points:            Points(difficulty),
	}
}

// Score is the composite difficulty score before tier mapping.
func (c *Classifier) Score(q models.CandidateQuestion, supporting string) float64 {
	score := c.config.TypeWeights[q.Type]

	stemWords := words(q.Stem)
	switch {
	case len(stemWords) > 20:
		score += 2
	case len(stemWords) > 10:
		score += 1
	}

	clauses := 0.0
	for _, w := range stemWords {
		if clauseMarkers[w] {
			clauses += 0.5
		}
	}
	clauses += 0.5 * float64(strings.Count(q.Stem, ",")+strings.Count(q.Stem, ";"))
	if clauses > 1 {
		clauses = 1
	}
	score += clauses

	markers := append(stemWords, words(supporting)...)
	hard, easy := false, false
	for _, w := range markers {
		stem := english.Stem(w, true)
		hard = hard || c.hard[stem]
		easy = easy || c.easy[stem]
	}
	if hard {
		score += 2
	}
	if easy {
		score -= 1
	}

	return score
}

// Difficulty maps the composite score to a tier. A score on a threshold
// takes the lower tier.
func (c *Classifier) Difficulty(q models.CandidateQuestion, supporting string) models.Difficulty {
	score := c.Score(q, supporting)
	switch {
	case score <= c.config.EasyMax:
		return models.Easy
	case score <= c.config.MediumMax:
		return models.Medium
	}
	return models.Hard
}

// Category votes by keyword overlap. Ties go to the earlier category in
// models.Categories; no overlap yields General.
func (c *Classifier) Category(texts ...string) models.Category {
	seen := make(map[string]bool)
	for _, text := range texts {
		for _, w := range words(text) {
			seen[english.Stem(w, true)] = true
		}
	}

	best, bestVotes := models.General, 0
	for _, cat := range models.Categories {
		votes := 0
		for stem := range c.categories[cat] {
			if seen[stem] {
				votes++
			}
		}
		if votes > bestVotes {
			best, bestVotes = cat, votes
		}
	}
	return best
}

var clauseMarkers = map[string]bool{
	"which": true, "because": true, "although": true, "while": true, "whereas": true,
	"when": true, "if": true, "since": true, "unless": true,
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func stemSet(list []string) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, w := range list {
		m[english.Stem(strings.ToLower(w), true)] = true
	}
	return m
}
