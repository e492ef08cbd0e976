package assembler

import (
	"sort"
	"strings"
	"unicode"

	"github.com/xhad/textotest/internal/models"
)

const (
	ReusePerType = "per_type"
	ReuseUnique  = "unique"
)

type AssemblerConfig struct {
	// ConceptReuse is ReusePerType (a concept appears at most once per
	// question type) or ReuseUnique (at most once per quiz).
	ConceptReuse string
}

type Assembler struct {
	config AssemblerConfig
}

func NewWithConfig(config AssemblerConfig) Assembler {
	if config.ConceptReuse != ReuseUnique {
		config.ConceptReuse = ReusePerType
	}
	return Assembler{config: config}
}

// Assemble selects up to req.Count questions and returns them in document
// order. No candidates yields an empty quiz.
func (a *Assembler) Assemble(doc models.Document, candidates map[models.QuestionType][]models.ScoredQuestion, req models.QuizRequest) models.Quiz {
	quiz := models.Quiz{
		DocumentID: doc.ID,
		Seed:       doc.Seed,
		Request:    req,
		Questions:  []models.ScoredQuestion{},
	}
	if req.Count <= 0 {
		return quiz
	}

	supply := make(map[models.QuestionType][]models.ScoredQuestion)
	var types []models.QuestionType
	for _, t := range models.QuestionTypes {
		if req.QuestionType != models.Mixed && req.QuestionType != t {
			continue
		}
		list := ranked(filter(candidates[t], req.Difficulty))
		if len(list) > 0 {
			supply[t] = list
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return quiz
	}

	s := newSelector(a.config.ConceptReuse, req.Count, supply)
	if req.QuestionType == models.Mixed {
		s.roundRobin(types, quotas(types, supply, req.Count))
	}
	s.roundRobin(types, nil)

	sort.SliceStable(s.picked, func(i, j int) bool {
		x, y := s.picked[i], s.picked[j]
		if x.SupportingChunk != y.SupportingChunk {
			return x.SupportingChunk < y.SupportingChunk
		}
		if typeIndex(x.Type) != typeIndex(y.Type) {
			return typeIndex(x.Type) < typeIndex(y.Type)
		}
		return x.Stem < y.Stem
	})
	quiz.Questions = s.picked
	return quiz
}

func filter(list []models.ScoredQuestion, d models.Difficulty) []models.ScoredQuestion {
	if d == "" {
		return list
	}
	var out []models.ScoredQuestion
	for _, q := range list {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out
}

// ranked orders by concept score, then document position.
func ranked(list []models.ScoredQuestion) []models.ScoredQuestion {
	out := append([]models.ScoredQuestion(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ConceptScore != out[j].ConceptScore {
			return out[i].ConceptScore > out[j].ConceptScore
		}
		if out[i].SupportingChunk != out[j].SupportingChunk {
			return out[i].SupportingChunk < out[j].SupportingChunk
		}
		return out[i].SourceConcept < out[j].SourceConcept
	})
	return out
}

// quotas splits count across types in proportion to their supply using
// largest remainders; ties go to the earlier type.
func quotas(types []models.QuestionType, supply map[models.QuestionType][]models.ScoredQuestion, count int) map[models.QuestionType]int {
	total := 0
	for _, t := range types {
		total += len(supply[t])
	}
	if count > total {
		count = total
	}

	q := make(map[models.QuestionType]int, len(types))
	remainders := make(map[models.QuestionType]int, len(types))
	assigned := 0
	for _, t := range types {
		share := count * len(supply[t])
		q[t] = share / total
		remainders[t] = share % total
		assigned += q[t]
	}

	order := append([]models.QuestionType(nil), types...)
	sort.SliceStable(order, func(i, j int) bool {
		return remainders[order[i]] > remainders[order[j]]
	})
	for i := 0; assigned < count; i++ {
		q[order[i%len(order)]]++
		assigned++
	}
	return q
}

type selector struct {
	reuse  string
	count  int
	supply map[models.QuestionType][]models.ScoredQuestion
	next   map[models.QuestionType]int
	taken  map[models.QuestionType]int
	stems  map[string]bool
	used   map[models.QuestionType]map[int]bool
	picked []models.ScoredQuestion
}

func newSelector(reuse string, count int, supply map[models.QuestionType][]models.ScoredQuestion) *selector {
	return &selector{
		reuse:  reuse,
		count:  count,
		supply: supply,
		next:   make(map[models.QuestionType]int),
		taken:  make(map[models.QuestionType]int),
		stems:  make(map[string]bool),
		used:   make(map[models.QuestionType]map[int]bool),
	}
}

// roundRobin takes one question per type per round until the quiz is full
// or no type can supply more. A nil limit means unlimited.
func (s *selector) roundRobin(types []models.QuestionType, limit map[models.QuestionType]int) {
	for len(s.picked) < s.count {
		progressed := false
		for _, t := range types {
			if len(s.picked) >= s.count {
				return
			}
			if limit != nil && s.taken[t] >= limit[t] {
				continue
			}
			if s.take(t) {
				progressed = true
			}
		}
		if !progressed {
			return
		}
	}
}

func (s *selector) take(t models.QuestionType) bool {
	list := s.supply[t]
	for s.next[t] < len(list) {
		q := list[s.next[t]]
		s.next[t]++
		if !s.accept(q) {
			continue
		}
		s.taken[t]++
		s.picked = append(s.picked, q)
		return true
	}
	return false
}

func (s *selector) accept(q models.ScoredQuestion) bool {
	stem := normalizeStem(q.Stem)
	if s.stems[stem] {
		return false
	}

	key := q.Type
	if s.reuse == ReuseUnique {
		key = ""
	}
	used := s.used[key]
	if used == nil {
		used = make(map[int]bool)
		s.used[key] = used
	}

	concepts := conceptsOf(q)
	for _, c := range concepts {
		if used[c] {
			return false
		}
	}
	for _, c := range concepts {
		used[c] = true
	}
	s.stems[stem] = true
	return true
}

func conceptsOf(q models.ScoredQuestion) []int {
	if len(q.MatchConcepts) > 0 {
		return q.MatchConcepts
	}
	return []int{q.SourceConcept}
}

func normalizeStem(stem string) string {
	s := strings.Join(strings.Fields(strings.ToLower(stem)), " ")
	return strings.TrimSpace(strings.TrimRightFunc(s, unicode.IsPunct))
}

func typeIndex(t models.QuestionType) int {
	for i, qt := range models.QuestionTypes {
		if qt == t {
			return i
		}
	}
	return len(models.QuestionTypes)
}
