package models

import "strings"

// QuestionType is one of the closed or open question forms, or Mixed in requests.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	FillBlank      QuestionType = "fill_in_blank"
	ShortAnswer    QuestionType = "short_answer"
	Matching       QuestionType = "matching"
	Mixed          QuestionType = "mixed"
)

// QuestionTypes lists the concrete types in their canonical order.
var QuestionTypes = []QuestionType{MultipleChoice, TrueFalse, FillBlank, ShortAnswer, Matching}

// ParseQuestionType accepts canonical names and common aliases.
func ParseQuestionType(s string) (QuestionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multiple_choice", "mcq", "multiple-choice":
		return MultipleChoice, true
	case "true_false", "tf", "true-false", "truefalse":
		return TrueFalse, true
	case "fill_in_blank", "fill_blank", "fill-in-blank", "fib":
		return FillBlank, true
	case "short_answer", "short-answer", "sa":
		return ShortAnswer, true
	case "matching", "match":
		return Matching, true
	case "mixed", "":
		return Mixed, true
	}
	return "", false
}

// Closed reports whether the type presents options to choose from.
func (t QuestionType) Closed() bool {
	return t == MultipleChoice || t == TrueFalse || t == Matching
}

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty maps a filter string to a Difficulty; empty means no filter.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	}
	return "", false
}

type Category string

const (
	Science     Category = "science"
	History     Category = "history"
	Mathematics Category = "mathematics"
	Literature  Category = "literature"
	Technology  Category = "technology"
	Business    Category = "business"
	General     Category = "general"
)

// Categories lists the voting categories in tie-break order. General is the fallback.
var Categories = []Category{Science, History, Mathematics, Literature, Technology, Business}

// MatchPair is one row of a matching answer key.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// CandidateQuestion is a generated question before classification.
type CandidateQuestion struct {
	Type            QuestionType `json:"type"`
	Stem            string       `json:"stem"`
	CorrectAnswer   string       `json:"correct_answer"`
	Distractors     []string     `json:"distractors,omitempty"`
	Pairs           []MatchPair  `json:"pairs,omitempty"`
	LeftColumn      []string     `json:"left_column,omitempty"`
	RightColumn     []string     `json:"right_column,omitempty"`
	SupportingChunk int          `json:"supporting_chunk"`
	SourceConcept   int          `json:"source_concept"`
	MatchConcepts   []int        `json:"match_concepts,omitempty"`
	ConceptScore    float64      `json:"concept_score"`
}

// WithDistractors returns a copy carrying the given distractors.
func (q CandidateQuestion) WithDistractors(d []string) CandidateQuestion {
	q.Distractors = append([]string(nil), d...)
	return q
}

// ScoredQuestion is a classified question.
type ScoredQuestion struct {
	CandidateQuestion
	Difficulty Difficulty `json:"difficulty"`
	Category   Category   `json:"category"`
	Points     int        `json:"points"`
}

// QuizRequest is the caller's configuration. An empty Difficulty means any.
type QuizRequest struct {
	QuestionType QuestionType `json:"question_type"`
	Difficulty   Difficulty   `json:"difficulty,omitempty"`
	Count        int          `json:"count"`
}

// Quiz is the ordered result of one pipeline run.
type Quiz struct {
	ID         string           `json:"id"`
	DocumentID string           `json:"document_id"`
	Seed       uint64           `json:"seed"`
	Request    QuizRequest      `json:"request"`
	Questions  []ScoredQuestion `json:"questions"`
}

// Len returns the number of questions.
func (q Quiz) Len() int {
	return len(q.Questions)
}
