package models

import "strings"

// Record is the plain structured form of a question handed to exporters.
type Record struct {
	Number     int      `json:"number"`
	Type       string   `json:"type"`
	Stem       string   `json:"stem"`
	Options    []string `json:"options,omitempty"`
	Answer     string   `json:"answer"`
	LeftItems  []string `json:"left_items,omitempty"`
	RightItems []string `json:"right_items,omitempty"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
	Points     int      `json:"points"`
}

// Records flattens the quiz for export. MCQ options place the correct answer
// at a position derived from the quiz seed so output stays reproducible.
func (q Quiz) Records() []Record {
	records := make([]Record, 0, len(q.Questions))
	for i, sq := range q.Questions {
		r := Record{
			Number:     i + 1,
			Type:       string(sq.Type),
			Stem:       sq.Stem,
			Answer:     sq.CorrectAnswer,
			Difficulty: string(sq.Difficulty),
			Category:   string(sq.Category),
			Points:     sq.Points,
		}
		switch sq.Type {
		case MultipleChoice:
			r.Options = placeAnswer(sq.CorrectAnswer, sq.Distractors, int((q.Seed+uint64(i))%uint64(len(sq.Distractors)+1)))
		case TrueFalse:
			r.Options = []string{"True", "False"}
		case Matching:
			r.LeftItems = append([]string(nil), sq.LeftColumn...)
			r.RightItems = append([]string(nil), sq.RightColumn...)
			r.Answer = answerKey(sq.Pairs)
		}
		records = append(records, r)
	}
	return records
}

func placeAnswer(answer string, distractors []string, at int) []string {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, distractors[:at]...)
	options = append(options, answer)
	options = append(options, distractors[at:]...)
	return options
}

func answerKey(pairs []MatchPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.Left+" = "+p.Right)
	}
	return strings.Join(parts, "; ")
}
