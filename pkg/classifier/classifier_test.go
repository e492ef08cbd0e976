package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/pkg/classifier"
)

func TestClassifier_Category(t *testing.T) {
	c := classifier.NewWithConfig(classifier.ClassifierConfig{})

	tests := []struct {
		name string
		text string
		want models.Category
	}{
		{"science", "Photosynthesis converts light energy in the cell.", models.Science},
		{"history", "The treaty ended the war.", models.History},
		{"majority", "The market price of the algorithm.", models.Business},
		{"tie goes to earlier category", "cell market", models.Science},
		{"plural matches keyword", "Cells and atoms.", models.Science},
		{"no overlap", "Nothing in particular here.", models.General},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Category(tt.text))
		})
	}
}

func TestClassifier_Difficulty(t *testing.T) {
	c := classifier.NewWithConfig(classifier.ClassifierConfig{})

	tests := []struct {
		name       string
		question   models.CandidateQuestion
		supporting string
		want       models.Difficulty
	}{
		{
			name:     "true false base",
			question: models.CandidateQuestion{Type: models.TrueFalse, Stem: "Water boils at sea level."},
			want:     models.Easy,
		},
		{
			name:     "matching base",
			question: models.CandidateQuestion{Type: models.Matching, Stem: "Match each term."},
			want:     models.Medium,
		},
		{
			name: "threshold resolves to lower tier",
			question: models.CandidateQuestion{
				Type: models.MultipleChoice,
				Stem: "What term best completes the following sentence about the boiling point of water?",
			},
			want: models.Easy,
		},
		{
			name: "bloom hard marker",
			question: models.CandidateQuestion{
				Type: models.ShortAnswer,
				Stem: "Compare the two processes that plants use to store energy over the long winter months.",
			},
			want: models.Hard,
		},
		{
			name:       "bloom easy marker in supporting sentence",
			question:   models.CandidateQuestion{Type: models.ShortAnswer, Stem: "What is osmosis?"},
			supporting: "Identify osmosis as the movement of water.",
			want:       models.Easy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Difficulty(tt.question, tt.supporting))
		})
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := classifier.NewWithConfig(classifier.ClassifierConfig{})

	q := models.CandidateQuestion{
		Type:          models.FillBlank,
		Stem:          "Water boils at _____ at sea level.",
		CorrectAnswer: "100 degrees Celsius",
	}
	scored := c.Classify(q, "Water boils at 100 degrees Celsius at sea level.")

	assert.Equal(t, q, scored.CandidateQuestion)
	assert.Equal(t, models.Easy, scored.Difficulty)
	assert.Equal(t, models.Science, scored.Category)
	assert.Equal(t, 1, scored.Points)
}

func TestClassifier_Overrides(t *testing.T) {
	c := classifier.NewWithConfig(classifier.ClassifierConfig{
		TypeWeights: map[models.QuestionType]float64{models.TrueFalse: 5},
		Categories:  map[models.Category][]string{models.Literature: {"dragon"}},
	})

	scored := c.Classify(models.CandidateQuestion{Type: models.TrueFalse, Stem: "The dragon sleeps."}, "")

	assert.Equal(t, models.Hard, scored.Difficulty)
	assert.Equal(t, 3, scored.Points)
	assert.Equal(t, models.Literature, scored.Category)
}

func TestPoints(t *testing.T) {
	assert.Equal(t, 1, classifier.Points(models.Easy))
	assert.Equal(t, 2, classifier.Points(models.Medium))
	assert.Equal(t, 3, classifier.Points(models.Hard))
}
