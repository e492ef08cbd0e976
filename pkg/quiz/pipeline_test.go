package quiz_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/pkg/config"
	"github.com/xhad/textotest/pkg/distractor"
	"github.com/xhad/textotest/pkg/generator"
	"github.com/xhad/textotest/pkg/logger"
	"github.com/xhad/textotest/pkg/quiz"
)

const (
	water   = "Water boils at 100 degrees Celsius at sea level."
	science = "Water is a compound. Gold does not rust. Plants convert light into energy. " +
		"The heart has four chambers."
	biology = "# The Cell\n\nMitochondria produce energy for the cell. The nucleus stores genetic material. " +
		"Ribosomes build proteins from amino acids. Chloroplasts capture light for photosynthesis. " +
		"The cell membrane controls what enters the cell."
)

type slowEmbedder struct{}

func (slowEmbedder) CreateEmbedding(ctx context.Context, _ []string) ([][]float32, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func observed(level zap.AtomicLevel) (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestPipeline_SingleSentenceMultipleChoice(t *testing.T) {
	p := quiz.NewWithConfig(quiz.PipelineConfig{})

	q, err := p.Generate(context.Background(), models.RawDocument{Text: water}, models.QuizRequest{
		QuestionType: models.MultipleChoice,
		Count:        1,
	})
	require.NoError(t, err)
	require.Equal(t, 1, q.Len())

	mcq := q.Questions[0]
	assert.Equal(t, models.MultipleChoice, mcq.Type)
	assert.Equal(t, "100 degrees Celsius", mcq.CorrectAnswer)
	assert.Equal(t, "Water boils at how many degrees Celsius at sea level?", mcq.Stem)
	assert.Len(t, mcq.Distractors, 3)
	assert.Contains(t, mcq.Distractors, "90 degrees Celsius")
	assert.NotEmpty(t, mcq.Difficulty)
	assert.Equal(t, models.Science, mcq.Category)
	assert.NotEmpty(t, q.ID)
}

func TestPipeline_EmptyDocument(t *testing.T) {
	p := quiz.NewWithConfig(quiz.PipelineConfig{})

	for _, text := range []string{"", "   \n\n  ", "!!! ???"} {
		q, err := p.Generate(context.Background(), models.RawDocument{Text: text}, models.QuizRequest{
			QuestionType: models.Mixed,
			Count:        5,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, q.Len())
		assert.NotNil(t, q.Questions)
	}
}

func TestPipeline_TrueFalseUnderSupply(t *testing.T) {
	p := quiz.NewWithConfig(quiz.PipelineConfig{})

	q, err := p.Generate(context.Background(), models.RawDocument{Text: "Water is a compound. Gold does not rust."},
		models.QuizRequest{QuestionType: models.TrueFalse, Count: 5})
	require.NoError(t, err)

	assert.Equal(t, 2, q.Len())
	for _, tf := range q.Questions {
		assert.Contains(t, []string{"True", "False"}, tf.CorrectAnswer)
	}
}

func TestPipeline_Deterministic(t *testing.T) {
	p := quiz.NewWithConfig(quiz.PipelineConfig{})
	raw := models.RawDocument{Text: biology}
	req := models.QuizRequest{QuestionType: models.Mixed, Count: 6}

	first, err := p.Generate(context.Background(), raw, req)
	require.NoError(t, err)
	second, err := p.Generate(context.Background(), raw, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Records(), second.Records())
}

func TestPipeline_MixedInvariants(t *testing.T) {
	p := quiz.NewWithConfig(quiz.PipelineConfig{})

	for _, text := range []string{water, science, biology} {
		for _, count := range []int{1, 3, 10} {
			q, err := p.Generate(context.Background(), models.RawDocument{Text: text}, models.QuizRequest{
				QuestionType: models.Mixed,
				Count:        count,
			})
			require.NoError(t, err)
			assert.LessOrEqual(t, q.Len(), count)
			assert.Positive(t, q.Len())

			for _, sq := range q.Questions {
				assert.Contains(t, []models.Difficulty{models.Easy, models.Medium, models.Hard}, sq.Difficulty)
				assert.Contains(t, []int{1, 2, 3}, sq.Points)
				if sq.Type != models.MultipleChoice {
					continue
				}
				assert.Len(t, sq.Distractors, 3)
				seen := map[string]bool{strings.ToLower(sq.CorrectAnswer): true}
				for _, d := range sq.Distractors {
					assert.False(t, seen[strings.ToLower(d)], "duplicate option %q", d)
					seen[strings.ToLower(d)] = true
				}
			}
		}
	}
}

func TestPipeline_FillBlankReconstructsSource(t *testing.T) {
	p := quiz.NewWithConfig(quiz.PipelineConfig{})

	q, err := p.Generate(context.Background(), models.RawDocument{Text: biology}, models.QuizRequest{
		QuestionType: models.FillBlank,
		Count:        10,
	})
	require.NoError(t, err)
	require.Positive(t, q.Len())

	for _, fb := range q.Questions {
		rebuilt := strings.Replace(fb.Stem, generator.Blank, fb.CorrectAnswer, 1)
		assert.Contains(t, biology, rebuilt)
	}
}

func TestPipeline_OptionCount(t *testing.T) {
	p := quiz.NewWithConfig(quiz.PipelineConfig{OptionCount: 10})

	q, err := p.Generate(context.Background(), models.RawDocument{Text: water}, models.QuizRequest{
		QuestionType: models.MultipleChoice,
		Count:        5,
	})
	require.NoError(t, err)

	// the quantity cannot be perturbed into nine distinct options and is dropped
	for _, mcq := range q.Questions {
		assert.Len(t, mcq.Distractors, 9)
		assert.NotEqual(t, "100 degrees Celsius", mcq.CorrectAnswer)
	}
}

func TestPipeline_OptionCountBelowTwo(t *testing.T) {
	for _, count := range []int{1, -3} {
		p := quiz.NewWithConfig(quiz.PipelineConfig{OptionCount: count})

		q, err := p.Generate(context.Background(), models.RawDocument{Text: water}, models.QuizRequest{
			QuestionType: models.MultipleChoice,
			Count:        1,
		})
		require.NoError(t, err)
		require.Equal(t, 1, q.Len())
		assert.Len(t, q.Questions[0].Distractors, 3)
	}
}

func TestPipeline_InvalidRequest(t *testing.T) {
	p := quiz.NewWithConfig(quiz.PipelineConfig{})

	tests := []struct {
		name  string
		req   models.QuizRequest
		field string
	}{
		{"unknown type", models.QuizRequest{QuestionType: "essay", Count: 3}, "question_type"},
		{"zero count", models.QuizRequest{QuestionType: models.Mixed, Count: 0}, "count"},
		{"negative count", models.QuizRequest{QuestionType: models.TrueFalse, Count: -2}, "count"},
		{"unknown difficulty", models.QuizRequest{QuestionType: models.Mixed, Difficulty: "extreme", Count: 3}, "difficulty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Generate(context.Background(), models.RawDocument{Text: water}, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, quiz.ErrInvalidRequest)

			var reqErr *quiz.RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.field, reqErr.Field)
		})
	}
}

func TestValidate_Aliases(t *testing.T) {
	req, err := quiz.Validate(models.QuizRequest{QuestionType: "MCQ", Difficulty: "Hard", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, models.MultipleChoice, req.QuestionType)
	assert.Equal(t, models.Hard, req.Difficulty)
}

func TestPipeline_SlowEmbedderFallsBack(t *testing.T) {
	log, logs := observed(zap.NewAtomicLevelAt(zap.WarnLevel))
	p := quiz.NewWithConfig(quiz.PipelineConfig{
		Distractor: distractor.DistractorConfig{
			Embedder:            slowEmbedder{},
			MinSemanticConcepts: 1,
			Timeout:             20 * time.Millisecond,
		},
		Logger: log,
	})

	start := time.Now()
	q, err := p.Generate(context.Background(), models.RawDocument{Text: water}, models.QuizRequest{
		QuestionType: models.MultipleChoice,
		Count:        1,
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	require.Equal(t, 1, q.Len())
	assert.Contains(t, q.Questions[0].Distractors, "90 degrees Celsius")
	assert.Equal(t, 1, logs.FilterMessage("semantic ranking unavailable, using pattern distractors").Len())
}

func TestPipeline_DifficultyFilter(t *testing.T) {
	p := quiz.NewWithConfig(quiz.PipelineConfig{})

	q, err := p.Generate(context.Background(), models.RawDocument{Text: biology}, models.QuizRequest{
		QuestionType: models.Mixed,
		Difficulty:   models.Easy,
		Count:        10,
	})
	require.NoError(t, err)
	for _, sq := range q.Questions {
		assert.Equal(t, models.Easy, sq.Difficulty)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.OptionCount = 3
	cfg.Classifier.TypeWeights = map[string]float64{"mcq": 9}

	p := quiz.NewFromConfig(cfg, nil, nil, logger.NewNop())

	q, err := p.Generate(context.Background(), models.RawDocument{Text: water}, models.QuizRequest{
		QuestionType: models.MultipleChoice,
		Count:        1,
	})
	require.NoError(t, err)
	require.Equal(t, 1, q.Len())
	assert.Len(t, q.Questions[0].Distractors, 2)
	assert.Equal(t, models.Hard, q.Questions[0].Difficulty)
	assert.Equal(t, 3, q.Questions[0].Points)
}
