package archive_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhad/textotest/internal/models"
	"github.com/xhad/textotest/pkg/archive"
)

func openDB(t *testing.T) *archive.DB {
	t.Helper()
	db, err := archive.Open(filepath.Join(t.TempDir(), "quizzes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleQuiz() models.Quiz {
	return models.Quiz{
		ID:         "quiz-1",
		DocumentID: "doc-1",
		Seed:       0xfeedfacecafebeef,
		Request:    models.QuizRequest{QuestionType: models.Mixed, Count: 3},
		Questions: []models.ScoredQuestion{
			{
				CandidateQuestion: models.CandidateQuestion{
					Type:          models.MultipleChoice,
					Stem:          "Water boils at how many degrees Celsius at sea level?",
					CorrectAnswer: "100 degrees Celsius",
					Distractors:   []string{"90 degrees Celsius", "110 degrees Celsius", "50 degrees Celsius"},
				},
				Difficulty: models.Easy,
				Category:   models.Science,
				Points:     1,
			},
			{
				CandidateQuestion: models.CandidateQuestion{
					Type:          models.TrueFalse,
					Stem:          "Water is not a compound.",
					CorrectAnswer: "False",
				},
				Difficulty: models.Easy,
				Category:   models.Science,
				Points:     1,
			},
			{
				CandidateQuestion: models.CandidateQuestion{
					Type:        models.Matching,
					Stem:        "Match each science term from section 1 with the statement it completes.",
					Pairs:       []models.MatchPair{{Left: "Cells", Right: "_____ divide by mitosis."}, {Left: "Atoms", Right: "_____ contain protons."}},
					LeftColumn:  []string{"Atoms", "Cells"},
					RightColumn: []string{"_____ divide by mitosis.", "_____ contain protons."},
				},
				Difficulty: models.Hard,
				Category:   models.Science,
				Points:     3,
			},
		},
	}
}

func TestArchive_SaveAndLoad(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	quiz := sampleQuiz()

	require.NoError(t, db.SaveQuiz(ctx, quiz, "Water"))

	row, err := db.GetQuiz(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", row.DocumentID)
	assert.Equal(t, "Water", row.Title)
	assert.Equal(t, "mixed", row.QuestionType)
	assert.Equal(t, 3, row.Requested)
	assert.Equal(t, 3, row.NumQuestions)
	assert.Equal(t, quiz.Seed, row.Seed)
	assert.False(t, row.CreatedAt.IsZero())

	records, err := db.GetRecords(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, quiz.Records(), records)
}

func TestArchive_SaveReplaces(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	quiz := sampleQuiz()

	require.NoError(t, db.SaveQuiz(ctx, quiz, "Water"))
	quiz.Questions = quiz.Questions[:1]
	require.NoError(t, db.SaveQuiz(ctx, quiz, "Water"))

	records, err := db.GetRecords(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	quizzes, err := db.ListQuizzes(ctx, 0)
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, 1, quizzes[0].NumQuestions)
}

func TestArchive_List(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		q := sampleQuiz()
		q.ID = id
		require.NoError(t, db.SaveQuiz(ctx, q, id))
	}

	all, err := db.ListQuizzes(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := db.ListQuizzes(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestArchive_NotFound(t *testing.T) {
	db := openDB(t)

	_, err := db.GetQuiz(context.Background(), "missing")
	assert.ErrorIs(t, err, archive.ErrNotFound)

	records, err := db.GetRecords(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, records)
}
