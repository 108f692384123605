package studyquiz

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "quiz.db"))
	require.NoError(t, err)
	require.NoError(t, db.CreateTables())
	t.Cleanup(func() { db.CloseDB() })
	return db
}

func TestDBDocuments(t *testing.T) {
	db := openTestDB(t)

	docs := []Document{
		testDoc(Summary, "S1", "Ribosomes assemble proteins.", "Diffusion moves molecules."),
		testDoc(Presentation, "P1", photosynthesis),
		testDoc(Presentation, "P2"),
	}
	require.NoError(t, db.SaveDocuments(docs))

	loaded, err := db.LoadDocuments()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "P1", loaded[0].ID)
	assert.Equal(t, []string{photosynthesis}, loaded[0].Paragraphs)
	assert.Empty(t, loaded[1].Paragraphs)
	assert.Equal(t, Summary, loaded[2].Category)
	assert.Equal(t, []string{"Ribosomes assemble proteins.", "Diffusion moves molecules."}, loaded[2].Paragraphs)

	// saving again replaces the cached corpus
	require.NoError(t, db.SaveDocuments(docs[:1]))
	loaded, err = db.LoadDocuments()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestDBQuizzes(t *testing.T) {
	db := openTestDB(t)

	quiz := &Quiz{
		ID:   "quiz-1",
		Mode: ModeSingle,
		Questions: []Question{
			{ID: "q1", Text: "What is A?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "A", Strategy: StrategyDefinition},
			{ID: "q2", Text: "What is B?", Options: []string{"B", "A", "C", "D"}, CorrectAnswer: "B", Strategy: StrategyAnalysis},
		},
		CreatedAt:      time.Now(),
		TotalQuestions: 2,
	}
	require.NoError(t, db.SaveQuiz(quiz))

	quizzes, err := db.GetQuizzes(10)
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "quiz-1", quizzes[0].ID)
	assert.Equal(t, "single", quizzes[0].Mode)
	assert.Equal(t, 2, quizzes[0].TotalQuestions)

	questions, err := db.GetQuestions("quiz-1")
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].QuestionNum)
	assert.Equal(t, "analysis", questions[1].Strategy)

	options, err := JSONToOptions(questions[1].Options)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C", "D"}, options)

	assert.Error(t, db.SaveQuiz(quiz), "duplicate quiz id")
}

func TestJSONToOptionsInvalid(t *testing.T) {
	_, err := JSONToOptions("not json")
	assert.Error(t, err)
}
