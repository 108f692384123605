package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyquiz"
)

func newPlayEngine(t *testing.T) *studyquiz.Engine {
	t.Helper()
	store, err := studyquiz.NewContentStore(
		studyquiz.Document{ID: "P1", Category: studyquiz.Presentation, Paragraphs: []string{
			"Photosynthesis converts light energy into chemical energy in plants.",
			"Mitochondria produce energy through cellular respiration.",
		}},
		studyquiz.Document{ID: "S1", Category: studyquiz.Summary, Paragraphs: []string{
			"Ribosomes assemble proteins from amino acids.",
		}},
	)
	require.NoError(t, err)
	engine, err := studyquiz.NewEngine(store, studyquiz.DefaultLexicon(), studyquiz.DefaultParams(), studyquiz.NewRand(1))
	require.NoError(t, err)
	return engine
}

func TestPlayQuizAnswersQuestions(t *testing.T) {
	engine := newPlayEngine(t)
	var out bytes.Buffer

	err := playQuiz(engine, strings.NewReader("Z\nA\nb\n"), &out, 2)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Please enter one of ABCD")
	assert.Contains(t, output, "Question 2/2")
	assert.Contains(t, output, "Final score:")
	_, answered := engine.History().Score()
	assert.Equal(t, 2, answered)
}

func TestPlayQuizQuit(t *testing.T) {
	engine := newPlayEngine(t)
	var out bytes.Buffer

	err := playQuiz(engine, strings.NewReader("q\n"), &out, 5)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Quiz completed!")
	assert.NotContains(t, out.String(), "Final score:")
	assert.True(t, engine.History().IsEmpty())
}

func TestPlayQuizEndOfInput(t *testing.T) {
	engine := newPlayEngine(t)
	var out bytes.Buffer

	err := playQuiz(engine, strings.NewReader("A\n"), &out, 3)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Final score:")
	assert.Equal(t, 1, engine.History().Len())
}

func TestPlayQuizLabelsEveryOption(t *testing.T) {
	store, err := studyquiz.NewContentStore(
		studyquiz.Document{ID: "P1", Category: studyquiz.Presentation, Paragraphs: []string{
			"Photosynthesis converts light energy into chemical energy in plants.",
		}},
		studyquiz.Document{ID: "S1", Category: studyquiz.Summary, Paragraphs: []string{
			"Ribosomes assemble proteins from amino acids.",
		}},
	)
	require.NoError(t, err)
	params := studyquiz.DefaultParams()
	params.DistractorCount = studyquiz.MaxDistractorCount
	engine, err := studyquiz.NewEngine(store, studyquiz.DefaultLexicon(), params, studyquiz.NewRand(1))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, playQuiz(engine, strings.NewReader("J\n"), &out, 1))
	assert.Contains(t, out.String(), "J) ")
	assert.Equal(t, 1, engine.History().Len())
}
