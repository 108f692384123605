package studyquiz

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, store *ContentStore, params Params, seed uint64, opts ...EngineOption) *Engine {
	t.Helper()
	e, err := NewEngine(store, DefaultLexicon(), params, NewRand(seed), opts...)
	require.NoError(t, err)
	return e
}

func TestEngineCheckBeforeNextQuestion(t *testing.T) {
	e := newTestEngine(t, biologyStore(t), DefaultParams(), 1)

	_, err := e.Check("something")
	assert.ErrorIs(t, err, ErrNoActiveQuestion)

	_, err = e.CheckOption(0)
	assert.ErrorIs(t, err, ErrNoActiveQuestion)
}

func TestEnginePhotosynthesisScenario(t *testing.T) {
	store := newTestStore(t, testDoc(Presentation, "P1", photosynthesis))
	e := newTestEngine(t, store, DefaultParams(), 42)

	q, err := e.NextQuestion()
	require.NoError(t, err)
	assert.Len(t, q.Options, 4)
	assert.Contains(t, q.Options, photosynthesis)
	if q.Strategy != StrategyAnalysis {
		assert.Equal(t, photosynthesis, q.CorrectAnswer)
	}
	assert.Same(t, q, e.Current())

	v, err := e.Check(q.CorrectAnswer)
	require.NoError(t, err)
	assert.True(t, v.IsCorrect)
}

func TestEngineQuestionsStayUnique(t *testing.T) {
	e := newTestEngine(t, biologyStore(t), DefaultParams(), 7)

	seen := make(map[Identity]bool)
	for i := 0; i < 30; i++ {
		q, err := e.NextQuestion()
		require.NoError(t, err)
		require.NoError(t, q.Validate(4))
		seen[q.Identity()] = true
	}
	assert.Equal(t, len(seen), e.Asked())
}

func TestEngineDegradesWhenMaterialRunsOut(t *testing.T) {
	// Only the definition (placeholder) and analysis questions exist here.
	store := newTestStore(t, testDoc(Presentation, "P1", "It is a big cat."))
	e := newTestEngine(t, store, DefaultParams(), 3)

	for i := 0; i < 10; i++ {
		q, err := e.NextQuestion()
		require.NoError(t, err)
		assert.Contains(t, q.Options, q.CorrectAnswer)
	}
	assert.Equal(t, 2, e.Asked())
}

func TestEngineCrossTopicExhaustion(t *testing.T) {
	store := newTestStore(t,
		testDoc(Presentation, "P1", "Chlorophyll is key"),
		testDoc(Summary, "S1", "Stomata let gas in"),
	)
	lex := DefaultLexicon()
	lex.Topics = []string{"botany", "ecology"}
	params := DefaultParams()
	params.Mode = ModeCross

	e, err := NewEngine(store, lex, params, NewRand(5))
	require.NoError(t, err)

	var exhausted error
	asked := 0
	for i := 0; i < 50 && exhausted == nil; i++ {
		_, err := e.NextQuestion()
		if err != nil {
			exhausted = err
			break
		}
		asked++
	}
	require.Error(t, exhausted)
	assert.ErrorIs(t, exhausted, ErrGenerationExhausted)
	assert.True(t, IsRetryable(exhausted))
	assert.LessOrEqual(t, asked, 4)
}

func TestEngineCrossTopicRequiresMatchingDistractors(t *testing.T) {
	params := DefaultParams()
	params.Mode = ModeCross
	params.DistractorCount = 2

	_, err := NewEngine(biologyStore(t), DefaultLexicon(), params, NewRand(1))
	assert.Error(t, err)
}

func TestEngineRejectsInvalidParams(t *testing.T) {
	params := DefaultParams()
	params.RetryLimit = 0

	_, err := NewEngine(biologyStore(t), DefaultLexicon(), params, NewRand(1))
	assert.Error(t, err)
}

func TestEngineEmptyCorpus(t *testing.T) {
	e := newTestEngine(t, newTestStore(t), DefaultParams(), 1)

	_, err := e.NextQuestion()
	assert.ErrorIs(t, err, ErrEmptyCorpus)
	assert.False(t, IsRetryable(err))
	assert.Nil(t, e.Current())
}

func TestEngineCheckOption(t *testing.T) {
	e := newTestEngine(t, biologyStore(t), DefaultParams(), 9)

	q, err := e.NextQuestion()
	require.NoError(t, err)

	_, err = e.CheckOption(len(q.Options))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoActiveQuestion))

	v, err := e.CheckOption(q.CorrectIndex())
	require.NoError(t, err)
	assert.True(t, v.IsCorrect)

	correct, answered := e.History().Score()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 1, answered)
}

func TestEngineGenerateQuiz(t *testing.T) {
	e := newTestEngine(t, biologyStore(t), DefaultParams(), 13)

	quiz, err := e.GenerateQuiz(5)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 5)
	assert.Equal(t, 5, quiz.TotalQuestions)
	assert.Equal(t, ModeSingle, quiz.Mode)
	assert.NotEmpty(t, quiz.ID)
}

func TestEngineSessionLog(t *testing.T) {
	dir := t.TempDir()
	store := biologyStore(t)
	sl, err := NewSessionLog(dir, "session-1", DefaultParams(), store.Stats())
	require.NoError(t, err)

	e := newTestEngine(t, store, DefaultParams(), 1, WithSessionID("session-1"), WithSessionLog(sl))
	assert.Equal(t, "session-1", e.ID())

	q, err := e.NextQuestion()
	require.NoError(t, err)
	_, err = e.Check(q.CorrectAnswer)
	require.NoError(t, err)
	require.NoError(t, sl.Close())

	data, err := os.ReadFile(sl.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Session ID: session-1")
	assert.Contains(t, content, q.Text)
	assert.Contains(t, content, "CORRECT")
	assert.True(t, strings.Contains(content, "Quiz Session Complete"))
}
