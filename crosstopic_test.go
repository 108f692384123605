package studyquiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crossParams() Params {
	params := DefaultParams()
	params.Mode = ModeCross
	return params
}

func TestCrossTopicNeedsTwoSources(t *testing.T) {
	store := newTestStore(t, testDoc(Presentation, "P1", photosynthesis))
	s := NewCrossTopicSynthesizer(NewRand(1), store, DefaultLexicon(), crossParams())

	_, err := s.Generate()
	assert.ErrorIs(t, err, ErrInsufficientContent)
}

func TestCrossTopicNeedsBothCategories(t *testing.T) {
	store := newTestStore(t,
		testDoc(Presentation, "P1", photosynthesis),
		testDoc(Presentation, "P2", "Enzymes lower the activation energy."),
	)
	s := NewCrossTopicSynthesizer(NewRand(1), store, DefaultLexicon(), crossParams())

	_, err := s.Generate()
	assert.ErrorIs(t, err, ErrInsufficientContent)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestCrossTopicQuestion(t *testing.T) {
	store := biologyStore(t)
	lex := DefaultLexicon()

	for seed := uint64(1); seed <= 20; seed++ {
		s := NewCrossTopicSynthesizer(NewRand(seed), store, lex, crossParams())
		q, err := s.Generate()
		require.NoError(t, err)

		assert.Equal(t, StrategyCrossTopic, q.Strategy)
		assert.Len(t, q.Options, 4)
		assert.Equal(t, 1, countOf(q.Options, q.CorrectAnswer))
		require.Len(t, q.Sources, 2)
		assert.NotEqual(t, q.Sources[0].Category, q.Sources[1].Category)
		assert.Contains(t, q.Text, q.Sources[0].ID)
		assert.Contains(t, q.Text, q.Sources[1].ID)
	}
}

func TestCrossTopicPicksDistinctTopics(t *testing.T) {
	s := NewCrossTopicSynthesizer(NewRand(1), biologyStore(t), DefaultLexicon(), crossParams())

	for i := 0; i < 100; i++ {
		a, b := s.pickTopics()
		assert.NotEqual(t, a, b)
	}
}
