package studyquiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleSynthesizerPresentationOnlyFallback(t *testing.T) {
	store := newTestStore(t, testDoc(Presentation, "P1", photosynthesis))
	params := DefaultParams()
	params.PresentationWeight = 0 // always target the empty summary category first

	for seed := uint64(1); seed <= 30; seed++ {
		s := NewSingleSynthesizer(NewRand(seed), store, DefaultLexicon(), params)
		q, err := s.Generate()
		require.NoError(t, err)

		require.NoError(t, q.Validate(params.OptionCount()))
		assert.Contains(t, q.Options, photosynthesis)
		assert.Equal(t, []SourceRef{{Category: Presentation, ID: "P1"}}, q.Sources)
		if q.Strategy != StrategyAnalysis {
			assert.Equal(t, photosynthesis, q.CorrectAnswer)
		}
	}
}

func TestSingleSynthesizerEmptyCorpus(t *testing.T) {
	store := newTestStore(t)
	s := NewSingleSynthesizer(NewRand(1), store, DefaultLexicon(), DefaultParams())

	_, err := s.Generate()
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestSingleSynthesizerNoParagraphs(t *testing.T) {
	store := newTestStore(t,
		testDoc(Presentation, "P1"),
		testDoc(Summary, "S1"),
	)
	s := NewSingleSynthesizer(NewRand(1), store, DefaultLexicon(), DefaultParams())

	_, err := s.Generate()
	assert.ErrorIs(t, err, ErrInsufficientContent)
}

func TestSingleSynthesizerFallsBackToDefinition(t *testing.T) {
	store := newTestStore(t, testDoc(Presentation, "P1", "The mitochondria is big"))
	s := NewSingleSynthesizer(NewRand(1), store, DefaultLexicon(), DefaultParams())
	s.strategies = []Strategy{StrategyRelationship}

	q, err := s.Generate()
	require.NoError(t, err)
	assert.Equal(t, StrategyDefinition, q.Strategy)
	assert.Equal(t, "What is the most accurate definition of mitochondria?", q.Text)
}

func TestSingleSynthesizerDegrade(t *testing.T) {
	s := NewSingleSynthesizer(NewRand(3), biologyStore(t), DefaultLexicon(), DefaultParams())

	q, err := s.Generate()
	require.NoError(t, err)

	d := s.Degrade(q)
	assert.NotEqual(t, q.ID, d.ID)
	assert.Equal(t, q.Identity(), d.Identity())
	assert.NoError(t, d.Validate(4))
}

func TestParagraphPickerSkipsEmptySources(t *testing.T) {
	store := newTestStore(t,
		testDoc(Presentation, "P1"),
		testDoc(Presentation, "P2", photosynthesis),
	)
	p := &paragraphPicker{rng: NewRand(1), store: store, attempts: 1}

	for i := 0; i < 20; i++ {
		m, err := p.fromCategory(Presentation)
		require.NoError(t, err)
		assert.Equal(t, "P2", m.source.ID)
	}
}
