package studyquiz

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Generator produces candidate questions for the uniqueness tracker.
type Generator interface {
	Generate() (*Question, error)
}

// Degrader is implemented by generators that can salvage a colliding
// question once uniqueness attempts run out. Cross-topic generation does
// not implement it and fails instead.
type Degrader interface {
	Degrade(q *Question) *Question
}

// paragraphPicker samples paragraphs from the store.
type paragraphPicker struct {
	rng      *rand.Rand
	store    *ContentStore
	attempts int
}

// fromCategory picks a source uniformly, then a paragraph uniformly. Sources
// without paragraphs are redrawn; once attempts run out the pick is made
// among the sources that do have paragraphs.
func (p *paragraphPicker) fromCategory(category Category) (material, error) {
	sources := p.store.sourcesOf(category)
	if len(sources) == 0 {
		return material{}, fmt.Errorf("%s: %w", category, ErrEmptyCorpus)
	}

	for i := 0; i < p.attempts; i++ {
		id := sources[p.rng.IntN(len(sources))]
		if m, ok := p.paragraphOf(category, id); ok {
			return m, nil
		}
		VerboseLog("source %s/%s has no paragraphs, drawing again", category, id)
	}

	var usable []string
	for _, id := range sources {
		if len(p.store.paragraphsOf(category, id)) > 0 {
			usable = append(usable, id)
		}
	}
	if len(usable) == 0 {
		return material{}, fmt.Errorf("no %s source has paragraphs: %w", category, ErrInsufficientContent)
	}
	m, _ := p.paragraphOf(category, usable[p.rng.IntN(len(usable))])
	return m, nil
}

func (p *paragraphPicker) paragraphOf(category Category, id string) (material, bool) {
	paragraphs := p.store.paragraphsOf(category, id)
	if len(paragraphs) == 0 {
		return material{}, false
	}
	return material{
		paragraph: paragraphs[p.rng.IntN(len(paragraphs))],
		source:    SourceRef{Category: category, ID: id},
	}, true
}

// SingleSynthesizer builds each question from one paragraph with one of the
// five single-paragraph strategies.
type SingleSynthesizer struct {
	params      Params
	rng         *rand.Rand
	picker      *paragraphPicker
	sc          *strategyContext
	distractors *DistractorGenerator
	strategies  []Strategy
}

// NewSingleSynthesizer wires the term extractor and distractor generator
// over the store.
func NewSingleSynthesizer(rng *rand.Rand, store *ContentStore, lex *Lexicon, params Params) *SingleSynthesizer {
	return &SingleSynthesizer{
		params: params,
		rng:    rng,
		picker: &paragraphPicker{rng: rng, store: store, attempts: params.RetryLimit},
		sc: &strategyContext{
			rng:          rng,
			terms:        NewTermExtractor(rng, lex),
			lex:          lex,
			termAttempts: params.TermAttempts,
		},
		distractors: NewDistractorGenerator(rng, store, NewVariation(rng, lex), params.DistractorCount),
		strategies:  singleStrategies,
	}
}

// Generate implements Generator.
func (s *SingleSynthesizer) Generate() (*Question, error) {
	m, err := s.pickParagraph()
	if err != nil {
		return nil, err
	}

	strategy := s.strategies[s.rng.IntN(len(s.strategies))]
	d, err := strategyTable[strategy](s.sc, m)
	if err != nil {
		VerboseLog("%s strategy failed on %s/%s: %v; falling back to definition",
			strategy, m.source.Category, m.source.ID, err)
		strategy = StrategyDefinition
		if d, err = definitionStrategy(s.sc, m); err != nil {
			return nil, err
		}
	}

	return &Question{
		ID:            uuid.NewString(),
		Text:          d.text,
		Options:       s.distractors.Generate(d.answer),
		CorrectAnswer: d.answer,
		Explanation:   d.explanation,
		Difficulty:    s.params.Difficulty,
		Strategy:      strategy,
		Sources:       []SourceRef{m.source},
		CreatedAt:     time.Now(),
	}, nil
}

// Degrade implements Degrader: it keeps the question and answer and draws a
// fresh set of options.
func (s *SingleSynthesizer) Degrade(q *Question) *Question {
	degraded := *q
	degraded.ID = uuid.NewString()
	degraded.Options = s.distractors.Generate(q.CorrectAnswer)
	degraded.CreatedAt = time.Now()
	return &degraded
}

// pickParagraph draws the category by PresentationWeight and falls back to
// the other category when the drawn one is empty.
func (s *SingleSynthesizer) pickParagraph() (material, error) {
	category := Summary
	if s.rng.Float64() < s.params.PresentationWeight {
		category = Presentation
	}

	m, err := s.picker.fromCategory(category)
	if err == nil {
		return m, nil
	}
	VerboseLog("cannot draw from %s (%v), falling back to %s", category, err, category.Other())

	m, otherErr := s.picker.fromCategory(category.Other())
	if otherErr != nil {
		return material{}, fmt.Errorf("no category can supply a paragraph: %w", otherErr)
	}
	return m, nil
}
