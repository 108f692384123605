package studyquiz

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// CrossTopicSynthesizer relates a term from a presentation with a term from
// a summary. The topic labels frame the question only; nothing checks that
// the paragraphs are about those topics. Its wrong options are fixed
// templates, not corpus draws.
type CrossTopicSynthesizer struct {
	params Params
	rng    *rand.Rand
	store  *ContentStore
	picker *paragraphPicker
	terms  *TermExtractor
	lex    *Lexicon
}

// NewCrossTopicSynthesizer creates a cross-topic synthesizer over the store.
func NewCrossTopicSynthesizer(rng *rand.Rand, store *ContentStore, lex *Lexicon, params Params) *CrossTopicSynthesizer {
	return &CrossTopicSynthesizer{
		params: params,
		rng:    rng,
		store:  store,
		picker: &paragraphPicker{rng: rng, store: store, attempts: params.RetryLimit},
		terms:  NewTermExtractor(rng, lex),
		lex:    lex,
	}
}

// Generate implements Generator.
func (s *CrossTopicSynthesizer) Generate() (*Question, error) {
	if n := s.store.SourceCount(); n < 2 {
		return nil, fmt.Errorf("cross-topic questions need two sources, have %d: %w", n, ErrInsufficientContent)
	}

	first := Presentation
	if s.rng.Float64() >= 0.5 {
		first = Summary
	}
	m1, err := s.picker.fromCategory(first)
	if err != nil {
		return nil, fmt.Errorf("cross-topic first paragraph: %w: %w", ErrInsufficientContent, err)
	}
	m2, err := s.picker.fromCategory(first.Other())
	if err != nil {
		return nil, fmt.Errorf("cross-topic second paragraph: %w: %w", ErrInsufficientContent, err)
	}

	term1 := s.terms.Extract(m1.paragraph)
	term2 := s.terms.Extract(m2.paragraph)
	topic1, topic2 := s.pickTopics()

	tmpl := s.lex.Templates.CrossTopic
	vars := map[string]string{
		"term1":     term1,
		"term2":     term2,
		"topic1":    topic1,
		"topic2":    topic2,
		"source1":   m1.source.ID,
		"source2":   m2.source.ID,
		"category1": s.lex.CategoryLabel(m1.source.Category),
		"category2": s.lex.CategoryLabel(m2.source.Category),
	}
	answer := fill(tmpl.Answer, vars)
	vars["answer"] = answer

	options := make([]string, 0, len(tmpl.Distractors)+1)
	options = append(options, answer)
	for _, d := range tmpl.Distractors {
		options = append(options, fill(d, vars))
	}
	Shuffle(s.rng, options)

	return &Question{
		ID:            uuid.NewString(),
		Text:          fill(tmpl.Question, vars),
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   fill(tmpl.Explanation, vars),
		Difficulty:    s.params.Difficulty,
		Strategy:      StrategyCrossTopic,
		Sources:       []SourceRef{m1.source, m2.source},
		CreatedAt:     time.Now(),
	}, nil
}

// pickTopics draws two distinct topic labels.
func (s *CrossTopicSynthesizer) pickTopics() (string, string) {
	topics := s.lex.Topics
	i := s.rng.IntN(len(topics))
	j := s.rng.IntN(len(topics) - 1)
	if j >= i {
		j++
	}
	return topics[i], topics[j]
}
