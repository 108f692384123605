package studyquiz

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine is one quiz session: it generates unique questions over a shared
// read-only corpus and grades answers against the current question. An
// Engine is safe for concurrent use; sessions must not share one.
type Engine struct {
	mu      sync.Mutex
	id      string
	params  Params
	store   *ContentStore
	gen     Generator
	tracker *UniquenessTracker
	checker *AnswerChecker
	history *History
	logger  *SessionLog
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSessionLog writes every question and verdict of the session to l.
func WithSessionLog(l *SessionLog) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) EngineOption {
	return func(e *Engine) {
		e.id = id
	}
}

// NewEngine creates a session over store. The synthesizer is chosen by params.Mode.
func NewEngine(store *ContentStore, lex *Lexicon, params Params, rng *rand.Rand, opts ...EngineOption) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon: %w", err)
	}
	if rng == nil {
		rng = NewRand(0)
	}

	e := &Engine{
		id:      uuid.NewString(),
		params:  params,
		store:   store,
		tracker: NewUniquenessTracker(params.RetryLimit),
		checker: NewAnswerChecker(),
		history: NewHistory(),
	}

	switch params.Mode {
	case ModeCross:
		if n := len(lex.Templates.CrossTopic.Distractors); n != params.DistractorCount {
			return nil, fmt.Errorf("cross-topic lexicon has %d distractor templates, want %d", n, params.DistractorCount)
		}
		e.gen = NewCrossTopicSynthesizer(rng, store, lex, params)
	default:
		e.gen = NewSingleSynthesizer(rng, store, lex, params)
	}

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewRand returns a PCG-backed generator. A zero seed draws one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ID returns the session id.
func (e *Engine) ID() string {
	return e.id
}

// Params returns the generation parameters of the session.
func (e *Engine) Params() Params {
	return e.params
}

// NextQuestion generates a question not asked before in this session and
// makes it the current question. The question is recorded as asked before
// it becomes current.
func (e *Engine) NextQuestion() (*Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	q, result, err := e.tracker.Next(e.gen)
	if err != nil {
		if e.logger != nil {
			e.logger.LogFailure(err)
		}
		return nil, fmt.Errorf("session %s: %w", e.id, err)
	}

	e.checker.SetCurrent(q)
	if e.logger != nil {
		e.logger.LogQuestion(q, result)
	}
	VerboseLog("session %s: question %s (%s) after %d attempt(s)", e.id, q.ID, q.Strategy, result.Attempts)
	return q, nil
}

// Current returns the current question, or nil before the first one.
func (e *Engine) Current() *Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checker.Current()
}

// Check grades submitted against the current question and records the result.
func (e *Engine) Check(submitted string) (*Verdict, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.check(submitted)
}

// CheckOption grades the option at the given display position.
func (e *Engine) CheckOption(index int) (*Verdict, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := e.checker.Current()
	if q == nil {
		return nil, ErrNoActiveQuestion
	}
	if index < 0 || index >= len(q.Options) {
		return nil, fmt.Errorf("option %d out of range [0,%d)", index, len(q.Options))
	}
	return e.check(q.Options[index])
}

func (e *Engine) check(submitted string) (*Verdict, error) {
	verdict, err := e.checker.Check(submitted)
	if err != nil {
		return nil, err
	}
	q := e.checker.Current()
	e.history.Add(q, submitted, verdict)
	if e.logger != nil {
		e.logger.LogVerdict(q.ID, submitted, verdict)
	}
	return verdict, nil
}

// History returns the graded answers of the session.
func (e *Engine) History() *History {
	return e.history
}

// Asked returns the number of distinct questions emitted so far.
func (e *Engine) Asked() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Asked()
}

// GenerateQuiz generates n questions in a row for export. Every question is
// structurally checked before it is added.
func (e *Engine) GenerateQuiz(n int) (*Quiz, error) {
	log.Printf("Starting quiz generation for session %s, target questions: %d", e.id, n)

	questions := make([]Question, 0, n)
	for len(questions) < n {
		q, err := e.NextQuestion()
		if err != nil {
			return nil, fmt.Errorf("failed to generate question %d: %w", len(questions)+1, err)
		}
		if err := q.Validate(e.params.OptionCount()); err != nil {
			return nil, fmt.Errorf("generated malformed question: %w", err)
		}
		questions = append(questions, *q)
	}

	quiz := &Quiz{
		ID:             uuid.NewString(),
		Mode:           e.params.Mode,
		Questions:      questions,
		CreatedAt:      time.Now(),
		TotalQuestions: n,
	}

	log.Printf("Quiz generation complete: %d questions", len(quiz.Questions))
	return quiz, nil
}
