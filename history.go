package studyquiz

import (
	"sync"
	"time"
)

// Answer records one graded submission.
type Answer struct {
	Question   Question  `json:"question"`
	Submitted  string    `json:"submitted"`
	Verdict    Verdict   `json:"verdict"`
	AnsweredAt time.Time `json:"answered_at"`
}

// History keeps the graded answers of a session in order
type History struct {
	mu      sync.RWMutex
	answers []Answer
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{
		answers: make([]Answer, 0),
	}
}

// Add appends a graded answer.
func (h *History) Add(q *Question, submitted string, v *Verdict) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.answers = append(h.answers, Answer{
		Question:   *q,
		Submitted:  submitted,
		Verdict:    *v,
		AnsweredAt: time.Now(),
	})
}

// Len returns the number of graded answers.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.answers)
}

// IsEmpty returns true if nothing was answered yet
func (h *History) IsEmpty() bool {
	return h.Len() == 0
}

// All returns a copy of every graded answer in order.
func (h *History) All() []Answer {
	h.mu.RLock()
	defer h.mu.RUnlock()

	answers := make([]Answer, len(h.answers))
	copy(answers, h.answers)
	return answers
}

// Score returns how many answers were correct out of how many were given.
func (h *History) Score() (correct, answered int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, a := range h.answers {
		if a.Verdict.IsCorrect {
			correct++
		}
	}
	return correct, len(h.answers)
}

// Last returns the most recent graded answer.
func (h *History) Last() (Answer, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.answers) == 0 {
		return Answer{}, false
	}
	return h.answers[len(h.answers)-1], true
}
