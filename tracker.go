package studyquiz

import "fmt"

// AskedSet is the set of question identities emitted in a session.
type AskedSet struct {
	seen map[Identity]struct{}
}

// NewAskedSet creates an empty set.
func NewAskedSet() *AskedSet {
	return &AskedSet{seen: make(map[Identity]struct{})}
}

// Has reports whether id was already asked.
func (s *AskedSet) Has(id Identity) bool {
	_, ok := s.seen[id]
	return ok
}

// Add records id. Adding an existing identity is a no-op.
func (s *AskedSet) Add(id Identity) {
	s.seen[id] = struct{}{}
}

// Len returns the number of distinct identities recorded.
func (s *AskedSet) Len() int {
	return len(s.seen)
}

// DedupResult describes how the tracker settled on a question.
type DedupResult struct {
	Attempts int  // generator calls made
	Degraded bool // accepted despite a colliding identity
}

// UniquenessTracker drives generation until it gets a question that has
// not been asked yet.
type UniquenessTracker struct {
	asked      *AskedSet
	retryLimit int
}

// NewUniquenessTracker creates a tracker allowing retryLimit generator calls
// per question. A limit below one is raised to one.
func NewUniquenessTracker(retryLimit int) *UniquenessTracker {
	if retryLimit < 1 {
		retryLimit = 1
	}
	return &UniquenessTracker{
		asked:      NewAskedSet(),
		retryLimit: retryLimit,
	}
}

// Next returns the first generated question whose identity is new and
// records it. When every attempt collides, a generator implementing
// Degrader gets to salvage the last question, which is then accepted and
// recorded even though its identity repeats; any other generator fails
// with ErrGenerationExhausted. Generator errors are returned as is.
func (t *UniquenessTracker) Next(gen Generator) (*Question, DedupResult, error) {
	var last *Question
	for attempt := 1; attempt <= t.retryLimit; attempt++ {
		q, err := gen.Generate()
		if err != nil {
			return nil, DedupResult{Attempts: attempt}, err
		}
		id := q.Identity()
		if !t.asked.Has(id) {
			t.asked.Add(id)
			return q, DedupResult{Attempts: attempt}, nil
		}
		VerboseLog("question %s collides with an earlier one (attempt %d/%d)", q.ID, attempt, t.retryLimit)
		last = q
	}

	degrader, ok := gen.(Degrader)
	if !ok {
		return nil, DedupResult{Attempts: t.retryLimit},
			fmt.Errorf("no unasked question after %d attempts: %w", t.retryLimit, ErrGenerationExhausted)
	}

	q := degrader.Degrade(last)
	t.asked.Add(q.Identity())
	VerboseLog("question %s accepted as a repeat with fresh options", q.ID)
	return q, DedupResult{Attempts: t.retryLimit, Degraded: true}, nil
}

// Asked returns the number of distinct questions recorded.
func (t *UniquenessTracker) Asked() int {
	return t.asked.Len()
}
