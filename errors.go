package studyquiz

import "errors"

// Generation and validation errors. Callers match them with errors.Is;
// the engine wraps them with context about the category or session involved.
var (
	// ErrEmptyCorpus indicates a requested category has no sources.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrInsufficientContent indicates fewer sources or paragraphs than a strategy needs.
	ErrInsufficientContent = errors.New("insufficient content")

	// ErrNotApplicable indicates a strategy precondition was not met.
	// It never leaves the synthesizer: the definition strategy takes over.
	ErrNotApplicable = errors.New("strategy not applicable")

	// ErrGenerationExhausted indicates every uniqueness attempt collided
	// and the generator has no degrade path.
	ErrGenerationExhausted = errors.New("generation exhausted")

	// ErrNoActiveQuestion indicates an answer was checked before any question was generated.
	ErrNoActiveQuestion = errors.New("no active question")
)

// IsRetryable reports whether asking for another question may succeed.
// Corpus errors will keep failing until the corpus changes; an exhausted
// uniqueness search can succeed on a later draw.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrGenerationExhausted)
}
