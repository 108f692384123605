package studyquiz

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

// minTermLength is exclusive: a significant term has more runes than this.
const minTermLength = 4

// TermExtractor picks significant terms out of a paragraph.
type TermExtractor struct {
	rng         *rand.Rand
	stopwords   map[string]struct{}
	placeholder string
}

// NewTermExtractor creates an extractor from the lexicon's stopword list.
func NewTermExtractor(rng *rand.Rand, lex *Lexicon) *TermExtractor {
	stopwords := make(map[string]struct{}, len(lex.Stopwords))
	for _, w := range lex.Stopwords {
		stopwords[w] = struct{}{}
	}
	return &TermExtractor{
		rng:         rng,
		stopwords:   stopwords,
		placeholder: lex.Placeholder,
	}
}

// Candidates returns every significant token of the paragraph in order.
func (te *TermExtractor) Candidates(paragraph string) []string {
	var out []string
	for _, word := range strings.Fields(paragraph) {
		if utf8.RuneCountInString(word) <= minTermLength {
			continue
		}
		if _, stop := te.stopwords[word]; stop {
			continue
		}
		out = append(out, word)
	}
	return out
}

// Extract picks one significant term uniformly at random. A paragraph
// without any yields the placeholder term.
func (te *TermExtractor) Extract(paragraph string) string {
	candidates := te.Candidates(paragraph)
	if len(candidates) == 0 {
		VerboseLog("no significant term in paragraph, using placeholder %q", te.placeholder)
		return te.placeholder
	}
	return candidates[te.rng.IntN(len(candidates))]
}

// Placeholder returns the sentinel term used when extraction finds nothing.
func (te *TermExtractor) Placeholder() string {
	return te.placeholder
}
