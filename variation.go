package studyquiz

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

// Variation corrupts a correct answer into a plausible wrong option. The
// result is a heuristic edit, not a checked falsehood.
type Variation struct {
	rng *rand.Rand
	lex *Lexicon
}

// NewVariation creates a variation transform over the lexicon.
func NewVariation(rng *rand.Rand, lex *Lexicon) *Variation {
	return &Variation{rng: rng, lex: lex}
}

// Apply returns a variation of answer that never equals answer itself.
func (v *Variation) Apply(answer string) string {
	out := v.transform(answer)
	if out == answer {
		out = answer + v.lex.ContrastClause
	}
	return out
}

func (v *Variation) transform(answer string) string {
	words := strings.Split(answer, " ")
	if len(words) <= 5 {
		return answer + v.lex.ShortDisclaimer
	}

	switch v.rng.IntN(3) {
	case 0:
		return v.substitute(words)
	case 1:
		return v.reorder(words)
	default:
		return v.truncate(words)
	}
}

// substitute replaces up to three random words longer than three runes.
func (v *Variation) substitute(words []string) string {
	n := min(3, len(words)/4)
	for i := 0; i < n; i++ {
		idx := v.rng.IntN(len(words))
		if utf8.RuneCountInString(words[idx]) > 3 {
			words[idx] = v.opposite(words[idx])
		}
	}
	return strings.Join(words, " ")
}

// reorder swaps the two halves of a long answer.
func (v *Variation) reorder(words []string) string {
	if len(words) > 10 {
		mid := len(words) / 2
		swapped := append(append([]string{}, words[mid:]...), words[:mid]...)
		return strings.Join(swapped, " ")
	}
	return strings.Join(words, " ") + v.lex.ContrastClause
}

// truncate keeps the first 70% of the words.
func (v *Variation) truncate(words []string) string {
	keep := len(words) * 7 / 10
	return strings.Join(words[:keep], " ") + v.lex.TruncationCloser
}

// opposite looks up an antonym, falling back to negating the word or
// swapping its ending for a plural suffix.
func (v *Variation) opposite(word string) string {
	if antonym, ok := v.lex.Antonyms[word]; ok {
		return antonym
	}
	runes := []rune(word)
	if len(runes) <= 5 {
		return word
	}
	if v.rng.IntN(2) == 0 {
		return v.lex.NegationPrefix + word
	}
	suffix := v.lex.PluralSuffixes[v.rng.IntN(len(v.lex.PluralSuffixes))]
	return string(runes[:len(runes)-2]) + suffix
}
