package studyquiz

import (
	"math/rand/v2"
	"slices"
)

// DistractorGenerator draws wrong options from the corpus, falling back to
// a variation of the correct answer when the draw collides.
type DistractorGenerator struct {
	rng       *rand.Rand
	store     *ContentStore
	variation *Variation
	count     int
}

// NewDistractorGenerator creates a generator producing count wrong options per question.
func NewDistractorGenerator(rng *rand.Rand, store *ContentStore, variation *Variation, count int) *DistractorGenerator {
	return &DistractorGenerator{
		rng:       rng,
		store:     store,
		variation: variation,
		count:     count,
	}
}

// Generate returns count+1 shuffled options including correct. The options
// are not guaranteed pairwise distinct when the corpus is too small to
// supply enough different paragraphs.
func (dg *DistractorGenerator) Generate(correct string) []string {
	options := make([]string, 1, dg.count+1)
	options[0] = correct

	for i := 0; i < dg.count; i++ {
		paragraph, ok := dg.draw()
		if ok && paragraph != correct && !slices.Contains(options, paragraph) {
			options = append(options, paragraph)
			continue
		}
		VerboseLog("distractor draw %d collided, using a variation", i+1)
		options = append(options, dg.variation.Apply(correct))
	}

	Shuffle(dg.rng, options)
	return options
}

// draw picks a paragraph from a random category and source.
func (dg *DistractorGenerator) draw() (string, bool) {
	category := Presentation
	if dg.rng.Float64() >= 0.5 {
		category = Summary
	}
	sources := dg.store.sourcesOf(category)
	if len(sources) == 0 {
		return "", false
	}
	source := sources[dg.rng.IntN(len(sources))]
	paragraphs := dg.store.paragraphsOf(category, source)
	if len(paragraphs) == 0 {
		return "", false
	}
	return paragraphs[dg.rng.IntN(len(paragraphs))], true
}

// Shuffle permutes items in place with Fisher-Yates.
func Shuffle[T any](rng *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
