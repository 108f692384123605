package studyquiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func countOf(options []string, s string) int {
	n := 0
	for _, o := range options {
		if o == s {
			n++
		}
	}
	return n
}

func TestDistractorsContainCorrectOnce(t *testing.T) {
	store := biologyStore(t)
	rng := NewRand(11)
	dg := NewDistractorGenerator(rng, store, NewVariation(rng, DefaultLexicon()), 3)

	for i := 0; i < 100; i++ {
		options := dg.Generate(photosynthesis)
		assert.Len(t, options, 4)
		assert.Equal(t, 1, countOf(options, photosynthesis))
	}
}

func TestDistractorsSingleParagraphCorpus(t *testing.T) {
	store := newTestStore(t, testDoc(Presentation, "P1", photosynthesis))
	rng := NewRand(5)
	dg := NewDistractorGenerator(rng, store, NewVariation(rng, DefaultLexicon()), 3)

	for i := 0; i < 20; i++ {
		options := dg.Generate(photosynthesis)
		assert.Len(t, options, 4)
		assert.Equal(t, 1, countOf(options, photosynthesis))
	}
}

func TestDistractorsCustomCount(t *testing.T) {
	store := biologyStore(t)
	rng := NewRand(2)
	dg := NewDistractorGenerator(rng, store, NewVariation(rng, DefaultLexicon()), 5)

	assert.Len(t, dg.Generate(photosynthesis), 6)
}

func TestShufflePermutes(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(NewRand(9), items)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, items)
}
