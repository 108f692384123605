package studyquiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const photosynthesis = "Photosynthesis converts light energy into chemical energy in plants."

func testDoc(c Category, id string, paragraphs ...string) Document {
	return Document{
		ID:         id,
		Category:   c,
		FullText:   strings.Join(paragraphs, " "),
		Paragraphs: paragraphs,
	}
}

func newTestStore(t *testing.T, docs ...Document) *ContentStore {
	t.Helper()
	store, err := NewContentStore(docs...)
	require.NoError(t, err)
	return store
}

// biologyStore has enough distinct material that options rarely collide.
func biologyStore(t *testing.T) *ContentStore {
	return newTestStore(t,
		testDoc(Presentation, "P1",
			photosynthesis,
			"Mitochondria produce energy through cellular respiration.",
			"The process of mitosis has four stages, then the cell divides.",
		),
		testDoc(Presentation, "P2",
			"Plant cells, unlike animal cells, have rigid walls.",
			"Enzymes lower the activation energy of reactions.",
		),
		testDoc(Summary, "S1",
			"Ribosomes assemble proteins from amino acids.",
			"Diffusion moves molecules from high to low concentration.",
		),
	)
}
