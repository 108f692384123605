package studyquiz

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	output []byte
	err    error
	calls  [][]string
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	return m.output, m.err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestIngester(t *testing.T, runner CommandRunner) *Ingester {
	t.Helper()
	seg, err := NewSentenceSegmenter(10, "")
	require.NoError(t, err)
	return NewIngester(seg, runner)
}

func TestIngesterLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "presentations", "P1.txt"),
		"Photosynthesis converts light energy. Plants store it as sugar.")
	writeFile(t, filepath.Join(dir, "summaries", "S1.md"), "Cells are the unit of life.")
	writeFile(t, filepath.Join(dir, "P2.txt"), "Enzymes speed up reactions.")
	writeFile(t, filepath.Join(dir, "S3.pdf"), "%PDF-1.4")
	writeFile(t, filepath.Join(dir, "notes.txt"), "Not part of the corpus.")
	writeFile(t, filepath.Join(dir, "presentations", "image.png"), "png")

	runner := &mockRunner{output: []byte("Diffusion moves molecules. Osmosis moves water.")}
	docs, err := newTestIngester(t, runner).LoadDir(context.Background(), dir)
	require.NoError(t, err)

	var refs []SourceRef
	for _, d := range docs {
		refs = append(refs, SourceRef{Category: d.Category, ID: d.ID})
	}
	assert.Equal(t, []SourceRef{
		{Category: Presentation, ID: "P1"},
		{Category: Presentation, ID: "P2"},
		{Category: Summary, ID: "S1"},
		{Category: Summary, ID: "S3"},
	}, refs)

	assert.Equal(t, []string{"Photosynthesis converts light energy", "Plants store it as sugar."}, docs[0].Paragraphs)
	assert.Equal(t, []string{"Diffusion moves molecules", "Osmosis moves water."}, docs[3].Paragraphs)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"pdftotext", "-enc", "UTF-8", filepath.Join(dir, "S3.pdf"), "-"}, runner.calls[0])
}

func TestIngesterSkipsFailedExtraction(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "presentations", "P1.pdf"), "%PDF-1.4")
	writeFile(t, filepath.Join(dir, "presentations", "P2.txt"), "Mitochondria produce energy.")

	runner := &mockRunner{err: errors.New("pdftotext: not found")}
	docs, err := newTestIngester(t, runner).LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "P2", docs[0].ID)
}

func TestIngesterMissingDir(t *testing.T) {
	_, err := newTestIngester(t, nil).LoadDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCategoryOf(t *testing.T) {
	root := filepath.Join("corpus")
	tests := []struct {
		path string
		want Category
		ok   bool
	}{
		{"corpus/presentations/week1.pdf", Presentation, true},
		{"corpus/summaries/week1.txt", Summary, true},
		{"corpus/P4.txt", Presentation, true},
		{"corpus/s2.md", Summary, true},
		{"corpus/notes.txt", "", false},
		{"corpus/P.txt", "", false},
		{"corpus/other/P1.txt", "", false},
	}
	for _, tt := range tests {
		got, ok := categoryOf(root, filepath.FromSlash(tt.path))
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestDocumentID(t *testing.T) {
	assert.Equal(t, "P1", DocumentID("/tmp/corpus/P1.pdf"))
	assert.Equal(t, "week.1", DocumentID("week.1.txt"))
}

func TestLoadCorpusFromDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "quiz.db")
	db, err := OpenDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.CreateTables())
	require.NoError(t, db.SaveDocuments([]Document{
		testDoc(Presentation, "P1", photosynthesis),
		testDoc(Summary, "S1", "Ribosomes assemble proteins."),
	}))
	require.NoError(t, db.CloseDB())

	store, err := LoadCorpus(context.Background(), &Settings{DBPath: dbPath, Params: DefaultParams()}, DefaultLexicon())
	require.NoError(t, err)
	assert.Equal(t, 2, store.SourceCount())

	paragraphs, err := store.Paragraphs(Presentation, "P1")
	require.NoError(t, err)
	assert.Equal(t, []string{photosynthesis}, paragraphs)
}

func TestLoadCorpusEmpty(t *testing.T) {
	_, err := LoadCorpus(context.Background(), &Settings{CorpusDir: t.TempDir(), Params: DefaultParams()}, DefaultLexicon())
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = LoadCorpus(context.Background(), &Settings{Params: DefaultParams()}, DefaultLexicon())
	assert.Error(t, err)
}
