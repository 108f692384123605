package studyquiz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// CommandRunner runs an external program and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Ingester turns source files into documents. Text and Markdown files are
// read directly; PDF files go through pdftotext.
type Ingester struct {
	seg    Segmenter
	runner CommandRunner
}

// NewIngester creates an ingester. A nil runner uses ExecRunner.
func NewIngester(seg Segmenter, runner CommandRunner) *Ingester {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Ingester{seg: seg, runner: runner}
}

// LoadDir ingests a corpus directory. Files under presentations/ and
// summaries/ take their category from the directory; files directly in dir
// are categorised by name, P<n> for presentations and S<n> for summaries.
// Files that cannot be read are logged and skipped.
func (in *Ingester) LoadDir(ctx context.Context, dir string) ([]Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus path %s is not a directory", dir)
	}

	var docs []Document
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !supportedFile(path) {
			return nil
		}
		category, ok := categoryOf(dir, path)
		if !ok {
			VerboseLog("skipping %s: cannot tell its category", path)
			return nil
		}
		doc, err := in.LoadFile(ctx, category, path)
		if err != nil {
			log.Printf("Failed to load %s: %v", path, err)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk corpus directory: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Category != docs[j].Category {
			return docs[i].Category < docs[j].Category
		}
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

// LoadFile ingests one file into a document of the given category.
func (in *Ingester) LoadFile(ctx context.Context, category Category, path string) (Document, error) {
	text, err := in.extractText(ctx, path)
	if err != nil {
		return Document{}, err
	}
	doc := NewDocument(category, DocumentID(path), text, in.seg)
	VerboseLog("loaded %s/%s: %d paragraphs", category, doc.ID, len(doc.Paragraphs))
	return doc, nil
}

func (in *Ingester) extractText(ctx context.Context, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		out, err := in.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", path, "-")
		if err != nil {
			return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
		}
		return string(out), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// DocumentID derives the source id from a file name: the base name without extension.
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func supportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".pdf":
		return true
	}
	return false
}

func categoryOf(root, path string) (Category, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) > 1 {
		c, err := ParseCategory(parts[0])
		return c, err == nil
	}

	// Flat layout: P1.pdf, S2.txt
	name := DocumentID(path)
	if len(name) < 2 || !unicode.IsDigit(rune(name[1])) {
		return "", false
	}
	c, err := ParseCategory(name[:1])
	return c, err == nil
}

// LoadCorpus builds the content store the binaries run on. A configured
// corpus directory is ingested; otherwise the corpus cached in the database
// is used.
func LoadCorpus(ctx context.Context, s *Settings, lex *Lexicon) (*ContentStore, error) {
	var docs []Document
	switch {
	case s.CorpusDir != "":
		seg, err := NewSentenceSegmenter(s.Params.MinParagraphLength, lex.NativeScript)
		if err != nil {
			return nil, err
		}
		docs, err = NewIngester(seg, nil).LoadDir(ctx, s.CorpusDir)
		if err != nil {
			return nil, err
		}
	case s.DBPath != "":
		db, err := OpenDB(s.DBPath)
		if err != nil {
			return nil, err
		}
		defer db.CloseDB()
		if err := db.CreateTables(); err != nil {
			return nil, err
		}
		docs, err = db.LoadDocuments()
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("no corpus directory or database configured")
	}

	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}
	return NewContentStore(docs...)
}
