package studyquiz

import (
	"fmt"
	"sort"
	"strings"
)

// Document is one ingested source file.
type Document struct {
	ID         string   `json:"id"`
	Category   Category `json:"category"`
	FullText   string   `json:"full_text"`
	Paragraphs []string `json:"paragraphs"`
}

// NewDocument normalizes text and segments it into paragraphs.
func NewDocument(category Category, id, text string, seg Segmenter) Document {
	full := NormalizeText(text)
	return Document{
		ID:         id,
		Category:   category,
		FullText:   full,
		Paragraphs: seg.Segment(full),
	}
}

// CorpusStats summarises the loaded corpus.
type CorpusStats struct {
	PresentationCount int `json:"presentation_count"`
	SummaryCount      int `json:"summary_count"`
	TotalParagraphs   int `json:"total_paragraphs"`
	TotalWords        int `json:"total_words"`
}

// ContentStore holds the ingested corpus. It has no mutation API: the
// documents are copied in at construction and only read afterwards.
type ContentStore struct {
	docs    map[Category]map[string]Document
	sources map[Category][]string // sorted ids, for reproducible sampling
}

// NewContentStore builds a store from ingested documents. A later document
// with the same category and id replaces an earlier one.
func NewContentStore(docs ...Document) (*ContentStore, error) {
	cs := &ContentStore{
		docs:    make(map[Category]map[string]Document),
		sources: make(map[Category][]string),
	}
	for _, c := range Categories {
		cs.docs[c] = make(map[string]Document)
	}

	for _, doc := range docs {
		byID, ok := cs.docs[doc.Category]
		if !ok {
			return nil, fmt.Errorf("document %s has unknown category %q", doc.ID, doc.Category)
		}
		if doc.ID == "" {
			return nil, fmt.Errorf("document in category %s has no id", doc.Category)
		}
		paragraphs := make([]string, len(doc.Paragraphs))
		copy(paragraphs, doc.Paragraphs)
		doc.Paragraphs = paragraphs
		byID[doc.ID] = doc
	}

	for c, byID := range cs.docs {
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		cs.sources[c] = ids
	}
	return cs, nil
}

// Sources returns the ids of every source in a category.
func (cs *ContentStore) Sources(c Category) ([]string, error) {
	ids := cs.sources[c]
	if len(ids) == 0 {
		return nil, fmt.Errorf("%s: %w", c, ErrEmptyCorpus)
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

// Paragraphs returns the paragraphs of one source in document order.
func (cs *ContentStore) Paragraphs(c Category, id string) ([]string, error) {
	doc, err := cs.document(c, id)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(doc.Paragraphs))
	copy(out, doc.Paragraphs)
	return out, nil
}

// FullText returns the normalized text of one source.
func (cs *ContentStore) FullText(c Category, id string) (string, error) {
	doc, err := cs.document(c, id)
	if err != nil {
		return "", err
	}
	return doc.FullText, nil
}

// Documents returns every document of a category in id order.
func (cs *ContentStore) Documents(c Category) []Document {
	docs := make([]Document, 0, len(cs.sources[c]))
	for _, id := range cs.sources[c] {
		docs = append(docs, cs.docs[c][id])
	}
	return docs
}

// SourceCount returns the number of sources across both categories.
func (cs *ContentStore) SourceCount() int {
	return len(cs.sources[Presentation]) + len(cs.sources[Summary])
}

// Stats counts sources, paragraphs and words.
func (cs *ContentStore) Stats() CorpusStats {
	stats := CorpusStats{
		PresentationCount: len(cs.sources[Presentation]),
		SummaryCount:      len(cs.sources[Summary]),
	}
	for _, c := range Categories {
		for _, doc := range cs.docs[c] {
			stats.TotalParagraphs += len(doc.Paragraphs)
			stats.TotalWords += len(strings.Fields(doc.FullText))
		}
	}
	return stats
}

// paragraphsOf returns the stored slice without copying. Callers must not modify it.
func (cs *ContentStore) paragraphsOf(c Category, id string) []string {
	return cs.docs[c][id].Paragraphs
}

func (cs *ContentStore) sourcesOf(c Category) []string {
	return cs.sources[c]
}

func (cs *ContentStore) document(c Category, id string) (Document, error) {
	byID, ok := cs.docs[c]
	if !ok || len(byID) == 0 {
		return Document{}, fmt.Errorf("%s: %w", c, ErrEmptyCorpus)
	}
	doc, ok := byID[id]
	if !ok {
		return Document{}, fmt.Errorf("source %s not found in %s", id, c)
	}
	return doc, nil
}
