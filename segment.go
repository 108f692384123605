package studyquiz

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Segmenter splits a document's normalized full text into paragraphs.
type Segmenter interface {
	Segment(text string) []string
}

// SentenceSegmenter splits on a period followed by whitespace and an
// uppercase Latin letter, or by optional whitespace and a letter of the
// native script. Fragments not longer than MinLength runes are dropped.
type SentenceSegmenter struct {
	MinLength int
	script    *unicode.RangeTable
}

// NewSentenceSegmenter creates a segmenter for the given native script name
// (a unicode.Scripts key such as "Hebrew"); an empty name means Latin only.
func NewSentenceSegmenter(minLength int, nativeScript string) (*SentenceSegmenter, error) {
	s := &SentenceSegmenter{MinLength: minLength}
	if nativeScript != "" {
		table, err := scriptTable(nativeScript)
		if err != nil {
			return nil, err
		}
		s.script = table
	}
	return s, nil
}

// Segment implements Segmenter.
func (s *SentenceSegmenter) Segment(text string) []string {
	var paragraphs []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '.' || !s.boundaryAfter(text[i+1:]) {
			continue
		}
		paragraphs = s.appendFragment(paragraphs, text[start:i])
		start = i + 1
	}
	return s.appendFragment(paragraphs, text[start:])
}

func (s *SentenceSegmenter) appendFragment(paragraphs []string, fragment string) []string {
	fragment = strings.TrimSpace(fragment)
	if utf8.RuneCountInString(fragment) > s.MinLength {
		paragraphs = append(paragraphs, fragment)
	}
	return paragraphs
}

// boundaryAfter reports whether the text following a period starts a new sentence.
func (s *SentenceSegmenter) boundaryAfter(rest string) bool {
	r, size := utf8.DecodeRuneInString(rest)
	if r == utf8.RuneError {
		return false
	}
	if s.isNative(r) {
		return true
	}
	if !unicode.IsSpace(r) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(rest[size:])
	return (next >= 'A' && next <= 'Z') || s.isNative(next)
}

func (s *SentenceSegmenter) isNative(r rune) bool {
	return s.script != nil && unicode.IsLetter(r) && unicode.Is(s.script, r)
}

func scriptTable(name string) (*unicode.RangeTable, error) {
	table, ok := unicode.Scripts[name]
	if !ok {
		return nil, fmt.Errorf("unknown script %q", name)
	}
	return table, nil
}

// NormalizeText composes the text to NFC and collapses whitespace runs to
// single spaces.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}
