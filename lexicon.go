package studyquiz

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon holds every language-dependent word list and phrase template.
// Placeholders in templates are written as {name}.
type Lexicon struct {
	Language             string              `yaml:"language"`
	NativeScript         string              `yaml:"native_script"`
	Stopwords            []string            `yaml:"stopwords"`
	Placeholder          string              `yaml:"placeholder"`
	CategoryLabels       map[Category]string `yaml:"category_labels"`
	Antonyms             map[string]string   `yaml:"antonyms"`
	NegationPrefix       string              `yaml:"negation_prefix"`
	PluralSuffixes       []string            `yaml:"plural_suffixes"`
	ShortDisclaimer      string              `yaml:"short_disclaimer"`
	ContrastClause       string              `yaml:"contrast_clause"`
	TruncationCloser     string              `yaml:"truncation_closer"`
	ProcessIndicators    []string            `yaml:"process_indicators"`
	ComparisonIndicators []string            `yaml:"comparison_indicators"`
	Topics               []string            `yaml:"topics"`
	Templates            Templates           `yaml:"templates"`
}

// Template is the phrasing of one strategy.
type Template struct {
	Question    string   `yaml:"question"`
	Generic     string   `yaml:"generic,omitempty"`
	Answer      string   `yaml:"answer,omitempty"`
	Explanation string   `yaml:"explanation"`
	Distractors []string `yaml:"distractors,omitempty"`
}

// Templates groups the phrasing of every strategy.
type Templates struct {
	Definition   Template `yaml:"definition"`
	Relationship Template `yaml:"relationship"`
	Process      Template `yaml:"process"`
	Comparison   Template `yaml:"comparison"`
	Analysis     Template `yaml:"analysis"`
	CrossTopic   Template `yaml:"cross_topic"`
}

// DefaultLexicon returns the built-in English lexicon.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Language:     "en",
		NativeScript: "",
		Stopwords: []string{
			"about", "above", "after", "again", "among", "because", "before", "being", "below",
			"between", "could", "during", "every", "other", "their", "there", "these", "those",
			"through", "under", "until", "where", "which", "while", "would",
		},
		Placeholder: "this concept",
		CategoryLabels: map[Category]string{
			Presentation: "presentation",
			Summary:      "summary",
		},
		Antonyms: map[string]string{
			"always":    "never",
			"never":     "always",
			"increase":  "decrease",
			"decrease":  "increase",
			"increases": "decreases",
			"decreases": "increases",
			"large":     "small",
			"small":     "large",
			"major":     "minor",
			"minor":     "major",
			"primary":   "secondary",
			"secondary": "primary",
			"possible":  "impossible",
			"correct":   "incorrect",
			"positive":  "negative",
			"negative":  "positive",
			"inside":    "outside",
			"outside":   "inside",
			"many":      "few",
			"more":      "less",
		},
		NegationPrefix:   "not ",
		PluralSuffixes:   []string{"es", "ies"},
		ShortDisclaimer:  " but keep in mind that this is not always the case.",
		ContrastClause:   " which is exactly the opposite of what is commonly believed.",
		TruncationCloser: " and so on and so forth.",
		ProcessIndicators: []string{
			"process", "stages", "steps", "First", "first", "then", "Finally", "finally", "as a result",
		},
		ComparisonIndicators: []string{
			"compared to", "in contrast to", "unlike", "similar to", "different from", "whereas",
		},
		Topics: []string{
			"cell structure", "genetics", "evolution", "ecology", "metabolism", "physiology",
			"reproduction", "homeostasis",
		},
		Templates: Templates{
			Definition: Template{
				Question:    "What is the most accurate definition of {term}?",
				Explanation: "The correct answer is: {answer}. Source: {category} {source}.",
			},
			Relationship: Template{
				Question:    "What is the correct relationship between {term1} and {term2}?",
				Explanation: "The correct answer describes the relationship between {term1} and {term2}: {answer}. Source: {category} {source}.",
			},
			Process: Template{
				Question:    "Which of the following statements correctly describes the process?",
				Explanation: "The correct answer describes the process as follows: {answer}. Source: {category} {source}.",
			},
			Comparison: Template{
				Question:    "What is the main difference between {term1} and {term2}?",
				Generic:     "Which of the following comparisons is the most accurate?",
				Explanation: "The correct answer describes the comparison as follows: {answer}. Source: {category} {source}.",
			},
			Analysis: Template{
				Question:    "According to the following text, what is the most accurate conclusion?\n\n\"{paragraph}\"",
				Answer:      "The accurate conclusion is: {paragraph}",
				Explanation: "The correct answer is: {answer}. Source: {category} {source}.",
			},
			CrossTopic: Template{
				Question: "Considering {topic1} (from {source1}) and {topic2} (from {source2}), how does {term1} affect {term2}?",
				Answer:   "{term1} directly influences {term2}, linking {topic1} with {topic2}.",
				Distractors: []string{
					"{term1} and {term2} are not related in any way.",
					"{term2} causes {term1}, and not the other way round.",
					"The link between {term1} and {term2} belongs to {topic2} alone and is absent from {source1}.",
				},
				Explanation: "{answer} The terms come from {source1} ({category1}) and {source2} ({category2}).",
			},
		},
	}
}

// LoadLexicon reads a YAML lexicon. Fields missing from the file keep
// their default values.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return ParseLexicon(data)
}

// OpenLexicon loads the lexicon at path, or the default lexicon when path is empty.
func OpenLexicon(path string) (*Lexicon, error) {
	if path == "" {
		return DefaultLexicon(), nil
	}
	return LoadLexicon(path)
}

// ParseLexicon decodes a YAML lexicon document.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	lex.fillDefaults(DefaultLexicon())
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return &lex, nil
}

// Validate checks the lexicon can drive every strategy.
func (l *Lexicon) Validate() error {
	if strings.TrimSpace(l.Placeholder) == "" {
		return fmt.Errorf("lexicon placeholder must not be empty")
	}
	if len(l.PluralSuffixes) == 0 {
		return fmt.Errorf("lexicon needs at least one plural suffix")
	}
	if len(l.Topics) < 2 {
		return fmt.Errorf("lexicon needs at least two topics, got %d", len(l.Topics))
	}
	if l.NativeScript != "" {
		if _, err := scriptTable(l.NativeScript); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lexicon) fillDefaults(def *Lexicon) {
	if l.Placeholder == "" {
		l.Placeholder = def.Placeholder
	}
	if l.CategoryLabels == nil {
		l.CategoryLabels = def.CategoryLabels
	}
	if l.Stopwords == nil {
		l.Stopwords = def.Stopwords
	}
	if l.Antonyms == nil {
		l.Antonyms = def.Antonyms
	}
	if l.NegationPrefix == "" {
		l.NegationPrefix = def.NegationPrefix
	}
	if len(l.PluralSuffixes) == 0 {
		l.PluralSuffixes = def.PluralSuffixes
	}
	if l.ShortDisclaimer == "" {
		l.ShortDisclaimer = def.ShortDisclaimer
	}
	if l.ContrastClause == "" {
		l.ContrastClause = def.ContrastClause
	}
	if l.TruncationCloser == "" {
		l.TruncationCloser = def.TruncationCloser
	}
	if l.ProcessIndicators == nil {
		l.ProcessIndicators = def.ProcessIndicators
	}
	if l.ComparisonIndicators == nil {
		l.ComparisonIndicators = def.ComparisonIndicators
	}
	if len(l.Topics) == 0 {
		l.Topics = def.Topics
	}
	l.Templates.Definition.fillDefaults(def.Templates.Definition)
	l.Templates.Relationship.fillDefaults(def.Templates.Relationship)
	l.Templates.Process.fillDefaults(def.Templates.Process)
	l.Templates.Comparison.fillDefaults(def.Templates.Comparison)
	l.Templates.Analysis.fillDefaults(def.Templates.Analysis)
	l.Templates.CrossTopic.fillDefaults(def.Templates.CrossTopic)
}

func (t *Template) fillDefaults(def Template) {
	if t.Question == "" {
		t.Question = def.Question
	}
	if t.Generic == "" {
		t.Generic = def.Generic
	}
	if t.Answer == "" {
		t.Answer = def.Answer
	}
	if t.Explanation == "" {
		t.Explanation = def.Explanation
	}
	if len(t.Distractors) == 0 {
		t.Distractors = def.Distractors
	}
}

// CategoryLabel returns the display name of a category.
func (l *Lexicon) CategoryLabel(c Category) string {
	if label, ok := l.CategoryLabels[c]; ok && label != "" {
		return label
	}
	return c.Label()
}

// fill substitutes {name} placeholders in tmpl.
func fill(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
