package studyquiz

import (
	"fmt"
	"time"
)

// Category identifies the kind of source document a paragraph came from.
type Category string

const (
	Presentation Category = "presentation"
	Summary      Category = "summary"
)

// Categories lists every category in a stable order.
var Categories = []Category{Presentation, Summary}

// Other returns the opposite category.
func (c Category) Other() Category {
	if c == Presentation {
		return Summary
	}
	return Presentation
}

// Label returns the human-readable name used in explanations.
func (c Category) Label() string {
	return string(c)
}

// ParseCategory maps a user-supplied name onto a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "presentation", "presentations", "p", "P":
		return Presentation, nil
	case "summary", "summaries", "s", "S":
		return Summary, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Strategy tags the generation strategy that produced a question
type Strategy string

const (
	StrategyDefinition   Strategy = "definition"
	StrategyRelationship Strategy = "relationship"
	StrategyProcess      Strategy = "process"
	StrategyComparison   Strategy = "comparison"
	StrategyAnalysis     Strategy = "analysis"
	StrategyCrossTopic   Strategy = "cross_topic"
)

// SourceRef points at the document a question was built from.
type SourceRef struct {
	Category Category `json:"category"`
	ID       string   `json:"id"`
}

// Question represents a single quiz question with multiple choice answers
type Question struct {
	ID            string      `json:"id"`
	Text          string      `json:"text"`
	Options       []string    `json:"options"`
	CorrectAnswer string      `json:"correct_answer"`
	Explanation   string      `json:"explanation"`
	Difficulty    int         `json:"difficulty"`
	Strategy      Strategy    `json:"strategy"`
	Sources       []SourceRef `json:"sources"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Identity returns the dedup key of the question.
func (q *Question) Identity() Identity {
	return Identity{Text: q.Text, Answer: q.CorrectAnswer}
}

// CorrectIndex returns the display position of the correct answer, or -1.
func (q *Question) CorrectIndex() int {
	for i, option := range q.Options {
		if option == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// Validate checks the structural shape of a question: the expected number
// of options and the correct answer among them. It says nothing about
// whether the question makes sense.
func (q *Question) Validate(optionCount int) error {
	if q.Text == "" {
		return fmt.Errorf("question %s has no text", q.ID)
	}
	if len(q.Options) != optionCount {
		return fmt.Errorf("question %s has %d options, want %d", q.ID, len(q.Options), optionCount)
	}
	if q.CorrectIndex() < 0 {
		return fmt.Errorf("question %s does not list its correct answer among the options", q.ID)
	}
	return nil
}

// Identity is the uniqueness key of a question. It is comparable and used
// directly as a map key.
type Identity struct {
	Text   string
	Answer string
}

// Verdict is the result of checking a submitted answer
type Verdict struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// Quiz is a batch of questions generated in one go, used by export.
type Quiz struct {
	ID             string     `json:"id"`
	Mode           Mode       `json:"mode"`
	Questions      []Question `json:"questions"`
	CreatedAt      time.Time  `json:"created_at"`
	TotalQuestions int        `json:"total_questions"`
}
