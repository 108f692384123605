package studyquiz

// AnswerChecker grades answers against the current question
type AnswerChecker struct {
	current *Question
}

// NewAnswerChecker creates a checker with no active question.
func NewAnswerChecker() *AnswerChecker {
	return &AnswerChecker{}
}

// SetCurrent replaces the active question.
func (ac *AnswerChecker) SetCurrent(q *Question) {
	ac.current = q
}

// Current returns the active question, or nil before the first one.
func (ac *AnswerChecker) Current() *Question {
	return ac.current
}

// Check compares submitted with the correct answer by exact string
// equality. Text reaching this point was normalized during ingestion.
func (ac *AnswerChecker) Check(submitted string) (*Verdict, error) {
	if ac.current == nil {
		return nil, ErrNoActiveQuestion
	}
	return &Verdict{
		IsCorrect:     submitted == ac.current.CorrectAnswer,
		CorrectAnswer: ac.current.CorrectAnswer,
		Explanation:   ac.current.Explanation,
	}, nil
}
