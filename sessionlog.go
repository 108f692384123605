package studyquiz

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SessionLog writes a timestamped record of one quiz session to a file
type SessionLog struct {
	file      *os.File
	mu        sync.Mutex
	path      string
	sessionID string
}

// NewSessionLog creates <dir>/<sessionID>.log and writes the session header.
func NewSessionLog(dir, sessionID string, params Params, stats CorpusStats) (*SessionLog, error) {
	// Ensure log directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("%s.log", sessionID))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	sl := &SessionLog{
		file:      file,
		path:      filename,
		sessionID: sessionID,
	}

	sl.Logf("=== Quiz Session Log ===\n")
	sl.Logf("Session ID: %s\n", sessionID)
	sl.Logf("Mode: %s\n", params.Mode)
	sl.Logf("Retry Limit: %d, Distractors: %d, Presentation Weight: %.2f\n",
		params.RetryLimit, params.DistractorCount, params.PresentationWeight)
	sl.Logf("Corpus: %d presentations, %d summaries, %d paragraphs, %d words\n",
		stats.PresentationCount, stats.SummaryCount, stats.TotalParagraphs, stats.TotalWords)
	sl.Logf("Started: %s\n", time.Now().Format(time.RFC3339))
	sl.Logf("========================\n\n")

	return sl, nil
}

// Path returns the log file name.
func (sl *SessionLog) Path() string {
	return sl.path
}

// Logf writes a formatted log entry with timestamp
func (sl *SessionLog) Logf(format string, args ...interface{}) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.logf(format, args...)
}

func (sl *SessionLog) logf(format string, args ...interface{}) {
	if sl.file == nil {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(sl.file, "[%s] %s", timestamp, fmt.Sprintf(format, args...))
	sl.file.Sync()
}

// LogQuestion logs an emitted question and how the tracker settled on it.
func (sl *SessionLog) LogQuestion(q *Question, result DedupResult) {
	status := "UNIQUE"
	if result.Degraded {
		status = "REPEAT (options regenerated)"
	}
	sl.Logf("=== QUESTION %s (%s) ===\n", q.ID, q.Strategy)
	sl.Logf("Status: %s after %d attempt(s)\n", status, result.Attempts)
	sl.Logf("Text: %s\n", q.Text)
	for i, option := range q.Options {
		marker := " "
		if option == q.CorrectAnswer {
			marker = "*"
		}
		sl.Logf("%s%d. %s\n", marker, i+1, option)
	}
	sl.Logf("=====================\n\n")
}

// LogVerdict logs a graded answer.
func (sl *SessionLog) LogVerdict(questionID, submitted string, v *Verdict) {
	result := "INCORRECT"
	if v.IsCorrect {
		result = "CORRECT"
	}
	sl.Logf("Question %s: %s - submitted %q\n", questionID, result, submitted)
}

// LogFailure logs a generation failure.
func (sl *SessionLog) LogFailure(err error) {
	sl.Logf("Generation failed: %v\n", err)
}

// Close writes the footer and closes the log file
func (sl *SessionLog) Close() error {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.file == nil {
		return nil
	}
	sl.logf("=== Quiz Session Complete ===\n")
	sl.logf("Completed: %s\n", time.Now().Format(time.RFC3339))
	sl.logf("=============================\n")
	err := sl.file.Close()
	sl.file = nil
	return err
}
