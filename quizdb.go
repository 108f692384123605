package studyquiz

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB caches an ingested corpus and stores exported quizzes in SQLite.
type DB struct {
	db *sql.DB
}

// DBQuiz represents an exported quiz in the database
type DBQuiz struct {
	ID             string    `json:"id"`
	Mode           string    `json:"mode"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

// DBQuestion represents an exported question in the database
type DBQuestion struct {
	ID            string `json:"id"`
	QuizID        string `json:"quiz_id"`
	QuestionNum   int    `json:"question_num"`
	Text          string `json:"text"`
	Options       string `json:"options"` // JSON array of strings
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	Strategy      string `json:"strategy"`
}

// OpenDB opens a new database connection
func OpenDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: db}, nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() error {
	return db.db.Close()
}

// CreateTables creates the necessary tables if they don't exist
func (db *DB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			category TEXT NOT NULL,
			id TEXT NOT NULL,
			full_text TEXT NOT NULL,
			ingested_at DATETIME NOT NULL,
			PRIMARY KEY (category, id)
		)`,
		`CREATE TABLE IF NOT EXISTS paragraphs (
			category TEXT NOT NULL,
			document_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (category, document_id, seq),
			FOREIGN KEY (category, document_id) REFERENCES documents(category, id)
		)`,
		`CREATE TABLE IF NOT EXISTS quizzes (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			total_questions INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			quiz_id TEXT NOT NULL,
			question_num INTEGER NOT NULL,
			text TEXT NOT NULL,
			options TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			explanation TEXT,
			strategy TEXT NOT NULL,
			FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
		)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// SaveDocuments replaces the cached corpus with docs.
func (db *DB) SaveDocuments(docs []Document) error {
	tx, err := db.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM paragraphs"); err != nil {
		return fmt.Errorf("failed to clear paragraphs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM documents"); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	now := time.Now()
	for _, doc := range docs {
		_, err := tx.Exec(
			"INSERT OR REPLACE INTO documents (category, id, full_text, ingested_at) VALUES (?, ?, ?, ?)",
			string(doc.Category), doc.ID, doc.FullText, now,
		)
		if err != nil {
			return fmt.Errorf("failed to store document %s: %w", doc.ID, err)
		}
		if _, err := tx.Exec("DELETE FROM paragraphs WHERE category = ? AND document_id = ?", string(doc.Category), doc.ID); err != nil {
			return fmt.Errorf("failed to clear paragraphs of %s: %w", doc.ID, err)
		}
		for i, p := range doc.Paragraphs {
			_, err := tx.Exec(
				"INSERT INTO paragraphs (category, document_id, seq, text) VALUES (?, ?, ?, ?)",
				string(doc.Category), doc.ID, i, p,
			)
			if err != nil {
				return fmt.Errorf("failed to store paragraph %d of %s: %w", i, doc.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit corpus: %w", err)
	}
	return nil
}

// LoadDocuments reads the cached corpus, paragraphs in document order.
func (db *DB) LoadDocuments() ([]Document, error) {
	rows, err := db.db.Query("SELECT category, id, full_text FROM documents ORDER BY category, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	index := make(map[SourceRef]int)
	for rows.Next() {
		var doc Document
		var category string
		if err := rows.Scan(&category, &doc.ID, &doc.FullText); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Category = Category(category)
		index[SourceRef{Category: doc.Category, ID: doc.ID}] = len(docs)
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	prows, err := db.db.Query("SELECT category, document_id, text FROM paragraphs ORDER BY category, document_id, seq")
	if err != nil {
		return nil, fmt.Errorf("failed to get paragraphs: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var category, docID, text string
		if err := prows.Scan(&category, &docID, &text); err != nil {
			return nil, fmt.Errorf("failed to scan paragraph: %w", err)
		}
		i, ok := index[SourceRef{Category: Category(category), ID: docID}]
		if !ok {
			continue
		}
		docs[i].Paragraphs = append(docs[i].Paragraphs, text)
	}
	if err = prows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating paragraphs: %w", err)
	}

	return docs, nil
}

// SaveQuiz stores an exported quiz with its questions.
func (db *DB) SaveQuiz(quiz *Quiz) error {
	tx, err := db.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO quizzes (id, mode, total_questions, created_at) VALUES (?, ?, ?, ?)",
		quiz.ID, string(quiz.Mode), quiz.TotalQuestions, quiz.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	for i, q := range quiz.Questions {
		optionsJSON, err := OptionsToJSON(q.Options)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"INSERT INTO questions (id, quiz_id, question_num, text, options, correct_answer, explanation, strategy) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			q.ID, quiz.ID, i+1, q.Text, optionsJSON, q.CorrectAnswer, q.Explanation, string(q.Strategy),
		)
		if err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz: %w", err)
	}
	return nil
}

// GetQuizzes retrieves all quizzes, optionally limited by count
func (db *DB) GetQuizzes(limit int) ([]DBQuiz, error) {
	query := "SELECT id, mode, total_questions, created_at FROM quizzes ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []DBQuiz
	for rows.Next() {
		var quiz DBQuiz
		if err := rows.Scan(&quiz.ID, &quiz.Mode, &quiz.TotalQuestions, &quiz.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quizzes: %w", err)
	}

	return quizzes, nil
}

// GetQuestions retrieves all questions for a quiz
func (db *DB) GetQuestions(quizID string) ([]DBQuestion, error) {
	rows, err := db.db.Query(
		"SELECT id, quiz_id, question_num, text, options, correct_answer, explanation, strategy FROM questions WHERE quiz_id = ? ORDER BY question_num",
		quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	var questions []DBQuestion
	for rows.Next() {
		var question DBQuestion
		err := rows.Scan(&question.ID, &question.QuizID, &question.QuestionNum, &question.Text, &question.Options, &question.CorrectAnswer, &question.Explanation, &question.Strategy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}

// OptionsToJSON converts an options slice to a JSON string
func OptionsToJSON(options []string) (string, error) {
	data, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("failed to marshal options: %w", err)
	}
	return string(data), nil
}

// JSONToOptions converts a JSON string to an options slice
func JSONToOptions(optionsJSON string) ([]string, error) {
	var options []string
	err := json.Unmarshal([]byte(optionsJSON), &options)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	return options, nil
}
