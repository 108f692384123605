package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"studyquiz"
)

var quizzesLimit int

var quizzesCmd = &cobra.Command{
	Use:   "quizzes [id]",
	Short: "List stored quizzes or show one of them",
	Long: `Without an argument, lists the quizzes stored with "export --save",
newest first. With a quiz id, prints its questions with the correct answers marked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuizzes,
}

func init() {
	quizzesCmd.Flags().IntVarP(&quizzesLimit, "limit", "l", 20, "maximum number of quizzes to list, 0 for all")
	rootCmd.AddCommand(quizzesCmd)
}

func runQuizzes(cmd *cobra.Command, args []string) error {
	db, err := studyquiz.OpenDB(settings.DBPath)
	if err != nil {
		return err
	}
	defer db.CloseDB()
	if err := db.CreateTables(); err != nil {
		return err
	}

	if len(args) == 1 {
		return showQuiz(db, cmd.OutOrStdout(), args[0])
	}
	return listQuizzes(db, cmd.OutOrStdout(), quizzesLimit)
}

func listQuizzes(db *studyquiz.DB, out io.Writer, limit int) error {
	quizzes, err := db.GetQuizzes(limit)
	if err != nil {
		return err
	}
	if len(quizzes) == 0 {
		fmt.Fprintln(out, "No stored quizzes.")
		return nil
	}
	for _, quiz := range quizzes {
		fmt.Fprintf(out, "%s  %-6s  %2d questions  %s\n",
			quiz.ID, quiz.Mode, quiz.TotalQuestions, quiz.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func showQuiz(db *studyquiz.DB, out io.Writer, id string) error {
	questions, err := db.GetQuestions(id)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("quiz %s not found", id)
	}

	for _, q := range questions {
		options, err := studyquiz.JSONToOptions(q.Options)
		if err != nil {
			return fmt.Errorf("question %d: %w", q.QuestionNum, err)
		}
		if len(options) > len(optionLetters) {
			return fmt.Errorf("question %d has %d options", q.QuestionNum, len(options))
		}
		fmt.Fprintf(out, "Question %d (%s):\n%s\n", q.QuestionNum, q.Strategy, q.Text)
		for i, option := range options {
			marker := " "
			if option == q.CorrectAnswer {
				marker = "✓"
			}
			fmt.Fprintf(out, "%s %c) %s\n", marker, optionLetters[i], option)
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "💡 %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}
	return nil
}
