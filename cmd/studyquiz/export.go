package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"studyquiz"
)

var (
	exportQuestions int
	exportOutput    string
	exportSave      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate a set of unique questions as JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().IntVarP(&exportQuestions, "questions", "n", 10, "number of questions")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportSave, "save", false, "also store the quiz in the database")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportQuestions < 1 {
		return fmt.Errorf("questions must be at least 1, got %d", exportQuestions)
	}

	engine, closeLog, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer closeLog()

	quiz, err := engine.GenerateQuiz(exportQuestions)
	if err != nil {
		return fmt.Errorf("failed to generate quiz: %w", err)
	}

	if exportSave {
		db, err := studyquiz.OpenDB(settings.DBPath)
		if err != nil {
			return err
		}
		defer db.CloseDB()
		if err := db.CreateTables(); err != nil {
			return err
		}
		if err := db.SaveQuiz(quiz); err != nil {
			return err
		}
		log.Printf("Quiz %s stored in %s", quiz.ID, settings.DBPath)
	}

	output, err := json.MarshalIndent(quiz, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal quiz: %w", err)
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, output, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Printf("Quiz saved to: %s", exportOutput)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}
