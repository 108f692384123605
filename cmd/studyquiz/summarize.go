package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"studyquiz"
)

var (
	summarizeOutput   string
	summarizeLanguage string
	summarizeBaseURL  string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Draft a summary document from the presentations with an LLM",
	Long: `Sends the presentations of the corpus to an OpenAI-compatible model and
writes the returned summary as a text file, ready to be placed under
summaries/ and ingested.`,
	Args: cobra.NoArgs,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeOutput, "output", "o", "", "output file (default: <corpus>/summaries/S<n>.txt)")
	summarizeCmd.Flags().StringVar(&summarizeLanguage, "language", "", "language of the summary (default: lexicon language)")
	summarizeCmd.Flags().StringVar(&summarizeBaseURL, "base-url", "", "OpenAI-compatible API base URL")
	summarizeCmd.Flags().StringVar(&settings.OpenAIKey, "api-key", settings.OpenAIKey, "OpenAI API key (or set OPENAI_API_KEY env var)")
	summarizeCmd.Flags().StringVar(&settings.OpenAIModel, "model", settings.OpenAIModel, "model name")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if settings.OpenAIKey == "" {
		return errors.New("OpenAI API key is required. Use --api-key or set OPENAI_API_KEY")
	}

	lex, err := studyquiz.OpenLexicon(settings.LexiconPath)
	if err != nil {
		return err
	}
	store, err := studyquiz.LoadCorpus(cmd.Context(), settings, lex)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	presentations := store.Documents(studyquiz.Presentation)

	language := summarizeLanguage
	if language == "" {
		language = lex.Language
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	log.Printf("Summarizing %d presentations with %s", len(presentations), settings.OpenAIModel)
	summarizer := studyquiz.NewSummarizer(settings.OpenAIKey, settings.OpenAIModel, summarizeBaseURL)
	draft, err := summarizer.Summarize(ctx, language, presentations)
	if err != nil {
		return err
	}

	path := summarizeOutput
	if path == "" {
		if settings.CorpusDir == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", draft.Title, draft.Body)
			return nil
		}
		path = filepath.Join(settings.CorpusDir, "summaries",
			fmt.Sprintf("S%d.txt", len(store.Documents(studyquiz.Summary))+1))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(draft.Body+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Summary %q written to %s\n", draft.Title, path)
	return nil
}
