package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"studyquiz"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Ingest a corpus directory into the database",
	Long: `Reads every presentation and summary under dir, splits them into
paragraphs and replaces the corpus cached in the database. Later commands
run without --corpus use the cached corpus.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	dir := settings.CorpusDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no corpus directory given")
	}

	lex, err := studyquiz.OpenLexicon(settings.LexiconPath)
	if err != nil {
		return err
	}
	seg, err := studyquiz.NewSentenceSegmenter(settings.Params.MinParagraphLength, lex.NativeScript)
	if err != nil {
		return err
	}
	docs, err := studyquiz.NewIngester(seg, nil).LoadDir(cmd.Context(), dir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("%s: %w", dir, studyquiz.ErrEmptyCorpus)
	}
	store, err := studyquiz.NewContentStore(docs...)
	if err != nil {
		return err
	}

	db, err := studyquiz.OpenDB(settings.DBPath)
	if err != nil {
		return err
	}
	defer db.CloseDB()
	if err := db.CreateTables(); err != nil {
		return err
	}
	if err := db.SaveDocuments(docs); err != nil {
		return err
	}

	stats := store.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "📚 Ingested %d presentations and %d summaries (%d paragraphs) into %s\n",
		stats.PresentationCount, stats.SummaryCount, stats.TotalParagraphs, settings.DBPath)
	return nil
}
