package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"studyquiz"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	lex, err := studyquiz.OpenLexicon(settings.LexiconPath)
	if err != nil {
		return err
	}
	store, err := studyquiz.LoadCorpus(cmd.Context(), settings, lex)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	stats := store.Stats()

	out := cmd.OutOrStdout()
	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal statistics: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Presentations: %d\n", stats.PresentationCount)
	fmt.Fprintf(out, "Summaries:     %d\n", stats.SummaryCount)
	fmt.Fprintf(out, "Paragraphs:    %d\n", stats.TotalParagraphs)
	fmt.Fprintf(out, "Words:         %d\n", stats.TotalWords)
	for _, c := range studyquiz.Categories {
		for _, doc := range store.Documents(c) {
			fmt.Fprintf(out, "  %-12s %-20s %d paragraphs\n", c, doc.ID, len(doc.Paragraphs))
		}
	}
	return nil
}
