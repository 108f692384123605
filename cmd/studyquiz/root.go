package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"studyquiz"
)

var (
	settings = studyquiz.LoadSettings()
	modeFlag string
)

var rootCmd = &cobra.Command{
	Use:   "studyquiz",
	Short: "Generate multiple-choice study questions from course material",
	Long: `studyquiz turns lecture presentations and summaries into multiple-choice
questions. Questions never repeat within a session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings.Params.Mode = studyquiz.Mode(strings.ToLower(modeFlag))
		studyquiz.SetVerbose(settings.Verbose)
		return settings.Params.Validate()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&settings.CorpusDir, "corpus", settings.CorpusDir, "corpus directory (presentations/ and summaries/)")
	flags.StringVar(&settings.DBPath, "db", settings.DBPath, "sqlite database path")
	flags.StringVar(&settings.LexiconPath, "lexicon", settings.LexiconPath, "lexicon YAML file (default: built-in English)")
	flags.Uint64Var(&settings.Seed, "seed", settings.Seed, "random seed, 0 for a time-based seed")
	flags.StringVar(&modeFlag, "mode", string(settings.Params.Mode), "question mode: single or cross")
	flags.StringVar(&settings.LogDir, "log-dir", settings.LogDir, "write a session log into this directory")
	flags.BoolVarP(&settings.Verbose, "verbose", "v", settings.Verbose, "enable verbose output")
}

// newEngine loads the lexicon and corpus and starts a session.
func newEngine(ctx context.Context) (*studyquiz.Engine, func(), error) {
	lex, err := studyquiz.OpenLexicon(settings.LexiconPath)
	if err != nil {
		return nil, nil, err
	}
	store, err := studyquiz.LoadCorpus(ctx, settings, lex)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	id := uuid.NewString()
	opts := []studyquiz.EngineOption{studyquiz.WithSessionID(id)}
	closer := func() {}
	if settings.LogDir != "" {
		sl, err := studyquiz.NewSessionLog(settings.LogDir, id, settings.Params, store.Stats())
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Session log: %s", sl.Path())
		opts = append(opts, studyquiz.WithSessionLog(sl))
		closer = func() { sl.Close() }
	}

	engine, err := studyquiz.NewEngine(store, lex, settings.Params, studyquiz.NewRand(settings.Seed), opts...)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return engine, closer, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
