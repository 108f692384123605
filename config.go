package studyquiz

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Mode selects the question synthesizer. Only one is active per engine.
type Mode string

const (
	// ModeSingle builds each question from one paragraph.
	ModeSingle Mode = "single"
	// ModeCross relates two paragraphs taken from different categories.
	ModeCross Mode = "cross"
)

// Params holds the tunable constants of question generation.
type Params struct {
	Mode               Mode
	MinParagraphLength int     // paragraphs must be longer than this many runes
	PresentationWeight float64 // probability of drawing from presentations in single mode
	RetryLimit         int     // uniqueness attempts and paragraph selection attempts
	DistractorCount    int     // wrong options per question
	TermAttempts       int     // attempts to draw two distinct terms
	Difficulty         int
}

// DefaultParams returns the parameters the engine was tuned with.
func DefaultParams() Params {
	return Params{
		Mode:               ModeSingle,
		MinParagraphLength: 10,
		PresentationWeight: 0.8,
		RetryLimit:         10,
		DistractorCount:    3,
		TermAttempts:       10,
		Difficulty:         10,
	}
}

// MaxDistractorCount bounds DistractorCount so options can be labelled A to J.
const MaxDistractorCount = 9

// OptionCount is the number of options every question carries.
func (p Params) OptionCount() int {
	return p.DistractorCount + 1
}

// Validate checks that the parameters are usable.
func (p Params) Validate() error {
	if p.Mode != ModeSingle && p.Mode != ModeCross {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeSingle, ModeCross, p.Mode)
	}
	if p.MinParagraphLength < 0 {
		return fmt.Errorf("min paragraph length must not be negative, got %d", p.MinParagraphLength)
	}
	if p.PresentationWeight < 0 || p.PresentationWeight > 1 {
		return fmt.Errorf("presentation weight must be within [0,1], got %v", p.PresentationWeight)
	}
	if p.RetryLimit < 1 {
		return fmt.Errorf("retry limit must be at least 1, got %d", p.RetryLimit)
	}
	if p.DistractorCount < 1 || p.DistractorCount > MaxDistractorCount {
		return fmt.Errorf("distractor count must be within [1,%d], got %d", MaxDistractorCount, p.DistractorCount)
	}
	if p.TermAttempts < 1 {
		return fmt.Errorf("term attempts must be at least 1, got %d", p.TermAttempts)
	}
	return nil
}

// Settings is the configuration of the command line and web binaries.
// All variables use the STUDYQUIZ_ prefix; OPENAI_API_KEY is honoured as a fallback.
type Settings struct {
	CorpusDir   string
	DBPath      string
	LexiconPath string
	Seed        uint64
	Port        int
	SessionKey  string
	LogDir      string
	OpenAIKey   string
	OpenAIModel string
	Verbose     bool
	Params      Params
}

// LoadSettings reads settings from the environment, falling back to defaults.
func LoadSettings() *Settings {
	defaults := DefaultParams()
	return &Settings{
		CorpusDir:   envStr("STUDYQUIZ_CORPUS_DIR", ""),
		DBPath:      envStr("STUDYQUIZ_DB", "./studyquiz.db"),
		LexiconPath: envStr("STUDYQUIZ_LEXICON", ""),
		Seed:        uint64(envInt("STUDYQUIZ_SEED", 0)),
		Port:        envInt("STUDYQUIZ_PORT", 8180),
		SessionKey:  envStr("STUDYQUIZ_SESSION_KEY", "change-me-in-production"),
		LogDir:      envStr("STUDYQUIZ_LOG_DIR", ""),
		OpenAIKey:   envStr("STUDYQUIZ_OPENAI_API_KEY", os.Getenv("OPENAI_API_KEY")),
		OpenAIModel: envStr("STUDYQUIZ_OPENAI_MODEL", "gpt-4o"),
		Verbose:     envBool("STUDYQUIZ_VERBOSE", false),
		Params: Params{
			Mode:               Mode(envStr("STUDYQUIZ_MODE", string(defaults.Mode))),
			MinParagraphLength: envInt("STUDYQUIZ_MIN_PARAGRAPH_LENGTH", defaults.MinParagraphLength),
			PresentationWeight: envFloat("STUDYQUIZ_PRESENTATION_WEIGHT", defaults.PresentationWeight),
			RetryLimit:         envInt("STUDYQUIZ_RETRY_LIMIT", defaults.RetryLimit),
			DistractorCount:    envInt("STUDYQUIZ_DISTRACTOR_COUNT", defaults.DistractorCount),
			TermAttempts:       envInt("STUDYQUIZ_TERM_ATTEMPTS", defaults.TermAttempts),
			Difficulty:         envInt("STUDYQUIZ_DIFFICULTY", defaults.Difficulty),
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
