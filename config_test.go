package studyquiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.NoError(t, p.Validate())
	assert.Equal(t, 4, p.OptionCount())
	assert.Equal(t, 10, p.RetryLimit)
	assert.Equal(t, 0.8, p.PresentationWeight)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"unknown mode", func(p *Params) { p.Mode = "random" }},
		{"negative min length", func(p *Params) { p.MinParagraphLength = -1 }},
		{"weight above one", func(p *Params) { p.PresentationWeight = 1.5 }},
		{"no retries", func(p *Params) { p.RetryLimit = 0 }},
		{"no distractors", func(p *Params) { p.DistractorCount = 0 }},
		{"more options than letters", func(p *Params) { p.DistractorCount = MaxDistractorCount + 1 }},
		{"no term attempts", func(p *Params) { p.TermAttempts = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestParamsDistractorLimit(t *testing.T) {
	p := DefaultParams()
	p.DistractorCount = MaxDistractorCount
	assert.NoError(t, p.Validate())
	assert.Equal(t, 10, p.OptionCount())
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("STUDYQUIZ_CORPUS_DIR", "/data/course")
	t.Setenv("STUDYQUIZ_SEED", "99")
	t.Setenv("STUDYQUIZ_MODE", "cross")
	t.Setenv("STUDYQUIZ_PRESENTATION_WEIGHT", "0.5")
	t.Setenv("STUDYQUIZ_VERBOSE", "true")
	t.Setenv("STUDYQUIZ_RETRY_LIMIT", "not-a-number")
	t.Setenv("STUDYQUIZ_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	s := LoadSettings()
	assert.Equal(t, "/data/course", s.CorpusDir)
	assert.Equal(t, uint64(99), s.Seed)
	assert.Equal(t, ModeCross, s.Params.Mode)
	assert.Equal(t, 0.5, s.Params.PresentationWeight)
	assert.True(t, s.Verbose)
	assert.Equal(t, 10, s.Params.RetryLimit)
	assert.Equal(t, "sk-test", s.OpenAIKey)
	assert.Equal(t, 8180, s.Port)
}
