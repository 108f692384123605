package studyquiz

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
)

// material is the paragraph a single-paragraph strategy works on.
type material struct {
	paragraph string
	source    SourceRef
}

// draft is a question before options are attached.
type draft struct {
	text        string
	answer      string
	explanation string
}

// strategyContext carries what strategies need besides the paragraph.
type strategyContext struct {
	rng          *rand.Rand
	terms        *TermExtractor
	lex          *Lexicon
	termAttempts int
}

type strategyFunc func(sc *strategyContext, m material) (draft, error)

// singleStrategies is the uniform dispatch order of single-paragraph mode.
var singleStrategies = []Strategy{
	StrategyDefinition,
	StrategyRelationship,
	StrategyProcess,
	StrategyComparison,
	StrategyAnalysis,
}

var strategyTable = map[Strategy]strategyFunc{
	StrategyDefinition:   definitionStrategy,
	StrategyRelationship: relationshipStrategy,
	StrategyProcess:      processStrategy,
	StrategyComparison:   comparisonStrategy,
	StrategyAnalysis:     analysisStrategy,
}

func (sc *strategyContext) vars(m material, extra ...string) map[string]string {
	vars := map[string]string{
		"paragraph": m.paragraph,
		"category":  sc.lex.CategoryLabel(m.source.Category),
		"source":    m.source.ID,
	}
	for i := 0; i+1 < len(extra); i += 2 {
		vars[extra[i]] = extra[i+1]
	}
	return vars
}

// echo builds a draft whose correct answer is the paragraph itself.
func (sc *strategyContext) echo(tmpl Template, question string, vars map[string]string) draft {
	vars["answer"] = vars["paragraph"]
	return draft{
		text:        question,
		answer:      vars["paragraph"],
		explanation: fill(tmpl.Explanation, vars),
	}
}

// definitionStrategy has no precondition: a paragraph without significant
// terms is asked about through the placeholder term.
func definitionStrategy(sc *strategyContext, m material) (draft, error) {
	tmpl := sc.lex.Templates.Definition
	vars := sc.vars(m, "term", sc.terms.Extract(m.paragraph))
	return sc.echo(tmpl, fill(tmpl.Question, vars), vars), nil
}

func relationshipStrategy(sc *strategyContext, m material) (draft, error) {
	if len(sc.terms.Candidates(m.paragraph)) < 2 {
		return draft{}, fmt.Errorf("relationship needs two significant terms: %w", ErrNotApplicable)
	}

	term1 := sc.terms.Extract(m.paragraph)
	term2 := term1
	for i := 0; i < sc.termAttempts && term2 == term1; i++ {
		term2 = sc.terms.Extract(m.paragraph)
	}
	if term2 == term1 {
		return draft{}, fmt.Errorf("relationship found no second term distinct from %q: %w", term1, ErrNotApplicable)
	}

	tmpl := sc.lex.Templates.Relationship
	vars := sc.vars(m, "term1", term1, "term2", term2)
	return sc.echo(tmpl, fill(tmpl.Question, vars), vars), nil
}

func processStrategy(sc *strategyContext, m material) (draft, error) {
	if _, found := firstIndicator(m.paragraph, sc.lex.ProcessIndicators); !found {
		return draft{}, fmt.Errorf("paragraph does not describe a process: %w", ErrNotApplicable)
	}
	tmpl := sc.lex.Templates.Process
	vars := sc.vars(m)
	return sc.echo(tmpl, fill(tmpl.Question, vars), vars), nil
}

func comparisonStrategy(sc *strategyContext, m material) (draft, error) {
	indicator, found := firstIndicator(m.paragraph, sc.lex.ComparisonIndicators)
	if !found {
		return draft{}, fmt.Errorf("paragraph does not compare anything: %w", ErrNotApplicable)
	}

	tmpl := sc.lex.Templates.Comparison
	left, right, ok := comparedTerms(m.paragraph, indicator)
	vars := sc.vars(m, "term1", left, "term2", right)
	question := fill(tmpl.Generic, vars)
	if ok {
		question = fill(tmpl.Question, vars)
	}
	return sc.echo(tmpl, question, vars), nil
}

func analysisStrategy(sc *strategyContext, m material) (draft, error) {
	tmpl := sc.lex.Templates.Analysis
	vars := sc.vars(m)
	answer := fill(tmpl.Answer, vars)
	vars["answer"] = answer
	return draft{
		text:        fill(tmpl.Question, vars),
		answer:      answer,
		explanation: fill(tmpl.Explanation, vars),
	}, nil
}

// firstIndicator returns the first phrase of the list contained in text.
func firstIndicator(text string, indicators []string) (string, bool) {
	for _, indicator := range indicators {
		if indicator != "" && strings.Contains(text, indicator) {
			return indicator, true
		}
	}
	return "", false
}

// comparedTerms names the words immediately around the first occurrence of
// the indicator.
func comparedTerms(paragraph, indicator string) (string, string, bool) {
	idx := strings.Index(paragraph, indicator)
	if idx < 0 {
		return "", "", false
	}
	before := strings.Fields(paragraph[:idx])
	after := strings.Fields(paragraph[idx+len(indicator):])
	if len(before) == 0 || len(after) == 0 {
		return "", "", false
	}
	left := trimPunct(before[len(before)-1])
	right := trimPunct(after[0])
	if left == "" || right == "" {
		return "", "", false
	}
	return left, right, true
}

func trimPunct(word string) string {
	return strings.TrimFunc(word, unicode.IsPunct)
}
