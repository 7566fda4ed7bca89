// Package matcher finds the question bank record that best matches a noisy
// OCR string and formats it for display. It performs no I/O.
package matcher

import (
	"fmt"

	"Quiz-OCR-Match-Backend/internal/model"
)

const (
	DefaultQuestionThreshold = 0.5
	// DefaultCandidateThreshold is the threshold BestOf callers use when they
	// have no better value.
	DefaultCandidateThreshold = 0.6
)

// Result is the outcome of a match. Matched == false is the NoMatch case.
// Options is nil for non-choice records, Answers is nil when the record has
// no answer values.
type Result struct {
	Matched   bool     `json:"matched"`
	Question  string   `json:"question,omitempty"`
	Options   []string `json:"options,omitempty"`
	Answers   []string `json:"answers,omitempty"`
	Score     float64  `json:"score"`
	ViaOption bool     `json:"viaOption,omitempty"`
}

type Matcher struct {
	QuestionThreshold float64
}

func New(questionThreshold float64) *Matcher {
	return &Matcher{QuestionThreshold: questionThreshold}
}

var defaultMatcher = New(DefaultQuestionThreshold)

// Match runs the default matcher.
func Match(text string, bank model.QuestionBank) Result {
	return defaultMatcher.Match(text, bank)
}

type optionRef struct {
	record int
	value  string
}

// Match scores text against every question; when the best question score is
// below QuestionThreshold it falls back to scoring every option of every
// record, starting again from a zero best score. Any option that beats that
// fresh best selects its owning record, even when it scores lower than the
// rejected question.
func (m *Matcher) Match(text string, bank model.QuestionBank) Result {
	idx, score := best(bank, func(rec model.QuestionRecord) float64 {
		return Similarity(text, rec.QuestionText())
	})
	if idx >= 0 && score >= m.QuestionThreshold {
		return extract(bank[idx], score, false)
	}

	refs := make([]optionRef, 0, len(bank))
	for i, rec := range bank {
		for _, opt := range rec.OptionList() {
			refs = append(refs, optionRef{record: i, value: opt})
		}
	}
	ref, optScore := best(refs, func(r optionRef) float64 { return Similarity(text, r.value) })
	if ref >= 0 {
		return extract(bank[refs[ref].record], optScore, true)
	}
	return Result{Score: max(score, optScore)}
}

func extract(rec model.QuestionRecord, score float64, viaOption bool) Result {
	options := displayOptions(rec)
	return Result{
		Matched:   true,
		Question:  rec.QuestionText(),
		Options:   numbered(options),
		Answers:   answerLines(rec.AnswerList(), options),
		Score:     score,
		ViaOption: viaOption,
	}
}

func displayOptions(rec model.QuestionRecord) []string {
	c, ok := rec.(model.Choice)
	if !ok || len(c.Options) == 0 {
		return nil
	}
	return c.Options
}

func numbered(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = line(i+1, v)
	}
	return lines
}

// answerLines numbers each answer by its option position when it names an
// option, otherwise by its first position in the answer list.
func answerLines(answers, options []string) []string {
	if len(answers) == 0 {
		return nil
	}
	optionIndex := make(map[string]int, len(options))
	for i, opt := range options {
		optionIndex[opt] = i + 1
	}
	firstSeen := make(map[string]int, len(answers))
	for i, a := range answers {
		if _, ok := firstSeen[a]; !ok {
			firstSeen[a] = i + 1
		}
	}

	lines := make([]string, len(answers))
	for i, a := range answers {
		n, ok := optionIndex[a]
		if !ok {
			n = firstSeen[a]
		}
		lines[i] = line(n, a)
	}
	return lines
}

func line(n int, value string) string {
	return fmt.Sprintf("%d. %s", n, value)
}
