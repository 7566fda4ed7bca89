package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"
)

const ChoiceType = "choice"

var ErrEmptyQuestion = errors.New("question text is empty")

// QuestionRecord is one entry of the question bank. Choice records carry an
// ordered option list; everything else is an Other record.
type QuestionRecord interface {
	QuestionText() string
	Kind() string
	OptionList() []string
	AnswerList() []string
}

type Choice struct {
	Question string
	Options  []string
	Answer   []string
}

func (c Choice) QuestionText() string { return c.Question }
func (c Choice) Kind() string         { return ChoiceType }
func (c Choice) OptionList() []string { return c.Options }
func (c Choice) AnswerList() []string { return c.Answer }

// Other keeps any options it was published with so that option-level
// fallback scoring still sees them, but they are never displayed.
type Other struct {
	Question string
	Type     string
	Options  []string
	Answer   []string
}

func (o Other) QuestionText() string { return o.Question }
func (o Other) Kind() string         { return o.Type }
func (o Other) OptionList() []string { return o.Options }
func (o Other) AnswerList() []string { return o.Answer }

type QuestionBank []QuestionRecord

// rawRecord is the wire shape of a bank entry.
type rawRecord struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Answer   []string `json:"answer,omitempty"`
}

func (r rawRecord) resolve() QuestionRecord {
	if r.Type == ChoiceType {
		return Choice{Question: r.Question, Options: r.Options, Answer: r.Answer}
	}
	return Other{Question: r.Question, Type: r.Type, Options: r.Options, Answer: r.Answer}
}

func toRaw(rec QuestionRecord) rawRecord {
	return rawRecord{
		Question: rec.QuestionText(),
		Type:     rec.Kind(),
		Options:  rec.OptionList(),
		Answer:   rec.AnswerList(),
	}
}

// ParseBank parses a bank document (a JSON array of records) without
// checking the records themselves.
func ParseBank(data []byte) (QuestionBank, error) {
	var raws []rawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("解析题库JSON失败: %w", err)
	}
	bank := make(QuestionBank, 0, len(raws))
	for _, r := range raws {
		bank = append(bank, r.resolve())
	}
	return bank, nil
}

// DecodeBank parses a bank document and rejects it if any record is invalid.
func DecodeBank(data []byte) (QuestionBank, error) {
	bank, err := ParseBank(data)
	if err != nil {
		return nil, err
	}
	if err := bank.Validate(); err != nil {
		return nil, err
	}
	return bank, nil
}

// EncodeBank is the inverse of DecodeBank.
func EncodeBank(bank QuestionBank) ([]byte, error) {
	raws := make([]rawRecord, 0, len(bank))
	for _, rec := range bank {
		raws = append(raws, toRaw(rec))
	}
	return json.MarshalIndent(raws, "", "  ")
}

// Validate reports every record that breaks the non-empty question invariant.
func (b QuestionBank) Validate() error {
	var result *multierror.Error
	for i, rec := range b {
		if strings.TrimSpace(rec.QuestionText()) == "" {
			result = multierror.Append(result, fmt.Errorf("record #%d: %w", i+1, ErrEmptyQuestion))
		}
	}
	return result.ErrorOrNil()
}

// Sanitize returns the records that pass Validate, in order, along with an
// error describing every record that was dropped.
func (b QuestionBank) Sanitize() (QuestionBank, error) {
	var result *multierror.Error
	kept := make(QuestionBank, 0, len(b))
	for i, rec := range b {
		if strings.TrimSpace(rec.QuestionText()) == "" {
			result = multierror.Append(result, fmt.Errorf("record #%d: %w", i+1, ErrEmptyQuestion))
			continue
		}
		kept = append(kept, rec)
	}
	return kept, result.ErrorOrNil()
}

// ChoiceCount returns how many records are choice questions.
func (b QuestionBank) ChoiceCount() int {
	n := 0
	for _, rec := range b {
		if _, ok := rec.(Choice); ok {
			n++
		}
	}
	return n
}
