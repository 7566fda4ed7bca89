package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBankResolvesVariants(t *testing.T) {
	data := []byte(`[
		{"question": "小米社区的吉祥物叫什么", "type": "choice", "options": ["米兔", "米猫", "米狗"], "answer": ["米兔"]},
		{"question": "BL是Bootloader的缩写", "type": "judge", "answer": ["正确"]},
		{"question": "没有答案的题", "type": "fill"}
	]`)

	bank, err := DecodeBank(data)
	require.NoError(t, err)
	require.Len(t, bank, 3)

	choice, ok := bank[0].(Choice)
	require.True(t, ok)
	assert.Equal(t, []string{"米兔", "米猫", "米狗"}, choice.Options)
	assert.Equal(t, []string{"米兔"}, choice.Answer)

	other, ok := bank[1].(Other)
	require.True(t, ok)
	assert.Equal(t, "judge", other.Kind())
	assert.Empty(t, other.OptionList())
	assert.Equal(t, []string{"正确"}, other.AnswerList())

	assert.Empty(t, bank[2].AnswerList())
	assert.Equal(t, 1, bank.ChoiceCount())
}

func TestDecodeBankRejectsEmptyQuestions(t *testing.T) {
	data := []byte(`[
		{"question": "", "type": "choice", "options": ["A"]},
		{"question": "ok", "type": "choice", "options": ["A"]},
		{"question": "   ", "type": "judge"}
	]`)

	_, err := DecodeBank(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Contains(t, err.Error(), "record #1")
	assert.Contains(t, err.Error(), "record #3")
}

func TestSanitizeDropsEmptyQuestions(t *testing.T) {
	bank, err := ParseBank([]byte(`[
		{"question": "", "type": "choice", "options": ["A"]},
		{"question": "ok", "type": "choice", "options": ["A"]},
		{"question": "   ", "type": "judge"},
		{"question": "fine", "type": "judge"}
	]`))
	require.NoError(t, err)
	require.Len(t, bank, 4)

	kept, err := bank.Sanitize()
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	require.Len(t, kept, 2)
	assert.Equal(t, "ok", kept[0].QuestionText())
	assert.Equal(t, "fine", kept[1].QuestionText())

	kept, err = kept.Sanitize()
	assert.NoError(t, err)
	assert.Len(t, kept, 2)
}

func TestDecodeBankRejectsMalformedJSON(t *testing.T) {
	_, err := DecodeBank([]byte(`{"question": "not an array"}`))
	require.Error(t, err)
}

func TestEncodeBankKeepsOrderAndType(t *testing.T) {
	bank := QuestionBank{
		Choice{Question: "q1", Options: []string{"A", "B"}, Answer: []string{"B"}},
		Other{Question: "q2", Type: "judge", Answer: []string{"True"}},
	}

	data, err := EncodeBank(bank)
	require.NoError(t, err)

	decoded, err := DecodeBank(data)
	require.NoError(t, err)
	assert.Equal(t, bank, decoded)
}
