package service

import (
	"strings"

	"Quiz-OCR-Match-Backend/internal/matcher"
)

const (
	CheckWarning  = "请注意！！！题目判断词和选项顺序可能会有区别，请核对后再答题！！！"
	NoTextMessage = "未识别到题目信息"
	NoMatchText   = "未匹配到题目"
)

// Presentation is what the display surface receives: the recognized text and
// the already-numbered match result.
type Presentation struct {
	ID     string         `json:"id"`
	Text   string         `json:"text"`
	Result matcher.Result `json:"result"`
}

// Render formats the result as the plain text block shown to the user.
func (p *Presentation) Render() string {
	var b strings.Builder
	b.WriteString("识别结果：\n")
	b.WriteString(CheckWarning)
	if !p.Result.Matched {
		b.WriteString("\n\n")
		b.WriteString(NoMatchText)
		return b.String()
	}
	b.WriteString("\n\n题目：")
	b.WriteString(p.Result.Question)
	b.WriteString("\n\n选项：")
	b.WriteString(strings.Join(p.Result.Options, "\n"))
	b.WriteString("\n\n答案：")
	b.WriteString(strings.Join(p.Result.Answers, "\n"))
	return b.String()
}
