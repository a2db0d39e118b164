package dsl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ByLCY/quizpress/quiz"
)

// Format 将文档写成 .quiz 文本。A-D 按固定顺序输出，其余标签按字典序排在后面，
// 结果可被 Decode 还原为等价的文档。
func Format(doc *quiz.Document) string {
	var b strings.Builder
	if doc.Title != nil {
		fmt.Fprintf(&b, "title: %s\n", strconv.Quote(*doc.Title))
	}
	if doc.Subtitle != nil {
		fmt.Fprintf(&b, "subtitle: %s\n", strconv.Quote(*doc.Subtitle))
	}
	for _, q := range doc.Questions {
		text := ""
		if q.Text != nil {
			text = *q.Text
		}
		fmt.Fprintf(&b, "\nquestion %s {\n", strconv.Quote(text))
		for _, label := range optionOrder(q.Options) {
			fmt.Fprintf(&b, "  %s: %s\n", label, strconv.Quote(q.Options[label]))
		}
		b.WriteString("}\n")
	}
	if len(doc.Solutions) > 0 {
		b.WriteString("\n")
	}
	for _, s := range doc.Solutions {
		if s.Number == nil || s.Answer == nil || s.Explanation == nil {
			continue
		}
		fmt.Fprintf(&b, "answer %d %s %s\n", *s.Number, *s.Answer, strconv.Quote(*s.Explanation))
	}
	return b.String()
}

func optionOrder(options map[string]string) []string {
	out := make([]string, 0, len(options))
	var rest []string
	for _, l := range quiz.Labels {
		if _, ok := options[string(l)]; ok {
			out = append(out, string(l))
		}
	}
	for key := range options {
		if _, ok := quiz.ParseLabel(key); !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
