package quiz

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText 去除首尾空白并转为 NFC，避免组合字符在测量宽度时出现偏差。
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Normalize 对文档的全部文本字段执行 NormalizeText，并去掉选项标签与答案两侧的空白。
// 若去空白后两个标签相同（如 "A" 与 "A "），该题的标签保持原样，交由 Validate 报告。
func Normalize(doc *Document) {
	if doc == nil {
		return
	}
	doc.MapText(NormalizeText)
	for i := range doc.Questions {
		if trimmed, ok := trimLabels(doc.Questions[i].Options); ok {
			doc.Questions[i].Options = trimmed
		}
	}
	for i := range doc.Solutions {
		if a := doc.Solutions[i].Answer; a != nil {
			v := strings.TrimSpace(*a)
			doc.Solutions[i].Answer = &v
		}
	}
}

func trimLabels(opts map[string]string) (map[string]string, bool) {
	if opts == nil {
		return nil, false
	}
	trimmed := make(map[string]string, len(opts))
	for k, v := range opts {
		key := strings.TrimSpace(k)
		if _, dup := trimmed[key]; dup {
			return nil, false
		}
		trimmed[key] = v
	}
	return trimmed, true
}
