package layout

import "strings"

// Wrap 按空白贪心折行：只在空白处断开，绝不拆分单词；
// 单个超过 maxWidth 的单词独占一行（允许溢出）。显式换行符强制断行，空段落输出空行。
// maxWidth <= 0 表示不限宽度。
//
// 已折好的行再次以相同宽度折行时结果不变：每行要么能容纳，要么只含一个单词。
func Wrap(text string, maxWidth float64, measure func(string) float64) []string {
	text = strings.ReplaceAll(text, "\r", "")
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if maxWidth > 0 && measure(candidate) > maxWidth {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}
