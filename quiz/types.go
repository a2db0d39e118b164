package quiz

import (
	"sort"
)

// 该文件定义两层模型：Document 是输入文件解码后的原始结构（字段可能缺失），
// Quiz 是通过 Validate 之后的只读结构，排版阶段不再重复校验。

// Label 为选项标签，仅允许 A/B/C/D。
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels 按固定顺序列出全部选项标签，渲染时总是按此顺序输出。
var Labels = [4]Label{LabelA, LabelB, LabelC, LabelD}

// ParseLabel 判断字符串是否为合法标签（大小写敏感）。
func ParseLabel(s string) (Label, bool) {
	for _, l := range Labels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Document 对应输入文件（JSON/YAML/.quiz）的原始结构。
// 指针与 nil 切片用于区分"字段缺失"和"字段为空"。
type Document struct {
	Title     *string       `json:"title" yaml:"title"`
	Subtitle  *string       `json:"subtitle" yaml:"subtitle"`
	Questions []DocQuestion `json:"questions" yaml:"questions"`
	Solutions []DocSolution `json:"solution_table" yaml:"solution_table"`
}

// DocQuestion 是原始题目；题号由其在 questions 中的位置决定（从 1 开始）。
type DocQuestion struct {
	Text    *string           `json:"text" yaml:"text"`
	Options map[string]string `json:"options" yaml:"options"`
}

// DocSolution 是答案表中的一行。
type DocSolution struct {
	Number      *int    `json:"number" yaml:"number"`
	Answer      *string `json:"answer" yaml:"answer"`
	Explanation *string `json:"explanation" yaml:"explanation"`
}

// MapText 对文档中所有文本字段（标题、副标题、题干、选项、解析）应用 fn。
// 标签与题号不参与变换。
func (d *Document) MapText(fn func(string) string) {
	if d == nil || fn == nil {
		return
	}
	mapPtr := func(p *string) {
		if p != nil {
			*p = fn(*p)
		}
	}
	mapPtr(d.Title)
	mapPtr(d.Subtitle)
	for i := range d.Questions {
		mapPtr(d.Questions[i].Text)
		for k, v := range d.Questions[i].Options {
			d.Questions[i].Options[k] = fn(v)
		}
	}
	for i := range d.Solutions {
		mapPtr(d.Solutions[i].Explanation)
	}
}

// Quiz 是校验通过的测验。构造后不再修改。
type Quiz struct {
	Title     string
	Subtitle  string
	Questions []Question
	Solutions []Solution
}

// Question 是校验通过的题目，Options 恰好包含 A-D 四个非空选项。
type Question struct {
	Index   int
	Text    string
	Options map[Label]string
}

// Option 返回指定标签的选项文本。
func (q Question) Option(l Label) string { return q.Options[l] }

// Solution 是校验通过的答案，Number 一定对应某个 Question.Index。
type Solution struct {
	Number      int
	Answer      Label
	Explanation string
}

// AnswerKey 返回按题号升序排列的答案副本，与输入顺序无关。
func (q *Quiz) AnswerKey() []Solution {
	out := make([]Solution, len(q.Solutions))
	copy(out, q.Solutions)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
