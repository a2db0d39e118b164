package quiz

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// 校验错误的种类。ValidationError 会对出现过的每一种实现 errors.Is。
var (
	ErrMissingField       = errors.New("缺少字段")
	ErrEmptyQuiz          = errors.New("题目列表为空")
	ErrMalformedOptions   = errors.New("选项不合法")
	ErrDanglingSolution   = errors.New("答案无对应题目")
	ErrMissingSolution    = errors.New("题目缺少答案")
	ErrInvalidAnswerLabel = errors.New("答案标签不合法")
)

// Issue 描述一处校验问题。Question/Solution 为 0 表示与具体题目或答案无关。
type Issue struct {
	Kind     error
	Field    string
	Question int
	Solution int
	Message  string
}

func (i Issue) String() string {
	if i.Message == "" {
		return fmt.Sprintf("%s: %v", i.Field, i.Kind)
	}
	return fmt.Sprintf("%s: %v（%s）", i.Field, i.Kind, i.Message)
}

// ValidationError 汇总一次校验发现的全部问题。
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return "测验数据校验失败: " + strings.Join(parts, "; ")
}

// Unwrap 返回出现过的错误种类，供 errors.Is 使用。
func (e *ValidationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	seen := map[error]bool{}
	var kinds []error
	for _, issue := range e.Issues {
		if issue.Kind == nil || seen[issue.Kind] {
			continue
		}
		seen[issue.Kind] = true
		kinds = append(kinds, issue.Kind)
	}
	return kinds
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(kind error, field string, question, solution int, format string, args ...any) {
	c.issues = append(c.issues, Issue{
		Kind:     kind,
		Field:    field,
		Question: question,
		Solution: solution,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate 检查原始文档的结构约束，成功时返回只读的 Quiz。
// 纯函数：不修改 doc，不做任何文本变换。
func Validate(doc *Document) (*Quiz, error) {
	if doc == nil {
		return nil, &ValidationError{Issues: []Issue{{Kind: ErrMissingField, Field: "document"}}}
	}
	c := &issueCollector{}
	out := &Quiz{}

	if doc.Title == nil {
		c.add(ErrMissingField, "title", 0, 0, "")
	} else {
		out.Title = *doc.Title
	}
	if doc.Subtitle == nil {
		c.add(ErrMissingField, "subtitle", 0, 0, "")
	} else {
		out.Subtitle = *doc.Subtitle
	}

	switch {
	case doc.Questions == nil:
		c.add(ErrMissingField, "questions", 0, 0, "")
	case len(doc.Questions) == 0:
		c.add(ErrEmptyQuiz, "questions", 0, 0, "至少需要一道题")
	}
	for i, q := range doc.Questions {
		index := i + 1
		out.Questions = append(out.Questions, validateQuestion(c, index, q))
	}

	if doc.Solutions == nil {
		c.add(ErrMissingField, "solution_table", 0, 0, "")
	}
	out.Solutions = validateSolutions(c, doc)

	if err := c.result(); err != nil {
		return nil, err
	}
	return out, nil
}

func validateQuestion(c *issueCollector, index int, q DocQuestion) Question {
	prefix := fmt.Sprintf("questions[%d]", index)
	out := Question{Index: index}
	if q.Text == nil {
		c.add(ErrMissingField, prefix+".text", index, 0, "第 %d 题缺少题干", index)
	} else if strings.TrimSpace(*q.Text) == "" {
		c.add(ErrMissingField, prefix+".text", index, 0, "第 %d 题题干为空", index)
	} else {
		out.Text = *q.Text
	}

	if q.Options == nil {
		c.add(ErrMissingField, prefix+".options", index, 0, "第 %d 题缺少选项", index)
		return out
	}
	out.Options = make(map[Label]string, len(Labels))
	for _, l := range Labels {
		text, ok := q.Options[string(l)]
		if !ok {
			c.add(ErrMalformedOptions, prefix+".options."+string(l), index, 0, "第 %d 题缺少选项 %s", index, l)
			continue
		}
		if strings.TrimSpace(text) == "" {
			c.add(ErrMalformedOptions, prefix+".options."+string(l), index, 0, "第 %d 题选项 %s 为空", index, l)
			continue
		}
		out.Options[l] = text
	}
	var extra []string
	for key := range q.Options {
		if _, ok := ParseLabel(key); !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		c.add(ErrMalformedOptions, prefix+".options."+key, index, 0, "第 %d 题含有多余的选项 %q", index, key)
	}
	return out
}

func validateSolutions(c *issueCollector, doc *Document) []Solution {
	count := len(doc.Questions)
	crossCheck := count > 0
	seen := map[int]bool{}
	var out []Solution

	for i, s := range doc.Solutions {
		field := fmt.Sprintf("solution_table[%d]", i)
		if s.Number == nil {
			c.add(ErrMissingField, field+".number", 0, 0, "答案表第 %d 行缺少题号", i+1)
			continue
		}
		number := *s.Number
		if crossCheck {
			if number < 1 || number > count {
				c.add(ErrDanglingSolution, field+".number", 0, number, "题号 %d 不存在（共 %d 题）", number, count)
				continue
			}
			if seen[number] {
				c.add(ErrDanglingSolution, field+".number", number, number, "题号 %d 出现多次", number)
				continue
			}
		}
		seen[number] = true

		entry := Solution{Number: number}
		valid := true
		if s.Answer == nil {
			c.add(ErrMissingField, field+".answer", number, number, "第 %d 题答案缺失", number)
			valid = false
		} else if l, ok := ParseLabel(*s.Answer); !ok {
			c.add(ErrInvalidAnswerLabel, field+".answer", number, number, "第 %d 题答案 %q 不在 A-D 之内", number, *s.Answer)
			valid = false
		} else {
			entry.Answer = l
		}
		if s.Explanation == nil || strings.TrimSpace(*s.Explanation) == "" {
			c.add(ErrMissingField, field+".explanation", number, number, "第 %d 题缺少解析", number)
			valid = false
		} else {
			entry.Explanation = *s.Explanation
		}
		if valid {
			out = append(out, entry)
		}
	}

	if crossCheck {
		for index := 1; index <= count; index++ {
			if !seen[index] {
				c.add(ErrMissingSolution, fmt.Sprintf("questions[%d]", index), index, 0, "第 %d 题没有对应的答案", index)
			}
		}
	}
	return out
}
