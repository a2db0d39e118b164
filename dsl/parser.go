// Package dsl 解析 .quiz 纯文本格式。语法示例：
//
//	title: "Networking"
//	subtitle: "Basics"
//	question "Which OSI layer routes?" {
//	  A: "Physical"
//	  B: "Network"
//	  C: "Transport"
//	  D: "Application"
//	}
//	answer 1 B "Routing happens at Layer 3."
//
// 解析结果转换为 quiz.Document，结构校验仍交给 quiz.Validate。
package dsl

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/quizpress/quiz"
)

var (
	quizLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `\d+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(quizLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// File 是 .quiz 文件的语法树根节点。
type File struct {
	Entries []*Entry `parser:"Newline* ( @@ ( ';' | Newline )* )*"`
}

// Entry 为顶层语句之一。
type Entry struct {
	Field    *Field         `parser:"  @@"`
	Question *QuestionBlock `parser:"| @@"`
	Answer   *AnswerLine    `parser:"| @@"`
}

// Field 对应 title/subtitle 赋值。
type Field struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@('title' | 'subtitle')"`
	Value StringLiteral  `parser:"':' @String"`
}

// QuestionBlock 是一道题：题干加花括号内的选项。
type QuestionBlock struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Text    StringLiteral  `parser:"'question' @String Newline*"`
	Options []*Option      `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Option 为 `A: "text"`。
type Option struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Label string         `parser:"@Ident"`
	Text  StringLiteral  `parser:"':' @String"`
}

// AnswerLine 为 `answer <题号> <标签> "<解析>"`。
type AnswerLine struct {
	Pos         lexer.Position `parser:"" json:"-"`
	Number      int            `parser:"'answer' @Number"`
	Label       string         `parser:"@Ident"`
	Explanation StringLiteral  `parser:"@String"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// ParseString parses .quiz content from a string.
func ParseString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}

// Decode 解析 .quiz 内容并转换为 quiz.Document。
func Decode(data []byte) (*quiz.Document, error) {
	file, err := fileParser.ParseBytes("", data)
	if err != nil {
		return nil, fmt.Errorf("解析 .quiz 失败: %w", err)
	}
	return file.Document()
}

// Document 将语法树转换为原始输入模型。未出现的 title/subtitle 保持为 nil，
// 题目与答案列表总是非 nil，因此空文件在校验时报告 EmptyQuiz。
// 同一字段重复赋值或同一题内标签重复视为语法错误。
func (f *File) Document() (*quiz.Document, error) {
	doc := &quiz.Document{
		Questions: []quiz.DocQuestion{},
		Solutions: []quiz.DocSolution{},
	}
	for _, entry := range f.Entries {
		switch {
		case entry.Field != nil:
			field := entry.Field
			value := string(field.Value)
			target := &doc.Title
			if field.Key == "subtitle" {
				target = &doc.Subtitle
			}
			if *target != nil {
				return nil, fmt.Errorf("%s: 字段 %s 重复", field.Pos, field.Key)
			}
			*target = &value
		case entry.Question != nil:
			q, err := entry.Question.toDoc()
			if err != nil {
				return nil, err
			}
			doc.Questions = append(doc.Questions, q)
		case entry.Answer != nil:
			a := entry.Answer
			number, label, explanation := a.Number, a.Label, string(a.Explanation)
			doc.Solutions = append(doc.Solutions, quiz.DocSolution{
				Number:      &number,
				Answer:      &label,
				Explanation: &explanation,
			})
		}
	}
	return doc, nil
}

func (q *QuestionBlock) toDoc() (quiz.DocQuestion, error) {
	text := string(q.Text)
	options := make(map[string]string, len(q.Options))
	for _, opt := range q.Options {
		if _, dup := options[opt.Label]; dup {
			return quiz.DocQuestion{}, fmt.Errorf("%s: 选项 %s 重复", opt.Pos, opt.Label)
		}
		options[opt.Label] = string(opt.Text)
	}
	return quiz.DocQuestion{Text: &text, Options: options}, nil
}
