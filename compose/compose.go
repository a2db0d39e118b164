// Package compose 按固定顺序渲染测验文档：标题块、逐题题干与 A-D 选项、独立成页的答案表。
package compose

import (
	"fmt"

	"github.com/ByLCY/quizpress/layout"
	"github.com/ByLCY/quizpress/quiz"
)

// DefaultAnswerKeyHeading 是答案表标题的默认文本。
const DefaultAnswerKeyHeading = "Answer Key"

// Options 配置一次渲染。长度单位均为 mm。
type Options struct {
	Geometry     layout.Geometry
	KeepTogether bool

	OptionIndent float64 // 选项相对题干的缩进
	QuestionGap  float64 // 题目之间的额外间距
	TitleGap     float64 // 标题块之后的额外间距

	// TitlePage 为 true 时标题块独占第 1 页。
	TitlePage bool
	// QuestionsHeading 非空时在第一题之前输出该小标题。
	QuestionsHeading string
	AnswerKeyHeading string
}

// DefaultOptions 返回默认几何参数下的渲染配置。
func DefaultOptions() Options {
	return Options{
		Geometry:         layout.DefaultGeometry(),
		KeepTogether:     true,
		OptionIndent:     6,
		QuestionGap:      4,
		TitleGap:         8,
		AnswerKeyHeading: DefaultAnswerKeyHeading,
	}
}

// Stats 汇总一次渲染的输出。
type Stats struct {
	Pages      int
	Questions  int
	Options    int
	KeyEntries int
}

// Render 将校验过的测验绘制到 surface。surface 的错误原样包装返回，不做部分恢复。
func Render(q *quiz.Quiz, surface layout.Surface, opts Options) (Stats, error) {
	if q == nil {
		return Stats{}, fmt.Errorf("compose: 测验为空")
	}
	engine, err := layout.NewEngine(surface, opts.Geometry, layout.Options{KeepTogether: opts.KeepTogether})
	if err != nil {
		return Stats{}, err
	}
	c := &composer{engine: engine, opts: opts, geo: opts.Geometry}
	if c.opts.AnswerKeyHeading == "" {
		c.opts.AnswerKeyHeading = DefaultAnswerKeyHeading
	}

	if err := c.titleBlock(q); err != nil {
		return c.stats, fmt.Errorf("渲染标题失败: %w", err)
	}
	if err := c.questions(q); err != nil {
		return c.stats, err
	}
	if err := c.answerKey(q); err != nil {
		return c.stats, err
	}
	c.stats.Pages = engine.Cursor().Page
	return c.stats, nil
}

type composer struct {
	engine *layout.Engine
	opts   Options
	geo    layout.Geometry
	stats  Stats
}

func (c *composer) titleFont() layout.Font { return layout.Font{Size: c.geo.TitleSize, Bold: true} }
func (c *composer) bodyFont() layout.Font  { return layout.Font{Size: c.geo.BodySize} }
func (c *composer) mutedFont() layout.Font { return layout.Font{Size: c.geo.BodySize, Muted: true} }

func (c *composer) titleBlock(q *quiz.Quiz) error {
	width := c.geo.ContentWidth()
	if err := c.engine.SetFont(c.titleFont()); err != nil {
		return err
	}
	if err := c.engine.PlaceLines(layout.Lines(c.engine.Measure(q.Title, width), 0, layout.AlignCenter)); err != nil {
		return err
	}
	if q.Subtitle != "" {
		if err := c.engine.SetFont(c.mutedFont()); err != nil {
			return err
		}
		if err := c.engine.PlaceLines(layout.Lines(c.engine.Measure(q.Subtitle, width), 0, layout.AlignCenter)); err != nil {
			return err
		}
	}
	if err := c.engine.SetFont(c.bodyFont()); err != nil {
		return err
	}
	c.engine.Skip(c.opts.TitleGap)
	if c.opts.TitlePage {
		return c.engine.NewSection()
	}
	return nil
}

func (c *composer) heading(text string) error {
	if err := c.engine.SetFont(c.titleFont()); err != nil {
		return err
	}
	lines := c.engine.Measure(text, c.geo.ContentWidth())
	if err := c.engine.PlaceBlock(layout.Lines(lines, 0, layout.AlignLeft)); err != nil {
		return err
	}
	c.engine.Skip(c.opts.QuestionGap)
	return c.engine.SetFont(c.bodyFont())
}

func (c *composer) questions(q *quiz.Quiz) error {
	if c.opts.QuestionsHeading != "" {
		if err := c.heading(c.opts.QuestionsHeading); err != nil {
			return fmt.Errorf("渲染题目标题失败: %w", err)
		}
	}
	if err := c.engine.SetFont(c.bodyFont()); err != nil {
		return err
	}
	width := c.geo.ContentWidth()
	optionWidth := width - c.opts.OptionIndent
	for _, question := range q.Questions {
		block := layout.Lines(c.engine.Measure(fmt.Sprintf("%d. %s", question.Index, question.Text), width), 0, layout.AlignLeft)
		for _, label := range quiz.Labels {
			text := fmt.Sprintf("%s. %s", label, question.Option(label))
			block = append(block, layout.Lines(c.engine.Measure(text, optionWidth), c.opts.OptionIndent, layout.AlignLeft)...)
			c.stats.Options++
		}
		if err := c.engine.PlaceBlock(block); err != nil {
			return fmt.Errorf("渲染第 %d 题失败: %w", question.Index, err)
		}
		c.engine.Skip(c.opts.QuestionGap)
		c.stats.Questions++
	}
	return nil
}

func (c *composer) answerKey(q *quiz.Quiz) error {
	if err := c.engine.NewSection(); err != nil {
		return fmt.Errorf("答案表换页失败: %w", err)
	}
	if err := c.heading(c.opts.AnswerKeyHeading); err != nil {
		return fmt.Errorf("渲染答案表标题失败: %w", err)
	}
	width := c.geo.ContentWidth()
	for _, s := range q.AnswerKey() {
		lines := c.engine.Measure(KeyLine(s), width)
		if err := c.engine.PlaceBlock(layout.Lines(lines, 0, layout.AlignLeft)); err != nil {
			return fmt.Errorf("渲染第 %d 题答案失败: %w", s.Number, err)
		}
		c.stats.KeyEntries++
	}
	return nil
}

// KeyLine 返回答案表中一行的文本，例如 "1 — A. Paris is the capital."。
func KeyLine(s quiz.Solution) string {
	return fmt.Sprintf("%d — %s. %s", s.Number, s.Answer, s.Explanation)
}
