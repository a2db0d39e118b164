package layout

import (
	"fmt"
	"strings"
)

// 浮点比较容差，避免 10 行恰好填满一页时因舍入误差多换一页。
const epsilon = 1e-9

// Align 为行的水平对齐方式。
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// Line 是一行待放置的文本。Indent 仅在左对齐时生效（相对左边距，mm）。
type Line struct {
	Text   string
	Indent float64
	Align  Align
}

// Lines 将折好的文本行包装为同一缩进、对齐方式的 Line。
func Lines(texts []string, indent float64, align Align) []Line {
	out := make([]Line, len(texts))
	for i, t := range texts {
		out[i] = Line{Text: t, Indent: indent, Align: align}
	}
	return out
}

// Cursor 表示当前页码（从 1 开始）与纵向偏移（mm，自页面顶部起算）。
type Cursor struct {
	Page int
	Y    float64
}

// Engine 维护光标与分页决策，并把绘制指令发往 Surface。
// 每次渲染使用独立的 Engine，不在调用之间共享状态。
type Engine struct {
	surface Surface
	geo     Geometry
	opts    Options

	font    Font
	advance float64

	page   int
	y      float64
	filled bool // 当前页是否已有内容
}

// NewEngine 创建排版引擎；Surface 应已处于第 1 页。初始字体为正文字号。
func NewEngine(surface Surface, geo Geometry, opts Options) (*Engine, error) {
	if surface == nil {
		return nil, fmt.Errorf("layout: 缺少绘制后端 Surface")
	}
	if err := geo.Validate(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	e := &Engine{
		surface: surface,
		geo:     geo,
		opts:    opts,
		page:    1,
		y:       geo.contentTop(),
	}
	if err := e.SetFont(Font{Size: geo.BodySize}); err != nil {
		return nil, err
	}
	return e, nil
}

// Cursor 返回当前光标位置。
func (e *Engine) Cursor() Cursor { return Cursor{Page: e.page, Y: e.y} }

// Advance 返回当前字体下的行步进。
func (e *Engine) Advance() float64 { return e.advance }

// SetFont 切换字体并同步更新行步进。
func (e *Engine) SetFont(font Font) error {
	if font.Size <= 0 {
		font.Size = e.geo.BodySize
	}
	if err := e.surface.SetFont(font); err != nil {
		return fmt.Errorf("设置字体失败: %w", err)
	}
	e.font = font
	e.advance = e.geo.Advance(font.Size)
	return nil
}

// Measure 用当前字体将 text 折行到 maxWidth 之内。
func (e *Engine) Measure(text string, maxWidth float64) []string {
	return Wrap(text, maxWidth, e.surface.MeasureTextWidth)
}

// PlaceLines 逐行放置：若光标加一行步进超出可打印底部，先换页再绘制。
func (e *Engine) PlaceLines(lines []Line) error {
	for _, line := range lines {
		if !e.fits(e.advance) && e.filled {
			if err := e.breakPage(); err != nil {
				return err
			}
		}
		if err := e.surface.DrawText(e.lineX(line), e.y, line.Text); err != nil {
			return fmt.Errorf("绘制第 %d 页文本失败: %w", e.page, err)
		}
		e.y += e.advance
		e.filled = true
	}
	return nil
}

// PlaceBlock 放置一组应尽量同页的行。开启 KeepTogether 时，若当前页已有内容且剩余空间
// 放不下整块，则先换页；块本身超过一整页时从新页顶部开始，随后按行自然分页。
func (e *Engine) PlaceBlock(lines []Line) error {
	if e.opts.KeepTogether && e.filled && len(lines) > 0 {
		need := float64(len(lines)) * e.advance
		if !e.fits(need) {
			if err := e.breakPage(); err != nil {
				return err
			}
		}
	}
	return e.PlaceLines(lines)
}

// NewSection 在当前页已有内容时强制换页，保证后续内容从新页顶部开始。
func (e *Engine) NewSection() error {
	if !e.filled {
		return nil
	}
	return e.breakPage()
}

// Skip 追加纵向间距；页顶不留空。超出底部时不换页，由下一行触发换页。
func (e *Engine) Skip(gap float64) {
	if gap <= 0 || !e.filled {
		return
	}
	e.y += gap
}

func (e *Engine) fits(height float64) bool {
	return e.y+height <= e.geo.contentBottom()+epsilon
}

func (e *Engine) breakPage() error {
	if err := e.surface.StartNewPage(); err != nil {
		return fmt.Errorf("新建第 %d 页失败: %w", e.page+1, err)
	}
	e.page++
	e.y = e.geo.contentTop()
	e.filled = false
	return nil
}

func (e *Engine) lineX(line Line) float64 {
	left := e.geo.Margin
	switch Align(strings.ToLower(string(line.Align))) {
	case AlignCenter:
		width := e.surface.MeasureTextWidth(line.Text)
		if free := e.geo.ContentWidth() - width; free > 0 {
			return left + free/2
		}
		return left
	default:
		return left + line.Indent
	}
}
