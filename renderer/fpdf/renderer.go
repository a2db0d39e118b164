// Package fpdfrenderer 基于 codeberg.org/go-pdf/fpdf 的 PDF 绘制后端。
// 分页完全由排版引擎决定，因此关闭了 fpdf 的自动分页。
package fpdfrenderer

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/quizpress/layout"
	"github.com/ByLCY/quizpress/renderer"
)

const family = "quiz"

// Surface implements renderer.Document on top of fpdf.
type Surface struct {
	pdf    *fpdf.Fpdf
	font   layout.Font
	closed bool
}

var _ renderer.Document = (*Surface)(nil)

// New 创建文档、注册字体并进入第 1 页。
func New(opts renderer.Options) (*Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("页面尺寸必须为正数: %gx%g", opts.Width, opts.Height)
	}
	if len(opts.Regular) == 0 {
		return nil, fmt.Errorf("缺少正文字体")
	}
	bold := opts.Bold
	if len(bold) == 0 {
		bold = opts.Regular
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: opts.Width, Ht: opts.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddUTF8FontFromBytes(family, "", opts.Regular)
	pdf.AddUTF8FontFromBytes(family, "B", bold)

	m := opts.Meta
	pdf.SetTitle(m.Title, true)
	pdf.SetSubject(m.Subject, true)
	pdf.SetKeywords(m.KeywordString(), true)
	pdf.SetAuthor(m.Author, true)
	pdf.SetCreator(m.Creator, true)

	pdf.AddPage()
	s := &Surface{pdf: pdf}
	if err := s.SetFont(layout.Font{Size: 11 * layout.PtToMm}); err != nil {
		return nil, err
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("初始化 PDF 失败: %w", err)
	}
	return s, nil
}

// SetFont 切换字号（mm，内部换算为 pt）、粗细与文字颜色。
func (s *Surface) SetFont(font layout.Font) error {
	if font.Size <= 0 {
		return fmt.Errorf("字号必须为正数: %g", font.Size)
	}
	style := ""
	if font.Bold {
		style = "B"
	}
	s.pdf.SetFont(family, style, font.Size*layout.MmToPt)
	if font.Muted {
		s.pdf.SetTextColor(110, 110, 110)
	} else {
		s.pdf.SetTextColor(30, 30, 30)
	}
	s.font = font
	return s.pdf.Error()
}

func (s *Surface) MeasureTextWidth(text string) float64 {
	return s.pdf.GetStringWidth(text)
}

// DrawText 以行框顶部为 y 绘制文本；fpdf 的 Text 以基线定位。
func (s *Surface) DrawText(x, y float64, text string) error {
	if s.closed {
		return fmt.Errorf("文档已关闭")
	}
	if text == "" {
		return nil
	}
	s.pdf.Text(x, y+s.ascent(), text)
	if err := s.pdf.Error(); err != nil {
		return fmt.Errorf("绘制文本失败: %w", err)
	}
	return nil
}

// ascent 返回当前字号下的上升部高度（mm）。字体描述以 1/1000 em 为单位。
func (s *Surface) ascent() float64 {
	desc := s.pdf.GetFontDesc("", "")
	if desc.Ascent <= 0 {
		return 0.8 * s.font.Size
	}
	return float64(desc.Ascent) / 1000 * s.font.Size
}

func (s *Surface) StartNewPage() error {
	if s.closed {
		return fmt.Errorf("文档已关闭")
	}
	s.pdf.AddPage()
	return s.pdf.Error()
}

// Pages 返回当前页数。
func (s *Surface) Pages() int { return s.pdf.PageCount() }

// Close 结束文档并返回 PDF 字节。
func (s *Surface) Close() ([]byte, error) {
	if s.closed {
		return nil, fmt.Errorf("文档已关闭")
	}
	s.closed = true
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}
