package canvasrenderer

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/quizpress/layout"
	"github.com/ByLCY/quizpress/renderer"
)

// 正文颜色接近黑色；副标题等次要文本用灰色。
var (
	textColor  = canvas.RGBA(30.0/255.0, 30.0/255.0, 30.0/255.0, 1.0)
	mutedColor = canvas.RGBA(110.0/255.0, 110.0/255.0, 110.0/255.0, 1.0)
)

// Surface draws quiz pages via github.com/tdewolff/canvas and writes them as PDF.
type Surface struct {
	width, height float64

	buf    bytes.Buffer
	writer *pdf.PDF
	page   *canvas.Canvas
	ctx    *canvas.Context

	family *canvas.FontFamily
	faces  map[layout.Font]*canvas.FontFace
	font   layout.Font
	face   *canvas.FontFace

	pages  int
	closed bool
}

var _ renderer.Document = (*Surface)(nil)

// New 创建 PDF 文档并进入第 1 页。
func New(opts renderer.Options) (*Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("页面尺寸必须为正数: %gx%g", opts.Width, opts.Height)
	}
	if len(opts.Regular) == 0 {
		return nil, fmt.Errorf("缺少正文字体")
	}
	family := canvas.NewFontFamily("quiz")
	if err := family.LoadFont(opts.Regular, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载正文字体失败: %w", err)
	}
	bold := opts.Bold
	if len(bold) == 0 {
		bold = opts.Regular
	}
	if err := family.LoadFont(bold, 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("加载粗体字体失败: %w", err)
	}

	s := &Surface{
		width:  opts.Width,
		height: opts.Height,
		family: family,
		faces:  map[layout.Font]*canvas.FontFace{},
	}
	s.writer = pdf.New(&s.buf, opts.Width, opts.Height, nil)
	m := opts.Meta
	s.writer.SetInfo(m.Title, m.Subject, m.KeywordString(), m.Author, m.Creator)
	s.newCanvas()
	if err := s.SetFont(layout.Font{Size: 11 * layout.PtToMm}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Surface) newCanvas() {
	s.page = canvas.New(s.width, s.height)
	s.ctx = canvas.NewContext(s.page)
	s.ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点
	s.pages++
}

// SetFont 切换字号（mm）、粗细与颜色。字体面按 layout.Font 缓存。
func (s *Surface) SetFont(font layout.Font) error {
	if font.Size <= 0 {
		return fmt.Errorf("字号必须为正数: %g", font.Size)
	}
	face, ok := s.faces[font]
	if !ok {
		style := canvas.FontRegular
		if font.Bold {
			style = canvas.FontBold
		}
		color := textColor
		if font.Muted {
			color = mutedColor
		}
		// 排版使用 mm，字体系统使用 pt，这里做一次 mm→pt。
		face = s.family.Face(toPt(font.Size), color, style, canvas.FontNormal)
		s.faces[font] = face
	}
	s.font, s.face = font, face
	return nil
}

// MeasureTextWidth 返回当前字体下文本的宽度（mm）。
func (s *Surface) MeasureTextWidth(text string) float64 {
	if s.face == nil || text == "" {
		return 0
	}
	return s.face.TextWidth(text)
}

// DrawText 在 (x, y) 处绘制一行文本，y 为行框顶部；基线位于 y 加上字体上升部。
func (s *Surface) DrawText(x, y float64, text string) error {
	if s.closed {
		return fmt.Errorf("文档已关闭")
	}
	if text == "" {
		return nil
	}
	line := canvas.NewTextLine(s.face, text, canvas.Left)
	s.ctx.DrawText(x, y+s.face.Metrics().Ascent, line)
	return nil
}

// StartNewPage 输出当前页并开始新的一页。
func (s *Surface) StartNewPage() error {
	if s.closed {
		return fmt.Errorf("文档已关闭")
	}
	s.page.RenderTo(s.writer)
	s.writer.NewPage(s.width, s.height)
	s.newCanvas()
	return nil
}

// Pages 返回已开始的页数。
func (s *Surface) Pages() int { return s.pages }

// Close 输出最后一页并返回 PDF 字节。
func (s *Surface) Close() ([]byte, error) {
	if s.closed {
		return nil, fmt.Errorf("文档已关闭")
	}
	s.closed = true
	s.page.RenderTo(s.writer)
	if err := s.writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return s.buf.Bytes(), nil
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
