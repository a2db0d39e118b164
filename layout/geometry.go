package layout

import "fmt"

// Geometry 描述固定的页面几何参数，单位均为毫米（mm）。
// PageWidth/PageHeight 为可打印区域的宽高，Margin 为四周留白；纸张尺寸见 PaperWidth/PaperHeight。
// TitleSize/BodySize 为字号（同样以 mm 表示，渲染器在边界处换算为 pt）。
type Geometry struct {
	PageWidth  float64 `json:"pageWidth"`  // 可打印宽度
	PageHeight float64 `json:"pageHeight"` // 可打印高度
	Margin     float64 `json:"margin"`
	LineHeight float64 `json:"lineHeight"` // 正文字号下每行的纵向步进
	TitleSize  float64 `json:"titleSize"`
	BodySize   float64 `json:"bodySize"`
}

// DefaultGeometry 返回 A4、20mm 边距、11pt 正文的默认几何参数。
func DefaultGeometry() Geometry {
	body := Length{Value: 11, Unit: UnitPT}
	return Geometry{
		PageWidth:  210 - 2*20,
		PageHeight: 297 - 2*20,
		Margin:     20,
		LineHeight: LineHeightSpec{Kind: LineHeightFactor, Factor: 1.4}.Resolve(body, UnitMM),
		TitleSize:  Length{Value: 18, Unit: UnitPT}.ToMM(),
		BodySize:   body.ToMM(),
	}
}

// OnPaper 由纸张尺寸与边距推出可打印区域。边距过大时返回错误。
func OnPaper(paperWidth, paperHeight, margin float64) (Geometry, error) {
	g := Geometry{PageWidth: paperWidth - 2*margin, PageHeight: paperHeight - 2*margin, Margin: margin}
	if margin < 0 {
		return g, fmt.Errorf("边距不能为负数: %g", margin)
	}
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return g, fmt.Errorf("边距 %g 过大，纸张 %gx%g 没有可打印区域", margin, paperWidth, paperHeight)
	}
	return g, nil
}

// Validate 检查几何参数是否能容纳至少一行正文。
func (g Geometry) Validate() error {
	switch {
	case g.PageWidth <= 0 || g.PageHeight <= 0:
		return fmt.Errorf("可打印区域必须为正数: %gx%g", g.PageWidth, g.PageHeight)
	case g.Margin < 0:
		return fmt.Errorf("边距不能为负数: %g", g.Margin)
	case g.LineHeight <= 0:
		return fmt.Errorf("行高必须为正数: %g", g.LineHeight)
	case g.LineHeight > g.ContentHeight():
		return fmt.Errorf("行高 %g 超过可打印高度 %g", g.LineHeight, g.ContentHeight())
	case g.BodySize <= 0 || g.TitleSize <= 0:
		return fmt.Errorf("字号必须为正数: title=%g body=%g", g.TitleSize, g.BodySize)
	}
	return nil
}

// ContentWidth 为可打印宽度。
func (g Geometry) ContentWidth() float64 { return g.PageWidth }

// ContentHeight 为可打印高度。
func (g Geometry) ContentHeight() float64 { return g.PageHeight }

// PaperWidth 为纸张宽度，即可打印宽度加两侧边距。
func (g Geometry) PaperWidth() float64 { return g.PageWidth + 2*g.Margin }

// PaperHeight 为纸张高度。
func (g Geometry) PaperHeight() float64 { return g.PageHeight + 2*g.Margin }

func (g Geometry) contentTop() float64    { return g.Margin }
func (g Geometry) contentBottom() float64 { return g.Margin + g.PageHeight }

// Advance 返回指定字号下一行的纵向步进：LineHeight 按字号相对正文字号等比缩放。
func (g Geometry) Advance(size float64) float64 {
	if size <= 0 || g.BodySize <= 0 {
		return g.LineHeight
	}
	return g.LineHeight * size / g.BodySize
}
