package layout

// Font 描述当前使用的字体：字号（mm）、是否加粗，以及是否以灰色绘制次要文本。
type Font struct {
	Size  float64 `json:"size"`
	Bold  bool    `json:"bold,omitempty"`
	Muted bool    `json:"muted,omitempty"`
}

// Surface 是排版引擎依赖的绘制能力。坐标以页面左上角为原点、单位为 mm，
// y 指向行框顶部。Surface 在创建时已经处于第 1 页。
type Surface interface {
	DrawText(x, y float64, text string) error
	MeasureTextWidth(text string) float64
	StartNewPage() error
	SetFont(font Font) error
}
