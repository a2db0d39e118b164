// Package record 提供记录绘制指令的 Surface：单独使用时按固定字宽测量，
// 也可包装真实后端，在转发的同时记录每页内容，用于测试与调试 JSON 输出。
package record

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/quizpress/layout"
)

// Text 是一次 DrawText 调用。
type Text struct {
	X       float64     `json:"x"`
	Y       float64     `json:"y"`
	Content string      `json:"content"`
	Font    layout.Font `json:"font"`
}

// Page 收集一页内的全部文本，顺序与绘制顺序一致。
type Page struct {
	Number int    `json:"number"`
	Texts  []Text `json:"texts"`
}

// Recorder 实现 layout.Surface。
type Recorder struct {
	inner     layout.Surface
	charWidth float64
	font      layout.Font
	pages     []Page
}

var _ layout.Surface = (*Recorder)(nil)

// New 包装 inner：测量与绘制均转发给 inner，同时记录。
func New(inner layout.Surface) *Recorder {
	return &Recorder{inner: inner, pages: []Page{{Number: 1}}}
}

// NewFixed 创建独立的记录器，每个字符宽 charWidth（mm），与字号无关。
func NewFixed(charWidth float64) *Recorder {
	return &Recorder{charWidth: charWidth, pages: []Page{{Number: 1}}}
}

func (r *Recorder) DrawText(x, y float64, text string) error {
	if r.inner != nil {
		if err := r.inner.DrawText(x, y, text); err != nil {
			return err
		}
	}
	p := &r.pages[len(r.pages)-1]
	p.Texts = append(p.Texts, Text{X: x, Y: y, Content: text, Font: r.font})
	return nil
}

func (r *Recorder) MeasureTextWidth(text string) float64 {
	if r.inner != nil {
		return r.inner.MeasureTextWidth(text)
	}
	return float64(utf8.RuneCountInString(text)) * r.charWidth
}

func (r *Recorder) StartNewPage() error {
	if r.inner != nil {
		if err := r.inner.StartNewPage(); err != nil {
			return err
		}
	}
	r.pages = append(r.pages, Page{Number: len(r.pages) + 1})
	return nil
}

func (r *Recorder) SetFont(font layout.Font) error {
	if r.inner != nil {
		if err := r.inner.SetFont(font); err != nil {
			return err
		}
	}
	r.font = font
	return nil
}

// Pages 返回已记录的页面。
func (r *Recorder) Pages() []Page { return r.pages }

// Lines 返回第 n 页（从 1 开始）的文本内容。
func (r *Recorder) Lines(n int) []string {
	if n < 1 || n > len(r.pages) {
		return nil
	}
	texts := r.pages[n-1].Texts
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = t.Content
	}
	return out
}

// AllLines 按绘制顺序返回所有页的文本。
func (r *Recorder) AllLines() []string {
	var out []string
	for i := range r.pages {
		out = append(out, r.Lines(i+1)...)
	}
	return out
}

// String 以换行连接全部文本，便于做包含性断言。
func (r *Recorder) String() string { return strings.Join(r.AllLines(), "\n") }

// WriteDebugJSON 将记录的页面输出为 JSON，便于调试或可视化。
func (r *Recorder) WriteDebugJSON(path string) error {
	data, err := json.MarshalIndent(struct {
		Pages []Page `json:"pages"`
	}{r.pages}, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化调试数据失败: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
