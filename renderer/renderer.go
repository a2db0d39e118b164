package renderer

import (
	"strings"

	"github.com/ByLCY/quizpress/layout"
)

// Document 是可输出为文件的绘制后端：在 layout.Surface 之上增加 Close，
// Close 结束最后一页并返回生成的二进制数据（例如 PDF 字节切片）。
// Close 之后不应再调用其它方法。
type Document interface {
	layout.Surface
	Close() ([]byte, error)
}

// Meta 为写入文档信息字典的元数据。
type Meta struct {
	Title    string
	Subject  string
	Keywords []string
	Author   string
	Creator  string
}

// KeywordString 以逗号连接关键字。
func (m Meta) KeywordString() string { return strings.Join(m.Keywords, ", ") }

// Options 是各后端共享的创建参数。尺寸单位为 mm。
type Options struct {
	Width   float64
	Height  float64
	Meta    Meta
	Regular []byte // 正文字体（TTF）
	Bold    []byte // 粗体字体（TTF），为空时使用 Regular
}
