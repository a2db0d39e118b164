// Package loader 按扩展名选择解码器读取测验文件，并在校验之前完成数据绑定与文本规范化。
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/quizpress/binding"
	"github.com/ByLCY/quizpress/dsl"
	"github.com/ByLCY/quizpress/quiz"
)

// Format 为输入文件格式。
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatQuiz Format = "quiz"
)

// Extensions 列出可识别的文件扩展名。
var Extensions = []string{".json", ".yaml", ".yml", ".quiz"}

// FormatOf 根据扩展名（大小写不敏感）判断格式。
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".quiz":
		return FormatQuiz, nil
	default:
		return "", fmt.Errorf("不支持的文件类型 %q（可用：%s）", filepath.Ext(path), strings.Join(Extensions, ", "))
	}
}

// ParseFormat 解析 -template 等参数中的格式名。
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatYAML, FormatQuiz:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("未知格式 %q", name)
	}
}

// Decode 按格式解码原始文档，不做绑定与规范化。
func Decode(format Format, data []byte) (*quiz.Document, error) {
	switch format {
	case FormatJSON:
		return quiz.DecodeJSON(data)
	case FormatYAML:
		return quiz.DecodeYAML(data)
	case FormatQuiz:
		return dsl.Decode(data)
	default:
		return nil, fmt.Errorf("未知格式 %q", format)
	}
}

// Encode 以指定格式输出文档，用于导出模板。
func Encode(format Format, doc *quiz.Document) ([]byte, error) {
	switch format {
	case FormatJSON:
		b, err := quiz.EncodeJSON(doc)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case FormatYAML:
		return quiz.EncodeYAML(doc)
	case FormatQuiz:
		return []byte(dsl.Format(doc)), nil
	default:
		return nil, fmt.Errorf("未知格式 %q", format)
	}
}

// Prepare 对原始文档执行占位符替换与文本规范化。binder 可为 nil。
func Prepare(doc *quiz.Document, binder *binding.Binder) {
	if binder != nil {
		doc.MapText(binder.Interpolate)
	}
	quiz.Normalize(doc)
}

// Load 读取并解码 path，随后执行 Prepare。
func Load(path string, binder *binding.Binder) (*quiz.Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取测验文件 %s: %w", path, err)
	}
	doc, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	Prepare(doc, binder)
	return doc, nil
}

// LoadQuiz 在 Load 的基础上完成结构校验。
func LoadQuiz(path string, binder *binding.Binder) (*quiz.Quiz, error) {
	doc, err := Load(path, binder)
	if err != nil {
		return nil, err
	}
	return quiz.Validate(doc)
}
