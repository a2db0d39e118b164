package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeJSON 严格解析 JSON 文档：拒绝未知字段与多余的文档。
func DecodeJSON(data []byte) (*Document, error) {
	var doc Document
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("解析 JSON 失败: 不支持多个文档")
		}
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}
	return &doc, nil
}

// DecodeYAML 严格解析 YAML 文档，字段名与 JSON 相同。
func DecodeYAML(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("解析 YAML 失败: 文档为空")
		}
		return nil, fmt.Errorf("解析 YAML 失败: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("解析 YAML 失败: 不支持多个文档")
		}
		return nil, fmt.Errorf("解析 YAML 失败: %w", err)
	}
	return &doc, nil
}

// EncodeJSON 以缩进格式输出文档，用于导出示例模板。
func EncodeJSON(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// EncodeYAML 输出与 DecodeYAML 对应的 YAML 文本。
func EncodeYAML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("输出 YAML 失败: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("输出 YAML 失败: %w", err)
	}
	return buf.Bytes(), nil
}
