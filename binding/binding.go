// Package binding 将测验文本中的 ${path} 占位符替换为调用方提供的数据。
package binding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Binder 持有绑定数据，并记录无法解析的路径。零值可用，此时不做任何替换。
type Binder struct {
	data    any
	missing map[string]bool
}

// New 用已解码的数据创建 Binder。data 通常来自 JSON，
// 即 map[string]any、[]any 与标量的组合。
func New(data any) *Binder {
	return &Binder{data: data, missing: map[string]bool{}}
}

// ParseJSON 解析 -data 参数：内联 JSON，或以 @ 开头的文件路径。
func ParseJSON(raw string) (*Binder, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return New(nil), nil
	}
	payload := []byte(raw)
	if strings.HasPrefix(raw, "@") {
		b, err := os.ReadFile(raw[1:])
		if err != nil {
			return nil, fmt.Errorf("读取绑定数据文件失败: %w", err)
		}
		payload = b
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("解析绑定数据失败: %w", err)
	}
	return New(data), nil
}

// Interpolate 将 text 中的 ${path.to.value} 替换为数据中的值。
// 数据为空或路径不存在时保留原占位符，并记入 Missing。
func (b *Binder) Interpolate(text string) string {
	if b == nil || b.data == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		path := strings.TrimSpace(groups[1])
		if path == "" {
			return match
		}
		if val, ok := Lookup(b.data, path); ok {
			return format(val)
		}
		b.missing[path] = true
		return match
	})
}

// Missing 返回至今未能解析的路径，按字典序排列。
func (b *Binder) Missing() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.missing))
	for p := range b.missing {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Lookup 按 a.b[0].c 形式的路径在数据中取值。
func Lookup(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			current, ok = descendMap(current, name)
			if !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			current, ok = descendArray(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}

func parseSegment(segment string) (string, []string) {
	name := segment
	var indexes []string
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 && rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	c, ok := current.(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok := c[key]
	return val, ok
}

func descendArray(current any, idx int) (any, bool) {
	c, ok := current.([]any)
	if !ok || idx < 0 || idx >= len(c) {
		return nil, false
	}
	return c[idx], true
}
