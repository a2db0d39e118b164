// Package fonts 提供内置字体（Go 字体族）并解析配置中的字体来源。
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var builtin = map[string][]byte{
	"regular":     goregular.TTF,
	"bold":        gobold.TTF,
	"italic":      goitalic.TTF,
	"bold-italic": gobolditalic.TTF,
	"mono":        gomono.TTF,
}

// Names 返回全部内置字体名。
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Load 返回内置字体的字节数据，name 可写为 "embed:bold" 或直接 "bold"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(trimScheme(name))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("找不到内置字体 %s（可用：%s）", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Resolve 读取字体来源：embed:/built-in: 前缀表示内置字体，其余视为文件路径，
// 相对路径基于 baseDir。src 为空时返回 fallback 对应的内置字体。
func Resolve(src, baseDir, fallback string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Load(fallback)
	}
	if trimScheme(src) != src {
		return Load(src)
	}
	path := src
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件 %s 失败: %w", path, err)
	}
	return data, nil
}

func trimScheme(s string) string {
	for _, prefix := range []string{"embed:", "built-in:", "builtin:"} {
		if strings.HasPrefix(s, prefix) {
			return strings.TrimPrefix(s, prefix)
		}
	}
	return s
}
