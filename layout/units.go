package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// 长度与行高的单位换算。配置文件中的长度保留原始单位，进入排版前统一换算为 mm。

// Unit 为长度的单位。
type Unit int

const (
	UnitNone Unit = iota // 无单位
	UnitMM
	UnitCM
	UnitIN
	UnitPT
)

// pt 与 mm 的换算系数。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length 是带单位的长度，例如配置中的 "20mm"。
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// To 换算到 mm 或 pt；无单位的数值按 mm 处理。
func (l Length) To(target Unit) float64 {
	var mm float64
	switch l.Unit {
	case UnitCM:
		mm = l.Value * 10
	case UnitIN:
		mm = l.Value * 25.4
	case UnitPT:
		if target == UnitPT {
			return l.Value
		}
		mm = l.Value * PtToMm
	default:
		mm = l.Value
	}
	if target == UnitPT {
		return mm * MmToPt
	}
	return mm
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

var unitSuffixes = []struct {
	s string
	u Unit
}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}}

// ParseLength 解析 "20mm"、"2cm"、"11pt"、"0.5in" 等长度；不带单位时 Unit 为 UnitNone。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitNone
	num := v
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q", value)
	}
	if f < 0 {
		return Length{}, fmt.Errorf("长度不能为负数: %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

type LineHeightKind int

const (
	LineHeightFactor LineHeightKind = iota
	LineHeightAbsolute
)

// LineHeightSpec 为行高设置：相对字号的倍数（1.4x）或绝对长度（6mm）。
type LineHeightSpec struct {
	Kind   LineHeightKind `json:"kind"`
	Factor float64        `json:"factor,omitempty"`
	Len    Length         `json:"len,omitempty"`
}

// ParseLineHeight 解析 "1.4x" 形式的倍数或 "6mm" 形式的绝对行高。
func ParseLineHeight(value string) (LineHeightSpec, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if strings.HasSuffix(v, "x") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "x"), 64)
		if err != nil || f <= 0 {
			return LineHeightSpec{}, fmt.Errorf("无法解析行高倍数 %q", value)
		}
		return LineHeightSpec{Kind: LineHeightFactor, Factor: f}, nil
	}
	l, err := ParseLength(v)
	if err != nil {
		return LineHeightSpec{}, fmt.Errorf("无法解析行高 %q: %w", value, err)
	}
	return LineHeightSpec{Kind: LineHeightAbsolute, Len: l}, nil
}

// Resolve 按字号换算出目标单位下的绝对行高。
func (s LineHeightSpec) Resolve(fontSize Length, target Unit) float64 {
	switch s.Kind {
	case LineHeightFactor:
		return fontSize.To(target) * s.Factor
	case LineHeightAbsolute:
		return s.Len.To(target)
	default:
		return fontSize.To(target) * 1.4
	}
}

var pagePresets = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
	"LEGAL":  {215.9, 355.6},
}

// PageSize 返回预设纸张的宽高（mm），landscape 为 true 时交换宽高。
func PageSize(name string, landscape bool) (float64, float64, error) {
	base, ok := pagePresets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", name)
	}
	if landscape {
		return base[1], base[0], nil
	}
	return base[0], base[1], nil
}
