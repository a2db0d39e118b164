package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 11, 14.4, 72, 144, 1000}
	for _, pt := range samples {
		back := Length{Value: pt, Unit: UnitPT}.ToMM() * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

func TestParseLength(t *testing.T) {
	cases := map[string]float64{
		"20mm":  20,
		"2cm":   20,
		"1in":   25.4,
		"12pt":  12 * PtToMm,
		" 7 ":   7,
		"0.5CM": 5,
	}
	for in, want := range cases {
		l, err := ParseLength(in)
		if err != nil {
			t.Fatalf("ParseLength(%q) 出错: %v", in, err)
		}
		if got := l.ToMM(); math.Abs(got-want) > 1e-9 {
			t.Fatalf("ParseLength(%q) 转 mm 期望 %g，实际 %g", in, want, got)
		}
	}
	for _, bad := range []string{"", "abc", "-3mm", "12px"} {
		if _, err := ParseLength(bad); err == nil {
			t.Fatalf("ParseLength(%q) 应当失败", bad)
		}
	}
}

// TestLineHeightResolve 验证行高解析：倍数与绝对值两种语义在 mm 下的结果。
func TestLineHeightResolve(t *testing.T) {
	fontSize := Length{Value: 12, Unit: UnitPT}

	factor, err := ParseLineHeight("1.2x")
	if err != nil {
		t.Fatalf("解析倍数行高失败: %v", err)
	}
	if got, want := factor.Resolve(fontSize, UnitMM), 12*1.2*PtToMm; math.Abs(got-want) > 1e-9 {
		t.Fatalf("1.2x 解析为 mm 错误: got=%g want=%g", got, want)
	}

	abs, err := ParseLineHeight("6mm")
	if err != nil {
		t.Fatalf("解析绝对行高失败: %v", err)
	}
	if got := abs.Resolve(fontSize, UnitMM); math.Abs(got-6) > 1e-9 {
		t.Fatalf("6mm 行高解析错误: got=%g", got)
	}

	if _, err := ParseLineHeight("0x"); err == nil {
		t.Fatalf("0x 应当被拒绝")
	}
}

func TestPageSize(t *testing.T) {
	w, h, err := PageSize("a4", false)
	if err != nil || w != 210 || h != 297 {
		t.Fatalf("A4 纵向尺寸错误: %g x %g (%v)", w, h, err)
	}
	w, h, err = PageSize("Letter", true)
	if err != nil || w != 279.4 || h != 215.9 {
		t.Fatalf("Letter 横向尺寸错误: %g x %g (%v)", w, h, err)
	}
	if _, _, err := PageSize("B9", false); err == nil {
		t.Fatalf("未知纸张应当报错")
	}
}
