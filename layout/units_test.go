package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 595.28, 841.89}
	for _, pt := range samples {
		back := pt * PtToMm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

// TestLengthPoints 覆盖常见单位到 pt 的转换。
func TestLengthPoints(t *testing.T) {
	cases := []struct {
		in   Length
		want float64
	}{
		{Length{Value: 1, Unit: UnitIN}, 72},
		{Length{Value: 12, Unit: UnitPT}, 12},
		{Length{Value: 10, Unit: UnitMM}, 10 * MmToPt},
		{Length{Value: 1, Unit: UnitCM}, 10 * MmToPt},
	}
	for _, c := range cases {
		if got := c.in.Points(); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%g%s 转 pt 期望 %g，实际 %g", c.in.Value, c.in.Unit, c.want, got)
		}
	}
	if got := (Length{Value: 72, Unit: UnitPT}).Millimeters(); math.Abs(got-72*PtToMm) > 1e-9 {
		t.Fatalf("72pt 转 mm 实际 %g", got)
	}
}

// TestParseLength 覆盖带单位与裸数字两种写法。
func TestParseLength(t *testing.T) {
	cases := map[string]Length{
		"12":     {Value: 12, Unit: UnitPT},
		"10.5pt": {Value: 10.5, Unit: UnitPT},
		"5mm":    {Value: 5, Unit: UnitMM},
		" 1.5CM": {Value: 1.5, Unit: UnitCM},
		"1in":    {Value: 1, Unit: UnitIN},
		"-3":     {Value: -3, Unit: UnitPT},
	}
	for in, want := range cases {
		got, err := ParseLength(in)
		if err != nil {
			t.Fatalf("解析 %q 失败: %v", in, err)
		}
		if got != want {
			t.Fatalf("解析 %q 期望 %+v，实际 %+v", in, want, got)
		}
	}
	for _, bad := range []string{"", "mm", "abc", "12px"} {
		if _, err := ParseLength(bad); err == nil {
			t.Fatalf("解析 %q 应当失败", bad)
		}
	}
}

func TestLookupPageSize(t *testing.T) {
	if got, ok := LookupPageSize("a4"); !ok || got != A4 {
		t.Fatalf("a4 解析错误: %+v %v", got, ok)
	}
	if got := Letter.Landscape(); got.Width != 792 || got.Height != 612 {
		t.Fatalf("Letter 横向错误: %+v", got)
	}
	if _, ok := LookupPageSize("B5"); ok {
		t.Fatalf("B5 不应被识别")
	}
}

func TestParseHexColor(t *testing.T) {
	got, err := ParseHexColor("#8E8A28")
	if err != nil || got != RGB255(142, 138, 40) {
		t.Fatalf("解析 #8E8A28 错误: %+v %v", got, err)
	}
	if got, _ := ParseHexColor("f00"); got != Red {
		t.Fatalf("解析 f00 错误: %+v", got)
	}
	if got, _ := ParseHexColor("#FFFFFF80"); got != White {
		t.Fatalf("解析 #FFFFFF80 错误: %+v", got)
	}
	if _, err := ParseHexColor("#12345"); err == nil {
		t.Fatalf("#12345 应当失败")
	}
}
