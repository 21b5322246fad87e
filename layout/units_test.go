package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

// TestLengthToConversions 覆盖 Length 在常见单位上的转换正确性（到 mm/pt）。
func TestLengthToConversions(t *testing.T) {
	in := Length{Value: 1, Unit: UnitIN}
	if got := in.ToMM(); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("1in 转 mm 期望 25.4，实际 %g", got)
	}
	if got := in.ToPT(); math.Abs(got-25.4*MmToPt) > 1e-9 {
		t.Fatalf("1in 转 pt 期望 %g，实际 %g", 25.4*MmToPt, got)
	}
	cm := Length{Value: 2.54, Unit: UnitCM}
	if got := cm.ToMM(); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("2.54cm 转 mm 期望 25.4，实际 %g", got)
	}
	pt := Length{Value: 12, Unit: UnitPT}
	if got := pt.ToMM(); math.Abs(got-12*PtToMm) > 1e-9 {
		t.Fatalf("12pt 转 mm 期望 %g，实际 %g", 12*PtToMm, got)
	}
	bare := Length{Value: 44, Unit: UnitNone}
	if got := bare.ToPT(); got != 44 {
		t.Fatalf("无单位数值应按 pt 处理，实际 %g", got)
	}
}

func TestParseRawLengthStr(t *testing.T) {
	cases := []struct {
		in   string
		want Length
		ok   bool
	}{
		{"44pt", Length{44, UnitPT}, true},
		{"15.5mm", Length{15.5, UnitMM}, true},
		{" 2CM ", Length{2, UnitCM}, true},
		{"1in", Length{1, UnitIN}, true},
		{"10", Length{10, UnitNone}, true},
		{"", Length{}, false},
		{"wide", Length{}, false},
	}
	for _, c := range cases {
		got, ok := ParseRawLengthStr(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseRawLengthStr(%q) = %+v,%v want %+v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
	if s := (Length{Value: 0.6, Unit: UnitPT}).String(); s != "0.6pt" {
		t.Errorf("String() = %q", s)
	}
}
