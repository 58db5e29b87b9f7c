package render

import (
	"math"
	"testing"
)

func TestPack(t *testing.T) {
	tests := []struct {
		name string
		c    Col
		want uint32
	}{
		{"black", Col{}, 0x000000},
		{"white", Col{1, 1, 1}, 0xffffff},
		{"red", Col{1, 0, 0}, 0xff0000},
		{"green", Col{0, 1, 0}, 0x00ff00},
		{"blue", Col{0, 0, 1}, 0x0000ff},
		{"half truncates", Col{0.5, 0.5, 0.5}, 0x7f7f7f},
		{"over range clamps", Col{7, 2, 1.5}, 0xffffff},
		{"negative clamps", Col{-1, -0.1, 0}, 0x000000},
		{"nan is black", Col{math.NaN(), 1, math.NaN()}, 0x00ff00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Pack(); got != tt.want {
				t.Errorf("Pack(%v) = %#06x, want %#06x", tt.c, got, tt.want)
			}
		})
	}
}

func TestUnpack(t *testing.T) {
	tests := []struct {
		p    uint32
		want Col
	}{
		{Black, Col{}},
		{White, Col{1, 1, 1}},
		{Red, Col{1, 0, 0}},
		{Cyan, Col{0, 1, 1}},
	}
	for _, tt := range tests {
		if got := Unpack(tt.p); got != tt.want {
			t.Errorf("Unpack(%#06x) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestColArithmetic(t *testing.T) {
	a := Col{0.5, 0.25, 2}
	b := Col{2, 4, 0.5}
	if got := a.Mul(b); got != (Col{1, 1, 1}) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Add(b); got != (Col{2.5, 4.25, 2.5}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Square().Sqrt(); got != a {
		t.Errorf("Square.Sqrt = %v, want %v", got, a)
	}
	if got := (Col{-4, 4, 0}).Sqrt(); got != (Col{0, 2, 0}) {
		t.Errorf("Sqrt of negative = %v", got)
	}
	if a.Max() != 2 {
		t.Errorf("Max = %v", a.Max())
	}
	if !(Col{}).IsBlack() || a.IsBlack() {
		t.Error("IsBlack mismatch")
	}
}
