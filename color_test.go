package lasso

import (
	"image/color"
	"testing"
)

func TestRGBA_Color(t *testing.T) {
	tests := []struct {
		name string
		c    RGBA
		want color.NRGBA
	}{
		{"opaque black", Black, color.NRGBA{0, 0, 0, 255}},
		{"opaque white", White, color.NRGBA{255, 255, 255, 255}},
		{"transparent", Transparent, color.NRGBA{0, 0, 0, 0}},
		{"half alpha red", RGB(1, 0, 0).WithAlpha(0.5), color.NRGBA{255, 0, 0, 128}},
		{"quarter alpha rounds up", RGB(0, 1, 0).WithAlpha(0.25), color.NRGBA{0, 255, 0, 64}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Color()
			if got != tt.want {
				t.Errorf("Color() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#000000", Black},
		{"#ffffff", White},
		{"#ff0000", RGB(1, 0, 0)},
		{"f00", RGB(1, 0, 0)},
		{"#ff000080", RGB(1, 0, 0).WithAlpha(128.0 / 255)},
		{"#12345", RGBA{A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Hex(tt.in)
			if !colorsClose(got, tt.want) {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRGBA_Lerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	want := RGB(0.5, 0.5, 0.5)
	if !colorsClose(got, want) {
		t.Errorf("Lerp = %v, want %v", got, want)
	}
}

func colorsClose(a, b RGBA) bool {
	const tol = 1.0 / 255
	close := func(x, y float64) bool {
		d := x - y
		return d < tol && d > -tol
	}
	return close(a.R, b.R) && close(a.G, b.G) && close(a.B, b.B) && close(a.A, b.A)
}
