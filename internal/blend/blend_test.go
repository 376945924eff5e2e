package blend

import (
	"math"
	"testing"
)

func TestDiv255Exact(t *testing.T) {
	// Exhaustive over the full product range of mulDiv255.
	for x := 0; x <= 255*255; x++ {
		got := div255(uint16(x))
		want := uint16(x / 255)
		if got != want {
			t.Fatalf("div255(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestSourceOver_Identities(t *testing.T) {
	// Opaque source replaces the destination.
	r, g, b, a := SourceOver(10, 20, 30, 255, 100, 150, 200, 255)
	if r != 100 || g != 150 || b != 200 || a != 255 {
		t.Errorf("opaque over: got (%d,%d,%d,%d)", r, g, b, a)
	}

	// Fully transparent source leaves the destination alone.
	r, g, b, a = SourceOver(10, 20, 30, 40, 0, 0, 0, 0)
	if r != 10 || g != 20 || b != 30 || a != 40 {
		t.Errorf("transparent over: got (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestSourceOver_MatchesFloatReference(t *testing.T) {
	cases := []struct {
		dst [4]byte
		src [4]byte
	}{
		{[4]byte{255, 255, 255, 255}, [4]byte{26, 47, 68, 102}},  // 40% over white
		{[4]byte{68, 119, 170, 255}, [4]byte{51, 26, 26, 51}},    // 20% tint
		{[4]byte{0, 0, 0, 0}, [4]byte{128, 64, 32, 128}},         // over empty
		{[4]byte{12, 200, 90, 210}, [4]byte{100, 100, 100, 180}}, // arbitrary
	}
	for _, tc := range cases {
		r, g, b, a := SourceOver(tc.dst[0], tc.dst[1], tc.dst[2], tc.dst[3],
			tc.src[0], tc.src[1], tc.src[2], tc.src[3])
		got := [4]byte{r, g, b, a}
		for i := 0; i < 4; i++ {
			ref := float64(tc.src[i]) + float64(tc.dst[i])*(1-float64(tc.src[3])/255)
			if diff := math.Abs(float64(got[i]) - ref); diff > 1 {
				t.Errorf("SourceOver(%v, %v) channel %d = %d, reference %.2f",
					tc.dst, tc.src, i, got[i], ref)
			}
		}
	}
}

func TestSourceOverCoverage(t *testing.T) {
	// Zero coverage is a no-op.
	r, g, b, a := SourceOverCoverage(10, 20, 30, 40, 255, 255, 255, 255, 0)
	if r != 10 || g != 20 || b != 30 || a != 40 {
		t.Errorf("zero coverage: got (%d,%d,%d,%d)", r, g, b, a)
	}

	// Full coverage is identical to SourceOver.
	r1, g1, b1, a1 := SourceOverCoverage(10, 20, 30, 40, 100, 100, 100, 200, 255)
	r2, g2, b2, a2 := SourceOver(10, 20, 30, 40, 100, 100, 100, 200)
	if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
		t.Errorf("full coverage: (%d,%d,%d,%d) != (%d,%d,%d,%d)",
			r1, g1, b1, a1, r2, g2, b2, a2)
	}

	// Half coverage halves the contribution.
	_, _, _, a = SourceOverCoverage(0, 0, 0, 0, 255, 255, 255, 255, 128)
	if a < 126 || a > 130 {
		t.Errorf("half coverage alpha = %d, want ~128", a)
	}
}

func TestSpanOver(t *testing.T) {
	dst := make([]byte, 4*4)
	for i := range dst {
		dst[i] = 50
	}
	SpanOver(dst, 3, 100, 100, 100, 255)

	for px := 0; px < 3; px++ {
		for c := 0; c < 4; c++ {
			want := byte(100)
			if c == 3 {
				want = 255
			}
			if dst[px*4+c] != want {
				t.Errorf("pixel %d channel %d = %d, want %d", px, c, dst[px*4+c], want)
			}
		}
	}
	// The fourth pixel is beyond n and untouched.
	if dst[12] != 50 {
		t.Errorf("pixel past span modified: %d", dst[12])
	}
}

func TestPremultiply(t *testing.T) {
	r, g, b, a := Premultiply(255, 128, 0, 128)
	if a != 128 {
		t.Errorf("alpha changed: %d", a)
	}
	if r != 128 || b != 0 {
		t.Errorf("premultiply = (%d,%d,%d,%d)", r, g, b, a)
	}
	if g < 63 || g > 65 {
		t.Errorf("green = %d, want ~64", g)
	}

	// Premultiplied channels never exceed alpha.
	for _, a := range []byte{0, 1, 77, 254} {
		r, g, b, _ := Premultiply(255, 200, 13, a)
		if r > a || g > a || b > a {
			t.Errorf("alpha %d: premultiplied (%d,%d,%d) exceeds alpha", a, r, g, b)
		}
	}
}
