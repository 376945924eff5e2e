// Package palette generates visually distinct region colors.
//
// Colors are spaced around the hue wheel by the golden angle and built in
// HCL space (via go-colorful) so successive regions keep roughly equal
// perceived chroma and lightness.
package palette

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/scatterlab/lasso"
)

// goldenAngle spaces hues so that no small set of consecutive indices
// lands on similar colors.
const goldenAngle = 137.50776405003785

const (
	fillChroma     = 0.45
	fillLightness  = 0.62
	strokeChroma   = 0.55
	strokeLight    = 0.38
	dotChroma      = 0.60
	dotLightness   = 0.50
	hueStartOffset = 25.0
)

// hue returns the i-th golden-angle hue in degrees.
func hue(i int) float64 {
	h := hueStartOffset + float64(i)*goldenAngle
	for h >= 360 {
		h -= 360
	}
	return h
}

// hclClamped builds an HCL color and clamps it into displayable sRGB.
func hclClamped(h, c, l float64) lasso.RGBA {
	col := colorful.Hcl(h, c, l).Clamped()
	return lasso.RGBA{R: col.R, G: col.G, B: col.B, A: 1}
}

// Fill returns the fill color for the i-th region.
func Fill(i int) lasso.RGBA {
	return hclClamped(hue(i), fillChroma, fillLightness)
}

// Stroke returns the outline color for the i-th region: same hue as the
// fill, darker.
func Stroke(i int) lasso.RGBA {
	return hclClamped(hue(i), strokeChroma, strokeLight)
}

// Dot returns the base dot color for points selected by the i-th region.
func Dot(i int) lasso.RGBA {
	return hclClamped(hue(i), dotChroma, dotLightness)
}

// Style bundles the three colors for the i-th region.
func Style(i int) lasso.PolygonStyle {
	return lasso.PolygonStyle{
		Fill:     Fill(i),
		Stroke:   lasso.StrokeSpec{Color: Stroke(i), Width: 1.5},
		DotColor: Dot(i),
	}
}
