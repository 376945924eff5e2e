package palette

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scatterlab/lasso"
)

func inGamut(t *testing.T, name string, i int, c lasso.RGBA) {
	t.Helper()
	for ch, v := range map[string]float64{"R": c.R, "G": c.G, "B": c.B} {
		assert.GreaterOrEqual(t, v, 0.0, "%s %d channel %s", name, i, ch)
		assert.LessOrEqual(t, v, 1.0, "%s %d channel %s", name, i, ch)
	}
	assert.Equal(t, 1.0, c.A, "%s %d must be opaque", name, i)
}

func TestColorsInGamut(t *testing.T) {
	for i := 0; i < 60; i++ {
		inGamut(t, "fill", i, Fill(i))
		inGamut(t, "stroke", i, Stroke(i))
		inGamut(t, "dot", i, Dot(i))
	}
}

func TestDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, Fill(i), Fill(i))
		assert.Equal(t, Style(i), Style(i))
	}
}

func TestConsecutiveHuesDiffer(t *testing.T) {
	for i := 0; i < 20; i++ {
		d := math.Abs(hue(i) - hue(i+1))
		if d > 180 {
			d = 360 - d
		}
		assert.Greater(t, d, 30.0, "hues %d and %d too close", i, i+1)
	}
}

func TestHueInRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		h := hue(i)
		assert.GreaterOrEqual(t, h, 0.0)
		assert.Less(t, h, 360.0)
	}
}

func TestStrokeDarkerThanFill(t *testing.T) {
	lum := func(c lasso.RGBA) float64 {
		return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
	}
	for i := 0; i < 10; i++ {
		assert.Less(t, lum(Stroke(i)), lum(Fill(i)), "region %d", i)
	}
}

func TestStyle(t *testing.T) {
	s := Style(3)
	assert.Equal(t, Fill(3), s.Fill)
	assert.Equal(t, Stroke(3), s.Stroke.Color)
	assert.Equal(t, Dot(3), s.DotColor)
	assert.Equal(t, 1.5, s.Stroke.Width)
}
