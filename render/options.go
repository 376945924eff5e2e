package render

import "github.com/scatterlab/lasso"

// Option configures a Compositor during creation.
type Option func(*compositorOptions)

type compositorOptions struct {
	baseColor     lasso.RGBA
	baseAlpha     float64
	overlayAlpha  float64
	dotRadius     float64
	background    lasso.RGBA
	dirtyTracking bool
}

func defaultOptions() compositorOptions {
	return compositorOptions{
		baseColor:    lasso.Hex("#4477aa"),
		baseAlpha:    0.4,
		overlayAlpha: 0.2,
		dotRadius:    3,
		background:   lasso.Transparent,
	}
}

// WithBaseColor sets the color unselected points are drawn with.
func WithBaseColor(c lasso.RGBA) Option {
	return func(o *compositorOptions) { o.baseColor = c }
}

// WithBaseAlpha sets the alpha for base point passes (default 0.4).
func WithBaseAlpha(a float64) Option {
	return func(o *compositorOptions) { o.baseAlpha = a }
}

// WithOverlayAlpha sets the alpha for overlay dot and polygon fill passes
// (default 0.2).
func WithOverlayAlpha(a float64) Option {
	return func(o *compositorOptions) { o.overlayAlpha = a }
}

// WithDotRadius sets the point radius in logical pixels (default 3).
func WithDotRadius(r float64) Option {
	return func(o *compositorOptions) { o.dotRadius = r }
}

// WithBackground sets the data layer's clear color (default transparent).
func WithBackground(c lasso.RGBA) Option {
	return func(o *compositorOptions) { o.background = c }
}

// WithDirtyTracking engages tile-based dirty-region clipping. Full redraw
// remains the default strategy; partial redraw is an optimization with no
// effect on output.
func WithDirtyTracking() Option {
	return func(o *compositorOptions) { o.dirtyTracking = true }
}
