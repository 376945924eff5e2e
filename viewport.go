package lasso

// Viewport describes the pan/zoom state of the plot. MinX..MaxY are the
// data-space bounds currently visible; Scale and TranslateX/TranslateY are
// the zoom factor and pan offset applied to base screen coordinates.
//
// Viewports are value types: pan, zoom, and refit all produce a fresh
// Viewport rather than patching in place, so downstream memoization keyed
// on the value stays correct.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// ViewportFor returns an unzoomed viewport covering the given data bounds.
func ViewportFor(bounds Rect) Viewport {
	return Viewport{
		MinX:  bounds.Min.X,
		MaxX:  bounds.Max.X,
		MinY:  bounds.Min.Y,
		MaxY:  bounds.Max.Y,
		Scale: 1,
	}
}

// Valid reports whether the viewport satisfies its invariants:
// MinX < MaxX, MinY < MaxY, Scale > 0.
func (v Viewport) Valid() bool {
	return v.MinX < v.MaxX && v.MinY < v.MaxY && v.Scale > 0
}

// DataBounds returns the visible data-space bounds as a rectangle.
func (v Viewport) DataBounds() Rect {
	return Rect{Min: Pt(v.MinX, v.MinY), Max: Pt(v.MaxX, v.MaxY)}
}

// Pan returns a viewport shifted by the given screen-space offset.
// The data bounds are stale until Refit is called with the transform
// built from the new viewport.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.TranslateX += dx
	v.TranslateY += dy
	return v
}

// ZoomAt returns a viewport zoomed by factor around the given screen-space
// focus point, so the data under the cursor stays under the cursor.
func (v Viewport) ZoomAt(factor float64, focus Point) Viewport {
	if factor <= 0 {
		return v
	}
	v.Scale *= factor
	v.TranslateX = focus.X - (focus.X-v.TranslateX)*factor
	v.TranslateY = focus.Y - (focus.Y-v.TranslateY)*factor
	return v
}

// Refit returns the viewport with its data bounds recomputed from the
// transform's visible region, keeping Min/Max consistent with the current
// pan/zoom state.
func (v Viewport) Refit(t *Transform) Viewport {
	b := t.VisibleDataBounds()
	v.MinX, v.MaxX = b.Min.X, b.Max.X
	v.MinY, v.MaxY = b.Min.Y, b.Max.Y
	return v
}
