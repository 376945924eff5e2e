package lasso

import "math"

// ScreenSize is the logical pixel size of the drawing area.
type ScreenSize struct {
	Width  int
	Height int
}

// Margins is the inset between the drawing area edge and the plot box,
// in logical pixels.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins leaves room for the host's axis decorations.
func DefaultMargins() Margins {
	return Margins{Top: 20, Right: 20, Bottom: 40, Left: 50}
}

// linearScale maps a data interval onto a pixel interval. d0 != d1 is an
// invariant maintained by the transform constructor.
type linearScale struct {
	d0, d1 float64
	r0, r1 float64
}

func (s linearScale) apply(v float64) float64 {
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

func (s linearScale) invert(v float64) float64 {
	return s.d0 + (v-s.r0)/(s.r1-s.r0)*(s.d1-s.d0)
}

// Transform is the bidirectional mapping between data-space and
// screen-space, derived from an (AxisBinding, Viewport, ScreenSize)
// triple. It is immutable: any input change requires a rebuild.
//
// Two coordinate frames are involved on the screen side:
//
//   - base screen coordinates: the axis scales applied to the plot box,
//     independent of pan/zoom. Project and Unproject operate here.
//     Polygon vertices and selection containment live in this frame, which
//     is what makes selection results independent of the viewport.
//   - screen coordinates: base coordinates with the viewport's zoom factor
//     and pan offset applied. Apply and Invert operate here; rendering
//     uses this frame.
type Transform struct {
	binding AxisBinding
	xs, ys  linearScale
	inner   Rect // plot box in base screen coordinates
	zoomK   float64
	zoomTX  float64
	zoomTY  float64
	domain  Rect // niced data-space domain
}

// NewTransform builds a transform for the dataset under the given binding,
// viewport, screen size, and margins.
//
// The domain per axis is the min/max of finite values across the dataset
// for the bound field, scaled by the binding's unit scale, then niced to
// round numbers. A degenerate domain (min == max) substitutes a unit-width
// domain centered on the value; an empty valid set falls back to [0, 1].
// Construction never fails for malformed data.
func NewTransform(ds *Dataset, b AxisBinding, vp Viewport, size ScreenSize, m Margins) *Transform {
	xMin, xMax, xOK := fieldExtent(ds, b.XField, b.scale())
	yMin, yMax, yOK := fieldExtent(ds, b.YField, b.scale())

	xMin, xMax = ensureDomain(xMin, xMax, xOK)
	yMin, yMax = ensureDomain(yMin, yMax, yOK)
	if !xOK || !yOK {
		Logger().Warn("no finite values under binding; using fallback domain",
			"xField", b.XField, "yField", b.YField)
	}

	left := m.Left
	right := float64(size.Width) - m.Right
	top := m.Top
	bottom := float64(size.Height) - m.Bottom
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}

	k := vp.Scale
	if k <= 0 {
		k = 1
	}

	return &Transform{
		binding: b,
		// y range inverted: increasing data-y moves up the screen.
		xs:     linearScale{d0: xMin, d1: xMax, r0: left, r1: right},
		ys:     linearScale{d0: yMin, d1: yMax, r0: bottom, r1: top},
		inner:  Rect{Min: Pt(left, top), Max: Pt(right, bottom)},
		zoomK:  k,
		zoomTX: vp.TranslateX,
		zoomTY: vp.TranslateY,
		domain: Rect{Min: Pt(xMin, yMin), Max: Pt(xMax, yMax)},
	}
}

// fieldExtent returns the min/max of finite values of the field scaled by
// unitScale. ok is false when no record has a finite value.
func fieldExtent(ds *Dataset, f Field, unitScale float64) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	if ds == nil {
		return min, max, false
	}
	for i := 0; i < ds.Len(); i++ {
		v, present := ds.Value(i, f)
		if !present {
			continue
		}
		v *= unitScale
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		ok = true
	}
	return min, max, ok
}

// ensureDomain turns a raw extent into a usable niced domain, applying the
// degenerate and empty fallbacks.
func ensureDomain(min, max float64, ok bool) (float64, float64) {
	if !ok {
		return 0, 1
	}
	if min == max {
		// Degenerate domain: unit width centered on the value.
		Logger().Warn("degenerate domain; substituting unit width", "value", min)
		return min - 0.5, min + 0.5
	}
	return niceDomain(min, max)
}

// niceDomain extends [min, max] outward to round-number bounds, the way
// chart axes pick tick-friendly limits.
func niceDomain(min, max float64) (float64, float64) {
	step := niceNum((max-min)/9, true)
	if step <= 0 || math.IsInf(step, 0) {
		return min, max
	}
	lo := math.Floor(min/step) * step
	hi := math.Ceil(max/step) * step
	if lo == hi {
		hi = lo + step
	}
	return lo, hi
}

// niceNum returns a "nice" number close to x: 1, 2, or 5 times a power of
// ten. When round is true the nearest nice number is chosen, otherwise the
// smallest nice number >= x.
func niceNum(x float64, round bool) float64 {
	if x <= 0 {
		return 0
	}
	exp := math.Floor(math.Log10(x))
	frac := x / math.Pow(10, exp)

	var nice float64
	if round {
		switch {
		case frac < 1.5:
			nice = 1
		case frac < 3:
			nice = 2
		case frac < 7:
			nice = 5
		default:
			nice = 10
		}
	} else {
		switch {
		case frac <= 1:
			nice = 1
		case frac <= 2:
			nice = 2
		case frac <= 5:
			nice = 5
		default:
			nice = 10
		}
	}
	return nice * math.Pow(10, exp)
}

// Project maps a data-space point to base screen coordinates (no pan/zoom).
func (t *Transform) Project(p Point) Point {
	return Pt(t.xs.apply(p.X), t.ys.apply(p.Y))
}

// Unproject maps base screen coordinates back to data-space.
func (t *Transform) Unproject(p Point) Point {
	return Pt(t.xs.invert(p.X), t.ys.invert(p.Y))
}

// Apply maps a data-space point to screen coordinates including the
// viewport's pan/zoom.
func (t *Transform) Apply(p Point) Point {
	b := t.Project(p)
	return Pt(b.X*t.zoomK+t.zoomTX, b.Y*t.zoomK+t.zoomTY)
}

// Invert maps screen coordinates back to data-space.
func (t *Transform) Invert(p Point) Point {
	return t.Unproject(t.Normalize(p))
}

// Normalize maps screen coordinates to base screen coordinates by undoing
// the viewport's pan/zoom. Hosts use this to anchor pointer positions
// (polygon vertices) in the viewport-independent frame.
func (t *Transform) Normalize(p Point) Point {
	return Pt((p.X-t.zoomTX)/t.zoomK, (p.Y-t.zoomTY)/t.zoomK)
}

// Denormalize maps base screen coordinates to screen coordinates,
// applying the viewport's pan/zoom. Inverse of Normalize.
func (t *Transform) Denormalize(p Point) Point {
	return Pt(p.X*t.zoomK+t.zoomTX, p.Y*t.zoomK+t.zoomTY)
}

// ProjectRecord projects record i of the dataset through the binding into
// base screen coordinates. ok is false when the record's bound values are
// missing or non-finite; such records are excluded from the spatial index
// and from rendering but still iterated by the selection engine.
func (t *Transform) ProjectRecord(ds *Dataset, i int) (Point, bool) {
	p, ok := t.dataPoint(ds, i)
	if !ok {
		return Point{}, false
	}
	return t.Project(p), true
}

// dataPoint returns record i's data-space position under the binding.
func (t *Transform) dataPoint(ds *Dataset, i int) (Point, bool) {
	x, okX := ds.Value(i, t.binding.XField)
	y, okY := ds.Value(i, t.binding.YField)
	if !okX || !okY {
		return Point{}, false
	}
	s := t.binding.scale()
	p := Pt(x*s, y*s)
	if !p.IsFinite() {
		return Point{}, false
	}
	return p, true
}

// Domain returns the niced data-space domain.
func (t *Transform) Domain() Rect { return t.domain }

// PlotBox returns the inner plot rectangle in base screen coordinates.
func (t *Transform) PlotBox() Rect { return t.inner }

// VisibleDataBounds returns the data-space region currently visible inside
// the plot box under the viewport's pan/zoom. This feeds viewport culling.
func (t *Transform) VisibleDataBounds() Rect {
	a := t.Invert(t.inner.Min)
	b := t.Invert(t.inner.Max)
	return RectFrom(a, b)
}
