// Package render implements the layered compositor: two persistent
// drawing surfaces (data layer, polygon overlay layer) redrawn per frame
// with draw operations batched by color.
package render

import (
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/scatterlab/lasso"
	"github.com/scatterlab/lasso/internal/dirty"
	"github.com/scatterlab/lasso/surface"
)

// Compositor owns the two drawing surfaces and renders one frame at a
// time from a consistent lasso.Frame snapshot. No other component writes
// to its layers.
type Compositor struct {
	opts compositorOptions

	data    *surface.Layer
	overlay *surface.Layer

	tracker *dirty.Tracker // nil unless dirty tracking is engaged
}

// NewCompositor creates a compositor with surfaces of the given logical
// size and device pixel ratio.
func NewCompositor(size lasso.ScreenSize, dpr float64, opts ...Option) (*Compositor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	data, err := surface.NewLayer(size.Width, size.Height, dpr)
	if err != nil {
		return nil, err
	}
	overlay, err := surface.NewLayer(size.Width, size.Height, dpr)
	if err != nil {
		return nil, err
	}
	c := &Compositor{opts: o, data: data, overlay: overlay}
	if o.dirtyTracking {
		b := data.PhysicalBounds()
		c.tracker = dirty.New(b.Dx(), b.Dy())
	}
	return c, nil
}

// Data returns the data layer (points).
func (c *Compositor) Data() *surface.Layer { return c.data }

// Overlay returns the polygon overlay layer (fills and strokes).
func (c *Compositor) Overlay() *surface.Layer { return c.overlay }

// Invalidate marks a physical-pixel region dirty. Only meaningful with
// dirty tracking engaged; otherwise every frame is a full redraw anyway.
func (c *Compositor) Invalidate(r image.Rectangle) {
	if c.tracker != nil {
		c.tracker.MarkRect(r)
	}
}

// InvalidateAll forces the next frame to redraw the whole surface.
func (c *Compositor) InvalidateAll() {
	if c.tracker != nil {
		c.tracker.MarkAll()
	}
}

// Render draws one frame. Both layers are cleared and redrawn; when dirty
// tracking is engaged, clearing and drawing are clipped to the dirty tile
// spans instead (same output, less work).
//
// The pass order is fixed:
//  1. partition the visible records into unselected and selected
//  2. unselected points, one batched pass at the base color and alpha
//  3. selected points grouped by the first containing polygon's dot
//     color (polygon insertion order), one batched pass per group
//  4. one translucent overlay dot per (record, containing polygon) at the
//     polygon's fill color — plain alpha-over compositing, which is what
//     darkens regions where polygons overlap
//  5. polygon fills and strokes on the overlay layer
func (c *Compositor) Render(f lasso.Frame) {
	start := time.Now()

	rects := c.takeDirty()
	if rects == nil {
		c.renderPass(f)
	} else {
		for _, r := range rects {
			c.data.SetClip(r)
			c.overlay.SetClip(r)
			c.renderPass(f)
		}
		c.data.ClearClip()
		c.overlay.ClearClip()
	}

	lasso.Logger().Debug("frame rendered",
		"visible", len(f.Visible),
		"polygons", len(f.Polygons),
		"elapsed", time.Since(start))
}

// takeDirty returns the dirty rects to redraw, or nil for a full redraw.
func (c *Compositor) takeDirty() []image.Rectangle {
	if c.tracker == nil {
		return nil
	}
	if c.tracker.IsEmpty() {
		c.tracker.MarkAll()
	}
	return c.tracker.TakeRects()
}

// renderPass draws the whole frame into the current clip.
func (c *Compositor) renderPass(f lasso.Frame) {
	c.data.Clear(c.opts.background)
	c.overlay.Clear(lasso.Transparent)

	if f.Transform == nil {
		return
	}

	// Memoize each visible record's screen position once.
	screen := make(map[int]lasso.Point, len(f.Visible))
	for _, i := range f.Visible {
		base, ok := f.Transform.ProjectRecord(f.Dataset, i)
		if !ok {
			continue
		}
		screen[i] = f.Transform.Denormalize(base)
	}

	unselected, groups := c.partition(f)

	// Pass 2: unselected points, one batch.
	c.data.FillDots(points(unselected, screen),
		c.opts.dotRadius, c.opts.baseColor.WithAlpha(c.opts.baseAlpha))

	// Pass 3: selected points, one batch per first-containing polygon.
	for _, p := range f.Polygons {
		idxs := groups[p.ID]
		if len(idxs) == 0 {
			continue
		}
		c.data.FillDots(points(idxs, screen),
			c.opts.dotRadius, p.DotColor.WithAlpha(c.opts.baseAlpha))
	}

	// Pass 4: overlay dots per (record, containing polygon).
	for _, p := range f.Polygons {
		if !p.Active() {
			continue
		}
		set := f.Selection.Set(p.ID)
		if len(set) == 0 {
			continue
		}
		var centers []lasso.Point
		for _, i := range f.Visible {
			if !set.Contains(i) {
				continue
			}
			if pt, ok := screen[i]; ok {
				centers = append(centers, pt)
			}
		}
		c.data.FillDots(centers, c.opts.dotRadius, p.Fill.WithAlpha(c.opts.overlayAlpha))
	}

	// Pass 5: polygon fills then strokes on the overlay layer. Vertices
	// are stored viewport-normalized; map them to screen coordinates.
	for _, p := range f.Polygons {
		if !p.Active() {
			continue
		}
		vs := make([]lasso.Point, len(p.Vertices))
		for i, v := range p.Vertices {
			vs[i] = f.Transform.Denormalize(v)
		}
		c.overlay.FillRing(vs, p.Fill.WithAlpha(c.opts.overlayAlpha))
		c.overlay.StrokeRing(vs, surface.Stroke{
			Color: p.Stroke.Color,
			Width: strokeWidth(p.Stroke.Width),
			Dash:  surface.NewDash(p.Stroke.Dash...),
		})
	}
}

// partition splits the visible records into unselected indices and
// per-polygon groups keyed by the first containing polygon.
func (c *Compositor) partition(f lasso.Frame) (unselected []int, groups map[uuid.UUID][]int) {
	groups = make(map[uuid.UUID][]int)
	for _, i := range f.Visible {
		if id, ok := f.Selection.First(i); ok {
			groups[id] = append(groups[id], i)
		} else {
			unselected = append(unselected, i)
		}
	}
	return unselected, groups
}

// points maps record indices to their memoized screen positions.
func points(idxs []int, screen map[int]lasso.Point) []lasso.Point {
	out := make([]lasso.Point, 0, len(idxs))
	for _, i := range idxs {
		if p, ok := screen[i]; ok {
			out = append(out, p)
		}
	}
	return out
}

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return 1.5
	}
	return w
}

// Flatten composites the overlay layer over a snapshot of the data layer,
// producing the finished image for export.
func (c *Compositor) Flatten() *image.RGBA {
	out := c.data.Snapshot()
	flat, _ := surface.NewLayer(c.data.Width(), c.data.Height(), c.data.DPR())
	copy(flat.Image().Pix, out.Pix)
	flat.DrawOver(c.overlay.Image())
	return flat.Image()
}
