package lasso

import (
	"math"

	"github.com/google/uuid"
)

// DefaultMaxPolygons is the number of completed polygons that may exist
// concurrently unless overridden on the PolygonSet.
const DefaultMaxPolygons = 50

// DefaultCloseThreshold is the pixel distance from the first vertex at
// which a new vertex auto-closes the ring.
const DefaultCloseThreshold = 10.0

// minRingArea is the enclosed area below which a ring counts as collinear
// and is rejected as invalid geometry.
const minRingArea = 1e-9

// Polygon is a completed selection region. Vertices are in base screen
// coordinates (viewport pan/zoom factored out, see Transform.Normalize),
// which anchors the region to the projected data rather than to the
// window. Polygons are immutable once complete; visibility is the only
// mutable flag, and it is toggled through the owning PolygonSet.
type Polygon struct {
	ID       uuid.UUID
	Vertices []Point
	Fill     RGBA
	Stroke   StrokeSpec
	DotColor RGBA
	Visible  bool
	Complete bool
}

// StrokeSpec describes how a polygon outline is stroked.
type StrokeSpec struct {
	Color RGBA
	Width float64
	// Dash holds alternating dash/gap lengths; empty means a solid line.
	Dash []float64
}

// Active reports whether the polygon participates in selection and
// rendering: complete, visible, and a valid ring.
func (p *Polygon) Active() bool {
	return p.Complete && p.Visible && len(p.Vertices) >= 3
}

// ringArea returns the signed shoelace area of the vertex ring.
func ringArea(vs []Point) float64 {
	if len(vs) < 3 {
		return 0
	}
	var sum float64
	for i := range vs {
		j := (i + 1) % len(vs)
		sum += vs[i].X*vs[j].Y - vs[j].X*vs[i].Y
	}
	return sum / 2
}

// DrawingStatus reports what an AddVertex call did to an in-progress ring.
type DrawingStatus int

const (
	// DrawingAccumulating means the vertex was appended and the ring is
	// still open.
	DrawingAccumulating DrawingStatus = iota
	// DrawingClosed means the vertex landed within the close threshold of
	// the first vertex and the ring auto-closed.
	DrawingClosed
	// DrawingCancelled means the vertex fell outside the plot bounds and
	// the in-progress ring was discarded.
	DrawingCancelled
)

// Drawing accumulates vertices for a polygon being drawn. It is not yet a
// Polygon: promotion happens only on a successful close. A vertex placed
// outside the plot bounds cancels the drawing without touching completed
// polygons.
type Drawing struct {
	bounds    Rect
	threshold float64
	vertices  []Point
	cancelled bool
}

// NewDrawing starts a vertex accumulator bounded by the plot box (screen
// coordinates). A non-positive threshold falls back to the default.
func NewDrawing(bounds Rect, closeThreshold float64) *Drawing {
	if closeThreshold <= 0 {
		closeThreshold = DefaultCloseThreshold
	}
	return &Drawing{bounds: bounds, threshold: closeThreshold}
}

// AddVertex appends a vertex in screen coordinates. When the vertex lands
// within the close threshold of the first vertex and at least 3 vertices
// exist, the ring closes (the closing vertex itself is not appended).
// A vertex outside the plot bounds cancels the drawing.
func (d *Drawing) AddVertex(p Point) DrawingStatus {
	if d.cancelled {
		return DrawingCancelled
	}
	if !d.bounds.Contains(p) {
		d.cancelled = true
		d.vertices = nil
		return DrawingCancelled
	}
	if len(d.vertices) >= 3 && p.Distance(d.vertices[0]) <= d.threshold {
		return DrawingClosed
	}
	d.vertices = append(d.vertices, p)
	return DrawingAccumulating
}

// Vertices returns the accumulated vertices, for preview rendering.
func (d *Drawing) Vertices() []Point { return d.vertices }

// Cancelled reports whether the drawing has been discarded.
func (d *Drawing) Cancelled() bool { return d.cancelled }

// Close attempts to promote the drawing to a completed polygon. It fails
// (ok == false, state discarded silently) when the drawing was cancelled,
// has fewer than 3 vertices, or the ring encloses no area. Vertices are
// normalized into the viewport-independent frame through tr.
func (d *Drawing) Close(tr *Transform, style PolygonStyle) (Polygon, bool) {
	if d.cancelled || len(d.vertices) < 3 {
		return Polygon{}, false
	}
	vs := make([]Point, len(d.vertices))
	for i, v := range d.vertices {
		vs[i] = tr.Normalize(v)
	}
	if math.Abs(ringArea(vs)) < minRingArea {
		return Polygon{}, false
	}
	return Polygon{
		ID:       uuid.New(),
		Vertices: vs,
		Fill:     style.Fill,
		Stroke:   style.Stroke,
		DotColor: style.DotColor,
		Visible:  true,
		Complete: true,
	}, true
}

// PolygonStyle bundles the colors a completed polygon is drawn with.
type PolygonStyle struct {
	Fill     RGBA
	Stroke   StrokeSpec
	DotColor RGBA
}

// PolygonSet owns the ordered collection of completed polygons and
// enforces the capacity limit. Order is insertion order, which determines
// compositing precedence. Every mutation bumps a revision counter so the
// engine can key selection recomputation on it.
type PolygonSet struct {
	limit    int
	polygons []*Polygon
	byID     map[uuid.UUID]*Polygon
	revision uint64
}

// NewPolygonSet creates an empty set with the given capacity.
// A non-positive limit falls back to DefaultMaxPolygons.
func NewPolygonSet(limit int) *PolygonSet {
	if limit <= 0 {
		limit = DefaultMaxPolygons
	}
	return &PolygonSet{limit: limit, byID: make(map[uuid.UUID]*Polygon)}
}

// Add appends a completed polygon. It returns ErrCapacity when the set is
// full; the existing polygons are left unchanged and the rejected polygon
// is simply dropped, matching the drawing-discard behavior.
func (s *PolygonSet) Add(p Polygon) error {
	if !p.Complete || len(p.Vertices) < 3 {
		// Invalid geometry is silently discarded, never promoted.
		return nil
	}
	if len(s.polygons) >= s.limit {
		Logger().Warn("polygon capacity reached; completion rejected",
			"limit", s.limit)
		return ErrCapacity
	}
	cp := p
	s.polygons = append(s.polygons, &cp)
	s.byID[cp.ID] = &cp
	s.revision++
	return nil
}

// Remove deletes the polygon with the given id.
func (s *PolygonSet) Remove(id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return ErrUnknownPolygon
	}
	delete(s.byID, id)
	for i, p := range s.polygons {
		if p.ID == id {
			s.polygons = append(s.polygons[:i], s.polygons[i+1:]...)
			break
		}
	}
	s.revision++
	return nil
}

// SetVisible toggles a polygon's visibility without affecting its place in
// the compositing order.
func (s *PolygonSet) SetVisible(id uuid.UUID, visible bool) error {
	p, ok := s.byID[id]
	if !ok {
		return ErrUnknownPolygon
	}
	if p.Visible != visible {
		p.Visible = visible
		s.revision++
	}
	return nil
}

// Len returns the number of completed polygons in the set.
func (s *PolygonSet) Len() int { return len(s.polygons) }

// Ordered returns the polygons in insertion order. The returned slice is
// shared; callers must not mutate it.
func (s *PolygonSet) Ordered() []*Polygon { return s.polygons }

// Get returns the polygon with the given id.
func (s *PolygonSet) Get(id uuid.UUID) (*Polygon, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Revision returns a counter that changes whenever the set mutates.
func (s *PolygonSet) Revision() uint64 { return s.revision }
