package lasso

import (
	"math"

	"github.com/google/uuid"
)

// containEpsilon pads the boundary test so points on a polygon edge count
// as inside.
const containEpsilon = 1e-9

// IndexSet is a set of record indices.
type IndexSet map[int]struct{}

// Contains reports whether the index is in the set.
func (s IndexSet) Contains(i int) bool {
	_, ok := s[i]
	return ok
}

// SelectionMap holds, per polygon, the set of record indices contained in
// it. It is derived state: recomputed whenever the dataset, the axis
// binding, or any polygon changes, and never persisted. Consumers treat it
// as an immutable snapshot.
type SelectionMap struct {
	sets  map[uuid.UUID]IndexSet
	order []uuid.UUID
}

// Set returns the index set for the polygon id. The returned set may be
// nil when the polygon selected nothing or does not exist.
func (m *SelectionMap) Set(id uuid.UUID) IndexSet {
	if m == nil {
		return nil
	}
	return m.sets[id]
}

// Count returns the number of records selected by the polygon.
func (m *SelectionMap) Count(id uuid.UUID) int {
	return len(m.Set(id))
}

// Selected reports whether record i is inside at least one polygon.
func (m *SelectionMap) Selected(i int) bool {
	if m == nil {
		return false
	}
	for _, id := range m.order {
		if m.sets[id].Contains(i) {
			return true
		}
	}
	return false
}

// First returns the id of the first polygon (insertion order) containing
// record i. ok is false when no polygon contains it.
func (m *SelectionMap) First(i int) (uuid.UUID, bool) {
	if m == nil {
		return uuid.UUID{}, false
	}
	for _, id := range m.order {
		if m.sets[id].Contains(i) {
			return id, true
		}
	}
	return uuid.UUID{}, false
}

// Order returns the polygon ids in insertion order.
func (m *SelectionMap) Order() []uuid.UUID {
	if m == nil {
		return nil
	}
	return m.order
}

// Select computes region membership for every active polygon over the
// entire dataset — never over a culled subset, so results are independent
// of the current viewport.
//
// Each record's base-screen projection is memoized once per pass, then
// tested against every polygon ring with the even-odd rule; boundary
// points count as inside. Records whose bound values are missing or
// non-finite are iterated but never contained.
//
// A nil transform is a wiring bug and panics.
func Select(ds *Dataset, polys []*Polygon, tr *Transform) *SelectionMap {
	if tr == nil {
		panic("lasso: Select called without a transform")
	}

	m := &SelectionMap{sets: make(map[uuid.UUID]IndexSet)}
	active := make([]*Polygon, 0, len(polys))
	for _, p := range polys {
		if p.Active() {
			active = append(active, p)
			m.order = append(m.order, p.ID)
			m.sets[p.ID] = make(IndexSet)
		}
	}
	if ds == nil || len(active) == 0 {
		return m
	}

	for i := 0; i < ds.Len(); i++ {
		pt, ok := tr.ProjectRecord(ds, i)
		if !ok {
			continue
		}
		for _, p := range active {
			if ringContains(p.Vertices, pt) {
				m.sets[p.ID][i] = struct{}{}
			}
		}
	}
	return m
}

// ringContains tests point containment in a closed vertex ring using the
// even-odd (ray casting) rule, with boundary points treated as inside.
func ringContains(ring []Point, pt Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if onSegment(ring[i], ring[(i+1)%n], pt) {
			return true
		}
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].X, ring[i].Y
		xj, yj := ring[j].X, ring[j].Y
		if (yi > pt.Y) != (yj > pt.Y) &&
			pt.X < (xj-xi)*(pt.Y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// onSegment reports whether pt lies on the segment ab within epsilon.
func onSegment(a, b, pt Point) bool {
	cross := (b.X-a.X)*(pt.Y-a.Y) - (b.Y-a.Y)*(pt.X-a.X)
	if math.Abs(cross) > containEpsilon*math.Max(1, a.Distance(b)) {
		return false
	}
	dot := (pt.X-a.X)*(b.X-a.X) + (pt.Y-a.Y)*(b.Y-a.Y)
	if dot < -containEpsilon {
		return false
	}
	return dot <= (b.X-a.X)*(b.X-a.X)+(b.Y-a.Y)*(b.Y-a.Y)+containEpsilon
}
