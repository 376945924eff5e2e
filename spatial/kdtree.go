// Package spatial provides a static KD-tree for 2D range queries.
//
// The tree is built once over a point set and is immutable afterwards; any
// change in the underlying data requires a full rebuild. It is optimized
// for the query side: data is loaded once per axis configuration and
// queried many times per second during pan and zoom.
package spatial

import (
	"math"
	"sort"
)

// Point2 is a 2D point in data-space.
type Point2 struct {
	X, Y float64
}

// node is a KD-tree node stored in a flat array. Child links are indices
// into the node slice; -1 means no child.
type node struct {
	pt    int32 // index into the points slice
	left  int32
	right int32
	axis  uint8 // 0 = x, 1 = y
}

// Index is a static 2D range-query structure. The zero value is an empty
// index; use Build to construct a populated one.
type Index struct {
	nodes  []node
	points []Point2
	ids    []int32
	root   int32
	minPt  Point2
	maxPt  Point2
}

// Build constructs an index over the given points. ids[i] is the caller's
// identifier for points[i] (typically a record index); Query results are
// reported in terms of these ids. Non-finite points are skipped entirely —
// they are never inserted as degenerate ranges.
//
// Build panics if len(points) != len(ids); that is a wiring bug, not a
// data condition.
func Build(points []Point2, ids []int) *Index {
	if len(points) != len(ids) {
		panic("spatial: points and ids length mismatch")
	}

	ix := &Index{root: -1, minPt: Point2{math.Inf(1), math.Inf(1)}, maxPt: Point2{math.Inf(-1), math.Inf(-1)}}
	order := make([]int32, 0, len(points))
	for i, p := range points {
		if !finite(p) {
			continue
		}
		n := int32(len(ix.points))
		ix.points = append(ix.points, p)
		ix.ids = append(ix.ids, int32(ids[i]))
		order = append(order, n)
		ix.minPt.X = math.Min(ix.minPt.X, p.X)
		ix.minPt.Y = math.Min(ix.minPt.Y, p.Y)
		ix.maxPt.X = math.Max(ix.maxPt.X, p.X)
		ix.maxPt.Y = math.Max(ix.maxPt.Y, p.Y)
	}
	if len(order) == 0 {
		return ix
	}
	ix.nodes = make([]node, 0, len(order))
	ix.root = ix.build(order, 0)
	return ix
}

func finite(p Point2) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// build recursively splits the point subset at the median along the
// current axis and returns the subtree root's node index.
func (ix *Index) build(subset []int32, depth int) int32 {
	if len(subset) == 0 {
		return -1
	}
	axis := uint8(depth & 1)
	mid := len(subset) / 2
	sort.Slice(subset, func(a, b int) bool {
		pa, pb := ix.points[subset[a]], ix.points[subset[b]]
		if axis == 0 {
			return pa.X < pb.X
		}
		return pa.Y < pb.Y
	})

	idx := int32(len(ix.nodes))
	ix.nodes = append(ix.nodes, node{pt: subset[mid], axis: axis, left: -1, right: -1})
	left := ix.build(subset[:mid], depth+1)
	right := ix.build(subset[mid+1:], depth+1)
	ix.nodes[idx].left = left
	ix.nodes[idx].right = right
	return idx
}

// Len returns the number of indexed points.
func (ix *Index) Len() int { return len(ix.points) }

// Bounds returns the bounding box of the indexed points. For an empty
// index min is +Inf and max is -Inf.
func (ix *Index) Bounds() (min, max Point2) { return ix.minPt, ix.maxPt }

// Query returns the ids of all points within the closed box [min, max].
// Results are in tree order, with each indexed point reported at most
// once. Runs in O(log n + k) for k matches.
func (ix *Index) Query(min, max Point2) []int {
	if ix.root < 0 || min.X > max.X || min.Y > max.Y {
		return nil
	}
	var out []int
	ix.query(ix.root, min, max, &out)
	return out
}

func (ix *Index) query(n int32, min, max Point2, out *[]int) {
	nd := &ix.nodes[n]
	p := ix.points[nd.pt]

	if p.X >= min.X && p.X <= max.X && p.Y >= min.Y && p.Y <= max.Y {
		*out = append(*out, int(ix.ids[nd.pt]))
	}

	var v, lo, hi float64
	if nd.axis == 0 {
		v, lo, hi = p.X, min.X, max.X
	} else {
		v, lo, hi = p.Y, min.Y, max.Y
	}
	if nd.left >= 0 && lo <= v {
		ix.query(nd.left, min, max, out)
	}
	if nd.right >= 0 && hi >= v {
		ix.query(nd.right, min, max, out)
	}
}
