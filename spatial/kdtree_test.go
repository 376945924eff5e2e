package spatial

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPoints(n int, seed int64) ([]Point2, []int) {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]Point2, n)
	ids := make([]int, n)
	for i := range pts {
		pts[i] = Point2{X: rng.Float64() * 100, Y: rng.Float64() * 100}
		ids[i] = i
	}
	return pts, ids
}

// bruteQuery is the reference: a linear scan with the same closed-box
// containment rule.
func bruteQuery(pts []Point2, ids []int, min, max Point2) []int {
	var out []int
	for i, p := range pts {
		if p.X >= min.X && p.X <= max.X && p.Y >= min.Y && p.Y <= max.Y {
			out = append(out, ids[i])
		}
	}
	return out
}

func TestIndex_QueryMatchesBruteForce(t *testing.T) {
	pts, ids := randomPoints(500, 7)
	ix := Build(pts, ids)
	require.Equal(t, 500, ix.Len())

	boxes := []struct{ min, max Point2 }{
		{Point2{0, 0}, Point2{100, 100}},
		{Point2{25, 25}, Point2{75, 75}},
		{Point2{0, 0}, Point2{10, 10}},
		{Point2{99.5, 99.5}, Point2{100, 100}},
		{Point2{50, 50}, Point2{50, 50}},
		{Point2{-10, -10}, Point2{-1, -1}},
	}
	for _, b := range boxes {
		got := ix.Query(b.min, b.max)
		want := bruteQuery(pts, ids, b.min, b.max)
		sort.Ints(got)
		sort.Ints(want)
		assert.Equal(t, want, got, "box %v..%v", b.min, b.max)
	}
}

func TestIndex_QueryClosedBounds(t *testing.T) {
	pts := []Point2{{1, 1}, {2, 2}, {3, 3}}
	ix := Build(pts, []int{10, 20, 30})

	// Points exactly on the box edge are included.
	got := ix.Query(Point2{1, 1}, Point2{2, 2})
	sort.Ints(got)
	assert.Equal(t, []int{10, 20}, got)
}

func TestIndex_SkipsNonFinite(t *testing.T) {
	pts := []Point2{
		{1, 1},
		{math.NaN(), 2},
		{3, math.Inf(1)},
		{4, 4},
	}
	ix := Build(pts, []int{0, 1, 2, 3})
	assert.Equal(t, 2, ix.Len())

	got := ix.Query(Point2{math.Inf(-1), math.Inf(-1)}, Point2{math.Inf(1), math.Inf(1)})
	sort.Ints(got)
	assert.Equal(t, []int{0, 3}, got)
}

func TestIndex_Empty(t *testing.T) {
	ix := Build(nil, nil)
	assert.Equal(t, 0, ix.Len())
	assert.Nil(t, ix.Query(Point2{0, 0}, Point2{1, 1}))

	min, max := ix.Bounds()
	assert.True(t, math.IsInf(min.X, 1))
	assert.True(t, math.IsInf(max.X, -1))
}

func TestIndex_InvertedBox(t *testing.T) {
	pts, ids := randomPoints(10, 1)
	ix := Build(pts, ids)
	assert.Nil(t, ix.Query(Point2{10, 10}, Point2{0, 0}))
}

func TestIndex_DuplicatePositions(t *testing.T) {
	pts := []Point2{{5, 5}, {5, 5}, {5, 5}, {1, 1}}
	ix := Build(pts, []int{0, 1, 2, 3})

	got := ix.Query(Point2{5, 5}, Point2{5, 5})
	sort.Ints(got)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestIndex_Bounds(t *testing.T) {
	pts := []Point2{{-3, 7}, {12, -1}, {4, 4}}
	ix := Build(pts, []int{0, 1, 2})
	min, max := ix.Bounds()
	assert.Equal(t, Point2{-3, -1}, min)
	assert.Equal(t, Point2{12, 7}, max)
}

func TestBuild_LengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		Build([]Point2{{1, 1}}, []int{1, 2})
	})
}
