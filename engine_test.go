package lasso

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(t *testing.T, n int) Snapshot {
	t.Helper()
	rows := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, []float64{
			float64(i%80) / 8,
			float64(i%60) / 6,
		})
	}
	ds := testDataset(t, rows)
	return Snapshot{
		Dataset:          ds,
		Binding:          Binding("x", "y"),
		Viewport:         unzoomed(),
		Polygons:         NewPolygonSet(0),
		Screen:           testScreen,
		DevicePixelRatio: 1,
	}
}

func TestEngine_UpdateProducesFrame(t *testing.T) {
	var frames []Frame
	eng := NewEngine(WithFrameHandler(func(f Frame) { frames = append(frames, f) }))

	snap := testSnapshot(t, 4800)
	eng.Update(snap)
	require.True(t, eng.RunPendingFrame())
	require.Len(t, frames, 1)

	f := frames[0]
	assert.Same(t, snap.Dataset, f.Dataset)
	assert.NotNil(t, f.Transform)
	assert.Len(t, f.Visible, 4800, "unzoomed viewport shows every record")
	assert.NotNil(t, f.Selection)
}

func TestEngine_FrameCoalescing(t *testing.T) {
	var ran int
	eng := NewEngine(WithFrameHandler(func(Frame) { ran++ }))

	snap := testSnapshot(t, 100)
	eng.Update(snap)
	snap.Viewport = snap.Viewport.Pan(10, 0)
	eng.Update(snap)
	snap.Viewport = snap.Viewport.Pan(10, 0)
	eng.Update(snap)

	// Three updates, one pending slot.
	assert.True(t, eng.RunPendingFrame())
	assert.False(t, eng.RunPendingFrame())
	assert.Equal(t, 1, ran)
}

func TestEngine_CancelPendingFrame(t *testing.T) {
	var ran int
	eng := NewEngine(WithFrameHandler(func(Frame) { ran++ }))

	eng.Update(testSnapshot(t, 10))
	assert.True(t, eng.CancelPendingFrame())
	assert.False(t, eng.RunPendingFrame())
	assert.Equal(t, 0, ran)
}

func TestEngine_ViewportChangeKeepsIndexAndSelection(t *testing.T) {
	eng := NewEngine()
	snap := testSnapshot(t, 200)

	p := addTestPolygon(t, eng, &snap, 200, 150, 450, 400)
	eng.Update(snap)

	ixGen := eng.IndexGeneration()
	sel := eng.Selection()
	require.NotZero(t, sel.Count(p.ID))

	snap.Viewport = snap.Viewport.ZoomAt(2, Pt(400, 300)).Pan(25, -10)
	eng.Update(snap)

	assert.Equal(t, ixGen, eng.IndexGeneration(), "pan/zoom must not rebuild the index")
	assert.Same(t, sel, eng.Selection(), "pan/zoom must not recompute selection")
}

// TestEngine_ResizeRecomputesSelection shrinks the drawing area. The
// resize moves every base-screen projection, so the selection map must be
// rebuilt against the new transform, not served from cache.
func TestEngine_ResizeRecomputesSelection(t *testing.T) {
	eng := NewEngine()
	snap := testSnapshot(t, 300)
	p := addTestPolygon(t, eng, &snap, 200, 150, 450, 400)
	eng.Update(snap)

	before := eng.Selection()
	require.NotZero(t, before.Count(p.ID))

	snap.Screen = ScreenSize{Width: 400, Height: 300}
	eng.Update(snap)

	after := eng.Selection()
	assert.NotSame(t, before, after, "resize must recompute selection")

	want := Select(snap.Dataset, snap.Polygons.Ordered(), eng.Transform())
	assert.Equal(t, want.Count(p.ID), after.Count(p.ID))
}

func TestEngine_DatasetChangeRebuildsEverything(t *testing.T) {
	eng := NewEngine()
	snap := testSnapshot(t, 50)
	eng.Update(snap)

	ixGen := eng.IndexGeneration()
	sel := eng.Selection()

	snap.Dataset = testSnapshot(t, 60).Dataset
	eng.Update(snap)

	assert.NotEqual(t, ixGen, eng.IndexGeneration())
	assert.NotSame(t, sel, eng.Selection())
}

// TestEngine_RebindRecomputesSelection swaps the bound fields. Polygon
// vertices stay fixed on screen while the records projected under them
// change, so membership must be recomputed.
func TestEngine_RebindRecomputesSelection(t *testing.T) {
	rows := [][]float64{
		{1, 9, 100},
		{9, 1, 900},
		{5, 5, 500},
	}
	ds := testDataset3(t, rows)
	snap := Snapshot{
		Dataset:          ds,
		Binding:          Binding("a", "b"),
		Viewport:         unzoomed(),
		Polygons:         NewPolygonSet(0),
		Screen:           testScreen,
		DevicePixelRatio: 1,
	}
	eng := NewEngine()
	p := addTestPolygon(t, eng, &snap, 100, 100, 400, 300)
	eng.Update(snap)

	before := eng.Selection()
	vertices := append([]Point(nil), mustGet(t, snap.Polygons, p.ID).Vertices...)

	snap.Binding = Binding("a", "c")
	eng.Update(snap)

	assert.NotSame(t, before, eng.Selection())
	assert.Equal(t, vertices, mustGet(t, snap.Polygons, p.ID).Vertices,
		"rebinding must not move polygon vertices")
}

func TestEngine_PolygonMutationRecomputesSelection(t *testing.T) {
	eng := NewEngine()
	snap := testSnapshot(t, 200)
	p := addTestPolygon(t, eng, &snap, 200, 150, 450, 400)
	eng.Update(snap)

	before := eng.Selection()
	require.NoError(t, snap.Polygons.SetVisible(p.ID, false))
	eng.Update(snap)

	after := eng.Selection()
	assert.NotSame(t, before, after)
	assert.Zero(t, after.Count(p.ID))
}

func TestEngine_CullingShrinksUnderZoom(t *testing.T) {
	eng := NewEngine()
	snap := testSnapshot(t, 1000)
	eng.Update(snap)
	all := len(eng.Visible())
	require.Equal(t, 1000, all)

	snap.Viewport = snap.Viewport.ZoomAt(4, Pt(400, 300))
	eng.Update(snap)
	assert.Less(t, len(eng.Visible()), all)
}

func TestEngine_NilDatasetTolerated(t *testing.T) {
	eng := NewEngine()
	eng.Update(Snapshot{
		Binding:  Binding("x", "y"),
		Viewport: unzoomed(),
		Screen:   testScreen,
	})
	assert.NotNil(t, eng.Transform())
	assert.Empty(t, eng.Visible())
}

// addTestPolygon runs one Update to obtain a transform, then completes a
// rectangle lasso and stores it in the snapshot's polygon set.
func addTestPolygon(t *testing.T, eng *Engine, snap *Snapshot, x0, y0, x1, y1 float64) Polygon {
	t.Helper()
	eng.Update(*snap)
	p := completedSquare(t, eng.Transform(), x0, y0, x1, y1)
	require.NoError(t, snap.Polygons.Add(p))
	return p
}

func mustGet(t *testing.T, ps *PolygonSet, id uuid.UUID) *Polygon {
	t.Helper()
	p, ok := ps.Get(id)
	require.True(t, ok)
	return p
}

func testDataset3(t *testing.T, rows [][]float64) *Dataset {
	t.Helper()
	ds, err := NewDataset(Schema{"a", "b", "c"}, rows)
	require.NoError(t, err)
	return ds
}
