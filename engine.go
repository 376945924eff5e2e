package lasso

import (
	"time"

	"github.com/scatterlab/lasso/spatial"
)

// Snapshot is one fully consistent view of the engine's inputs, owned by
// the host's state container and passed into each Update. The engine
// never mutates it.
type Snapshot struct {
	Dataset          *Dataset
	Binding          AxisBinding
	Viewport         Viewport
	Polygons         *PolygonSet
	Screen           ScreenSize
	DevicePixelRatio float64
}

// Frame is the consistent input set a frame handler draws from. It is
// assembled inside Update, so a draw pass never observes a torn state.
type Frame struct {
	Dataset          *Dataset
	Transform        *Transform
	Visible          []int // culled record indices; rendering only
	Selection        *SelectionMap
	Polygons         []*Polygon
	Screen           ScreenSize
	DevicePixelRatio float64
}

// transformKey identifies the inputs a Transform is derived from.
type transformKey struct {
	gen     uint64
	binding AxisBinding
	vp      Viewport
	screen  ScreenSize
}

// indexKey identifies the inputs the spatial index is derived from.
// Viewport and screen size deliberately absent: pan/zoom never rebuilds
// the index.
type indexKey struct {
	gen     uint64
	binding AxisBinding
}

// selectionKey identifies the inputs the selection map is derived from.
// Viewport deliberately absent: pan/zoom alone never retriggers selection.
// Screen size is present: a resize moves every base-screen projection, so
// membership must be recomputed against the new transform.
type selectionKey struct {
	gen      uint64
	binding  AxisBinding
	screen   ScreenSize
	revision uint64
}

// Engine ties the pipeline together: on each Update it rebuilds the
// coordinate transform and spatial index if (and only if) their inputs
// changed, re-culls the visible subset, recomputes selection if its inputs
// changed, and schedules exactly one frame against the combined latest
// state.
//
// The engine holds no global state beyond these rebuildable caches; all
// inputs arrive through the Snapshot.
type Engine struct {
	opts  engineOptions
	sched FrameScheduler

	trKey transformKey
	tr    *Transform

	ixKey indexKey
	ix    *spatial.Index
	ixGen uint64

	selKey selectionKey
	sel    *SelectionMap

	frame Frame
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{opts: o}
}

// Update recomputes derived state from the snapshot and schedules one
// frame. If a previous frame is still pending it is replaced, so the
// frame that eventually fires always observes the latest combined state.
//
// Rebuild ordering is synchronous within the call: transform and index
// complete before culling and selection consume them.
func (e *Engine) Update(s Snapshot) {
	start := time.Now()

	gen := uint64(0)
	if s.Dataset != nil {
		gen = s.Dataset.Generation()
	}

	tk := transformKey{gen: gen, binding: s.Binding, vp: s.Viewport, screen: s.Screen}
	if e.tr == nil || tk != e.trKey {
		e.tr = NewTransform(s.Dataset, s.Binding, s.Viewport, s.Screen, e.opts.margins)
		e.trKey = tk
	}

	ik := indexKey{gen: gen, binding: s.Binding}
	if e.ix == nil || ik != e.ixKey {
		e.ix = buildIndex(s.Dataset, e.tr)
		e.ixKey = ik
		e.ixGen++
	}

	visible := cull(e.ix, e.tr)

	var polys []*Polygon
	var rev uint64
	if s.Polygons != nil {
		polys = s.Polygons.Ordered()
		rev = s.Polygons.Revision()
	}
	sk := selectionKey{gen: gen, binding: s.Binding, screen: s.Screen, revision: rev}
	if e.sel == nil || sk != e.selKey {
		e.sel = Select(s.Dataset, polys, e.tr)
		e.selKey = sk
	}

	dpr := s.DevicePixelRatio
	if dpr <= 0 {
		dpr = 1
	}
	e.frame = Frame{
		Dataset:          s.Dataset,
		Transform:        e.tr,
		Visible:          visible,
		Selection:        e.sel,
		Polygons:         polys,
		Screen:           s.Screen,
		DevicePixelRatio: dpr,
	}

	frame := e.frame
	if fn := e.opts.onFrame; fn != nil {
		e.sched.Schedule(func() { fn(frame) })
	}

	Logger().Debug("engine update",
		"visible", len(visible),
		"indexed", e.ix.Len(),
		"polygons", len(polys),
		"elapsed", time.Since(start))
}

// Transform returns the current coordinate transform, for host UI code
// converting pointer positions. Nil before the first Update.
func (e *Engine) Transform() *Transform { return e.tr }

// Selection returns the current selection map, for statistics panels.
// Nil before the first Update.
func (e *Engine) Selection() *SelectionMap { return e.sel }

// IndexGeneration returns an opaque counter that changes whenever the
// spatial index is rebuilt.
func (e *Engine) IndexGeneration() uint64 { return e.ixGen }

// Visible returns the most recently culled record indices. Rendering
// only; never feed this to selection.
func (e *Engine) Visible() []int { return e.frame.Visible }

// RunPendingFrame fires the latest scheduled frame handler, if any.
// Hosts call this from their paint callback. It reports whether a frame
// ran.
func (e *Engine) RunPendingFrame() bool { return e.sched.RunPending() }

// CancelPendingFrame drops any unfired frame.
func (e *Engine) CancelPendingFrame() bool { return e.sched.Cancel() }
