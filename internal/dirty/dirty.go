// Package dirty tracks invalidated screen regions on a tile grid.
//
// The tracker is a pure rendering optimization: the compositor may consult
// it to clear and redraw only changed tile spans instead of the full
// surface. Full-surface invalidation is always correct and is the engine's
// default strategy; the tracker is engaged only when a host opts in.
package dirty

import (
	"image"
	"math/bits"
)

// TileSize is the edge length of one tile in physical pixels.
const TileSize = 32

// Tracker records which tiles of a surface need redrawing, one bit per
// tile packed into uint64 words. The engine's frame model is single
// snapshot per draw pass, so the tracker needs no synchronization.
type Tracker struct {
	words  []uint64
	tilesX int
	tilesY int
}

// New creates a tracker covering a surface of the given pixel size.
// All tiles start dirty so the first frame is a full redraw.
// Returns nil for non-positive dimensions.
func New(width, height int) *Tracker {
	if width <= 0 || height <= 0 {
		return nil
	}
	tx := (width + TileSize - 1) / TileSize
	ty := (height + TileSize - 1) / TileSize
	t := &Tracker{
		words:  make([]uint64, (tx*ty+63)/64),
		tilesX: tx,
		tilesY: ty,
	}
	t.MarkAll()
	return t
}

// MarkRect marks every tile intersecting the pixel rectangle as dirty.
func (t *Tracker) MarkRect(r image.Rectangle) {
	if r.Empty() {
		return
	}
	tx1 := r.Min.X / TileSize
	ty1 := r.Min.Y / TileSize
	tx2 := (r.Max.X - 1) / TileSize
	ty2 := (r.Max.Y - 1) / TileSize
	if tx1 < 0 {
		tx1 = 0
	}
	if ty1 < 0 {
		ty1 = 0
	}
	if tx2 >= t.tilesX {
		tx2 = t.tilesX - 1
	}
	if ty2 >= t.tilesY {
		ty2 = t.tilesY - 1
	}
	for ty := ty1; ty <= ty2; ty++ {
		for tx := tx1; tx <= tx2; tx++ {
			idx := ty*t.tilesX + tx
			t.words[idx/64] |= 1 << (idx & 63)
		}
	}
}

// MarkAll marks every tile dirty.
func (t *Tracker) MarkAll() {
	total := t.tilesX * t.tilesY
	for i := range t.words {
		t.words[i] = ^uint64(0)
	}
	// Mask off bits beyond the last tile.
	if rem := total % 64; rem != 0 {
		t.words[len(t.words)-1] = (uint64(1) << rem) - 1
	}
}

// IsEmpty reports whether no tiles are dirty.
func (t *Tracker) IsEmpty() bool {
	for _, w := range t.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of dirty tiles.
func (t *Tracker) Count() int {
	n := 0
	for _, w := range t.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// TakeRects returns the dirty area as pixel rectangles, merging
// horizontally adjacent tiles on the same row into one span, and clears
// all dirty flags. Rectangles are clipped to the surface bounds by the
// caller.
func (t *Tracker) TakeRects() []image.Rectangle {
	var out []image.Rectangle
	for ty := 0; ty < t.tilesY; ty++ {
		runStart := -1
		for tx := 0; tx <= t.tilesX; tx++ {
			d := tx < t.tilesX && t.isDirty(tx, ty)
			switch {
			case d && runStart < 0:
				runStart = tx
			case !d && runStart >= 0:
				out = append(out, image.Rect(
					runStart*TileSize, ty*TileSize,
					tx*TileSize, (ty+1)*TileSize))
				runStart = -1
			}
		}
	}
	for i := range t.words {
		t.words[i] = 0
	}
	return out
}

func (t *Tracker) isDirty(tx, ty int) bool {
	idx := ty*t.tilesX + tx
	return t.words[idx/64]&(1<<(idx&63)) != 0
}

// TilesX returns the horizontal tile count.
func (t *Tracker) TilesX() int { return t.tilesX }

// TilesY returns the vertical tile count.
func (t *Tracker) TilesY() int { return t.tilesY }
