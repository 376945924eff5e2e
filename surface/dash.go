package surface

import "math"

// Dash defines a dash pattern for stroking: alternating dash and gap
// lengths, plus a starting offset into the pattern.
type Dash struct {
	// Array contains alternating dash/gap lengths. An odd-length array is
	// logically duplicated to an even-length pattern ([5] becomes [5, 5]).
	Array []float64

	// Offset is the starting offset into the pattern cycle.
	Offset float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// Negative lengths are normalized to their absolute value. Returns nil —
// meaning a solid line — when no lengths are given or all are zero.
func NewDash(lengths ...float64) *Dash {
	if len(lengths) == 0 {
		return nil
	}
	any := false
	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
		if l != 0 {
			any = true
		}
	}
	if !any {
		return nil
	}
	return &Dash{Array: normalized}
}

// IsDashed reports whether this represents a dashed (not solid) line.
func (d *Dash) IsDashed() bool {
	if d == nil || len(d.Array) == 0 {
		return false
	}
	for _, l := range d.Array {
		if l > 0 {
			return true
		}
	}
	return false
}

// PatternLength returns the total length of one pattern cycle, with
// odd-length arrays counted twice.
func (d *Dash) PatternLength() float64 {
	if d == nil || len(d.Array) == 0 {
		return 0
	}
	var total float64
	for _, l := range d.Array {
		total += l
	}
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// effectiveArray returns the pattern with odd-length arrays duplicated.
func (d *Dash) effectiveArray() []float64 {
	if d == nil || len(d.Array) == 0 {
		return nil
	}
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	out := make([]float64, len(d.Array)*2)
	copy(out, d.Array)
	copy(out[len(d.Array):], d.Array)
	return out
}

// dashWalker advances through a dash pattern across consecutive segments,
// carrying phase over so the pattern flows around polyline corners.
type dashWalker struct {
	pattern []float64
	idx     int     // current pattern entry
	rem     float64 // remaining length of the current entry
}

// newDashWalker starts a walker at the dash's offset. Returns nil for a
// solid line.
func newDashWalker(d *Dash) *dashWalker {
	if !d.IsDashed() {
		return nil
	}
	w := &dashWalker{pattern: d.effectiveArray()}
	w.rem = w.pattern[0]
	w.skipEmpty()

	if off := d.Offset; off > 0 {
		if cycle := d.PatternLength(); cycle > 0 {
			off = math.Mod(off, cycle)
		}
		for off > 0 {
			step := math.Min(off, w.rem)
			w.consume(step)
			off -= step
		}
	}
	return w
}

// on reports whether the walker currently sits in a dash (not a gap).
// Even pattern entries are dashes.
func (w *dashWalker) on() bool { return w.idx%2 == 0 }

// consume advances the walker by length, moving to the next pattern entry
// when the current one is exhausted.
func (w *dashWalker) consume(length float64) {
	w.rem -= length
	if w.rem <= 1e-12 {
		w.idx = (w.idx + 1) % len(w.pattern)
		w.rem = w.pattern[w.idx]
		w.skipEmpty()
	}
}

// skipEmpty steps over zero-length pattern entries.
func (w *dashWalker) skipEmpty() {
	for w.rem == 0 {
		w.idx = (w.idx + 1) % len(w.pattern)
		w.rem = w.pattern[w.idx]
	}
}

// span is a sub-interval of a segment, measured from its start point.
type span struct {
	start, end float64
}

// dashSpans splits a segment of the given length into the drawn (dash)
// sub-intervals under the walker's current phase, advancing the phase.
// A nil walker yields the whole segment.
func dashSpans(w *dashWalker, length float64) []span {
	if w == nil {
		return []span{{0, length}}
	}
	var out []span
	pos := 0.0
	for pos < length-1e-12 {
		step := math.Min(w.rem, length-pos)
		if w.on() && step > 0 {
			out = append(out, span{pos, pos + step})
		}
		w.consume(step)
		pos += step
	}
	return out
}
