package lasso

// AxisBinding selects which two dataset fields are treated as data-space
// x and y, and a multiplicative unit scale applied to both before domain
// computation. It is owned by the host and passed into the engine as an
// input parameter, never held as internal state.
type AxisBinding struct {
	XField    Field
	YField    Field
	UnitScale float64
}

// Binding returns an axis binding over the two fields with unit scale 1.
func Binding(x, y Field) AxisBinding {
	return AxisBinding{XField: x, YField: y, UnitScale: 1}
}

// scale returns the effective unit scale, treating the zero value as 1 so
// a literal AxisBinding{XField: ..., YField: ...} behaves sensibly.
func (b AxisBinding) scale() float64 {
	if b.UnitScale == 0 {
		return 1
	}
	return b.UnitScale
}
