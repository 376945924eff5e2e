package lasso

import "errors"

// Sentinel errors returned by the polygon lifecycle and data model.
// Malformed data never produces an error; it degrades per the component
// contracts (fallback domains, excluded records). These sentinels cover
// host-visible conditions only.
var (
	// ErrCapacity is returned when completing a polygon would exceed the
	// configured polygon limit. The existing set is left unchanged.
	ErrCapacity = errors.New("lasso: polygon capacity exceeded")

	// ErrUnknownPolygon is returned when addressing a polygon id that is
	// not in the set.
	ErrUnknownPolygon = errors.New("lasso: unknown polygon id")

	// ErrSchemaMismatch is returned by NewDataset when a schema is empty
	// or contains duplicate fields.
	ErrSchemaMismatch = errors.New("lasso: invalid schema")
)
