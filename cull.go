package lasso

import "github.com/scatterlab/lasso/spatial"

// buildIndex projects every record through the binding into data-space and
// builds the spatial index over it. Records with missing or non-finite
// bound values are excluded entirely.
func buildIndex(ds *Dataset, tr *Transform) *spatial.Index {
	if ds == nil {
		return spatial.Build(nil, nil)
	}
	pts := make([]spatial.Point2, 0, ds.Len())
	ids := make([]int, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		p, ok := tr.dataPoint(ds, i)
		if !ok {
			continue
		}
		pts = append(pts, spatial.Point2{X: p.X, Y: p.Y})
		ids = append(ids, i)
	}
	return spatial.Build(pts, ids)
}

// cull returns the record indices worth drawing this frame: those whose
// data-space position falls within the transform's visible bounds.
//
// The result feeds rendering only. It must never feed the selection
// engine — selection scans the entire dataset so that region membership is
// independent of pan/zoom state.
func cull(ix *spatial.Index, tr *Transform) []int {
	b := tr.VisibleDataBounds()
	return ix.Query(
		spatial.Point2{X: b.Min.X, Y: b.Min.Y},
		spatial.Point2{X: b.Max.X, Y: b.Max.Y},
	)
}
