// Package lasso implements the point-selection rendering engine behind a
// scatter-plot visualization: it maps large 2D datasets onto raster drawing
// surfaces, culls off-screen records through a static spatial index, lets a
// host application accumulate closed polygonal selection regions over the
// rendered points, and computes region membership over the full dataset
// independent of the current viewport.
//
// The root package holds the data model (Dataset, AxisBinding, Viewport,
// Polygon), the coordinate transform, the selection engine, and the Engine
// facade that ties them together. Rasterization lives in lasso/surface and
// the layered compositor in lasso/render.
//
// By default lasso produces no log output. Call SetLogger to enable
// diagnostics.
package lasso
