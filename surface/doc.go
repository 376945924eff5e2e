// Package surface provides the raster drawing targets the compositor
// draws onto: premultiplied RGBA pixel layers with batched dot fills,
// anti-aliased polygon fills and dash-aware polygon strokes.
//
// A Layer has a logical pixel size and a device-pixel-ratio scale factor;
// all drawing coordinates are logical and are scaled to physical pixels
// internally. Layers are cleared and fully redrawn on each invalidation
// unless the compositor engages dirty-region clipping.
package surface
