package surface

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/scatterlab/lasso"
	"github.com/scatterlab/lasso/internal/blend"
)

// ErrInvalidDimensions is returned for non-positive layer sizes.
var ErrInvalidDimensions = errors.New("surface: invalid layer dimensions")

// Layer is an addressable raster target: a premultiplied RGBA pixel
// buffer with a logical size and a device-pixel-ratio scale factor.
//
// Layers are not safe for concurrent use; the compositor owns its layers
// exclusively and draws from a single goroutine per frame.
type Layer struct {
	width  int // logical px
	height int
	dpr    float64
	img    *image.RGBA // physical px
	clip   image.Rectangle

	// stamps caches dot coverage masks keyed by physical radius.
	stamps map[float64]*dotStamp
}

// NewLayer creates a layer of the given logical size. A device pixel
// ratio <= 0 falls back to 1.
func NewLayer(width, height int, dpr float64) (*Layer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if dpr <= 0 {
		dpr = 1
	}
	pw := int(math.Ceil(float64(width) * dpr))
	ph := int(math.Ceil(float64(height) * dpr))
	return &Layer{
		width:  width,
		height: height,
		dpr:    dpr,
		img:    image.NewRGBA(image.Rect(0, 0, pw, ph)),
		clip:   image.Rect(0, 0, pw, ph),
		stamps: make(map[float64]*dotStamp),
	}, nil
}

// Width returns the logical width.
func (l *Layer) Width() int { return l.width }

// Height returns the logical height.
func (l *Layer) Height() int { return l.height }

// DPR returns the device pixel ratio.
func (l *Layer) DPR() float64 { return l.dpr }

// PhysicalBounds returns the pixel buffer bounds in physical pixels.
func (l *Layer) PhysicalBounds() image.Rectangle { return l.img.Bounds() }

// SetClip restricts subsequent drawing to the physical-pixel rectangle.
// Used by the compositor's dirty-region path; the zero strategy is no
// clip at all.
func (l *Layer) SetClip(r image.Rectangle) {
	l.clip = r.Intersect(l.img.Bounds())
}

// ClearClip removes the clip, restoring full-surface drawing.
func (l *Layer) ClearClip() {
	l.clip = l.img.Bounds()
}

// Clear fills the clipped region with the color, replacing (not blending)
// existing pixels.
func (l *Layer) Clear(c lasso.RGBA) {
	r, g, b, a := premulBytes(c)
	clip := l.clip
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		row := l.img.Pix[y*l.img.Stride+clip.Min.X*4 : y*l.img.Stride+clip.Max.X*4]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = r
			row[i+1] = g
			row[i+2] = b
			row[i+3] = a
		}
	}
}

// FillDots draws one anti-aliased disc per center in a single batched
// pass: one coverage stamp and one premultiplied color for the whole
// batch, so per-dot cost is a handful of blended spans. Centers are in
// logical coordinates.
func (l *Layer) FillDots(centers []lasso.Point, radius float64, c lasso.RGBA) {
	if len(centers) == 0 || radius <= 0 || c.A <= 0 {
		return
	}
	pr := radius * l.dpr
	stamp := l.stamp(pr)
	sr, sg, sb, sa := premulBytes(c)

	half := stamp.size / 2
	for _, ct := range centers {
		px := int(math.Round(ct.X*l.dpr)) - half
		py := int(math.Round(ct.Y*l.dpr)) - half
		l.blendStamp(stamp, px, py, sr, sg, sb, sa)
	}
}

// blendStamp composites the stamp's coverage mask at (px, py), clipped.
func (l *Layer) blendStamp(s *dotStamp, px, py int, sr, sg, sb, sa byte) {
	r := image.Rect(px, py, px+s.size, py+s.size).Intersect(l.clip)
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		srow := s.cov[(y-py)*s.size:]
		drow := l.img.Pix[y*l.img.Stride:]
		for x := r.Min.X; x < r.Max.X; x++ {
			cov := srow[x-px]
			if cov == 0 {
				continue
			}
			di := x * 4
			drow[di+0], drow[di+1], drow[di+2], drow[di+3] = blend.SourceOverCoverage(
				drow[di+0], drow[di+1], drow[di+2], drow[di+3],
				sr, sg, sb, sa, cov)
		}
	}
}

// FillRing fills the closed vertex ring with the color, anti-aliased.
// Vertices are in logical coordinates. The rasterizer fills with the
// nonzero winding rule, so a self-intersecting ring renders fully filled
// even where even-odd containment would exclude the crossover region.
func (l *Layer) FillRing(vs []lasso.Point, c lasso.RGBA) {
	if len(vs) < 3 || c.A <= 0 {
		return
	}
	ras, bounds := l.ringRasterizer(vs)
	if ras == nil {
		return
	}
	ras.Draw(l.img, bounds, image.NewUniform(c.Color()), image.Point{})
}

// StrokeRing strokes the closed vertex ring's outline with the style,
// honoring its dash pattern. All dash pieces accumulate into one
// rasterizer pass so the stroke is a single batched draw.
func (l *Layer) StrokeRing(vs []lasso.Point, s Stroke) {
	if len(vs) < 2 || s.Width <= 0 || s.Color.A <= 0 {
		return
	}
	w := newDashWalker(s.Dash)
	half := s.Width / 2

	var quads []lasso.Point // groups of 4 corners
	for i := range vs {
		a := vs[i]
		b := vs[(i+1)%len(vs)]
		d := b.Sub(a)
		length := a.Distance(b)
		if length == 0 {
			continue
		}
		// Unit direction and normal scaled to half width.
		ux, uy := d.X/length, d.Y/length
		nx, ny := -uy*half, ux*half
		for _, sp := range dashSpans(w, length) {
			p0 := lasso.Pt(a.X+ux*sp.start, a.Y+uy*sp.start)
			p1 := lasso.Pt(a.X+ux*sp.end, a.Y+uy*sp.end)
			quads = append(quads,
				lasso.Pt(p0.X+nx, p0.Y+ny),
				lasso.Pt(p1.X+nx, p1.Y+ny),
				lasso.Pt(p1.X-nx, p1.Y-ny),
				lasso.Pt(p0.X-nx, p0.Y-ny),
			)
		}
	}
	if len(quads) == 0 {
		return
	}

	bounds := l.quadBounds(quads)
	if bounds.Empty() {
		return
	}
	ras := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	for i := 0; i < len(quads); i += 4 {
		ras.MoveTo(phys32(quads[i].X, l.dpr, ox), phys32(quads[i].Y, l.dpr, oy))
		for j := 1; j < 4; j++ {
			ras.LineTo(phys32(quads[i+j].X, l.dpr, ox), phys32(quads[i+j].Y, l.dpr, oy))
		}
		ras.ClosePath()
	}
	ras.Draw(l.img, bounds, image.NewUniform(s.Color.Color()), image.Point{})
}

// Stroke describes how a ring outline is drawn.
type Stroke struct {
	Color lasso.RGBA
	Width float64
	Dash  *Dash
}

// ringRasterizer builds a rasterizer covering the ring's clipped physical
// bounding box with the ring as a closed path.
func (l *Layer) ringRasterizer(vs []lasso.Point) (*vector.Rasterizer, image.Rectangle) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range vs {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	bounds := image.Rect(
		int(math.Floor(minX*l.dpr))-1, int(math.Floor(minY*l.dpr))-1,
		int(math.Ceil(maxX*l.dpr))+1, int(math.Ceil(maxY*l.dpr))+1,
	).Intersect(l.clip)
	if bounds.Empty() {
		return nil, bounds
	}

	ras := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	ras.MoveTo(phys32(vs[0].X, l.dpr, ox), phys32(vs[0].Y, l.dpr, oy))
	for _, v := range vs[1:] {
		ras.LineTo(phys32(v.X, l.dpr, ox), phys32(v.Y, l.dpr, oy))
	}
	ras.ClosePath()
	return ras, bounds
}

// quadBounds returns the clipped physical bounding box of quad corners.
func (l *Layer) quadBounds(pts []lasso.Point) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX*l.dpr))-1, int(math.Floor(minY*l.dpr))-1,
		int(math.Ceil(maxX*l.dpr))+1, int(math.Ceil(maxY*l.dpr))+1,
	).Intersect(l.clip)
}

// phys32 converts a logical coordinate to rasterizer-local physical space.
func phys32(v, dpr, origin float64) float32 {
	return float32(v*dpr - origin)
}

// Image returns the layer's pixel buffer. The buffer is shared, not
// copied; callers that need a stable copy use Snapshot.
func (l *Layer) Image() *image.RGBA { return l.img }

// Snapshot returns a copy of the current layer contents.
func (l *Layer) Snapshot() *image.RGBA {
	cp := image.NewRGBA(l.img.Bounds())
	copy(cp.Pix, l.img.Pix)
	return cp
}

// DrawOver composites src over the layer's full surface. Used to flatten
// the overlay layer onto the data layer for export.
func (l *Layer) DrawOver(src image.Image) {
	draw.Draw(l.img, l.img.Bounds(), src, src.Bounds().Min, draw.Over)
}

// RGBAAt returns the premultiplied pixel at physical coordinates.
func (l *Layer) RGBAAt(x, y int) color.RGBA { return l.img.RGBAAt(x, y) }

// dotStamp is a cached anti-aliased disc coverage mask.
type dotStamp struct {
	size int
	cov  []byte
}

// stamp returns the cached coverage mask for a physical radius, building
// it on first use. Coverage at each pixel center approximates the disc
// edge with a half-pixel linear ramp.
func (l *Layer) stamp(radius float64) *dotStamp {
	if s, ok := l.stamps[radius]; ok {
		return s
	}
	size := 2*int(math.Ceil(radius)) + 1
	s := &dotStamp{size: size, cov: make([]byte, size*size)}
	c := float64(size / 2)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c)
			v := radius - d + 0.5
			if v <= 0 {
				continue
			}
			if v > 1 {
				v = 1
			}
			s.cov[y*size+x] = byte(math.Round(v * 255))
		}
	}
	l.stamps[radius] = s
	return s
}

// premulBytes converts a color to premultiplied RGBA bytes.
func premulBytes(c lasso.RGBA) (byte, byte, byte, byte) {
	r := byte(clampByte(c.R * 255))
	g := byte(clampByte(c.G * 255))
	b := byte(clampByte(c.B * 255))
	a := byte(clampByte(c.A * 255))
	return blend.Premultiply(r, g, b, a)
}

func clampByte(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return math.Round(x)
}
