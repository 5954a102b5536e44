// Package canvas provides the fixed-size 2D drawing surface the viewer
// renders into. The host creates a Surface once and hands the same handle
// to every component that draws on it or reads it back.
package canvas

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Default surface edge length in pixels.
const DefaultSize = 512

// ErrNoContext is returned when a drawing surface cannot be created.
var ErrNoContext = errors.New("canvas: 2d drawing context unavailable")

// Rect is a destination rectangle in surface coordinates. Unlike
// image.Rectangle it keeps fractional positions and sizes.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Surface is an RGBA pixel buffer with draw and pixel read/write primitives.
// It is not safe for concurrent use; the event loop owns it.
type Surface struct {
	rgba *image.RGBA
	gen  uint64
}

// New allocates a transparent width x height surface.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrNoContext, width, height)
	}
	return &Surface{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.rgba.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.rgba.Rect.Dy() }

// Bounds returns the surface rectangle, always anchored at (0,0).
func (s *Surface) Bounds() image.Rectangle { return s.rgba.Rect }

// Generation increases on every write. Hosts compare it against the last
// value they uploaded to skip redundant blits.
func (s *Surface) Generation() uint64 { return s.gen }

// RGBA exposes the backing buffer for blitting. Callers must not write to it.
func (s *Surface) RGBA() *image.RGBA { return s.rgba }

// Clear resets every pixel to transparent black.
func (s *Surface) Clear() {
	clear(s.rgba.Pix)
	s.gen++
}

// DrawImage composites src over the surface, scaled to fill dst.
// Parts of dst outside the surface are clipped.
func (s *Surface) DrawImage(src image.Image, dst Rect, q draw.Transformer) {
	sr := src.Bounds()
	if dst.Empty() || sr.Empty() {
		return
	}
	sx := dst.W / float64(sr.Dx())
	sy := dst.H / float64(sr.Dy())
	m := f64.Aff3{
		sx, 0, dst.X - float64(sr.Min.X)*sx,
		0, sy, dst.Y - float64(sr.Min.Y)*sy,
	}
	q.Transform(s.rgba, m, src, sr, draw.Over, nil)
	s.gen++
}

// ImageData returns a copy of the pixels in r with straight (not
// premultiplied) alpha. The result keeps r's coordinates and is clipped to
// the surface; it is empty when r lies entirely outside.
func (s *Surface) ImageData(r image.Rectangle) *image.NRGBA {
	r = r.Intersect(s.rgba.Rect)
	out := image.NewNRGBA(r)
	if r.Empty() {
		return out
	}
	draw.Draw(out, r, s.rgba, r.Min, draw.Src)
	return out
}

// PutImageData writes img back at its own bounds, clipped to the surface.
// Pixels are replaced, not blended.
func (s *Surface) PutImageData(img *image.NRGBA) {
	r := img.Rect.Intersect(s.rgba.Rect)
	if r.Empty() {
		return
	}
	draw.Draw(s.rgba, r, img, r.Min, draw.Src)
	s.gen++
}
