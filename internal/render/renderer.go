// Package render redraws the current bitmap onto the drawing surface
// under the current view transform.
package render

import (
	"fmt"

	"golang.org/x/image/draw"

	"github.com/sandroTonali8/canvas-2d/internal/bitmap"
	"github.com/sandroTonali8/canvas-2d/internal/canvas"
	"github.com/sandroTonali8/canvas-2d/internal/logger"
	"github.com/sandroTonali8/canvas-2d/internal/view"
)

// Interpolators by name, as accepted on the command line.
var interpolators = map[string]draw.Interpolator{
	"nearest":    draw.NearestNeighbor,
	"approx":     draw.ApproxBiLinear,
	"bilinear":   draw.BiLinear,
	"catmullrom": draw.CatmullRom,
}

// DefaultInterpolator is used when no name is configured.
const DefaultInterpolator = "bilinear"

// ParseInterpolator looks up an interpolator by name.
func ParseInterpolator(name string) (draw.Interpolator, error) {
	if name == "" {
		name = DefaultInterpolator
	}
	q, ok := interpolators[name]
	if !ok {
		return nil, fmt.Errorf("unknown interpolator %q", name)
	}
	return q, nil
}

// Place computes where a bw x bh bitmap lands on a sw x sh surface.
// The width always fills the surface width at scale 1; the height follows
// the bitmap's own aspect ratio, not the surface's.
func Place(bw, bh, sw, sh int, t view.Transform) canvas.Rect {
	if bw <= 0 || bh <= 0 {
		return canvas.Rect{X: t.OffsetX, Y: t.OffsetY}
	}
	ratio := float64(bh) / float64(bw)
	return canvas.Rect{
		X: t.OffsetX,
		Y: t.OffsetY,
		W: float64(sw) * t.Scale,
		H: float64(sh) * ratio * t.Scale,
	}
}

// Renderer draws onto a surface it was given at construction.
type Renderer struct {
	surface *canvas.Surface
	interp  draw.Interpolator
}

// New returns a Renderer for s. A nil interp selects the default.
func New(s *canvas.Surface, interp draw.Interpolator) *Renderer {
	if interp == nil {
		interp = interpolators[DefaultInterpolator]
	}
	return &Renderer{surface: s, interp: interp}
}

// Render clears the surface and draws bm under t.
// A nil bitmap is skipped and leaves the surface untouched.
func (r *Renderer) Render(bm *bitmap.Bitmap, t view.Transform) {
	if bm == nil {
		return
	}
	dst := Place(bm.Width(), bm.Height(), r.surface.Width(), r.surface.Height(), t)
	r.surface.Clear()
	r.surface.DrawImage(bm.Image(), dst, r.interp)
	logger.Logger().Debug("redraw", "image", bm.Name(), "x", dst.X, "y", dst.Y, "w", dst.W, "h", dst.H)
}
