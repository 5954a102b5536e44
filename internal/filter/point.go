// Package filter applies per-pixel filters to regions of a drawing surface.
package filter

import (
	"errors"
	"image"

	"github.com/sandroTonali8/canvas-2d/internal/canvas"
	"github.com/sandroTonali8/canvas-2d/internal/logger"
)

var errNilPointFunc = errors.New("filter: nil PointFunc")

// PointFunc transforms one row of straight-alpha RGBA pixels. dst and src
// have the same length, a multiple of four, and may alias.
type PointFunc func(dst, src []byte)

// Point applies Fn to every row of a surface region.
type Point struct {
	Name string
	Fn   PointFunc
}

// Apply reads the pixels in r back from s, runs Fn over them in place and
// writes the result to the same region. r is clipped to the surface.
// Apply writes straight to the surface; the source bitmap is not touched.
func (f *Point) Apply(s *canvas.Surface, r image.Rectangle) error {
	if f.Fn == nil {
		return errNilPointFunc
	}
	data := s.ImageData(r)
	if data.Rect.Empty() {
		return nil
	}
	f.Process(data)
	s.PutImageData(data)
	logger.Logger().Debug("filter applied", "filter", f.Name, "rect", data.Rect)
	return nil
}

// Process runs Fn over every row of img in place.
func (f *Point) Process(img *image.NRGBA) {
	rowLen := img.Rect.Dx() * 4
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		f.Fn(row, row)
	}
}

// NewNegative returns the "negative film" filter: each of R, G and B
// becomes 255-v and alpha is left unchanged.
func NewNegative() *Point {
	return &Point{
		Name: "negative",
		Fn: func(dst, src []byte) {
			for i := 0; i+3 < len(src); i += 4 {
				dst[i] = 255 - src[i]
				dst[i+1] = 255 - src[i+1]
				dst[i+2] = 255 - src[i+2]
				dst[i+3] = src[i+3]
			}
		},
	}
}
