// Package bitmap defines the decoded raster image shown by the viewer.
package bitmap

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

// ErrEmpty is returned for images with no pixels.
var ErrEmpty = errors.New("bitmap: empty image")

// Bitmap is a decoded image normalized to a zero-origin RGBA buffer.
// A Bitmap is replaced wholesale on a new upload and never mutated in place.
type Bitmap struct {
	name string
	rgba *image.RGBA
}

// New copies img into a new Bitmap. name identifies the source file.
func New(name string, img image.Image) (*Bitmap, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Bitmap{name: name, rgba: rgba}, nil
}

// Name returns the name of the file the bitmap was decoded from.
func (b *Bitmap) Name() string { return b.name }

// Width returns the pixel width.
func (b *Bitmap) Width() int { return b.rgba.Rect.Dx() }

// Height returns the pixel height.
func (b *Bitmap) Height() int { return b.rgba.Rect.Dy() }

// Image returns the pixel buffer. Callers must not modify it.
func (b *Bitmap) Image() *image.RGBA { return b.rgba }

// AspectRatio returns height divided by width.
func (b *Bitmap) AspectRatio() float64 {
	return float64(b.Height()) / float64(b.Width())
}
