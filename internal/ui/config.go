package ui

import (
	"fmt"
	"image"

	"github.com/sandroTonali8/canvas-2d/internal/canvas"
	"github.com/sandroTonali8/canvas-2d/internal/render"
	"github.com/sandroTonali8/canvas-2d/internal/service"
	"github.com/sandroTonali8/canvas-2d/internal/view"
)

// Config holds the viewer settings chosen on the command line.
type Config struct {
	SurfaceSize  int           // Edge of the square drawing surface
	Padding      int           // Space around the toolbar and surface
	ZoomMode     view.ZoomMode // How wheel zoom moves the offset
	Interpolator string        // Resampling used by the renderer
	Extensions   []string      // File extensions the picker accepts
}

// DefaultConfig returns a 512x512 surface with cursor-anchored zoom.
func DefaultConfig() Config {
	return Config{
		SurfaceSize:  canvas.DefaultSize,
		Padding:      20,
		ZoomMode:     view.ZoomCursor,
		Interpolator: render.DefaultInterpolator,
		Extensions:   service.DefaultExtensions,
	}
}

// Validate reports settings the viewer cannot run with.
func (c Config) Validate() error {
	if c.SurfaceSize <= 0 {
		return fmt.Errorf("surface size must be positive, got %d", c.SurfaceSize)
	}
	if c.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %d", c.Padding)
	}
	if _, err := render.ParseInterpolator(c.Interpolator); err != nil {
		return err
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one file extension must be accepted")
	}
	return nil
}

// statusHeight leaves room for a few lines of overlay text.
const statusHeight = 80

// Layout places the toolbar, the surface and the status text inside the
// window.
type Layout struct {
	Window  image.Point     // Window size
	Toolbar image.Point     // Top-left corner of the toolbar
	Surface image.Rectangle // Where the surface is blitted
	Status  image.Point     // Top-left corner of the status text
}

// Layout computes window geometry: the toolbar on top, the surface below
// it and the status text at the bottom.
func (c Config) Layout() Layout {
	top := image.Pt(c.Padding, c.Padding)
	sy := top.Y + buttonHeight + c.Padding/2
	surface := image.Rect(c.Padding, sy, c.Padding+c.SurfaceSize, sy+c.SurfaceSize)
	status := image.Pt(c.Padding, surface.Max.Y+c.Padding/2)
	return Layout{
		Window:  image.Pt(surface.Max.X+c.Padding, status.Y+statusHeight),
		Toolbar: top,
		Surface: surface,
		Status:  status,
	}
}
