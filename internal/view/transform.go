// Package view holds the pan/zoom state of the viewer and the arithmetic
// that moves it in response to drag and wheel input.
package view

import "fmt"

// Scale limits and wheel steps.
const (
	MinScale = 0.1
	MaxScale = 5.0

	ZoomInStep = 0.5
	// Zooming out slows down below SlowZoomBelow so the minimum is
	// approached in smaller steps.
	ZoomOutStep     = 0.5
	ZoomOutStepSlow = 0.2
	SlowZoomBelow   = 1.2
)

// ZoomMode selects how a wheel step moves the offset.
type ZoomMode int

const (
	// ZoomCursor keeps the image point under the cursor fixed on screen.
	ZoomCursor ZoomMode = iota
	// ZoomOrigin changes the scale only; the offset stays put.
	ZoomOrigin
)

func (m ZoomMode) String() string {
	switch m {
	case ZoomCursor:
		return "cursor"
	case ZoomOrigin:
		return "origin"
	}
	return fmt.Sprintf("ZoomMode(%d)", int(m))
}

// ParseZoomMode maps the names returned by String back to a ZoomMode.
func ParseZoomMode(s string) (ZoomMode, error) {
	switch s {
	case "cursor":
		return ZoomCursor, nil
	case "origin":
		return ZoomOrigin, nil
	}
	return 0, fmt.Errorf("unknown zoom mode %q (want cursor or origin)", s)
}

// Transform is the translation and uniform scale applied to the bitmap
// before it is drawn onto the surface.
type Transform struct {
	OffsetX, OffsetY float64
	Scale            float64
}

// Identity returns the initial transform: no offset, scale 1.
func Identity() Transform {
	return Transform{Scale: 1}
}

func (t Transform) String() string {
	return fmt.Sprintf("offset=(%.1f,%.1f) scale=%.2f", t.OffsetX, t.OffsetY, t.Scale)
}

// Anchor is the pointer position relative to the offset, recorded when a
// drag starts.
type Anchor struct {
	X, Y float64
}

// StartDrag records the anchor for a drag beginning at pointer (px, py).
func (t Transform) StartDrag(px, py float64) Anchor {
	return Anchor{X: px - t.OffsetX, Y: py - t.OffsetY}
}

// Drag returns t moved so that the anchor follows the pointer at (px, py).
func (t Transform) Drag(a Anchor, px, py float64) Transform {
	t.OffsetX = px - a.X
	t.OffsetY = py - a.Y
	return t
}

// NextScale returns the scale after one wheel step from scale.
func NextScale(scale float64, zoomIn bool) float64 {
	var step float64
	switch {
	case zoomIn:
		step = ZoomInStep
	case scale < SlowZoomBelow:
		step = -ZoomOutStepSlow
	default:
		step = -ZoomOutStep
	}
	return clamp(scale+step, MinScale, MaxScale)
}

// Zoom applies one wheel step. In ZoomCursor mode (mx, my) is the cursor
// position on the surface and the offset is recomputed so that the image
// point beneath it does not move.
func (t Transform) Zoom(mode ZoomMode, zoomIn bool, mx, my float64) Transform {
	old := t.Scale
	t.Scale = NextScale(old, zoomIn)
	if mode != ZoomCursor || old == 0 {
		return t
	}
	r := t.Scale / old
	t.OffsetX = mx - r*(mx-t.OffsetX)
	t.OffsetY = my - r*(my-t.OffsetY)
	return t
}

// clamp restricts a value to a given range.
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
