package ui

import (
	"fmt"

	"github.com/sandroTonali8/canvas-2d/internal/bitmap"
	"github.com/sandroTonali8/canvas-2d/internal/view"
)

// Change tells subscribers which part of the view state moved.
type Change uint8

const (
	ChangeBitmap Change = 1 << iota
	ChangeTransform
)

func (c Change) Has(flag Change) bool { return c&flag != 0 }

// ViewState owns the displayed bitmap, the pan/zoom transform and the
// transient drag anchor. Every mutation that changes the bitmap or the
// transform notifies subscribers synchronously, in subscription order,
// before the mutating call returns.
//
// ViewState is not safe for concurrent use; it belongs to the event loop.
type ViewState struct {
	bitmap    *bitmap.Bitmap
	transform view.Transform
	anchor    *view.Anchor
	mode      view.ZoomMode

	subscribers []func(Change)
}

// NewViewState creates a state with no bitmap and the identity transform.
func NewViewState(mode view.ZoomMode) *ViewState {
	return &ViewState{
		transform: view.Identity(),
		mode:      mode,
	}
}

// Subscribe registers fn to be called after every change.
func (vs *ViewState) Subscribe(fn func(Change)) {
	vs.subscribers = append(vs.subscribers, fn)
}

func (vs *ViewState) notify(c Change) {
	for _, fn := range vs.subscribers {
		fn(c)
	}
}

// Bitmap returns the current bitmap, or nil before the first load.
func (vs *ViewState) Bitmap() *bitmap.Bitmap { return vs.bitmap }

// Transform returns the current pan/zoom transform.
func (vs *ViewState) Transform() view.Transform { return vs.transform }

// Mode returns the wheel zoom mode.
func (vs *ViewState) Mode() view.ZoomMode { return vs.mode }

// Dragging reports whether a drag anchor is set.
func (vs *ViewState) Dragging() bool { return vs.anchor != nil }

// SetBitmap replaces the bitmap wholesale. The transform is kept.
func (vs *ViewState) SetBitmap(bm *bitmap.Bitmap) {
	if bm == vs.bitmap {
		return
	}
	vs.bitmap = bm
	vs.notify(ChangeBitmap)
}

// SetTransform replaces the transform, clamping the scale into range.
func (vs *ViewState) SetTransform(t view.Transform) {
	t.Scale = min(max(t.Scale, view.MinScale), view.MaxScale)
	if t == vs.transform {
		return
	}
	vs.transform = t
	vs.notify(ChangeTransform)
}

// Reset restores the initial transform and drops any drag in progress.
func (vs *ViewState) Reset() {
	vs.anchor = nil
	vs.SetTransform(view.Identity())
}

// PressStart begins a drag at pointer (px, py).
func (vs *ViewState) PressStart(px, py float64) {
	a := vs.transform.StartDrag(px, py)
	vs.anchor = &a
}

// PressMove pans while a drag is in progress; otherwise it does nothing.
func (vs *ViewState) PressMove(px, py float64) {
	if vs.anchor == nil {
		return
	}
	vs.SetTransform(vs.transform.Drag(*vs.anchor, px, py))
}

// PressEnd clears the drag anchor. It is a no-op when no drag is active.
func (vs *ViewState) PressEnd() {
	vs.anchor = nil
}

// Wheel applies one zoom step at cursor (mx, my). It works with no bitmap
// loaded; rendering is skipped until one arrives.
func (vs *ViewState) Wheel(zoomIn bool, mx, my float64) {
	vs.SetTransform(vs.transform.Zoom(vs.mode, zoomIn, mx, my))
}

func (vs *ViewState) Dump() string {
	name := "<none>"
	if vs.bitmap != nil {
		name = vs.bitmap.Name()
	}
	return fmt.Sprintf("ViewState {\nBitmap:%s\nTransform:%v\nDragging:%v\nMode:%v\n}",
		name, vs.transform, vs.Dragging(), vs.mode)
}
