package ui

import (
	"fmt"
	"image"
	"io/fs"
	"maps"
	"slices"
	"strings"

	"github.com/sandroTonali8/canvas-2d/internal/canvas"
	"github.com/sandroTonali8/canvas-2d/internal/filter"
	"github.com/sandroTonali8/canvas-2d/internal/logger"
	"github.com/sandroTonali8/canvas-2d/internal/render"
	"github.com/sandroTonali8/canvas-2d/internal/service"
)

// Viewer wires the view state, renderer, negative filter and loader
// together. All methods must be called from the event loop.
type Viewer struct {
	cfg      Config
	layout   Layout
	state    *ViewState
	surface  *canvas.Surface
	renderer *render.Renderer
	negative *filter.Point
	loader   *service.Loader
	picker   *service.FilePicker
	toolbar  *Toolbar

	info     *service.ImageInfo
	loading  string
	lastErr  error
	inverted bool
}

// NewViewer builds a viewer drawing on surface. The surface is created by
// the host; a nil surface fails with canvas.ErrNoContext.
func NewViewer(cfg Config, surface *canvas.Surface, loader *service.Loader) (*Viewer, error) {
	if surface == nil {
		return nil, canvas.ErrNoContext
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	interp, err := render.ParseInterpolator(cfg.Interpolator)
	if err != nil {
		return nil, err
	}
	layout := cfg.Layout()
	v := &Viewer{
		cfg:      cfg,
		layout:   layout,
		state:    NewViewState(cfg.ZoomMode),
		surface:  surface,
		renderer: render.New(surface, interp),
		negative: filter.NewNegative(),
		loader:   loader,
		picker:   service.NewFilePicker(cfg.Extensions...),
		toolbar:  NewToolbar(layout.Toolbar),
	}
	v.state.Subscribe(v.redraw)
	return v, nil
}

// redraw runs after every bitmap or transform change.
func (v *Viewer) redraw(Change) {
	v.renderer.Render(v.state.Bitmap(), v.state.Transform())
	// The redraw starts again from the original bitmap.
	v.inverted = false
}

// Config returns the settings the viewer was built with.
func (v *Viewer) Config() Config { return v.cfg }

// State returns the view state.
func (v *Viewer) State() *ViewState { return v.state }

// Surface returns the surface the viewer draws on.
func (v *Viewer) Surface() *canvas.Surface { return v.surface }

// Toolbar returns the toolbar layout.
func (v *Viewer) Toolbar() *Toolbar { return v.toolbar }

// Layout returns the window geometry.
func (v *Viewer) Layout() Layout { return v.layout }

// Info returns metadata of the displayed image, or nil.
func (v *Viewer) Info() *service.ImageInfo { return v.info }

// LastError returns the most recent load failure, cleared by the next
// successful load.
func (v *Viewer) LastError() error { return v.lastErr }

// Loading returns the name of the file being decoded, or "".
func (v *Viewer) Loading() string { return v.loading }

// Inverted reports whether the negative filter is currently burned into
// the surface.
func (v *Viewer) Inverted() bool { return v.inverted }

// Open starts decoding name from fsys. Completion is picked up by Update.
// An empty name fails with service.ErrNoFile and changes nothing.
func (v *Viewer) Open(fsys fs.FS, name string) error {
	if err := v.loader.Request(fsys, name); err != nil {
		return err
	}
	v.loading = name
	return nil
}

// OpenDropped opens the first accepted file of a drop or selection.
// A selection with no accepted file fails with service.ErrNoFile.
func (v *Viewer) OpenDropped(fsys fs.FS) error {
	name, err := v.picker.Pick(fsys)
	if err != nil {
		return err
	}
	return v.Open(fsys, name)
}

// Update applies a finished load, if there is one. A successful decode
// replaces the bitmap and triggers a redraw; a failed one keeps the
// current bitmap and is reported through LastError.
func (v *Viewer) Update() {
	r, ok := v.loader.Poll()
	if !ok {
		return
	}
	v.loading = ""
	if r.Err != nil {
		v.lastErr = r.Err
		logger.Logger().Warn("keeping current image", "failed", r.Name, "err", r.Err)
		return
	}
	v.lastErr = nil
	v.info = r.Info
	v.state.SetBitmap(r.Bitmap)
	logger.Logger().Info("image replaced", "image", r.Name,
		"width", r.Bitmap.Width(), "height", r.Bitmap.Height())
}

// Invert applies the negative filter to the bitmap-sized region at the
// surface origin. It writes to the surface only: the next redraw shows the
// original bitmap again. With no bitmap loaded it does nothing.
func (v *Viewer) Invert() error {
	bm := v.state.Bitmap()
	if bm == nil {
		return nil
	}
	if err := v.negative.Apply(v.surface, image.Rect(0, 0, bm.Width(), bm.Height())); err != nil {
		return err
	}
	v.inverted = !v.inverted
	return nil
}

// HandleInput applies one frame of polled input.
func (v *Viewer) HandleInput(in InputState) error {
	center := float64(v.surface.Width()) / 2
	mouse := image.Pt(in.MouseX, in.MouseY)
	// Pointer position relative to the surface.
	px := float64(in.MouseX - v.layout.Surface.Min.X)
	py := float64(in.MouseY - v.layout.Surface.Min.Y)
	overSurface := mouse.In(v.layout.Surface)

	action := ActionNone
	switch {
	case in.Invert:
		action = ActionNegative
	case in.Reset:
		action = ActionReset
	case in.ZoomIn:
		action = ActionZoomIn
	case in.ZoomOut:
		action = ActionZoomOut
	case in.PressStart:
		action = v.toolbar.HitTest(mouse)
	}
	switch action {
	case ActionNegative:
		if err := v.Invert(); err != nil {
			return err
		}
	case ActionReset:
		v.state.Reset()
	case ActionZoomIn:
		v.state.Wheel(true, center, center)
	case ActionZoomOut:
		v.state.Wheel(false, center, center)
	}

	if in.PressStart && action == ActionNone && overSurface {
		v.state.PressStart(px, py)
	}
	if v.state.Dragging() {
		v.state.PressMove(px, py)
	}
	if in.PressRelease {
		v.state.PressEnd()
	}
	if in.WheelY != 0 && overSurface {
		v.state.Wheel(in.WheelY > 0, px, py)
	}
	return nil
}

// Status describes the viewer for the host's overlay, one item per line.
func (v *Viewer) Status() string {
	var b strings.Builder
	if v.info != nil {
		fmt.Fprintf(&b, "%s (%s %dx%d)\n", v.info.Name, v.info.Format, v.info.Width, v.info.Height)
		for _, k := range slices.Sorted(maps.Keys(v.info.EXIFData)) {
			fmt.Fprintf(&b, "%s: %s\n", k, v.info.EXIFData[k])
		}
	} else {
		b.WriteString("Drop a PNG or JPEG file on the window\n")
	}
	t := v.state.Transform()
	fmt.Fprintf(&b, "Zoom: %.0f%% (%v)  Offset: %.0f,%.0f\n", t.Scale*100, v.state.Mode(), t.OffsetX, t.OffsetY)
	if v.inverted {
		b.WriteString("Negative\n")
	}
	if v.loading != "" {
		fmt.Fprintf(&b, "Loading: %s\n", v.loading)
	}
	if v.lastErr != nil {
		fmt.Fprintf(&b, "Error: %v\n", v.lastErr)
	}
	return b.String()
}
