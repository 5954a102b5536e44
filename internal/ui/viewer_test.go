package ui

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/sandroTonali8/canvas-2d/internal/canvas"
	"github.com/sandroTonali8/canvas-2d/internal/service"
	"github.com/sandroTonali8/canvas-2d/internal/view"
)

var (
	orange   = color.RGBA{R: 200, G: 50, B: 10, A: 255}
	inverted = color.RGBA{R: 55, G: 205, B: 245, A: 255}
)

func pngBytes(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func imagesFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"orange.png":  {Data: pngBytes(t, 64, 32, orange)},
		"small.png":   {Data: pngBytes(t, 8, 8, color.RGBA{B: 255, A: 255})},
		"corrupt.png": {Data: []byte("garbage")},
		"readme.txt":  {Data: []byte("not an image")},
	}
}

func newTestViewer(t *testing.T) *Viewer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Interpolator = "nearest"
	s, err := canvas.New(cfg.SurfaceSize, cfg.SurfaceSize)
	if err != nil {
		t.Fatalf("canvas.New: %v", err)
	}
	loader := service.NewLoader(service.NewImageService())
	t.Cleanup(loader.Close)
	v, err := NewViewer(cfg, s, loader)
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	return v
}

// load opens name and pumps Update until the loader reports back.
func load(t *testing.T, v *Viewer, fsys fstest.MapFS, name string) {
	t.Helper()
	if err := v.Open(fsys, name); err != nil {
		t.Fatalf("Open(%s): %v", name, err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for v.Loading() != "" {
		if time.Now().After(deadline) {
			t.Fatalf("timed out loading %s", name)
		}
		v.Update()
		time.Sleep(time.Millisecond)
	}
}

func pixel(v *Viewer, x, y int) color.RGBA {
	return v.Surface().RGBA().RGBAAt(x, y)
}

func TestNewViewerNilSurface(t *testing.T) {
	_, err := NewViewer(DefaultConfig(), nil, nil)
	if !errors.Is(err, canvas.ErrNoContext) {
		t.Errorf("NewViewer(nil surface) error = %v, want ErrNoContext", err)
	}
}

func TestViewerLoadRenders(t *testing.T) {
	v := newTestViewer(t)
	load(t, v, imagesFS(t), "orange.png")

	if v.State().Bitmap() == nil || v.Info() == nil {
		t.Fatal("bitmap not loaded")
	}
	if got := pixel(v, 300, 200); got != orange {
		t.Errorf("pixel inside image = %v, want %v", got, orange)
	}
	// 64x32 fills the width and half the height.
	if got := pixel(v, 300, 300); got != (color.RGBA{}) {
		t.Errorf("pixel below image = %v, want transparent", got)
	}
	if !strings.Contains(v.Status(), "orange.png") {
		t.Errorf("Status() = %q, want it to name the image", v.Status())
	}
}

func TestViewerOpenNoFile(t *testing.T) {
	v := newTestViewer(t)
	gen := v.Surface().Generation()

	if err := v.Open(imagesFS(t), ""); !errors.Is(err, service.ErrNoFile) {
		t.Errorf("Open(\"\") error = %v, want ErrNoFile", err)
	}
	if err := v.OpenDropped(fstest.MapFS{"readme.txt": {Data: []byte("x")}}); !errors.Is(err, service.ErrNoFile) {
		t.Errorf("OpenDropped(no images) error = %v, want ErrNoFile", err)
	}
	v.Update()
	if v.State().Bitmap() != nil || v.Loading() != "" || v.Surface().Generation() != gen {
		t.Error("a missing-file selection changed the viewer state")
	}
}

func TestViewerOpenDropped(t *testing.T) {
	v := newTestViewer(t)
	fsys := fstest.MapFS{
		"notes.txt": {Data: []byte("x")},
		"pic.png":   {Data: pngBytes(t, 8, 8, orange)},
	}
	if err := v.OpenDropped(fsys); err != nil {
		t.Fatalf("OpenDropped: %v", err)
	}
	if v.Loading() != "pic.png" {
		t.Errorf("Loading() = %q, want pic.png", v.Loading())
	}
}

func TestViewerDecodeFailureKeepsBitmap(t *testing.T) {
	v := newTestViewer(t)
	fsys := imagesFS(t)
	load(t, v, fsys, "orange.png")
	before := v.State().Bitmap()

	load(t, v, fsys, "corrupt.png")
	if !errors.Is(v.LastError(), service.ErrDecode) {
		t.Errorf("LastError() = %v, want ErrDecode", v.LastError())
	}
	if v.State().Bitmap() != before {
		t.Error("decode failure replaced the bitmap")
	}
	if got := pixel(v, 10, 10); got != orange {
		t.Errorf("surface pixel = %v, want previous image %v", got, orange)
	}
	if !strings.Contains(v.Status(), "Error:") {
		t.Errorf("Status() = %q, want an error line", v.Status())
	}

	load(t, v, fsys, "small.png")
	if v.LastError() != nil {
		t.Errorf("LastError() = %v after a good load, want nil", v.LastError())
	}
}

func TestViewerNewUploadKeepsTransform(t *testing.T) {
	v := newTestViewer(t)
	fsys := imagesFS(t)
	load(t, v, fsys, "orange.png")
	v.State().SetTransform(view.Transform{OffsetX: 12, OffsetY: 3, Scale: 2})

	load(t, v, fsys, "small.png")
	if got := v.State().Transform(); got.OffsetX != 12 || got.Scale != 2 {
		t.Errorf("Transform() = %v after upload, want it kept", got)
	}
}

func TestViewerInvertWithoutBitmap(t *testing.T) {
	v := newTestViewer(t)
	gen := v.Surface().Generation()
	if err := v.Invert(); err != nil {
		t.Fatalf("Invert: %v", err)
	}
	if v.Surface().Generation() != gen || v.Inverted() {
		t.Error("Invert without a bitmap touched the surface")
	}
}

func TestViewerInvertRegion(t *testing.T) {
	v := newTestViewer(t)
	load(t, v, imagesFS(t), "orange.png")

	if err := v.Invert(); err != nil {
		t.Fatalf("Invert: %v", err)
	}
	if got := pixel(v, 10, 10); got != inverted {
		t.Errorf("pixel in bitmap-sized region = %v, want %v", got, inverted)
	}
	// Only the bitmap's native 64x32 region at the origin is filtered.
	if got := pixel(v, 100, 10); got != orange {
		t.Errorf("pixel outside region = %v, want %v", got, orange)
	}
	if !v.Inverted() {
		t.Error("Inverted() = false after Invert")
	}
}

func TestViewerInvertTwiceRestores(t *testing.T) {
	v := newTestViewer(t)
	load(t, v, imagesFS(t), "orange.png")
	want := append([]byte(nil), v.Surface().RGBA().Pix...)

	for i := 0; i < 2; i++ {
		if err := v.Invert(); err != nil {
			t.Fatalf("Invert: %v", err)
		}
	}
	if !bytes.Equal(v.Surface().RGBA().Pix, want) {
		t.Error("double invert did not restore the surface")
	}
	if v.Inverted() {
		t.Error("Inverted() = true after two inverts")
	}
}

func TestViewerRedrawDiscardsInversion(t *testing.T) {
	v := newTestViewer(t)
	load(t, v, imagesFS(t), "orange.png")

	if err := v.Invert(); err != nil {
		t.Fatalf("Invert: %v", err)
	}
	// Any transform change redraws from the original bitmap.
	v.State().SetTransform(view.Transform{OffsetX: 1, Scale: 1})
	if got := pixel(v, 10, 10); got != orange {
		t.Fatalf("after redraw pixel = %v, want original %v", got, orange)
	}
	if v.Inverted() {
		t.Error("Inverted() still true after redraw")
	}

	// A second invert starts from the original, not the once-inverted pixels.
	if err := v.Invert(); err != nil {
		t.Fatalf("Invert: %v", err)
	}
	if got := pixel(v, 10, 10); got != inverted {
		t.Errorf("pixel = %v, want %v", got, inverted)
	}
}

func TestViewerHandleInputDragAndWheel(t *testing.T) {
	v := newTestViewer(t)
	origin := v.Layout().Surface.Min
	at := func(x, y int) (int, int) { return origin.X + x, origin.Y + y }

	mx, my := at(50, 60)
	v.HandleInput(InputState{PressStart: true, MouseX: mx, MouseY: my})
	if !v.State().Dragging() {
		t.Fatal("press on the surface did not start a drag")
	}
	mx, my = at(70, 90)
	v.HandleInput(InputState{MouseX: mx, MouseY: my})
	if got := v.State().Transform(); got.OffsetX != 20 || got.OffsetY != 30 {
		t.Errorf("offset after drag = (%v,%v), want (20,30)", got.OffsetX, got.OffsetY)
	}
	v.HandleInput(InputState{PressRelease: true, MouseX: mx, MouseY: my})
	if v.State().Dragging() {
		t.Error("release did not end the drag")
	}

	v.State().Reset()
	mx, my = at(100, 100)
	v.HandleInput(InputState{WheelY: 1, MouseX: mx, MouseY: my})
	want := view.Transform{OffsetX: -50, OffsetY: -50, Scale: 1.5}
	if got := v.State().Transform(); got != want {
		t.Errorf("after wheel Transform() = %v, want %v", got, want)
	}

	// Wheel outside the surface is ignored.
	v.HandleInput(InputState{WheelY: -1, MouseX: 0, MouseY: 0})
	if got := v.State().Transform(); got != want {
		t.Errorf("wheel outside surface changed Transform() to %v", got)
	}
}

func TestViewerToolbarClick(t *testing.T) {
	v := newTestViewer(t)
	load(t, v, imagesFS(t), "orange.png")

	var negative, zoomIn image.Point
	for _, b := range v.Toolbar().Buttons() {
		switch b.Action {
		case ActionNegative:
			negative = b.Rect.Min.Add(image.Pt(2, 2))
		case ActionZoomIn:
			zoomIn = b.Rect.Min.Add(image.Pt(2, 2))
		}
	}

	v.HandleInput(InputState{PressStart: true, MouseX: negative.X, MouseY: negative.Y})
	if !v.Inverted() {
		t.Error("Negative button did not invert")
	}
	if v.State().Dragging() {
		t.Error("toolbar click started a drag")
	}
	v.HandleInput(InputState{PressRelease: true, MouseX: negative.X, MouseY: negative.Y})

	v.HandleInput(InputState{PressStart: true, MouseX: zoomIn.X, MouseY: zoomIn.Y})
	if got := v.State().Transform().Scale; got != 1.5 {
		t.Errorf("scale after Zoom + = %v, want 1.5", got)
	}
	if v.Inverted() {
		t.Error("zoom redraw should discard the inversion")
	}

	v.HandleInput(InputState{Reset: true})
	if v.State().Transform() != view.Identity() {
		t.Errorf("Transform() = %v after reset, want identity", v.State().Transform())
	}
}
