package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sandroTonali8/canvas-2d/internal/canvas"
	"github.com/sandroTonali8/canvas-2d/internal/logger"
	"github.com/sandroTonali8/canvas-2d/internal/service"
	"github.com/sandroTonali8/canvas-2d/internal/ui"
	"github.com/sandroTonali8/canvas-2d/internal/view"
)

var (
	backgroundColor = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	pageColor       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	borderColor     = color.RGBA{A: 0xff}
	buttonColor     = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	buttonHover     = color.RGBA{R: 0x77, G: 0x77, B: 0x77, A: 0xff}
	buttonBorder    = color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
)

type Game struct {
	viewer *ui.Viewer

	// surfaceImage mirrors the viewer's surface on the GPU. It is rewritten
	// only when the surface generation moves.
	surfaceImage *ebiten.Image
	uploadedGen  uint64
	uploaded     bool
}

// pollInput gathers all raw input events for the current frame into an InputState.
func (g *Game) pollInput() ui.InputState {
	_, wheelY := ebiten.Wheel()
	mx, my := ebiten.CursorPosition()
	return ui.InputState{
		Quit:    inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Invert:  inpututil.IsKeyJustPressed(ebiten.KeyN),
		Reset:   inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.Key0),
		ZoomIn:  inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd),
		ZoomOut: inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract),

		// Mouse state
		WheelY:       wheelY,
		PressStart:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		PressRelease: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		MouseX:       mx,
		MouseY:       my,
	}
}

func (g *Game) Update() error {
	// 1. Poll all input at the beginning of the frame.
	input := g.pollInput()
	if input.Quit {
		return ebiten.Termination
	}

	// 2. A drop is a file selection. One with no usable file is fatal.
	if dropped := ebiten.DroppedFiles(); dropped != nil {
		if err := g.viewer.OpenDropped(dropped); err != nil {
			return fmt.Errorf("file selection: %w", err)
		}
	}

	// 3. Apply a finished background decode.
	g.viewer.Update()

	// 4. Pointer, wheel, keys and toolbar.
	return g.viewer.HandleInput(input)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	layout := g.viewer.Layout()
	surface := g.viewer.Surface()

	if g.surfaceImage == nil {
		g.surfaceImage = ebiten.NewImage(surface.Width(), surface.Height())
	}
	if !g.uploaded || surface.Generation() != g.uploadedGen {
		g.surfaceImage.WritePixels(surface.RGBA().Pix)
		g.uploadedGen = surface.Generation()
		g.uploaded = true
	}

	sx, sy := float32(layout.Surface.Min.X), float32(layout.Surface.Min.Y)
	sw, sh := float32(layout.Surface.Dx()), float32(layout.Surface.Dy())
	vector.DrawFilledRect(screen, sx, sy, sw, sh, pageColor, false)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(sx), float64(sy))
	screen.DrawImage(g.surfaceImage, op)
	vector.StrokeRect(screen, sx-1, sy-1, sw+2, sh+2, 1, borderColor, false)

	g.drawToolbar(screen)
	ebitenutil.DebugPrintAt(screen, g.viewer.Status(), layout.Status.X, layout.Status.Y)
}

// drawToolbar paints the action buttons, highlighting the one under the cursor.
func (g *Game) drawToolbar(screen *ebiten.Image) {
	cursor := image.Pt(ebiten.CursorPosition())
	for _, b := range g.viewer.Toolbar().Buttons() {
		x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
		w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
		fill := buttonColor
		if cursor.In(b.Rect) {
			fill = buttonHover
		}
		vector.DrawFilledRect(screen, x, y, w, h, fill, false)
		vector.StrokeRect(screen, x, y, w, h, 1, buttonBorder, false)
		ebitenutil.DebugPrintAt(screen, b.Label, b.Rect.Min.X+8, b.Rect.Min.Y+4)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	// The window has a fixed logical size; ebiten scales it if resized.
	w := g.viewer.Layout().Window
	return w.X, w.Y
}

// openPath queues the image named on the command line.
func (g *Game) openPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	return g.viewer.Open(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}

func main() {
	// Define command-line flags
	defaults := ui.DefaultConfig()
	size := flag.Int("size", defaults.SurfaceSize, "Edge length of the square drawing surface in pixels.")
	zoom := flag.String("zoom", defaults.ZoomMode.String(), "Wheel zoom anchor: 'cursor' or 'origin'.")
	interp := flag.String("interp", defaults.Interpolator, "Resampling: nearest, approx, bilinear or catmullrom.")
	exts := flag.String("ext", strings.Join(defaults.Extensions, ","), "Comma-separated file extensions accepted for dropped files.")
	verbose := flag.Bool("v", false, "Log debug output.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	logger.SetLogger(l)

	mode, err := view.ParseZoomMode(*zoom)
	if err != nil {
		log.Fatalf("Invalid -zoom: %v", err)
	}
	cfg := ui.Config{
		SurfaceSize:  *size,
		Padding:      defaults.Padding,
		ZoomMode:     mode,
		Interpolator: *interp,
		Extensions:   strings.Split(*exts, ","),
	}

	surface, err := canvas.New(cfg.SurfaceSize, cfg.SurfaceSize)
	if err != nil {
		log.Fatalf("Failed to create drawing surface: %v", err)
	}
	loader := service.NewLoader(service.NewImageService())
	defer loader.Close()

	viewer, err := ui.NewViewer(cfg, surface, loader)
	if err != nil {
		log.Fatalf("Failed to initialize viewer: %v", err)
	}
	game := &Game{viewer: viewer}

	if flag.NArg() > 0 {
		if err := game.openPath(flag.Arg(0)); err != nil {
			log.Fatalf("Failed to open %s: %v", flag.Arg(0), err)
		}
	}

	window := viewer.Layout().Window
	ebiten.SetWindowSize(window.X, window.Y)
	ebiten.SetWindowTitle("canvas-2d")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
