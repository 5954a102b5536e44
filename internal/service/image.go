// Package service provides image loading and metadata extraction services.
package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/sandroTonali8/canvas-2d/internal/bitmap"
	"github.com/sandroTonali8/canvas-2d/internal/logger"
)

var (
	// ErrNoFile is returned when a selection carries no file.
	ErrNoFile = errors.New("no file selected")
	// ErrDecode wraps every failure to turn file bytes into pixels.
	ErrDecode = errors.New("cannot decode image")
)

// ImageInfo holds metadata about an image.
type ImageInfo struct {
	Name     string
	Format   string
	Width    int
	Height   int
	Size     int64
	ModTime  time.Time
	EXIFData map[string]string
}

// ImageService provides methods for loading and decoding images.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Load reads name from fsys and decodes it into a Bitmap.
// An empty name fails with ErrNoFile.
func (is *ImageService) Load(fsys fs.FS, name string) (*bitmap.Bitmap, *ImageInfo, error) {
	if name == "" {
		return nil, nil, ErrNoFile
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", name, err)
	}
	bm, info, err := is.Decode(name, data)
	if err != nil {
		return nil, nil, err
	}
	if fi, err := fs.Stat(fsys, name); err == nil {
		info.ModTime = fi.ModTime()
	}
	return bm, info, nil
}

// Decode turns encoded image bytes into a Bitmap plus its metadata.
func (is *ImageService) Decode(name string, data []byte) (*bitmap.Bitmap, *ImageInfo, error) {
	// Read dimensions first so unsupported files fail before a full decode.
	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w %s: decoding image config: %v", ErrDecode, name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w %s: %v", ErrDecode, name, err)
	}
	bm, err := bitmap.New(name, img)
	if err != nil {
		return nil, nil, fmt.Errorf("%w %s: %v", ErrDecode, name, err)
	}

	info := &ImageInfo{
		Name:     name,
		Format:   format,
		Width:    config.Width,
		Height:   config.Height,
		Size:     int64(len(data)),
		EXIFData: exifFields(bytes.NewReader(data)),
	}
	return bm, info, nil
}

// exifFields extracts a few display fields. EXIF is optional; anything
// missing is simply left out.
func exifFields(r io.Reader) map[string]string {
	fields := make(map[string]string)
	x, err := exif.Decode(r)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			logger.Logger().Debug("no exif data", "err", err)
		}
		return fields
	}
	if camModel, err := x.Get(exif.Model); err == nil {
		if s, err := camModel.StringVal(); err == nil {
			fields["Camera Model"] = s
		}
	}
	if fNum, err := x.Get(exif.FNumber); err == nil {
		if numer, denom, err := fNum.Rat2(0); err == nil && denom != 0 {
			fields["F-Number"] = fmt.Sprintf("f/%.1f", float64(numer)/float64(denom))
		}
	}
	if expTime, err := x.Get(exif.ExposureTime); err == nil {
		if numer, denom, err := expTime.Rat2(0); err == nil {
			fields["Exposure Time"] = fmt.Sprintf("%d/%d s", numer, denom)
		}
	}
	return fields
}
