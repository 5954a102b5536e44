package service

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/sandroTonali8/canvas-2d/internal/logger"
)

// DefaultExtensions mirrors the picker's accept list: image/png, image/jpeg.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg"}

// errPicked stops the walk once a file is found.
var errPicked = errors.New("picked")

// FilePicker stands in for the file-picker control: it turns a selection
// (a command-line path or a set of dropped files) into at most one file.
type FilePicker struct {
	Extensions map[string]bool // Accepted extensions, lower case with dot
}

// NewFilePicker constructs a picker accepting exts, or DefaultExtensions
// when none are given.
func NewFilePicker(exts ...string) *FilePicker {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	fp := &FilePicker{Extensions: make(map[string]bool, len(exts))}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		fp.Extensions[e] = true
	}
	return fp
}

// Accepts reports whether name has an accepted extension.
func (fp *FilePicker) Accepts(name string) bool {
	return fp.Extensions[strings.ToLower(path.Ext(name))]
}

// Pick returns the first accepted regular file in fsys in lexical walk
// order. A selection with no accepted file fails with ErrNoFile.
func (fp *FilePicker) Pick(fsys fs.FS) (string, error) {
	if fsys == nil {
		return "", ErrNoFile
	}
	var picked string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !fp.Accepts(p) {
			logger.Logger().Debug("selection skipped", "file", p)
			return nil
		}
		picked = p
		return errPicked
	})
	if err != nil && !errors.Is(err, errPicked) {
		return "", err
	}
	if picked == "" {
		return "", ErrNoFile
	}
	return picked, nil
}
