package service

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/sandroTonali8/canvas-2d/internal/bitmap"
	"github.com/sandroTonali8/canvas-2d/internal/logger"
)

var errLoaderClosed = errors.New("loader closed")

// loadJob is a request to decode one file.
type loadJob struct {
	fsys fs.FS
	name string
	seq  uint64
}

// LoadResult is the outcome of one Request.
type LoadResult struct {
	Name   string
	Bitmap *bitmap.Bitmap
	Info   *ImageInfo
	Err    error

	seq uint64
}

// Loader decodes images on a background goroutine so the event loop never
// blocks on file I/O. The event loop observes completion with Poll.
type Loader struct {
	images  *ImageService
	jobs    chan loadJob
	results chan LoadResult

	mu      sync.Mutex
	seq     uint64
	closed  bool
	stopped chan struct{}
}

// NewLoader starts the background worker.
func NewLoader(images *ImageService) *Loader {
	l := &Loader{
		images:  images,
		jobs:    make(chan loadJob, 1),
		results: make(chan LoadResult, 1),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

// Request queues name for decoding. A newer request supersedes any pending
// one; results of superseded requests are discarded. An empty name fails
// with ErrNoFile right away and queues nothing.
func (l *Loader) Request(fsys fs.FS, name string) error {
	if name == "" {
		return ErrNoFile
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return errLoaderClosed
	}
	l.seq++
	job := loadJob{fsys: fsys, name: name, seq: l.seq}
	// Replace a job the worker has not picked up yet.
	select {
	case <-l.jobs:
	default:
	}
	l.jobs <- job
	logger.Logger().Debug("load requested", "image", name)
	return nil
}

// Next blocks until the latest requested load completes or ctx is done.
func (l *Loader) Next(ctx context.Context) (LoadResult, error) {
	for {
		select {
		case r := <-l.results:
			if l.current(r.seq) {
				return r, nil
			}
		case <-ctx.Done():
			return LoadResult{}, ctx.Err()
		}
	}
}

// Poll returns the latest completed load, if any, without blocking.
// Stale results for superseded requests are dropped.
func (l *Loader) Poll() (LoadResult, bool) {
	for {
		select {
		case r := <-l.results:
			if !l.current(r.seq) {
				continue
			}
			return r, true
		default:
			return LoadResult{}, false
		}
	}
}

// Close stops the worker and waits for it to exit.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.jobs)
	l.mu.Unlock()
	// Unblock a worker waiting to deliver.
	for {
		select {
		case <-l.results:
		case <-l.stopped:
			return
		}
	}
}

func (l *Loader) current(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return seq == l.seq
}

// run is the background worker that loads full-size images.
func (l *Loader) run() {
	defer close(l.stopped)
	for job := range l.jobs {
		bm, info, err := l.images.Load(job.fsys, job.name)
		if err != nil {
			logger.Logger().Warn("image load failed", "image", job.name, "err", err)
		}
		r := LoadResult{Name: job.name, Bitmap: bm, Info: info, Err: err, seq: job.seq}
		if !l.current(job.seq) {
			continue
		}
		// Make room if an older result was never collected.
		select {
		case <-l.results:
		default:
		}
		l.results <- r
	}
}
