// Package watch re-runs an operation when the files it read change.
package watch

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"time"

	"braces.dev/errtrace"
	"github.com/fsnotify/fsnotify"
	"go.abhg.dev/docpack/internal/errdefer"
)

// DefaultDebounce is the default time a Watcher waits
// for a burst of changes to settle.
const DefaultDebounce = 100 * time.Millisecond

// RunFunc runs a single pass of the watched operation.
// It reports the files that the next pass depends on.
//
// Errors are logged and do not stop the Watcher,
// so RunFunc should report paths even if it fails
// to allow the user to fix them.
type RunFunc func(ctx context.Context) (paths []string, err error)

// Watcher watches files with fsnotify.
//
// The parent directories of files are watched
// instead of the files themselves
// so that editors which replace files on save are handled.
type Watcher struct {
	// Debounce is the time to wait after a change
	// before running again.
	// Defaults to DefaultDebounce.
	Debounce time.Duration

	// Log receives messages about changes and failed runs.
	// Optional.
	Log *log.Logger
}

// Watch calls run, and then calls it again every time
// a file it reported changes,
// until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, run RunFunc) (err error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, fsw)

	logger := w.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ws := watchSet{
		fsw:   fsw,
		log:   logger,
		files: make(map[string]struct{}),
		dirs:  make(map[string]struct{}),
	}
	runOnce := func() {
		paths, err := run(ctx)
		if err != nil {
			logger.Printf("%v", err)
		}
		ws.Update(paths)
	}
	runOnce()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !ws.Matches(ev) {
				continue
			}
			logger.Printf("Changed: %v", ev.Name)
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watch: %v", err)

		case <-timer.C:
			runOnce()
		}
	}
}

// watchSet tracks the files of interest
// and the directories being watched for them.
type watchSet struct {
	fsw   *fsnotify.Watcher
	log   *log.Logger
	files map[string]struct{}
	dirs  map[string]struct{}
}

// Update replaces the set of files of interest.
func (ws *watchSet) Update(paths []string) {
	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			ws.log.Printf("watch: %v", err)
			continue
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range ws.dirs {
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := ws.fsw.Remove(dir); err != nil {
			ws.log.Printf("watch: unwatch %v: %v", dir, err)
		}
	}
	for dir := range dirs {
		if _, ok := ws.dirs[dir]; ok {
			continue
		}
		if err := ws.fsw.Add(dir); err != nil {
			ws.log.Printf("watch: %v: %v", dir, err)
			delete(dirs, dir)
		}
	}

	ws.files = files
	ws.dirs = dirs
}

// Matches reports whether ev changes a file of interest.
func (ws *watchSet) Matches(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := ws.files[name]
	return ok
}
