// Package watch implements a directory-watch daemon (pathLocker + debounce
// over fsnotify) that triggers reconversion for this module's PDF-to-HTML
// pipeline: when a watched PDF is created or modified, Convert is invoked
// at most once per debounce window, and never concurrently for the same
// path. Gated behind --watch.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// pathLocker provides per-path mutual exclusion so a slow conversion never
// overlaps a retrigger on the same file.
type pathLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPathLocker() *pathLocker {
	return &pathLocker{locks: make(map[string]*sync.Mutex)}
}

func (pl *pathLocker) Lock(path string) {
	pl.mu.Lock()
	l, ok := pl.locks[path]
	if !ok {
		l = &sync.Mutex{}
		pl.locks[path] = l
	}
	pl.mu.Unlock()
	l.Lock()
}

func (pl *pathLocker) Unlock(path string) {
	pl.mu.Lock()
	l, ok := pl.locks[path]
	pl.mu.Unlock()
	if !ok {
		return
	}
	l.Unlock()
}

// debouncer coalesces rapid event bursts (a PDF writer flushing in several
// passes) into a single callback per path.
type debouncer struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	delay  time.Duration
	onFire func(path string)
}

func newDebouncer(delay time.Duration, onFire func(path string)) *debouncer {
	return &debouncer{timers: make(map[string]*time.Timer), delay: delay, onFire: onFire}
}

func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[path]; ok {
		t.Reset(d.delay)
		return
	}
	d.timers[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()
		d.onFire(path)
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
}

// Convert is invoked once per debounced change to path. Errors are the
// caller's to log; Run does not abort the watch loop on a Convert failure.
type Convert func(path string) error

// Run watches dirs recursively for *.pdf creation/modification and calls
// convert, debounced by delay and serialized per path. It blocks until ctx
// is cancelled, then waits for any in-flight conversions to finish.
func Run(ctx context.Context, dirs []string, delay time.Duration, convert Convert) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	for _, dir := range dirs {
		if err := watchRecursive(w, dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	locker := newPathLocker()
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup

	db := newDebouncer(delay, func(path string) {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer func() { <-sem; wg.Done() }()
			locker.Lock(path)
			defer locker.Unlock(path)
			if err := convert(path); err != nil {
				fmt.Fprintf(os.Stderr, "watch: converting %s: %v\n", path, err)
			}
		}()
	})
	defer db.stop()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				wg.Wait()
				return nil
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".pdf") {
				if ev.Has(fsnotify.Create) {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						watchRecursive(w, ev.Name)
					}
				}
				continue
			}
			if ev.Has(fsnotify.Remove) {
				continue
			}
			db.trigger(ev.Name)

		case err, ok := <-w.Errors:
			if !ok {
				wg.Wait()
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		}
	}
}

func watchRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
