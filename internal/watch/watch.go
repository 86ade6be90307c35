// Package watch reports changes to a set of files, debounced per file.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/erraggy/speclint/parser"
)

// Watcher calls a handler when a watched file changes.
//
// The parent directory of each file is watched rather than the file itself,
// so editors that save by writing a new file and renaming it over the old
// one are still seen.
type Watcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	logger    parser.Logger
	files     map[string]bool
	dirs      map[string]bool
}

// New creates a Watcher for files. Each handler call happens at least
// delay after the last event for that file.
func New(files []string, delay time.Duration, logger parser.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		watcher:   fw,
		debouncer: NewDebouncer(delay),
		logger:    parser.LoggerOrNop(logger),
		files:     make(map[string]bool),
		dirs:      make(map[string]bool),
	}
	for _, f := range files {
		if err := w.add(f); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(file string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	w.files[abs] = true

	dir := filepath.Dir(abs)
	if w.dirs[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: %s: %w", dir, err)
	}
	w.dirs[dir] = true
	w.logger.Debug("watching directory", "dir", dir)
	return nil
}

// Run delivers changes to handle until ctx is cancelled, then closes the
// watcher. Handlers run on timer goroutines.
func (w *Watcher) Run(ctx context.Context, handle func(path string)) error {
	defer w.debouncer.Stop()
	defer func() { _ = w.watcher.Close() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, handle)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, handle func(string)) {
	if !w.files[filepath.Clean(event.Name)] {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())

	path := event.Name
	w.debouncer.Debounce(path, func() { handle(path) })
}

// Debouncer delays a call until no new call for the same key has arrived
// for the configured delay.
type Debouncer struct {
	delay   time.Duration
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewDebouncer creates a Debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay, timers: make(map[string]*time.Timer)}
}

// Debounce schedules fn for key, replacing any call still pending for it.
func (d *Debouncer) Debounce(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()

		if !stopped {
			fn()
		}
	})
}

// Stop cancels every pending call. Later Debounce calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
