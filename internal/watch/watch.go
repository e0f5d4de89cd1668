// Package watch re-runs a mining pass whenever the input database
// file changes, debounced so a burst of writes triggers one rerun
// instead of many. It is grounded on the teacher's FileWatcher, which
// watches a JSONL file with fsnotify and falls back to polling if the
// watcher cannot be created (e.g. inotify limits exhausted).
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher triggers onChanged after debounceFor has elapsed since the
// last filesystem event on the watched path. Reruns never overlap:
// onChanged is only invoked once the previous call has returned.
type Watcher struct {
	path        string
	debounceFor time.Duration
	onChanged   func()

	watcher  *fsnotify.Watcher
	timer    *time.Timer
	mu       sync.Mutex
	running  sync.Mutex
	pollMode bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a Watcher for path. With fsnotify, onChanged runs on a
// timer goroutine once debounceFor has passed quietly since the last
// event; in polling mode it runs inside the polling goroutine on the
// first tick that sees a newer modification time.
func New(path string, debounceFor time.Duration, onChanged func()) (*Watcher, error) {
	w := &Watcher{
		path:        path,
		debounceFor: debounceFor,
		onChanged:   onChanged,
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.pollMode = true
		return w, nil
	}
	w.watcher = fsw

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch: watching directory of %s: %w", path, err)
	}
	return w, nil
}

// Start begins monitoring until ctx is canceled or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	if w.pollMode {
		w.wg.Add(1)
		go w.poll(ctx)
		return
	}

	w.wg.Add(1)
	go w.watchEvents(ctx)
}

func (w *Watcher) watchEvents(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.schedule()
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	defer w.wg.Done()
	var lastMod time.Time
	if stat, err := os.Stat(w.path); err == nil {
		lastMod = stat.ModTime()
	}
	ticker := time.NewTicker(w.debounceFor)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stat, err := os.Stat(w.path)
			if err != nil {
				continue
			}
			if stat.ModTime().After(lastMod) {
				lastMod = stat.ModTime()
				w.fire()
			}
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceFor, w.fire)
}

func (w *Watcher) fire() {
	w.running.Lock()
	defer w.running.Unlock()
	w.onChanged()
}

// Close stops monitoring and releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
