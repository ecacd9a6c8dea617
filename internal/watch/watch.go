package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches the editor's burst of writes into one regeneration.
const DefaultDebounce = 300 * time.Millisecond

// Watcher regenerates outputs whenever a watched tree changes. Events are
// debounced so a save that touches several files triggers a single rebuild.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	exclude  []string // path fragments whose events are dropped
}

// New watches the given directories. onChange runs on the watcher goroutine
// after each debounce window in which at least one event arrived. Paths
// containing any exclude fragment (the output directory, typically) are
// ignored so regeneration does not retrigger itself.
func New(dirs []string, exclude []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{fs: fsw, debounce: debounce, onChange: onChange, exclude: exclude}, nil
}

// Run blocks until ctx is cancelled or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.excluded(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onChange()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher failed: %w", err)
		}
	}
}

func (w *Watcher) excluded(name string) bool {
	for _, fragment := range w.exclude {
		if fragment != "" && strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}
