package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// WatcherState exposes internal state for observability.
type WatcherState struct {
	Root      string        `json:"root"`
	Interval  time.Duration `json:"interval"`
	Active    bool          `json:"active"`
	Files     int           `json:"files"`
	LastFlush *time.Time    `json:"last_flush,omitempty"`
}

// State implements introspection.Introspectable.
func (w *Watcher) State() any {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return WatcherState{
		Root:      w.root,
		Interval:  w.interval,
		Active:    w.active,
		Files:     w.files,
		LastFlush: w.lastFlush,
	}
}

// ComponentType implements introspection.Component.
func (w *Watcher) ComponentType() string {
	return "progress-watcher"
}

var _ introspection.Introspectable = (*Watcher)(nil)
var _ introspection.Component = (*Watcher)(nil)

func (w *Watcher) setActive(active bool, files int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = active
	w.files = files
}

func (w *Watcher) recordFlush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	w.lastFlush = &now
}
