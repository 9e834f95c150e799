package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/ciphergen/pkg/core"
)

// Target is a dataset file the Watcher reports progress for.
type Target struct {
	Cipher  core.Cipher
	Variant string
	Length  int
	Total   int // expected record count
}

// Watcher follows dataset files as batch workers append to them and reports
// their record counts. It only reads; it never coordinates the writers.
type Watcher struct {
	root     string
	interval time.Duration
	logger   *slog.Logger

	mu        sync.RWMutex
	active    bool
	files     int
	lastFlush *time.Time
}

// NewWatcher watches dataset files under root. Counts are refreshed at most
// once per interval per file.
func NewWatcher(root string, interval time.Duration, logger *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{root: root, interval: interval, logger: logger}
}

type tracked struct {
	target Target
	path   string
	offset int64
	lines  int
}

// refresh counts the complete lines appended since the last call. A file that
// shrank (recreated by a new run) is recounted from the start.
func (t *tracked) refresh() error {
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() < t.offset {
		t.offset, t.lines = 0, 0
	}
	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return err
	}
	n, consumed, err := countLines(f, true)
	if err != nil {
		return err
	}
	t.lines += n
	t.offset += consumed
	return nil
}

func (t *tracked) progress() core.Progress {
	return core.Progress{Cipher: t.target.Cipher, Length: t.target.Length, Done: t.lines, Total: t.target.Total}
}

// Watch starts following targets and returns a channel of progress updates.
// The channel is closed when ctx is done.
func (w *Watcher) Watch(ctx context.Context, targets []Target) (<-chan core.Progress, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	files := make(map[string]*tracked, len(targets))
	dirs := make(map[string]bool)
	for _, tg := range targets {
		p := filepath.Clean(VariantPath(w.root, tg.Cipher, tg.Variant, tg.Length))
		files[p] = &tracked{target: tg, path: p}
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		// the directory must exist before the writers create their files
		if err := os.MkdirAll(dir, 0755); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to create dataset directory: %w", err)
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	// files written before the watch started get counted on the first tick
	dirty := make(map[string]bool)
	for p := range files {
		if _, err := os.Stat(p); err == nil {
			dirty[p] = true
		}
	}

	out := make(chan core.Progress, len(targets))
	w.setActive(true, len(files))
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer fw.Close()
		defer w.setActive(false, 0)
		return w.loop(ctx, fw, files, dirty, out)
	}, lifecycle.WithErrorHandler(func(err error) {
		w.logger.Error("progress watcher failed", "error", err)
	}))
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, files map[string]*tracked, dirty map[string]bool, out chan<- core.Progress) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	flush := func() {
		if len(dirty) > 0 {
			w.recordFlush()
		}
		for p := range dirty {
			t := files[p]
			if err := t.refresh(); err != nil {
				w.logger.Debug("progress refresh failed", "path", p, "error", err)
				continue
			}
			delete(dirty, p)
			select {
			case out <- t.progress():
			case <-ctx.Done():
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if _, ok := files[filepath.Clean(event.Name)]; ok {
				dirty[filepath.Clean(event.Name)] = true
			}

		case <-ticker.C:
			flush()

		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", err)
		}
	}
}
