package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
)

// FeedbackHandler receives each feedback record found in the drop directory.
type FeedbackHandler func(ctx context.Context, fb execution.Feedback) error

// FeedbackWatcher watches a drop directory for executor feedback files.
// Executors write one JSON feedback object per file; the watcher picks up
// settled files, decodes them and hands them to the handler in file-name
// order, then removes them.
type FeedbackWatcher struct {
	dir     string
	watcher *fsnotify.Watcher
	settle  time.Duration
	handler FeedbackHandler
	onError func(error)
}

// NewFeedbackWatcher creates a watcher over the given drop directory. The
// settle window bounds how long the watcher waits after the last file event
// before draining.
func NewFeedbackWatcher(dir string, settle time.Duration, handler FeedbackHandler) (*FeedbackWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if settle == 0 {
		settle = 500 * time.Millisecond
	}
	return &FeedbackWatcher{
		dir:     dir,
		watcher: w,
		settle:  settle,
		handler: handler,
	}, nil
}

// OnError sets a callback for per-file processing errors. Without one,
// processing errors stop the watcher.
func (w *FeedbackWatcher) OnError(fn func(error)) {
	w.onError = fn
}

// Run starts the event loop. It drains any feedback already present, then
// blocks until the context is cancelled.
func (w *FeedbackWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	if err := w.drain(ctx); err != nil {
		return err
	}

	scheduler := newDrainScheduler(w.settle, func() {
		if err := w.drain(ctx); err != nil && w.onError != nil {
			w.onError(err)
		}
	})
	defer scheduler.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				scheduler.Notify()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// drain processes every feedback file currently in the drop directory.
func (w *FeedbackWatcher) drain(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read drop directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(w.dir, name)
		if err := w.process(ctx, path); err != nil {
			if w.onError == nil {
				return err
			}
			w.onError(fmt.Errorf("process %s: %w", name, err))
			continue
		}
		_ = os.Remove(path)
	}
	return nil
}

func (w *FeedbackWatcher) process(ctx context.Context, path string) error {
	// #nosec G304 -- Path is restricted to the watched drop directory
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fb execution.Feedback
	if err := json.Unmarshal(data, &fb); err != nil {
		return fmt.Errorf("decode feedback: %w", err)
	}
	return w.handler(ctx, fb)
}
