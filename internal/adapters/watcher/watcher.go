package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// alwaysSkipped are never watched. Callers add the build directory so regeneration
// does not retrigger itself.
var alwaysSkipped = []string{".git", ".svn", domain.StateDirName}

const eventBufferSize = 100

// kinds maps fsnotify operations to change kinds, checked in order.
var kinds = []struct {
	op   fsnotify.Op
	kind ports.ChangeKind
}{
	{fsnotify.Write, ports.ChangeModified},
	{fsnotify.Create, ports.ChangeCreated},
	{fsnotify.Remove, ports.ChangeRemoved},
	{fsnotify.Rename, ports.ChangeRenamed},
}

// Watcher is an fsnotify backed ports.Watcher that follows newly created directories.
type Watcher struct {
	notify *fsnotify.Watcher
	logger ports.Logger
	skip   []string
	events chan ports.WatchEvent
}

// NewWatcher returns a Watcher that ignores directories named in skip as well as
// version control and state directories.
func NewWatcher(logger ports.Logger, skip ...string) (*Watcher, error) {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}

	return &Watcher{
		notify: notify,
		logger: logger,
		skip:   append(slices.Clone(alwaysSkipped), skip...),
		events: make(chan ports.WatchEvent, eventBufferSize),
	}, nil
}

// Start registers root and its subdirectories and begins forwarding events.
func (w *Watcher) Start(ctx context.Context, root string) error {
	for dir := range w.directories(root) {
		if err := w.notify.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
		}
	}

	go w.forward(ctx)
	return nil
}

// Stop releases the underlying notifier. Events ends once the forwarding loop sees it.
func (w *Watcher) Stop() error {
	return w.notify.Close()
}

// Events yields changes until the watcher stops or its context ends.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

// directories yields root and every directory below it that is not skipped.
// Unreadable directories are passed over.
func (w *Watcher) directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			switch {
			case err != nil || !d.IsDir():
				return nil //nolint:nilerr // unreadable entries are skipped
			case w.skipped(d.Name()):
				return fs.SkipDir
			case !yield(path):
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Watcher) skipped(name string) bool {
	return slices.Contains(w.skip, name)
}

func (w *Watcher) forward(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return

		case raw, ok := <-w.notify.Events:
			if !ok {
				return
			}
			ev, known := translate(raw)
			if !known {
				continue
			}
			select {
			case w.events <- ev:
			case <-ctx.Done():
				return
			}
			if ev.Kind == ports.ChangeCreated {
				w.follow(raw.Name)
			}

		case err, ok := <-w.notify.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("file watcher error: " + err.Error())
			}
		}
	}
}

// follow starts watching path when it is a newly created directory.
func (w *Watcher) follow(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.skipped(info.Name()) {
		return
	}
	for dir := range w.directories(path) {
		_ = w.notify.Add(dir)
	}
}

func translate(raw fsnotify.Event) (ports.WatchEvent, bool) {
	for _, k := range kinds {
		if raw.Has(k.op) {
			return ports.WatchEvent{Path: raw.Name, Kind: k.kind}, true
		}
	}
	return ports.WatchEvent{}, false
}
