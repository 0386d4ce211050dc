package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/fpdgen/internal/adapters/watcher"
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultDebounceWindow = watcher.DefaultDebounceWindow

// Watch generates the platform once and then again whenever a descriptor, the workspace
// configuration or a tools definition changes. It blocks until ctx is done.
// Generation failures are logged and do not stop watching.
func (a *App) Watch(ctx context.Context, platformPath string, opts GenerateOptions) error {
	ws, path, err := a.loadWorkspace(platformPath)
	if err != nil {
		return err
	}

	if err := a.generate(ctx, ws, path, opts); err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, ws.Root); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()
	a.logger.Info("watching " + ws.Root + " for changes")

	var mu sync.Mutex
	root := ws.Root
	relevant := relevanceFilter(root, ws.ModulePatterns)

	regenerate := func(paths []string) {
		mu.Lock()
		defer mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		a.logger.Info(fmt.Sprintf("%d file(s) changed, regenerating", len(paths)))

		// The workspace configuration itself may be among the changes.
		current, err := a.workspaces.Load(root)
		if err != nil {
			a.logger.Error(zerr.Wrap(err, "failed to load workspace"))
			return
		}
		if err := a.generate(ctx, current, path, opts); err != nil {
			a.logger.Error(err)
		}
	}
	debouncer := watcher.NewDebouncer(a.debounce, regenerate)

	for event := range a.watcher.Events() {
		if !relevant(event.Path) {
			continue
		}
		a.logger.Debug(event.Kind.String() + " " + event.Path)
		debouncer.Add(event.Path)
	}

	// Changes still pending are dropped; a regeneration already running finishes first.
	debouncer.Stop()
	return nil
}

// relevanceFilter reports whether a changed path can affect generation: a platform or
// module descriptor, the workspace configuration or a tools definition.
func relevanceFilter(root string, modulePatterns []string) func(path string) bool {
	patterns := append([]string{
		"**/*.fpd",
		domain.WorkspaceFileName,
		"**/tools_def.txt",
	}, modulePatterns...)

	return func(path string) bool {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return false
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				return true
			}
		}
		return false
	}
}
