package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fpdgen/internal/adapters/watcher"
	"go.trai.ch/fpdgen/internal/core/ports"
	"go.trai.ch/fpdgen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func startWatcher(t *testing.T, root string, skip ...string) <-chan ports.WatchEvent {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log, skip...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, root))
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})

	out := make(chan ports.WatchEvent, 64)
	go func() {
		defer close(out)
		for ev := range w.Events() {
			out <- ev
		}
	}()
	return out
}

func waitFor(t *testing.T, events <-chan ports.WatchEvent, path string) ports.WatchEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed before %s", path)
			if ev.Path == path {
				return ev
			}
		case <-timeout:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestWatcher_ReportsDescriptorChanges(t *testing.T) {
	root := t.TempDir()
	fpd := filepath.Join(root, "Nt32.fpd")
	require.NoError(t, os.WriteFile(fpd, []byte("<PlatformSurfaceArea/>"), 0o600))

	events := startWatcher(t, root)

	require.NoError(t, os.WriteFile(fpd, []byte("<PlatformSurfaceArea></PlatformSurfaceArea>"), 0o600))
	ev := waitFor(t, events, fpd)
	assert.Contains(t, []ports.ChangeKind{ports.ChangeModified, ports.ChangeCreated}, ev.Kind)
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	events := startWatcher(t, root)

	dir := filepath.Join(root, "PeiMain")
	require.NoError(t, os.Mkdir(dir, 0o750))
	waitFor(t, events, dir)

	// Give the watcher a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)

	msa := filepath.Join(dir, "PeiMain.msa")
	require.NoError(t, os.WriteFile(msa, []byte("<ModuleSurfaceArea/>"), 0o600))
	waitFor(t, events, msa)
}

func TestWatcher_SkipsBuildDirectory(t *testing.T) {
	root := t.TempDir()
	build := filepath.Join(root, "Build")
	require.NoError(t, os.Mkdir(build, 0o750))

	events := startWatcher(t, root, "Build")

	require.NoError(t, os.WriteFile(filepath.Join(build, "MAIN.inf"), []byte("x"), 0o600))
	marker := filepath.Join(root, "marker.fpd")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0o600))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			require.NotEqual(t, filepath.Join(build, "MAIN.inf"), ev.Path)
			if ev.Path == marker {
				return
			}
		case <-timeout:
			t.Fatal("marker event never arrived")
		}
	}
}
