package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/watcher"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestWatcher_ReportsSourceChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "outputs"), 0o750))

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w := watcher.NewWatcher(log)
	require.NoError(t, w.Start(t.Context(), root, []string{"outputs"}))
	t.Cleanup(func() { _ = w.Stop() })

	// Writes below the excluded folder are dropped.
	require.NoError(t, os.WriteFile(filepath.Join(root, "outputs", "A.class"), nil, 0o600))
	target := filepath.Join(root, "src", "A.java")
	require.NoError(t, os.WriteFile(target, []byte("class A {}"), 0o600))

	events := make(chan ports.WatchEvent, 16)
	go func() {
		for event := range w.Events() {
			events <- event
		}
	}()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case event := <-events:
			assert.NotContains(t, event.Path, filepath.Join(root, "outputs"))
			if event.Path == target {
				return
			}
		case <-deadline:
			t.Fatal("no event for the source file")
		}
	}
}

func TestWatcher_StartMissingRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	w := watcher.NewWatcher(log)
	// A missing root yields no directories to watch and still starts.
	err := w.Start(t.Context(), filepath.Join(t.TempDir(), "missing"), nil)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
}

func TestWatcher_StopBeforeStart(t *testing.T) {
	w := watcher.NewWatcher(nil)
	require.NoError(t, w.Stop())
}
