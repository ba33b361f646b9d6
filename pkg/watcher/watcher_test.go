package watcher_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/packsmith/langres/pkg/watcher"
)

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	t.Run("fires once for a burst of lang file writes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		var fired atomic.Int32
		w, err := watcher.New(func() { fired.Add(1) }, watcher.WithDebounce(50*time.Millisecond))
		require.NoError(t, err)
		defer w.Close()

		w.Watch(dir)

		for i := 0; i < 3; i++ {
			path := filepath.Join(dir, "en_US.lang")
			require.NoError(t, os.WriteFile(path, []byte("k=v\n"), 0o644))
		}

		waitFor(t, func() bool { return fired.Load() >= 1 })

		// The debounce window collapses the burst; give stragglers a chance
		// to prove the count stays put.
		time.Sleep(150 * time.Millisecond)
		require.EqualValues(t, 1, fired.Load())
	})

	t.Run("ignores unrelated files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		var fired atomic.Int32
		w, err := watcher.New(func() { fired.Add(1) }, watcher.WithDebounce(20*time.Millisecond))
		require.NoError(t, err)
		defer w.Close()

		w.Watch(dir)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

		time.Sleep(150 * time.Millisecond)
		require.EqualValues(t, 0, fired.Load())
	})

	t.Run("reacts to manifest changes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		var fired atomic.Int32
		w, err := watcher.New(func() { fired.Add(1) }, watcher.WithDebounce(20*time.Millisecond))
		require.NoError(t, err)
		defer w.Close()

		w.Watch(dir)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{}"), 0o644))

		waitFor(t, func() bool { return fired.Load() >= 1 })
	})

	t.Run("tolerates unwatchable paths", func(t *testing.T) {
		t.Parallel()

		w, err := watcher.New(func() {})
		require.NoError(t, err)
		defer w.Close()

		w.Watch(filepath.Join(t.TempDir(), "does-not-exist"), "")
	})

	t.Run("no callback after close", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		var fired atomic.Int32
		w, err := watcher.New(func() { fired.Add(1) }, watcher.WithDebounce(50*time.Millisecond))
		require.NoError(t, err)

		w.Watch(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "en_US.lang"), []byte("k=v\n"), 0o644))
		require.NoError(t, w.Close())

		time.Sleep(150 * time.Millisecond)
		require.EqualValues(t, 0, fired.Load())
	})
}
