package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string) *atomic.Int32 {
	t.Helper()
	w, err := New(path, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var calls atomic.Int32
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return &calls
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	calls := startWatcher(t, dir)

	path := filepath.Join(dir, "a.go")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("package p\n"), 0o644))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	calls := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_test.go"), []byte("package p\n"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_MissingPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.go")
	require.NoError(t, os.WriteFile(file, []byte("package p\n"), 0o644))

	pkg := &Watcher{dir: dir}
	single := &Watcher{dir: dir, only: file}

	cases := []struct {
		w    *Watcher
		ev   fsnotify.Event
		want bool
	}{
		{pkg, fsnotify.Event{Name: file, Op: fsnotify.Write}, true},
		{pkg, fsnotify.Event{Name: file, Op: fsnotify.Remove}, true},
		{pkg, fsnotify.Event{Name: file, Op: fsnotify.Chmod}, false},
		{pkg, fsnotify.Event{Name: filepath.Join(dir, "a_test.go"), Op: fsnotify.Write}, false},
		{pkg, fsnotify.Event{Name: filepath.Join(dir, "go.mod"), Op: fsnotify.Write}, false},
		{single, fsnotify.Event{Name: file, Op: fsnotify.Create}, true},
		{single, fsnotify.Event{Name: filepath.Join(dir, "b.go"), Op: fsnotify.Write}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.w.relevant(tc.ev), tc.ev.String())
	}
}
