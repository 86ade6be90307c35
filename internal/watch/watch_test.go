package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesCallsPerKey(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var a, b atomic.Int32
	var wg sync.WaitGroup
	wg.Add(2)
	for range 5 {
		d.Debounce("a", func() { a.Add(1); wg.Done() })
	}
	d.Debounce("b", func() { b.Add(1); wg.Done() })

	wg.Wait()
	assert.Equal(t, int32(1), a.Load())
	assert.Equal(t, int32(1), b.Load())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	d.Debounce("a", func() { calls.Add(1) })
	d.Stop()
	d.Debounce("a", func() { calls.Add(1) })

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "openapi.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("a: 1\n"), 0o600))

	w, err := New([]string{watched}, 20*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 4)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(path string) { got <- path }) }()

	// Give the watcher a moment to start before generating events.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(watched, []byte("a: 2\n"), 0o600))
	require.NoError(t, os.WriteFile(watched, []byte("a: 3\n"), 0o600))

	select {
	case path := <-got:
		abs, err := filepath.Abs(watched)
		require.NoError(t, err)
		assert.Equal(t, abs, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "openapi.yaml")}, time.Millisecond, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch:")
}
