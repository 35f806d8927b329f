package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *collector) handle(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *collector) snapshot() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func newStarted(t *testing.T, opts ...Option) (*Watcher, *collector) {
	t.Helper()
	w, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	c := &collector{}
	w.OnChange(c.handle)
	return w, c
}

func TestNew(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	assert.Equal(t, 100*time.Millisecond, w.debounce)
	assert.False(t, w.IsRunning())

	w2, err := New(WithDebounce(50 * time.Millisecond))
	require.NoError(t, err)
	defer w2.Stop()
	assert.Equal(t, 50*time.Millisecond, w2.debounce)
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, OpCreate, coalesce(OpCreate, OpWrite))
	assert.Equal(t, OpWrite, coalesce(OpWrite, OpWrite))
	assert.Equal(t, OpRemove, coalesce(OpWrite, OpRemove))
	assert.Equal(t, OpRemove, coalesce(OpCreate, OpRemove))
	assert.Equal(t, OpCreate, coalesce(OpRemove, OpCreate))
}

func TestWatcher_WatchAndUnwatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "config.toml")
	b := filepath.Join(dir, "missing.yaml")
	require.NoError(t, os.WriteFile(a, []byte("[scroll]\n"), 0o644))

	w, _ := newStarted(t)
	require.NoError(t, w.Watch(a))
	require.NoError(t, w.Watch(b), "missing files are watched for creation")
	require.NoError(t, w.Watch(a))
	assert.ElementsMatch(t, []string{a, b}, w.WatchedFiles())
	assert.Equal(t, 2, w.dirs[dir])

	require.NoError(t, w.Unwatch(a))
	require.NoError(t, w.Unwatch(a))
	assert.Equal(t, []string{b}, w.WatchedFiles())
	require.NoError(t, w.Unwatch(b))
	assert.Empty(t, w.dirs)
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scroll]\n"), 0o644))

	w, c := newStarted(t, WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Watch(path))
	w.Start()
	assert.True(t, w.IsRunning())

	require.NoError(t, os.WriteFile(path, []byte("[scroll]\nbounce = 0.5\n"), 0o644))

	require.Eventually(t, func() bool {
		for _, e := range c.snapshot() {
			if e.Path == path && e.Op == OpWrite {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_DetectsCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	w, c := newStarted(t, WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Watch(path))
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("scroll: {}\n"), 0o644))

	require.Eventually(t, func() bool {
		events := c.snapshot()
		return len(events) > 0 && events[0].Op == OpCreate
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, c := newStarted(t, WithDebounce(0))
	require.NoError(t, w.Watch(path))
	w.Start()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("y"), 0o644))

	require.Eventually(t, func() bool { return len(c.snapshot()) > 0 }, 2*time.Second, 10*time.Millisecond)
	for _, e := range c.snapshot() {
		assert.Equal(t, path, e.Path)
	}
}

func TestWatcher_DebounceCoalesces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, c := newStarted(t, WithDebounce(250*time.Millisecond))
	require.NoError(t, w.Watch(path))
	w.Start()

	for i := 0; i < 5; i++ {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		_, err = f.WriteString("x")
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	require.Eventually(t, func() bool { return len(c.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return len(c.snapshot()) > 1 }, 400*time.Millisecond, 20*time.Millisecond)
	assert.Equal(t, OpWrite, c.snapshot()[0].Op)
}

func TestWatcher_HandlerPanicRecovered(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, c := newStarted(t, WithDebounce(0))
	var calls atomic.Int32
	w.OnChange(func(Event) {
		calls.Add(1)
		panic("boom")
	})
	require.NoError(t, w.Watch(path))
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() > 0 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() > 1 }, 2*time.Second, 10*time.Millisecond)
	assert.NotEmpty(t, c.snapshot())
}

func TestWatcher_Stop(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	w.Start()
	w.Start()

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
	assert.ErrorIs(t, w.Watch(filepath.Join(t.TempDir(), "x.toml")), ErrWatcherClosed)
	assert.ErrorIs(t, w.Unwatch("x.toml"), ErrWatcherClosed)

	w.Start()
	assert.False(t, w.IsRunning())
}
