package catalog

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReloader struct {
	path  string
	calls atomic.Int32
}

func (r *countingReloader) Path() string { return r.path }

func (r *countingReloader) Reload(force bool) (bool, error) {
	r.calls.Add(1)
	return true, nil
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("materials: []\n"), 0644))

	target := &countingReloader{path: path}
	w := NewWatcher(target, WithDebounce(50*time.Millisecond))
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("materials: []\n# edited\n"), 0644))

	require.Eventually(t, func() bool { return target.calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("materials: []\n"), 0644))

	target := &countingReloader{path: path}
	w := NewWatcher(target, WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	time.Sleep(200 * time.Millisecond)

	assert.Zero(t, target.calls.Load())
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	target := &countingReloader{path: filepath.Join(t.TempDir(), "catalog.yaml")}
	w := NewWatcher(target)
	require.NoError(t, w.Start())

	assert.NoError(t, w.Stop())
	assert.NotPanics(t, func() { _ = w.Stop() })
}
