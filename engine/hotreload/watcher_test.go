package hotreload

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTarget struct {
	mu    sync.Mutex
	progs []renderer.Program
}

func (r *recordingTarget) Request(p renderer.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progs = append(r.progs, p)
}

func (r *recordingTarget) last() (renderer.Program, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.progs) == 0 {
		return renderer.Program{}, false
	}
	return r.progs[len(r.progs)-1], true
}

func writeShaders(t *testing.T, dir, vs, fs string) (string, string) {
	t.Helper()
	vp := filepath.Join(dir, "spine.vert.wgsl")
	fp := filepath.Join(dir, "spine.frag.wgsl")
	require.NoError(t, os.WriteFile(vp, []byte(vs), 0o644))
	require.NoError(t, os.WriteFile(fp, []byte(fs), 0o644))
	return vp, fp
}

func TestWatcherRequestsOnWrite(t *testing.T) {
	dir := t.TempDir()
	vp, fp := writeShaders(t, dir, "vs v1", "fs v1")

	target := &recordingTarget{}
	w, err := NewWatcher(vp, fp, target)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(fp, []byte("fs v2"), 0o644))

	require.Eventually(t, func() bool {
		p, ok := target.last()
		return ok && p.Fragment == "fs v2"
	}, 5*time.Second, 10*time.Millisecond)

	p, _ := target.last()
	assert.Equal(t, "vs v1", p.Vertex)
	assert.GreaterOrEqual(t, w.Requests(), int64(1))
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	vp, fp := writeShaders(t, dir, "vs", "fs")

	target := &recordingTarget{}
	w, err := NewWatcher(vp, fp, target)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	_, ok := target.last()
	assert.False(t, ok)
}

func TestWatcherReloadReportsMissingFile(t *testing.T) {
	dir := t.TempDir()
	vp, fp := writeShaders(t, dir, "vs", "fs")

	target := &recordingTarget{}
	w, err := NewWatcher(vp, fp, target)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.Remove(vp))
	assert.ErrorIs(t, w.Reload(), os.ErrNotExist)
	assert.Equal(t, int64(0), w.Requests())
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	vp, fp := writeShaders(t, dir, "vs", "fs")
	w, err := NewWatcher(vp, fp, &recordingTarget{})
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestNewWatcherErrors(t *testing.T) {
	_, err := NewWatcher("a", "b", nil)
	assert.Error(t, err)

	missing := filepath.Join(t.TempDir(), "gone", "x.wgsl")
	_, err = NewWatcher(missing, missing, &recordingTarget{})
	assert.Error(t, err)
}
