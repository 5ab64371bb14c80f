package renderer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reloadVertex = `
//@oxy:group 1 0 camera camera
@vertex
fn vs_main(@location(0) p: vec3<f32>) -> @builtin(position) vec4<f32> {
    return camera.view_proj * vec4<f32>(p, 1.0);
}
`

const reloadFragment = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

// markerValidator rejects any source containing "BROKEN".
var markerValidator = shader.ValidatorFunc(func(src string) error {
	if strings.Contains(src, "BROKEN") {
		return errors.New("unexpected token")
	}
	return nil
})

type countingPass struct {
	label       string
	invalidates int
	draws       int
	err         error
}

func (p *countingPass) Label() string { return p.label }

func (p *countingPass) Draw(_ *FrameState, _ *camera.CameraInput, tok *FrameToken) error {
	p.draws++
	if p.err != nil {
		return p.err
	}
	enc, err := tok.Pass(p.label, false)
	if err != nil {
		return err
	}
	enc.Draw(3, 1, 0, 0)
	enc.End()
	return nil
}

func (p *countingPass) Invalidate() { p.invalidates++ }

// stopCountingPool wraps a real pool and counts Stop calls.
type stopCountingPool struct {
	worker.DynamicWorkerPool
	stops int
}

func (p *stopCountingPool) Stop() {
	p.stops++
	p.DynamicWorkerPool.Stop()
}

func newTestReloader(t *testing.T, opts ...HotReloaderOption) (*HotReloader, *FrameState) {
	t.Helper()
	fs, _ := newTestFrameState(t)
	opts = append([]HotReloaderOption{WithValidator(markerValidator)}, opts...)
	h, err := NewHotReloader(fs, "program", Program{Vertex: reloadVertex, Fragment: reloadFragment}, opts...)
	require.NoError(t, err)
	t.Cleanup(h.Release)
	return h, fs
}

func settle(t *testing.T, h *HotReloader) (bool, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.Settle(ctx)
}

func TestCompileProgramInjectsIncludes(t *testing.T) {
	compiled, err := CompileProgram("p", Program{Vertex: reloadVertex, Fragment: reloadFragment}, markerValidator)
	require.NoError(t, err)
	assert.Contains(t, compiled.Vertex.Source(), "struct CameraUniform")
	assert.Contains(t, compiled.Vertex.Source(), "@group(1) @binding(0) var<uniform> camera: CameraUniform;")
	assert.Equal(t, "fs_main", compiled.Fragment.EntryPoint())
}

func TestNewHotReloaderRejectsInvalidInitialProgram(t *testing.T) {
	fs, _ := newTestFrameState(t)
	_, err := NewHotReloader(fs, "program", Program{Vertex: reloadVertex, Fragment: "BROKEN"}, WithValidator(markerValidator))
	assert.Error(t, err)
}

func TestHotReloadRollbackKeepsActivePipeline(t *testing.T) {
	dep := &countingPass{label: "dep"}
	h, _ := newTestReloader(t, WithDependents(dep))
	before := h.Active()

	h.Request(Program{Vertex: reloadVertex + "\n// BROKEN", Fragment: reloadFragment})
	require.True(t, h.Dispatch())

	swapped, err := settle(t, h)
	assert.False(t, swapped)
	assert.Error(t, err)
	assert.Same(t, before, h.Active())
	assert.True(t, h.Active().Built())
	assert.Zero(t, dep.invalidates)
	assert.Error(t, h.LastFailure())
}

func TestHotReloadGPURejectionKeepsActivePipeline(t *testing.T) {
	h, fs := newTestReloader(t)
	before := h.Active()

	rejected := errors.New("validation error scope: bad binding")
	fs.Backend().(*renderertest.FakeBackend).FailPipeline = func(pipeline.Pipeline) error {
		return rejected
	}

	h.Request(Program{Vertex: reloadVertex, Fragment: reloadFragment + "\n// tweak"})
	require.True(t, h.Dispatch())
	swapped, err := settle(t, h)
	assert.False(t, swapped)
	assert.ErrorIs(t, err, rejected)
	assert.Same(t, before, h.Active())
}

func TestHotReloadSuccessSwapsAndInvalidates(t *testing.T) {
	a, b := &countingPass{label: "a"}, &countingPass{label: "b"}
	h, _ := newTestReloader(t, WithDependents(a))
	h.AddDependent(b)
	before := h.Active()
	newFragment := strings.Replace(reloadFragment, "1.0, 0.0, 0.0", "0.0, 1.0, 0.0", 1)

	h.Request(Program{Vertex: reloadVertex, Fragment: newFragment})
	require.True(t, h.Dispatch())
	swapped, err := settle(t, h)
	require.NoError(t, err)
	assert.True(t, swapped)

	assert.NotSame(t, before, h.Active())
	assert.True(t, h.Active().Built())
	assert.False(t, before.Built(), "the replaced pipeline is released")
	assert.Equal(t, 1, a.invalidates)
	assert.Equal(t, 1, b.invalidates)
	assert.Equal(t, newFragment, h.ActiveProgram().Source.Fragment)
	assert.Equal(t, 1, h.Reloads())
	assert.NoError(t, h.LastFailure())
}

func TestHotReloadLatestRequestWins(t *testing.T) {
	h, _ := newTestReloader(t)

	h.Request(Program{Vertex: reloadVertex, Fragment: reloadFragment + "\n// first"})
	h.Request(Program{Vertex: reloadVertex, Fragment: reloadFragment + "\n// second"})
	assert.True(t, h.Pending())

	require.True(t, h.Dispatch())
	assert.False(t, h.Dispatch(), "nothing left in the slot")

	_, err := settle(t, h)
	require.NoError(t, err)
	assert.Contains(t, h.ActiveProgram().Source.Fragment, "second")
	assert.False(t, h.Pending())
}

func TestHotReloadOneTrialAtATime(t *testing.T) {
	h, _ := newTestReloader(t)

	h.Request(Program{Vertex: reloadVertex, Fragment: reloadFragment + "\n// one"})
	require.True(t, h.Dispatch())
	h.Request(Program{Vertex: reloadVertex, Fragment: reloadFragment + "\n// two"})
	assert.False(t, h.Dispatch(), "a trial is already in flight")

	_, err := settle(t, h)
	require.NoError(t, err)
	require.True(t, h.Dispatch())
	_, err = settle(t, h)
	require.NoError(t, err)
	assert.Contains(t, h.ActiveProgram().Source.Fragment, "two")
}

func TestHotReloadSettleWithoutTrial(t *testing.T) {
	h, _ := newTestReloader(t)
	_, err := settle(t, h)
	assert.ErrorIs(t, err, ErrNothingInFlight)

	swapped, err := h.Poll()
	assert.False(t, swapped)
	assert.NoError(t, err)
}

func TestHotReloadReleaseStopsOwnedPool(t *testing.T) {
	h, _ := newTestReloader(t)
	require.True(t, h.ownsPool)
	require.NotNil(t, h.pool)

	h.Release()
	assert.Nil(t, h.pool)
	assert.Nil(t, h.Active())
	assert.NotPanics(t, h.Release)

	h.Request(Program{Vertex: reloadVertex, Fragment: reloadFragment})
	assert.False(t, h.Dispatch())
}

func TestHotReloadReleaseLeavesSuppliedPool(t *testing.T) {
	pool := &stopCountingPool{DynamicWorkerPool: worker.NewDynamicWorkerPool(1, 4, time.Second)}
	t.Cleanup(pool.DynamicWorkerPool.Stop)

	h, _ := newTestReloader(t, WithWorkerPool(pool))
	assert.False(t, h.ownsPool)

	h.Request(Program{Vertex: reloadVertex, Fragment: reloadFragment})
	require.True(t, h.Dispatch())
	swapped, err := settle(t, h)
	require.NoError(t, err)
	require.True(t, swapped)

	h.Release()
	assert.Zero(t, pool.stops)
}
