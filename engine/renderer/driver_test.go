package renderer

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameDriverTickOrder(t *testing.T) {
	fs, backend := newTestFrameState(t)
	a, b := &countingPass{label: "a"}, &countingPass{label: "b"}

	var updates []time.Duration
	clock := time.Unix(0, 0)
	d := NewFrameDriver(fs, camera.NewCameraInput(),
		WithPasses(a, b),
		WithUpdate(func(dt time.Duration) { updates = append(updates, dt) }),
		WithDriverClock(func() time.Time {
			clock = clock.Add(16 * time.Millisecond)
			return clock
		}),
	)

	require.NoError(t, d.Tick())
	require.NoError(t, d.Tick())

	assert.Equal(t, []time.Duration{0, 16 * time.Millisecond}, updates)
	assert.Equal(t, uint64(2), d.Ticks())
	assert.Equal(t, 2, backend.Submitted)
	assert.Equal(t, uint32(2), fs.FrameCounter())

	passes := backend.LastEncoder().Passes
	require.Len(t, passes, 3)
	assert.Equal(t, "Clear", passes[0].Desc.Label)
	assert.Equal(t, "a", passes[1].Desc.Label)
	assert.Equal(t, "b", passes[2].Desc.Label)
}

func TestFrameDriverPassErrorStillEndsFrame(t *testing.T) {
	fs, backend := newTestFrameState(t)
	bad := &countingPass{label: "bad", err: errors.New("no pipeline")}
	good := &countingPass{label: "good"}
	d := NewFrameDriver(fs, nil, WithPasses(bad, good))

	require.NoError(t, d.Tick())
	assert.Equal(t, 1, bad.draws)
	assert.Equal(t, 1, good.draws)
	assert.Equal(t, 1, backend.Presented)
	assert.False(t, fs.InFlight())
}

func TestFrameDriverBeginFrameErrorIsFatal(t *testing.T) {
	fs, backend := newTestFrameState(t)
	backend.FailAcquire = errors.New("lost")
	d := NewFrameDriver(fs, nil)

	err := d.Tick()
	assert.ErrorIs(t, err, ErrSurfaceLost)
	assert.Zero(t, d.Ticks())
}

func TestFrameDriverStop(t *testing.T) {
	fs, backend := newTestFrameState(t)
	d := NewFrameDriver(fs, nil)
	require.NoError(t, d.Tick())

	d.Stop()
	assert.True(t, d.Stopped())
	assert.ErrorIs(t, d.Tick(), ErrDriverStopped)
	assert.Equal(t, 1, backend.Submitted)
}

func TestFrameDriverAppliesHotReload(t *testing.T) {
	dep := &countingPass{label: "dep"}
	h, fs := newTestReloader(t, WithDependents(dep))
	d := NewFrameDriver(fs, nil, WithPasses(dep), WithHotReloader(h))
	before := h.Active()

	h.Request(Program{Vertex: reloadVertex, Fragment: reloadFragment + "\n// edited"})
	deadline := time.Now().Add(5 * time.Second)
	for h.Reloads() == 0 && time.Now().Before(deadline) {
		require.NoError(t, d.Tick())
		time.Sleep(time.Millisecond)
	}

	assert.Equal(t, 1, h.Reloads())
	assert.NotSame(t, before, h.Active())
	assert.Equal(t, 1, dep.invalidates)
}

func TestFrameDriverSetProjection(t *testing.T) {
	fs, _ := newTestFrameState(t)
	d := NewFrameDriver(fs, nil, WithProjection(Fulcrum{}))
	assert.Equal(t, Fulcrum{}, d.Projection())

	d.SetProjection(nil)
	assert.Equal(t, Fulcrum{}, d.Projection())
	d.SetProjection(Ortho2D{Width: 10, Height: 10})
	assert.Equal(t, Ortho2D{Width: 10, Height: 10}, d.Projection())
}
