package demo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/renderertest"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passFixture struct {
	backend  *renderertest.FakeBackend
	fs       *renderer.FrameState
	reloader *renderer.HotReloader
	world    *World
}

func newPassFixture(t *testing.T) *passFixture {
	t.Helper()
	backend := renderertest.NewFakeBackend(100, 100)
	fs, err := renderer.NewFrameState(backend, renderer.WithSize(100, 100))
	require.NoError(t, err)
	h, err := renderer.NewHotReloader(fs, "spine", DefaultProgram(),
		renderer.WithValidator(nil),
		renderer.WithPipelineOptions(pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleStrip)),
	)
	require.NoError(t, err)
	t.Cleanup(h.Release)
	return &passFixture{backend: backend, fs: fs, reloader: h, world: newTestWorld(t)}
}

// frame records one frame with the given passes and returns the recorded render passes,
// without the clear pass.
func (f *passFixture) frame(t *testing.T, passes ...renderer.RenderPass) ([]*renderertest.Pass, []error) {
	t.Helper()
	tok, err := f.fs.BeginFrame()
	require.NoError(t, err)
	var errs []error
	for _, p := range passes {
		if err := p.Draw(f.fs, f.world.Camera(), tok); err != nil {
			errs = append(errs, err)
		}
	}
	require.NoError(t, f.fs.EndFrame(tok))

	enc := f.backend.LastEncoder()
	require.NotNil(t, enc)
	require.NotEmpty(t, enc.Passes)
	assert.Equal(t, "Clear", enc.Passes[0].Desc.Label)
	return enc.Passes[1:], errs
}

func (f *passFixture) reload(t *testing.T) {
	t.Helper()
	f.reloader.Request(DefaultProgram())
	require.True(t, f.reloader.Dispatch())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	swapped, err := f.reloader.Settle(ctx)
	require.NoError(t, err)
	require.True(t, swapped)
}

func TestStripPassDrawsStroke(t *testing.T) {
	f := newPassFixture(t)
	strip := NewStripPass(f.fs.Backend(), f.world, f.reloader, 0.05)
	defer strip.Release()

	passes, errs := f.frame(t, strip)
	require.Empty(t, errs)
	require.Len(t, passes, 1)

	p := passes[0]
	assert.Equal(t, "strip", p.Desc.Label)
	assert.False(t, p.Desc.Clear)
	assert.True(t, p.Ended)
	assert.Equal(t, f.reloader.Active().RenderPipeline(), p.Pipeline)
	assert.Len(t, p.BindGroups, 3)
	assert.Equal(t, strip.Vertices().Buffer(), p.VertexBuffers[0])
	require.Len(t, p.Draws, 1)
	assert.Equal(t, renderertest.Draw{Count: 18, Instances: 1}, p.Draws[0])
}

func TestStripPassGrowsWithSpine(t *testing.T) {
	f := newPassFixture(t)
	strip := NewStripPass(f.fs.Backend(), f.world, f.reloader, 0.05)

	_, errs := f.frame(t, strip)
	require.Empty(t, errs)
	assert.Equal(t, 32, strip.Vertices().Capacity())

	for i := range 10 {
		f.world.Enqueue(AddPoint{P: common.V2(0.01*float32(i), 0.5)})
	}
	f.world.Update(0)
	passes, errs := f.frame(t, strip)
	require.Empty(t, errs)
	assert.Equal(t, 38, strip.Vertices().Count())
	assert.Equal(t, 64, strip.Vertices().Capacity())
	assert.Equal(t, 2, strip.Vertices().Reallocations())
	assert.Equal(t, uint32(38), passes[0].Draws[0].Count)

	strip.Release()
	assert.Nil(t, strip.Vertices().Buffer())
}

func TestStripPassDrawsKeptBufferOnGrowFailure(t *testing.T) {
	f := newPassFixture(t)
	strip := NewStripPass(f.fs.Backend(), f.world, f.reloader, 0.05)
	defer strip.Release()

	_, errs := f.frame(t, strip)
	require.Empty(t, errs)
	kept := strip.Vertices().Buffer()

	f.backend.FailCreateBuffer = errors.New("out of memory")
	for i := range 10 {
		f.world.Enqueue(AddPoint{P: common.V2(0.01*float32(i), 0.5)})
	}
	f.world.Update(0)
	passes, errs := f.frame(t, strip)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], f.backend.FailCreateBuffer)

	require.Len(t, passes, 1)
	assert.Equal(t, kept, passes[0].VertexBuffers[0])
	assert.Equal(t, renderertest.Draw{Count: 18, Instances: 1}, passes[0].Draws[0])
	assert.Len(t, strip.Vertices().Items(), strip.Vertices().Count())

	f.backend.FailCreateBuffer = nil
	passes, errs = f.frame(t, strip)
	require.Empty(t, errs)
	assert.Equal(t, uint32(38), passes[0].Draws[0].Count)
}

func TestSkinPassFollowsReloads(t *testing.T) {
	f := newPassFixture(t)
	skin := NewSkinPass(f.fs.Backend(), f.world, f.reloader, 0.01)
	defer skin.Release()

	passes, errs := f.frame(t, skin)
	require.Empty(t, errs)
	require.Len(t, passes, 1)
	assert.Equal(t, "skin", passes[0].Desc.Label)
	// 20 outline points, closed: 21 pairs
	assert.Equal(t, uint32(42), passes[0].Draws[0].Count)

	_, _ = f.frame(t, skin)
	assert.Equal(t, 1, skin.Pipelines())

	f.reload(t)
	_, errs = f.frame(t, skin)
	require.Empty(t, errs)
	assert.Equal(t, 2, skin.Pipelines())
}

func TestSkinPassHidden(t *testing.T) {
	f := newPassFixture(t)
	skin := NewSkinPass(f.fs.Backend(), f.world, f.reloader, 0.01)
	f.world.Enqueue(ToggleSkin{})
	f.world.Update(0)

	passes, errs := f.frame(t, skin)
	assert.Empty(t, errs)
	assert.Empty(t, passes)
	assert.Zero(t, skin.Pipelines())
}

func TestSkinPassPipelineFailure(t *testing.T) {
	f := newPassFixture(t)
	skin := NewSkinPass(f.fs.Backend(), f.world, f.reloader, 0.01)
	strip := NewStripPass(f.fs.Backend(), f.world, f.reloader, 0.05)
	boom := errors.New("pipeline rejected")
	f.backend.FailPipeline = func(p pipeline.Pipeline) error {
		if p.PipelineKey() == "skin" {
			return boom
		}
		return nil
	}

	passes, errs := f.frame(t, skin, strip)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)
	require.Len(t, passes, 1)
	assert.Equal(t, "strip", passes[0].Desc.Label)

	f.backend.FailPipeline = nil
	passes, errs = f.frame(t, skin, strip)
	assert.Empty(t, errs)
	assert.Len(t, passes, 2)
}

func TestPointsPassInstancesJoints(t *testing.T) {
	f := newPassFixture(t)
	points := NewPointsPass(f.fs.Backend(), f.world, nil)
	defer points.Release()

	passes, errs := f.frame(t, points)
	require.Empty(t, errs)
	require.Len(t, passes, 1)

	p := passes[0]
	assert.Equal(t, "points", p.Desc.Label)
	assert.Equal(t, renderertest.Draw{Count: 4, Instances: 9}, p.Draws[0])
	assert.NotNil(t, p.VertexBuffers[0])
	assert.Equal(t, points.Instances().Buffer(), p.VertexBuffers[1])

	want := renderer.NewInstance(f.world.Points()[0].X, f.world.Points()[0].Y, PointScale, PointScale)
	assert.Equal(t, want, points.Instances().Items()[0])
}

func TestPointsPassHidden(t *testing.T) {
	f := newPassFixture(t)
	points := NewPointsPass(f.fs.Backend(), f.world, nil)
	f.world.Enqueue(TogglePoints{})
	f.world.Update(0)

	passes, errs := f.frame(t, points)
	assert.Empty(t, errs)
	assert.Empty(t, passes)
}

func TestEndQuadsPassDrawsIndexed(t *testing.T) {
	f := newPassFixture(t)
	quads := NewEndQuadsPass(f.fs.Backend(), f.reloader)
	defer quads.Release()

	for range 2 {
		passes, errs := f.frame(t, quads)
		require.Empty(t, errs)
		require.Len(t, passes, 1)
		p := passes[0]
		assert.Equal(t, "end quads", p.Desc.Label)
		assert.NotNil(t, p.IndexBuffer)
		assert.Equal(t, renderertest.Draw{Count: 12, Instances: 1, Indexed: true}, p.Draws[0])
	}

	f.reload(t)
	_, errs := f.frame(t, quads)
	assert.Empty(t, errs)
}

func TestPassesShareOneFrame(t *testing.T) {
	f := newPassFixture(t)
	passes := []renderer.RenderPass{
		NewEndQuadsPass(f.fs.Backend(), f.reloader),
		NewStripPass(f.fs.Backend(), f.world, f.reloader, 0.05),
		NewSkinPass(f.fs.Backend(), f.world, f.reloader, 0.01),
		NewPointsPass(f.fs.Backend(), f.world, nil),
	}

	recorded, errs := f.frame(t, passes...)
	require.Empty(t, errs)
	require.Len(t, recorded, 4)
	for i, p := range recorded {
		assert.Equal(t, passes[i].Label(), p.Desc.Label)
		assert.True(t, p.Ended)
		assert.False(t, p.Desc.Clear)
	}
}
