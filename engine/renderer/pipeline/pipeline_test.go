package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

type releaseCounter struct{ n int }

func (r *releaseCounter) Release() { r.n++ }

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("strip")
	assert.Equal(t, "strip", p.PipelineKey())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.False(t, p.DepthAttached())
	assert.NotNil(t, p.BlendState())
	assert.False(t, p.Built())
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline("points",
		WithTopology(wgpu.PrimitiveTopologyTriangleStrip),
		WithDepth(true, false),
		WithBlendState(nil),
	)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleStrip, p.Topology())
	assert.True(t, p.DepthAttached())
	assert.True(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.Nil(t, p.BlendState())
}

func TestPipelineReleaseClearsBuiltState(t *testing.T) {
	p := NewPipeline("strip")
	rc := &releaseCounter{}
	p.SetRenderPipeline(rc)
	assert.True(t, p.Built())

	p.Release()
	p.Release()
	assert.False(t, p.Built())
	assert.Equal(t, 1, rc.n)
}
