package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/renderertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(n int) func([]Vertex) []Vertex {
	return func(items []Vertex) []Vertex {
		for i := range n {
			items = append(items, Vertex{Position: [3]float32{float32(i), 0, 0}})
		}
		return items
	}
}

func TestVertexAndInstanceSizes(t *testing.T) {
	assert.Equal(t, uint64(32), common.SizeOf[Vertex]())
	assert.Equal(t, uint64(64), common.SizeOf[Instance]())
}

func TestGrowableBufferCapacityLaw(t *testing.T) {
	backend := renderertest.NewFakeBackend(100, 100)
	vb := NewVertexBuffer(backend, "test")

	counts := []int{3, 4, 5, 2, 8, 9, 1, 16, 17, 0, 40}
	var prev gpu.Buffer
	prevCap := 0
	for _, n := range counts {
		require.NoError(t, vb.Sync(fill(n)))

		assert.Equal(t, n, vb.Count())
		assert.GreaterOrEqual(t, vb.Capacity(), vb.Count())
		if vb.Capacity() > 0 {
			assert.True(t, common.IsPowerOfTwo(vb.Capacity()), "capacity %d", vb.Capacity())
		}

		if n > prevCap {
			assert.True(t, prev != vb.Buffer(), "count %d exceeds capacity %d", n, prevCap)
		} else {
			assert.True(t, prev == vb.Buffer(), "count %d fits capacity %d", n, prevCap)
		}
		prev = vb.Buffer()
		prevCap = vb.Capacity()
	}
	assert.Equal(t, 64, vb.Capacity())
	assert.Equal(t, 5, vb.Reallocations())
	assert.Equal(t, 1, backend.LiveBuffers(), "replaced buffers are released")
}

func TestGrowableBufferUploadsFullMirror(t *testing.T) {
	backend := renderertest.NewFakeBackend(100, 100)
	vb := NewVertexBuffer(backend, "test")

	require.NoError(t, vb.Sync(fill(3)))
	buf := vb.Buffer().(*renderertest.Buffer)
	assert.Equal(t, common.SliceToBytes(vb.Items()), buf.Data[:3*32])
	assert.Equal(t, uint64(4*32), buf.Size())
}

func TestGrowableBufferEmptySyncNeverAllocates(t *testing.T) {
	backend := renderertest.NewFakeBackend(100, 100)
	vb := NewVertexBuffer(backend, "test")
	before := len(backend.Buffers)

	require.NoError(t, vb.Sync(fill(0)))
	assert.Nil(t, vb.Buffer())
	assert.Zero(t, vb.Capacity())
	assert.Equal(t, before, len(backend.Buffers))
}

func TestGrowableBufferGrowthFailureKeepsOldBuffer(t *testing.T) {
	backend := renderertest.NewFakeBackend(100, 100)
	vb := NewVertexBuffer(backend, "test")
	require.NoError(t, vb.Sync(fill(2)))
	old := vb.Buffer()

	oom := errors.New("out of memory")
	backend.FailCreateBuffer = oom
	err := vb.Sync(fill(9))
	assert.ErrorIs(t, err, oom)
	assert.Same(t, old, vb.Buffer())
	assert.Equal(t, 2, vb.Capacity())
	assert.Equal(t, 2, vb.Count())
	assert.Len(t, vb.Items(), vb.Count())
	assert.Equal(t, fill(2)(nil), vb.Items())
	assert.False(t, old.(*renderertest.Buffer).Released())

	backend.FailCreateBuffer = nil
	require.NoError(t, vb.Sync(fill(9)))
	assert.Len(t, vb.Items(), 9)
	assert.Equal(t, 16, vb.Capacity())
}

func TestGrowableBufferEmptySyncClearsMirror(t *testing.T) {
	backend := renderertest.NewFakeBackend(100, 100)
	vb := NewVertexBuffer(backend, "test")
	require.NoError(t, vb.Sync(fill(3)))
	require.NoError(t, vb.Sync(fill(0)))
	assert.Zero(t, vb.Count())
	assert.Empty(t, vb.Items())
	assert.Equal(t, 4, vb.Capacity())
}

func TestNewInstanceTranslatesAfterScale(t *testing.T) {
	inst := NewInstance(0.5, -0.25, 0.02, 0.02)
	assert.InDelta(t, 0.02, inst.Model[0], 1e-6)
	assert.InDelta(t, 0.02, inst.Model[5], 1e-6)
	assert.InDelta(t, 1, inst.Model[10], 1e-6)
	assert.InDelta(t, 0.5, inst.Model[12], 1e-6)
	assert.InDelta(t, -0.25, inst.Model[13], 1e-6)
}
