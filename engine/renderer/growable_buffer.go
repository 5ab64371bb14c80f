package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// GrowableBuffer is a CPU-mirrored GPU buffer of T. The mirror is rebuilt and fully uploaded on
// every Sync; the GPU buffer is reallocated only when the item count exceeds the capacity, and
// the capacity only grows, in powers of two.
type GrowableBuffer[T any] struct {
	backend RendererBackend
	label   string
	usage   wgpu.BufferUsage

	items    []T
	scratch  []T
	capacity int
	count    int
	buffer   gpu.Buffer

	reallocations int
}

// NewGrowableBuffer creates an empty manager. Nothing is allocated until the first non-empty Sync.
//
// Parameters:
//   - backend: the backend that creates and writes the GPU buffer
//   - label: a debug label for the GPU buffer
//   - usage: the buffer usage, COPY_DST is always added
//
// Returns:
//   - *GrowableBuffer[T]: the empty manager
func NewGrowableBuffer[T any](backend RendererBackend, label string, usage wgpu.BufferUsage) *GrowableBuffer[T] {
	return &GrowableBuffer[T]{
		backend: backend,
		label:   label,
		usage:   usage | wgpu.BufferUsageCopyDst,
	}
}

// NewVertexBuffer creates a growable vertex buffer of Vertex.
func NewVertexBuffer(backend RendererBackend, label string) *GrowableBuffer[Vertex] {
	return NewGrowableBuffer[Vertex](backend, label, wgpu.BufferUsageVertex)
}

// NewInstanceBuffer creates a growable per-instance vertex buffer of Instance.
func NewInstanceBuffer(backend RendererBackend, label string) *GrowableBuffer[Instance] {
	return NewGrowableBuffer[Instance](backend, label, wgpu.BufferUsageVertex)
}

// NewIndexBuffer creates a growable uint32 index buffer.
func NewIndexBuffer(backend RendererBackend, label string) *GrowableBuffer[uint32] {
	return NewGrowableBuffer[uint32](backend, label, wgpu.BufferUsageIndex)
}

// Sync lets rebuild fill this tick's items and uploads all of them. If the new count exceeds the
// capacity the GPU buffer is replaced by one sized to the next power of two. The items are built
// into a second backing array, so a failed reallocation leaves the previous mirror, buffer,
// capacity and count in place.
//
// Parameters:
//   - rebuild: appends this tick's items to the empty slice it is given and returns it
//
// Returns:
//   - error: a wrapped allocation error
func (b *GrowableBuffer[T]) Sync(rebuild func(items []T) []T) error {
	next := rebuild(b.scratch[:0])
	needed := len(next)

	if needed > b.capacity {
		capacity := common.NextPowerOfTwo(needed)
		buf, err := b.backend.CreateBuffer(b.label, uint64(capacity)*common.SizeOf[T](), b.usage)
		if err != nil {
			b.scratch = next[:0]
			return fmt.Errorf("grow %s to %d items: %w", b.label, capacity, err)
		}
		if b.buffer != nil {
			b.buffer.Release()
		}
		b.buffer = buf
		b.capacity = capacity
		b.reallocations++
	}

	b.items, b.scratch = next, b.items[:0]
	b.count = needed
	if needed > 0 {
		b.backend.WriteBuffer(b.buffer, 0, common.SliceToBytes(b.items))
	}
	return nil
}

// Items returns the mirror of what was last uploaded.
func (b *GrowableBuffer[T]) Items() []T {
	return b.items
}

// Count returns the number of items uploaded by the last successful Sync.
func (b *GrowableBuffer[T]) Count() int {
	return b.count
}

// Capacity returns the number of items the GPU buffer can hold.
func (b *GrowableBuffer[T]) Capacity() int {
	return b.capacity
}

// Buffer returns the GPU buffer, or nil before the first non-empty Sync.
func (b *GrowableBuffer[T]) Buffer() gpu.Buffer {
	return b.buffer
}

// Reallocations returns how many times the GPU buffer has been (re)created.
func (b *GrowableBuffer[T]) Reallocations() int {
	return b.reallocations
}

// Release frees the GPU buffer. The manager can be synced again afterwards.
func (b *GrowableBuffer[T]) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
	b.capacity = 0
	b.count = 0
}
