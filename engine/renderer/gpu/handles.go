// Package gpu declares the narrow handle interfaces the renderer hands out for GPU objects.
// The wgpu backend wraps the real objects; renderertest provides recording fakes so frame
// logic can be exercised without an adapter.
package gpu

import "github.com/cogentcore/webgpu/wgpu"

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting.
	PresentModeVSync PresentMode = iota
	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// Releaser is implemented by every handle that owns a GPU allocation.
type Releaser interface {
	// Release frees the underlying GPU object. Calling Release twice is a no-op.
	Release()
}

// Buffer is a GPU buffer handle.
type Buffer interface {
	Releaser

	// Size returns the allocated size of the buffer in bytes. It never changes after creation.
	//
	// Returns:
	//   - uint64: the buffer size in bytes
	Size() uint64
}

// TextureView is a view into a GPU texture, used as a render attachment or a sampled binding.
type TextureView interface {
	Releaser
}

// Sampler is a GPU sampler handle.
type Sampler interface {
	Releaser
}

// BindGroupLayout describes the shape of a bind group.
type BindGroupLayout interface {
	Releaser
}

// BindGroup is a set of bound resources matching a BindGroupLayout.
type BindGroup interface {
	Releaser
}

// RenderPipeline is a compiled render pipeline.
type RenderPipeline interface {
	Releaser
}

// PassDescriptor configures a render pass recorded on a CommandEncoder.
type PassDescriptor struct {
	// Label is a debug label for the pass.
	Label string
	// Color is the color attachment, normally the acquired surface view.
	Color TextureView
	// Depth is the optional depth attachment. A nil Depth records a color-only pass.
	Depth TextureView
	// Clear selects LoadOpClear for every attachment. When false the pass loads existing contents.
	Clear bool
	// ClearColor is the color written when Clear is set.
	ClearColor wgpu.Color
}

// CommandEncoder records render passes for a single frame.
type CommandEncoder interface {
	Releaser

	// BeginRenderPass starts recording a render pass. The returned PassEncoder must be ended
	// before another pass is started on the same encoder.
	//
	// Parameters:
	//   - desc: the pass attachments and load behaviour
	//
	// Returns:
	//   - PassEncoder: the encoder for draw commands within the pass
	BeginRenderPass(desc PassDescriptor) PassEncoder
}

// PassEncoder records draw commands inside a render pass.
type PassEncoder interface {
	SetPipeline(p RenderPipeline)
	SetBindGroup(index uint32, bg BindGroup)
	SetVertexBuffer(slot uint32, buf Buffer)
	SetIndexBuffer(buf Buffer, format wgpu.IndexFormat)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)

	// End finishes the pass. No further commands may be recorded on this encoder.
	End()
}
