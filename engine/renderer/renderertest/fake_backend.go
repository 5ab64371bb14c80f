// Package renderertest provides a recording RendererBackend for exercising frame logic
// without a graphics adapter.
package renderertest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrFrameHeld is returned by AcquireFrame when the previous image was not presented.
var ErrFrameHeld = errors.New("previous frame surface not yet presented")

// Handle is a generic fake GPU object. It counts releases so tests can check ownership.
type Handle struct {
	Label    string
	Releases int
}

func (h *Handle) Release() {
	h.Releases++
}

// Released reports whether Release was called at least once.
func (h *Handle) Released() bool {
	return h.Releases > 0
}

// Buffer is a fake GPU buffer that keeps the bytes written to it.
type Buffer struct {
	Handle
	Usage wgpu.BufferUsage
	Data  []byte
}

func (b *Buffer) Size() uint64 {
	return uint64(len(b.Data))
}

// Draw is one recorded draw call.
type Draw struct {
	Count     uint32
	Instances uint32
	Indexed   bool
}

// Pass records everything a pass encoder was asked to do.
type Pass struct {
	Desc          gpu.PassDescriptor
	Pipeline      gpu.RenderPipeline
	BindGroups    map[uint32]gpu.BindGroup
	VertexBuffers map[uint32]gpu.Buffer
	IndexBuffer   gpu.Buffer
	Draws         []Draw
	Ended         bool
}

func (p *Pass) SetPipeline(rp gpu.RenderPipeline) {
	p.Pipeline = rp
}

func (p *Pass) SetBindGroup(index uint32, bg gpu.BindGroup) {
	p.BindGroups[index] = bg
}

func (p *Pass) SetVertexBuffer(slot uint32, buf gpu.Buffer) {
	p.VertexBuffers[slot] = buf
}

func (p *Pass) SetIndexBuffer(buf gpu.Buffer, _ wgpu.IndexFormat) {
	p.IndexBuffer = buf
}

func (p *Pass) Draw(vertexCount, instanceCount, _, _ uint32) {
	p.Draws = append(p.Draws, Draw{Count: vertexCount, Instances: instanceCount})
}

func (p *Pass) DrawIndexed(indexCount, instanceCount, _ uint32, _ int32, _ uint32) {
	p.Draws = append(p.Draws, Draw{Count: indexCount, Instances: instanceCount, Indexed: true})
}

func (p *Pass) End() {
	p.Ended = true
}

// Encoder is a fake command encoder that keeps its passes in recording order.
type Encoder struct {
	Handle
	Passes []*Pass
}

func (e *Encoder) BeginRenderPass(desc gpu.PassDescriptor) gpu.PassEncoder {
	p := &Pass{
		Desc:          desc,
		BindGroups:    make(map[uint32]gpu.BindGroup),
		VertexBuffers: make(map[uint32]gpu.Buffer),
	}
	e.Passes = append(e.Passes, p)
	return p
}

// FakeBackend implements renderer.RendererBackend by recording calls.
// The exported Fail* fields inject errors into the matching operations.
type FakeBackend struct {
	mu sync.Mutex

	Width, Height int
	PresentMode   gpu.PresentMode
	Configures    int

	Buffers   []*Buffer
	Pipelines []pipeline.Pipeline
	Encoders  []*Encoder

	Acquired  int
	Submitted int
	Presented int

	FailAcquire      error
	FailCreateBuffer error
	FailSubmit       error
	// FailPipeline, when set, is consulted for every RegisterRenderPipeline call.
	FailPipeline func(p pipeline.Pipeline) error

	depth     *Handle
	frameHeld bool
}

// NewFakeBackend returns a FakeBackend already configured for the given surface size.
func NewFakeBackend(width, height int) *FakeBackend {
	f := &FakeBackend{}
	_ = f.ConfigureSurface(width, height)
	return f
}

func (f *FakeBackend) ConfigureSurface(width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	f.Width, f.Height = width, height
	f.Configures++
	if f.depth != nil {
		f.depth.Release()
	}
	f.depth = &Handle{Label: fmt.Sprintf("depth %dx%d", width, height)}
	return nil
}

func (f *FakeBackend) SetPresentMode(mode gpu.PresentMode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PresentMode = mode
}

func (f *FakeBackend) SurfaceFormat() wgpu.TextureFormat {
	return wgpu.TextureFormatBGRA8Unorm
}

func (f *FakeBackend) CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (gpu.Buffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createBuffer(label, size, usage)
}

func (f *FakeBackend) createBuffer(label string, size uint64, usage wgpu.BufferUsage) (*Buffer, error) {
	if f.FailCreateBuffer != nil {
		return nil, f.FailCreateBuffer
	}
	b := &Buffer{Handle: Handle{Label: label}, Usage: usage, Data: make([]byte, size)}
	f.Buffers = append(f.Buffers, b)
	return b, nil
}

func (f *FakeBackend) WriteBuffer(buf gpu.Buffer, offset uint64, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := buf.(*Buffer); ok && offset+uint64(len(data)) <= b.Size() {
		copy(b.Data[offset:], data)
	}
}

func (f *FakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		if w.Fits() {
			f.WriteBuffer(w.Provider.Buffer(w.Binding), w.Offset, w.Data)
		}
	}
}

func (f *FakeBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if provider.BindGroupLayout() == nil {
		provider.SetBindGroupLayout(&Handle{Label: provider.Label() + " layout"})
	}
	for _, entry := range descriptor.Entries {
		binding := int(entry.Binding)
		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			if provider.TextureView(binding) == nil {
				return fmt.Errorf("texture binding %d has no texture view", binding)
			}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			if provider.Sampler(binding) == nil {
				return fmt.Errorf("sampler binding %d has no sampler", binding)
			}
		default:
			if provider.Buffer(binding) != nil {
				continue
			}
			buf, err := f.createBuffer(
				fmt.Sprintf("%s Buffer %d", provider.Label(), binding),
				entry.Buffer.MinBindingSize,
				wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst,
			)
			if err != nil {
				return err
			}
			provider.SetBuffer(binding, buf)
		}
	}
	provider.SetBindGroup(&Handle{Label: provider.Label() + " group"})
	return nil
}

func (f *FakeBackend) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	if uint32(len(stagingData.Pixels)) != stagingData.Width*stagingData.Height*4 {
		return fmt.Errorf("texture binding %d: bad pixel count", binding)
	}
	provider.SetTextureView(binding, &Handle{Label: provider.Label() + " texture"})
	return nil
}

func (f *FakeBackend) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, _ common.SamplerStagingData) error {
	provider.SetSampler(binding, &Handle{Label: provider.Label() + " sampler"})
	return nil
}

func (f *FakeBackend) RegisterRenderPipeline(p pipeline.Pipeline, layouts []gpu.BindGroupLayout) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailPipeline != nil {
		if err := f.FailPipeline(p); err != nil {
			return err
		}
	}
	for g, l := range layouts {
		if l == nil {
			return fmt.Errorf("group %d has no layout", g)
		}
	}
	p.SetRenderPipeline(&Handle{Label: p.PipelineKey()})
	f.Pipelines = append(f.Pipelines, p)
	return nil
}

func (f *FakeBackend) AcquireFrame() (gpu.TextureView, gpu.CommandEncoder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailAcquire != nil {
		return nil, nil, f.FailAcquire
	}
	if f.frameHeld {
		return nil, nil, ErrFrameHeld
	}
	f.frameHeld = true
	f.Acquired++
	enc := &Encoder{Handle: Handle{Label: fmt.Sprintf("frame %d", f.Acquired)}}
	f.Encoders = append(f.Encoders, enc)
	return &Handle{Label: "surface"}, enc, nil
}

func (f *FakeBackend) DepthView() gpu.TextureView {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.depth == nil {
		return nil
	}
	return f.depth
}

func (f *FakeBackend) Submit(enc gpu.CommandEncoder) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	enc.Release()
	if f.FailSubmit != nil {
		return f.FailSubmit
	}
	f.Submitted++
	return nil
}

func (f *FakeBackend) Present() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.frameHeld {
		return
	}
	f.frameHeld = false
	f.Presented++
}

func (f *FakeBackend) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.Buffers {
		b.Release()
	}
}

// LastEncoder returns the encoder of the most recent frame, or nil.
func (f *FakeBackend) LastEncoder() *Encoder {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Encoders) == 0 {
		return nil
	}
	return f.Encoders[len(f.Encoders)-1]
}

// LiveBuffers counts buffers that were created and not released.
func (f *FakeBackend) LiveBuffers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.Buffers {
		if !b.Released() {
			n++
		}
	}
	return n
}
