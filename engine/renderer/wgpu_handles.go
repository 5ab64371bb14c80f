package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// The types below wrap cogentcore wgpu objects behind the gpu handle interfaces. Release
// clears the wrapped pointer so a second Release is harmless.

type wgpuBuffer struct {
	buf  *wgpu.Buffer
	size uint64
}

func (b *wgpuBuffer) Size() uint64 {
	return b.size
}

func (b *wgpuBuffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
}

type wgpuTextureView struct {
	view *wgpu.TextureView
	// tex is the owning texture, nil for surface views whose texture is released on present
	tex *wgpu.Texture
}

func (v *wgpuTextureView) Release() {
	if v.view != nil {
		v.view.Release()
		v.view = nil
	}
	if v.tex != nil {
		v.tex.Release()
		v.tex = nil
	}
}

type wgpuSampler struct {
	sampler *wgpu.Sampler
}

func (s *wgpuSampler) Release() {
	if s.sampler != nil {
		s.sampler.Release()
		s.sampler = nil
	}
}

type wgpuBindGroupLayout struct {
	layout *wgpu.BindGroupLayout
}

func (l *wgpuBindGroupLayout) Release() {
	if l.layout != nil {
		l.layout.Release()
		l.layout = nil
	}
}

type wgpuBindGroup struct {
	group *wgpu.BindGroup
}

func (g *wgpuBindGroup) Release() {
	if g.group != nil {
		g.group.Release()
		g.group = nil
	}
}

type wgpuRenderPipeline struct {
	pipeline *wgpu.RenderPipeline
}

func (p *wgpuRenderPipeline) Release() {
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
}

type wgpuCommandEncoder struct {
	enc *wgpu.CommandEncoder
}

func (e *wgpuCommandEncoder) Release() {
	if e.enc != nil {
		e.enc.Release()
		e.enc = nil
	}
}

func (e *wgpuCommandEncoder) BeginRenderPass(desc gpu.PassDescriptor) gpu.PassEncoder {
	loadOp := wgpu.LoadOpLoad
	if desc.Clear {
		loadOp = wgpu.LoadOpClear
	}

	rp := &wgpu.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       unwrapView(desc.Color),
				LoadOp:     loadOp,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: desc.ClearColor,
			},
		},
	}
	if desc.Depth != nil {
		// Depth is stored so later passes in the same frame can load it.
		rp.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            unwrapView(desc.Depth),
			DepthLoadOp:     loadOp,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		}
	}
	return &wgpuPassEncoder{pass: e.enc.BeginRenderPass(rp)}
}

type wgpuPassEncoder struct {
	pass *wgpu.RenderPassEncoder
}

func (p *wgpuPassEncoder) SetPipeline(rp gpu.RenderPipeline) {
	if w, ok := rp.(*wgpuRenderPipeline); ok {
		p.pass.SetPipeline(w.pipeline)
	}
}

func (p *wgpuPassEncoder) SetBindGroup(index uint32, bg gpu.BindGroup) {
	if w, ok := bg.(*wgpuBindGroup); ok {
		p.pass.SetBindGroup(index, w.group, nil)
	}
}

func (p *wgpuPassEncoder) SetVertexBuffer(slot uint32, buf gpu.Buffer) {
	if w, ok := buf.(*wgpuBuffer); ok {
		p.pass.SetVertexBuffer(slot, w.buf, 0, wgpu.WholeSize)
	}
}

func (p *wgpuPassEncoder) SetIndexBuffer(buf gpu.Buffer, format wgpu.IndexFormat) {
	if w, ok := buf.(*wgpuBuffer); ok {
		p.pass.SetIndexBuffer(w.buf, format, 0, wgpu.WholeSize)
	}
}

func (p *wgpuPassEncoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *wgpuPassEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.pass.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *wgpuPassEncoder) End() {
	p.pass.End()
}

func unwrapView(v gpu.TextureView) *wgpu.TextureView {
	if w, ok := v.(*wgpuTextureView); ok {
		return w.view
	}
	return nil
}

func unwrapBuffer(b gpu.Buffer) (*wgpu.Buffer, error) {
	w, ok := b.(*wgpuBuffer)
	if !ok || w.buf == nil {
		return nil, fmt.Errorf("buffer %T: %w", b, ErrForeignHandle)
	}
	return w.buf, nil
}

func unwrapLayout(l gpu.BindGroupLayout) (*wgpu.BindGroupLayout, error) {
	w, ok := l.(*wgpuBindGroupLayout)
	if !ok || w.layout == nil {
		return nil, fmt.Errorf("bind group layout %T: %w", l, ErrForeignHandle)
	}
	return w.layout, nil
}
