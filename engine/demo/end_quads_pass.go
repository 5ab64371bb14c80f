package demo

import (
	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/Carmen-Shannon/oxy-spine/engine/mesh"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// EndQuadsPass draws the two baked quads at the canvas ends as an indexed triangle list, using
// the hot-reloadable program's sources. The geometry is uploaded once.
type EndQuadsPass struct {
	reloader *renderer.HotReloader
	cell     renderer.PipelineCell
	vertices *renderer.GrowableBuffer[renderer.Vertex]
	indices  *renderer.GrowableBuffer[uint32]
}

var _ renderer.RenderPass = (*EndQuadsPass)(nil)

// NewEndQuadsPass creates the end quads pass and registers it as a dependent of the reloader.
func NewEndQuadsPass(backend renderer.RendererBackend, reloader *renderer.HotReloader) *EndQuadsPass {
	p := &EndQuadsPass{
		reloader: reloader,
		vertices: renderer.NewVertexBuffer(backend, "end quad vertices"),
		indices:  renderer.NewIndexBuffer(backend, "end quad indices"),
	}
	reloader.AddDependent(p)
	return p
}

func (p *EndQuadsPass) Label() string {
	return "end quads"
}

func (p *EndQuadsPass) Draw(fs *renderer.FrameState, _ *camera.CameraInput, tok *renderer.FrameToken) error {
	pipe, err := p.cell.Get(func() (pipeline.Pipeline, error) {
		prog := p.reloader.ActiveProgram()
		return programPipeline(fs, "end quads", prog.Vertex, prog.Fragment, wgpu.PrimitiveTopologyTriangleList)
	})
	if err != nil {
		return err
	}

	if p.indices.Count() == 0 {
		if err := p.vertices.Sync(func(items []renderer.Vertex) []renderer.Vertex {
			return append(items, mesh.EndVertices[:]...)
		}); err != nil {
			return err
		}
		if err := p.indices.Sync(func(items []uint32) []uint32 {
			return append(items, mesh.EndIndices[:]...)
		}); err != nil {
			return err
		}
	}

	return record(fs, tok, p.Label(), pipe, func(enc gpu.PassEncoder) {
		enc.SetVertexBuffer(0, p.vertices.Buffer())
		enc.SetIndexBuffer(p.indices.Buffer(), wgpu.IndexFormatUint32)
		enc.DrawIndexed(uint32(p.indices.Count()), 1, 0, 0, 0)
	})
}

func (p *EndQuadsPass) Invalidate() {
	p.cell.Invalidate()
}

func (p *EndQuadsPass) Release() {
	p.cell.Invalidate()
	p.vertices.Release()
	p.indices.Release()
}
