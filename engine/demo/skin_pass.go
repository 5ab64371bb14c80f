package demo

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/Carmen-Shannon/oxy-spine/engine/mesh"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// SkinPass draws the closed skin outline as a stroked loop. Its pipeline is built lazily from the
// hot-reloadable program's current sources and rebuilt after each successful reload.
type SkinPass struct {
	world    *World
	reloader *renderer.HotReloader
	width    float32
	cell     renderer.PipelineCell
	vertices *renderer.GrowableBuffer[renderer.Vertex]
}

var _ renderer.RenderPass = (*SkinPass)(nil)

// NewSkinPass creates the outline pass and registers it as a dependent of the reloader.
//
// Parameters:
//   - backend: creates the vertex buffer
//   - world: supplies the skin
//   - reloader: supplies the program sources
//   - width: the outline stroke width in clip space
//
// Returns:
//   - *SkinPass: the pass
func NewSkinPass(backend renderer.RendererBackend, world *World, reloader *renderer.HotReloader, width float32) *SkinPass {
	p := &SkinPass{
		world:    world,
		reloader: reloader,
		width:    width,
		vertices: renderer.NewVertexBuffer(backend, "skin vertices"),
	}
	reloader.AddDependent(p)
	return p
}

func (s *SkinPass) Label() string {
	return "skin"
}

func (s *SkinPass) Draw(fs *renderer.FrameState, _ *camera.CameraInput, tok *renderer.FrameToken) error {
	if !s.world.ShowSkin() {
		return nil
	}
	p, err := s.cell.Get(func() (pipeline.Pipeline, error) {
		prog := s.reloader.ActiveProgram()
		return programPipeline(fs, "skin", prog.Vertex, prog.Fragment, wgpu.PrimitiveTopologyTriangleStrip)
	})
	if err != nil {
		return err
	}

	syncErr := s.vertices.Sync(func(items []renderer.Vertex) []renderer.Vertex {
		return mesh.AppendLoop(items, s.world.Skin(), s.width)
	})
	if s.vertices.Count() == 0 {
		return syncErr
	}
	err = record(fs, tok, s.Label(), p, func(enc gpu.PassEncoder) {
		enc.SetVertexBuffer(0, s.vertices.Buffer())
		enc.Draw(uint32(s.vertices.Count()), 1, 0, 0)
	})
	return errors.Join(syncErr, err)
}

func (s *SkinPass) Invalidate() {
	s.cell.Invalidate()
}

// Pipelines returns how many times the pass has built its pipeline.
func (s *SkinPass) Pipelines() int {
	return s.cell.Builds()
}

func (s *SkinPass) Release() {
	s.cell.Invalidate()
	s.vertices.Release()
}
