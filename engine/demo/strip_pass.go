package demo

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/Carmen-Shannon/oxy-spine/engine/mesh"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
)

// StripPass draws the spine as a stroked triangle strip with the hot-reloadable program's
// active pipeline. The reloader must be built with a triangle-strip topology.
type StripPass struct {
	world    *World
	reloader *renderer.HotReloader
	width    float32
	vertices *renderer.GrowableBuffer[renderer.Vertex]
}

var _ renderer.RenderPass = (*StripPass)(nil)

// NewStripPass creates the spine stroke pass.
//
// Parameters:
//   - backend: creates the vertex buffer
//   - world: supplies the spine points
//   - reloader: supplies the active pipeline
//   - width: the stroke width in clip space
//
// Returns:
//   - *StripPass: the pass
func NewStripPass(backend renderer.RendererBackend, world *World, reloader *renderer.HotReloader, width float32) *StripPass {
	return &StripPass{
		world:    world,
		reloader: reloader,
		width:    width,
		vertices: renderer.NewVertexBuffer(backend, "spine strip vertices"),
	}
}

func (s *StripPass) Label() string {
	return "strip"
}

func (s *StripPass) Draw(fs *renderer.FrameState, _ *camera.CameraInput, tok *renderer.FrameToken) error {
	// a failed grow keeps last tick's vertices, which are still drawn
	syncErr := s.vertices.Sync(func(items []renderer.Vertex) []renderer.Vertex {
		return mesh.AppendStroke(items, s.world.Points(), s.width)
	})
	if s.vertices.Count() == 0 {
		return syncErr
	}
	err := record(fs, tok, s.Label(), s.reloader.Active(), func(enc gpu.PassEncoder) {
		enc.SetVertexBuffer(0, s.vertices.Buffer())
		enc.Draw(uint32(s.vertices.Count()), 1, 0, 0)
	})
	return errors.Join(syncErr, err)
}

// Invalidate is a no-op: the reloader owns the pipeline and swaps it itself.
func (s *StripPass) Invalidate() {}

// Vertices returns the pass's vertex buffer manager.
func (s *StripPass) Vertices() *renderer.GrowableBuffer[renderer.Vertex] {
	return s.vertices
}

func (s *StripPass) Release() {
	s.vertices.Release()
}
