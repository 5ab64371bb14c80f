package demo

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/Carmen-Shannon/oxy-spine/engine/mesh"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PointScale is the half-size of a joint marker in clip space.
const PointScale = 0.02

// PointsPass draws one instanced quad marker per spine joint with its own fixed program.
type PointsPass struct {
	world     *World
	validator shader.Validator
	cell      renderer.PipelineCell
	quad      *renderer.GrowableBuffer[renderer.Vertex]
	instances *renderer.GrowableBuffer[renderer.Instance]
}

var _ renderer.RenderPass = (*PointsPass)(nil)

// NewPointsPass creates the joint marker pass.
//
// Parameters:
//   - backend: creates the quad and instance buffers
//   - world: supplies the joint positions
//   - validator: checks the marker program before its pipeline is built, nil skips the check
//
// Returns:
//   - *PointsPass: the pass
func NewPointsPass(backend renderer.RendererBackend, world *World, validator shader.Validator) *PointsPass {
	return &PointsPass{
		world:     world,
		validator: validator,
		quad:      renderer.NewVertexBuffer(backend, "marker quad"),
		instances: renderer.NewInstanceBuffer(backend, "marker instances"),
	}
}

func (p *PointsPass) Label() string {
	return "points"
}

func (p *PointsPass) Draw(fs *renderer.FrameState, _ *camera.CameraInput, tok *renderer.FrameToken) error {
	if !p.world.ShowPoints() {
		return nil
	}
	pipe, err := p.cell.Get(func() (pipeline.Pipeline, error) {
		prog, err := renderer.CompileProgram("points", PointsProgram(), p.validator)
		if err != nil {
			return nil, err
		}
		return programPipeline(fs, "points", prog.Vertex, prog.Fragment, wgpu.PrimitiveTopologyTriangleStrip)
	})
	if err != nil {
		return err
	}

	if p.quad.Count() == 0 {
		if err := p.quad.Sync(func(items []renderer.Vertex) []renderer.Vertex {
			return append(items, mesh.UnitQuad[:]...)
		}); err != nil {
			return err
		}
	}
	syncErr := p.instances.Sync(func(items []renderer.Instance) []renderer.Instance {
		for _, pt := range p.world.Points() {
			items = append(items, renderer.NewInstance(pt.X, pt.Y, PointScale, PointScale))
		}
		return items
	})
	if p.instances.Count() == 0 {
		return syncErr
	}

	err = record(fs, tok, p.Label(), pipe, func(enc gpu.PassEncoder) {
		enc.SetVertexBuffer(0, p.quad.Buffer())
		enc.SetVertexBuffer(1, p.instances.Buffer())
		enc.Draw(uint32(p.quad.Count()), uint32(p.instances.Count()), 0, 0)
	})
	return errors.Join(syncErr, err)
}

func (p *PointsPass) Invalidate() {
	p.cell.Invalidate()
}

// Instances returns the pass's instance buffer manager.
func (p *PointsPass) Instances() *renderer.GrowableBuffer[renderer.Instance] {
	return p.instances
}

func (p *PointsPass) Release() {
	p.cell.Invalidate()
	p.quad.Release()
	p.instances.Release()
}
