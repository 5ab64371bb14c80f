package demo

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

var errNoPipeline = errors.New("no active pipeline")

// record opens a loading pass, binds the pipeline and the shared resource set and hands the
// encoder to draw. The pass is ended on every path.
func record(fs *renderer.FrameState, tok *renderer.FrameToken, label string, p pipeline.Pipeline, draw func(enc gpu.PassEncoder)) error {
	if p == nil || !p.Built() {
		return errNoPipeline
	}
	enc, err := tok.Pass(label, p.DepthAttached())
	if err != nil {
		return err
	}
	defer enc.End()

	enc.SetPipeline(p.RenderPipeline())
	if err := fs.Resources().Bind(enc); err != nil {
		return err
	}
	draw(enc)
	return nil
}

// programPipeline builds a pipeline from a compiled program with its own topology.
func programPipeline(fs *renderer.FrameState, key string, vs, fsh shader.Shader, topology wgpu.PrimitiveTopology) (pipeline.Pipeline, error) {
	return fs.BuildPipeline(key,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fsh),
		pipeline.WithTopology(topology),
	)
}
