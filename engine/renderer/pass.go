package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
)

// RenderPass is a self-contained draw unit. It lazily builds its pipeline, owns its buffer
// managers and records its commands into the frame token.
type RenderPass interface {
	// Label returns a debug label for the pass.
	//
	// Returns:
	//   - string: the pass label
	Label() string

	// Draw records the pass for this frame. It only touches the token and the pass's own buffers.
	//
	// Parameters:
	//   - fs: the frame state, for the backend and the shared resource set
	//   - cam: the orbit input for this tick
	//   - tok: the frame token to record into
	//
	// Returns:
	//   - error: an error if the pipeline could not be built or the buffers could not be synced
	Draw(fs *FrameState, cam *camera.CameraInput, tok *FrameToken) error

	// Invalidate drops the cached pipeline so the next Draw rebuilds it.
	Invalidate()
}

// PipelineCell caches a pass's pipeline between invalidations.
type PipelineCell struct {
	p      pipeline.Pipeline
	builds int
}

// Get returns the cached pipeline, building it with build when the cell is empty.
// A failed build leaves the cell empty so the next call tries again.
//
// Parameters:
//   - build: creates and registers the pipeline
//
// Returns:
//   - pipeline.Pipeline: the cached or freshly built pipeline
//   - error: the build error
func (c *PipelineCell) Get(build func() (pipeline.Pipeline, error)) (pipeline.Pipeline, error) {
	if c.p != nil {
		return c.p, nil
	}
	p, err := build()
	if err != nil {
		return nil, err
	}
	c.p = p
	c.builds++
	return p, nil
}

// Invalidate releases the cached pipeline, if any.
func (c *PipelineCell) Invalidate() {
	if c.p != nil {
		c.p.Release()
		c.p = nil
	}
}

// Built reports whether a pipeline is cached.
func (c *PipelineCell) Built() bool {
	return c.p != nil
}

// Builds returns how many times the cell has built a pipeline.
func (c *PipelineCell) Builds() int {
	return c.builds
}

// BuildPipeline creates a pipeline description and registers it against the shared resource
// set's layouts.
//
// Parameters:
//   - key: the pipeline key
//   - opts: the shaders and fixed-function state
//
// Returns:
//   - pipeline.Pipeline: the built pipeline
//   - error: an error if the backend rejected the pipeline
func (fs *FrameState) BuildPipeline(key string, opts ...pipeline.PipelineBuilderOption) (pipeline.Pipeline, error) {
	p := pipeline.NewPipeline(key, opts...)
	if err := fs.backend.RegisterRenderPipeline(p, fs.resources.Layouts()); err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", key, err)
	}
	return p, nil
}
