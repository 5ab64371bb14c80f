package renderer

import (
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/shader"
)

// HotReloaderOption is a functional option applied to a HotReloader during NewHotReloader.
type HotReloaderOption func(*HotReloader)

// WithValidator replaces the naga validator used for trial compiles.
//
// Parameters:
//   - v: the validator, nil disables CPU-side validation
//
// Returns:
//   - HotReloaderOption: a function that sets the validator
func WithValidator(v shader.Validator) HotReloaderOption {
	return func(h *HotReloader) {
		h.validator = v
	}
}

// WithWorkerPool runs trial compiles on the given pool instead of a private one.
func WithWorkerPool(pool worker.DynamicWorkerPool) HotReloaderOption {
	return func(h *HotReloader) {
		h.pool = pool
	}
}

// WithPipelineOptions sets the fixed-function state every pipeline of the program is built with.
func WithPipelineOptions(opts ...pipeline.PipelineBuilderOption) HotReloaderOption {
	return func(h *HotReloader) {
		h.pipeOpts = append(h.pipeOpts, opts...)
	}
}

// WithDependents registers passes that must rebuild when the active program changes.
func WithDependents(passes ...RenderPass) HotReloaderOption {
	return func(h *HotReloader) {
		h.dependents = append(h.dependents, passes...)
	}
}
