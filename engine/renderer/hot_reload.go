package renderer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/shader"
)

// ErrNothingInFlight is returned by Settle when no trial compile is running.
var ErrNothingInFlight = errors.New("no shader compile in flight")

// Program is a vertex/fragment source pair.
type Program struct {
	Vertex   string
	Fragment string
}

// CompiledProgram holds the pre-processed shaders of a Program.
type CompiledProgram struct {
	Source   Program
	Vertex   shader.Shader
	Fragment shader.Shader
}

// CompileProgram pre-processes both sources against the shared resource set's includes and
// validates them.
//
// Parameters:
//   - key: a label prefix for the shaders
//   - prog: the sources
//   - v: the validator, nil skips validation
//
// Returns:
//   - CompiledProgram: the parsed shaders
//   - error: a parse or validation error
func CompileProgram(key string, prog Program, v shader.Validator) (CompiledProgram, error) {
	includes := shader.WithIncludes(ShaderIncludes())
	vs, err := shader.NewShader(key+" vertex", shader.ShaderTypeVertex, prog.Vertex, includes)
	if err != nil {
		return CompiledProgram{}, err
	}
	fs, err := shader.NewShader(key+" fragment", shader.ShaderTypeFragment, prog.Fragment, includes)
	if err != nil {
		return CompiledProgram{}, err
	}
	if v != nil {
		if err := shader.ValidateAll(v, vs, fs); err != nil {
			return CompiledProgram{}, err
		}
	}
	return CompiledProgram{Source: prog, Vertex: vs, Fragment: fs}, nil
}

type reloadResult struct {
	compiled CompiledProgram
	err      error
}

// HotReloader owns the active pipeline of a hot-reloadable program. New sources are requested
// from any goroutine, trial-compiled on a worker pool and applied by Poll at a single point in
// the tick. A failed trial never replaces the active pipeline.
type HotReloader struct {
	fs          *FrameState
	key         string
	pipeOpts    []pipeline.PipelineBuilderOption
	validator   shader.Validator
	pool        worker.DynamicWorkerPool
	ownsPool    bool
	taskID      int
	dependents  []RenderPass
	active      pipeline.Pipeline
	activeProg  CompiledProgram
	reloads     int
	lastFailure error

	mu       sync.Mutex
	pending  *Program
	inFlight bool
	results  chan reloadResult
}

// NewHotReloader compiles and builds the initial program synchronously. The initial program must
// be valid.
//
// Parameters:
//   - fs: the frame state whose backend builds the pipelines
//   - key: the pipeline key
//   - initial: the initial sources
//   - opts: a variadic list of HotReloaderOption functions
//
// Returns:
//   - *HotReloader: the reloader with an active pipeline
//   - error: an error if the initial program does not compile or build
func NewHotReloader(fs *FrameState, key string, initial Program, opts ...HotReloaderOption) (*HotReloader, error) {
	h := &HotReloader{
		fs:        fs,
		key:       key,
		validator: shader.NagaValidator{},
		results:   make(chan reloadResult, 1),
	}
	for _, opt := range opts {
		opt(h)
	}
	compiled, err := CompileProgram(key, initial, h.validator)
	if err != nil {
		return nil, fmt.Errorf("initial program: %w", err)
	}
	p, err := h.build(compiled)
	if err != nil {
		return nil, fmt.Errorf("initial program: %w", err)
	}
	if h.pool == nil {
		h.pool = worker.NewDynamicWorkerPool(1, 4, time.Second)
		h.ownsPool = true
	}
	h.active = p
	h.activeProg = compiled
	return h, nil
}

func (h *HotReloader) build(compiled CompiledProgram) (pipeline.Pipeline, error) {
	opts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(compiled.Vertex),
		pipeline.WithFragmentShader(compiled.Fragment),
	}, h.pipeOpts...)
	return h.fs.BuildPipeline(h.key, opts...)
}

// AddDependent registers passes that must rebuild when the active program changes.
func (h *HotReloader) AddDependent(passes ...RenderPass) {
	h.dependents = append(h.dependents, passes...)
}

// Request stores new sources in the pending slot, replacing any older pending request.
// Safe to call from any goroutine.
//
// Parameters:
//   - prog: the new sources
func (h *HotReloader) Request(prog Program) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = &prog
}

// Dispatch hands the pending request, if any, to the worker pool. Only one trial compile runs at
// a time; a request that arrives meanwhile waits in the slot.
//
// Returns:
//   - bool: true if a trial compile was started
func (h *HotReloader) Dispatch() bool {
	h.mu.Lock()
	if h.pending == nil || h.inFlight || h.pool == nil {
		h.mu.Unlock()
		return false
	}
	prog := *h.pending
	h.pending = nil
	h.inFlight = true
	h.mu.Unlock()

	h.taskID++
	h.pool.SubmitTask(worker.Task{
		ID: h.taskID,
		Do: func() (any, error) {
			compiled, err := CompileProgram(h.key, prog, h.validator)
			h.results <- reloadResult{compiled: compiled, err: err}
			return nil, err
		},
	})
	return true
}

// Poll applies a finished trial compile, if one is ready. On success the active pipeline is
// swapped and every dependent pass is invalidated; on failure the active pipeline is kept and
// the error is logged as "shader not updated".
//
// Returns:
//   - bool: true if the active pipeline was replaced
//   - error: the validation or pipeline error of a failed trial
func (h *HotReloader) Poll() (bool, error) {
	select {
	case res := <-h.results:
		return h.apply(res)
	default:
		return false, nil
	}
}

// Settle blocks until the in-flight trial compile finishes and applies it.
//
// Parameters:
//   - ctx: bounds the wait
//
// Returns:
//   - bool: true if the active pipeline was replaced
//   - error: ErrNothingInFlight, the context error, or the trial's error
func (h *HotReloader) Settle(ctx context.Context) (bool, error) {
	h.mu.Lock()
	inFlight := h.inFlight
	h.mu.Unlock()
	if !inFlight {
		return false, ErrNothingInFlight
	}

	select {
	case res := <-h.results:
		return h.apply(res)
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (h *HotReloader) apply(res reloadResult) (bool, error) {
	h.mu.Lock()
	h.inFlight = false
	h.mu.Unlock()

	err := res.err
	var trial pipeline.Pipeline
	if err == nil {
		trial, err = h.build(res.compiled)
	}
	if err != nil {
		h.lastFailure = err
		log.Printf("[HotReload] shader not updated: %v", err)
		return false, err
	}

	old := h.active
	h.active = trial
	h.activeProg = res.compiled
	h.reloads++
	h.lastFailure = nil
	for _, d := range h.dependents {
		d.Invalidate()
	}
	if old != nil {
		old.Release()
	}
	log.Printf("[HotReload] %s updated (reload %d)", h.key, h.reloads)
	return true, nil
}

// Active returns the active, fully built pipeline.
func (h *HotReloader) Active() pipeline.Pipeline {
	return h.active
}

// ActiveProgram returns the compiled shaders of the active pipeline.
func (h *HotReloader) ActiveProgram() CompiledProgram {
	return h.activeProg
}

// Reloads returns how many trial compiles have been applied.
func (h *HotReloader) Reloads() int {
	return h.reloads
}

// LastFailure returns the error of the most recent failed trial, cleared by a successful one.
func (h *HotReloader) LastFailure() error {
	return h.lastFailure
}

// Pending reports whether a request is waiting or a trial compile is running.
func (h *HotReloader) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending != nil || h.inFlight
}

// Release releases the active pipeline and stops the worker pool the reloader created. A pool
// supplied with WithWorkerPool is left running.
func (h *HotReloader) Release() {
	if h.active != nil {
		h.active.Release()
		h.active = nil
	}
	// a pool passed in with WithWorkerPool belongs to the caller
	if h.ownsPool && h.pool != nil {
		h.pool.Stop()
	}
	h.mu.Lock()
	h.pool = nil
	h.mu.Unlock()
}
