package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-spine/engine/profiler"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spine/engine/window"
)

// engine implements the Engine interface.
// Runs the frame driver from the window's message loop, one tick per iteration.
type engine struct {
	window window.Window
	driver *renderer.FrameDriver

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	onResize         func(width, height int)
	now              func() time.Time
	sleep            func(time.Duration)

	err       error
	closeOnce sync.Once
}

// Engine is the main entry point for the engine.
// It owns the window loop and drives one frame per loop iteration on the calling goroutine.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Driver returns the frame driver ticked by the loop.
	//
	// Returns:
	//   - *renderer.FrameDriver: the driver
	Driver() *renderer.FrameDriver

	// Profiler returns the engine's profiler. Its stats only advance while profiling is enabled.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the main loop and blocks until the window closes, Quit is called or a frame
	// fails fatally.
	//
	// Returns:
	//   - error: the fatal frame error, or nil on a normal shutdown
	Run() error

	// Quit stops the driver and closes the window. The tick in progress completes.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine around a window and a frame driver.
// Window resizes are forwarded to the driver's frame state, which defers them past any live frame.
//
// Parameters:
//   - win: the window whose message loop drives the frames
//   - driver: the frame driver to tick
//   - options: functional options for engine configuration (profiling, frame limit, etc.)
//
// Returns:
//   - Engine: the newly created engine
//   - error: if win or driver is nil
func NewEngine(win window.Window, driver *renderer.FrameDriver, options ...EngineBuilderOption) (Engine, error) {
	if win == nil || driver == nil {
		return nil, errors.New("engine needs a window and a frame driver")
	}
	e := &engine{
		window:           win,
		driver:           driver,
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		now:              time.Now,
		sleep:            time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	e.window.SetResizeCallback(func(width, height int) {
		if err := e.driver.FrameState().Resize(width, height); err != nil {
			log.Printf("[Engine] resize to %dx%d failed: %v", width, height, err)
		}
		if e.onResize != nil {
			e.onResize(width, height)
		}
	})
	e.window.SetUpdateCallback(e.step)

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Driver() *renderer.FrameDriver {
	return e.driver
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Run() error {
	e.window.ProcessMessages()
	e.Quit()
	return e.err
}

func (e *engine) Quit() {
	e.driver.Stop()
	e.closeOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] close window: %v", err)
		}
	})
}

// step runs one frame from the window's update callback.
// Recovers from panics to avoid crashing the process and quits on recovery.
func (e *engine) step() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render loop recovered from panic: %v", r)
			e.err = fmt.Errorf("render loop panic: %v", r)
			e.Quit()
		}
	}()

	if e.driver.Stopped() {
		e.Quit()
		return
	}

	start := e.now()
	if err := e.driver.Tick(); err != nil {
		if !errors.Is(err, renderer.ErrDriverStopped) {
			log.Printf("[Engine] frame failed, stopping: %v", err)
			e.err = err
		}
		e.Quit()
		return
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 && !e.driver.Stopped() {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
