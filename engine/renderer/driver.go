package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
)

// ErrDriverStopped is returned by Tick after Stop.
var ErrDriverStopped = errors.New("frame driver stopped")

// FrameDriver schedules the registered passes once per tick. Each tick applies a finished
// hot-reload, runs the update hook, records every pass in registration order between
// BeginFrame and EndFrame, and finally dispatches any pending hot-reload request.
type FrameDriver struct {
	fs         *FrameState
	cam        *camera.CameraInput
	passes     []RenderPass
	update     func(dt time.Duration)
	projection Projection
	reloader   *HotReloader
	now        func() time.Time

	last    time.Time
	ticks   uint64
	stopped atomic.Bool
}

// NewFrameDriver creates a driver over the given frame state and orbit input.
//
// Parameters:
//   - fs: the frame state
//   - cam: the orbit input handed to every pass
//   - opts: a variadic list of FrameDriverOption functions
//
// Returns:
//   - *FrameDriver: the driver, ready to Tick
func NewFrameDriver(fs *FrameState, cam *camera.CameraInput, opts ...FrameDriverOption) *FrameDriver {
	d := &FrameDriver{
		fs:         fs,
		cam:        cam,
		projection: FlatQuad{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tick runs one frame. Pass errors are logged and the frame still ends; a BeginFrame error is
// returned and ends the session.
//
// Returns:
//   - error: ErrDriverStopped, a BeginFrame error, or the EndFrame error
func (d *FrameDriver) Tick() error {
	if d.stopped.Load() {
		return ErrDriverStopped
	}

	if d.reloader != nil {
		// failures are logged by the reloader and leave the active pipeline in place
		_, _ = d.reloader.Poll()
	}

	now := d.now()
	var dt time.Duration
	if !d.last.IsZero() {
		dt = now.Sub(d.last)
	}
	d.last = now
	if d.update != nil {
		d.update(dt)
	}

	tok, err := d.fs.BeginFrame()
	if err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	if err := d.fs.PopulateCommonBuffers(d.projection, d.cam); err != nil {
		log.Printf("[Renderer] common buffers: %v", err)
	}
	for _, p := range d.passes {
		if err := p.Draw(d.fs, d.cam, tok); err != nil {
			log.Printf("[Renderer] pass %s: %v", p.Label(), err)
		}
	}

	if err := d.fs.EndFrame(tok); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	d.ticks++

	if d.reloader != nil {
		d.reloader.Dispatch()
	}
	return nil
}

// Stop stops scheduling. A tick already running completes.
func (d *FrameDriver) Stop() {
	d.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (d *FrameDriver) Stopped() bool {
	return d.stopped.Load()
}

// SetProjection changes the projection used from the next tick on.
func (d *FrameDriver) SetProjection(p Projection) {
	if p != nil {
		d.projection = p
	}
}

// Projection returns the current projection.
func (d *FrameDriver) Projection() Projection {
	return d.projection
}

// Passes returns the registered passes in draw order.
func (d *FrameDriver) Passes() []RenderPass {
	return d.passes
}

// Ticks returns how many frames have been ended.
func (d *FrameDriver) Ticks() uint64 {
	return d.ticks
}

// FrameState returns the driven frame state.
func (d *FrameDriver) FrameState() *FrameState {
	return d.fs
}
