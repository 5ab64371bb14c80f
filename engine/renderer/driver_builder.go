package renderer

import "time"

// FrameDriverOption is a functional option applied to a FrameDriver during NewFrameDriver.
type FrameDriverOption func(*FrameDriver)

// WithPasses appends passes to the draw order. Later passes draw over earlier ones.
//
// Parameters:
//   - passes: the passes, in draw order
//
// Returns:
//   - FrameDriverOption: a function that registers the passes
func WithPasses(passes ...RenderPass) FrameDriverOption {
	return func(d *FrameDriver) {
		d.passes = append(d.passes, passes...)
	}
}

// WithUpdate sets the hook run at the start of every tick, before drawing.
//
// Parameters:
//   - update: receives the time since the previous tick, zero on the first
//
// Returns:
//   - FrameDriverOption: a function that sets the update hook
func WithUpdate(update func(dt time.Duration)) FrameDriverOption {
	return func(d *FrameDriver) {
		d.update = update
	}
}

// WithProjection sets the projection written to the camera uniform. Defaults to FlatQuad.
func WithProjection(p Projection) FrameDriverOption {
	return func(d *FrameDriver) {
		if p != nil {
			d.projection = p
		}
	}
}

// WithHotReloader makes the driver poll and dispatch the reloader once per tick.
func WithHotReloader(h *HotReloader) FrameDriverOption {
	return func(d *FrameDriver) {
		d.reloader = h
	}
}

// WithDriverClock replaces the wall clock used to measure update deltas.
func WithDriverClock(now func() time.Time) FrameDriverOption {
	return func(d *FrameDriver) {
		if now != nil {
			d.now = now
		}
	}
}
