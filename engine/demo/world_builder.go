package demo

import (
	"time"

	"github.com/Carmen-Shannon/oxy-spine/engine/animal"
	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
)

// WorldOption is a functional option for configuring a World.
type WorldOption func(*World)

// WithChain sets the segment length and the number of relaxation passes per tick.
func WithChain(segLen float32, iterations int) WorldOption {
	return func(w *World) {
		if segLen > 0 {
			w.segLen = segLen
		}
		if iterations >= 0 {
			w.iterations = iterations
		}
	}
}

// WithCanvas sets the initial canvas size used to map pointer positions to clip space.
func WithCanvas(width, height int) WorldOption {
	return func(w *World) {
		if width > 0 && height > 0 {
			w.width, w.height = float32(width), float32(height)
		}
	}
}

// WithWander replaces the idle autopilot. A nil wander disables it.
func WithWander(wander *animal.Wander) WorldOption {
	return func(w *World) {
		if wander == nil {
			w.wander = animal.NewWander(0)
			w.wandering = false
			return
		}
		w.wander = wander
	}
}

// WithWanderIdle sets the idle delay of the default wander. Zero disables it.
func WithWanderIdle(delay time.Duration) WorldOption {
	return func(w *World) {
		w.wander = animal.NewWander(delay)
		w.wandering = delay > 0
	}
}

// WithCamera replaces the orbit input.
func WithCamera(cam *camera.CameraInput) WorldOption {
	return func(w *World) {
		if cam != nil {
			w.cam = cam
		}
	}
}

// WithReloadHook sets the function run by the ReloadShaders intent.
func WithReloadHook(fn func()) WorldOption {
	return func(w *World) {
		w.onReload = fn
	}
}
