package animal

import "github.com/tanema/gween/ease"

// WanderOption configures a Wander.
type WanderOption func(*Wander)

// WithLegDuration sets how long each eased leg takes, in seconds.
func WithLegDuration(seconds float32) WanderOption {
	return func(w *Wander) {
		if seconds > 0 {
			w.legSeconds = seconds
		}
	}
}

// WithEasing sets the easing function used for every leg.
func WithEasing(fn ease.TweenFunc) WanderOption {
	return func(w *Wander) {
		if fn != nil {
			w.easing = fn
		}
	}
}

// WithLissajous sets the curve the head follows: amplitudes, per-axis frequencies and the phase
// advanced per leg.
func WithLissajous(ampX, ampY, freqX, freqY, phaseStep float32) WanderOption {
	return func(w *Wander) {
		w.ampX, w.ampY = ampX, ampY
		w.freqX, w.freqY = freqX, freqY
		w.phaseStep = phaseStep
	}
}
