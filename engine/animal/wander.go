package animal

import (
	"time"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Wander steers the head on its own once the user has left it alone for a while. It eases the head
// through successive points of a Lissajous curve, one tween per axis per leg. Any drag cancels it
// and restarts the idle timer.
type Wander struct {
	delay time.Duration
	idle  time.Duration

	legSeconds float32
	easing     ease.TweenFunc
	ampX, ampY float32
	freqX      float32
	freqY      float32
	phaseStep  float32

	tweenX, tweenY *gween.Tween
	step           int
	active         bool
}

// NewWander creates an idle autopilot.
//
// Parameters:
//   - delay: how long the head must be idle before wandering starts, zero or less disables it
//   - opts: optional configuration overrides
//
// Returns:
//   - *Wander: the autopilot, idle
func NewWander(delay time.Duration, opts ...WanderOption) *Wander {
	w := &Wander{
		delay:      delay,
		legSeconds: 1.2,
		easing:     ease.InOutSine,
		ampX:       0.7,
		ampY:       0.5,
		freqX:      3,
		freqY:      2,
		phaseStep:  0.35,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Update advances the idle timer or the current leg.
//
// Parameters:
//   - dt: the time since the last update
//   - head: the head's current position, used as the start of a new leg
//
// Returns:
//   - common.Vec2: the head position to apply
//   - bool: true if the wander is steering and the position should be applied
func (w *Wander) Update(dt time.Duration, head common.Vec2) (common.Vec2, bool) {
	if w.delay <= 0 {
		return head, false
	}
	if !w.active {
		w.idle += dt
		if w.idle < w.delay {
			return head, false
		}
		w.active = true
		w.startLeg(head)
	}

	secs := float32(dt.Seconds())
	x, _ := w.tweenX.Update(secs)
	y, done := w.tweenY.Update(secs)
	pos := common.V2(x, y)
	if done {
		w.step++
		w.startLeg(pos)
	}
	return pos, true
}

// Cancel stops steering and restarts the idle timer.
func (w *Wander) Cancel() {
	w.active = false
	w.idle = 0
	w.tweenX, w.tweenY = nil, nil
}

// Active reports whether the wander is steering the head.
func (w *Wander) Active() bool {
	return w.active
}

// Target returns the curve point for leg n.
func (w *Wander) Target(n int) common.Vec2 {
	t := float32(n) * w.phaseStep
	return common.V2(
		w.ampX*math32.Sin(w.freqX*t+math32.Pi/2),
		w.ampY*math32.Sin(w.freqY*t),
	)
}

func (w *Wander) startLeg(from common.Vec2) {
	to := w.Target(w.step)
	w.tweenX = gween.New(from.X, to.X, w.legSeconds, w.easing)
	w.tweenY = gween.New(from.Y, to.Y, w.legSeconds, w.easing)
}
