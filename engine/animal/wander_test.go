package animal

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/stretchr/testify/assert"
	"github.com/tanema/gween/ease"
)

func TestWanderWaitsForIdleDelay(t *testing.T) {
	w := NewWander(time.Second)
	head := common.V2(0.1, 0.1)

	pos, steering := w.Update(500*time.Millisecond, head)
	assert.False(t, steering)
	assert.Equal(t, head, pos)
	assert.False(t, w.Active())

	_, steering = w.Update(600*time.Millisecond, head)
	assert.True(t, steering)
	assert.True(t, w.Active())
}

func TestWanderReachesLegTarget(t *testing.T) {
	w := NewWander(time.Second, WithLegDuration(1), WithEasing(ease.Linear))

	pos, steering := w.Update(time.Second, common.Vec2{})
	assert.True(t, steering)
	assert.Equal(t, w.Target(0), pos)

	pos, _ = w.Update(500*time.Millisecond, pos)
	mid := w.Target(0).Lerp(w.Target(1), 0.5)
	assert.InDelta(t, mid.X, pos.X, 1e-5)
	assert.InDelta(t, mid.Y, pos.Y, 1e-5)
}

func TestWanderCancelRestartsIdle(t *testing.T) {
	w := NewWander(time.Second)
	w.Update(2*time.Second, common.Vec2{})
	assert.True(t, w.Active())

	w.Cancel()
	assert.False(t, w.Active())
	_, steering := w.Update(100*time.Millisecond, common.Vec2{})
	assert.False(t, steering)
}

func TestWanderDisabled(t *testing.T) {
	w := NewWander(0)
	_, steering := w.Update(time.Hour, common.Vec2{})
	assert.False(t, steering)
}
