package animal

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitPointCircle(t *testing.T) {
	center := common.V2(0.5, -0.25)
	j := NewJoint(center, Axes{A: 1, B: 1})
	require.True(t, j.SetDirection(common.V2(1, 0)))

	p, ok := j.HitPoint(common.V2(1, 0))
	require.True(t, ok)
	assert.Equal(t, center.Add(common.V2(1, 0)), p)

	p, ok = j.HitPoint(common.V2(0, 1))
	require.True(t, ok)
	assert.Equal(t, center.Add(common.V2(0, 1)), p)
}

func TestHitPointEllipseFollowsDirection(t *testing.T) {
	j := NewJoint(common.Vec2{}, Axes{A: 2, B: 0.5})

	p, ok := j.HitPoint(common.V2(1, 0))
	require.True(t, ok)
	assert.InDelta(t, 2, p.X, 1e-6)

	require.True(t, j.SetDirection(common.V2(0, 1)))
	p, ok = j.HitPoint(common.V2(0, 1))
	require.True(t, ok)
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 2, p.Y, 1e-5)

	p, ok = j.HitPoint(common.V2(1, 0))
	require.True(t, ok)
	assert.InDelta(t, 0.5, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
}

func TestZeroVectorGuards(t *testing.T) {
	j := NewJoint(common.V2(1, 1), Axes{A: 1, B: 1})

	_, ok := j.HitPoint(common.Vec2{})
	assert.False(t, ok)

	_, _, ok = j.NormalPoints(common.Vec2{})
	assert.False(t, ok)

	assert.False(t, j.SetDirection(common.Vec2{}))
	assert.Equal(t, common.V2(1, 0), j.Direction())
}

func TestDegenerateAxesHaveNoHitPoint(t *testing.T) {
	j := NewJoint(common.Vec2{}, Axes{A: 0, B: 1})
	_, ok := j.HitPoint(common.V2(1, 0))
	assert.False(t, ok)
}

func TestAngleIsCachedUntilDirectionChanges(t *testing.T) {
	j := NewJoint(common.Vec2{}, Axes{A: 1, B: 1})
	assert.Equal(t, float32(0), j.Angle())

	require.True(t, j.SetDirection(common.V2(0, 3)))
	assert.True(t, j.dirty)
	assert.InDelta(t, math32.Pi/2, j.Angle(), 1e-6)
	assert.False(t, j.dirty)

	require.True(t, j.SetDirection(common.V2(0, 1)))
	assert.False(t, j.dirty, "same unit direction does not invalidate the angle")
	assert.InDelta(t, 1, j.Direction().Len(), 1e-6)
}

func TestNormalPointsLeftIsCounterClockwise(t *testing.T) {
	j := NewJoint(common.Vec2{}, Axes{A: 1, B: 0.5})
	left, right, ok := j.NormalPoints(common.V2(1, 0))
	require.True(t, ok)
	assert.InDelta(t, 0.5, left.Y, 1e-6)
	assert.InDelta(t, -0.5, right.Y, 1e-6)
}
