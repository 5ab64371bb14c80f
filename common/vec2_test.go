package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestVec2Normalize(t *testing.T) {
	n, ok := V2(3, 4).Normalize()
	assert.True(t, ok)
	assert.InDelta(t, 0.6, n.X, 1e-6)
	assert.InDelta(t, 0.8, n.Y, 1e-6)
	assert.InDelta(t, 1, n.Len(), 1e-6)

	z, ok := Vec2{}.Normalize()
	assert.False(t, ok)
	assert.True(t, z.IsZero())
}

func TestVec2RotateAndPerp(t *testing.T) {
	v := V2(1, 0)
	r := v.Rotate(math32.Pi / 2)
	assert.InDelta(t, 0, r.X, 1e-6)
	assert.InDelta(t, 1, r.Y, 1e-6)
	assert.Equal(t, V2(0, 1), v.Perp())
	assert.InDelta(t, math32.Pi/2, V2(0, 2).Angle(), 1e-6)
	assert.InDelta(t, 0, v.Dot(v.Perp()), 1e-6)
}

func TestVec2Arithmetic(t *testing.T) {
	a, b := V2(1, 2), V2(4, 6)
	assert.Equal(t, V2(5, 8), a.Add(b))
	assert.Equal(t, V2(3, 4), b.Sub(a))
	assert.Equal(t, V2(2, 4), a.Scale(2))
	assert.InDelta(t, 5, a.Dist(b), 1e-6)
	assert.Equal(t, V2(2.5, 4), a.Lerp(b, 0.5))
}

func TestClipFromCanvas(t *testing.T) {
	assert.Equal(t, V2(-1, 1), ClipFromCanvas(0, 0, 800, 600))
	assert.Equal(t, V2(1, -1), ClipFromCanvas(800, 600, 800, 600))
	assert.Equal(t, V2(0, 0), ClipFromCanvas(400, 300, 800, 600))
	assert.Equal(t, Vec2{}, ClipFromCanvas(10, 10, 0, 600))
}
