package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/stretchr/testify/assert"
)

// apply multiplies m by the point (x, y, z, 1) and returns clip coordinates after the divide.
func apply(m [16]float32, x, y, z float32) (float32, float32, float32) {
	cx := m[0]*x + m[4]*y + m[8]*z + m[12]
	cy := m[1]*x + m[5]*y + m[9]*z + m[13]
	cz := m[2]*x + m[6]*y + m[10]*z + m[14]
	cw := m[3]*x + m[7]*y + m[11]*z + m[15]
	return cx / cw, cy / cw, cz / cw
}

func TestFlatQuadKeepsUnitQuadRound(t *testing.T) {
	wide := FlatQuad{}.ViewProj(1600, 800, nil)
	x, y, _ := apply(wide, 1, 1, 0)
	assert.InDelta(t, 0.5, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6)

	tall := FlatQuad{}.ViewProj(800, 1600, nil)
	x, y, _ = apply(tall, 1, 1, 0)
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, 0.5, y, 1e-6)

	// in pixels both axes now span the same length
	assert.InDelta(t, x*800, y*1600, 1e-3)
}

func TestFlatQuadSquareIsIdentity(t *testing.T) {
	var id [16]float32
	common.Identity(id[:])
	assert.Equal(t, id, FlatQuad{}.ViewProj(500, 500, nil))
	assert.Equal(t, id, FlatQuad{}.ViewProj(0, 0, nil))
}

func TestOrtho2DTopLeftOrigin(t *testing.T) {
	m := Ortho2D{Width: 200, Height: 100}.ViewProj(999, 999, nil)
	x, y, _ := apply(m, 0, 0, 0)
	assert.InDelta(t, -1, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6)

	x, y, _ = apply(m, 200, 100, 0)
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, -1, y, 1e-6)
}

func TestOrtho2DFallsBackToCanvas(t *testing.T) {
	m := Ortho2D{}.ViewProj(400, 300, nil)
	x, y, _ := apply(m, 400, 300, 0)
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, -1, y, 1e-6)
}

func TestFulcrumLooksAtOrigin(t *testing.T) {
	cam := camera.NewCameraInput()
	m := Fulcrum{}.ViewProj(800, 800, cam)

	x, y, z := apply(m, 0, 0, 0)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.Greater(t, z, float32(0))
	assert.Less(t, z, float32(1))

	assert.Equal(t, m, Fulcrum{}.ViewProj(800, 800, nil), "nil camera uses the default eye")
}

func TestCustomPassesThrough(t *testing.T) {
	var m [16]float32
	for i := range m {
		m[i] = float32(i)
	}
	assert.Equal(t, m, Custom{Matrix: m}.ViewProj(1, 1, nil))
}
