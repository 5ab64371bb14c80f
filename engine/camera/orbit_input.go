package camera

import (
	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/chewxy/math32"
)

// maxPitch keeps the orbit just short of the poles so the look-at basis stays defined.
const maxPitch = math32.Pi/2 - 0.01

// CameraInput holds the orbit parameters driven by pointer drags and the wheel.
// It is owned by the tick; pointer events reach it through the world's intent queue.
type CameraInput struct {
	// Yaw is the horizontal angle around +Y in radians.
	Yaw float32
	// Pitch is the elevation above the XZ plane in radians, clamped to ±(π/2 − 0.01).
	Pitch float32
	// Distance is the orbit radius, clamped to [minDistance, maxDistance].
	Distance float32

	sensitivity              float32
	zoomSpeed                float32
	minDistance, maxDistance float32

	dragging     bool
	lastX, lastY float32
}

// NewCameraInput creates an orbit input at distance 5 looking at the origin.
//
// Parameters:
//   - options: functional options to configure the input
//
// Returns:
//   - *CameraInput: the newly created input
func NewCameraInput(options ...CameraInputOption) *CameraInput {
	c := &CameraInput{
		Distance:    5,
		sensitivity: 0.005,
		zoomSpeed:   0.01,
		minDistance: 1,
		maxDistance: 50,
	}
	for _, option := range options {
		option(c)
	}
	c.Distance = common.Clamp(c.Distance, c.minDistance, c.maxDistance)
	c.Pitch = common.Clamp(c.Pitch, -maxPitch, maxPitch)
	return c
}

// PointerDown starts an orbit drag at the given canvas position.
func (c *CameraInput) PointerDown(x, y float32) {
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// PointerMove rotates the orbit by the pointer delta while a drag is active.
func (c *CameraInput) PointerMove(x, y float32) {
	if !c.dragging {
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y

	c.Yaw += dx * c.sensitivity
	c.Pitch = common.Clamp(c.Pitch+dy*c.sensitivity, -maxPitch, maxPitch)
}

// PointerUp ends the drag.
func (c *CameraInput) PointerUp() {
	c.dragging = false
}

// PointerLeave ends the drag when the pointer leaves the canvas.
func (c *CameraInput) PointerLeave() {
	c.dragging = false
}

// Dragging reports whether an orbit drag is active.
func (c *CameraInput) Dragging() bool {
	return c.dragging
}

// Wheel zooms the orbit in or out.
//
// Parameters:
//   - deltaY: the wheel delta, positive moves the eye away from the target
func (c *CameraInput) Wheel(deltaY float32) {
	c.Distance = common.Clamp(c.Distance+deltaY*c.zoomSpeed, c.minDistance, c.maxDistance)
}

// Eye returns the eye position on the orbit sphere around the origin.
//
// Returns:
//   - x, y, z: the eye position in world space
func (c *CameraInput) Eye() (x, y, z float32) {
	sy, cy := math32.Sincos(c.Yaw)
	sp, cp := math32.Sincos(c.Pitch)
	return c.Distance * cp * sy, c.Distance * sp, c.Distance * cp * cy
}

// Reset restores yaw and pitch to zero and the distance to d, clamped.
func (c *CameraInput) Reset(d float32) {
	c.Yaw, c.Pitch = 0, 0
	c.Distance = common.Clamp(d, c.minDistance, c.maxDistance)
	c.dragging = false
}
