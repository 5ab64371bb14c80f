package animal

import (
	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/chewxy/math32"
)

// Axes are the semi-axes of a joint's ellipse. A runs along the joint's direction of travel and B
// across it.
type Axes struct {
	A, B float32
}

// Joint is one spine vertebra: a centre, an ellipse cross-section and a unit facing direction.
// The facing angle is derived from the direction on demand and cached until the direction changes.
type Joint struct {
	center    common.Vec2
	axes      Axes
	direction common.Vec2
	angle     float32
	dirty     bool
}

// NewJoint creates a joint at center facing +X.
//
// Parameters:
//   - center: the joint position
//   - axes: the ellipse semi-axes, both must be positive for hit points to resolve
//
// Returns:
//   - *Joint: the joint
func NewJoint(center common.Vec2, axes Axes) *Joint {
	return &Joint{
		center:    center,
		axes:      axes,
		direction: common.V2(1, 0),
	}
}

func (j *Joint) Center() common.Vec2 {
	return j.center
}

func (j *Joint) SetCenter(c common.Vec2) {
	j.center = c
}

func (j *Joint) Axes() Axes {
	return j.axes
}

func (j *Joint) SetAxes(a Axes) {
	j.axes = a
}

// Direction returns the unit facing direction.
func (j *Joint) Direction() common.Vec2 {
	return j.direction
}

// SetDirection points the joint along v. A zero vector is rejected and the joint keeps its
// previous direction.
func (j *Joint) SetDirection(v common.Vec2) bool {
	n, ok := v.Normalize()
	if !ok {
		return false
	}
	if n != j.direction {
		j.direction = n
		j.dirty = true
	}
	return true
}

// Angle returns the facing angle in radians, recomputing it only if the direction changed since
// the last call.
func (j *Joint) Angle() float32 {
	if j.dirty {
		j.angle = j.direction.Angle()
		j.dirty = false
	}
	return j.angle
}

// HitPoint returns where a ray from the joint centre along dir leaves the joint's ellipse.
// dir is a world-space direction. It is rotated into the joint's frame, scaled onto the ellipse
// (x/a)² + (y/b)² = 1 and rotated back.
//
// Parameters:
//   - dir: the world-space ray direction, any non-zero length
//
// Returns:
//   - common.Vec2: the boundary point in world space
//   - bool: false for a zero direction or a degenerate ellipse
func (j *Joint) HitPoint(dir common.Vec2) (common.Vec2, bool) {
	d, ok := dir.Normalize()
	if !ok || j.axes.A <= 0 || j.axes.B <= 0 {
		return common.Vec2{}, false
	}

	angle := j.Angle()
	local := d.Rotate(-angle)
	s := 1 / math32.Sqrt(local.X*local.X/(j.axes.A*j.axes.A)+local.Y*local.Y/(j.axes.B*j.axes.B))
	return local.Scale(s).Rotate(angle).Add(j.center), true
}

// NormalPoints returns the two boundary points a quarter turn either side of tangent. left is
// the counter-clockwise side.
//
// Parameters:
//   - tangent: the forward direction of the spine at this joint
//
// Returns:
//   - left, right: the boundary points
//   - ok: false for a zero tangent or a degenerate ellipse
func (j *Joint) NormalPoints(tangent common.Vec2) (left, right common.Vec2, ok bool) {
	if tangent.IsZero() {
		return common.Vec2{}, common.Vec2{}, false
	}
	n := tangent.Perp()
	if left, ok = j.HitPoint(n); !ok {
		return common.Vec2{}, common.Vec2{}, false
	}
	if right, ok = j.HitPoint(n.Scale(-1)); !ok {
		return common.Vec2{}, common.Vec2{}, false
	}
	return left, right, true
}
