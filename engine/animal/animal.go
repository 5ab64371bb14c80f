package animal

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-spine/common"
)

var (
	// ErrSpineTooShort is returned when a skin is requested for fewer than two joints.
	ErrSpineTooShort = errors.New("spine needs at least two joints")
	// ErrDegenerateTangent is returned when two neighbouring spine points coincide, leaving a joint
	// without a usable tangent.
	ErrDegenerateTangent = errors.New("degenerate spine tangent")
	// ErrDegenerateAxes is returned for a joint whose ellipse has a non-positive axis.
	ErrDegenerateAxes = errors.New("ellipse axes must be positive")
)

// Animal is a spine of joints, head first, and the closed skin outline derived from it.
type Animal struct {
	Joints []*Joint
	Skin   []common.Vec2

	scratch []common.Vec2
	right   []common.Vec2
}

// NewAnimal creates one joint per spine point. A single Axes value applies to every joint,
// otherwise axes must match points one to one.
//
// Parameters:
//   - points: the spine, head first
//   - axes: the ellipse axes, one shared value or one per point
//
// Returns:
//   - *Animal: the animal with directions synced from points and an empty skin
//   - error: if the axes count matches neither case
func NewAnimal(points []common.Vec2, axes ...Axes) (*Animal, error) {
	if len(axes) != 1 && len(axes) != len(points) {
		return nil, fmt.Errorf("%d axes for %d spine points", len(axes), len(points))
	}

	a := &Animal{Joints: make([]*Joint, len(points))}
	for i, p := range points {
		ax := axes[0]
		if len(axes) > 1 {
			ax = axes[i]
		}
		a.Joints[i] = NewJoint(p, ax)
	}
	a.SyncSpine(points)
	return a, nil
}

// TaperedAxes interpolates axes linearly from head to tail over n joints.
func TaperedAxes(head, tail Axes, n int) []Axes {
	out := make([]Axes, n)
	for i := range out {
		t := float32(0)
		if n > 1 {
			t = float32(i) / float32(n-1)
		}
		out[i] = Axes{
			A: head.A + (tail.A-head.A)*t,
			B: head.B + (tail.B-head.B)*t,
		}
	}
	return out
}

// SyncSpine copies the relaxed chain into the joints: centres from points and directions from
// their forward tangents. Joints are added (copying the tail's axes) or dropped to match
// len(points). A joint whose tangent is zero keeps its previous direction.
//
// Parameters:
//   - points: the relaxed chain, head first
func (a *Animal) SyncSpine(points []common.Vec2) {
	if len(points) < len(a.Joints) {
		a.Joints = a.Joints[:len(points)]
	}
	for len(a.Joints) < len(points) {
		var ax Axes
		if n := len(a.Joints); n > 0 {
			ax = a.Joints[n-1].Axes()
		}
		a.Joints = append(a.Joints, NewJoint(points[len(a.Joints)], ax))
	}

	for i, j := range a.Joints {
		j.SetCenter(points[i])
		j.SetDirection(forwardTangent(points, i))
	}
}

// forwardTangent is the head-facing finite difference at joint i. The end joints use the one
// neighbour they have, oriented so every tangent points toward the head.
func forwardTangent(points []common.Vec2, i int) common.Vec2 {
	n := len(points)
	switch {
	case n < 2:
		return common.Vec2{}
	case i == 0:
		return points[0].Sub(points[1])
	case i == n-1:
		return points[n-2].Sub(points[n-1])
	default:
		return points[i-1].Sub(points[i+1])
	}
}

// ComputeSkin rebuilds the outline from the current joints. The loop starts at the head cap,
// runs down the left side to the tail cap and returns up the right side, 2N+2 points in all.
// If any joint has no usable tangent the previous skin is kept and the error names the joint.
// The returned Skin slice is reused two calls later, copy it to keep it.
//
// Returns:
//   - error: ErrSpineTooShort, or a wrapped ErrDegenerateTangent or ErrDegenerateAxes
func (a *Animal) ComputeSkin() error {
	n := len(a.Joints)
	if n < 2 {
		return ErrSpineTooShort
	}

	centers := make([]common.Vec2, n)
	for i, j := range a.Joints {
		centers[i] = j.Center()
	}

	out := a.scratch[:0]
	right := a.right[:0]
	for i, j := range a.Joints {
		if ax := j.Axes(); ax.A <= 0 || ax.B <= 0 {
			return fmt.Errorf("joint %d: %w", i, ErrDegenerateAxes)
		}
		t := forwardTangent(centers, i)
		l, r, ok := j.NormalPoints(t)
		if !ok {
			return fmt.Errorf("joint %d: %w", i, ErrDegenerateTangent)
		}

		if i == 0 {
			tip, _ := j.HitPoint(t)
			out = append(out, tip)
		}
		out = append(out, l)
		right = append(right, r)
		if i == n-1 {
			tail, _ := j.HitPoint(t.Scale(-1))
			out = append(out, tail)
		}
	}
	for i := len(right) - 1; i >= 0; i-- {
		out = append(out, right[i])
	}

	a.scratch, a.Skin = a.Skin, out
	a.right = right
	return nil
}

// Centers returns the joint centres, head first.
func (a *Animal) Centers() []common.Vec2 {
	out := make([]common.Vec2, len(a.Joints))
	for i, j := range a.Joints {
		out[i] = j.Center()
	}
	return out
}
