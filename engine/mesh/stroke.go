// Package mesh builds CPU-side vertex data for the 2-D demo geometry: stroked polylines and the
// baked end quads. Everything here is pure and allocation-only, the GPU upload belongs to the
// renderer's growable buffers.
package mesh

import (
	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
)

var flatNormal = [3]float32{0, 0, 1}

// StrokePolyline extrudes a polyline into a triangle strip of constant width. Each point becomes a
// left/right vertex pair offset along the screen-space left normal of its tangent. U runs from 0 to
// 1 along the cumulative length, V is 0 on the left edge and 1 on the right edge.
//
// Parameters:
//   - points: the polyline in clip space
//   - width: the total line width in the same space
//
// Returns:
//   - []renderer.Vertex: 2*len(points) vertices, or nil for fewer than two points
func StrokePolyline(points []common.Vec2, width float32) []renderer.Vertex {
	return AppendStroke(nil, points, width)
}

// AppendStroke is StrokePolyline appending into dst, so a per-tick mirror can be reused.
func AppendStroke(dst []renderer.Vertex, points []common.Vec2, width float32) []renderer.Vertex {
	n := len(points)
	if n < 2 {
		return dst
	}

	dist := cumulative(points, false)
	total := dist[n-1]

	for i, p := range points {
		var t common.Vec2
		switch i {
		case 0:
			t = points[1].Sub(p)
		case n - 1:
			t = p.Sub(points[i-1])
		default:
			t = points[i+1].Sub(points[i-1])
		}
		dst = appendPair(dst, p, t, width*0.5, ratio(dist[i], total))
	}
	return dst
}

// StrokeLoop extrudes a closed polygon. Tangents wrap around the ends and the first pair is
// repeated at the end so the strip closes on itself.
//
// Parameters:
//   - points: the polygon in clip space, without a repeated closing point
//   - width: the total line width
//
// Returns:
//   - []renderer.Vertex: 2*(len(points)+1) vertices, or nil for fewer than three points
func StrokeLoop(points []common.Vec2, width float32) []renderer.Vertex {
	return AppendLoop(nil, points, width)
}

// AppendLoop is StrokeLoop appending into dst.
func AppendLoop(dst []renderer.Vertex, points []common.Vec2, width float32) []renderer.Vertex {
	n := len(points)
	if n < 3 {
		return dst
	}

	dist := cumulative(points, true)
	total := dist[n]

	for i := 0; i <= n; i++ {
		p := points[i%n]
		t := points[(i+1)%n].Sub(points[(i+n-1)%n])
		dst = appendPair(dst, p, t, width*0.5, ratio(dist[i], total))
	}
	return dst
}

// cumulative returns running distances along points. A closed loop gets one extra entry for the
// closing edge.
func cumulative(points []common.Vec2, closed bool) []float32 {
	n := len(points)
	size := n
	if closed {
		size++
	}
	dist := make([]float32, size)
	for i := 1; i < size; i++ {
		dist[i] = dist[i-1] + points[i%n].Dist(points[i-1])
	}
	return dist
}

func ratio(d, total float32) float32 {
	if total == 0 {
		return 0
	}
	return d / total
}

// appendPair pushes the left vertex then the right one. A zero tangent collapses both onto p.
func appendPair(dst []renderer.Vertex, p, tangent common.Vec2, halfWidth, u float32) []renderer.Vertex {
	t, _ := tangent.Normalize()
	n := t.Perp()
	left := p.Add(n.Scale(halfWidth))
	right := p.Sub(n.Scale(halfWidth))
	return append(dst,
		renderer.Vertex{Position: [3]float32{left.X, left.Y, 0}, Normal: flatNormal, UV: [2]float32{u, 0}},
		renderer.Vertex{Position: [3]float32{right.X, right.Y, 0}, Normal: flatNormal, UV: [2]float32{u, 1}},
	)
}
