// Package animal holds the procedural spine: a point chain relaxed toward fixed segment lengths,
// ellipse joints that give it a cross-section, and the closed skin outline derived from them.
package animal

import "github.com/Carmen-Shannon/oxy-spine/common"

// SolveChain relaxes a point chain toward a fixed segment length. Each pass walks the chain
// head to tail and pulls every point onto the circle of radius segLen around its predecessor,
// keeping its direction. points[0] is never moved. Coincident neighbours are left as they are for
// that pass.
//
// Parameters:
//   - points: the chain, head first, updated in place
//   - segLen: the target distance between neighbours
//   - iterations: the number of full passes
func SolveChain(points []common.Vec2, segLen float32, iterations int) {
	for range iterations {
		for i := 1; i < len(points); i++ {
			dir := points[i].Sub(points[i-1])
			dist := dir.Len()
			if dist == 0 {
				continue
			}
			points[i] = points[i-1].Add(dir.Scale(segLen / dist))
		}
	}
}
