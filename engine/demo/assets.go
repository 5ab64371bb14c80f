// Package demo wires the spine animation into the renderer: the owned world state, the intents
// that input handlers queue for it and the render passes that draw it.
package demo

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
)

//go:embed assets/spine.vert.wgsl
var spineVertexSource string

//go:embed assets/spine.frag.wgsl
var spineFragmentSource string

//go:embed assets/points.vert.wgsl
var pointsVertexSource string

//go:embed assets/points.frag.wgsl
var pointsFragmentSource string

// DefaultProgram returns the built-in hot-reloadable spine program.
func DefaultProgram() renderer.Program {
	return renderer.Program{Vertex: spineVertexSource, Fragment: spineFragmentSource}
}

// PointsProgram returns the fixed program used for the instanced joint markers.
func PointsProgram() renderer.Program {
	return renderer.Program{Vertex: pointsVertexSource, Fragment: pointsFragmentSource}
}
