package mesh

import "github.com/Carmen-Shannon/oxy-spine/engine/renderer"

// EndVertices are two quads flush against the left (x in [-1, -0.8]) and right (x in [0.8, 1])
// canvas edges, each spanning y in [-0.25, 0.25].
var EndVertices = [8]renderer.Vertex{
	{Position: [3]float32{-1.00, -0.25, 0}, Normal: flatNormal, UV: [2]float32{0, 0}},
	{Position: [3]float32{-0.80, -0.25, 0}, Normal: flatNormal, UV: [2]float32{1, 0}},
	{Position: [3]float32{-0.80, 0.25, 0}, Normal: flatNormal, UV: [2]float32{1, 1}},
	{Position: [3]float32{-1.00, 0.25, 0}, Normal: flatNormal, UV: [2]float32{0, 1}},

	{Position: [3]float32{0.80, -0.25, 0}, Normal: flatNormal, UV: [2]float32{0, 0}},
	{Position: [3]float32{1.00, -0.25, 0}, Normal: flatNormal, UV: [2]float32{1, 0}},
	{Position: [3]float32{1.00, 0.25, 0}, Normal: flatNormal, UV: [2]float32{1, 1}},
	{Position: [3]float32{0.80, 0.25, 0}, Normal: flatNormal, UV: [2]float32{0, 1}},
}

// EndIndices triangulates EndVertices as a triangle list.
var EndIndices = [12]uint32{
	0, 1, 2, 0, 2, 3,
	4, 5, 6, 4, 6, 7,
}

// UnitQuad is a quad spanning [-1, 1] on both axes, drawn as a four vertex triangle strip.
// Instanced passes scale and place it with a per-instance model matrix.
var UnitQuad = [4]renderer.Vertex{
	{Position: [3]float32{-1, 1, 0}, Normal: flatNormal, UV: [2]float32{0, 0}},
	{Position: [3]float32{-1, -1, 0}, Normal: flatNormal, UV: [2]float32{0, 1}},
	{Position: [3]float32{1, 1, 0}, Normal: flatNormal, UV: [2]float32{1, 0}},
	{Position: [3]float32{1, -1, 0}, Normal: flatNormal, UV: [2]float32{1, 1}},
}
