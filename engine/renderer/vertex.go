package renderer

import "github.com/Carmen-Shannon/oxy-spine/common"

// Vertex is the interleaved vertex layout shared by every pass. Size: 32 bytes.
//
//	@location(0) position: vec3<f32>
//	@location(1) normal:   vec3<f32>
//	@location(2) uv:       vec2<f32>
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Instance is a per-instance model matrix, read at shader locations 3 to 6. Size: 64 bytes.
type Instance struct {
	Model [16]float32
}

// NewInstance builds an instance that scales by (sx, sy, 1) and then translates to (x, y, 0).
func NewInstance(x, y, sx, sy float32) Instance {
	var inst Instance
	common.BuildModelMatrix(inst.Model[:], x, y, 0, 0, 0, 0, sx, sy, 1)
	return inst
}
