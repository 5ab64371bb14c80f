// Package model holds the per-draw model matrix uniform.
package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-spine/common"
)

// GPUModelUniformSource is the canonical WGSL definition of the ModelUniform struct.
// Matches GPUModelUniform layout exactly (64 bytes).
//
//go:embed assets/model_uniform.wgsl
var GPUModelUniformSource string

// GPUModelUniform is the GPU-aligned model matrix uniform shared by every pass in the spatial bind group.
// Size: 64 bytes.
type GPUModelUniform struct {
	Model [16]float32 // offset 0: model matrix (mat4x4<f32>, column-major)
}

// IdentityModel returns a model uniform holding the identity matrix.
func IdentityModel() GPUModelUniform {
	var g GPUModelUniform
	common.Identity(g.Model[:])
	return g
}

// Size returns the size of the GPUModelUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUModelUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPUModelUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	return buf
}
