// Package light holds the directional light uniform shared by the fragment stages.
package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniformSource is the canonical WGSL definition of the LightUniform struct.
// Matches GPULightUniform layout exactly (32 bytes).
//
//go:embed assets/light_uniform.wgsl
var GPULightUniformSource string

// GPULightUniform is the GPU-aligned representation of the single directional light.
// Matches the WGSL LightUniform struct layout exactly (see GPULightUniformSource).
// Size: 32 bytes.
type GPULightUniform struct {
	Direction [4]float32 // offset  0: light direction (xyz), w unused
	Color     [4]float32 // offset 16: light color (rgb), a unused
}

// DefaultLight returns the light the resource set is seeded with.
func DefaultLight() GPULightUniform {
	return GPULightUniform{
		Direction: [4]float32{-0.8, -1.0, -1.0, 0.0},
		Color:     [4]float32{0.0, 1.0, 1.0, 0.0},
	}
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, 32)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Direction[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
	return buf
}
