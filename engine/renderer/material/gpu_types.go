package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialUniformSource is the canonical WGSL definition of the MaterialUniform struct.
// Matches GPUMaterialUniform layout exactly (32 bytes).
//
//go:embed assets/material_uniform.wgsl
var GPUMaterialUniformSource string

// GPUMaterialUniform is the GPU-aligned uniform for the texturing bind group.
// Size: 32 bytes (one vec4<f32> base color followed by one vec4 of padding).
type GPUMaterialUniform struct {
	BaseColor [4]float32 // offset  0: RGBA base color
	_pad      [4]float32 // offset 16: padding to 32 bytes
}

// NewMaterialUniform returns a material uniform with the given base color.
func NewMaterialUniform(r, g, b, a float32) GPUMaterialUniform {
	return GPUMaterialUniform{BaseColor: [4]float32{r, g, b, a}}
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload, padding zeroed.
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.BaseColor[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.BaseColor[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.BaseColor[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.BaseColor[3]))
	return buf
}
