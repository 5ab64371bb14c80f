package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUTimeUniformSource is the canonical WGSL definition of the TimeUniform struct.
//
//go:embed assets/time_uniform.wgsl
var GPUTimeUniformSource string

// GPUResolutionUniformSource is the canonical WGSL definition of the ResolutionUniform struct.
//
//go:embed assets/resolution_uniform.wgsl
var GPUResolutionUniformSource string

// GPUTimeUniform is the per-frame time payload. Size: 16 bytes.
type GPUTimeUniform struct {
	Millis  uint32 // offset  0: milliseconds within the current second
	Secs    uint32 // offset  4: whole seconds since the clock origin
	DtMs    uint32 // offset  8: milliseconds since the previous frame
	FrameID uint32 // offset 12: wrapping frame counter
}

// NewTimeUniform derives the time payload from the clock reading and the previous reading.
//
// Parameters:
//   - nowMs: the current clock reading in milliseconds
//   - prevMs: the reading taken on the previous frame
//   - frameID: the frame counter value for this frame
//
// Returns:
//   - GPUTimeUniform: the payload to upload
func NewTimeUniform(nowMs, prevMs float64, frameID uint32) GPUTimeUniform {
	dt := nowMs - prevMs
	if dt < 0 {
		dt = 0
	}
	return GPUTimeUniform{
		Millis:  uint32(uint64(nowMs) % 1000),
		Secs:    uint32(nowMs / 1000),
		DtMs:    uint32(dt),
		FrameID: frameID,
	}
}

// Size returns the size of the GPUTimeUniform struct in bytes.
func (g *GPUTimeUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUTimeUniform struct into a byte buffer suitable for GPU upload.
func (g *GPUTimeUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:], g.Millis)
	binary.LittleEndian.PutUint32(buf[4:], g.Secs)
	binary.LittleEndian.PutUint32(buf[8:], g.DtMs)
	binary.LittleEndian.PutUint32(buf[12:], g.FrameID)
	return buf
}

// GPUResolutionUniform holds the canvas size as {width, height, 0, 0}. Size: 16 bytes.
type GPUResolutionUniform struct {
	Dims [4]float32
}

// NewResolutionUniform builds the resolution payload for a canvas of the given size.
func NewResolutionUniform(width, height int) GPUResolutionUniform {
	return GPUResolutionUniform{Dims: [4]float32{float32(width), float32(height), 0, 0}}
}

// Size returns the size of the GPUResolutionUniform struct in bytes.
func (g *GPUResolutionUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUResolutionUniform struct into a byte buffer suitable for GPU upload.
func (g *GPUResolutionUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Dims[i]))
	}
	return buf
}
