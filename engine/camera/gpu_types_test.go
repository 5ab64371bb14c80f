package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGPUCameraUniformLayout(t *testing.T) {
	var g GPUCameraUniform
	for i := range g.ViewProj {
		g.ViewProj[i] = float32(i)
	}
	assert.Equal(t, 64, g.Size())

	buf := g.Marshal()
	assert.Len(t, buf, 64)
	assert.Equal(t, float32(5), math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
	assert.Equal(t, float32(15), math.Float32frombits(binary.LittleEndian.Uint32(buf[60:])))
	assert.Contains(t, GPUCameraUniformSource, "view_proj: mat4x4<f32>")
}
