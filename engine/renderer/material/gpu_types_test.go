package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialUniformPadding(t *testing.T) {
	m := NewMaterialUniform(0.25, 0.5, 0.75, 1)
	assert.Equal(t, 32, m.Size())

	buf := m.Marshal()
	assert.Len(t, buf, 32)
	assert.Equal(t, float32(0.75), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
	assert.Equal(t, make([]byte, 16), buf[16:])
}
