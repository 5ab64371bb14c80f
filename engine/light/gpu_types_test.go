package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLightMarshal(t *testing.T) {
	l := DefaultLight()
	assert.Equal(t, 32, l.Size())

	buf := l.Marshal()
	assert.Len(t, buf, 32)
	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	assert.Equal(t, float32(-0.8), read(0))
	assert.Equal(t, float32(-1), read(4))
	assert.Equal(t, float32(-1), read(8))
	assert.Equal(t, float32(0), read(16))
	assert.Equal(t, float32(1), read(20))
	assert.Equal(t, float32(1), read(24))
}
