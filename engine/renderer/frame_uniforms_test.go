package renderer

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeUniformLayout(t *testing.T) {
	u := NewTimeUniform(65432.9, 65400, 7)
	assert.Equal(t, 16, u.Size())
	assert.Equal(t, uint32(432), u.Millis)
	assert.Equal(t, uint32(65), u.Secs)
	assert.Equal(t, uint32(32), u.DtMs)

	b := u.Marshal()
	assert.Len(t, b, 16)
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(b[12:]))
}

func TestTimeUniformClockGoingBackwards(t *testing.T) {
	u := NewTimeUniform(10, 20, 0)
	assert.Zero(t, u.DtMs)
}

func TestResolutionUniformLayout(t *testing.T) {
	u := NewResolutionUniform(864, 1024)
	assert.Equal(t, 16, u.Size())
	assert.Equal(t, [4]float32{864, 1024, 0, 0}, u.Dims)
	assert.Len(t, u.Marshal(), 16)
}
