package animal

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotFillsClosedSkin(t *testing.T) {
	spine := []common.Vec2{common.V2(0.6, 0), common.V2(0.2, 0), common.V2(-0.2, 0), common.V2(-0.6, 0)}
	a, err := NewAnimal(spine, Axes{A: 0.3, B: 0.3})
	require.NoError(t, err)
	require.NoError(t, a.ComputeSkin())

	m := Snapshot(a.Skin, 100, 100)
	assert.Equal(t, uint8(255), m.AlphaAt(50, 50).A, "centre of the body is inside the loop")
	assert.Equal(t, uint8(0), m.AlphaAt(50, 5).A, "far above the body is outside")
	assert.Equal(t, uint8(0), m.AlphaAt(2, 50).A, "beyond the tail is outside")

	cov := Coverage(m)
	assert.Greater(t, cov, 0.1)
	assert.Less(t, cov, 0.5)
}

func TestSnapshotDegenerateOutline(t *testing.T) {
	m := Snapshot([]common.Vec2{common.V2(0, 0), common.V2(1, 1)}, 8, 8)
	assert.Equal(t, 0.0, Coverage(m))
	assert.Equal(t, 0.0, Coverage(Snapshot(nil, 0, 0)))
}
