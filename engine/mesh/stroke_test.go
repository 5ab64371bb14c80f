package mesh

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrokePolylineHorizontal(t *testing.T) {
	pts := []common.Vec2{common.V2(0, 0), common.V2(1, 0), common.V2(2, 0)}
	verts := StrokePolyline(pts, 0.2)
	require.Len(t, verts, 6)

	// left of +X is +Y
	for i, p := range pts {
		l, r := verts[2*i], verts[2*i+1]
		assert.InDelta(t, p.X, l.Position[0], 1e-6)
		assert.InDelta(t, 0.1, l.Position[1], 1e-6)
		assert.InDelta(t, -0.1, r.Position[1], 1e-6)
		assert.Equal(t, float32(0), l.UV[1])
		assert.Equal(t, float32(1), r.UV[1])
		assert.Equal(t, [3]float32{0, 0, 1}, l.Normal)
	}
	assert.InDelta(t, 0, verts[0].UV[0], 1e-6)
	assert.InDelta(t, 0.5, verts[2].UV[0], 1e-6)
	assert.InDelta(t, 1, verts[4].UV[0], 1e-6)
}

func TestStrokePolylineTooShort(t *testing.T) {
	assert.Nil(t, StrokePolyline(nil, 0.1))
	assert.Nil(t, StrokePolyline([]common.Vec2{common.V2(1, 1)}, 0.1))
}

func TestStrokePolylineCoincidentPoints(t *testing.T) {
	verts := StrokePolyline([]common.Vec2{common.V2(0.5, 0.5), common.V2(0.5, 0.5)}, 0.1)
	require.Len(t, verts, 4)
	for _, v := range verts {
		assert.Equal(t, float32(0.5), v.Position[0])
		assert.Equal(t, float32(0.5), v.Position[1])
		assert.Equal(t, float32(0), v.UV[0])
	}
}

func TestAppendStrokeReusesBacking(t *testing.T) {
	pts := []common.Vec2{common.V2(0, 0), common.V2(0, 1)}
	first := AppendStroke(nil, pts, 0.1)
	second := AppendStroke(first[:0], pts, 0.1)
	assert.Equal(t, first, second)
	assert.Same(t, &first[0], &second[0])
}

func TestStrokeLoopCloses(t *testing.T) {
	square := []common.Vec2{common.V2(0, 0), common.V2(1, 0), common.V2(1, 1), common.V2(0, 1)}
	verts := StrokeLoop(square, 0.1)
	require.Len(t, verts, 10)
	assert.Equal(t, verts[0].Position, verts[8].Position)
	assert.Equal(t, verts[1].Position, verts[9].Position)
	assert.InDelta(t, 0, verts[0].UV[0], 1e-6)
	assert.InDelta(t, 1, verts[8].UV[0], 1e-6)
	assert.InDelta(t, 0.25, verts[2].UV[0], 1e-6)

	assert.Nil(t, StrokeLoop(square[:2], 0.1))
}

func TestEndQuads(t *testing.T) {
	assert.Len(t, EndIndices, 12)
	for _, idx := range EndIndices {
		assert.Less(t, idx, uint32(len(EndVertices)))
	}
	for i, v := range EndVertices {
		if i < 4 {
			assert.LessOrEqual(t, v.Position[0], float32(-0.8))
		} else {
			assert.GreaterOrEqual(t, v.Position[0], float32(0.8))
		}
		assert.InDelta(t, 0.25, abs(v.Position[1]), 1e-6)
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
