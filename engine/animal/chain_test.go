package animal

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/stretchr/testify/assert"
)

func TestSolveChainConverges(t *testing.T) {
	pts := []common.Vec2{common.V2(0, 0), common.V2(1, 0), common.V2(2.5, 0)}
	SolveChain(pts, 1, 9)

	assert.Equal(t, common.V2(0, 0), pts[0])
	for i := 1; i < len(pts); i++ {
		assert.InDelta(t, 1, pts[i].Dist(pts[i-1]), 1e-3)
	}
}

func TestSolveChainKeepsDirection(t *testing.T) {
	pts := []common.Vec2{common.V2(0, 0), common.V2(0, -3)}
	SolveChain(pts, 0.5, 1)
	assert.InDelta(t, 0, pts[1].X, 1e-6)
	assert.InDelta(t, -0.5, pts[1].Y, 1e-6)
}

func TestSolveChainSkipsCoincidentPoints(t *testing.T) {
	pts := []common.Vec2{common.V2(1, 1), common.V2(1, 1), common.V2(1, 2)}
	SolveChain(pts, 0.25, 3)
	assert.Equal(t, common.V2(1, 1), pts[1])
	assert.InDelta(t, 0.25, pts[2].Dist(pts[1]), 1e-5)
}

func TestSolveChainEmptyAndZeroIterations(t *testing.T) {
	assert.NotPanics(t, func() { SolveChain(nil, 1, 9) })

	pts := []common.Vec2{common.V2(0, 0), common.V2(5, 0)}
	SolveChain(pts, 1, 0)
	assert.Equal(t, common.V2(5, 0), pts[1])
}
