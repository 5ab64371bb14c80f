package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfilerLogsOncePerInterval(t *testing.T) {
	start := time.Unix(0, 0)
	now := start
	p := NewProfiler(WithClock(func() time.Time { return now }), WithInterval(time.Second))

	for range 9 {
		now = now.Add(100 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	now = now.Add(100 * time.Millisecond)
	assert.True(t, p.Tick())

	s := p.Stats()
	assert.InDelta(t, 10, s.FPS, 1e-9)
	assert.Equal(t, uint64(10), s.Frames)
	assert.Greater(t, s.HeapMB, 0.0)

	now = now.Add(10 * time.Millisecond)
	assert.False(t, p.Tick())
	assert.Equal(t, uint64(11), p.Stats().Frames)
	assert.InDelta(t, 10, p.Stats().FPS, 1e-9, "fps holds until the next interval")
}
