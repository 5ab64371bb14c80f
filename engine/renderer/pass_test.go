package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineCellBuildsOncePerInvalidation(t *testing.T) {
	fs, _ := newTestFrameState(t)
	compiled, err := CompileProgram("cell", Program{Vertex: reloadVertex, Fragment: reloadFragment}, nil)
	require.NoError(t, err)

	build := func() (pipeline.Pipeline, error) {
		return fs.BuildPipeline("cell",
			pipeline.WithVertexShader(compiled.Vertex),
			pipeline.WithFragmentShader(compiled.Fragment),
		)
	}

	var cell PipelineCell
	first, err := cell.Get(build)
	require.NoError(t, err)
	second, err := cell.Get(build)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cell.Builds())

	cell.Invalidate()
	assert.False(t, cell.Built())
	assert.False(t, first.Built())

	third, err := cell.Get(build)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, cell.Builds())
}

func TestPipelineCellFailedBuildStaysEmpty(t *testing.T) {
	var cell PipelineCell
	boom := errors.New("boom")
	_, err := cell.Get(func() (pipeline.Pipeline, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, cell.Built())
	assert.Zero(t, cell.Builds())
}
