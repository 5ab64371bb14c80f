package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/renderertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceSetBindsEveryGroup(t *testing.T) {
	fs, backend := newTestFrameState(t)
	tok, err := fs.BeginFrame()
	require.NoError(t, err)

	enc, err := tok.Pass("bind", false)
	require.NoError(t, err)
	require.NoError(t, fs.Resources().Bind(enc))
	enc.End()
	require.NoError(t, fs.EndFrame(tok))

	pass := backend.LastEncoder().Passes[1]
	assert.Len(t, pass.BindGroups, 3)
	assert.Same(t, fs.Resources().Spatial().BindGroup(), pass.BindGroups[GroupSpatial])
}

func TestResourceSetReleasesOnFailure(t *testing.T) {
	backend := renderertest.NewFakeBackend(10, 10)
	backend.FailCreateBuffer = errors.New("oom")

	_, err := NewResourceSet(backend)
	assert.Error(t, err)
	assert.Zero(t, backend.LiveBuffers())
}

func TestShaderIncludesCoverEveryUniform(t *testing.T) {
	inc := ShaderIncludes()
	for _, key := range []string{IncludeCamera, IncludeModel, IncludeLight, IncludeMaterial, IncludeTime, IncludeResolution} {
		entry, ok := inc[key]
		require.True(t, ok, key)
		assert.Contains(t, entry.Source, "struct "+entry.Type)
	}
}
