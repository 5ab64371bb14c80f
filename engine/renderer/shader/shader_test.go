package shader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexSource = `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
};

struct InstanceInput {
    @location(3) m0: vec4<f32>,
    @location(4) m1: vec4<f32>,
    @location(5) m2: vec4<f32>,
    @location(6) m3: vec4<f32>,
};

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

// @vertex fn commented_out() {}
@vertex
fn vs_main(v: VertexInput, i: InstanceInput) -> VertexOutput {
    var out: VertexOutput;
    let model = mat4x4<f32>(i.m0, i.m1, i.m2, i.m3);
    out.clip = model * vec4<f32>(v.position, 1.0);
    out.uv = v.uv;
    return out;
}
`

const testFragmentSource = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

func TestNewShaderParsesVertexLayouts(t *testing.T) {
	s, err := NewShader("strip.vert", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.EntryPoint())
	layouts := s.VertexLayouts()
	require.Len(t, layouts, 2)

	assert.Equal(t, uint64(32), layouts[0].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layouts[0].StepMode)
	require.Len(t, layouts[0].Attributes, 3)
	assert.Equal(t, uint64(24), layouts[0].Attributes[2].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, layouts[0].Attributes[2].Format)

	assert.Equal(t, uint64(64), layouts[1].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, layouts[1].StepMode)
	require.Len(t, layouts[1].Attributes, 4)
	assert.Equal(t, uint32(3), layouts[1].Attributes[0].ShaderLocation)
	assert.Equal(t, uint32(6), layouts[1].Attributes[3].ShaderLocation)
}

func TestNewShaderFragment(t *testing.T) {
	s, err := NewShader("strip.frag", ShaderTypeFragment, testFragmentSource)
	require.NoError(t, err)
	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Nil(t, s.VertexLayouts())
	assert.Equal(t, ShaderTypeFragment, s.ShaderType())
}

func TestNewShaderErrors(t *testing.T) {
	_, err := NewShader("blank", ShaderTypeVertex, "  // nothing here\n")
	assert.ErrorIs(t, err, ErrEmptySource)

	_, err = NewShader("wrong-stage", ShaderTypeVertex, testFragmentSource)
	assert.ErrorIs(t, err, ErrNoEntryPoint)

	_, err = NewShaderFromPath("missing", ShaderTypeVertex, filepath.Join(t.TempDir(), "missing.wgsl"))
	assert.Error(t, err)
}

func TestNewShaderFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fs.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(testFragmentSource), 0o644))

	s, err := NewShaderFromPath("fs", ShaderTypeFragment, path)
	require.NoError(t, err)
	assert.Equal(t, "fs_main", s.EntryPoint())
}

func TestPreProcessorIncludesAndGroups(t *testing.T) {
	registry := map[string]IncludeEntry{
		"camera": {Source: "struct CameraUniform { view_proj: mat4x4<f32>, };", Type: "CameraUniform"},
	}
	src := "//@oxy:include camera\n//@oxy:group 1 0 camera camera\n" + testFragmentSource

	s, err := NewShader("fs", ShaderTypeFragment, src, WithIncludes(registry))
	require.NoError(t, err)

	assert.Contains(t, s.Source(), "struct CameraUniform")
	assert.Contains(t, s.Source(), "@group(1) @binding(0) var<uniform> camera: CameraUniform;")
	assert.NotContains(t, s.Source(), "@oxy:")

	decls := s.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, 1, decls[0].Group)
	assert.Equal(t, 0, decls[0].Binding)
	assert.Equal(t, []string{"camera", "camera"}, decls[0].Args)
}

func TestPreProcessorRejectsUnknownTypes(t *testing.T) {
	pp := NewPreProcessor(nil)
	_, err := pp.Process("//@oxy:include nope\n")
	assert.Error(t, err)

	_, err = pp.Process("//@oxy:group x 0 a b\n")
	assert.Error(t, err)

	_, err = pp.Process("//@oxy:frobnicate\n")
	assert.Error(t, err)

	out, err := pp.Process("let a = 1; // plain comment\n")
	require.NoError(t, err)
	assert.Equal(t, "let a = 1; // plain comment\n", out)
}

func TestStripComments(t *testing.T) {
	in := "a /* b /* nested */ c */ d // tail\ne"
	assert.Equal(t, "a  d \ne", stripComments(in))
}

func TestValidateAll(t *testing.T) {
	vs, err := NewShader("vs", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)
	fs, err := NewShader("fs", ShaderTypeFragment, testFragmentSource)
	require.NoError(t, err)

	boom := errors.New("boom")
	calls := 0
	v := ValidatorFunc(func(src string) error {
		calls++
		if src == fs.Source() {
			return boom
		}
		return nil
	})

	err = ValidateAll(v, vs, fs)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fragment shader fs")
	assert.Equal(t, 2, calls)

	assert.ErrorIs(t, ValidateAll(v, nil), ErrEmptySource)
}

func TestNagaValidator(t *testing.T) {
	v := NagaValidator{}
	assert.ErrorIs(t, v.Validate(" \n"), ErrEmptySource)
	assert.Error(t, v.Validate("@fragment fn fs_main( -> {"))
	assert.NoError(t, v.Validate(testFragmentSource))
}
