package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/Carmen-Shannon/oxy-spine/engine/light"
	"github.com/Carmen-Shannon/oxy-spine/engine/model"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group indices of the shared resource set, grouped by update frequency.
const (
	GroupCommon    uint32 = 0 // per frame
	GroupSpatial   uint32 = 1 // per camera
	GroupTexturing uint32 = 2 // per material
)

// Binding indices within each group.
const (
	BindingTime       = 0
	BindingResolution = 1

	BindingCamera = 0
	BindingModel  = 1
	BindingLight  = 2

	BindingTexture  = 0
	BindingSampler  = 1
	BindingMaterial = 2
)

// Include keys accepted by //@oxy:include and //@oxy:group in shader sources.
const (
	IncludeCamera     = "camera"
	IncludeModel      = "model"
	IncludeLight      = "light"
	IncludeMaterial   = "material"
	IncludeTime       = "time"
	IncludeResolution = "resolution"
)

// ShaderIncludes returns the struct registry for the shared resource set. Shaders that declare
// their uniforms through it always agree with the byte layouts written by the frame state.
func ShaderIncludes() map[string]shader.IncludeEntry {
	return map[string]shader.IncludeEntry{
		IncludeCamera:     {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
		IncludeModel:      {Source: model.GPUModelUniformSource, Type: "ModelUniform"},
		IncludeLight:      {Source: light.GPULightUniformSource, Type: "LightUniform"},
		IncludeMaterial:   {Source: material.GPUMaterialUniformSource, Type: "MaterialUniform"},
		IncludeTime:       {Source: GPUTimeUniformSource, Type: "TimeUniform"},
		IncludeResolution: {Source: GPUResolutionUniformSource, Type: "ResolutionUniform"},
	}
}

// ResourceSet is the fixed set of uniform buffers and bind groups shared by every pass.
// It is built once and its buffers are never resized.
type ResourceSet struct {
	common    bind_group_provider.BindGroupProvider
	spatial   bind_group_provider.BindGroupProvider
	texturing bind_group_provider.BindGroupProvider
}

func uniformEntry(binding uint32, visibility wgpu.ShaderStage, size int) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	entry.Buffer.MinBindingSize = uint64(size)
	return entry
}

func commonLayout() wgpu.BindGroupLayoutDescriptor {
	var (
		t GPUTimeUniform
		r GPUResolutionUniform
	)
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Common Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(BindingTime, wgpu.ShaderStageFragment, t.Size()),
			uniformEntry(BindingResolution, wgpu.ShaderStageFragment, r.Size()),
		},
	}
}

func spatialLayout() wgpu.BindGroupLayoutDescriptor {
	var (
		c camera.GPUCameraUniform
		m model.GPUModelUniform
		l light.GPULightUniform
	)
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Spatial Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(BindingCamera, wgpu.ShaderStageVertex, c.Size()),
			uniformEntry(BindingModel, wgpu.ShaderStageVertex, m.Size()),
			uniformEntry(BindingLight, wgpu.ShaderStageFragment, l.Size()),
		},
	}
}

func texturingLayout() wgpu.BindGroupLayoutDescriptor {
	var mat material.GPUMaterialUniform

	tex := wgpu.BindGroupLayoutEntry{Binding: BindingTexture, Visibility: wgpu.ShaderStageFragment}
	tex.Texture.SampleType = wgpu.TextureSampleTypeFloat
	tex.Texture.ViewDimension = wgpu.TextureViewDimension2D

	samp := wgpu.BindGroupLayoutEntry{Binding: BindingSampler, Visibility: wgpu.ShaderStageFragment}
	samp.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	return wgpu.BindGroupLayoutDescriptor{
		Label: "Texturing Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			tex,
			samp,
			uniformEntry(BindingMaterial, wgpu.ShaderStageFragment, mat.Size()),
		},
	}
}

// NewResourceSet creates every buffer, layout and bind group of the shared resource set and
// seeds the model, light and material uniforms with their defaults.
//
// Parameters:
//   - backend: the backend that owns the device
//
// Returns:
//   - *ResourceSet: the initialized resource set
//   - error: an error if any GPU object could not be created; partial allocations are released
func NewResourceSet(backend RendererBackend) (*ResourceSet, error) {
	rs := &ResourceSet{
		common:    bind_group_provider.NewBindGroupProvider("Common", GroupCommon),
		spatial:   bind_group_provider.NewBindGroupProvider("Spatial", GroupSpatial),
		texturing: bind_group_provider.NewBindGroupProvider("Texturing", GroupTexturing),
	}

	err := func() error {
		if err := backend.InitBindGroup(rs.common, commonLayout()); err != nil {
			return fmt.Errorf("common group: %w", err)
		}
		if err := backend.InitBindGroup(rs.spatial, spatialLayout()); err != nil {
			return fmt.Errorf("spatial group: %w", err)
		}
		if err := backend.InitTextureView(rs.texturing, BindingTexture, common.SolidTexture(255, 255, 255, 255)); err != nil {
			return fmt.Errorf("placeholder texture: %w", err)
		}
		if err := backend.InitSampler(rs.texturing, BindingSampler, common.SamplerStagingData{}); err != nil {
			return fmt.Errorf("linear sampler: %w", err)
		}
		if err := backend.InitBindGroup(rs.texturing, texturingLayout()); err != nil {
			return fmt.Errorf("texturing group: %w", err)
		}
		return nil
	}()
	if err != nil {
		rs.Release()
		return nil, err
	}

	mdl := model.IdentityModel()
	lgt := light.DefaultLight()
	mat := material.NewMaterialUniform(1, 1, 1, 1)
	backend.WriteBuffers([]bind_group_provider.BufferWrite{
		rs.spatial.Stage(BindingModel, mdl.Marshal()),
		rs.spatial.Stage(BindingLight, lgt.Marshal()),
		rs.texturing.Stage(BindingMaterial, mat.Marshal()),
	})

	return rs, nil
}

// Common returns the per-frame group (time, resolution).
func (r *ResourceSet) Common() bind_group_provider.BindGroupProvider {
	return r.common
}

// Spatial returns the per-camera group (camera, model, light).
func (r *ResourceSet) Spatial() bind_group_provider.BindGroupProvider {
	return r.spatial
}

// Texturing returns the per-material group (texture, sampler, material).
func (r *ResourceSet) Texturing() bind_group_provider.BindGroupProvider {
	return r.texturing
}

// Providers returns the three groups ordered by group index.
func (r *ResourceSet) Providers() []bind_group_provider.BindGroupProvider {
	return []bind_group_provider.BindGroupProvider{r.common, r.spatial, r.texturing}
}

// Layouts returns the bind group layouts ordered by group index, ready for a pipeline layout.
func (r *ResourceSet) Layouts() []gpu.BindGroupLayout {
	providers := r.Providers()
	layouts := make([]gpu.BindGroupLayout, len(providers))
	for i, p := range providers {
		layouts[i] = p.BindGroupLayout()
	}
	return layouts
}

// Bind sets all three bind groups on the pass.
//
// Parameters:
//   - pass: the pass encoder to bind into
//
// Returns:
//   - error: an error if any group has not been initialized
func (r *ResourceSet) Bind(pass gpu.PassEncoder) error {
	for _, p := range r.Providers() {
		if p.BindGroup() == nil {
			return errors.New(p.Label() + " bind group not initialized")
		}
		pass.SetBindGroup(p.Group(), p.BindGroup())
	}
	return nil
}

// Release releases every GPU object owned by the resource set.
func (r *ResourceSet) Release() {
	for _, p := range r.Providers() {
		p.Release()
	}
}
