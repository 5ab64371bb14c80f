package renderer

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode = gpu.PresentMode

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync = gpu.PresentModeVSync

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped = gpu.PresentModeUncapped
)

var (
	// ErrNoAdapter is returned when no graphics adapter compatible with the surface is available.
	ErrNoAdapter = errors.New("no compatible graphics adapter")
	// ErrNoDevice is returned when the adapter refuses to create a device.
	ErrNoDevice = errors.New("graphics device unavailable")
	// ErrSurfaceNotConfigured is returned when a frame is requested before ConfigureSurface succeeded.
	ErrSurfaceNotConfigured = errors.New("surface not configured")
	// ErrForeignHandle is returned when a handle created by another backend is passed in.
	ErrForeignHandle = errors.New("handle was not created by this backend")
)

// RendererBackend is the device/surface owner. It holds the connection to the graphics device,
// the presentable surface and its configuration, and is the only component that creates GPU
// objects. Everything it creates is handed out as a gpu handle interface.
type RendererBackend interface {
	// ConfigureSurface (re)applies the surface configuration for the given size and recreates the
	// depth attachment to match. It must be called whenever the size changes and never while a
	// frame is being recorded.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the depth attachment could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode. It takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SurfaceFormat returns the texture format of the configured surface.
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface color format
	SurfaceFormat() wgpu.TextureFormat

	// CreateBuffer allocates a GPU buffer.
	//
	// Parameters:
	//   - label: a debug label
	//   - size: the size in bytes
	//   - usage: the buffer usage flags
	//
	// Returns:
	//   - gpu.Buffer: the created buffer
	//   - error: an error if the allocation failed
	CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (gpu.Buffer, error)

	// WriteBuffer queues a write of data into buf at the given byte offset.
	//
	// Parameters:
	//   - buf: the destination buffer
	//   - offset: the byte offset into buf
	//   - data: the bytes to write
	WriteBuffer(buf gpu.Buffer, offset uint64, data []byte)

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a specific buffer on a BindGroupProvider at a given binding and offset.
	// Writes that do not fit their destination are skipped.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// InitBindGroup creates the layout, the uniform buffers and the bind group described by
	// descriptor and stores them on the provider. Texture and sampler bindings must be
	// initialized first with InitTextureView and InitSampler.
	//
	// Parameters:
	//   - provider: the BindGroupProvider describing the storage for the bind group
	//   - descriptor: the BindGroupLayoutDescriptor describing the layout of the bind group
	//
	// Returns:
	//   - error: an error if the bind group could not be initialized, otherwise nil
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView creates a GPU texture from the staging data, uploads the pixels and
	// stores a view on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created texture view on
	//   - binding: the binding index of the texture
	//   - stagingData: the RGBA pixels and size of the texture
	//
	// Returns:
	//   - error: an error if the texture view could not be created, otherwise nil
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// InitSampler creates a GPU sampler from the staging data and stores it on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created sampler on
	//   - binding: the binding index of the sampler
	//   - stagingData: the sampler configuration, zero values take defaults
	//
	// Returns:
	//   - error: an error if the sampler could not be created, otherwise nil
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.SamplerStagingData) error

	// RegisterRenderPipeline builds the shader modules, pipeline layout and render pipeline for p
	// and stores the result on p. A non-nil error means the device rejected the pipeline and p is
	// left unbuilt.
	//
	// Parameters:
	//   - p: the pipeline description
	//   - layouts: the bind group layouts, indexed by group
	//
	// Returns:
	//   - error: an error if any stage of the build failed
	RegisterRenderPipeline(p pipeline.Pipeline, layouts []gpu.BindGroupLayout) error

	// AcquireFrame acquires the next surface image and creates a command encoder for it.
	//
	// Returns:
	//   - gpu.TextureView: the view of the acquired surface image
	//   - gpu.CommandEncoder: a fresh command encoder
	//   - error: an error if the image could not be acquired or a frame is already held
	AcquireFrame() (gpu.TextureView, gpu.CommandEncoder, error)

	// DepthView returns the depth attachment matching the current surface size, or nil before
	// the surface is configured.
	//
	// Returns:
	//   - gpu.TextureView: the depth view
	DepthView() gpu.TextureView

	// Submit finishes the encoder and submits the recorded commands. The encoder is released
	// whether or not submission succeeded.
	//
	// Parameters:
	//   - enc: the encoder returned by AcquireFrame
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	Submit(enc gpu.CommandEncoder) error

	// Present presents the acquired surface image and releases it. It is a no-op when no
	// image is held.
	Present()

	// Release releases the surface, device and every backend-owned object.
	Release()
}
