package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/Carmen-Shannon/oxy-spine/engine/light"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrForeignToken is returned when a token is ended on a FrameState that did not begin it.
var ErrForeignToken = errors.New("frame token belongs to another frame state")

// FrameState orchestrates one render per tick. It exclusively owns the backend and the shared
// resource set, and keeps the frame counter and the previous frame's timestamp.
type FrameState struct {
	backend   RendererBackend
	resources *ResourceSet

	width, height int
	// pendingSize holds a resize that arrived while a token was live
	pendingSize *[2]int

	frameCounter uint32
	prevMs       float64
	clock        func() float64
	clearColor   wgpu.Color

	live *FrameToken
}

// NewFrameState configures the surface, builds the shared resource set and takes ownership of
// the backend.
//
// Parameters:
//   - backend: the device/surface owner
//   - opts: a variadic list of FrameStateOption functions
//
// Returns:
//   - *FrameState: the ready frame state
//   - error: an error if the surface could not be configured or the resource set built
func NewFrameState(backend RendererBackend, opts ...FrameStateOption) (*FrameState, error) {
	start := time.Now()
	fs := &FrameState{
		backend: backend,
		width:   864,
		height:  1024,
		clock: func() float64 {
			return float64(time.Since(start).Microseconds()) / 1000
		},
		clearColor: wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	for _, opt := range opts {
		opt(fs)
	}

	if err := backend.ConfigureSurface(fs.width, fs.height); err != nil {
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	rs, err := NewResourceSet(backend)
	if err != nil {
		return nil, fmt.Errorf("resource set: %w", err)
	}
	fs.resources = rs
	fs.prevMs = fs.clock()

	return fs, nil
}

// BeginFrame acquires the next surface image and records the frame's clear pass. Every pass
// recorded through the returned token loads what is already there.
//
// Returns:
//   - *FrameToken: the token for this frame
//   - error: ErrFrameInFlight if the previous token was not ended, or a wrapped ErrSurfaceLost
func (fs *FrameState) BeginFrame() (*FrameToken, error) {
	if fs.live != nil {
		return nil, ErrFrameInFlight
	}

	color, enc, err := fs.backend.AcquireFrame()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	}
	depth := fs.backend.DepthView()

	clear := enc.BeginRenderPass(gpu.PassDescriptor{
		Label:      "Clear",
		Color:      color,
		Depth:      depth,
		Clear:      true,
		ClearColor: fs.clearColor,
	})
	clear.End()

	fs.live = &FrameToken{
		owner:   fs,
		encoder: enc,
		color:   color,
		depth:   depth,
	}
	return fs.live, nil
}

// PopulateCommonBuffers writes the view-projection matrix, the resolution and the time payload,
// then advances the frame counter and the previous timestamp.
//
// Parameters:
//   - projection: selects how the view-projection matrix is built
//   - cam: the orbit input, used by camera-driven projections; may be nil
//
// Returns:
//   - error: an error if a payload does not fit its uniform buffer
func (fs *FrameState) PopulateCommonBuffers(projection Projection, cam *camera.CameraInput) error {
	if projection == nil {
		projection = FlatQuad{}
	}
	now := fs.clock()

	cu := camera.GPUCameraUniform{ViewProj: projection.ViewProj(float32(fs.width), float32(fs.height), cam)}
	ru := NewResolutionUniform(fs.width, fs.height)
	tu := NewTimeUniform(now, fs.prevMs, fs.frameCounter)

	writes := []bind_group_provider.BufferWrite{
		fs.resources.Spatial().Stage(BindingCamera, cu.Marshal()),
		fs.resources.Common().Stage(BindingResolution, ru.Marshal()),
		fs.resources.Common().Stage(BindingTime, tu.Marshal()),
	}
	if err := fs.flush(writes); err != nil {
		return err
	}

	fs.frameCounter++
	fs.prevMs = now
	return nil
}

// SetLight rewrites the light uniform.
func (fs *FrameState) SetLight(l light.GPULightUniform) error {
	return fs.flush([]bind_group_provider.BufferWrite{
		fs.resources.Spatial().Stage(BindingLight, l.Marshal()),
	})
}

// SetMaterial rewrites the material uniform.
func (fs *FrameState) SetMaterial(m material.GPUMaterialUniform) error {
	return fs.flush([]bind_group_provider.BufferWrite{
		fs.resources.Texturing().Stage(BindingMaterial, m.Marshal()),
	})
}

func (fs *FrameState) flush(writes []bind_group_provider.BufferWrite) error {
	for _, w := range writes {
		if !w.Fits() {
			return fmt.Errorf("%s binding %d: %d bytes do not fit", w.Provider.Label(), w.Binding, len(w.Data))
		}
	}
	fs.backend.WriteBuffers(writes)
	return nil
}

// EndFrame submits the token's commands, presents the surface and consumes the token.
// A resize deferred during the frame is applied afterwards.
//
// Parameters:
//   - tok: the token returned by BeginFrame
//
// Returns:
//   - error: ErrFrameTokenConsumed on a second call, or the submit/resize error
func (fs *FrameState) EndFrame(tok *FrameToken) error {
	if tok.Consumed() {
		return ErrFrameTokenConsumed
	}
	if tok.owner != fs {
		return ErrForeignToken
	}

	enc := tok.take()
	fs.live = nil

	submitErr := fs.backend.Submit(enc)
	fs.backend.Present()

	var resizeErr error
	if fs.pendingSize != nil {
		size := *fs.pendingSize
		fs.pendingSize = nil
		resizeErr = fs.Resize(size[0], size[1])
	}
	return errors.Join(submitErr, resizeErr)
}

// Resize reconfigures the surface for the new canvas size. While a token is live the resize
// is deferred until EndFrame so the configuration never changes mid-frame.
//
// Parameters:
//   - width, height: the new canvas size in pixels
//
// Returns:
//   - error: an error if the surface could not be reconfigured
func (fs *FrameState) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if fs.live != nil {
		fs.pendingSize = &[2]int{width, height}
		return nil
	}
	if width == fs.width && height == fs.height {
		return nil
	}
	if err := fs.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("resize %dx%d: %w", width, height, err)
	}
	fs.width, fs.height = width, height
	return nil
}

// Resolution returns the current canvas size.
func (fs *FrameState) Resolution() (width, height int) {
	return fs.width, fs.height
}

// Resources returns the shared resource set.
func (fs *FrameState) Resources() *ResourceSet {
	return fs.resources
}

// Backend returns the device/surface owner.
func (fs *FrameState) Backend() RendererBackend {
	return fs.backend
}

// FrameCounter returns the id the next PopulateCommonBuffers call will write.
func (fs *FrameState) FrameCounter() uint32 {
	return fs.frameCounter
}

// InFlight reports whether a token is live.
func (fs *FrameState) InFlight() bool {
	return fs.live != nil
}

// Release releases the resource set and the backend.
func (fs *FrameState) Release() {
	if fs.resources != nil {
		fs.resources.Release()
		fs.resources = nil
	}
	fs.backend.Release()
}
