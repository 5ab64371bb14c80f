package renderer

import (
	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/chewxy/math32"
)

// Projection selects how PopulateCommonBuffers builds the view-projection matrix.
// The set of variants is closed: FlatQuad, Fulcrum, Ortho2D and Custom.
type Projection interface {
	// ViewProj returns the column-major view-projection matrix for a canvas of the given size.
	//
	// Parameters:
	//   - width, height: the canvas size in pixels
	//   - cam: the orbit input, read only by camera-driven variants; may be nil
	//
	// Returns:
	//   - [16]float32: the view-projection matrix
	ViewProj(width, height float32, cam *camera.CameraInput) [16]float32

	sealed()
}

// FlatQuad keeps a unit quad in clip space round on any canvas aspect.
type FlatQuad struct{}

// Fulcrum is a 45° perspective looking at the origin from the orbit eye.
type Fulcrum struct{}

// Ortho2D maps pixel coordinates with a top-left origin to clip space.
type Ortho2D struct {
	Width, Height float32
}

// Custom uses a caller-supplied matrix as is.
type Custom struct {
	Matrix [16]float32
}

func (FlatQuad) sealed() {}
func (Fulcrum) sealed()  {}
func (Ortho2D) sealed()  {}
func (Custom) sealed()   {}

func aspectOf(width, height float32) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return width / height
}

func (FlatQuad) ViewProj(width, height float32, _ *camera.CameraInput) [16]float32 {
	var out [16]float32
	common.AspectScale(out[:], aspectOf(width, height))
	return out
}

func (Fulcrum) ViewProj(width, height float32, cam *camera.CameraInput) [16]float32 {
	var proj, view, out [16]float32
	common.Perspective(proj[:], math32.Pi/4, aspectOf(width, height), 0.1, 100)

	ex, ey, ez := float32(0), float32(0), float32(5)
	if cam != nil {
		ex, ey, ez = cam.Eye()
	}
	common.LookAt(view[:], ex, ey, ez, 0, 0, 0, 0, 1, 0)
	common.Mul4(out[:], proj[:], view[:])
	return out
}

func (o Ortho2D) ViewProj(width, height float32, _ *camera.CameraInput) [16]float32 {
	w, h := o.Width, o.Height
	if w <= 0 || h <= 0 {
		w, h = width, height
	}
	var out [16]float32
	common.Ortho(out[:], 0, w, h, 0, -1, 1)
	return out
}

func (c Custom) ViewProj(_, _ float32, _ *camera.CameraInput) [16]float32 {
	return c.Matrix
}
