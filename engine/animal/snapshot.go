package animal

import (
	"image"
	"image/color"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"golang.org/x/image/vector"
)

// Snapshot rasterizes a closed clip-space outline into a w×h coverage mask. Clip space spans
// [-1, 1] on both axes with +Y up, the image has its origin at the top-left.
//
// Parameters:
//   - outline: the closed polygon, without a repeated first point
//   - w, h: the image size in pixels
//
// Returns:
//   - *image.Alpha: the mask, empty if the outline has fewer than three points
func Snapshot(outline []common.Vec2, w, h int) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	if len(outline) < 3 || w <= 0 || h <= 0 {
		return dst
	}

	r := vector.NewRasterizer(w, h)
	toPixel := func(p common.Vec2) (float32, float32) {
		return (p.X + 1) * 0.5 * float32(w), (1 - p.Y) * 0.5 * float32(h)
	}

	x, y := toPixel(outline[0])
	r.MoveTo(x, y)
	for _, p := range outline[1:] {
		x, y = toPixel(p)
		r.LineTo(x, y)
	}
	r.ClosePath()
	r.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})
	return dst
}

// Coverage returns the fraction of fully or partly covered pixels in a mask.
func Coverage(m *image.Alpha) float64 {
	if len(m.Pix) == 0 {
		return 0
	}
	covered := 0
	for _, a := range m.Pix {
		if a > 0 {
			covered++
		}
	}
	return float64(covered) / float64(len(m.Pix))
}
