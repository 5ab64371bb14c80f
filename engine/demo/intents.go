package demo

import (
	"log"

	"github.com/Carmen-Shannon/oxy-spine/common"
)

// Intent is a state change queued by an input handler and applied by World.Update.
type Intent interface {
	apply(w *World)
}

// HeadTo grabs the head and snaps it to P, in clip space. The wander is cancelled.
type HeadTo struct {
	P common.Vec2
}

func (i HeadTo) apply(w *World) {
	w.dragging = true
	w.wander.Cancel()
	w.setHead(i.P)
}

// Release lets go of the head.
type Release struct{}

func (Release) apply(w *World) {
	w.dragging = false
}

// PointerDown is a canvas button press in pixels. Left grabs the head, right appends a spine
// point and middle starts orbiting.
type PointerDown struct {
	Button int
	X, Y   float32
}

func (i PointerDown) apply(w *World) {
	switch i.Button {
	case common.MouseButtonLeft:
		HeadTo{P: w.toClip(i.X, i.Y)}.apply(w)
	case common.MouseButtonRight:
		AddPoint{P: w.toClip(i.X, i.Y)}.apply(w)
	case common.MouseButtonMiddle:
		w.cam.PointerDown(i.X, i.Y)
	}
}

// PointerMove is a cursor move in canvas pixels. It drags the head while it is held and
// orbits while the middle button is held.
type PointerMove struct {
	X, Y float32
}

func (i PointerMove) apply(w *World) {
	if w.dragging {
		w.setHead(w.toClip(i.X, i.Y))
	}
	w.cam.PointerMove(i.X, i.Y)
}

// PointerUp is a canvas button release.
type PointerUp struct {
	Button int
}

func (i PointerUp) apply(w *World) {
	switch i.Button {
	case common.MouseButtonLeft:
		Release{}.apply(w)
	case common.MouseButtonMiddle:
		w.cam.PointerUp()
	}
}

// PointerLeave ends every drag when the cursor leaves the canvas.
type PointerLeave struct{}

func (PointerLeave) apply(w *World) {
	Release{}.apply(w)
	w.cam.PointerLeave()
}

// Wheel zooms the orbit camera by a canvas wheel delta.
type Wheel struct {
	DeltaY float32
}

func (i Wheel) apply(w *World) {
	w.cam.Wheel(i.DeltaY)
}

// Resize updates the canvas size used for pointer mapping.
type Resize struct {
	Width, Height int
}

func (i Resize) apply(w *World) {
	if i.Width > 0 && i.Height > 0 {
		w.width, w.height = float32(i.Width), float32(i.Height)
	}
}

// AddPoint appends a spine point at P, in clip space. The new joint copies the tail's axes.
type AddPoint struct {
	P common.Vec2
}

func (i AddPoint) apply(w *World) {
	w.points = append(w.points, i.P)
}

// Reset restores the preset spine.
type Reset struct{}

func (Reset) apply(w *World) {
	if err := w.reset(); err != nil {
		log.Printf("[World] reset: %v", err)
	}
}

// ToggleWander enables or disables the idle wander.
type ToggleWander struct{}

func (ToggleWander) apply(w *World) {
	w.wandering = !w.wandering
	if !w.wandering {
		w.wander.Cancel()
	}
}

// TogglePoints shows or hides the joint markers.
type TogglePoints struct{}

func (TogglePoints) apply(w *World) {
	w.showPoints = !w.showPoints
}

// ToggleSkin shows or hides the skin outline.
type ToggleSkin struct{}

func (ToggleSkin) apply(w *World) {
	w.showSkin = !w.showSkin
}

// SetView switches the projection.
type SetView struct {
	View View
}

func (i SetView) apply(w *World) {
	w.view = i.View
}

// ReloadShaders re-reads the shader sources through the reload hook.
type ReloadShaders struct{}

func (ReloadShaders) apply(w *World) {
	if err := w.reload(); err != nil {
		log.Printf("[World] %v", err)
	}
}

// KeyIntent maps a key press to its intent.
//
// Parameters:
//   - code: the virtual key code (see common.Key*)
//
// Returns:
//   - Intent: the mapped intent, or nil for an unbound key
func KeyIntent(code uint32) Intent {
	switch code {
	case common.KeyR:
		return Reset{}
	case common.KeyW:
		return ToggleWander{}
	case common.KeySpace:
		return ReloadShaders{}
	case common.Key1:
		return SetView{View: ViewFlat}
	case common.Key2:
		return SetView{View: ViewOrbit}
	case common.Key3:
		return TogglePoints{}
	case common.Key4:
		return ToggleSkin{}
	default:
		return nil
	}
}
