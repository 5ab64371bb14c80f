package demo

import "github.com/Carmen-Shannon/oxy-spine/engine/window"

// BindWindow routes the window's input callbacks into the world's intent queue. The resize
// callback stays with the engine, which forwards it to the frame state and then to any hook such
// as World.Resized.
//
// Parameters:
//   - w: the world receiving intents
//   - win: the window whose callbacks are replaced
func BindWindow(w *World, win window.Window) {
	win.SetPointerDownCallback(func(button int, x, y float32) {
		w.Enqueue(PointerDown{Button: button, X: x, Y: y})
	})
	win.SetPointerMoveCallback(func(x, y float32) {
		w.Enqueue(PointerMove{X: x, Y: y})
	})
	win.SetPointerUpCallback(func(button int, _, _ float32) {
		w.Enqueue(PointerUp{Button: button})
	})
	win.SetPointerLeaveCallback(func() {
		w.Enqueue(PointerLeave{})
	})
	win.SetScrollCallback(func(delta float32) {
		w.Enqueue(Wheel{DeltaY: delta})
	})
	win.SetKeyDownCallback(func(code uint32) {
		if in := KeyIntent(code); in != nil {
			w.Enqueue(in)
		}
	})
}

// Resized queues a Resize intent. It matches the engine's resize hook signature.
func (w *World) Resized(width, height int) {
	w.Enqueue(Resize{Width: width, Height: height})
}
