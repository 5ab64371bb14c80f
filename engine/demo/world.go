package demo

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-spine/common"
	"github.com/Carmen-Shannon/oxy-spine/engine/animal"
	"github.com/Carmen-Shannon/oxy-spine/engine/camera"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
)

// View selects how the world is projected.
type View int

const (
	// ViewFlat draws the spine in clip space with aspect correction.
	ViewFlat View = iota
	// ViewOrbit draws the same geometry through the orbiting perspective camera.
	ViewOrbit
)

// World is the single owner of the animated state: the spine points, the animal built on them,
// the orbit input and the idle wander. Input handlers never touch it directly; they Enqueue
// intents which Update applies at the start of the next tick.
type World struct {
	mu    sync.Mutex
	queue []Intent

	preset     animal.Preset
	points     []common.Vec2
	animal     *animal.Animal
	cam        *camera.CameraInput
	wander     *animal.Wander
	segLen     float32
	iterations int

	width, height float32
	dragging      bool
	wandering     bool
	view          View
	showPoints    bool
	showSkin      bool

	onReload func()
	skinErr  error
}

// NewWorld creates a world from a spine preset.
//
// Parameters:
//   - preset: the starting spine and its ellipse axes
//   - opts: a variadic list of WorldOption functions
//
// Returns:
//   - *World: the world, with its skin computed once
//   - error: if the preset axes do not fit its points
func NewWorld(preset animal.Preset, opts ...WorldOption) (*World, error) {
	w := &World{
		preset:     preset,
		cam:        camera.NewCameraInput(),
		wander:     animal.NewWander(3 * time.Second),
		segLen:     0.05,
		iterations: 9,
		width:      864,
		height:     1024,
		wandering:  true,
		showPoints: true,
		showSkin:   true,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.reset(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) reset() error {
	w.points = append(w.points[:0], w.preset.Points...)
	a, err := animal.NewAnimal(w.points, w.preset.Axes...)
	if err != nil {
		return err
	}
	w.animal = a
	w.dragging = false
	w.wander.Cancel()
	w.relax()
	return nil
}

// Enqueue queues intents for the next Update. Safe to call from any goroutine.
func (w *World) Enqueue(intents ...Intent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queue = append(w.queue, intents...)
}

// Pending returns the number of queued intents.
func (w *World) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

// Update drains the intent queue, lets the wander steer an idle head, relaxes the chain and
// recomputes the skin. It is the frame driver's update hook.
//
// Parameters:
//   - dt: the time since the previous tick
func (w *World) Update(dt time.Duration) {
	w.mu.Lock()
	queue := w.queue
	w.queue = nil
	w.mu.Unlock()

	for _, in := range queue {
		in.apply(w)
	}

	if !w.dragging && w.wandering && len(w.points) > 0 {
		if head, ok := w.wander.Update(dt, w.points[0]); ok {
			w.points[0] = head
		}
	}
	w.relax()
}

func (w *World) relax() {
	animal.SolveChain(w.points, w.segLen, w.iterations)
	w.animal.SyncSpine(w.points)

	err := w.animal.ComputeSkin()
	if err != nil && (w.skinErr == nil || err.Error() != w.skinErr.Error()) {
		log.Printf("[World] skin kept from last tick: %v", err)
	}
	w.skinErr = err
}

func (w *World) toClip(x, y float32) common.Vec2 {
	return common.ClipFromCanvas(x, y, w.width, w.height)
}

func (w *World) setHead(p common.Vec2) {
	if len(w.points) > 0 {
		w.points[0] = p
	}
}

// Points returns the relaxed spine, head first. The slice is owned by the world.
func (w *World) Points() []common.Vec2 {
	return w.points
}

// Skin returns the current closed outline.
func (w *World) Skin() []common.Vec2 {
	return w.animal.Skin
}

// Animal returns the spine's joints and skin.
func (w *World) Animal() *animal.Animal {
	return w.animal
}

// Camera returns the orbit input.
func (w *World) Camera() *camera.CameraInput {
	return w.cam
}

// Dragging reports whether the head is held by the pointer.
func (w *World) Dragging() bool {
	return w.dragging
}

// Wandering reports whether the idle wander is enabled.
func (w *World) Wandering() bool {
	return w.wandering
}

// Wander returns the idle autopilot.
func (w *World) Wander() *animal.Wander {
	return w.wander
}

// SkinError returns the error from the last skin computation, if the skin is stale.
func (w *World) SkinError() error {
	return w.skinErr
}

// ShowPoints reports whether the joint markers are drawn.
func (w *World) ShowPoints() bool {
	return w.showPoints
}

// ShowSkin reports whether the skin outline is drawn.
func (w *World) ShowSkin() bool {
	return w.showSkin
}

// View returns the selected view.
func (w *World) View() View {
	return w.view
}

// Projection returns the projection for the selected view.
func (w *World) Projection() renderer.Projection {
	if w.view == ViewOrbit {
		return renderer.Fulcrum{}
	}
	return renderer.FlatQuad{}
}

// Canvas returns the canvas size used to map pointer positions.
func (w *World) Canvas() (width, height float32) {
	return w.width, w.height
}

var errNoReload = errors.New("no shader reload hook")

// reload runs the reload hook.
func (w *World) reload() error {
	if w.onReload == nil {
		return errNoReload
	}
	w.onReload()
	return nil
}
