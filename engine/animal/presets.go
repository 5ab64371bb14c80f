package animal

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-spine/common"
)

// Preset names accepted by LookupPreset.
const (
	PresetWorm = "worm"
	PresetFish = "fish"
)

// Preset is a starting spine and the ellipse axes that go with it.
type Preset struct {
	Name   string
	Points []common.Vec2
	Axes   []Axes
}

// Worm returns the worm spine: a stepped polyline from the bottom-left corner to the origin.
func Worm() []common.Vec2 {
	return []common.Vec2{
		common.V2(-1.0, -1.0),
		common.V2(-0.8, -0.8),
		common.V2(-0.6, -0.8),
		common.V2(-0.4, -0.8),
		common.V2(-0.2, -0.8),
		common.V2(-0.2, -0.6),
		common.V2(-0.2, -0.4),
		common.V2(-0.2, -0.2),
		common.V2(0.0, 0.0),
	}
}

// FishSpine returns the fish spine: eight points on a diagonal from (-0.1, 0).
func FishSpine() []common.Vec2 {
	out := make([]common.Vec2, 8)
	for i := range out {
		out[i] = common.V2(-0.1-0.1*float32(i), -0.1*float32(i))
	}
	return out
}

// LookupPreset returns a fresh copy of the named preset.
//
// Parameters:
//   - name: PresetWorm or PresetFish
//
// Returns:
//   - Preset: the spine and its axes
//   - error: for an unknown name
func LookupPreset(name string) (Preset, error) {
	switch name {
	case PresetWorm:
		pts := Worm()
		return Preset{Name: name, Points: pts, Axes: []Axes{{A: 0.03, B: 0.04}}}, nil
	case PresetFish:
		pts := FishSpine()
		return Preset{Name: name, Points: pts, Axes: TaperedAxes(Axes{A: 0.06, B: 0.09}, Axes{A: 0.02, B: 0.02}, len(pts))}, nil
	default:
		return Preset{}, fmt.Errorf("unknown spine preset %q", name)
	}
}
