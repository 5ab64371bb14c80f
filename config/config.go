// Package config loads the oxy-spine runtime settings from a TOML file layered over built-in
// defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Present mode names accepted in [renderer].
const (
	PresentVSync    = "vsync"
	PresentUncapped = "uncapped"
)

// Config is the full settings tree. Every field has a default from Default.
type Config struct {
	Window   Window   `toml:"window"`
	Renderer Renderer `toml:"renderer"`
	Spine    Spine    `toml:"spine"`
	Shaders  Shaders  `toml:"shaders"`
	Engine   Engine   `toml:"engine"`
}

// Window sets the initial client area and the limits user resizes are held to.
type Window struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	MinWidth  int    `toml:"min_width"`
	MinHeight int    `toml:"min_height"`
	MaxWidth  int    `toml:"max_width"`
	MaxHeight int    `toml:"max_height"`
}

type Renderer struct {
	PresentMode   string     `toml:"present_mode"`
	ClearColor    [4]float64 `toml:"clear_color"`
	ForceSoftware bool       `toml:"force_software"`
}

// Spine configures the animated creature. Zero axes mean the preset's own axes.
type Spine struct {
	Preset        string  `toml:"preset"`
	SegmentLength float32 `toml:"segment_length"`
	Iterations    int     `toml:"iterations"`
	AxisA         float32 `toml:"axis_a"`
	AxisB         float32 `toml:"axis_b"`
	StrokeWidth   float32 `toml:"stroke_width"`
}

// Shaders names the hot-reloadable program. Empty paths mean the embedded sources.
type Shaders struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
	Watch    bool   `toml:"watch"`
}

type Engine struct {
	FrameLimit int      `toml:"frame_limit"`
	Profiling  bool     `toml:"profiling"`
	WanderIdle Duration `toml:"wander_idle"`
}

// Duration is a time.Duration written as a Go duration string, e.g. "3s".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "oxy-spine",
			Width:     864,
			Height:    1024,
			MinWidth:  320,
			MinHeight: 240,
			MaxWidth:  2560,
			MaxHeight: 1600,
		},
		Renderer: Renderer{
			PresentMode: PresentVSync,
			ClearColor:  [4]float64{1, 0, 0, 1},
		},
		Spine: Spine{
			Preset:        "worm",
			SegmentLength: 0.05,
			Iterations:    9,
			StrokeWidth:   0.05,
		},
		Shaders: Shaders{
			Watch: true,
		},
		Engine: Engine{
			FrameLimit: 0,
			WanderIdle: Duration{3 * time.Second},
		},
	}
}

// Load reads path and overlays it on Default. An empty path returns the defaults. Unknown keys
// are rejected so typos do not silently fall back.
//
// Parameters:
//   - path: the TOML file, may be empty
//
// Returns:
//   - Config: the merged settings
//   - error: read, decode or validation failures
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	log.Printf("[Config] loaded %s", path)
	return cfg, nil
}

// Decode overlays TOML data on cfg and validates the result.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return err
	}
	return cfg.Validate()
}

// Encode writes cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Validate checks value ranges that decoding cannot.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	w := c.Window
	if w.MinWidth <= 0 || w.MinHeight <= 0 || w.MinWidth > w.MaxWidth || w.MinHeight > w.MaxHeight {
		errs = append(errs, fmt.Errorf("window limits %dx%d..%dx%d must be positive with min <= max", w.MinWidth, w.MinHeight, w.MaxWidth, w.MaxHeight))
	} else if w.Width < w.MinWidth || w.Width > w.MaxWidth || w.Height < w.MinHeight || w.Height > w.MaxHeight {
		errs = append(errs, fmt.Errorf("window size %dx%d is outside %dx%d..%dx%d", w.Width, w.Height, w.MinWidth, w.MinHeight, w.MaxWidth, w.MaxHeight))
	}
	switch c.Renderer.PresentMode {
	case PresentVSync, PresentUncapped:
	default:
		errs = append(errs, fmt.Errorf("present_mode %q must be %q or %q", c.Renderer.PresentMode, PresentVSync, PresentUncapped))
	}
	if c.Spine.SegmentLength <= 0 {
		errs = append(errs, fmt.Errorf("segment_length %v must be positive", c.Spine.SegmentLength))
	}
	if c.Spine.Iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations %d must not be negative", c.Spine.Iterations))
	}
	if c.Spine.AxisA < 0 || c.Spine.AxisB < 0 {
		errs = append(errs, errors.New("spine axes must not be negative"))
	}
	if c.Engine.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("frame_limit %d must not be negative", c.Engine.FrameLimit))
	}
	return errors.Join(errs...)
}
