// Command skinshot rasterizes a spine preset's skin outline to a PNG without a graphics adapter.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-spine/config"
	"github.com/Carmen-Shannon/oxy-spine/engine/animal"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML settings file")
	out := flag.String("out", "skin.png", "output PNG path")
	width := flag.Int("width", 512, "image width in pixels")
	height := flag.Int("height", 512, "image height in pixels")
	relax := flag.Bool("relax", true, "relax the chain to the configured segment length first")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Skinshot] %v", err)
	}
	if err := shoot(cfg.Spine, *out, *width, *height, *relax); err != nil {
		log.Fatalf("[Skinshot] %v", err)
	}
}

func shoot(s config.Spine, path string, w, h int, relax bool) error {
	preset, err := animal.LookupPreset(s.Preset)
	if err != nil {
		return err
	}
	if s.AxisA > 0 && s.AxisB > 0 {
		preset.Axes = []animal.Axes{{A: s.AxisA, B: s.AxisB}}
	}
	if relax {
		animal.SolveChain(preset.Points, s.SegmentLength, s.Iterations)
	}

	a, err := animal.NewAnimal(preset.Points, preset.Axes...)
	if err != nil {
		return err
	}
	if err := a.ComputeSkin(); err != nil {
		return fmt.Errorf("skin: %w", err)
	}

	img := animal.Snapshot(a.Skin, w, h)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("[Skinshot] %s: %d skin points, %.1f%% coverage", path, len(a.Skin), 100*animal.Coverage(img))
	return nil
}
