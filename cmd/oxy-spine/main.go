// Command oxy-spine opens a window and animates a procedural spine that follows the pointer.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-spine/config"
	"github.com/Carmen-Shannon/oxy-spine/engine"
	"github.com/Carmen-Shannon/oxy-spine/engine/animal"
	"github.com/Carmen-Shannon/oxy-spine/engine/demo"
	"github.com/Carmen-Shannon/oxy-spine/engine/hotreload"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spine/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spine/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML settings file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithSizeLimits(cfg.Window.MinWidth, cfg.Window.MinHeight, cfg.Window.MaxWidth, cfg.Window.MaxHeight),
	)

	backend, err := renderer.NewWGPUBackend(win.SurfaceDescriptor(),
		renderer.WithPresentMode(presentMode(cfg.Renderer.PresentMode)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
	)
	gpuSupported := err == nil
	if !gpuSupported {
		log.Printf("[Main] WebGPU is not supported on this system, nothing to draw: %v", err)
		_ = win.Close()
		os.Exit(0)
	}

	if err := run(cfg, win, backend); err != nil {
		log.Fatalf("[Main] %v", err)
	}
}

func run(cfg config.Config, win window.Window, backend renderer.RendererBackend) error {
	c := cfg.Renderer.ClearColor
	fs, err := renderer.NewFrameState(backend,
		renderer.WithSize(win.Width(), win.Height()),
		renderer.WithClearColor(wgpu.Color{R: c[0], G: c[1], B: c[2], A: c[3]}),
	)
	if err != nil {
		return err
	}
	defer fs.Release()

	program, err := loadProgram(cfg.Shaders)
	if err != nil {
		return err
	}
	reloader, err := renderer.NewHotReloader(fs, "spine", program,
		renderer.WithPipelineOptions(pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleStrip)),
	)
	if err != nil {
		return err
	}
	defer reloader.Release()

	worldOpts := []demo.WorldOption{
		demo.WithChain(cfg.Spine.SegmentLength, cfg.Spine.Iterations),
		demo.WithCanvas(win.Width(), win.Height()),
		demo.WithWanderIdle(cfg.Engine.WanderIdle.Duration),
	}
	if cfg.Shaders.Watch && cfg.Shaders.Vertex != "" && cfg.Shaders.Fragment != "" {
		watcher, err := hotreload.NewWatcher(cfg.Shaders.Vertex, cfg.Shaders.Fragment, reloader)
		if err != nil {
			return err
		}
		defer watcher.Close()
		worldOpts = append(worldOpts, demo.WithReloadHook(func() {
			if err := watcher.Reload(); err != nil {
				log.Printf("[Main] shader reload: %v", err)
			}
		}))
	}

	preset, err := animal.LookupPreset(cfg.Spine.Preset)
	if err != nil {
		return err
	}
	if cfg.Spine.AxisA > 0 && cfg.Spine.AxisB > 0 {
		preset.Axes = []animal.Axes{{A: cfg.Spine.AxisA, B: cfg.Spine.AxisB}}
	}
	world, err := demo.NewWorld(preset, worldOpts...)
	if err != nil {
		return err
	}

	passes := []renderer.RenderPass{
		demo.NewEndQuadsPass(backend, reloader),
		demo.NewStripPass(backend, world, reloader, cfg.Spine.StrokeWidth),
		demo.NewSkinPass(backend, world, reloader, cfg.Spine.StrokeWidth/4),
		demo.NewPointsPass(backend, world, nil),
	}
	defer func() {
		for _, p := range passes {
			if r, ok := p.(interface{ Release() }); ok {
				r.Release()
			}
		}
	}()

	var driver *renderer.FrameDriver
	driver = renderer.NewFrameDriver(fs, world.Camera(),
		renderer.WithUpdate(func(dt time.Duration) {
			world.Update(dt)
			driver.SetProjection(world.Projection())
		}),
		renderer.WithPasses(passes...),
		renderer.WithHotReloader(reloader),
	)
	demo.BindWindow(world, win)

	eng, err := engine.NewEngine(win, driver,
		engine.WithResizeHook(world.Resized),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithRenderFrameLimit(float64(cfg.Engine.FrameLimit)),
	)
	if err != nil {
		return err
	}
	log.Printf("[Main] %s running with the %s preset, %d joints", cfg.Window.Title, preset.Name, len(world.Points()))
	return eng.Run()
}

func presentMode(name string) renderer.PresentMode {
	if name == config.PresentUncapped {
		return renderer.PresentModeUncapped
	}
	return renderer.PresentModeVSync
}

// loadProgram reads the configured shader files, or returns the embedded program when either
// path is empty.
func loadProgram(s config.Shaders) (renderer.Program, error) {
	if s.Vertex == "" || s.Fragment == "" {
		return demo.DefaultProgram(), nil
	}
	vs, err := os.ReadFile(s.Vertex)
	if err != nil {
		return renderer.Program{}, err
	}
	fsrc, err := os.ReadFile(s.Fragment)
	if err != nil {
		return renderer.Program{}, err
	}
	return renderer.Program{Vertex: string(vs), Fragment: string(fsrc)}, nil
}
