package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"voxelproto/internal/config"
	"voxelproto/internal/graphics"
	"voxelproto/internal/render"
	"voxelproto/internal/world"
	"voxelproto/internal/worldgen"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "voxelproto.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("init glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}

	backend, err := graphics.NewBackend()
	if err != nil {
		log.Fatalf("init graphics: %v", err)
	}

	overlay, err := graphics.NewOverlay(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		log.Fatalf("init overlay: %v", err)
	}

	camera := graphics.NewCamera(cfg.Window.Width, cfg.Window.Height, cfg.Window.FOV)

	// Create the world and schedule the starting ring of terrain. The
	// first frames drain the scheduled set through the registry.
	gameWorld := world.NewWorld()
	dims := world.Dims{L: cfg.World.ChunkLength, H: cfg.World.ChunkHeight}
	generator := worldgen.NewGenerator(cfg.World.Seed, dims)
	if err := generator.ScheduleAround(gameWorld, cfg.World.RenderDistance); err != nil {
		log.Fatalf("generate spawn terrain: %v", err)
	}

	registry := render.NewRegistry(backend)

	controller := newController(camera)
	setupInputHandlers(window, backend, overlay, camera, controller)

	runGameLoop(window, backend, overlay, camera, controller, gameWorld, registry)
}
