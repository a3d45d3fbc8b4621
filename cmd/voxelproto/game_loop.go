package main

import (
	"log"
	"strconv"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"voxelproto/internal/graphics"
	"voxelproto/internal/profiling"
	"voxelproto/internal/render"
	"voxelproto/internal/world"
)

// editInterval paces the demo block edits that exercise the dirty path.
const editInterval = 2 * time.Second

func runGameLoop(window *glfw.Window, backend *graphics.Backend, overlay *graphics.Overlay,
	camera *graphics.Camera, ctrl *controller, w *world.World, registry *render.Registry) {

	frames := 0
	fps := 0
	lastFPSCheck := time.Now()
	lastTime := time.Now()
	lastEdit := time.Now()
	editCount := 0

	for !window.ShouldClose() {
		profiling.ResetFrame()
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		ctrl.update(window, dt)

		// Runtime block edits keep the dirty path exercised: the world
		// flags the chunk, next frame's drain re-meshes it.
		if time.Since(lastEdit) >= editInterval {
			editBlocks(w, registry, editCount)
			editCount++
			lastEdit = now
		}

		// All meshing and uploads happen here, before any draw call.
		scheduled := w.TakeScheduled()
		dirty := w.TakeDirty()
		if err := registry.PrepareFrame(camera, dirty, scheduled); err != nil {
			log.Printf("prepare frame: %v", err)
		}

		backend.BeginFrame()
		registry.Render()

		overlay.Draw([]string{
			"fps " + strconv.Itoa(fps),
			"chunks " + strconv.Itoa(registry.Len()) +
				"  meshed " + strconv.Itoa(len(scheduled)+len(dirty)),
			profiling.TopN(3),
		})

		window.SwapBuffers()
		glfw.PollEvents()

		frames++
		if time.Since(lastFPSCheck) >= time.Second {
			fps = frames
			frames = 0
			lastFPSCheck = time.Now()
		}
	}
}

// editBlocks stacks accent blocks up a column of the origin chunk, one per
// call, wrapping back to the bottom when the column fills.
func editBlocks(w *world.World, registry *render.Registry, n int) {
	origin := world.ChunkPos{X: 0, Z: 0}
	c, ok := w.ChunkAt(origin)
	if !ok {
		return
	}
	dims := c.Dims()
	pos := world.BlockPos{
		X: dims.L / 2,
		Y: n % dims.H,
		Z: dims.L / 2,
	}
	if err := w.PlaceBlock(origin, pos, world.ID(uint8(n))); err != nil {
		log.Printf("edit block: %v", err)
		return
	}
	if err := registry.MarkDirty(origin); err != nil {
		log.Printf("mark dirty: %v", err)
	}
}
