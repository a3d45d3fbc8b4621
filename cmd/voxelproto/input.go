package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxelproto/internal/graphics"
)

const (
	moveSpeed        = 12.0 // world units per second
	mouseSensitivity = 0.12 // degrees per pixel
	pitchLimit       = 89.0
)

// controller turns per-frame key state and mouse deltas into camera motion.
type controller struct {
	camera     *graphics.Camera
	firstMouse bool
	lastX      float64
	lastY      float64
}

func newController(camera *graphics.Camera) *controller {
	return &controller{camera: camera, firstMouse: true}
}

// update applies held movement keys to the camera position.
func (c *controller) update(window *glfw.Window, dt float64) {
	forward := c.camera.Forward()
	right := c.camera.Right()
	step := float32(moveSpeed * dt)

	var move mgl32.Vec3
	if window.GetKey(glfw.KeyW) == glfw.Press {
		move = move.Add(forward)
	}
	if window.GetKey(glfw.KeyS) == glfw.Press {
		move = move.Sub(forward)
	}
	if window.GetKey(glfw.KeyD) == glfw.Press {
		move = move.Add(right)
	}
	if window.GetKey(glfw.KeyA) == glfw.Press {
		move = move.Sub(right)
	}
	if window.GetKey(glfw.KeySpace) == glfw.Press {
		move = move.Add(mgl32.Vec3{0, 1, 0})
	}
	if window.GetKey(glfw.KeyLeftShift) == glfw.Press {
		move = move.Sub(mgl32.Vec3{0, 1, 0})
	}
	if move.Len() > 0 {
		c.camera.Position = c.camera.Position.Add(move.Normalize().Mul(step))
	}
}

// handleMouseMovement turns cursor deltas into yaw and pitch.
func (c *controller) handleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX, c.lastY = xpos, ypos
		c.firstMouse = false
		return
	}
	dx := xpos - c.lastX
	dy := c.lastY - ypos // window y grows downward
	c.lastX, c.lastY = xpos, ypos

	c.camera.Yaw += float32(dx) * mouseSensitivity
	c.camera.Pitch += float32(dy) * mouseSensitivity
	if c.camera.Pitch > pitchLimit {
		c.camera.Pitch = pitchLimit
	}
	if c.camera.Pitch < -pitchLimit {
		c.camera.Pitch = -pitchLimit
	}
}

func setupInputHandlers(window *glfw.Window, backend *graphics.Backend, overlay *graphics.Overlay, camera *graphics.Camera, ctrl *controller) {
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		ctrl.handleMouseMovement(xpos, ypos)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		backend.SetViewport(width, height)
		overlay.SetViewport(width, height)
		camera.SetViewport(width, height)
	})
}
