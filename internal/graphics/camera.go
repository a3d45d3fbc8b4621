package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera holds the fly-camera state and projection parameters. It is the
// single producer of the view-projection transform consumed per frame by
// the chunk registry.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // degrees, 0 looks down -Z
	Pitch    float32 // degrees, clamped to avoid gimbal flip

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

// NewCamera creates a camera for the given viewport.
func NewCamera(width, height int, fov float32) *Camera {
	return &Camera{
		Position:    mgl32.Vec3{0, 20, 0},
		Yaw:         -90.0,
		AspectRatio: float32(width) / float32(height),
		FOV:         fov,
		NearPlane:   0.1,
		FarPlane:    1000.0,
	}
}

// SetViewport updates the aspect ratio after a window resize.
func (c *Camera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}

// Forward returns the unit view direction derived from yaw and pitch.
func (c *Camera) Forward() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(pitch) * math.Cos(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Sin(yaw)),
	}.Normalize()
}

// Right returns the unit vector to the camera's right, on the XZ plane.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Forward().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// ViewMatrix looks from the camera position along the view direction.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// ViewProjection returns projection * view, the transform the chunk
// pipeline reads at draw time.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}
