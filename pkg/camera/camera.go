// Package camera models the pinhole/thin-lens camera shared by the path
// tracer and the wireframe projector.
//
// The scene is Z-up. A camera with zero rotation looks along +Y.
package camera

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Fixed projection parameters for the wireframe overlay.
const (
	OverlayAspect = 1.0
	OverlayNear   = 1.0
	OverlayFar    = 10.0
)

// Camera is a positioned and rotated viewpoint with lens parameters.
type Camera struct {
	Name string

	// Thin-lens parameters. An ApertureRadius of 0 is a pinhole.
	ApertureRadius float64
	FocalLength    float64

	pos math3d.Vec3
	rot math3d.Vec3 // Euler angles in radians, applied z then y then x
	fov float64     // Vertical field of view in degrees

	// Cached matrices (computed on demand)
	rotation   math3d.Mat4
	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4
	poseDirty  bool
	projDirty  bool
}

// New creates a pinhole camera. fov is in degrees.
func New(pos, rot math3d.Vec3, fov float64) *Camera {
	return &Camera{
		FocalLength: 1,
		pos:         pos,
		rot:         rot,
		fov:         fov,
		poseDirty:   true,
		projDirty:   true,
	}
}

// Default returns a camera a few units behind the origin looking along +Y.
func Default() *Camera {
	return New(math3d.V3(0, -5, 1), math3d.Zero3(), 60)
}

// Pos returns the camera position.
func (c *Camera) Pos() math3d.Vec3 { return c.pos }

// Rot returns the Euler rotation in radians.
func (c *Camera) Rot() math3d.Vec3 { return c.rot }

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float64 { return c.fov }

// SetPose sets position and rotation together.
func (c *Camera) SetPose(pos, rot math3d.Vec3) {
	c.pos = pos
	c.rot = rot
	c.poseDirty = true
}

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(fov float64) {
	c.fov = fov
	c.projDirty = true
}

// SetLens sets the aperture radius and focal length.
func (c *Camera) SetLens(aperture, focal float64) {
	c.ApertureRadius = aperture
	c.FocalLength = focal
}

// Rotation returns Rz * Ry * Rx for the current pose.
func (c *Camera) Rotation() math3d.Mat4 {
	c.updatePose()
	return c.rotation
}

// Forward returns the viewing direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Rotation().MulVec3Dir(math3d.Forward())
}

// Right returns the camera's local +X axis in world space.
func (c *Camera) Right() math3d.Vec3 {
	return c.Rotation().MulVec3Dir(math3d.V3(1, 0, 0))
}

// Up returns the camera's local +Z axis in world space.
func (c *Camera) Up() math3d.Vec3 {
	return c.Rotation().MulVec3Dir(math3d.Up())
}

// ViewMatrix returns LookAt(pos, pos+forward, worldUp).
func (c *Camera) ViewMatrix() math3d.Mat4 {
	c.updatePose()
	return c.viewMatrix
}

// ProjectionMatrix returns the overlay projection: the camera fov with a
// fixed square aspect and near/far planes of 1 and 10.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(radians(c.fov), OverlayAspect, OverlayNear, OverlayFar)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

func (c *Camera) updatePose() {
	if !c.poseDirty {
		return
	}
	c.rotation = math3d.EulerZYX(c.rot)
	dir := c.rotation.MulVec3Dir(math3d.Forward())
	c.viewMatrix = math3d.LookAt(c.pos, c.pos.Add(dir), math3d.Up())
	c.poseDirty = false
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
