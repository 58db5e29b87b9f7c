// Package movement maps discrete input actions onto a smoothly moving
// camera. Every action is an impulse on a velocity that a critically damped
// spring pulls back to zero.
package movement

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/prism/pkg/camera"
	"github.com/taigrr/prism/pkg/math3d"
)

// Action is one input impulse.
type Action int

const (
	Forward Action = iota
	Back
	Left
	Right
	Up
	Down
	YawLeft
	YawRight
	PitchUp
	PitchDown
)

// Settle is the speed below which an axis counts as stopped.
const Settle = 1e-4

// maxPitch keeps the view direction away from the world up vector, where the
// look-at basis degenerates.
const maxPitch = math.Pi/2 - 0.01

// Axis tracks one velocity with spring decay.
type Axis struct {
	Velocity float64
	spring   harmonica.Spring
	accel    float64 // Spring's own velocity while animating Velocity to 0
}

// NewAxis creates an axis updated fps times per second.
func NewAxis(fps int) Axis {
	return Axis{
		// Frequency 4, damping 1: critically damped, no overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Step returns the displacement for this frame and decays the velocity.
func (a *Axis) Step() float64 {
	d := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	if math.Abs(a.Velocity) < Settle && math.Abs(a.accel) < Settle {
		a.Velocity, a.accel = 0, 0
	}
	return d
}

// Moving reports whether the axis still has velocity.
func (a *Axis) Moving() bool {
	return a.Velocity != 0
}

// Controller turns actions into camera pose changes.
type Controller struct {
	// Impulses added per action, in units (or radians) per frame.
	MoveSpeed float64
	TurnSpeed float64

	Surge, Sway, Heave Axis // Forward, right and world-up translation
	Yaw, Pitch         Axis

	fps int
}

// NewController creates a controller for the given frame rate.
func NewController(fps int) *Controller {
	if fps <= 0 {
		fps = 30
	}
	c := &Controller{
		MoveSpeed: 0.08,
		TurnSpeed: 0.03,
		fps:       fps,
	}
	c.Reset()
	return c
}

// Reset stops all motion.
func (c *Controller) Reset() {
	c.Surge = NewAxis(c.fps)
	c.Sway = NewAxis(c.fps)
	c.Heave = NewAxis(c.fps)
	c.Yaw = NewAxis(c.fps)
	c.Pitch = NewAxis(c.fps)
}

// Push applies one action impulse.
func (c *Controller) Push(a Action) {
	switch a {
	case Forward:
		c.Surge.Velocity += c.MoveSpeed
	case Back:
		c.Surge.Velocity -= c.MoveSpeed
	case Right:
		c.Sway.Velocity += c.MoveSpeed
	case Left:
		c.Sway.Velocity -= c.MoveSpeed
	case Up:
		c.Heave.Velocity += c.MoveSpeed
	case Down:
		c.Heave.Velocity -= c.MoveSpeed
	case YawLeft:
		c.Yaw.Velocity += c.TurnSpeed
	case YawRight:
		c.Yaw.Velocity -= c.TurnSpeed
	case PitchUp:
		c.Pitch.Velocity += c.TurnSpeed
	case PitchDown:
		c.Pitch.Velocity -= c.TurnSpeed
	}
}

// Moving reports whether any axis has velocity left.
func (c *Controller) Moving() bool {
	return c.Surge.Moving() || c.Sway.Moving() || c.Heave.Moving() ||
		c.Yaw.Moving() || c.Pitch.Moving()
}

// Update advances one frame and writes the new pose to cam. It reports
// whether the pose changed. Call it once per frame before generating rays.
func (c *Controller) Update(cam *camera.Camera) bool {
	if !c.Moving() {
		return false
	}

	surge, sway, heave := c.Surge.Step(), c.Sway.Step(), c.Heave.Step()
	yaw, pitch := c.Yaw.Step(), c.Pitch.Step()

	rot := cam.Rot()
	rot.Z += yaw
	rot.X = math.Max(-maxPitch, math.Min(maxPitch, rot.X+pitch))

	// Translate in the frame of the updated heading.
	heading := math3d.RotateZ(rot.Z)
	forward := heading.MulVec3Dir(math3d.Forward())
	right := heading.MulVec3Dir(math3d.V3(1, 0, 0))
	pos := cam.Pos().
		Add(forward.Scale(surge)).
		Add(right.Scale(sway)).
		Add(math3d.Up().Scale(heave))

	moved := pos != cam.Pos() || rot != cam.Rot()
	if moved {
		cam.SetPose(pos, rot)
	}
	return moved
}
