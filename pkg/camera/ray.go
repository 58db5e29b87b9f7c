package camera

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Rand is the uniform [0, 1) source consumed by ray generation. *rand.Rand
// from math/rand and math/rand/v2 both satisfy it.
type Rand interface {
	Float64() float64
}

// Lens holds the per-frame quantities derived from the camera and the frame
// dimensions.
type Lens struct {
	Width  int
	Height int

	ImagePlaneSize float64 // 2 * tan(fov/2)
	JitterSize     float64 // Plane-of-focus scaling for the aperture sample
	PixelSize      float64 // Half the projected pixel footprint
	Aperture       float64
}

// NewLens derives the lens quantities for a width x height frame.
func NewLens(c *Camera, width, height int) Lens {
	ips := 2 * math.Tan(radians(c.fov/2))
	var jitter float64
	if c.FocalLength != 0 {
		jitter = c.ApertureRadius * 2 * (1 - 1/c.FocalLength)
	}
	var pixel float64
	if width > 0 {
		pixel = 1 / float64(width) * ips / 2
	}
	return Lens{
		Width:          width,
		Height:         height,
		ImagePlaneSize: ips,
		JitterSize:     jitter,
		PixelSize:      pixel,
		Aperture:       c.ApertureRadius,
	}
}

// Generator turns flat pixel indices into world-space primary rays. It is a
// per-frame snapshot of the camera and is safe for concurrent use.
type Generator struct {
	Lens
	Pos math3d.Vec3
	Rot math3d.Mat4
}

// NewGenerator snapshots c for a frame of the given size.
func NewGenerator(c *Camera, width, height int) Generator {
	return Generator{
		Lens: NewLens(c, width, height),
		Pos:  c.Pos(),
		Rot:  c.Rotation(),
	}
}

// Generate builds the primary ray for pixel i. The pixel index is mirrored
// (W*H - i - 1) before being split into image coordinates. ok is false only
// when the direction degenerates to zero length.
func (g Generator) Generate(i int, rng Rand) (ray math3d.Ray, ok bool) {
	if g.Width <= 0 || g.Height <= 0 {
		return math3d.Ray{Origin: g.Pos}, false
	}
	angle := rng.Float64() * 2 * math.Pi
	radius := math.Sqrt(rng.Float64())
	jx := math.Cos(angle) * radius
	jz := math.Sin(angle) * radius
	aperture := math3d.V3(jx, 0, jz).Scale(2 * g.Aperture)

	aa := math3d.V3(
		uniform(rng, -1, 1)*g.PixelSize,
		0,
		uniform(rng, -1, 1)*g.PixelSize,
	)

	w, h := float64(g.Width), float64(g.Height)
	idx := g.Width*g.Height - i - 1
	ux := float64(idx % g.Width)
	uy := float64(idx / g.Width)

	dir := math3d.V3(
		(ux-w/2)/h*-g.ImagePlaneSize+jx*g.JitterSize,
		1,
		(uy-h/2)/h*g.ImagePlaneSize+jz*g.JitterSize,
	).Sub(aperture).Add(aa)

	dir = g.Rot.MulVec3Dir(dir)
	origin := g.Rot.MulVec3Dir(aperture).Add(g.Pos).Add(aa)

	if dir.LenSq() == 0 || !dir.IsFinite() {
		return math3d.Ray{Origin: origin}, false
	}
	return math3d.NewRay(origin, dir), true
}

func uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
