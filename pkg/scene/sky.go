package scene

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
)

// Skybox returns the background radiance for rays that miss every sphere.
type Skybox interface {
	Sample(dir math3d.Vec3) render.Col
}

// GradientSky blends from Horizon to Zenith above the horizon and to Ground
// below it.
type GradientSky struct {
	Zenith  render.Col
	Horizon render.Col
	Ground  render.Col
}

// DefaultSky is a pale blue daylight gradient.
func DefaultSky() GradientSky {
	return GradientSky{
		Zenith:  render.Col{R: 0.25, G: 0.45, B: 0.9},
		Horizon: render.Col{R: 0.9, G: 0.9, B: 0.95},
		Ground:  render.Col{R: 0.2, G: 0.18, B: 0.15},
	}
}

// Sample implements Skybox.
func (g GradientSky) Sample(dir math3d.Vec3) render.Col {
	z := dir.Normalize().Z
	if z >= 0 {
		return g.Horizon.Lerp(g.Zenith, math.Sqrt(z))
	}
	return g.Horizon.Lerp(g.Ground, math.Min(1, -z*4))
}

// ImageSky maps an equirectangular texture around the scene. The top row of
// the image is straight up (+Z).
type ImageSky struct {
	Texture   *render.Texture
	Intensity float64
	// Yaw turns the map around the Z axis, in radians.
	Yaw float64
}

// Sample implements Skybox.
func (s ImageSky) Sample(dir math3d.Vec3) render.Col {
	if s.Texture == nil {
		return render.Col{}
	}
	d := dir.Normalize()
	u := 0.5 + (math.Atan2(d.Y, d.X)+s.Yaw)/(2*math.Pi)
	v := 0.5 - math.Asin(math.Max(-1, math.Min(1, d.Z)))/math.Pi
	return s.Texture.Sample(u, v).Scale(s.Intensity)
}

// SolidSky returns one colour in every direction.
type SolidSky render.Col

// Sample implements Skybox.
func (s SolidSky) Sample(math3d.Vec3) render.Col {
	return render.Col(s)
}
