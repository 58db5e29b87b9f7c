// Package scene describes what the path tracer renders: spheres with simple
// materials, cameras, a background sky and the wireframe overlay.
package scene

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/raster"
	"github.com/taigrr/prism/pkg/render"
)

// Material is a diffuse/glossy surface with optional emission.
type Material struct {
	Albedo   render.Col
	Emission render.Col

	// Reflectivity is the probability of a specular bounce, Roughness the
	// radius of the perturbation applied to the mirror direction.
	Reflectivity float64
	Roughness    float64
}

// Emissive reports whether the material emits light.
func (m Material) Emissive() bool {
	return !m.Emission.IsBlack()
}

// Sphere is the only primitive.
type Sphere struct {
	Center   math3d.Vec3
	Radius   float64
	Material Material
}

// Intersect returns the nearest distance t > tMin along r, if any. r.Dir must
// be normalized.
func (s Sphere) Intersect(r math3d.Ray, tMin float64) (float64, bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Dir)
	c := oc.LenSq() - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t := -b - sq; t > tMin {
		return t, true
	}
	if t := -b + sq; t > tMin {
		return t, true
	}
	return 0, false
}

// Normal returns the outward unit normal at a surface point.
func (s Sphere) Normal(p math3d.Vec3) math3d.Vec3 {
	return p.Sub(s.Center).Scale(1 / s.Radius)
}

// Bounds returns the axis-aligned box around the sphere.
func (s Sphere) Bounds() raster.AABB {
	r := math3d.V3(s.Radius, s.Radius, s.Radius)
	return raster.AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

func (s Sphere) valid() bool {
	return s.Radius > 0 && !math.IsInf(s.Radius, 0) && s.Center.IsFinite()
}
