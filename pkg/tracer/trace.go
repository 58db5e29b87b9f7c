// Package tracer turns camera rays into radiance and drives the progressive
// per-frame accumulation.
package tracer

import (
	"math"

	"github.com/taigrr/prism/pkg/camera"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

// NoHit marks the absence of a previous hit.
const NoHit = -1

// Hit is the closest intersection of a ray with a sphere list.
type Hit struct {
	Index int
	T     float64
}

// Closest finds the nearest positive hit, skipping the sphere at index skip.
// Index is NoHit when nothing is hit.
func Closest(spheres []scene.Sphere, skip int, r math3d.Ray) Hit {
	best := Hit{Index: NoHit, T: math.Inf(1)}
	for i := range spheres {
		if i == skip {
			continue
		}
		if t, ok := spheres[i].Intersect(r, 0); ok && t < best.T {
			best = Hit{Index: i, T: t}
		}
	}
	return best
}

// Trace follows ray through spheres for at most maxDepth-depth scattering
// events and returns the gathered radiance. prev is the index of the sphere
// the ray leaves, or NoHit. Rays that escape sample the scene sky. Once depth
// reaches maxDepth only the emission of the hit surface is added.
//
// With st.DistancePass set, the first hit distance is returned as a grey
// level instead and escaping rays are black.
func Trace(maxDepth, depth int, sc *scene.Scene, st *State, spheres []scene.Sphere, prev int, ray math3d.Ray, rng camera.Rand) render.Col {
	var radiance render.Col
	throughput := render.Gray(1)

	for ; ; depth++ {
		hit := Closest(spheres, prev, ray)
		if hit.Index == NoHit {
			if st.DistancePass {
				return render.Col{}
			}
			return radiance.Add(throughput.Mul(skyOf(sc).Sample(ray.Dir)))
		}
		if st.DistancePass {
			return render.Gray(1 / (1 + hit.T*st.DistanceFalloff))
		}

		s := &spheres[hit.Index]
		radiance = radiance.Add(throughput.Mul(s.Material.Emission))
		if depth >= maxDepth {
			return radiance
		}

		p := ray.At(hit.T)
		n := s.Normal(p)
		if n.Dot(ray.Dir) > 0 {
			n = n.Negate()
		}

		throughput = throughput.Mul(s.Material.Albedo)
		if throughput.IsBlack() {
			return radiance
		}
		ray = math3d.Ray{Origin: p, Dir: scatter(s.Material, ray.Dir, n, rng)}
		prev = hit.Index
	}
}

// PathTrace is the default RadianceFunc: Trace from depth 0 with the
// state's depth limit over every sphere of the scene.
func PathTrace(sc *scene.Scene, st *State, ray math3d.Ray, rng camera.Rand) render.Col {
	return Trace(st.MaxDepth, 0, sc, st, sc.Spheres, NoHit, ray, rng)
}

// scatter picks the outgoing direction: a roughened mirror bounce with
// probability Reflectivity, otherwise a cosine-weighted diffuse bounce.
func scatter(m scene.Material, in, n math3d.Vec3, rng camera.Rand) math3d.Vec3 {
	if m.Reflectivity > 0 && rng.Float64() < m.Reflectivity {
		mirror := in.Reflect(n)
		if m.Roughness <= 0 {
			return mirror.Normalize()
		}
		d := mirror.Add(inUnitSphere(rng).Scale(m.Roughness)).Normalize()
		if d.Dot(n) > 0 {
			return d
		}
		return mirror.Normalize()
	}

	d := n.Add(onUnitSphere(rng))
	if d.LenSq() < 1e-12 {
		return n
	}
	return d.Normalize()
}

// inUnitSphere samples the unit ball uniformly by rejection.
func inUnitSphere(rng camera.Rand) math3d.Vec3 {
	for {
		p := math3d.V3(2*rng.Float64()-1, 2*rng.Float64()-1, 2*rng.Float64()-1)
		if p.LenSq() < 1 {
			return p
		}
	}
}

// onUnitSphere samples the unit sphere surface uniformly.
func onUnitSphere(rng camera.Rand) math3d.Vec3 {
	z := 2*rng.Float64() - 1
	phi := 2 * math.Pi * rng.Float64()
	r := math.Sqrt(1 - z*z)
	return math3d.V3(r*math.Cos(phi), r*math.Sin(phi), z)
}

func skyOf(sc *scene.Scene) scene.Skybox {
	if sc.Sky == nil {
		return scene.DefaultSky()
	}
	return sc.Sky
}
