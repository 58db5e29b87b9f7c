package math3d

// Ray is a half-line in world space. Dir is expected to be normalized.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay creates a ray, normalizing the direction.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}
