package camera

import "github.com/taigrr/prism/pkg/math3d"

// Plane is Ax + By + Cz + D = 0 with (A, B, C) the normal.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive is on the normal side.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum holds inward-facing planes ordered Left, Right, Bottom, Top,
// Near, Far.
type Frustum struct {
	Planes [6]Plane
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// screenMargin is how many pixels past the screen edges the side planes
// sit.
const screenMargin = 2

// NewFrustum extracts the planes of a view-projection matrix
// (Gribb/Hartmann). For column-major m, row i element j is m[i+j*4].
func NewFrustum(m math3d.Mat4) Frustum {
	var f Frustum
	row := func(i int) (float64, float64, float64, float64) {
		return m[i], m[i+4], m[i+8], m[i+12]
	}
	wx, wy, wz, ww := row(3)
	for i, p := range []struct {
		axis int
		sign float64
	}{
		FrustumLeft:   {0, 1},
		FrustumRight:  {0, -1},
		FrustumBottom: {1, 1},
		FrustumTop:    {1, -1},
		FrustumNear:   {2, 1},
		FrustumFar:    {2, -1},
	} {
		x, y, z, w := row(p.axis)
		f.Planes[i] = Plane{
			Normal: math3d.V3(wx+p.sign*x, wy+p.sign*y, wz+p.sign*z),
			D:      ww + p.sign*w,
		}
		f.Planes[i].Normalize()
	}
	return f
}

// Frustum returns the overlay frustum for a width x height frame. The side
// planes follow the screen edges of the overlay mapping, which scales both
// axes by the frame height.
func (c *Camera) Frustum(width, height int) Frustum {
	m := c.ViewProjectionMatrix()
	if width > 0 && height > 0 {
		h := float64(height)
		sx := h / (float64(width) + 2*screenMargin)
		sy := h / (h + 2*screenMargin)
		m = math3d.Scale(math3d.V3(sx, sy, 1)).Mul(m)
	}
	return NewFrustum(m)
}

// ContainsPoint reports whether p is inside all six planes.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere touches the frustum.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// CullsSegment reports whether both endpoints lie outside the same side
// plane. Near and far are not tested: the overlay draws anything in front
// of the eye.
func (f Frustum) CullsSegment(a, b math3d.Vec3) bool {
	for i := FrustumLeft; i <= FrustumTop; i++ {
		if f.Planes[i].DistanceToPoint(a) < 0 && f.Planes[i].DistanceToPoint(b) < 0 {
			return true
		}
	}
	return false
}
