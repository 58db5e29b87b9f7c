package raster

import (
	"math"

	"github.com/taigrr/prism/pkg/camera"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
)

// Axis colours.
var (
	ColorX = render.Col{R: 1}
	ColorY = render.Col{G: 1}
	ColorZ = render.Col{B: 1}
)

// cubeEdges indexes the 12 edges of a box whose corners follow cubeCorners.
var cubeEdges = [12][2]int{
	// Bottom face
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	// Top face
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	// Connecting edges
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// cubeCorners returns the 8 corners of [min, max].
func cubeCorners(lo, hi math3d.Vec3) [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}

func boxLines(corners [8]math3d.Vec3, c render.Col) []Line3D {
	lines := make([]Line3D, 0, len(cubeEdges))
	for _, e := range cubeEdges {
		lines = append(lines, L3(corners[e[0]], corners[e[1]], c))
	}
	return lines
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math3d.Vec3
}

// EmptyAABB returns a box that any Extend call will replace.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: math3d.V3(inf, inf, inf),
		Max: math3d.V3(-inf, -inf, -inf),
	}
}

// Extend grows the box to include p.
func (b AABB) Extend(p math3d.Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box holding b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Empty reports whether the box has no volume and no points.
func (b AABB) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Center returns the midpoint.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Lines returns the 12 edges of the box.
func (b AABB) Lines(c render.Col) []Line3D {
	if b.Empty() {
		return nil
	}
	return boxLines(cubeCorners(b.Min, b.Max), c)
}

// CubeLines returns an axis-aligned cube centred on center.
func CubeLines(center math3d.Vec3, size float64, c render.Col) []Line3D {
	half := math3d.V3(size/2, size/2, size/2)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}.Lines(c)
}

// TransformedCubeLines returns a unit-size cube scaled by size and moved by
// transform.
func TransformedCubeLines(transform math3d.Mat4, size float64, c render.Col) []Line3D {
	half := size / 2
	local := cubeCorners(math3d.V3(-half, -half, -half), math3d.V3(half, half, half))
	var world [8]math3d.Vec3
	for i, v := range local {
		world[i] = transform.MulVec3(v)
	}
	return boxLines(world, c)
}

// AxesLines returns the X, Y and Z axes from origin in red, green and blue.
func AxesLines(origin math3d.Vec3, length float64) []Line3D {
	return []Line3D{
		L3(origin, origin.Add(math3d.V3(length, 0, 0)), ColorX),
		L3(origin, origin.Add(math3d.V3(0, length, 0)), ColorY),
		L3(origin, origin.Add(math3d.V3(0, 0, length)), ColorZ),
	}
}

// GridLines returns a square grid on the plane z = height.
func GridLines(size, step, height float64, c render.Col) []Line3D {
	if step <= 0 {
		return nil
	}
	half := size / 2
	n := int(math.Floor(size/step + 1e-9))
	lines := make([]Line3D, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		v := -half + float64(i)*step
		lines = append(lines,
			L3(math3d.V3(v, -half, height), math3d.V3(v, half, height), c),
			L3(math3d.V3(-half, v, height), math3d.V3(half, v, height), c),
		)
	}
	return lines
}

// CrossLines marks a point with three short axis-aligned strokes.
func CrossLines(pos math3d.Vec3, size float64, c render.Col) []Line3D {
	h := size / 2
	return []Line3D{
		L3(pos.Sub(math3d.V3(h, 0, 0)), pos.Add(math3d.V3(h, 0, 0)), c),
		L3(pos.Sub(math3d.V3(0, h, 0)), pos.Add(math3d.V3(0, h, 0)), c),
		L3(pos.Sub(math3d.V3(0, 0, h)), pos.Add(math3d.V3(0, 0, h)), c),
	}
}

// CameraGizmo draws the viewing pyramid of cam: the apex at the camera
// position and the image plane at distance length along its forward axis.
func CameraGizmo(cam *camera.Camera, length float64, c render.Col) []Line3D {
	rot := cam.Rotation()
	pos := cam.Pos()
	half := math.Tan(cam.FOV()*math.Pi/360) * length

	var corners [4]math3d.Vec3
	for i, s := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		local := math3d.V3(s[0]*half, length, s[1]*half)
		corners[i] = pos.Add(rot.MulVec3Dir(local))
	}

	lines := make([]Line3D, 0, 10)
	for i := range 4 {
		lines = append(lines,
			L3(pos, corners[i], c),
			L3(corners[i], corners[(i+1)%4], c),
		)
	}
	// Up marker above the image plane.
	top := pos.Add(rot.MulVec3Dir(math3d.V3(0, length, 1.5*half)))
	lines = append(lines, L3(corners[2], top, c), L3(top, corners[3], c))
	return lines
}
