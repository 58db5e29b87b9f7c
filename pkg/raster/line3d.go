package raster

import (
	"iter"

	"github.com/taigrr/prism/pkg/camera"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
)

// Line3D is a coloured segment in world space.
type Line3D struct {
	P1, P2 math3d.Vec3
	Color  render.Col
}

// L3 is shorthand for Line3D{a, b, c}.
func L3(a, b math3d.Vec3, c render.Col) Line3D {
	return Line3D{P1: a, P2: b, Color: c}
}

// Clip returns the homogeneous clip-space coordinates of both endpoints.
// Endpoints are taken relative to the camera position with w = 0, so the
// view translation does not apply.
func (l Line3D) Clip(cam *camera.Camera) (c1, c2 math3d.Vec4) {
	m := cam.ViewProjectionMatrix()
	pos := cam.Pos()
	c1 = m.MulVec4(math3d.V4FromV3(l.P1.Sub(pos), 0))
	c2 = m.MulVec4(math3d.V4FromV3(l.P2.Sub(pos), 0))
	return c1, c2
}

// Screen maps the segment to pixel coordinates and clips it. ok is false
// when either endpoint has w <= 0 or clipping drops the segment.
//
// Both axes are scaled by -height/2, so frames wider than tall are
// stretched horizontally.
func (l Line3D) Screen(cam *camera.Camera, width, height int) (Line2D, bool) {
	c1, c2 := l.Clip(cam)
	if c1.W <= 0 || c2.W <= 0 {
		return Line2D{}, false
	}

	halfH := float64(height) / -2
	halfW := width / 2
	toPixel := func(c math3d.Vec4) Point {
		return Pt(
			toInt(halfH*c.X/c.W)+halfW,
			toInt(halfH*c.Y/c.W)+toInt(-halfH),
		)
	}

	flat := Line2D{P1: toPixel(c1), P2: toPixel(c2), Color: l.Color}
	return flat.Clip(width, height)
}

// Project yields the pixels covered by the segment, or nothing when it is
// culled or clipped away.
func (l Line3D) Project(cam *camera.Camera, width, height int) iter.Seq2[int, int] {
	flat, ok := l.Screen(cam, width, height)
	if !ok {
		return func(func(int, int) bool) {}
	}
	return flat.Plot(width, height)
}

// Render projects the segment and draws it into fb.
func (l Line3D) Render(fb *render.Framebuffer, cam *camera.Camera) {
	plotInto(fb, l.Project(cam, fb.Width, fb.Height), l.Color.Pack())
}

// RenderAll draws every line and returns how many produced pixels. Lines
// entirely beside the view are culled against the frustum before
// projection.
func RenderAll(fb *render.Framebuffer, cam *camera.Camera, lines []Line3D) int {
	var drawn int
	f := cam.Frustum(fb.Width, fb.Height)
	for _, l := range lines {
		if f.CullsSegment(l.P1, l.P2) {
			continue
		}
		flat, ok := l.Screen(cam, fb.Width, fb.Height)
		if !ok {
			continue
		}
		drawn++
		flat.Render(fb)
	}
	return drawn
}
