// Package raster draws the wireframe overlay: integer screen-space lines,
// their clipping and stepping, and the perspective projection of world-space
// segments onto the framebuffer.
package raster

import (
	"iter"
	"math"

	"github.com/taigrr/prism/pkg/render"
)

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{x, y}
}

// Line2D is a coloured segment in pixel coordinates.
type Line2D struct {
	P1, P2 Point
	Color  render.Col
}

// Clip clamps the segment to the closed rectangle [0,width] x [0,height].
//
// Endpoint 2 is clamped on x then y, then endpoint 1 on x then y, each time
// along the direction towards the already-updated opposite endpoint. A
// segment lying entirely beyond one boundary, or one whose clamp produces a
// non-finite or still out of range coordinate, is dropped.
func (l Line2D) Clip(width, height int) (Line2D, bool) {
	w, h := float64(width), float64(height)
	x1, y1 := float64(l.P1.X), float64(l.P1.Y)
	x2, y2 := float64(l.P2.X), float64(l.P2.Y)

	if outcode(x1, y1, w, h)&outcode(x2, y2, w, h) != 0 {
		return Line2D{}, false
	}

	// Endpoint 2.
	t := clampParam(x1, x2, w)
	x2, y2 = x1+(x2-x1)*t, y1+(y2-y1)*t
	t = clampParam(y1, y2, h)
	x2, y2 = x1+(x2-x1)*t, y1+(y2-y1)*t

	// Endpoint 1, measured from the clamped endpoint 2.
	t = clampParam(x2, x1, w)
	x1, y1 = x2+(x1-x2)*t, y2+(y1-y2)*t
	t = clampParam(y2, y1, h)
	x1, y1 = x2+(x1-x2)*t, y2+(y1-y2)*t

	sum := x1 + x2 + y1 + y2
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return Line2D{}, false
	}

	out := Line2D{
		P1:    Pt(toInt(x1), toInt(y1)),
		P2:    Pt(toInt(x2), toInt(y2)),
		Color: l.Color,
	}
	if !out.P1.in(width, height) || !out.P2.in(width, height) {
		return Line2D{}, false
	}
	return out, true
}

// clampParam returns the parameter t that moves `to` towards `from` onto the
// nearest violated boundary of [0, limit], or 1 when `to` is in range.
func clampParam(from, to, limit float64) float64 {
	switch {
	case to < 0:
		return -from / (to - from)
	case to > limit:
		return (limit - from) / (to - from)
	}
	return 1
}

const (
	outLeft = 1 << iota
	outRight
	outTop
	outBottom
)

func outcode(x, y, w, h float64) int {
	var c int
	if x < 0 {
		c |= outLeft
	} else if x > w {
		c |= outRight
	}
	if y < 0 {
		c |= outTop
	} else if y > h {
		c |= outBottom
	}
	return c
}

func (p Point) in(width, height int) bool {
	return p.X >= 0 && p.X <= width && p.Y >= 0 && p.Y <= height
}

// Plot steps the segment with integer error accumulation, always walking the
// major axis in increasing order. The end point is not produced. Only points
// strictly inside (0,width) x (0,height) are yielded. The sequence is
// restartable.
func (l Line2D) Plot(width, height int) iter.Seq2[int, int] {
	x1, y1, x2, y2 := l.P1.X, l.P1.Y, l.P2.X, l.P2.Y
	steep := abs(y2-y1) >= abs(x2-x1)

	return func(yield func(int, int) bool) {
		emit := func(a, b int) bool {
			x, y := a, b
			if steep {
				x, y = b, a
			}
			if x <= 0 || x >= width || y <= 0 || y >= height {
				return true
			}
			return yield(x, y)
		}
		switch {
		case !steep && x1 > x2:
			stepLow(x2, y2, x1, y1, emit)
		case !steep:
			stepLow(x1, y1, x2, y2, emit)
		case y1 > y2:
			stepLow(y2, x2, y1, x1, emit)
		default:
			stepLow(y1, x1, y2, x2, emit)
		}
	}
}

// stepLow walks a segment whose major axis is a, with a1 <= a2.
func stepLow(a1, b1, a2, b2 int, emit func(a, b int) bool) {
	da := a2 - a1
	db := b2 - b1
	bi := 1
	if db < 0 {
		bi = -1
		db = -db
	}
	d := 2*db - da
	b := b1
	for a := a1; a < a2; a++ {
		if !emit(a, b) {
			return
		}
		if d > 0 {
			b += bi
			d -= 2 * da
		}
		d += 2 * db
	}
}

// Render draws the segment into fb. The horizontal index is mirrored:
// pixel (x, y) lands at y*width + (width - x).
func (l Line2D) Render(fb *render.Framebuffer) {
	plotInto(fb, l.Plot(fb.Width, fb.Height), l.Color.Pack())
}

func plotInto(fb *render.Framebuffer, pts iter.Seq2[int, int], c uint32) {
	for x, y := range pts {
		fb.Set(fb.Width*y+(fb.Width-x), c)
	}
}

// Box is a closed quadrilateral in pixel coordinates.
type Box struct {
	Points [4]Point
	Color  render.Col
}

// Rect returns an axis-aligned box with opposite corners a and b.
func Rect(a, b Point, c render.Col) Box {
	return Box{
		Points: [4]Point{a, {b.X, a.Y}, b, {a.X, b.Y}},
		Color:  c,
	}
}

// Lines returns the four edges in order.
func (b Box) Lines() [4]Line2D {
	var out [4]Line2D
	for i := range 4 {
		out[i] = Line2D{P1: b.Points[i], P2: b.Points[(i+1)%4], Color: b.Color}
	}
	return out
}

// Draw renders every edge.
func (b Box) Draw(fb *render.Framebuffer) {
	for _, l := range b.Lines() {
		l.Render(fb)
	}
}

// toInt truncates towards zero, saturating at the int32 range. NaN is 0.
func toInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
