// Package render holds the pixel side of prism: linear colours, the packed
// framebuffer, the progressive accumulator and the terminal presenter.
package render

import "math"

// Col is a linear RGB colour. Components are unbounded while a path is being
// traced and only clamped when packed.
type Col struct {
	R, G, B float64
}

// Gray returns a colour with all three channels set to v.
func Gray(v float64) Col {
	return Col{v, v, v}
}

// Add returns c + o.
func (c Col) Add(o Col) Col {
	return Col{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the channel-wise product of c and o.
func (c Col) Mul(o Col) Col {
	return Col{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale returns c * s.
func (c Col) Scale(s float64) Col {
	return Col{c.R * s, c.G * s, c.B * s}
}

// Square returns the channel-wise square, used for gamma 2 accumulation.
func (c Col) Square() Col {
	return Col{c.R * c.R, c.G * c.G, c.B * c.B}
}

// Sqrt returns the channel-wise square root. Negative channels become 0.
func (c Col) Sqrt() Col {
	return Col{sqrt0(c.R), sqrt0(c.G), sqrt0(c.B)}
}

// Clamp limits each channel to [0, 1]. NaN becomes 0.
func (c Col) Clamp() Col {
	return Col{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Lerp interpolates between c and o.
func (c Col) Lerp(o Col, t float64) Col {
	return Col{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// Max returns the largest channel.
func (c Col) Max() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// IsBlack reports whether every channel is zero or below.
func (c Col) IsBlack() bool {
	return c.R <= 0 && c.G <= 0 && c.B <= 0
}

// Pack converts c to 0x00RRGGBB. Each channel is clamped to [0, 1] and
// truncated to 8 bits.
func (c Col) Pack() uint32 {
	c = c.Clamp()
	r := uint32(c.R * 255)
	g := uint32(c.G * 255)
	b := uint32(c.B * 255)
	return r<<16 | g<<8 | b
}

// Unpack converts a packed 0x00RRGGBB value back to a colour in [0, 1].
func Unpack(p uint32) Col {
	return Col{
		R: float64(p>>16&0xff) / 255,
		G: float64(p>>8&0xff) / 255,
		B: float64(p&0xff) / 255,
	}
}

// Hex returns the packed value for 8-bit channels.
func Hex(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Packed colours used by overlays and the HUD.
const (
	Black   uint32 = 0x000000
	White   uint32 = 0xffffff
	Red     uint32 = 0xff0000
	Green   uint32 = 0x00ff00
	Blue    uint32 = 0x0000ff
	Yellow  uint32 = 0xffff00
	Cyan    uint32 = 0x00ffff
	Magenta uint32 = 0xff00ff
	Gray50  uint32 = 0x808080
)

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 1:
		return 1
	}
	return v
}

func sqrt0(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}
