package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest-neighbor
	FilterBilinear                   // Bilinear interpolation
)

// Texture is a linear-colour image sampled by UV. U wraps around, V clamps,
// which suits equirectangular environment maps.
type Texture struct {
	Width  int
	Height int
	Pixels []Col
	Filter FilterMode
}

// NewTexture creates a black texture.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Col, width*height),
	}
}

// LoadTexture decodes a PNG or JPEG file into a texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage converts an image to a texture. sRGB-ish 8 bit values are
// squared into linear space to match the gamma 2 resolve.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	tex := NewTexture(b.Dx(), b.Dy())
	for y := range tex.Height {
		for x := range tex.Width {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			c := Col{float64(r) / 0xffff, float64(g) / 0xffff, float64(bl) / 0xffff}
			tex.Pixels[y*tex.Width+x] = c.Square()
		}
	}
	return tex
}

// At returns the texel at (x, y) with U wrapping and V clamping.
func (t *Texture) At(x, y int) Col {
	if t.Width == 0 || t.Height == 0 {
		return Col{}
	}
	x %= t.Width
	if x < 0 {
		x += t.Width
	}
	y = max(0, min(y, t.Height-1))
	return t.Pixels[y*t.Width+x]
}

// Sample samples at UV in [0, 1]. V = 0 is the top row.
func (t *Texture) Sample(u, v float64) Col {
	u -= math.Floor(u)
	v = math.Max(0, math.Min(1, v))
	if t.Filter == FilterBilinear {
		return t.sampleBilinear(u, v)
	}
	return t.At(int(u*float64(t.Width)), int(v*float64(t.Height)))
}

func (t *Texture) sampleBilinear(u, v float64) Col {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	top := t.At(x0, y0).Lerp(t.At(x0+1, y0), tx)
	bot := t.At(x0, y0+1).Lerp(t.At(x0+1, y0+1), tx)
	return top.Lerp(bot, ty)
}
