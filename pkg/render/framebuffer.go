package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Framebuffer is a row-major grid of packed 0x00RRGGBB pixels.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewFramebuffer creates a black framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// Len returns the number of pixels.
func (fb *Framebuffer) Len() int {
	return len(fb.Pixels)
}

// Clear fills the framebuffer with a solid colour.
func (fb *Framebuffer) Clear(c uint32) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// Set writes a pixel by linear index. Out of range indices are ignored.
func (fb *Framebuffer) Set(i int, c uint32) {
	if i < 0 || i >= len(fb.Pixels) {
		return
	}
	fb.Pixels[i] = c
}

// SetPixel sets the pixel at (x, y). Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c uint32) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the pixel at (x, y), or black when out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) uint32 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Black
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawRect fills a rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c uint32) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

// ToImage converts the framebuffer to an opaque image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pixels {
		o := i * 4
		img.Pix[o] = uint8(p >> 16)
		img.Pix[o+1] = uint8(p >> 8)
		img.Pix[o+2] = uint8(p)
		img.Pix[o+3] = 0xff
	}
	return img
}

// SavePNG writes the framebuffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, fb.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RGBA converts a packed pixel to color.RGBA.
func RGBA(p uint32) color.RGBA {
	return color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 0xff}
}
