package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/image/draw"
)

// Presenter draws a framebuffer onto a terminal screen using half-block
// cells, so every terminal row shows two pixel rows. The framebuffer is
// scaled to the drawing area keeping its aspect ratio and centred.
type Presenter struct {
	FB *Framebuffer

	// Bilinear switches the scaler from nearest neighbour.
	Bilinear bool

	scaled *image.RGBA
}

// NewPresenter returns a presenter for fb.
func NewPresenter(fb *Framebuffer) *Presenter {
	return &Presenter{FB: fb}
}

// Fit returns the pixel rectangle the framebuffer occupies inside a cell
// area of cols x rows, at double vertical resolution.
func (p *Presenter) Fit(cols, rows int) image.Rectangle {
	pw, ph := cols, rows*2
	if p.FB == nil || p.FB.Width == 0 || p.FB.Height == 0 || pw <= 0 || ph <= 0 {
		return image.Rectangle{}
	}
	w := pw
	h := w * p.FB.Height / p.FB.Width
	if h > ph {
		h = ph
		w = h * p.FB.Width / p.FB.Height
	}
	x := (pw - w) / 2
	y := (ph - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// Draw implements uv.Drawable.
func (p *Presenter) Draw(scr uv.Screen, area uv.Rectangle) {
	cols, rows := area.Dx(), area.Dy()
	fit := p.Fit(cols, rows)
	if fit.Empty() {
		return
	}

	bounds := image.Rect(0, 0, cols, rows*2)
	if p.scaled == nil || p.scaled.Bounds() != bounds {
		p.scaled = image.NewRGBA(bounds)
	}
	clear(p.scaled.Pix)

	var scaler draw.Scaler = draw.NearestNeighbor
	if p.Bilinear {
		scaler = draw.BiLinear
	}
	src := p.FB.ToImage()
	scaler.Scale(p.scaled, fit, src, src.Bounds(), draw.Src, nil)

	for row := range rows {
		topY := row * 2
		botY := topY + 1
		for col := range cols {
			top := p.scaled.RGBAAt(col, topY)
			bot := p.scaled.RGBAAt(col, botY)
			scr.SetCell(area.Min.X+col, area.Min.Y+row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(top),
					Bg: cellColor(bot),
				},
			})
		}
	}
}

// cellColor maps letterbox pixels (alpha 0) to the terminal default.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
