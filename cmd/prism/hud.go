package main

import (
	"fmt"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/prism/pkg/tracer"
)

var (
	hudBg     = color.RGBA{0, 0, 0, 255}
	hudFg     = color.RGBA{230, 230, 230, 255}
	hudAccent = color.RGBA{120, 220, 120, 255}
	hudDim    = color.RGBA{140, 140, 140, 255}
)

// HUD shows render progress on the top row and key hints on the bottom row.
type HUD struct {
	Title string
	Show  bool
}

// NewHUD creates a visible HUD.
func NewHUD(title string) *HUD {
	return &HUD{Title: title, Show: true}
}

// Status returns the top row text.
func (h *HUD) Status(r *tracer.Renderer) string {
	st := r.State
	return fmt.Sprintf(" %s  %dx%d  spp %d  %.1f fps  %s overlays  %s distance ",
		h.Title, r.Width, r.Height, st.Samples, st.Timing.FPS(),
		check(st.OverlaysEnabled), check(st.DistancePass))
}

// Hint returns the bottom row text.
func (h *HUD) Hint() string {
	return " wasd/qe move  arrows look  o overlays  p distance  c clear  ? hud  esc quit "
}

// Draw writes both rows into area.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, r *tracer.Renderer) {
	if !h.Show || area.Dy() < 2 {
		return
	}
	drawText(scr, area.Min.X, area.Min.Y, area.Dx(), h.Status(r), hudAccent, uv.AttrBold)
	drawText(scr, area.Min.X, area.Max.Y-1, area.Dx(), h.Hint(), hudDim, 0)
}

func drawText(scr uv.Screen, x, y, width int, s string, fg color.Color, attrs uint8) {
	col := 0
	for _, r := range s {
		if col >= width {
			return
		}
		scr.SetCell(x+col, y, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   uv.Style{Fg: fg, Bg: hudBg, Attrs: attrs},
		})
		col++
	}
	for ; col < width; col++ {
		scr.SetCell(x+col, y, &uv.Cell{Content: " ", Width: 1, Style: uv.Style{Fg: hudFg, Bg: hudBg}})
	}
}

func check(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}
