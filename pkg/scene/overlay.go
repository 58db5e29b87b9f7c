package scene

import (
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/raster"
	"github.com/taigrr/prism/pkg/render"
)

// OverlayOptions selects the generated parts of the wireframe overlay.
type OverlayOptions struct {
	Axes       bool    // World axes at the origin
	AxesLength float64 // Defaults to 1
	Grid       float64 // Ground grid size; 0 disables it
	GridStep   float64 // Defaults to 1
	GridHeight float64 // Z of the grid plane
	Bounds     bool    // Box around every sphere
	Gizmos     bool    // Viewing pyramid of every inactive camera
}

// Overlay colours.
var (
	GridColor   = render.Col{R: 0.35, G: 0.35, B: 0.35}
	BoundsColor = render.Col{R: 1, G: 0.8}
	GizmoColor  = render.Col{R: 1, B: 1}
)

// Overlay assembles the full line list: the scene's explicit wireframes
// followed by the generated parts enabled in opts.
func Overlay(sc *Scene, opts OverlayOptions) []raster.Line3D {
	lines := append([]raster.Line3D(nil), sc.Wireframes...)

	if opts.Grid > 0 {
		step := opts.GridStep
		if step <= 0 {
			step = 1
		}
		lines = append(lines, raster.GridLines(opts.Grid, step, opts.GridHeight, GridColor)...)
	}
	if opts.Axes {
		length := opts.AxesLength
		if length <= 0 {
			length = 1
		}
		lines = append(lines, raster.AxesLines(math3d.Zero3(), length)...)
	}
	if opts.Bounds {
		for _, sp := range sc.Spheres {
			lines = append(lines, sp.Bounds().Lines(BoundsColor)...)
		}
	}
	if opts.Gizmos && len(sc.Cameras) > 1 {
		for _, cam := range sc.Cameras[1:] {
			lines = append(lines, raster.CameraGizmo(cam, 0.5, GizmoColor)...)
		}
	}

	logger.Infof("overlay: %d lines (%d explicit)", len(lines), len(sc.Wireframes))
	return lines
}
