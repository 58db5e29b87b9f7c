package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
	"github.com/taigrr/prism/pkg/tracer"
	"github.com/urfave/cli"
)

// modelColor is the overlay colour of imported model edges.
var modelColor = render.Col{R: 1, G: 0.6, B: 0.1}

// loadScene reads the scene named by the first argument, or the built-in
// scene when there is none.
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	switch ctx.NArg() {
	case 0:
		logger.Info("no scene file given, using the built-in scene")
		return scene.Default(), nil
	case 1:
		return scene.Load(ctx.Args().First())
	default:
		return nil, errors.New("expected at most one scene file argument")
	}
}

// setupRenderer builds a renderer for sc from the common flags.
func setupRenderer(ctx *cli.Context, sc *scene.Scene) (*tracer.Renderer, error) {
	width, height := ctx.Int("width"), ctx.Int("height")
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	depth := ctx.Int("depth")
	if depth < 0 {
		return nil, fmt.Errorf("invalid depth %d", depth)
	}

	r := tracer.NewRenderer(width, height)
	r.Seed = ctx.Int64("seed")
	if w := ctx.Int("workers"); w > 0 {
		r.Workers = w
	}
	r.State.MaxDepth = depth
	r.State.OverlaysEnabled = !ctx.Bool("no-overlays")
	r.State.DistancePass = ctx.Bool("distance-pass")

	r.Overlay = scene.Overlay(sc, sc.Overlay)
	for _, path := range ctx.StringSlice("overlay-model") {
		mesh, err := models.LoadGLB(path)
		if err != nil {
			return nil, fmt.Errorf("overlay model %s: %w", filepath.Base(path), err)
		}
		r.Overlay = append(r.Overlay, mesh.Lines(modelColor)...)
		logger.Infof("overlay model %s: %d edges", mesh.Name, mesh.EdgeCount())
	}

	logger.Infof("renderer: %dx%d, %d workers, depth %d, %d overlay lines",
		width, height, r.Workers, r.State.MaxDepth, len(r.Overlay))
	return r, nil
}
