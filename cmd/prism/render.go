package main

import (
	"bytes"
	"time"

	"github.com/taigrr/prism/pkg/tracer"
	"github.com/urfave/cli"
)

// RenderStill accumulates a fixed number of frames and saves the result.
func RenderStill(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}
	r, err := setupRenderer(ctx, sc)
	if err != nil {
		return err
	}

	frames := max(ctx.Int("frames"), 1)
	stats := make([]tracer.FrameStats, 0, frames)
	start := time.Now()
	for range frames {
		st, err := r.RenderFrame(sc, sc.Camera())
		if err != nil {
			return err
		}
		stats = append(stats, st)
	}
	logger.Noticef("rendered %d frames in %s", frames, time.Since(start))

	if ctx.Bool("stats") {
		displayFrameStats(stats)
	}

	out := ctx.String("out")
	if err := r.FB.SavePNG(out); err != nil {
		return err
	}
	logger.Noticef("saved %s", out)
	return nil
}

func displayFrameStats(stats []tracer.FrameStats) {
	var buf bytes.Buffer
	tracer.StatsTable(&buf, stats)
	logger.Noticef("frame statistics\n%s", buf.String())
}
