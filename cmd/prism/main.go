// prism - progressive sphere path tracer with a wireframe overlay.
//
// Interactive controls (view command):
//
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	Q/E         - Move down/up
//	Arrows      - Yaw and pitch
//	O           - Toggle overlays
//	P           - Toggle distance pass
//	C           - Clear accumulated samples
//	?           - Toggle HUD
//	Esc         - Quit
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "prism"
	app.Usage = "progressively path trace sphere scenes with a wireframe overlay"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render frames headless and save the result",
			Description: `
Accumulate the requested number of frames from the scene's active camera and
write the resolved image, overlay included, to a PNG file.`,
			ArgsUsage: "[scene.json]",
			Flags: append(commonFlags(),
				cli.IntFlag{
					Name:  "frames, n",
					Value: 16,
					Usage: "number of accumulation passes",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
				cli.BoolFlag{
					Name:  "stats",
					Usage: "print per-frame statistics",
				},
			),
			Action: RenderStill,
		},
		{
			Name:      "view",
			Usage:     "render the scene interactively in the terminal",
			ArgsUsage: "[scene.json]",
			Flags: append(commonFlags(),
				cli.IntFlag{
					Name:  "fps",
					Value: 30,
					Usage: "target frame rate for camera movement",
				},
				cli.StringFlag{
					Name:  "log",
					Usage: "write log output to this file instead of discarding it",
				},
				cli.BoolFlag{
					Name:  "bilinear",
					Usage: "scale the image to the terminal with bilinear filtering",
				},
			),
			Action: RenderInteractive,
		},
		{
			Name:      "scene",
			Usage:     "print the built-in scene as JSON",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write to this file instead of stdout",
				},
			},
			Action: DumpScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 400,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 400,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "depth",
			Value: 3,
			Usage: "maximum number of bounces per path",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "concurrent tasks per frame (0 uses every CPU)",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "random seed",
		},
		cli.StringSliceFlag{
			Name:  "overlay-model, m",
			Value: &cli.StringSlice{},
			Usage: "glTF binary model whose edges are added to the overlay",
		},
		cli.BoolFlag{
			Name:  "no-overlays",
			Usage: "start with the wireframe overlay disabled",
		},
		cli.BoolFlag{
			Name:  "distance-pass",
			Usage: "render hit distance instead of radiance",
		},
		cli.BoolFlag{
			Name:  "reset-on-move",
			Usage: "discard accumulated samples whenever the camera moves",
		},
	}
}
