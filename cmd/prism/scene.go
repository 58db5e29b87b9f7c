package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/taigrr/prism/pkg/scene"
	"github.com/urfave/cli"
)

// DumpScene prints the built-in scene so it can be used as a template.
func DumpScene(ctx *cli.Context) error {
	setupLogging(ctx)

	data, err := json.MarshalIndent(scene.DefaultConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	data = append(data, '\n')

	out := ctx.String("out")
	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	logger.Noticef("wrote %s", out)
	return nil
}
