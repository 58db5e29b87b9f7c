package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/prism/pkg/log"
	"github.com/taigrr/prism/pkg/movement"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
	"github.com/taigrr/prism/pkg/tracer"
	"github.com/urfave/cli"
)

// keyActions maps held keys to camera impulses.
var keyActions = []struct {
	keys   []string
	action movement.Action
}{
	{[]string{"w"}, movement.Forward},
	{[]string{"s"}, movement.Back},
	{[]string{"a"}, movement.Left},
	{[]string{"d"}, movement.Right},
	{[]string{"e"}, movement.Up},
	{[]string{"q"}, movement.Down},
	{[]string{"left"}, movement.YawLeft},
	{[]string{"right"}, movement.YawRight},
	{[]string{"up"}, movement.PitchUp},
	{[]string{"down"}, movement.PitchDown},
}

// viewer is the interactive session state. It is only touched from the
// frame loop goroutine.
type viewer struct {
	sc          *scene.Scene
	r           *tracer.Renderer
	controller  *movement.Controller
	presenter   *render.Presenter
	hud         *HUD
	resetOnMove bool

	width, height int
	quit          bool

	// stats holds the most recent frames, oldest first.
	stats []tracer.FrameStats
}

// statsHistory bounds how many frames the exit table shows.
const statsHistory = 32

// record keeps st, dropping the oldest frame once statsHistory is reached.
func (v *viewer) record(st tracer.FrameStats) {
	if len(v.stats) == statsHistory {
		copy(v.stats, v.stats[1:])
		v.stats = v.stats[:statsHistory-1]
	}
	v.stats = append(v.stats, st)
}

// writeStats renders the recorded frames as a table. It reports false when
// no frame completed.
func (v *viewer) writeStats(w io.Writer) bool {
	if len(v.stats) == 0 {
		return false
	}
	tracer.StatsTable(w, v.stats)
	return true
}

// RenderInteractive renders progressively into the terminal until quit.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}
	r, err := setupRenderer(ctx, sc)
	if err != nil {
		return err
	}

	// The alternate screen owns stdout while the viewer runs.
	if path := ctx.String("log"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		log.SetSink(f)
	} else {
		log.SetSink(io.Discard)
	}

	title := "prism"
	if ctx.NArg() == 1 {
		title = filepath.Base(ctx.Args().First())
	}

	fps := max(ctx.Int("fps"), 1)
	v := &viewer{
		sc:          sc,
		r:           r,
		controller:  movement.NewController(fps),
		presenter:   render.NewPresenter(r.FB),
		hud:         NewHUD(title),
		resetOnMove: ctx.Bool("reset-on-move"),
	}
	v.presenter.Bilinear = ctx.Bool("bilinear")

	err = v.run(fps)
	log.SetSink(os.Stdout)
	var buf bytes.Buffer
	if v.writeStats(&buf) {
		logger.Noticef("frame statistics\n%s", buf.String())
	}
	return err
}

func (v *viewer) run(fps int) error {
	term := uv.DefaultTerminal()

	var err error
	v.width, v.height, err = term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(v.width, v.height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	targetDuration := time.Second / time.Duration(fps)
	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		v.drainEvents(term)
		if v.quit {
			cleanup()
			return nil
		}

		now := time.Now()
		cam := v.sc.Camera()
		if v.controller.Update(cam) && v.resetOnMove {
			v.r.ResetAccumulation()
		}

		// A frame always runs to completion before input is looked at again.
		st, err := v.r.RenderFrame(v.sc, cam)
		if err != nil {
			cleanup()
			return err
		}
		v.record(st)

		term.Draw(uv.DrawableFunc(func(scr uv.Screen, area uv.Rectangle) {
			img := area
			if v.hud.Show && area.Dy() > 2 {
				img = uv.Rect(area.Min.X, area.Min.Y+1, area.Dx(), area.Dy()-2)
			}
			v.presenter.Draw(scr, img)
			v.hud.Draw(scr, area, v.r)
		}))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// drainEvents applies every pending terminal event without blocking.
func (v *viewer) drainEvents(term *uv.Terminal) {
	for {
		select {
		case ev, ok := <-term.Events():
			if !ok {
				v.quit = true
				return
			}
			v.handle(term, ev)
		default:
			return
		}
	}
}

func (v *viewer) handle(term *uv.Terminal, ev uv.Event) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.width, v.height = ev.Width, ev.Height
		term.Erase()
		term.Resize(v.width, v.height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			v.quit = true
		case ev.MatchString("o"):
			v.r.State.OverlaysEnabled = !v.r.State.OverlaysEnabled
		case ev.MatchString("p"):
			v.r.State.DistancePass = !v.r.State.DistancePass
			v.r.ResetAccumulation()
		case ev.MatchString("c"):
			v.r.ResetAccumulation()
		case ev.MatchString("?", "shift+/"):
			v.hud.Show = !v.hud.Show
		default:
			for _, ka := range keyActions {
				if ev.MatchString(ka.keys...) {
					v.controller.Push(ka.action)
					break
				}
			}
		}
	}
}
