package tracer

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/prism/pkg/camera"
	"github.com/taigrr/prism/pkg/log"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/raster"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

// DefaultChunkSize is the number of consecutive pixels one task accumulates.
const DefaultChunkSize = 1024

// ErrDegenerateRay is returned when the camera produces no usable ray for a
// pixel.
var ErrDegenerateRay = errors.New("degenerate camera ray")

var logger = log.New("tracer")

// RadianceFunc maps a primary ray to a radiance sample.
type RadianceFunc func(sc *scene.Scene, st *State, ray math3d.Ray, rng camera.Rand) render.Col

// Renderer owns the accumulation and display buffers and runs the per-frame
// accumulate, resolve and overlay passes.
type Renderer struct {
	Width, Height int

	// Workers bounds the number of concurrently running chunk tasks.
	Workers   int
	ChunkSize int
	// Seed makes every frame reproducible regardless of worker scheduling.
	Seed int64

	State *State
	Acc   *render.Accumulator
	FB    *render.Framebuffer

	// Radiance defaults to PathTrace.
	Radiance RadianceFunc

	// Overlay lines and boxes are drawn after resolve when overlays are on.
	Overlay []raster.Line3D
	Boxes   []raster.Box

	frame int
}

// FrameStats describes one completed frame.
type FrameStats struct {
	Frame   int
	Samples int
	Rays    int
	Lines   int
	// InView counts spheres touching the overlay frustum.
	InView   int
	Duration time.Duration
}

// NewRenderer allocates buffers for a width x height image.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		Width:     width,
		Height:    height,
		Workers:   runtime.NumCPU(),
		ChunkSize: DefaultChunkSize,
		Seed:      1,
		State:     NewState(),
		Acc:       render.NewAccumulator(width, height),
		FB:        render.NewFramebuffer(width, height),
		Radiance:  PathTrace,
	}
}

// RenderFrame accumulates one sample per pixel as seen from cam, then
// resolves the running mean into the framebuffer and draws the overlay.
// The camera is snapshotted before any worker starts, so the caller may
// move it as soon as RenderFrame returns. On error the accumulation is
// reset, so a partial pass never mixes into later frames.
func (r *Renderer) RenderFrame(sc *scene.Scene, cam *camera.Camera) (FrameStats, error) {
	start := time.Now()
	gen := camera.NewGenerator(cam, r.Width, r.Height)
	radiance := r.Radiance
	if radiance == nil {
		radiance = PathTrace
	}

	n := r.Acc.Len()
	chunk := r.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	var g errgroup.Group
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}
	frame := r.frame
	for c, lo := 0, 0; lo < n; c, lo = c+1, lo+chunk {
		hi := min(lo+chunk, n)
		rng := rand.New(rand.NewSource(chunkSeed(r.Seed, frame, c)))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				ray, ok := gen.Generate(i, rng)
				if !ok {
					return fmt.Errorf("pixel %d: %w", i, ErrDegenerateRay)
				}
				r.Acc.Accumulate(i, radiance(sc, r.State, ray, rng))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.ResetAccumulation()
		return FrameStats{}, err
	}

	r.frame++
	r.State.Samples++
	r.Acc.Resolve(r.State.Samples, r.FB)

	lines := 0
	if r.State.OverlaysEnabled {
		lines = raster.RenderAll(r.FB, cam, r.Overlay)
		for _, b := range r.Boxes {
			b.Draw(r.FB)
		}
	}

	stats := FrameStats{
		Frame:    r.frame,
		Samples:  r.State.Samples,
		Rays:     n,
		Lines:    lines,
		InView:   spheresInView(sc, cam, r.Width, r.Height),
		Duration: time.Since(start),
	}
	r.State.Timing.Tick(time.Now())
	logger.Debugf("frame %d: %d samples, %d lines, %d/%d spheres in view, %s",
		stats.Frame, stats.Samples, stats.Lines, stats.InView, len(sc.Spheres), stats.Duration)
	return stats, nil
}

func spheresInView(sc *scene.Scene, cam *camera.Camera, width, height int) int {
	f := cam.Frustum(width, height)
	n := 0
	for _, s := range sc.Spheres {
		if f.IntersectsSphere(s.Center, s.Radius) {
			n++
		}
	}
	return n
}

// ResetAccumulation discards every accumulated sample.
func (r *Renderer) ResetAccumulation() {
	r.Acc.Reset()
	r.State.Samples = 0
	logger.Noticef("accumulation reset")
}

// Frame returns the number of frames rendered so far.
func (r *Renderer) Frame() int {
	return r.frame
}

// chunkSeed mixes seed, frame and chunk index with splitmix64.
func chunkSeed(seed int64, frame, chunk int) int64 {
	x := uint64(seed)
	x ^= uint64(frame) * 0x9e3779b97f4a7c15
	x ^= uint64(chunk) * 0xbf58476d1ce4e5b9
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
