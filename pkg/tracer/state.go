package tracer

import "time"

// DefaultMaxDepth is the number of bounces after the primary hit.
const DefaultMaxDepth = 3

// State is the per-session render state: display toggles, the running sample
// count and timing bookkeeping. It is created once, mutated once per frame
// by the frame loop and read by the tracer.
type State struct {
	OverlaysEnabled bool
	DistancePass    bool

	// DistanceFalloff scales the hit distance in the distance pass:
	// grey = 1 / (1 + t*falloff).
	DistanceFalloff float64

	// Samples counts completed accumulation passes.
	Samples int
	// MaxDepth bounds the number of scattering events per path.
	MaxDepth int

	Timing Timing
}

// NewState returns the initial state: overlays on, beauty pass, depth 3.
func NewState() *State {
	return &State{
		OverlaysEnabled: true,
		DistanceFalloff: 0.1,
		MaxDepth:        DefaultMaxDepth,
	}
}

// Timing is diagnostic frame bookkeeping. It never feeds back into
// rendering.
type Timing struct {
	Prev       time.Time
	Sum        time.Duration
	FrameCount int
	Last       time.Duration
}

// Tick records a frame ending at now and returns its duration. The first
// tick only starts the clock.
func (t *Timing) Tick(now time.Time) time.Duration {
	var d time.Duration
	if !t.Prev.IsZero() {
		d = now.Sub(t.Prev)
		t.Sum += d
		t.FrameCount++
		t.Last = d
	}
	t.Prev = now
	return d
}

// FPS returns the average frame rate since the clock started.
func (t Timing) FPS() float64 {
	if t.Sum <= 0 {
		return 0
	}
	return float64(t.FrameCount) / t.Sum.Seconds()
}

// Reset restarts the averages.
func (t *Timing) Reset() {
	*t = Timing{}
}
