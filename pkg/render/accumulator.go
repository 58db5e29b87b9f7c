package render

// Accumulator keeps a running per-pixel sum of squared radiance. Resolving
// divides by the sample count and takes the square root, which doubles as a
// gamma 2 encode.
//
// Accumulate may be called concurrently for disjoint indices.
type Accumulator struct {
	Width  int
	Height int
	sums   []Col
}

// NewAccumulator creates a zeroed accumulator.
func NewAccumulator(width, height int) *Accumulator {
	return &Accumulator{
		Width:  width,
		Height: height,
		sums:   make([]Col, width*height),
	}
}

// Len returns the number of pixels tracked.
func (a *Accumulator) Len() int {
	return len(a.sums)
}

// Accumulate adds the square of c to pixel i.
func (a *Accumulator) Accumulate(i int, c Col) {
	a.sums[i] = a.sums[i].Add(c.Square())
}

// Sum returns the raw squared sum at pixel i.
func (a *Accumulator) Sum(i int) Col {
	return a.sums[i]
}

// Mean returns the resolved linear-display colour of pixel i after samples
// passes, clamped to [0, 1].
func (a *Accumulator) Mean(i, samples int) Col {
	if samples <= 0 {
		return Col{}
	}
	return a.sums[i].Scale(1 / float64(samples)).Sqrt().Clamp()
}

// ResolvePixel returns the packed colour of pixel i.
func (a *Accumulator) ResolvePixel(i, samples int) uint32 {
	return a.Mean(i, samples).Pack()
}

// Resolve writes every pixel into fb. fb must match the accumulator size.
func (a *Accumulator) Resolve(samples int, fb *Framebuffer) {
	n := min(len(a.sums), len(fb.Pixels))
	for i := range n {
		fb.Pixels[i] = a.ResolvePixel(i, samples)
	}
}

// Reset zeroes every sum.
func (a *Accumulator) Reset() {
	clear(a.sums)
}
