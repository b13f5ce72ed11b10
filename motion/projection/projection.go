// Package projection reduces a frame stack to two complex time series, one
// per image axis.
//
// For every frame the column-intensity profile (sum over rows) and the
// row-intensity profile (sum over columns) are multiplied by a complex
// modulation exp(i*2*pi*a*k*dt) over the profile index k and summed to a
// single complex value. The modulation moves the spectral signature of a
// moving object away from the DC bin, where a static background dominates.
//
// Choosing a is the caller's responsibility: a displacement of v pixels per
// frame rotates the phase by a*v*dt cycles per frame. Only 0 <= a*v*dt < 1
// maps to a distinct spectral bin; anything else aliases and the recovered
// velocity is silently wrong.
package projection

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/motion/frame"
)

// Option configures a projection run.
type Option func(*config)

type config struct {
	workers int
}

// WithWorkers projects frames on n goroutines. n <= 1 projects serially.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// Phasor holds the real and imaginary parts of a modulation sequence.
type Phasor struct {
	Re, Im []float64
}

// Modulation returns exp(i*2*pi*a*k*dt) for k = 0..n-1.
func Modulation(a, n int, dt float64) Phasor {
	p := Phasor{Re: make([]float64, n), Im: make([]float64, n)}
	for k := 0; k < n; k++ {
		s, c := math.Sincos(2 * math.Pi * float64(a) * float64(k) * dt)
		p.Re[k] = c
		p.Im[k] = s
	}
	return p
}

// Apply returns sum_k profile[k] * p[k].
func (p Phasor) Apply(profile []float64) complex128 {
	return complex(floats.Dot(profile, p.Re), floats.Dot(profile, p.Im))
}

// Compute returns the modulated x (column) and y (row) projections of every
// frame. Both results have frames.Len() elements, ordered by frame.
//
// It fails with core.ErrEmptyInput for a nil or empty stack and with
// core.ErrInvalidParameter when dt is not a finite positive number. The
// inputs are not modified.
func Compute(frames *frame.Stack, ax, ay int, dt float64, opts ...Option) (x, y []complex128, err error) {
	if frames.Len() == 0 {
		return nil, nil, fmt.Errorf("projection: %w", core.ErrEmptyInput)
	}
	if err := core.ValidateSampleInterval(dt); err != nil {
		return nil, nil, fmt.Errorf("projection: %w", err)
	}

	cfg := config{workers: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	rows, cols := frames.Dims()
	px := Modulation(ax, cols, dt)
	py := Modulation(ay, rows, dt)

	nf := frames.Len()
	x = make([]complex128, nf)
	y = make([]complex128, nf)

	workers := cfg.workers
	if workers > nf {
		workers = nf
	}
	if workers <= 1 {
		var p profiler
		for f := 0; f < nf; f++ {
			x[f], y[f] = p.project(frames, f, px, py)
		}
		return x, y, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			var p profiler
			for f := range jobs {
				x[f], y[f] = p.project(frames, f, px, py)
			}
		}()
	}
	for f := 0; f < nf; f++ {
		jobs <- f
	}
	close(jobs)
	wg.Wait()

	return x, y, nil
}

// ComputeFrames validates frames with [frame.NewStack] and projects them, so
// shape errors surface before any projection work.
func ComputeFrames(frames []*mat.Dense, ax, ay int, dt float64, opts ...Option) (x, y []complex128, err error) {
	s, err := frame.NewStack(frames)
	if err != nil {
		return nil, nil, fmt.Errorf("projection: %w", err)
	}
	return Compute(s, ax, ay, dt, opts...)
}

// profiler owns the scratch profiles of one goroutine.
type profiler struct {
	colSum []float64
	rowSum []float64
}

func (p *profiler) project(s *frame.Stack, f int, px, py Phasor) (complex128, complex128) {
	rows, cols := s.Dims()
	p.colSum = core.EnsureLen(p.colSum, cols)
	p.rowSum = core.EnsureLen(p.rowSum, rows)
	core.Zero(p.colSum)

	for r := 0; r < rows; r++ {
		row := s.Row(f, r)
		floats.Add(p.colSum, row)
		p.rowSum[r] = floats.Sum(row)
	}

	return px.Apply(p.colSum), py.Apply(p.rowSum)
}
