// Package velocity recovers the per-axis velocity of a single small moving
// object from the spectra of its modulated frame projections.
//
// A displacement of V pixels per frame, modulated with coefficient a over nf
// frames spaced dt apart, produces a spectral peak at bin u = a*V*nf*dt, so
//
//	V = u / a / (nf * dt)
//
// Resolution is one bin, i.e. 1/(a*nf*dt) pixels per frame. Aliasing is not
// detected: bins cover 0 <= a*V*dt < 1 cycles per frame, so faster motion
// and motion towards lower indexes wrap modulo nf and the reported velocity
// is wrong. Choose a accordingly.
package velocity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/dsp/spectrum"
	"github.com/cwbudde/algo-motion/dsp/window"
	"github.com/cwbudde/algo-motion/motion/frame"
	"github.com/cwbudde/algo-motion/motion/projection"
)

// FromBin converts a spectral peak bin into a velocity in pixels per frame.
func FromBin(bin, a, nf int, dt float64) (float64, error) {
	if err := validateAxis(a, nf, dt); err != nil {
		return 0, err
	}
	return float64(bin) / float64(a) / (float64(nf) * dt), nil
}

// Resolution returns the velocity spanned by one spectral bin.
func Resolution(a, nf int, dt float64) (float64, error) {
	if err := validateAxis(a, nf, dt); err != nil {
		return 0, err
	}
	return 1 / math.Abs(float64(a)) / (float64(nf) * dt), nil
}

func validateAxis(a, nf int, dt float64) error {
	if a == 0 {
		return fmt.Errorf("velocity: coefficient must be non-zero: %w", core.ErrInvalidParameter)
	}
	if nf <= 0 {
		return fmt.Errorf("velocity: frame count must be > 0: %d: %w", nf, core.ErrInvalidParameter)
	}
	if err := core.ValidateSampleInterval(dt); err != nil {
		return fmt.Errorf("velocity: %w", err)
	}
	return nil
}

// Axis is the estimate along one image axis.
type Axis struct {
	Coefficient int
	// Peak is the bin index of the dominant peak after edge suppression.
	Peak int
	// Velocity is in pixels per frame.
	Velocity float64
	// Resolution is the velocity width of one bin.
	Resolution float64
	// Prominence is the peak magnitude over the mean of the other bins.
	Prominence float64
	// Flatness of the searched bins; near 0 for a clean peak, near 1 for noise.
	Flatness float64
	// Spectrum is the edge-suppressed magnitude spectrum the peak was taken from.
	Spectrum []float64
}

// Result is a velocity estimate for both axes.
type Result struct {
	Vx, Vy float64
	X, Y   Axis
	Frames int
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithCoefficients sets the x and y modulation coefficients.
func WithCoefficients(ax, ay int) Option {
	return func(e *Estimator) {
		e.ax, e.ay = ax, ay
	}
}

// WithEdgeBins sets how many leading and trailing bins are zeroed before the
// peak search.
func WithEdgeBins(n int) Option {
	return func(e *Estimator) {
		e.edgeBins = n
	}
}

// WithWindow tapers the projection series before the transform.
func WithWindow(t window.Type) Option {
	return func(e *Estimator) {
		e.window = t
	}
}

// Estimator runs projection, spectrum, edge suppression and peak search.
// It holds only configuration and is safe for concurrent use.
type Estimator struct {
	cfg      core.ProcessorConfig
	ax, ay   int
	edgeBins int
	window   window.Type
}

// NewEstimator returns an Estimator with coefficients 2/2, two suppressed
// edge bins, 20 frames per second and no taper unless overridden.
func NewEstimator(coreOpts []core.ProcessorOption, opts ...Option) (*Estimator, error) {
	e := &Estimator{
		cfg:      core.ApplyProcessorOptions(coreOpts...),
		ax:       2,
		ay:       2,
		edgeBins: 2,
		window:   window.Rectangular,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if err := core.ValidateSampleInterval(e.cfg.SampleInterval); err != nil {
		return nil, fmt.Errorf("velocity: %w", err)
	}
	if e.ax == 0 || e.ay == 0 {
		return nil, fmt.Errorf("velocity: coefficients must be non-zero: ax=%d ay=%d: %w", e.ax, e.ay, core.ErrInvalidParameter)
	}
	if e.edgeBins < 0 {
		return nil, fmt.Errorf("velocity: edge bins must be >= 0: %d: %w", e.edgeBins, core.ErrInvalidParameter)
	}
	if _, err := window.Generate(e.window, 1); err != nil {
		return nil, fmt.Errorf("velocity: %w", err)
	}
	return e, nil
}

// Config returns the processor configuration.
func (e *Estimator) Config() core.ProcessorConfig {
	return e.cfg
}

// Estimate recovers the velocity of the moving object in frames.
//
// Edge suppression must leave at least one bin: n > nf/2 fails with
// core.ErrInvalidParameter, and a spectrum with no energy outside the
// suppressed edges (for example n == nf/2 with even nf) fails with
// core.ErrEmptyInput.
func (e *Estimator) Estimate(frames *frame.Stack) (Result, error) {
	nf := frames.Len()
	if nf == 0 {
		return Result{}, fmt.Errorf("velocity: %w", core.ErrEmptyInput)
	}
	if err := core.ValidateEdgeBins(e.edgeBins, nf); err != nil {
		return Result{}, fmt.Errorf("velocity: %w", err)
	}

	dt := e.cfg.SampleInterval
	gx, gy, err := projection.Compute(frames, e.ax, e.ay, dt, projection.WithWorkers(e.cfg.Workers))
	if err != nil {
		return Result{}, fmt.Errorf("velocity: %w", err)
	}

	x, err := e.axis(gx, e.ax, dt)
	if err != nil {
		return Result{}, fmt.Errorf("velocity: x axis: %w", err)
	}
	y, err := e.axis(gy, e.ay, dt)
	if err != nil {
		return Result{}, fmt.Errorf("velocity: y axis: %w", err)
	}

	return Result{Vx: x.Velocity, Vy: y.Velocity, X: x, Y: y, Frames: nf}, nil
}

// EstimateFrames validates raw frames and estimates their velocity.
func (e *Estimator) EstimateFrames(frames []*mat.Dense) (Result, error) {
	s, err := frame.NewStack(frames)
	if err != nil {
		return Result{}, fmt.Errorf("velocity: %w", err)
	}
	return e.Estimate(s)
}

func (e *Estimator) axis(series []complex128, a int, dt float64) (Axis, error) {
	mag, err := spectrum.ComputeWindowed(series, e.window)
	if err != nil {
		return Axis{}, err
	}
	mag, err = spectrum.SuppressEdges(mag, e.edgeBins)
	if err != nil {
		return Axis{}, err
	}
	peak, err := spectrum.PeakBin(mag)
	if err != nil {
		return Axis{}, err
	}

	nf := len(series)
	v, err := FromBin(peak, a, nf, dt)
	if err != nil {
		return Axis{}, err
	}
	res, err := Resolution(a, nf, dt)
	if err != nil {
		return Axis{}, err
	}

	return Axis{
		Coefficient: a,
		Peak:        peak,
		Velocity:    v,
		Resolution:  res,
		Prominence:  spectrum.Prominence(mag, peak),
		Flatness:    spectrum.Flatness(mag[e.edgeBins : nf-e.edgeBins]),
		Spectrum:    mag,
	}, nil
}
