// Package synth generates synthetic movies of a Gaussian blob moving at a
// constant velocity over a static background. It produces test data for the
// velocity estimator.
package synth

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/motion/frame"
)

// Boundary decides what happens once the blob would leave the frame.
type Boundary int

const (
	// BoundaryStop removes the blob from the first frame in which it no
	// longer fits; later frames show only the background.
	BoundaryStop Boundary = iota
	// BoundaryClamp pins the blob against the edge it reached.
	BoundaryClamp
	// BoundaryWrap wraps pixel coordinates around the frame.
	BoundaryWrap
)

var boundaryNames = [...]string{"stop", "clamp", "wrap"}

func (b Boundary) String() string {
	if b >= 0 && int(b) < len(boundaryNames) {
		return boundaryNames[b]
	}
	return fmt.Sprintf("boundary(%d)", int(b))
}

// ParseBoundary resolves a boundary policy name.
func ParseBoundary(name string) (Boundary, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range boundaryNames {
		if n == name {
			return Boundary(i), nil
		}
	}
	return BoundaryStop, fmt.Errorf("synth: unknown boundary %q: %w", name, core.ErrInvalidParameter)
}

// Blob describes the moving object: an odd-sized square Gaussian kernel.
type Blob struct {
	Size  int
	Sigma float64
}

// Path is the blob trajectory. X and Y locate the top-left kernel pixel in
// frame 0; VX and VY are in pixels per frame. Positions are rounded to the
// nearest pixel.
type Path struct {
	X, Y   int
	VX, VY float64
}

// Generator creates deterministic synthetic movies.
type Generator struct {
	seed      int64
	boundary  Boundary
	amplitude float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed used by [Generator.Noise].
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithBoundary sets the boundary policy.
func WithBoundary(b Boundary) Option {
	return func(g *Generator) {
		g.boundary = b
	}
}

// WithAmplitude scales the unit-sum kernel before it is drawn.
func WithAmplitude(a float64) Option {
	return func(g *Generator) {
		g.amplitude = a
	}
}

// NewGenerator returns a Generator with seed 1, BoundaryStop and amplitude 1.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1, boundary: BoundaryStop, amplitude: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// GaussianKernel returns a size x size kernel exp(-(x^2+y^2)/(2*sigma^2))
// centred on the middle pixel and normalised to sum 1.
func GaussianKernel(size int, sigma float64) (*mat.Dense, error) {
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("synth: kernel size must be odd and > 0: %d: %w", size, core.ErrInvalidParameter)
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("synth: kernel sigma must be > 0: %v: %w", sigma, core.ErrInvalidParameter)
	}

	half := (size - 1) / 2
	g := make([]float64, size)
	for i := range g {
		x := float64(i - half)
		g[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}

	// exp(-(x^2+y^2)/2s^2) = g(x)*g(y)
	k := mat.NewDense(size, size, nil)
	v := mat.NewVecDense(size, g)
	k.Outer(1, v, v)
	k.Scale(1/mat.Sum(k), k)
	return k, nil
}

// Uniform returns a rows x cols background filled with v.
func (g *Generator) Uniform(rows, cols int, v float64) (*mat.Dense, error) {
	if err := validateDims(rows, cols); err != nil {
		return nil, err
	}
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = v
	}
	return mat.NewDense(rows, cols, data), nil
}

// Noise returns a rows x cols background of seeded values in [0, amplitude).
func (g *Generator) Noise(rows, cols int, amplitude float64) (*mat.Dense, error) {
	if err := validateDims(rows, cols); err != nil {
		return nil, err
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("synth: noise amplitude must be >= 0: %v: %w", amplitude, core.ErrInvalidParameter)
	}
	rng := rand.New(rand.NewSource(g.seed))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64() * amplitude
	}
	return mat.NewDense(rows, cols, data), nil
}

// Movie renders nf frames of the blob moving along path over background.
//
// Each frame starts as a copy of background; the scaled kernel replaces the
// pixels it covers, and negative pixels are clamped to zero.
func (g *Generator) Movie(background mat.Matrix, nf int, blob Blob, path Path) (*frame.Stack, error) {
	if nf <= 0 {
		return nil, fmt.Errorf("synth: frame count must be > 0: %d: %w", nf, core.ErrInvalidParameter)
	}
	if background == nil {
		return nil, fmt.Errorf("synth: nil background: %w", core.ErrEmptyInput)
	}
	rows, cols := background.Dims()
	if err := validateDims(rows, cols); err != nil {
		return nil, err
	}
	if blob.Size > rows || blob.Size > cols {
		return nil, fmt.Errorf("synth: blob size %d exceeds %dx%d frame: %w", blob.Size, rows, cols, core.ErrInvalidParameter)
	}
	kernel, err := GaussianKernel(blob.Size, blob.Sigma)
	if err != nil {
		return nil, err
	}
	kernel.Scale(g.amplitude, kernel)

	frames := make([]*mat.Dense, nf)
	visible := true
	for f := range frames {
		m := mat.DenseCopyOf(background)

		var x, y int
		if visible {
			x, y, visible = g.position(path, f, rows, cols, blob.Size)
		}
		if visible {
			draw(m, kernel, x, y, g.boundary == BoundaryWrap)
		}

		clampNegative(m)
		frames[f] = m
	}

	return frame.NewStack(frames)
}

// Positions returns the top-left blob position in every frame and whether
// the blob is drawn there.
func (g *Generator) Positions(nf, rows, cols int, blob Blob, path Path) (xs, ys []int, visible []bool) {
	xs = make([]int, nf)
	ys = make([]int, nf)
	visible = make([]bool, nf)
	ok := true
	for f := 0; f < nf; f++ {
		if ok {
			xs[f], ys[f], ok = g.position(path, f, rows, cols, blob.Size)
		}
		visible[f] = ok
	}
	return xs, ys, visible
}

func (g *Generator) position(path Path, f, rows, cols, size int) (x, y int, visible bool) {
	x = path.X + int(math.Round(path.VX*float64(f)))
	y = path.Y + int(math.Round(path.VY*float64(f)))

	switch g.boundary {
	case BoundaryClamp:
		x = int(core.Clamp(float64(x), 0, float64(cols-size)))
		y = int(core.Clamp(float64(y), 0, float64(rows-size)))
		return x, y, true
	case BoundaryWrap:
		return mod(x, cols), mod(y, rows), true
	default:
		fits := x >= 0 && y >= 0 && x+size <= cols && y+size <= rows
		return x, y, fits
	}
}

func draw(m, kernel *mat.Dense, x, y int, wrap bool) {
	rows, cols := m.Dims()
	size, _ := kernel.Dims()
	for i := 0; i < size; i++ {
		krow := kernel.RawRowView(i)
		if !wrap {
			copy(m.RawRowView(y + i)[x:x+size], krow)
			continue
		}
		row := m.RawRowView(mod(y+i, rows))
		for j, v := range krow {
			row[mod(x+j, cols)] = v
		}
	}
}

func clampNegative(m *mat.Dense) {
	rows, _ := m.Dims()
	for r := 0; r < rows; r++ {
		row := m.RawRowView(r)
		if floats.Min(row) >= 0 {
			continue
		}
		for i, v := range row {
			if v < 0 {
				row[i] = 0
			}
		}
	}
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

func validateDims(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("synth: frame must be at least 1x1: %dx%d: %w", rows, cols, core.ErrInvalidParameter)
	}
	return nil
}
