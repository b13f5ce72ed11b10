// Package window provides tapers applied to a projection series before the
// Fourier transform.
//
// The estimator defaults to [Rectangular], which leaves the series untouched.
// Smooth tapers trade a wider main lobe for lower leakage from a strong
// static component into neighbouring bins.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-motion/dsp/core"
)

// Type identifies a window function.
type Type int

const (
	Rectangular Type = iota
	Hann
	Hamming
	Blackman
)

var names = map[Type]string{
	Rectangular: "rectangular",
	Hann:        "hann",
	Hamming:     "hamming",
	Blackman:    "blackman",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("window(%d)", int(t))
}

// Parse resolves a window name (case-insensitive).
func Parse(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return Rectangular, nil
	}
	for t, n := range names {
		if n == name {
			return t, nil
		}
	}
	return Rectangular, fmt.Errorf("window: unknown window %q: %w", name, core.ErrInvalidParameter)
}

// Generate returns symmetric window coefficients of the given length.
func Generate(t Type, length int) ([]float64, error) {
	if err := validateLength(length); err != nil {
		return nil, err
	}
	if _, ok := names[t]; !ok {
		return nil, fmt.Errorf("window: unknown type %d: %w", int(t), core.ErrInvalidParameter)
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out, nil
	}

	denom := float64(length - 1)
	for i := range out {
		x := 2 * math.Pi * float64(i) / denom
		switch t {
		case Rectangular:
			out[i] = 1
		case Hann:
			out[i] = 0.5 - 0.5*math.Cos(x)
		case Hamming:
			out[i] = 0.54 - 0.46*math.Cos(x)
		case Blackman:
			out[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
		}
	}
	return out, nil
}

// ApplyComplex returns a copy of series with each sample scaled by the window.
func ApplyComplex(t Type, series []complex128) ([]complex128, error) {
	coeffs, err := Generate(t, len(series))
	if err != nil {
		return nil, err
	}

	n := len(series)
	re := make([]float64, n)
	im := make([]float64, n)
	for i, c := range series {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.MulBlockInPlace(re, coeffs)
	vecmath.MulBlockInPlace(im, coeffs)

	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(re[i], im[i])
	}
	return out, nil
}

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d: %w", size, core.ErrEmptyInput)
	}
	return nil
}
