package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/dsp/window"
)

// Transform returns the unnormalised forward DFT of series.
// The input is not modified.
//
// Power-of-two lengths run on an algo-fft plan. Every other length, including
// the usual frame counts such as 40 or 80, runs on gonum's FFT: the mixed-radix
// algo-fft plans for those sizes build without error but return wrong bins.
func Transform(series []complex128) ([]complex128, error) {
	n := len(series)
	if n == 0 {
		return nil, fmt.Errorf("spectrum: transform: %w", core.ErrEmptyInput)
	}

	out := make([]complex128, n)
	if !usesPlan(n) {
		return fourier.NewCmplxFFT(n).Coefficients(out, series), nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: plan %d samples: %w", n, err)
	}
	if err := plan.Forward(out, series); err != nil {
		return nil, fmt.Errorf("spectrum: forward transform of %d samples: %w", n, err)
	}
	return out, nil
}

// usesPlan reports whether an n-point transform goes through algo-fft.
func usesPlan(n int) bool {
	return n > 1 && n&(n-1) == 0
}

// TransformReference computes the DFT with gonum for every length. It serves
// as a cross-check for [Transform].
func TransformReference(series []complex128) ([]complex128, error) {
	n := len(series)
	if n == 0 {
		return nil, fmt.Errorf("spectrum: transform: %w", core.ErrEmptyInput)
	}
	return fourier.NewCmplxFFT(n).Coefficients(make([]complex128, n), series), nil
}

// Compute returns the magnitude spectrum of a projection series.
// The result has the same length as series.
func Compute(series []complex128) ([]float64, error) {
	bins, err := Transform(series)
	if err != nil {
		return nil, err
	}
	return Magnitude(bins), nil
}

// ComputeWindowed tapers a copy of series with w before computing its
// magnitude spectrum. [window.Rectangular] is equivalent to [Compute].
func ComputeWindowed(series []complex128, w window.Type) ([]float64, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("spectrum: transform: %w", core.ErrEmptyInput)
	}
	if w == window.Rectangular {
		return Compute(series)
	}

	tapered, err := window.ApplyComplex(w, series)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}
	return Compute(tapered)
}
