package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-motion/dsp/core"
)

// SuppressEdges returns a copy of mag with the first n and last n bins set
// to zero. n must lie in [0, len(mag)/2]; n == 0 returns an unmodified copy.
func SuppressEdges(mag []float64, n int) ([]float64, error) {
	if len(mag) == 0 {
		return nil, fmt.Errorf("spectrum: suppress edges: %w", core.ErrEmptyInput)
	}
	if err := core.ValidateEdgeBins(n, len(mag)); err != nil {
		return nil, fmt.Errorf("spectrum: suppress edges: %w", err)
	}

	out := make([]float64, len(mag))
	copy(out, mag)
	core.Zero(out[:n])
	core.Zero(out[len(out)-n:])
	return out, nil
}

// PeakBin returns the index of the largest bin; ties resolve to the lowest
// index. A spectrum with no positive bin has no meaningful peak and yields
// core.ErrEmptyInput, as does an empty spectrum.
func PeakBin(mag []float64) (int, error) {
	if len(mag) == 0 {
		return 0, fmt.Errorf("spectrum: peak search: %w", core.ErrEmptyInput)
	}

	peak := -1
	best := 0.0
	for i, v := range mag {
		if v > best {
			best = v
			peak = i
		}
	}
	if peak < 0 {
		return 0, fmt.Errorf("spectrum: peak search: no positive bin in %d: %w", len(mag), core.ErrEmptyInput)
	}
	return peak, nil
}

// Prominence is the peak magnitude divided by the mean of all other bins.
// It returns +Inf when every other bin is zero and 0 for an invalid peak.
func Prominence(mag []float64, peak int) float64 {
	if peak < 0 || peak >= len(mag) {
		return 0
	}
	if len(mag) == 1 {
		return math.Inf(1)
	}

	rest := (floats.Sum(mag) - mag[peak]) / float64(len(mag)-1)
	if rest <= 0 {
		return math.Inf(1)
	}
	return mag[peak] / rest
}

// BinFrequency returns the frequency of bin k for an n-point transform of
// samples spaced dt apart, in cycles per second.
func BinFrequency(k, n int, dt float64) float64 {
	if n <= 0 || dt <= 0 {
		return 0
	}
	return float64(k) / (float64(n) * dt)
}
