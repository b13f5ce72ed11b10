package testutil

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DeterministicComplex generates a seeded complex series with parts in [-1, 1].
func DeterministicComplex(seed int64, length int) []complex128 {
	out := make([]complex128, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}
	return out
}

// DeterministicFrame returns a rows x cols matrix of seeded values in [0, amplitude).
func DeterministicFrame(seed int64, rows, cols int, amplitude float64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64() * amplitude
	}
	return mat.NewDense(rows, cols, data)
}

// RepeatFrame returns n independent copies of m.
func RepeatFrame(m mat.Matrix, n int) []*mat.Dense {
	out := make([]*mat.Dense, n)
	for i := range out {
		out[i] = mat.DenseCopyOf(m)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// SizeName formats a benchmark sub-test name for a length.
func SizeName(n int) string {
	return fmt.Sprintf("n=%d", n)
}
