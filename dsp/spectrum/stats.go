package spectrum

import "math"

// Flatness returns the spectral flatness (Wiener entropy) of mag:
//
//	exp(mean(log(mag))) / mean(mag)
//
// It is close to 1 for a noise-like spectrum and close to 0 when a few bins
// dominate. Callers pass only the bins that took part in the peak search, so
// suppressed edges do not force the result to zero. An empty or all-zero
// input, or any zero bin, yields 0.
func Flatness(mag []float64) float64 {
	if len(mag) == 0 {
		return 0
	}

	sumLin := 0.0
	sumLog := 0.0
	for _, v := range mag {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	n := float64(len(mag))
	return math.Exp(sumLog/n) / (sumLin / n)
}
