package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// planes is reusable storage for the real and imaginary parts of a series.
type planes struct {
	data []float64
}

var planePool = sync.Pool{
	New: func() any { return &planes{} },
}

// split copies the parts of in into pooled storage. The caller returns p to
// planePool once re and im are no longer needed.
func split(in []complex128) (re, im []float64, p *planes) {
	p = planePool.Get().(*planes)
	n := len(in)
	if cap(p.data) < 2*n {
		p.data = make([]float64, 2*n)
	}
	re, im = p.data[:n], p.data[n:2*n]
	for i, c := range in {
		re[i], im[i] = real(c), imag(c)
	}
	return re, im, p
}

// Magnitude returns |X[k]| for each bin of a transformed projection.
// The planes are pooled, so repeated calls allocate only the result.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, p := split(in)
	vecmath.Magnitude(out, re, im)
	planePool.Put(p)
	return out
}
