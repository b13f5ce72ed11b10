package synth

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-motion/dsp/core"
)

func TestGaussianKernel(t *testing.T) {
	k, err := GaussianKernel(3, 1)
	if err != nil {
		t.Fatalf("GaussianKernel error: %v", err)
	}
	if s := mat.Sum(k); math.Abs(s-1) > 1e-12 {
		t.Fatalf("sum=%v want 1", s)
	}

	// Reference values for size 3, sigma 1.
	e1 := math.Exp(-0.5)
	e2 := math.Exp(-1)
	norm := 1 + 4*e1 + 4*e2
	if math.Abs(k.At(1, 1)-1/norm) > 1e-12 {
		t.Fatalf("centre=%v want %v", k.At(1, 1), 1/norm)
	}
	if math.Abs(k.At(0, 1)-e1/norm) > 1e-12 {
		t.Fatalf("edge=%v want %v", k.At(0, 1), e1/norm)
	}
	if math.Abs(k.At(0, 0)-e2/norm) > 1e-12 {
		t.Fatalf("corner=%v want %v", k.At(0, 0), e2/norm)
	}
}

func TestGaussianKernelErrors(t *testing.T) {
	for _, tc := range []struct {
		size  int
		sigma float64
	}{{0, 1}, {4, 1}, {3, 0}, {3, math.NaN()}} {
		if _, err := GaussianKernel(tc.size, tc.sigma); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("GaussianKernel(%d,%v) err=%v", tc.size, tc.sigma, err)
		}
	}
}

func TestMovieDrawsBlobAlongPath(t *testing.T) {
	g := NewGenerator(WithAmplitude(9))
	bg, _ := g.Uniform(20, 30, 0)
	s, err := g.Movie(bg, 5, Blob{Size: 3, Sigma: 1}, Path{X: 1, Y: 2, VX: 3, VY: 2})
	if err != nil {
		t.Fatalf("Movie error: %v", err)
	}
	if s.Len() != 5 {
		t.Fatalf("Len=%d want 5", s.Len())
	}

	for f := 0; f < s.Len(); f++ {
		m := s.At(f)
		if got := mat.Sum(m); math.Abs(got-9) > 1e-9 {
			t.Fatalf("frame %d sum=%v want 9", f, got)
		}
		cx, cy := 1+3*f+1, 2+2*f+1
		if m.At(cy, cx) != mat.Max(m) {
			t.Fatalf("frame %d: maximum not at (%d,%d)", f, cy, cx)
		}
	}
}

func TestMovieReplacesBackground(t *testing.T) {
	g := NewGenerator()
	bg, _ := g.Uniform(5, 5, 100)
	s, err := g.Movie(bg, 1, Blob{Size: 1, Sigma: 1}, Path{X: 2, Y: 2})
	if err != nil {
		t.Fatalf("Movie error: %v", err)
	}
	if got := s.At(0).At(2, 2); got != 1 {
		t.Fatalf("blob pixel=%v want 1 (replacement, not addition)", got)
	}
	if got := s.At(0).At(0, 0); got != 100 {
		t.Fatalf("background pixel=%v want 100", got)
	}
	if bg.At(2, 2) != 100 {
		t.Fatal("background was modified")
	}
}

func TestMovieClampsNegativePixels(t *testing.T) {
	g := NewGenerator()
	bg, _ := g.Uniform(4, 4, -3)
	s, err := g.Movie(bg, 2, Blob{Size: 1, Sigma: 1}, Path{})
	if err != nil {
		t.Fatalf("Movie error: %v", err)
	}
	if mat.Min(s.At(1)) < 0 {
		t.Fatal("negative pixel survived")
	}
}

func TestBoundaryStop(t *testing.T) {
	g := NewGenerator()
	bg, _ := g.Uniform(10, 10, 0)
	s, err := g.Movie(bg, 6, Blob{Size: 3, Sigma: 1}, Path{X: 0, Y: 0, VX: 3})
	if err != nil {
		t.Fatalf("Movie error: %v", err)
	}
	// x = 0, 3, 6 fit; x = 9 does not, and the blob never returns.
	for f := 0; f < 6; f++ {
		sum := mat.Sum(s.At(f))
		if f < 3 && math.Abs(sum-1) > 1e-9 {
			t.Fatalf("frame %d sum=%v want 1", f, sum)
		}
		if f >= 3 && sum != 0 {
			t.Fatalf("frame %d sum=%v want 0 after leaving the frame", f, sum)
		}
	}
}

func TestBoundaryClamp(t *testing.T) {
	g := NewGenerator(WithBoundary(BoundaryClamp))
	xs, ys, visible := g.Positions(5, 10, 10, Blob{Size: 3}, Path{X: 5, Y: 5, VX: 2, VY: -2})
	wantX := []int{5, 7, 7, 7, 7}
	wantY := []int{5, 3, 1, 0, 0}
	for f := range xs {
		if xs[f] != wantX[f] || ys[f] != wantY[f] || !visible[f] {
			t.Fatalf("frame %d: (%d,%d,%v) want (%d,%d,true)", f, xs[f], ys[f], visible[f], wantX[f], wantY[f])
		}
	}
}

func TestBoundaryWrap(t *testing.T) {
	g := NewGenerator(WithBoundary(BoundaryWrap))
	bg, _ := g.Uniform(6, 6, 0)
	s, err := g.Movie(bg, 3, Blob{Size: 3, Sigma: 1}, Path{X: 4, Y: 0, VX: 1})
	if err != nil {
		t.Fatalf("Movie error: %v", err)
	}
	for f := 0; f < s.Len(); f++ {
		if sum := mat.Sum(s.At(f)); math.Abs(sum-1) > 1e-9 {
			t.Fatalf("frame %d sum=%v want 1", f, sum)
		}
	}
	// Frame 1: x = 5, the kernel centre column wraps to 0.
	m := s.At(1)
	if m.At(1, 0) != mat.Max(m) {
		t.Fatalf("wrapped centre not at column 0")
	}
}

func TestMovieErrors(t *testing.T) {
	g := NewGenerator()
	bg, _ := g.Uniform(4, 4, 0)
	blob := Blob{Size: 3, Sigma: 1}

	if _, err := g.Movie(bg, 0, blob, Path{}); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("nf=0 err=%v", err)
	}
	if _, err := g.Movie(nil, 3, blob, Path{}); !errors.Is(err, core.ErrEmptyInput) {
		t.Fatalf("nil background err=%v", err)
	}
	if _, err := g.Movie(bg, 3, Blob{Size: 5, Sigma: 1}, Path{}); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("oversized blob err=%v", err)
	}
	if _, err := g.Uniform(0, 3, 1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("Uniform(0,3) err=%v", err)
	}
	if _, err := g.Noise(3, 3, -1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("Noise(-1) err=%v", err)
	}
}

func TestNoiseSeeded(t *testing.T) {
	a, _ := NewGenerator(WithSeed(5)).Noise(3, 4, 10)
	b, _ := NewGenerator(WithSeed(5)).Noise(3, 4, 10)
	c, _ := NewGenerator(WithSeed(6)).Noise(3, 4, 10)
	if !mat.Equal(a, b) {
		t.Fatal("same seed produced different noise")
	}
	if mat.Equal(a, c) {
		t.Fatal("different seeds produced identical noise")
	}
	if mat.Min(a) < 0 || mat.Max(a) >= 10 {
		t.Fatalf("noise out of [0,10): min=%v max=%v", mat.Min(a), mat.Max(a))
	}
}

func TestParseBoundary(t *testing.T) {
	for _, b := range []Boundary{BoundaryStop, BoundaryClamp, BoundaryWrap} {
		got, err := ParseBoundary(b.String())
		if err != nil || got != b {
			t.Fatalf("ParseBoundary(%q)=%v,%v", b.String(), got, err)
		}
	}
	if _, err := ParseBoundary("bounce"); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("err=%v", err)
	}
}
