// Package frame holds the immutable frame stack consumed by the velocity
// estimator: an ordered sequence of equally sized real-valued intensity
// matrices, indexed from frame 0.
package frame

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-motion/dsp/core"
)

// Stack is a validated, frame-ordered sequence of rows x cols matrices.
//
// A Stack takes ownership of the matrices passed to [NewStack]; they must
// not be modified afterwards.
type Stack struct {
	frames     []*mat.Dense
	rows, cols int
}

// NewStack validates frames and wraps them in a Stack.
//
// It fails with core.ErrEmptyInput when there are no frames or a frame is
// nil or empty, and with core.ErrShapeMismatch when frame dimensions differ.
func NewStack(frames []*mat.Dense) (*Stack, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("frame: no frames: %w", core.ErrEmptyInput)
	}

	var rows, cols int
	for i, f := range frames {
		if f == nil || f.IsEmpty() {
			return nil, fmt.Errorf("frame: frame %d is empty: %w", i, core.ErrEmptyInput)
		}
		r, c := f.Dims()
		if i == 0 {
			rows, cols = r, c
			continue
		}
		if r != rows || c != cols {
			return nil, fmt.Errorf("frame: frame %d is %dx%d, frame 0 is %dx%d: %w",
				i, r, c, rows, cols, core.ErrShapeMismatch)
		}
	}

	return &Stack{
		frames: append([]*mat.Dense(nil), frames...),
		rows:   rows,
		cols:   cols,
	}, nil
}

// Len returns the number of frames.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

// Dims returns the shape shared by every frame.
func (s *Stack) Dims() (rows, cols int) {
	return s.rows, s.cols
}

// At returns frame i.
func (s *Stack) At(i int) mat.Matrix {
	return s.frames[i]
}

// Row returns a read-only view of row r of frame i.
func (s *Stack) Row(i, r int) []float64 {
	return s.frames[i].RawRowView(r)
}

// Slice returns the frames in [from, to) as a new Stack sharing the
// underlying matrices.
func (s *Stack) Slice(from, to int) (*Stack, error) {
	if from < 0 || to > s.Len() || from > to {
		return nil, fmt.Errorf("frame: slice [%d,%d) of %d frames: %w", from, to, s.Len(), core.ErrInvalidParameter)
	}
	if from == to {
		return nil, fmt.Errorf("frame: slice [%d,%d): %w", from, to, core.ErrEmptyInput)
	}
	return &Stack{frames: s.frames[from:to], rows: s.rows, cols: s.cols}, nil
}

// Mask returns a copy of the stack with every rectangle zeroed in every
// frame. Rectangles use x for columns and y for rows and are clipped to the
// frame bounds.
func (s *Stack) Mask(rects ...image.Rectangle) *Stack {
	bounds := image.Rect(0, 0, s.cols, s.rows)
	out := make([]*mat.Dense, len(s.frames))
	for i, f := range s.frames {
		m := mat.DenseCopyOf(f)
		for _, r := range rects {
			r = r.Intersect(bounds)
			for y := r.Min.Y; y < r.Max.Y; y++ {
				row := m.RawRowView(y)
				core.Zero(row[r.Min.X:r.Max.X])
			}
		}
		out[i] = m
	}
	return &Stack{frames: out, rows: s.rows, cols: s.cols}
}

// Max returns the largest pixel value over all frames.
func (s *Stack) Max() float64 {
	peak := mat.Max(s.frames[0])
	for _, f := range s.frames[1:] {
		if v := mat.Max(f); v > peak {
			peak = v
		}
	}
	return peak
}
