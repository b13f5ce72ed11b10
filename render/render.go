// Package render draws the x and y projection spectra of a velocity estimate
// for inspection, either as a PNG (gonum/plot) or as an interactive HTML page
// (go-echarts). It only consumes plain slices and never feeds back into the
// estimate.
package render

import (
	"fmt"

	"github.com/cwbudde/algo-motion/dsp/core"
)

// Options controls titles, axis range and size of the rendered spectra.
type Options struct {
	TitleX, TitleY string
	// YMin and YMax fix the y range of both plots when YMax > YMin;
	// otherwise each plot autoscales.
	YMin, YMax float64
	// Width and Height of the whole figure, in points for PNG and pixels
	// for HTML.
	Width, Height float64
}

// DefaultOptions returns the labels used by the command line tool.
func DefaultOptions() Options {
	return Options{
		TitleX: "G_x",
		TitleY: "G_y",
		Width:  900,
		Height: 360,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TitleX == "" {
		o.TitleX = d.TitleX
	}
	if o.TitleY == "" {
		o.TitleY = d.TitleY
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

func (o Options) fixedRange() bool {
	return o.YMax > o.YMin
}

func validate(x, y []float64) error {
	if len(x) == 0 || len(y) == 0 {
		return fmt.Errorf("render: empty spectrum: %w", core.ErrEmptyInput)
	}
	return nil
}
