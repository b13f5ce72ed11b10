package render

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// SpectraPNG writes x and y as two side-by-side line plots to path.
func SpectraPNG(path string, x, y []float64, o Options) error {
	if err := validate(x, y); err != nil {
		return err
	}
	o = o.withDefaults()

	px, err := linePlot(o.TitleX, x, o)
	if err != nil {
		return err
	}
	py, err := linePlot(o.TitleY, y, o)
	if err != nil {
		return err
	}

	img := vgimg.New(vg.Points(o.Width), vg.Points(o.Height))
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter, PadY: vg.Millimeter}
	canvases := plot.Align([][]*plot.Plot{{px, py}}, tiles, dc)
	px.Draw(canvases[0][0])
	py.Draw(canvases[0][1])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("render: write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("render: close %q: %w", path, err)
	}
	return nil
}

func linePlot(title string, data []float64, o Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Bin"
	p.Y.Label.Text = "Magnitude"

	pts := make(plotter.XYs, len(data))
	for i, v := range data {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("render: %s: %w", title, err)
	}
	line.Width = vg.Points(1)
	p.Add(line, plotter.NewGrid())

	if o.fixedRange() {
		p.Y.Min = o.YMin
		p.Y.Max = o.YMax
	}
	return p, nil
}
