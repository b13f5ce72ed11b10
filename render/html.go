package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// SpectraHTML renders x and y as an HTML page with two line charts.
func SpectraHTML(w io.Writer, x, y []float64, o Options) error {
	if err := validate(x, y); err != nil {
		return err
	}
	o = o.withDefaults()

	page := components.NewPage()
	page.PageTitle = "Velocity spectra"
	page.AddCharts(lineChart(o.TitleX, x, o), lineChart(o.TitleY, y, o))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render: html: %w", err)
	}
	return nil
}

func lineChart(title string, data []float64, o Options) *charts.Line {
	bins := make([]string, len(data))
	values := make([]opts.LineData, len(data))
	for i, v := range data {
		bins[i] = strconv.Itoa(i)
		values[i] = opts.LineData{Value: v}
	}

	yAxis := opts.YAxis{Name: "Magnitude"}
	if o.fixedRange() {
		yAxis.Min = o.YMin
		yAxis.Max = o.YMax
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     fmt.Sprintf("%.0fpx", o.Width/2),
			Height:    fmt.Sprintf("%.0fpx", o.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Bin"}),
		charts.WithYAxisOpts(yAxis),
	)
	line.SetXAxis(bins).AddSeries(title, values)
	return line
}
