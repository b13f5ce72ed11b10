package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-motion/dsp/core"
)

func spectra() (x, y []float64) {
	x = make([]float64, 80)
	y = make([]float64, 80)
	x[24] = 500
	y[16] = 300
	for i := 2; i < 78; i++ {
		x[i] += 3
		y[i] += 2
	}
	return x, y
}

func TestSpectraPNG(t *testing.T) {
	x, y := spectra()
	path := filepath.Join(t.TempDir(), "spectra.png")
	require.NoError(t, SpectraPNG(path, x, y, Options{YMax: 600}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Greater(t, cfg.Width, cfg.Height)
}

func TestSpectraHTML(t *testing.T) {
	x, y := spectra()
	var buf bytes.Buffer
	require.NoError(t, SpectraHTML(&buf, x, y, Options{TitleX: "spectrum x", TitleY: "spectrum y"}))

	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "spectrum x")
	assert.Contains(t, out, "spectrum y")
	assert.Contains(t, out, "echarts")
}

func TestRenderEmpty(t *testing.T) {
	x, _ := spectra()
	var buf bytes.Buffer
	assert.ErrorIs(t, SpectraHTML(&buf, x, nil, Options{}), core.ErrEmptyInput)
	assert.ErrorIs(t, SpectraPNG(filepath.Join(t.TempDir(), "a.png"), nil, x, Options{}), core.ErrEmptyInput)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{Width: 400}.withDefaults()
	assert.Equal(t, "G_x", o.TitleX)
	assert.Equal(t, "G_y", o.TitleY)
	assert.Equal(t, 400.0, o.Width)
	assert.Equal(t, DefaultOptions().Height, o.Height)
	assert.False(t, o.fixedRange())
	assert.True(t, Options{YMin: -1, YMax: 1}.fixedRange())
}
