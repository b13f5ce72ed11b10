package config

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/dsp/window"
	"github.com/cwbudde/algo-motion/media"
	"github.com/cwbudde/algo-motion/motion/synth"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	p := &Params{}
	require.NoError(t, p.Validate())

	assert.Equal(t, 20.0, p.GetFrameRate())
	ax, ay := p.GetCoefficients()
	assert.Equal(t, 2, ax)
	assert.Equal(t, 2, ay)
	assert.Equal(t, 2, p.GetEdgeBins())
	assert.Equal(t, 1, p.GetWorkers())
	assert.Equal(t, 80, p.GetFrames())
	w, h := p.GetSize()
	assert.Equal(t, 260, w)
	assert.Equal(t, 200, h)
	assert.Equal(t, synth.Blob{Size: 3, Sigma: 1}, p.GetBlob())
	assert.Equal(t, synth.Path{X: 0, Y: 25, VX: 3, VY: 2}, p.GetPath())
	assert.Empty(t, p.GetMasks())

	win, err := p.GetWindow()
	require.NoError(t, err)
	assert.Equal(t, window.Rectangular, win)
	ch, err := p.GetChannel()
	require.NoError(t, err)
	assert.Equal(t, media.ChannelLuma, ch)
	b, err := p.GetBoundary()
	require.NoError(t, err)
	assert.Equal(t, synth.BoundaryStop, b)
}

func TestLoadParamsPartial(t *testing.T) {
	path := writeFile(t, "velest.json", `{
		"frame_rate": 25,
		"ax": 3,
		"window": "hann",
		"masks": [[0, 0, 100, 20]],
		"boundary": "wrap"
	}`)

	p, err := LoadParams(path)
	require.NoError(t, err)

	assert.Equal(t, 25.0, p.GetFrameRate())
	ax, ay := p.GetCoefficients()
	assert.Equal(t, 3, ax)
	assert.Equal(t, 2, ay, "unset field keeps its default")
	win, err := p.GetWindow()
	require.NoError(t, err)
	assert.Equal(t, window.Hann, win)
	assert.Equal(t, []image.Rectangle{image.Rect(0, 0, 100, 20)}, p.GetMasks())
	b, err := p.GetBoundary()
	require.NoError(t, err)
	assert.Equal(t, synth.BoundaryWrap, b)

	e, err := p.NewEstimator()
	require.NoError(t, err)
	assert.InDelta(t, 0.04, e.Config().SampleInterval, 1e-15)
}

func TestLoadParamsRejects(t *testing.T) {
	_, err := LoadParams(writeFile(t, "velest.yaml", `{}`))
	assert.ErrorContains(t, err, ".json extension")

	_, err = LoadParams(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadParams(writeFile(t, "bad.json", `{"ax": `))
	assert.ErrorContains(t, err, "parse")

	big := `{"seed": 1` + strings.Repeat(" ", maxFileSize) + `}`
	_, err = LoadParams(writeFile(t, "big.json", big))
	assert.ErrorContains(t, err, "too large")

	_, err = LoadParams(writeFile(t, "invalid.json", `{"edge_bins": -1}`))
	assert.ErrorContains(t, err, "edge_bins")
}

func TestValidate(t *testing.T) {
	cases := map[string]*Params{
		"frame rate": {FrameRate: Float64(0)},
		"ax":         {AX: Int(0)},
		"ay":         {AY: Int(0)},
		"window":     {Window: String("kaiser")},
		"channel":    {Channel: String("alpha")},
		"mask":       {Masks: [][4]int{{10, 0, 5, 5}}},
		"frames":     {Frames: Int(0)},
		"width":      {Width: Int(-1)},
		"height":     {Height: Int(0)},
		"blob size":  {BlobSize: Int(4)},
		"blob sigma": {BlobSigma: Float64(0)},
		"boundary":   {Boundary: String("bounce")},
		"noise":      {Noise: Float64(-1)},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, p.Validate())
		})
	}
}

func TestMerge(t *testing.T) {
	file := &Params{AX: Int(3), AY: Int(4), Masks: [][4]int{{0, 0, 1, 1}}}
	flags := &Params{AY: Int(5), Workers: Int(8)}

	m := file.Merge(flags)
	ax, ay := m.GetCoefficients()
	assert.Equal(t, 3, ax)
	assert.Equal(t, 5, ay)
	assert.Equal(t, 8, m.GetWorkers())
	assert.Len(t, m.Masks, 1)

	ax, ay = file.GetCoefficients()
	assert.Equal(t, 4, ay, "merge must not modify the receiver")
	assert.Equal(t, 3, ax)

	assert.Equal(t, file.AX, file.Merge(nil).AX)
}

func TestNewEstimatorAndGenerator(t *testing.T) {
	p := &Params{FrameRate: Float64(20), EdgeBins: Int(-1)}
	_, err := p.NewEstimator()
	assert.True(t, errors.Is(err, core.ErrInvalidParameter))

	g, err := (&Params{Boundary: String("clamp"), BlobAmplitude: Float64(10)}).NewGenerator()
	require.NoError(t, err)
	xs, _, visible := g.Positions(3, 10, 10, synth.Blob{Size: 3}, synth.Path{X: 6, VX: 5})
	assert.Equal(t, []int{6, 7, 7}, xs)
	assert.Equal(t, []bool{true, true, true}, visible)
}
