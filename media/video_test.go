package media

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/motion/frame"
	"github.com/cwbudde/algo-motion/motion/synth"
)

func requireFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not on PATH")
	}
}

func testMovie(t *testing.T, nf int) *frame.Stack {
	t.Helper()
	g := synth.NewGenerator(synth.WithBoundary(synth.BoundaryWrap), synth.WithAmplitude(100))
	bg, err := g.Uniform(32, 48, 0)
	require.NoError(t, err)
	s, err := g.Movie(bg, nf, synth.Blob{Size: 5, Sigma: 1.5}, synth.Path{X: 2, Y: 4, VX: 2, VY: 1})
	require.NoError(t, err)
	return s
}

func TestWriteReadVideo(t *testing.T) {
	requireFFmpeg(t)

	path := filepath.Join(t.TempDir(), "movie.mp4")
	require.NoError(t, WriteVideo(path, testMovie(t, 10), 20))

	s, fps, err := ReadVideo(path, ReadOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 20, fps, 0.01)
	assert.Equal(t, 10, s.Len())
	rows, cols := s.Dims()
	assert.Equal(t, 32, rows)
	assert.Equal(t, 48, cols)

	part, _, err := ReadVideo(path, ReadOptions{From: 2, To: 6, Channel: ChannelGreen})
	require.NoError(t, err)
	assert.Equal(t, 4, part.Len())

	_, _, err = ReadVideo(path, ReadOptions{From: 50})
	assert.ErrorIs(t, err, core.ErrEmptyInput)
}

func TestReadVideoErrors(t *testing.T) {
	_, _, err := ReadVideo("movie.mp4", ReadOptions{From: -1})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, _, err = ReadVideo("movie.mp4", ReadOptions{From: 4, To: 4})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, _, err = ReadVideo("movie.mp4", ReadOptions{Channel: Channel(7)})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, _, err = ReadVideo(filepath.Join(t.TempDir(), "missing.mp4"), ReadOptions{})
	assert.Error(t, err)
}

func TestWriteVideoErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie.mp4")
	assert.ErrorIs(t, WriteVideo(path, nil, 20), core.ErrEmptyInput)
	assert.ErrorIs(t, WriteVideo(path, testMovie(t, 2), 0), core.ErrInvalidParameter)
}
