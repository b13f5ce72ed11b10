package media

import (
	"errors"
	"fmt"
	"io"

	"github.com/unixpickle/ffmpego"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/motion/frame"
)

// ReadOptions selects the part of a video that becomes a frame stack.
type ReadOptions struct {
	// From is the index of the first decoded frame to keep.
	From int
	// To is one past the last frame to keep; 0 reads to the end.
	To int
	// Channel picks the colour component used as intensity.
	Channel Channel
}

func (o ReadOptions) validate() error {
	if o.From < 0 {
		return fmt.Errorf("media: from must be >= 0: %d: %w", o.From, core.ErrInvalidParameter)
	}
	if o.To != 0 && o.To <= o.From {
		return fmt.Errorf("media: to must exceed from: [%d,%d): %w", o.From, o.To, core.ErrInvalidParameter)
	}
	if _, err := o.Channel.offset(); err != nil {
		return err
	}
	return nil
}

// ReadVideo decodes frames [From, To) of the video at path and returns them
// together with the stream frame rate.
func ReadVideo(path string, opts ReadOptions) (*frame.Stack, float64, error) {
	if err := opts.validate(); err != nil {
		return nil, 0, err
	}

	vr, err := ffmpego.NewVideoReader(path)
	if err != nil {
		return nil, 0, fmt.Errorf("media: open video %q: %w", path, err)
	}
	defer vr.Close()
	fps := vr.VideoInfo().FPS

	var frames []*mat.Dense
	for i := 0; opts.To == 0 || i < opts.To; i++ {
		img, err := vr.ReadFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("media: read frame %d of %q: %w", i, path, err)
		}
		if i < opts.From {
			continue
		}
		m, err := FromImage(img, opts.Channel)
		if err != nil {
			return nil, 0, fmt.Errorf("media: frame %d: %w", i, err)
		}
		frames = append(frames, m)
	}

	if len(frames) == 0 {
		return nil, 0, fmt.Errorf("media: no frames in [%d,%d) of %q: %w", opts.From, opts.To, path, core.ErrEmptyInput)
	}
	s, err := frame.NewStack(frames)
	if err != nil {
		return nil, 0, fmt.Errorf("media: %w", err)
	}
	return s, fps, nil
}

// WriteVideo encodes s at fps frames per second. All frames share one
// normalisation so that intensities stay comparable across the movie.
func WriteVideo(path string, s *frame.Stack, fps float64) error {
	if s.Len() == 0 {
		return fmt.Errorf("media: %w", core.ErrEmptyInput)
	}
	if !(fps > 0) {
		return fmt.Errorf("media: fps must be > 0: %v: %w", fps, core.ErrInvalidParameter)
	}

	rows, cols := s.Dims()
	vw, err := ffmpego.NewVideoWriter(path, cols, rows, fps)
	if err != nil {
		return fmt.Errorf("media: create video %q: %w", path, err)
	}

	peak := s.Max()
	for i := 0; i < s.Len(); i++ {
		if err := vw.WriteFrame(ToGray(s.At(i), peak)); err != nil {
			vw.Close()
			return fmt.Errorf("media: write frame %d: %w", i, err)
		}
	}
	if err := vw.Close(); err != nil {
		return fmt.Errorf("media: finish video %q: %w", path, err)
	}
	return nil
}
