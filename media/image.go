package media

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-motion/dsp/core"
)

// Channel selects which component of a colour image becomes the frame
// intensity.
type Channel int

const (
	// ChannelLuma uses Rec. 601 luminance.
	ChannelLuma Channel = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
)

var channelNames = [...]string{"luma", "red", "green", "blue"}

func (c Channel) String() string {
	if c >= 0 && int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// ParseChannel resolves a channel name. The single letters r, g, b and y are
// accepted too.
func ParseChannel(name string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "luma", "y", "gray", "grey":
		return ChannelLuma, nil
	case "red", "r":
		return ChannelRed, nil
	case "green", "g":
		return ChannelGreen, nil
	case "blue", "b":
		return ChannelBlue, nil
	}
	return ChannelLuma, fmt.Errorf("media: unknown channel %q: %w", name, core.ErrInvalidParameter)
}

// offset is the byte offset of the channel inside an NRGBA pixel.
func (c Channel) offset() (int, error) {
	switch c {
	case ChannelLuma, ChannelRed:
		return 0, nil
	case ChannelGreen:
		return 1, nil
	case ChannelBlue:
		return 2, nil
	}
	return 0, fmt.Errorf("media: unknown channel %d: %w", int(c), core.ErrInvalidParameter)
}

// FromImage converts one channel of img into a rows x cols matrix of 8-bit
// intensities in [0, 255].
func FromImage(img image.Image, c Channel) (*mat.Dense, error) {
	if img == nil {
		return nil, fmt.Errorf("media: nil image: %w", core.ErrEmptyInput)
	}
	off, err := c.offset()
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("media: empty image: %w", core.ErrEmptyInput)
	}

	var px *image.NRGBA
	if c == ChannelLuma {
		px = imaging.Grayscale(img)
	} else {
		px = imaging.Clone(img)
	}

	rows, cols := b.Dy(), b.Dx()
	m := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		src := px.Pix[y*px.Stride:]
		dst := m.RawRowView(y)
		for x := range dst {
			dst[x] = float64(src[4*x+off])
		}
	}
	return m, nil
}

// ToGray scales m so that peak maps to 255 and renders it as an 8-bit image.
// Values outside [0, peak] saturate. A non-positive peak yields a black image.
func ToGray(m mat.Matrix, peak float64) *image.Gray {
	rows, cols := m.Dims()
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	if !(peak > 0) {
		return img
	}
	scale := 255 / peak
	for y := 0; y < rows; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < cols; x++ {
			row[x] = uint8(core.Clamp(math.Round(m.At(y, x)*scale), 0, 255))
		}
	}
	return img
}

// LoadImage decodes a still image and returns its luminance.
func LoadImage(path string) (*mat.Dense, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("media: open %q: %w", path, err)
	}
	return FromImage(img, ChannelLuma)
}

// SaveImage writes m as a grayscale image normalised to its maximum. The
// format follows the file extension.
func SaveImage(path string, m mat.Matrix) error {
	if m == nil {
		return fmt.Errorf("media: nil frame: %w", core.ErrEmptyInput)
	}
	if err := imaging.Save(ToGray(m, mat.Max(m)), path); err != nil {
		return fmt.Errorf("media: save %q: %w", path, err)
	}
	return nil
}
