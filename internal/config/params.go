// Package config loads estimator and synthetic-movie parameters from a JSON
// file. Every field is a pointer so a partial file overrides only the values
// it names; the Get* methods supply defaults for the rest.
package config

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/dsp/window"
	"github.com/cwbudde/algo-motion/media"
	"github.com/cwbudde/algo-motion/motion/synth"
	"github.com/cwbudde/algo-motion/motion/velocity"
)

const maxFileSize = 1 << 20

// Params is the on-disk parameter set of the velest tool.
type Params struct {
	// Estimation
	FrameRate *float64 `json:"frame_rate,omitempty"`
	AX        *int     `json:"ax,omitempty"`
	AY        *int     `json:"ay,omitempty"`
	EdgeBins  *int     `json:"edge_bins,omitempty"`
	Window    *string  `json:"window,omitempty"`
	Workers   *int     `json:"workers,omitempty"`

	// Video input
	Channel *string  `json:"channel,omitempty"`
	Masks   [][4]int `json:"masks,omitempty"` // x0, y0, x1, y1

	// Synthetic movie
	Frames        *int     `json:"frames,omitempty"`
	Width         *int     `json:"width,omitempty"`
	Height        *int     `json:"height,omitempty"`
	BlobSize      *int     `json:"blob_size,omitempty"`
	BlobSigma     *float64 `json:"blob_sigma,omitempty"`
	BlobAmplitude *float64 `json:"blob_amplitude,omitempty"`
	XStart        *int     `json:"x_start,omitempty"`
	YStart        *int     `json:"y_start,omitempty"`
	XVelocity     *float64 `json:"x_velocity,omitempty"`
	YVelocity     *float64 `json:"y_velocity,omitempty"`
	Boundary      *string  `json:"boundary,omitempty"`
	Noise         *float64 `json:"noise,omitempty"`
	Seed          *int64   `json:"seed,omitempty"`
}

// Helper functions to create pointers
func Float64(v float64) *float64 { return &v }
func Int(v int) *int             { return &v }
func Int64(v int64) *int64       { return &v }
func String(v string) *string    { return &v }

// LoadParams reads Params from a .json file of at most 1 MiB and validates
// them.
func LoadParams(path string) (*Params, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	p := &Params{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return p, nil
}

// Merge returns a copy of p with every field set in o taking precedence.
func (p *Params) Merge(o *Params) *Params {
	out := *p
	if o == nil {
		return &out
	}
	pick(&out.FrameRate, o.FrameRate)
	pick(&out.AX, o.AX)
	pick(&out.AY, o.AY)
	pick(&out.EdgeBins, o.EdgeBins)
	pick(&out.Window, o.Window)
	pick(&out.Workers, o.Workers)
	pick(&out.Channel, o.Channel)
	if o.Masks != nil {
		out.Masks = o.Masks
	}
	pick(&out.Frames, o.Frames)
	pick(&out.Width, o.Width)
	pick(&out.Height, o.Height)
	pick(&out.BlobSize, o.BlobSize)
	pick(&out.BlobSigma, o.BlobSigma)
	pick(&out.BlobAmplitude, o.BlobAmplitude)
	pick(&out.XStart, o.XStart)
	pick(&out.YStart, o.YStart)
	pick(&out.XVelocity, o.XVelocity)
	pick(&out.YVelocity, o.YVelocity)
	pick(&out.Boundary, o.Boundary)
	pick(&out.Noise, o.Noise)
	pick(&out.Seed, o.Seed)
	return &out
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// Validate checks the values that are set. Range checks that depend on the
// input, such as edge bins against the frame count, happen in the estimator.
func (p *Params) Validate() error {
	if p.FrameRate != nil && !(*p.FrameRate > 0) {
		return fmt.Errorf("frame_rate must be positive, got %v", *p.FrameRate)
	}
	if p.AX != nil && *p.AX == 0 {
		return fmt.Errorf("ax must be non-zero")
	}
	if p.AY != nil && *p.AY == 0 {
		return fmt.Errorf("ay must be non-zero")
	}
	if p.EdgeBins != nil && *p.EdgeBins < 0 {
		return fmt.Errorf("edge_bins must be non-negative, got %d", *p.EdgeBins)
	}
	if p.Window != nil {
		if _, err := window.Parse(*p.Window); err != nil {
			return fmt.Errorf("invalid window: %w", err)
		}
	}
	if p.Channel != nil {
		if _, err := media.ParseChannel(*p.Channel); err != nil {
			return fmt.Errorf("invalid channel: %w", err)
		}
	}
	for i, m := range p.Masks {
		if m[2] <= m[0] || m[3] <= m[1] {
			return fmt.Errorf("mask %d is empty: %v", i, m)
		}
	}
	if p.Frames != nil && *p.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", *p.Frames)
	}
	if p.Width != nil && *p.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", *p.Width)
	}
	if p.Height != nil && *p.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", *p.Height)
	}
	if p.BlobSize != nil && (*p.BlobSize <= 0 || *p.BlobSize%2 == 0) {
		return fmt.Errorf("blob_size must be odd and positive, got %d", *p.BlobSize)
	}
	if p.BlobSigma != nil && !(*p.BlobSigma > 0) {
		return fmt.Errorf("blob_sigma must be positive, got %v", *p.BlobSigma)
	}
	if p.Boundary != nil {
		if _, err := synth.ParseBoundary(*p.Boundary); err != nil {
			return fmt.Errorf("invalid boundary: %w", err)
		}
	}
	if p.Noise != nil && *p.Noise < 0 {
		return fmt.Errorf("noise must be non-negative, got %v", *p.Noise)
	}
	return nil
}

// GetFrameRate returns frame_rate or 20 frames per second.
func (p *Params) GetFrameRate() float64 {
	if p.FrameRate == nil {
		return 20
	}
	return *p.FrameRate
}

// GetCoefficients returns ax and ay, each defaulting to 2.
func (p *Params) GetCoefficients() (ax, ay int) {
	ax, ay = 2, 2
	if p.AX != nil {
		ax = *p.AX
	}
	if p.AY != nil {
		ay = *p.AY
	}
	return ax, ay
}

// GetEdgeBins returns edge_bins or 2.
func (p *Params) GetEdgeBins() int {
	if p.EdgeBins == nil {
		return 2
	}
	return *p.EdgeBins
}

// GetWorkers returns workers or 1.
func (p *Params) GetWorkers() int {
	if p.Workers == nil {
		return 1
	}
	return *p.Workers
}

// GetWindow returns the parsed window, rectangular when unset.
func (p *Params) GetWindow() (window.Type, error) {
	if p.Window == nil {
		return window.Rectangular, nil
	}
	return window.Parse(*p.Window)
}

// GetChannel returns the parsed video channel, luminance when unset.
func (p *Params) GetChannel() (media.Channel, error) {
	if p.Channel == nil {
		return media.ChannelLuma, nil
	}
	return media.ParseChannel(*p.Channel)
}

// GetMasks returns the mask rectangles.
func (p *Params) GetMasks() []image.Rectangle {
	rects := make([]image.Rectangle, len(p.Masks))
	for i, m := range p.Masks {
		rects[i] = image.Rect(m[0], m[1], m[2], m[3])
	}
	return rects
}

// GetFrames returns frames or 80.
func (p *Params) GetFrames() int {
	if p.Frames == nil {
		return 80
	}
	return *p.Frames
}

// GetSize returns width x height, 260 x 200 by default.
func (p *Params) GetSize() (width, height int) {
	width, height = 260, 200
	if p.Width != nil {
		width = *p.Width
	}
	if p.Height != nil {
		height = *p.Height
	}
	return width, height
}

// GetBlob returns the blob kernel, 3 pixels with sigma 1 by default.
func (p *Params) GetBlob() synth.Blob {
	b := synth.Blob{Size: 3, Sigma: 1}
	if p.BlobSize != nil {
		b.Size = *p.BlobSize
	}
	if p.BlobSigma != nil {
		b.Sigma = *p.BlobSigma
	}
	return b
}

// GetBlobAmplitude returns blob_amplitude or 1.
func (p *Params) GetBlobAmplitude() float64 {
	if p.BlobAmplitude == nil {
		return 1
	}
	return *p.BlobAmplitude
}

// GetPath returns the blob trajectory, starting at (0, 25) and moving (3, 2)
// pixels per frame by default.
func (p *Params) GetPath() synth.Path {
	path := synth.Path{X: 0, Y: 25, VX: 3, VY: 2}
	if p.XStart != nil {
		path.X = *p.XStart
	}
	if p.YStart != nil {
		path.Y = *p.YStart
	}
	if p.XVelocity != nil {
		path.VX = *p.XVelocity
	}
	if p.YVelocity != nil {
		path.VY = *p.YVelocity
	}
	return path
}

// GetBoundary returns the parsed boundary policy, stop when unset.
func (p *Params) GetBoundary() (synth.Boundary, error) {
	if p.Boundary == nil {
		return synth.BoundaryStop, nil
	}
	return synth.ParseBoundary(*p.Boundary)
}

// GetNoise returns the background noise amplitude, 0 when unset.
func (p *Params) GetNoise() float64 {
	if p.Noise == nil {
		return 0
	}
	return *p.Noise
}

// GetSeed returns seed or 1.
func (p *Params) GetSeed() int64 {
	if p.Seed == nil {
		return 1
	}
	return *p.Seed
}

// NewEstimator builds a velocity estimator from the estimation fields.
func (p *Params) NewEstimator() (*velocity.Estimator, error) {
	w, err := p.GetWindow()
	if err != nil {
		return nil, err
	}
	ax, ay := p.GetCoefficients()
	return velocity.NewEstimator(
		[]core.ProcessorOption{
			core.WithFrameRate(p.GetFrameRate()),
			core.WithWorkers(p.GetWorkers()),
		},
		velocity.WithCoefficients(ax, ay),
		velocity.WithEdgeBins(p.GetEdgeBins()),
		velocity.WithWindow(w),
	)
}

// NewGenerator builds a synthetic movie generator from the synthetic fields.
func (p *Params) NewGenerator() (*synth.Generator, error) {
	b, err := p.GetBoundary()
	if err != nil {
		return nil, err
	}
	return synth.NewGenerator(
		synth.WithSeed(p.GetSeed()),
		synth.WithBoundary(b),
		synth.WithAmplitude(p.GetBlobAmplitude()),
	), nil
}
