package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-motion/internal/config"
)

// maskList collects repeated -mask x0,y0,x1,y1 flags.
type maskList [][4]int

func (m *maskList) String() string {
	parts := make([]string, len(*m))
	for i, r := range *m {
		parts[i] = fmt.Sprintf("%d,%d,%d,%d", r[0], r[1], r[2], r[3])
	}
	return strings.Join(parts, " ")
}

func (m *maskList) Set(v string) error {
	fields := strings.Split(v, ",")
	if len(fields) != 4 {
		return fmt.Errorf("mask %q: want x0,y0,x1,y1", v)
	}
	var r [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return fmt.Errorf("mask %q: %w", v, err)
		}
		r[i] = n
	}
	*m = append(*m, r)
	return nil
}

type cliFlags struct {
	config  string
	verbose bool

	video    string
	from, to int
	channel  string
	masks    maskList

	image      string
	nf         int
	fps        float64
	width      int
	height     int
	blobSize   int
	blobSigma  float64
	blobAmp    float64
	noise      float64
	seed       int64
	xStart     int
	yStart     int
	xVel, yVel float64
	boundary   string
	ax, ay     int
	edgeBins   int
	windowName string
	workers    int
	movie      string
	frame      string
	plot, html string
	ymax       float64
}

func registerFlags(fs *flag.FlagSet) *cliFlags {
	cf := &cliFlags{}
	fs.StringVar(&cf.config, "config", "", "JSON parameter file; flags override its values")
	fs.BoolVar(&cf.verbose, "v", false, "log progress and peak details to stderr")

	fs.StringVar(&cf.video, "video", "", "estimate from this video instead of a synthetic movie")
	fs.IntVar(&cf.from, "from", 0, "first frame to analyse")
	fs.IntVar(&cf.to, "to", 0, "one past the last frame to analyse (0 = end)")
	fs.StringVar(&cf.channel, "channel", "luma", "video channel: luma, red, green or blue")
	fs.Var(&cf.masks, "mask", "zero the rectangle x0,y0,x1,y1 in every frame (repeatable)")

	fs.StringVar(&cf.image, "image", "", "background image for the synthetic movie")
	fs.IntVar(&cf.nf, "nf", 80, "number of synthetic frames")
	fs.Float64Var(&cf.fps, "fps", 20, "frame rate in frames/s (video default: stream rate)")
	fs.IntVar(&cf.width, "width", 260, "synthetic frame width")
	fs.IntVar(&cf.height, "height", 200, "synthetic frame height")
	fs.IntVar(&cf.blobSize, "blob-size", 3, "blob kernel size (odd)")
	fs.Float64Var(&cf.blobSigma, "blob-sigma", 1, "blob Gaussian sigma in pixels")
	fs.Float64Var(&cf.blobAmp, "blob-amp", 1, "blob amplitude")
	fs.Float64Var(&cf.noise, "noise", 0, "uniform background noise amplitude")
	fs.Int64Var(&cf.seed, "seed", 1, "background noise seed")
	fs.IntVar(&cf.xStart, "x-start", 0, "blob start column")
	fs.IntVar(&cf.yStart, "y-start", 25, "blob start row")
	fs.Float64Var(&cf.xVel, "x-vel", 3, "blob x velocity in pixels/frame")
	fs.Float64Var(&cf.yVel, "y-vel", 2, "blob y velocity in pixels/frame")
	fs.StringVar(&cf.boundary, "boundary", "stop", "blob boundary policy: stop, clamp or wrap")

	fs.IntVar(&cf.ax, "ax", 2, "x modulation coefficient")
	fs.IntVar(&cf.ay, "ay", 2, "y modulation coefficient")
	fs.IntVar(&cf.edgeBins, "n", 2, "leading and trailing spectrum bins to suppress")
	fs.StringVar(&cf.windowName, "window", "rectangular", "taper: rectangular, hann, hamming or blackman")
	fs.IntVar(&cf.workers, "workers", 1, "projection goroutines")

	fs.StringVar(&cf.movie, "movie", "", "write the analysed frames to this video file")
	fs.StringVar(&cf.frame, "frame", "", "write the first analysed frame to this image file")
	fs.StringVar(&cf.plot, "plot", "", "write the spectra to this PNG file")
	fs.StringVar(&cf.html, "html", "", "write the spectra to this HTML file")
	fs.Float64Var(&cf.ymax, "ymax", 0, "fixed upper y limit for the spectra plots (0 = auto)")
	return cf
}

// params returns the explicitly set flags as config overrides.
func (cf *cliFlags) params(fs *flag.FlagSet) *config.Params {
	p := &config.Params{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fps":
			p.FrameRate = config.Float64(cf.fps)
		case "ax":
			p.AX = config.Int(cf.ax)
		case "ay":
			p.AY = config.Int(cf.ay)
		case "n":
			p.EdgeBins = config.Int(cf.edgeBins)
		case "window":
			p.Window = config.String(cf.windowName)
		case "workers":
			p.Workers = config.Int(cf.workers)
		case "channel":
			p.Channel = config.String(cf.channel)
		case "mask":
			p.Masks = cf.masks
		case "nf":
			p.Frames = config.Int(cf.nf)
		case "width":
			p.Width = config.Int(cf.width)
		case "height":
			p.Height = config.Int(cf.height)
		case "blob-size":
			p.BlobSize = config.Int(cf.blobSize)
		case "blob-sigma":
			p.BlobSigma = config.Float64(cf.blobSigma)
		case "blob-amp":
			p.BlobAmplitude = config.Float64(cf.blobAmp)
		case "noise":
			p.Noise = config.Float64(cf.noise)
		case "seed":
			p.Seed = config.Int64(cf.seed)
		case "x-start":
			p.XStart = config.Int(cf.xStart)
		case "y-start":
			p.YStart = config.Int(cf.yStart)
		case "x-vel":
			p.XVelocity = config.Float64(cf.xVel)
		case "y-vel":
			p.YVelocity = config.Float64(cf.yVel)
		case "boundary":
			p.Boundary = config.String(cf.boundary)
		}
	})
	return p
}
