// Command velest estimates the velocity of a single small object moving
// across a sequence of frames.
//
// Usage:
//
//	velest [flags]
//
// Without -video it renders a synthetic movie of a Gaussian blob moving at a
// known velocity and prints both the given and the recovered velocity. With
// -video it decodes a frame range of a real video and prints the recovered
// velocity only.
//
// Examples:
//
//	velest
//	velest -x-vel 4 -y-vel 1 -boundary wrap -plot spectra.png
//	velest -image moon.png -blob-amp 255 -movie ufo.mp4 -frame first.png
//	velest -video iss.mp4 -from 570 -to 870 -fps 12 -n 40 \
//	    -mask 0,0,120,60 -mask 300,0,10000,50 -plot iss.png -ymax 100000
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-motion/internal/config"
	"github.com/cwbudde/algo-motion/media"
	"github.com/cwbudde/algo-motion/motion/frame"
	"github.com/cwbudde/algo-motion/motion/velocity"
	"github.com/cwbudde/algo-motion/render"
)

type outputs struct {
	movie, plot, html string
	ymax              float64
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("velest: ")

	fs := flag.NewFlagSet("velest", flag.ExitOnError)
	cf := registerFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: velest [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Estimates object velocity in pixels/frame from modulated frame projections.\n")
		fmt.Fprintf(os.Stderr, "Without -video a synthetic blob movie is generated.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  velest -x-vel 4 -y-vel 1 -plot spectra.png\n")
		fmt.Fprintf(os.Stderr, "  velest -config velest.json -html spectra.html\n")
		fmt.Fprintf(os.Stderr, "  velest -video iss.mp4 -from 570 -to 870 -fps 12 -n 40 -mask 0,0,120,60\n")
	}
	_ = fs.Parse(os.Args[1:])

	if err := run(fs, cf); err != nil {
		log.Fatal(err)
	}
}

func run(fs *flag.FlagSet, cf *cliFlags) error {
	params := &config.Params{}
	if cf.config != "" {
		p, err := config.LoadParams(cf.config)
		if err != nil {
			return err
		}
		params = p
	}
	params = params.Merge(cf.params(fs))
	if err := params.Validate(); err != nil {
		return err
	}

	var (
		stack *frame.Stack
		fps   float64
		err   error
	)
	if cf.video != "" {
		stack, fps, err = loadVideo(cf, params)
	} else {
		stack, err = synthesize(cf, params)
		if err == nil && (cf.from > 0 || cf.to > 0) {
			stack, err = frameRange(stack, cf.from, cf.to)
		}
	}
	if err != nil {
		return err
	}
	if params.FrameRate == nil && fps > 0 {
		params.FrameRate = config.Float64(fps)
	}
	if masks := params.GetMasks(); len(masks) > 0 {
		stack = stack.Mask(masks...)
	}

	rows, cols := stack.Dims()
	if cf.verbose {
		log.Printf("%d frames of %dx%d at %.2f fps", stack.Len(), cols, rows, params.GetFrameRate())
	}

	if cf.frame != "" {
		if err := media.SaveImage(cf.frame, stack.At(0)); err != nil {
			return err
		}
	}

	out := outputs{movie: cf.movie, plot: cf.plot, html: cf.html, ymax: cf.ymax}
	if out.movie != "" {
		if err := media.WriteVideo(out.movie, stack, params.GetFrameRate()); err != nil {
			return err
		}
		if cf.verbose {
			log.Printf("wrote %s", out.movie)
		}
	}

	est, err := params.NewEstimator()
	if err != nil {
		return err
	}
	res, err := est.Estimate(stack)
	if err != nil {
		return err
	}

	if cf.video == "" {
		path := params.GetPath()
		printVelocity("Given velocity", path.VX, path.VY)
	}
	printVelocity("Calculated velocity", res.Vx, res.Vy)
	if cf.verbose {
		log.Printf("peaks x=%d y=%d resolution=%.3f prominence x=%.1f y=%.1f flatness x=%.3f y=%.3f",
			res.X.Peak, res.Y.Peak, res.X.Resolution, res.X.Prominence, res.Y.Prominence, res.X.Flatness, res.Y.Flatness)
	}

	return writeSpectra(res, out)
}

func loadVideo(cf *cliFlags, params *config.Params) (*frame.Stack, float64, error) {
	ch, err := params.GetChannel()
	if err != nil {
		return nil, 0, err
	}
	return media.ReadVideo(cf.video, media.ReadOptions{From: cf.from, To: cf.to, Channel: ch})
}

func synthesize(cf *cliFlags, params *config.Params) (*frame.Stack, error) {
	gen, err := params.NewGenerator()
	if err != nil {
		return nil, err
	}

	width, height := params.GetSize()
	var bg *mat.Dense
	switch {
	case cf.image != "":
		bg, err = media.LoadImage(cf.image)
	case params.GetNoise() > 0:
		bg, err = gen.Noise(height, width, params.GetNoise())
	default:
		bg, err = gen.Uniform(height, width, 0)
	}
	if err != nil {
		return nil, err
	}

	return gen.Movie(bg, params.GetFrames(), params.GetBlob(), params.GetPath())
}

// frameRange keeps frames [from, to) of a synthetic movie; to == 0 keeps the
// rest of the movie.
func frameRange(s *frame.Stack, from, to int) (*frame.Stack, error) {
	if to == 0 {
		to = s.Len()
	}
	return s.Slice(from, to)
}

func printVelocity(label string, vx, vy float64) {
	fmt.Printf("%s:\n V_x = %0.2f [pixels / frame] V_y = %0.2f [pixels / frame]\n", label, vx, vy)
}

func writeSpectra(res velocity.Result, out outputs) error {
	o := render.DefaultOptions()
	o.YMax = out.ymax

	if out.plot != "" {
		if err := render.SpectraPNG(out.plot, res.X.Spectrum, res.Y.Spectrum, o); err != nil {
			return err
		}
	}
	if out.html != "" {
		f, err := os.Create(out.html)
		if err != nil {
			return err
		}
		if err := render.SpectraHTML(f, res.X.Spectrum, res.Y.Spectrum, o); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
